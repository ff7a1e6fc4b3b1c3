package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	// Verify expected subcommands are registered.
	expected := []string{"calculate", "validate", "summary", "serve"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "commission-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestSummaryCommand_Flags(t *testing.T) {
	flag := summaryCmd.Flags().Lookup("format")
	require.NotNil(t, flag, "summary command should have --format flag")
	assert.Equal(t, "table", flag.DefValue)
}

func TestInputFlagsRequired(t *testing.T) {
	for _, cmd := range []*cobra.Command{calculateCmd, validateCmd, summaryCmd} {
		flag := cmd.Flags().Lookup("input")
		require.NotNil(t, flag, "%s should have --input", cmd.Name())
		assert.Equal(t, []string{"true"}, flag.Annotations["cobra_annotation_bash_completion_one_required_flag"], cmd.Name())
	}
}
