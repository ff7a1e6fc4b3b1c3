package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/commission-cli/internal/config"
	"github.com/sells-group/commission-cli/internal/dataset"
	"github.com/sells-group/commission-cli/internal/fetcher"
)

var (
	validateInput string
	validateSheet string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a sales sheet's columns and rows without computing commissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout(), cfg, validateInput, validateSheet)
	},
}

// runValidate prints the sheet preview and returns the first schema or row
// error.
func runValidate(w io.Writer, c *config.Config, input, sheet string) error {
	if err := c.Validate("validate"); err != nil {
		return err
	}

	tbl, err := fetcher.ReadTable(input, loadOptions(c, sheet))
	if err != nil {
		return err
	}

	stats := dataset.Describe(tbl)
	fmt.Fprintf(w, "Rows:           %d\n", stats.Rows)
	fmt.Fprintf(w, "Orders:         %d\n", stats.Orders)
	fmt.Fprintf(w, "Total received: %s\n", dataset.FormatMoney(stats.TotalReceived))
	if len(stats.Missing) > 0 {
		fmt.Fprintf(w, "Missing:        %s\n", strings.Join(stats.Missing, ", "))
	}

	if _, err := dataset.Ingest(tbl); err != nil {
		return err
	}
	fmt.Fprintln(w, "OK")
	return nil
}

func init() {
	validateCmd.Flags().StringVar(&validateInput, "input", "", "sales sheet (.xlsx or .csv)")
	validateCmd.Flags().StringVar(&validateSheet, "sheet", "", "worksheet name (default from config)")
	_ = validateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(validateCmd)
}
