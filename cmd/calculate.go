package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/commission-cli/internal/config"
	"github.com/sells-group/commission-cli/internal/export"
	"github.com/sells-group/commission-cli/internal/fetcher"
)

var (
	calcInput  string
	calcOutput string
	calcFormat string
	calcSheet  string
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Compute commissions for a sales sheet and write the annotated result",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := runCalculate(cmd.Context(), cfg, calculateArgs{
			Input:  calcInput,
			Output: calcOutput,
			Format: calcFormat,
			Sheet:  calcSheet,
			Now:    time.Now(),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

type calculateArgs struct {
	Input  string
	Output string // empty writes 提成计算_<timestamp> under output.dir
	Format string // empty uses output.format
	Sheet  string
	Now    time.Time
}

// runCalculate reads, computes and writes one sheet, returning the output path.
func runCalculate(ctx context.Context, c *config.Config, a calculateArgs) (string, error) {
	if a.Format != "" {
		local := *c
		local.Output.Format = a.Format
		c = &local
	}
	if err := c.Validate("calculate"); err != nil {
		return "", err
	}

	eng, err := newEngine(c)
	if err != nil {
		return "", err
	}

	tbl, err := fetcher.ReadTable(a.Input, loadOptions(c, a.Sheet))
	if err != nil {
		return "", err
	}

	calc, err := calculate(ctx, eng, tbl)
	if err != nil {
		return "", err
	}

	out := a.Output
	if out == "" {
		out = filepath.Join(c.Output.Dir, export.DefaultFileName(a.Now, c.Output.Format))
	}
	if err := writeFile(out, func(w io.Writer) error {
		return writeOutput(w, calc, c.Output.Format, c.Output)
	}); err != nil {
		return "", err
	}

	logReport(calc.result.Report)
	zap.L().Info("calculate: output written",
		zap.String("input", a.Input),
		zap.String("output", out),
		zap.String("format", c.Output.Format),
	)
	return out, nil
}

// writeFile creates path and hands it to write, removing the file when
// write fails.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "calculate: create output file %s", path)
	}
	if err := write(f); err != nil {
		f.Close()       //nolint:errcheck
		os.Remove(path) //nolint:errcheck
		return err
	}
	return eris.Wrapf(f.Close(), "calculate: close output file %s", path)
}

func init() {
	calculateCmd.Flags().StringVar(&calcInput, "input", "", "sales sheet (.xlsx or .csv)")
	calculateCmd.Flags().StringVar(&calcOutput, "output", "", "output file (default 提成计算_<timestamp> in output.dir)")
	calculateCmd.Flags().StringVar(&calcFormat, "format", "", "output format: xlsx or csv (default from config)")
	calculateCmd.Flags().StringVar(&calcSheet, "sheet", "", "worksheet name (default from config)")
	_ = calculateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(calculateCmd)
}
