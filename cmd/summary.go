package main

import (
	"context"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/commission-cli/internal/commission"
	"github.com/sells-group/commission-cli/internal/config"
	"github.com/sells-group/commission-cli/internal/dataset"
	"github.com/sells-group/commission-cli/internal/export"
	"github.com/sells-group/commission-cli/internal/fetcher"
	"github.com/sells-group/commission-cli/internal/model"
)

var (
	summaryInput  string
	summarySheet  string
	summaryFormat string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print commission totals per salesperson",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummary(cmd.Context(), cmd.OutOrStdout(), cfg, summaryInput, summarySheet, summaryFormat)
	},
}

func runSummary(ctx context.Context, w io.Writer, c *config.Config, input, sheet, format string) error {
	if err := c.Validate("summary"); err != nil {
		return err
	}

	eng, err := newEngine(c)
	if err != nil {
		return err
	}

	tbl, err := fetcher.ReadTable(input, loadOptions(c, sheet))
	if err != nil {
		return err
	}

	calc, err := calculate(ctx, eng, tbl)
	if err != nil {
		return err
	}
	logReport(calc.result.Report)

	switch format {
	case "table":
		return writeSummaryTable(w, calc.summary, calc.result.Report)
	case "csv":
		return export.WriteSummaryCSV(w, calc.summary)
	default:
		return eris.Errorf("summary: unsupported format %q", format)
	}
}

func writeSummaryTable(w io.Writer, summary []model.SalespersonSummary, report commission.Report) error {
	table := tablewriter.NewWriter(w)
	table.Header(export.SummaryHeader[0], export.SummaryHeader[1], export.SummaryHeader[2])

	for _, s := range summary {
		name := s.Salesperson
		if name == "" {
			name = "(未填写)"
		}
		if err := table.Append([]string{name, strconv.Itoa(s.Orders), dataset.FormatMoney(s.Commission)}); err != nil {
			return eris.Wrap(err, "summary: append table row")
		}
	}
	table.Footer("合计", strconv.Itoa(report.Orders), dataset.FormatMoney(report.TotalCommission))

	if err := table.Render(); err != nil {
		return eris.Wrap(err, "summary: render table")
	}
	return nil
}

func init() {
	summaryCmd.Flags().StringVar(&summaryInput, "input", "", "sales sheet (.xlsx or .csv)")
	summaryCmd.Flags().StringVar(&summarySheet, "sheet", "", "worksheet name (default from config)")
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "table", "output format: table or csv")
	_ = summaryCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(summaryCmd)
}
