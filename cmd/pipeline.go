package main

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/commission-cli/internal/commission"
	"github.com/sells-group/commission-cli/internal/config"
	"github.com/sells-group/commission-cli/internal/dataset"
	"github.com/sells-group/commission-cli/internal/export"
	"github.com/sells-group/commission-cli/internal/fetcher"
	"github.com/sells-group/commission-cli/internal/model"
	"github.com/sells-group/commission-cli/internal/rates"
)

// calculation is everything one run over a sheet produces.
type calculation struct {
	source    *dataset.Table
	result    *commission.Result
	annotated *dataset.Table
	summary   []model.SalespersonSummary
}

// loadOptions maps input settings onto reader options. A non-empty sheet
// overrides the configured sheet.
func loadOptions(c *config.Config, sheet string) fetcher.LoadOptions {
	opts := fetcher.LoadOptions{
		XLSX: fetcher.XLSXOptions{
			SheetIndex: c.Input.SheetIndex,
			SheetName:  c.Input.SheetName,
			SkipRows:   c.Input.SkipRows,
		},
		CSV: fetcher.CSVOptions{
			Delimiter: c.Input.Delimiter(),
			Charset:   c.Input.CSVCharset,
			TrimSpace: true,
		},
	}
	if sheet != "" {
		opts.XLSX.SheetName = sheet
	}
	return opts
}

// newEngine builds the engine with the built-in catalog, extended by
// catalog.path when set.
func newEngine(c *config.Config) (*commission.Engine, error) {
	cat := rates.DefaultCatalog()
	if c.Catalog.Path != "" {
		loaded, err := rates.LoadCatalogFile(c.Catalog.Path)
		if err != nil {
			return nil, err
		}
		cat = loaded
		zap.L().Info("catalog loaded", zap.String("path", c.Catalog.Path), zap.Int("categories", len(cat.Categories())))
	}
	return commission.New(commission.Options{
		Catalog:     cat,
		Concurrency: c.Engine.Concurrency,
	}), nil
}

// calculate ingests tbl, runs the engine and annotates the source rows.
func calculate(ctx context.Context, eng *commission.Engine, tbl *dataset.Table) (*calculation, error) {
	items, err := dataset.Ingest(tbl)
	if err != nil {
		return nil, err
	}

	res, err := eng.Run(ctx, items)
	if err != nil {
		return nil, err
	}

	annotated, err := dataset.Annotate(tbl, res.Rows)
	if err != nil {
		return nil, err
	}

	return &calculation{
		source:    tbl,
		result:    res,
		annotated: annotated,
		summary:   commission.Summarize(res),
	}, nil
}

// writeOutput writes the annotated sheet in format (xlsx or csv).
func writeOutput(w io.Writer, calc *calculation, format string, out config.OutputConfig) error {
	switch format {
	case "xlsx":
		return export.WriteXLSX(w, calc.annotated, calc.summary, export.XLSXOptions{
			DetailSheet:  out.DetailSheet,
			SummarySheet: out.SummarySheet,
		})
	case "csv":
		return export.WriteCSV(w, calc.annotated)
	default:
		return eris.Errorf("output: unsupported format %q", format)
	}
}

func logReport(r commission.Report) {
	fields := []zap.Field{
		zap.String("run_id", r.RunID),
		zap.Int("rows", r.Rows),
		zap.Int("orders", r.Orders),
		zap.Int("a_orders", r.AOrders),
		zap.Int("b_orders", r.BOrders),
		zap.Int("unsupported_orders", r.Unsupported),
		zap.String("total_commission", dataset.FormatMoney(r.TotalCommission)),
		zap.String("total_received", dataset.FormatMoney(r.TotalReceived)),
		zap.String("average_rate", dataset.FormatRatio(r.AverageRate)),
	}
	for _, t := range model.AllTypes() {
		if n := r.ByType[t]; n > 0 {
			fields = append(fields, zap.Int("type_"+string(t), n))
		}
	}
	zap.L().Info("commission report", fields...)
}
