package export

import (
	"encoding/csv"
	"io"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/sells-group/commission-cli/internal/dataset"
	"github.com/sells-group/commission-cli/internal/model"
)

// bom makes spreadsheet applications detect UTF-8.
const bom = "\ufeff"

// WriteCSV writes the annotated table as UTF-8 CSV with a leading byte order
// mark.
func WriteCSV(w io.Writer, annotated *dataset.Table) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return eris.Wrap(err, "export: write BOM")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(annotated.Header); err != nil {
		return eris.Wrap(err, "export: write CSV header")
	}
	for _, row := range annotated.Rows {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "export: write CSV row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush CSV")
}

// WriteSummaryCSV writes the salesperson summary with a byte order mark.
func WriteSummaryCSV(w io.Writer, summary []model.SalespersonSummary) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return eris.Wrap(err, "export: write BOM")
	}

	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if len(summary) == 0 {
		if err := enc.EncodeHeader(model.SalespersonSummary{}); err != nil {
			return eris.Wrap(err, "export: write summary header")
		}
	}
	for _, s := range summary {
		s.Commission = s.Commission.Round(2)
		if err := enc.Encode(s); err != nil {
			return eris.Wrap(err, "export: write summary row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush summary CSV")
}
