package fetcher

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/commission-cli/internal/dataset"
)

// LoadOptions carries per-format reader settings for ReadTable.
type LoadOptions struct {
	XLSX XLSXOptions
	CSV  CSVOptions
}

// ReadTable loads a sales sheet from disk, choosing the reader by file
// extension.
func ReadTable(path string, opts LoadOptions) (*dataset.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: read %s", path)
	}
	return ReadTableBytes(filepath.Base(path), data, opts)
}

// ReadTableBytes parses an in-memory upload. name is only used for its
// extension: .xlsx and .xlsm read as workbooks, .csv and .txt as delimited
// text. Anything else is a dataset.ParseError. Row line numbers count sheet
// rows for workbooks and records for CSV.
func ReadTableBytes(name string, data []byte, opts LoadOptions) (*dataset.Table, error) {
	var (
		records   [][]string
		err       error
		firstLine = 1
	)

	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".xlsx", ".xlsm":
		records, err = ReadXLSXBytes(data, opts.XLSX)
		firstLine = opts.XLSX.SkipRows + 1
	case ".csv", ".txt":
		records, err = ReadCSV(bytes.NewReader(data), opts.CSV)
	default:
		return nil, dataset.NewParseError(eris.Errorf("fetcher: unsupported file type %q (want .xlsx or .csv)", ext))
	}
	if err != nil {
		return nil, err
	}

	tbl, err := dataset.NewTableAt(records, firstLine)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("fetcher: table loaded",
		zap.String("file", name),
		zap.Int("columns", len(tbl.Header)),
		zap.Int("rows", len(tbl.Rows)),
	)
	return tbl, nil
}
