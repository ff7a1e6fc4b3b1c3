package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/commission-cli/internal/dataset"
	"github.com/sells-group/commission-cli/internal/export"
)

var fixedNow = time.Date(2026, 10, 15, 14, 30, 0, 0, time.Local)

func TestRunCalculate_XLSXDefaultName(t *testing.T) {
	c := testConfig(t)
	input := writeTemp(t, "sales.xlsx", salesXLSX(t, "Sheet1", salesHeader, salesRows))

	out, err := runCalculate(context.Background(), c, calculateArgs{Input: input, Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(c.Output.Dir, "提成计算_20261015_143000.xlsx"), out)

	f, err := xlsx.OpenFile(out)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)
	assert.Equal(t, export.DetailSheet, f.Sheets[0].Name)
	assert.Equal(t, export.SummarySheet, f.Sheets[1].Name)

	header := f.Sheets[0].Rows[0]
	last := header.Cells[len(header.Cells)-1]
	assert.Equal(t, dataset.ColOrderTotal, last.String())

	first := f.Sheets[0].Rows[1]
	total, err := first.Cells[len(first.Cells)-1].Float()
	require.NoError(t, err)
	assert.InDelta(t, 522.5, total, 1e-9)
}

func TestRunCalculate_CSVFlagOverridesConfig(t *testing.T) {
	c := testConfig(t)
	input := writeTemp(t, "sales.csv", salesCSV(salesHeader, salesRows))
	output := filepath.Join(t.TempDir(), "out.csv")

	out, err := runCalculate(context.Background(), c, calculateArgs{Input: input, Output: output, Format: "csv", Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, output, out)
	assert.Equal(t, "xlsx", c.Output.Format, "config is not modified")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	text := strings.TrimPrefix(string(data), "\ufeff")
	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasSuffix(lines[0], dataset.ColOrderTotal))
	assert.True(t, strings.HasSuffix(lines[1], ",522.5"))
	assert.True(t, strings.HasSuffix(lines[4], ",0"))
}

func TestRunCalculate_FormattedNumberCells(t *testing.T) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	header := sheet.AddRow()
	for _, h := range salesHeader {
		header.AddCell().SetString(h)
	}
	row := sheet.AddRow()
	row.AddCell().SetString("S001")
	row.AddCell().SetString("销售")
	row.AddCell().SetString("件数")
	row.AddCell().SetFloatWithFormat(10000, "#,##0")
	row.AddCell().SetFloatWithFormat(8999.6, "#,##0")
	row.AddCell().SetString("钻石")
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	c := testConfig(t)
	input := writeTemp(t, "sales.xlsx", buf.Bytes())
	output := filepath.Join(t.TempDir(), "out.csv")

	_, err = runCalculate(context.Background(), c, calculateArgs{Input: input, Output: output, Format: "csv", Now: fixedNow})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(data), "\ufeff")), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], ",A1,0.89996,0.045,404.982,0,0,0,404.982"), lines[1])
}

func TestRunCalculate_SheetFlag(t *testing.T) {
	c := testConfig(t)
	input := writeTemp(t, "sales.xlsx", salesXLSX(t, "九月", salesHeader, salesRows))

	_, err := runCalculate(context.Background(), c, calculateArgs{Input: input, Sheet: "十月", Now: fixedNow})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = runCalculate(context.Background(), c, calculateArgs{Input: input, Sheet: "九月", Now: fixedNow})
	require.NoError(t, err)
}

func TestRunCalculate_Errors(t *testing.T) {
	c := testConfig(t)

	_, err := runCalculate(context.Background(), c, calculateArgs{Input: "x.xlsx", Format: "pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")

	missing := writeTemp(t, "bad.csv", salesCSV([]string{dataset.ColOrderID, dataset.ColState}, [][]string{{"S1", "销售"}}))
	_, err = runCalculate(context.Background(), c, calculateArgs{Input: missing, Now: fixedNow})
	_, ok := dataset.IsSchemaError(err)
	assert.True(t, ok)

	entries, err := os.ReadDir(c.Output.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no output is written for a failed run")
}

func TestCalculateCommand_Flags(t *testing.T) {
	for _, name := range []string{"input", "output", "format", "sheet"} {
		assert.NotNil(t, calculateCmd.Flags().Lookup(name), "calculate should have --%s", name)
	}
}
