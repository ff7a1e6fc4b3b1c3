package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/commission-cli/internal/dataset"
	"github.com/sells-group/commission-cli/internal/model"
)

func annotatedFixture(t *testing.T) *dataset.Table {
	t.Helper()
	src, err := dataset.NewTable([][]string{
		{dataset.ColOrderID, dataset.ColSalesperson},
		{"S001", "王芳"},
		{"S002", "李娜"},
	})
	require.NoError(t, err)

	out, err := dataset.Annotate(src, []model.Derived{
		{
			Type:          model.TypeA1,
			DiscountRatio: decimal.RequireFromString("0.95"),
			MarkupRate:    decimal.RequireFromString("0.055"),
			Markup:        decimal.RequireFromString("522.5"),
			OrderTotal:    decimal.RequireFromString("522.5"),
		},
		{Type: model.TypeB3},
	})
	require.NoError(t, err)
	return out
}

var summaryFixture = []model.SalespersonSummary{
	{Salesperson: "李娜", Orders: 1, Commission: decimal.Zero},
	{Salesperson: "王芳", Orders: 1, Commission: decimal.RequireFromString("522.504")},
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, annotatedFixture(t), summaryFixture, XLSXOptions{}))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)
	assert.Equal(t, DetailSheet, f.Sheets[0].Name)
	assert.Equal(t, SummarySheet, f.Sheets[1].Name)

	detail := f.Sheets[0]
	require.Len(t, detail.Rows, 3)
	assert.Equal(t, dataset.ColOrderID, detail.Rows[0].Cells[0].String())
	assert.Equal(t, dataset.ColType, detail.Rows[0].Cells[2].String())

	first := detail.Rows[1]
	assert.Equal(t, "S001", first.Cells[0].String())
	assert.Equal(t, "A1", first.Cells[2].String())
	assert.Equal(t, xlsx.CellTypeString, first.Cells[2].Type())
	assert.Equal(t, xlsx.CellTypeNumeric, first.Cells[5].Type())
	markup, err := first.Cells[5].Float()
	require.NoError(t, err)
	assert.InDelta(t, 522.5, markup, 1e-9)

	summary := f.Sheets[1]
	require.Len(t, summary.Rows, 3)
	assert.Equal(t, "主销", summary.Rows[0].Cells[0].String())
	assert.Equal(t, "王芳", summary.Rows[2].Cells[0].String())
	total, err := summary.Rows[2].Cells[2].Float()
	require.NoError(t, err)
	assert.InDelta(t, 522.5, total, 1e-9)
}

func TestWriteXLSX_CustomSheetsNoSummary(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, annotatedFixture(t), nil, XLSXOptions{DetailSheet: "Detail"}))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)
	assert.Equal(t, "Detail", f.Sheets[0].Name)
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, annotatedFixture(t)))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\ufeff"))
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, "\ufeff")), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "销售单号,主销,提成类型"))
	assert.Equal(t, "S001,王芳,A1,0.95,0.055,522.5,0,0,0,522.5", lines[1])
	assert.Equal(t, "S002,李娜,B3,0,0,0,0,0,0,0", lines[2])
}

func TestWriteSummaryCSV(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryCSV(&buf, summaryFixture))
	assert.Equal(t, "\ufeff主销,订单数,整单提成\n李娜,1,0\n王芳,1,522.5\n", buf.String())
}

func TestWriteSummaryCSV_Empty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryCSV(&buf, nil))
	assert.Equal(t, "\ufeff主销,订单数,整单提成\n", buf.String())
}

func TestDefaultFileName(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 10, 15, 9, 5, 3, 0, time.UTC)
	assert.Equal(t, "提成计算_20261015_090503.xlsx", DefaultFileName(now, "xlsx"))
	assert.Equal(t, "提成计算_20261015_090503.csv", DefaultFileName(now, ".CSV"))
}

func TestContentType(t *testing.T) {
	t.Parallel()
	assert.Contains(t, ContentType("xlsx"), "spreadsheetml")
	assert.Contains(t, ContentType("csv"), "text/csv")
	assert.Equal(t, "application/json", ContentType("json"))
}
