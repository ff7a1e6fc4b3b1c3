package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSummary_Table(t *testing.T) {
	input := writeTemp(t, "sales.xlsx", salesXLSX(t, "Sheet1", salesHeader, salesRows))

	var out bytes.Buffer
	require.NoError(t, runSummary(context.Background(), &out, testConfig(t), input, "", "table"))

	text := out.String()
	assert.Contains(t, text, "王芳")
	assert.Contains(t, text, "李娜")
	assert.Contains(t, text, "522.5")
	assert.Contains(t, text, "552.5")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("李娜")), bytes.Index(out.Bytes(), []byte("王芳")))
}

func TestRunSummary_CSV(t *testing.T) {
	input := writeTemp(t, "sales.csv", salesCSV(salesHeader, salesRows))

	var out bytes.Buffer
	require.NoError(t, runSummary(context.Background(), &out, testConfig(t), input, "", "csv"))
	assert.Equal(t, "\ufeff主销,订单数,整单提成\n李娜,1,30\n王芳,2,522.5\n", out.String())
}

func TestRunSummary_BlankSalesperson(t *testing.T) {
	rows := [][]string{{"S001", "销售", "件数", "10000", "9500", "钻石", "", "", "", "9500", ""}}
	input := writeTemp(t, "sales.csv", salesCSV(salesHeader, rows))

	var out bytes.Buffer
	require.NoError(t, runSummary(context.Background(), &out, testConfig(t), input, "", "table"))
	assert.Contains(t, out.String(), "(未填写)")
}

func TestRunSummary_UnsupportedFormat(t *testing.T) {
	input := writeTemp(t, "sales.csv", salesCSV(salesHeader, salesRows))

	err := runSummary(context.Background(), &bytes.Buffer{}, testConfig(t), input, "", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
