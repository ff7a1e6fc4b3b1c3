package dataset

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Table is a header row plus data rows of string cells. Rows may be shorter
// than the header; missing cells read as blank.
type Table struct {
	Header []string
	Rows   [][]string

	// Lines holds the 1-based source line of each row, counting the header
	// and any blank rows that were dropped.
	Lines []int

	// Derived is the index of the first derived column in an annotated
	// table, or 0 for a source table.
	Derived int

	index map[string]int
}

// NewTable builds a table from raw records, the first being the header on
// line 1. Header cells are trimmed and rows with no content are dropped.
func NewTable(records [][]string) (*Table, error) {
	return NewTableAt(records, 1)
}

// NewTableAt is NewTable for records whose header sits on source line
// firstLine, e.g. after rows above it were skipped.
func NewTableAt(records [][]string, firstLine int) (*Table, error) {
	if len(records) == 0 {
		return nil, NewParseError(eris.New("no header row"))
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	if blankRow(header) {
		return nil, NewParseError(eris.New("header row is empty"))
	}

	rows := make([][]string, 0, len(records)-1)
	lines := make([]int, 0, len(records)-1)
	for i, r := range records[1:] {
		if !blankRow(r) {
			rows = append(rows, r)
			lines = append(lines, firstLine+1+i)
		}
	}

	return &Table{Header: header, Rows: rows, Lines: lines}, nil
}

// Index returns the position of a column, or -1. The first occurrence of a
// duplicated header wins.
func (t *Table) Index(col string) int {
	if t.index == nil {
		t.index = make(map[string]int, len(t.Header))
		for i, h := range t.Header {
			if _, dup := t.index[h]; !dup {
				t.index[h] = i
			}
		}
	}
	if i, ok := t.index[col]; ok {
		return i
	}
	return -1
}

// Has reports whether the header contains col.
func (t *Table) Has(col string) bool { return t.Index(col) >= 0 }

// Cell returns the trimmed cell at row r for column col, or "".
func (t *Table) Cell(r int, col string) string {
	i := t.Index(col)
	if i < 0 || r < 0 || r >= len(t.Rows) || i >= len(t.Rows[r]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[r][i])
}

// Column returns every cell of col in row order.
func (t *Table) Column(col string) []string {
	out := make([]string, len(t.Rows))
	for r := range t.Rows {
		out[r] = t.Cell(r, col)
	}
	return out
}

// Head returns a copy of the table limited to its first n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) || n < 0 {
		n = len(t.Rows)
	}
	out := &Table{Header: t.Header, Rows: t.Rows[:n], Derived: t.Derived}
	if len(t.Lines) >= n {
		out.Lines = t.Lines[:n]
	}
	return out
}

// Line returns the source line of row r. Tables built by hand without Lines
// count the header as line 1 and assume no gaps.
func (t *Table) Line(r int) int {
	if r >= 0 && r < len(t.Lines) {
		return t.Lines[r]
	}
	return r + 2
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
