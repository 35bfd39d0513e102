// Package table holds the in-memory tabular model shared by every pipeline stage.
package table

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Value is a nullable text cell.
type Value struct {
	s     string
	valid bool
}

// Null is the absent value.
var Null = Value{}

// Of returns a present value holding s. An empty string is still present;
// use Text when empty input should read as absent.
func Of(s string) Value {
	return Value{s: s, valid: true}
}

// Text returns Of(s), or Null when s is empty.
func Text(s string) Value {
	if s == "" {
		return Null
	}
	return Of(s)
}

// Valid reports whether the value is present.
func (v Value) Valid() bool { return v.valid }

// String returns the text, or "" when absent.
func (v Value) String() string { return v.s }

// Or returns v when present, otherwise o.
func (v Value) Or(o Value) Value {
	if v.valid {
		return v
	}
	return o
}

// Row is one record, aligned with its table's columns.
type Row []Value

// Table is an ordered set of named columns and the rows aligned with them.
type Table struct {
	columns []string
	index   map[string]int
	Rows    []Row
}

// New creates an empty table with the given column names.
func New(columns ...string) *Table {
	t := &Table{columns: append([]string(nil), columns...)}
	t.reindex()
	return t
}

// FromRecords builds a table from a header row and text records.
// Records shorter than the header are padded with Null; empty cells are Null.
// Blank header cells, and data cells past the end of the header, get the
// positional name "Unnamed: N".
func FromRecords(header []string, records [][]string) (*Table, error) {
	width := len(header)
	for _, rec := range records {
		if w := dataWidth(rec); w > width {
			width = w
		}
	}

	cols := make([]string, width)
	for i := range cols {
		if i < len(header) {
			cols[i] = strings.TrimSpace(header[i])
		}
		if cols[i] == "" {
			cols[i] = fmt.Sprintf("Unnamed: %d", i)
		}
	}
	t := New(cols...)
	if len(t.index) != len(cols) {
		return nil, eris.Errorf("table: duplicate column in header %v", cols)
	}
	for _, rec := range records {
		row := make(Row, len(cols))
		for i := range cols {
			if i < len(rec) {
				row[i] = Text(rec[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// dataWidth is the length of rec up to its last non-empty cell.
func dataWidth(rec []string) int {
	for i := len(rec) - 1; i >= 0; i-- {
		if rec[i] != "" {
			return i + 1
		}
	}
	return 0
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.columns))
	for i, c := range t.columns {
		t.index[c] = i
	}
}

// Columns returns a copy of the column names.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the row count.
func (t *Table) Len() int { return len(t.Rows) }

// Index returns the position of column name.
func (t *Table) Index(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Has reports whether the table has column name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Get returns the value of column name in row r, Null if the column does not exist.
func (t *Table) Get(r int, name string) Value {
	i, ok := t.index[name]
	if !ok {
		return Null
	}
	return t.Rows[r][i]
}

// Column returns every value of column name.
func (t *Table) Column(name string) ([]Value, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, eris.Errorf("table: no column %q", name)
	}
	out := make([]Value, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out, nil
}

// Append adds a row. The row must have one value per column.
func (t *Table) Append(row Row) error {
	if len(row) != len(t.columns) {
		return eris.Errorf("table: row has %d values, table has %d columns", len(row), len(t.columns))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := New(t.columns...)
	c.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		c.Rows[i] = append(Row(nil), row...)
	}
	return c
}

// Select returns a new table holding only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		j, ok := t.index[n]
		if !ok {
			return nil, eris.Errorf("table: select unknown column %q", n)
		}
		idx[i] = j
	}
	out := New(names...)
	out.Rows = make([]Row, len(t.Rows))
	for r, row := range t.Rows {
		nr := make(Row, len(idx))
		for i, j := range idx {
			nr[i] = row[j]
		}
		out.Rows[r] = nr
	}
	return out, nil
}

// Drop returns a new table without the named columns. Unknown names are an error.
func (t *Table) Drop(names ...string) (*Table, error) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if !t.Has(n) {
			return nil, eris.Errorf("table: drop unknown column %q", n)
		}
		drop[n] = true
	}
	var keep []string
	for _, c := range t.columns {
		if !drop[c] {
			keep = append(keep, c)
		}
	}
	return t.Select(keep...)
}

// Rename returns a new table with columns relabeled per mapping. Values are shared by copy.
func (t *Table) Rename(mapping map[string]string) (*Table, error) {
	cols := t.Columns()
	for i, c := range cols {
		if to, ok := mapping[c]; ok {
			cols[i] = to
		}
	}
	out := New(cols...)
	if len(out.index) != len(cols) {
		return nil, eris.Errorf("table: rename produces duplicate columns %v", cols)
	}
	out.Rows = t.Clone().Rows
	return out, nil
}

// WithColumn returns a new table with column name set to values. The column is
// appended when it does not exist yet.
func (t *Table) WithColumn(name string, values []Value) (*Table, error) {
	if len(values) != len(t.Rows) {
		return nil, eris.Errorf("table: column %q has %d values, table has %d rows", name, len(values), len(t.Rows))
	}
	out := t.Clone()
	i, ok := out.index[name]
	if !ok {
		out.columns = append(out.columns, name)
		out.reindex()
		i = len(out.columns) - 1
		for r := range out.Rows {
			out.Rows[r] = append(out.Rows[r], Null)
		}
	}
	for r := range out.Rows {
		out.Rows[r][i] = values[r]
	}
	return out, nil
}

// Records renders the table as text records, absent values as empty strings.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = v.String()
		}
		out[r] = rec
	}
	return out
}
