// Package fetcher reads source workbooks and CSV exports into tables.
package fetcher

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/obt-cli/internal/table"
)

// Workbook is an opened XLSX file.
type Workbook struct {
	path string
	file *xlsx.File
}

// Open reads the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "xlsx: open file %s", path)
	}
	return &Workbook{path: path, file: f}, nil
}

// Path returns the file the workbook was read from.
func (w *Workbook) Path() string { return w.path }

// SheetNames lists sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.file.Sheets))
	for i, s := range w.file.Sheets {
		names[i] = s.Name
	}
	return names
}

// sheetRows returns the non-blank rows of the sheet at index as string slices.
func (w *Workbook) sheetRows(index int) ([][]string, error) {
	if index < 0 || index >= len(w.file.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", index, len(w.file.Sheets))
	}

	var rows [][]string
	for _, row := range w.file.Sheets[index].Rows {
		cells := rowToStrings(row)
		if blank(cells) {
			continue
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// Table reads the sheet at index, using its first row as the header.
// Fully blank rows are skipped.
func (w *Workbook) Table(index int) (*table.Table, error) {
	rows, err := w.sheetRows(index)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, eris.Errorf("xlsx: sheet %d has no header row", index)
	}
	t, err := table.FromRecords(rows[0], rows[1:])
	if err != nil {
		return nil, eris.Wrapf(err, "xlsx: sheet %d", index)
	}
	return t, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
