// Package fetchertest builds XLSX fixtures for tests.
package fetchertest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

// Sheet is one named sheet of string cells.
type Sheet struct {
	Name string
	Rows [][]string
}

// WriteXLSX saves sheets, in order, to a workbook under t.TempDir and
// returns its path.
func WriteXLSX(t *testing.T, sheets ...Sheet) string {
	t.Helper()
	f := xlsx.NewFile()
	for _, s := range sheets {
		sheet, err := f.AddSheet(s.Name)
		require.NoError(t, err)
		for _, rowData := range s.Rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				row.AddCell().SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.Save(path))
	return path
}
