package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectRows(t *testing.T, rowCh <-chan []string, errCh <-chan error) ([][]string, error) {
	t.Helper()
	var rows [][]string
	for row := range rowCh {
		rows = append(rows, row)
	}
	// Drain error channel
	for err := range errCh {
		if err != nil {
			return rows, err
		}
	}
	return rows, nil
}

func TestStreamCSV_Basic(t *testing.T) {
	input := "a,b,c\n1,2,3\n4,5,6\n"
	rowCh, errCh := streamCSV(context.Background(), strings.NewReader(input))
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "b", "c"}, rows[0])
	assert.Equal(t, []string{"1", "2", "3"}, rows[1])
	assert.Equal(t, []string{"4", "5", "6"}, rows[2])
}

func TestStreamCSV_VariableWidth(t *testing.T) {
	input := "a,b,c\n1\n4,5,6,7\n"
	rowCh, errCh := streamCSV(context.Background(), strings.NewReader(input))
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1"}, rows[1])
	assert.Equal(t, []string{"4", "5", "6", "7"}, rows[2])
}

func TestStreamCSV_ContextCancellation(t *testing.T) {
	var sb strings.Builder
	for range 10000 {
		sb.WriteString("a,b,c\n")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rowCh, errCh := streamCSV(ctx, strings.NewReader(sb.String()))

	count := 0
	for range rowCh {
		count++
		if count >= 5 {
			cancel()
			break
		}
	}
	for range rowCh {
	}

	var gotErr error
	for err := range errCh {
		if err != nil {
			gotErr = err
		}
	}
	// the reader may finish before it notices the cancellation
	if gotErr != nil {
		assert.Contains(t, gotErr.Error(), "context cancelled")
	}
}

func TestStreamCSV_Empty(t *testing.T) {
	rowCh, errCh := streamCSV(context.Background(), strings.NewReader(""))
	rows, err := collectRows(t, rowCh, errCh)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStreamCSV_Malformed(t *testing.T) {
	input := "a,b\n1,\"unterminated\n"
	rowCh, errCh := streamCSV(context.Background(), strings.NewReader(input))
	_, err := collectRows(t, rowCh, errCh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv: read row")
}

func TestReadCSV_Table(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final.csv")
	require.NoError(t, os.WriteFile(path, []byte("First_Name,Note\nMARY,\n\"O'NEIL, JR\",x\n"), 0o644))

	tbl, err := ReadCSV(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"First_Name", "Note"}, tbl.Columns())
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "MARY", tbl.Get(0, "First_Name").String())
	assert.False(t, tbl.Get(0, "Note").Valid())
	assert.Equal(t, "O'NEIL, JR", tbl.Get(1, "First_Name").String())
}

func TestReadCSV_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := ReadCSV(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, err := ReadCSV(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv: open file")
}

func TestReadCSV_Cancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadCSV(ctx, path)
	require.Error(t, err)
}
