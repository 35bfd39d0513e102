package fetcher

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/obt-cli/internal/table"
)

// streamCSV reads CSV rows and sends them to a channel. Rows may vary in
// width. Caller must consume the returned row channel. Errors are sent on the
// error channel. Both channels are closed when processing completes.
func streamCSV(ctx context.Context, r io.Reader) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1 // allow variable fields

		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "csv: read row")
				return
			}

			select {
			case rowCh <- record:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

// ReadCSV loads a CSV file with a header row into a table. Empty fields
// become absent values.
func ReadCSV(ctx context.Context, path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "csv: open file %s", path)
	}
	defer f.Close() //nolint:errcheck

	rowCh, errCh := streamCSV(ctx, f)

	var header []string
	var records [][]string
	for row := range rowCh {
		if header == nil {
			header = row
			continue
		}
		records = append(records, row)
	}
	if err := <-errCh; err != nil {
		return nil, eris.Wrapf(err, "csv: %s", path)
	}
	if header == nil {
		return nil, eris.Errorf("csv: %s has no header row", path)
	}
	return table.FromRecords(header, records)
}
