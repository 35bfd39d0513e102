// Package export writes pipeline tables to delimited files and run manifests.
package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/obt-cli/internal/table"
)

// File pairs a table with the base name it is written under.
type File struct {
	Name  string // without extension
	Table *table.Table
}

// WriteCSV writes t to path with a header row. Absent values are empty fields.
// The file is written next to path and renamed into place.
func WriteCSV(path string, t *table.Table) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Columns()); err != nil {
		tmp.Close() //nolint:errcheck
		return eris.Wrapf(err, "export: write header %s", path)
	}
	if err := w.WriteAll(t.Records()); err != nil {
		tmp.Close() //nolint:errcheck
		return eris.Wrapf(err, "export: write rows %s", path)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close() //nolint:errcheck
		return eris.Wrapf(err, "export: chmod %s", path)
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrapf(err, "export: close %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return eris.Wrapf(err, "export: rename %s", path)
	}
	return nil
}

// WriteCSVs writes each file as dir/<name>.csv and returns the paths in the
// order given. dir is created if needed.
func WriteCSVs(ctx context.Context, dir string, files []File) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "export: mkdir %s", dir)
	}

	paths := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		paths[i] = filepath.Join(dir, f.Name+".csv")
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return eris.Wrap(err, "export: cancelled")
			}
			if err := WriteCSV(paths[i], f.Table); err != nil {
				return err
			}
			zap.L().Info("wrote csv",
				zap.String("path", paths[i]),
				zap.Int("rows", f.Table.Len()),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
