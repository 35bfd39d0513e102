// Package dedupe removes redundant rows, keeping the first occurrence per key.
package dedupe

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/obt-cli/internal/table"
)

// ErrEmptyInput is returned by Loss when the raw table had no rows.
var ErrEmptyInput = eris.New("dedupe: data loss undefined for empty input")

// Report describes how many rows a cleaning step discarded.
type Report struct {
	Raw     int     `yaml:"raw"`
	Kept    int     `yaml:"kept"`
	LossPct float64 `yaml:"loss_pct"` // percent, two decimals
}

// Rows returns a new table holding the first row for each distinct value of
// keys. With no keys the whole row is the key.
func Rows(t *table.Table, keys ...string) (*table.Table, error) {
	idx := make([]int, 0, len(keys))
	for _, k := range keys {
		i, ok := t.Index(k)
		if !ok {
			return nil, eris.Errorf("dedupe: unknown key column %q", k)
		}
		idx = append(idx, i)
	}
	if len(keys) == 0 {
		for i := range t.Columns() {
			idx = append(idx, i)
		}
	}

	out := table.New(t.Columns()...)
	seen := make(map[string]struct{}, t.Len())
	for _, row := range t.Rows {
		k := Key(row, idx)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out.Rows = append(out.Rows, append(table.Row(nil), row...))
	}
	return out, nil
}

// Key encodes the values at idx into a map key. Absent and empty text encode
// differently, and absent equals absent.
func Key(row table.Row, idx []int) string {
	var b strings.Builder
	for _, i := range idx {
		v := row[i]
		if !v.Valid() {
			b.WriteByte(0)
			continue
		}
		b.WriteByte(1)
		b.WriteString(v.String())
		b.WriteByte(0x1f)
	}
	return b.String()
}

// Loss computes the share of rows removed between raw and kept.
func Loss(raw, kept int) (Report, error) {
	if raw == 0 {
		return Report{Raw: raw, Kept: kept}, ErrEmptyInput
	}
	pct := float64(raw-kept) / float64(raw) * 100
	return Report{
		Raw:     raw,
		Kept:    kept,
		LossPct: math.Round(pct*100) / 100,
	}, nil
}
