// Package reconcile picks one value per logical field when several sources
// supply it, and derives or splits person names.
package reconcile

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/obt-cli/internal/table"
)

// Coalesce returns primary when present, else secondary.
func Coalesce(primary, secondary table.Value) table.Value {
	return primary.Or(secondary)
}

// Columns replaces primary and secondary with a single target column holding
// Coalesce(primary, secondary). The target takes primary's position. target
// may equal primary or secondary.
func Columns(t *table.Table, target, primary, secondary string) (*table.Table, error) {
	pv, err := t.Column(primary)
	if err != nil {
		return nil, eris.Wrap(err, "reconcile")
	}
	sv, err := t.Column(secondary)
	if err != nil {
		return nil, eris.Wrap(err, "reconcile")
	}
	merged := make([]table.Value, len(pv))
	for i := range pv {
		merged[i] = Coalesce(pv[i], sv[i])
	}

	out, err := t.WithColumn(primary, merged)
	if err != nil {
		return nil, err
	}
	if secondary != primary {
		if out, err = out.Drop(secondary); err != nil {
			return nil, err
		}
	}
	if target != primary {
		if out, err = out.Rename(map[string]string{primary: target}); err != nil {
			return nil, eris.Wrapf(err, "reconcile: %s", target)
		}
	}
	return out, nil
}

// Rename relabels columns without touching values.
func Rename(t *table.Table, mapping map[string]string) (*table.Table, error) {
	out, err := t.Rename(mapping)
	return out, eris.Wrap(err, "reconcile: rename")
}

// FullName joins first and last with one space. A blank result is absent.
func FullName(first, last table.Value) table.Value {
	return table.Text(strings.TrimSpace(first.String() + " " + last.String()))
}

// SplitName splits a full name into its first whitespace-delimited token and
// the remaining tokens rejoined with single spaces. A single token has no
// last name.
func SplitName(full table.Value) (first, last table.Value) {
	parts := strings.Fields(full.String())
	if len(parts) == 0 {
		return table.Null, table.Null
	}
	return table.Of(parts[0]), table.Text(strings.Join(parts[1:], " "))
}

// WithFullName appends column target built from the first and last columns.
func WithFullName(t *table.Table, target, first, last string) (*table.Table, error) {
	fv, err := t.Column(first)
	if err != nil {
		return nil, eris.Wrap(err, "reconcile: full name")
	}
	lv, err := t.Column(last)
	if err != nil {
		return nil, eris.Wrap(err, "reconcile: full name")
	}
	full := make([]table.Value, len(fv))
	for i := range fv {
		full[i] = FullName(fv[i], lv[i])
	}
	return t.WithColumn(target, full)
}

// SplitColumn replaces column full with first and last name columns placed at
// the front of the table.
func SplitColumn(t *table.Table, full, first, last string) (*table.Table, error) {
	fv, err := t.Column(full)
	if err != nil {
		return nil, eris.Wrap(err, "reconcile: split name")
	}
	firsts := make([]table.Value, len(fv))
	lasts := make([]table.Value, len(fv))
	for i, v := range fv {
		firsts[i], lasts[i] = SplitName(v)
	}

	rest, err := t.Drop(full)
	if err != nil {
		return nil, err
	}
	for _, c := range rest.Columns() {
		if c == first || c == last {
			return nil, eris.Errorf("reconcile: split name: column %q already exists", c)
		}
	}
	out := table.New(append([]string{first, last}, rest.Columns()...)...)
	out.Rows = make([]table.Row, len(rest.Rows))
	for i, row := range rest.Rows {
		out.Rows[i] = append(table.Row{firsts[i], lasts[i]}, row...)
	}
	return out, nil
}
