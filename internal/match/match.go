// Package match resolves one-to-one correspondences between two tables using
// an ordered list of equality join strategies.
package match

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/obt-cli/internal/dedupe"
	"github.com/sells-group/obt-cli/internal/table"
)

// KeyPair names a join column on each side.
type KeyPair struct {
	Left  string
	Right string
}

// Strategy is one left join. All key pairs must match simultaneously.
type Strategy struct {
	Name string
	Keys []KeyPair
	// Distinct joins against the secondary table deduplicated on this
	// strategy's right keys, first occurrence wins.
	Distinct bool
}

func (s Strategy) leftKeys() []string {
	out := make([]string, len(s.Keys))
	for i, k := range s.Keys {
		out[i] = k.Left
	}
	return out
}

func (s Strategy) rightKeys() []string {
	out := make([]string, len(s.Keys))
	for i, k := range s.Keys {
		out[i] = k.Right
	}
	return out
}

// StrategyStats counts what one strategy contributed.
type StrategyStats struct {
	Name string `yaml:"name"`
	// Hits is the number of primary rows the strategy's join matched.
	Hits int `yaml:"hits"`
	// Resolved is the number of primary rows for which this was the
	// highest-priority strategy that matched.
	Resolved int `yaml:"resolved"`
	// Ties is the number of primary rows with more than one candidate;
	// the first listed candidate was used.
	Ties int `yaml:"ties"`
}

// Stats summarizes a Cascade run.
type Stats struct {
	Rows       int             `yaml:"rows"`
	Unmatched  int             `yaml:"unmatched"`
	Strategies []StrategyStats `yaml:"strategies"`
}

// Result is the primary table extended with the resolved secondary columns.
type Result struct {
	Table *table.Table
	Stats Stats
}

// Cascade left-joins p against s once per strategy and merges the joins
// column by column: each secondary column takes its value from the
// highest-priority strategy whose match has that column present.
//
// The output has exactly one row per row of p, in p's order. p is not
// deduplicated; callers own that. A primary row whose left key is absent
// never matches.
func Cascade(p, s *table.Table, strategies []Strategy) (*Result, error) {
	if len(strategies) == 0 {
		return nil, eris.New("match: no strategies")
	}
	for _, c := range s.Columns() {
		if p.Has(c) {
			return nil, eris.Errorf("match: column %q exists on both sides", c)
		}
	}

	log := zap.L().With(zap.String("component", "match"))
	proj := NewProjections(s)

	// matched[k][r] is the row of strategy k's secondary table joined to
	// primary row r, or -1.
	rights := make([]*table.Table, len(strategies))
	matched := make([][]int, len(strategies))
	stats := Stats{Rows: p.Len(), Strategies: make([]StrategyStats, len(strategies))}

	for k, st := range strategies {
		if len(st.Keys) == 0 {
			return nil, eris.Errorf("match: strategy %q has no keys", st.Name)
		}
		right := s
		if st.Distinct {
			var err error
			right, err = proj.By(st.rightKeys()...)
			if err != nil {
				return nil, eris.Wrapf(err, "match: project %q", st.Name)
			}
		}
		rows, ss, err := join(p, right, st)
		if err != nil {
			return nil, err
		}
		if ss.Ties > 0 {
			log.Debug("ambiguous candidates, first listed wins",
				zap.String("strategy", st.Name),
				zap.Int("rows", ss.Ties),
			)
		}
		rights[k] = right
		matched[k] = rows
		stats.Strategies[k] = ss
	}

	cols := append(p.Columns(), s.Columns()...)
	out := table.New(cols...)
	out.Rows = make([]table.Row, p.Len())
	width := len(p.Columns())

	for r, prow := range p.Rows {
		row := make(table.Row, len(cols))
		copy(row, prow)

		first := -1
		for k := range strategies {
			if matched[k][r] >= 0 {
				first = k
				break
			}
		}
		if first < 0 {
			stats.Unmatched++
		} else {
			stats.Strategies[first].Resolved++
		}

		for c := range s.Columns() {
			for k := range strategies {
				m := matched[k][r]
				if m < 0 {
					continue
				}
				// projections keep s's column order
				if v := rights[k].Rows[m][c]; v.Valid() {
					row[width+c] = v
					break
				}
			}
		}
		out.Rows[r] = row
	}

	return &Result{Table: out, Stats: stats}, nil
}

// join returns, for each row of p, the first row of right whose keys equal
// the row's keys under st, or -1.
func join(p, right *table.Table, st Strategy) ([]int, StrategyStats, error) {
	ss := StrategyStats{Name: st.Name}

	lidx, err := indexes(p, st.leftKeys())
	if err != nil {
		return nil, ss, eris.Wrapf(err, "match: strategy %q left side", st.Name)
	}
	ridx, err := indexes(right, st.rightKeys())
	if err != nil {
		return nil, ss, eris.Wrapf(err, "match: strategy %q right side", st.Name)
	}

	first := make(map[string]int, right.Len())
	count := make(map[string]int, right.Len())
	for i, row := range right.Rows {
		if !present(row, ridx) {
			continue
		}
		k := dedupe.Key(row, ridx)
		if _, ok := first[k]; !ok {
			first[k] = i
		}
		count[k]++
	}

	out := make([]int, p.Len())
	for r, row := range p.Rows {
		out[r] = -1
		if !present(row, lidx) {
			continue
		}
		k := dedupe.Key(row, lidx)
		if i, ok := first[k]; ok {
			out[r] = i
			ss.Hits++
			if count[k] > 1 {
				ss.Ties++
			}
		}
	}
	return out, ss, nil
}

func indexes(t *table.Table, names []string) ([]int, error) {
	out := make([]int, len(names))
	for i, n := range names {
		j, ok := t.Index(n)
		if !ok {
			return nil, eris.Errorf("no column %q", n)
		}
		out[i] = j
	}
	return out, nil
}

func present(row table.Row, idx []int) bool {
	for _, i := range idx {
		if !row[i].Valid() {
			return false
		}
	}
	return true
}
