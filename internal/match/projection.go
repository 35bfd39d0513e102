package match

import (
	"strings"

	"github.com/sells-group/obt-cli/internal/dedupe"
	"github.com/sells-group/obt-cli/internal/table"
)

// Projections memoizes first-occurrence deduplications of one table by key set.
// A single-key join against a projection cannot fan out.
type Projections struct {
	src   *table.Table
	cache map[string]*table.Table
}

// NewProjections returns an empty cache over src.
func NewProjections(src *table.Table) *Projections {
	return &Projections{src: src, cache: make(map[string]*table.Table)}
}

// By returns src deduplicated on keys.
func (p *Projections) By(keys ...string) (*table.Table, error) {
	id := strings.Join(keys, "\x00")
	if t, ok := p.cache[id]; ok {
		return t, nil
	}
	t, err := dedupe.Rows(p.src, keys...)
	if err != nil {
		return nil, err
	}
	p.cache[id] = t
	return t, nil
}
