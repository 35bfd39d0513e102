// Package store persists pipeline tables and run records.
package store

import (
	"context"
	"time"

	"github.com/sells-group/obt-cli/internal/table"
)

// Run records one pipeline execution.
type Run struct {
	ID        string      `yaml:"id"`
	Input     string      `yaml:"input"`
	FinalRows int         `yaml:"final_rows"`
	Sources   []RunSource `yaml:"sources,omitempty"`
	CreatedAt time.Time   `yaml:"created_at"`
}

// RunSource holds the row counts of one cleaned source sheet.
type RunSource struct {
	Name     string  `yaml:"name"`
	RawRows  int     `yaml:"raw_rows"`
	KeptRows int     `yaml:"kept_rows"`
	LossPct  float64 `yaml:"loss_pct"`
}

// Store defines the persistence interface for pipeline output.
type Store interface {
	// SaveTable replaces table name with the contents of t.
	SaveTable(ctx context.Context, name string, t *table.Table) error

	// Runs
	CreateRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
