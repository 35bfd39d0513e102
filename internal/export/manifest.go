package export

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/obt-cli/internal/dedupe"
	"github.com/sells-group/obt-cli/internal/obt"
)

// Manifest summarizes one pipeline run.
type Manifest struct {
	RunID     string         `yaml:"run_id"`
	Input     string         `yaml:"input"`
	Sheets    []string       `yaml:"sheets"`
	StartedAt time.Time      `yaml:"started_at"`
	Sources   []SourceReport `yaml:"sources"`
	Stages    []obt.Stage    `yaml:"stages"`
	FinalRows int            `yaml:"final_rows"`
	Outputs   []string       `yaml:"outputs"`
}

// SourceReport is the cleaning outcome of one input sheet.
type SourceReport struct {
	Name   string        `yaml:"name"`
	Report dedupe.Report `yaml:",inline"`
}

// NewManifest fills a manifest from a pipeline result.
func NewManifest(runID, input string, sheets []string, started time.Time, res *obt.Result, outputs []string) *Manifest {
	m := &Manifest{
		RunID:     runID,
		Input:     input,
		Sheets:    sheets,
		StartedAt: started.UTC(),
		Stages:    res.Stages,
		FinalRows: res.Final.Len(),
		Outputs:   outputs,
	}
	for _, c := range res.CleanedSources() {
		m.Sources = append(m.Sources, SourceReport{Name: c.Source, Report: c.Report})
	}
	return m
}

// WriteManifest saves m as YAML at path.
func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return eris.Wrap(err, "export: marshal manifest")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write manifest %s", path)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "export: read manifest %s", path)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrap(err, "export: parse manifest")
	}
	return &m, nil
}
