package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/obt-cli/internal/export"
	"github.com/sells-group/obt-cli/internal/fetcher"
	"github.com/sells-group/obt-cli/internal/obt"
	"github.com/sells-group/obt-cli/internal/store"
)

var (
	runWorkbook string
	runOutDir   string
	runSQLite   string
	runManifest string
)

// finalName is the base name of the One-Big-Table export.
const finalName = "final"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build the One-Big-Table from a workbook",
	Long: `Reads the carrier, sales and lead sheets (in that order) from the workbook,
cleans each one, joins them and writes:

  <out>/tld_report.csv, <out>/sherpa_report.csv, <out>/carrier_report.csv
  <out>/final.csv

Examples:
  obt-cli run --workbook data/data.xlsx --out data
  obt-cli run --sqlite data/obt.db --manifest data/run.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		applyRunFlags()
		if err := cfg.Validate(); err != nil {
			return err
		}

		started := time.Now()
		runID := uuid.New().String()
		log := zap.L().With(zap.String("run_id", runID))

		wb, err := fetcher.Open(cfg.Input.Workbook)
		if err != nil {
			return eris.Wrap(err, "run: open workbook")
		}
		src, err := obt.Load(wb)
		if err != nil {
			return eris.Wrap(err, "run: load sheets")
		}
		res, err := obt.Build(ctx, src)
		if err != nil {
			return eris.Wrap(err, "run: build")
		}

		files := make([]export.File, 0, 4)
		for _, c := range res.CleanedSources() {
			files = append(files, export.File{Name: c.Source, Table: c.Table})
		}
		files = append(files, export.File{Name: finalName, Table: res.Final})

		paths, err := export.WriteCSVs(ctx, cfg.Output.Dir, files)
		if err != nil {
			return eris.Wrap(err, "run: export csv")
		}

		if cfg.Output.SQLitePath != "" {
			if err := saveSQLite(ctx, cfg.Output.SQLitePath, runID, files, res); err != nil {
				return err
			}
			log.Info("saved sqlite", zap.String("path", cfg.Output.SQLitePath))
		}

		if cfg.Output.Manifest != "" {
			m := export.NewManifest(runID, cfg.Input.Workbook, wb.SheetNames(), started, res, paths)
			if err := export.WriteManifest(cfg.Output.Manifest, m); err != nil {
				return eris.Wrap(err, "run: manifest")
			}
		}

		log.Info("run complete",
			zap.Int("final_rows", res.Final.Len()),
			zap.Strings("outputs", paths),
			zap.Duration("elapsed", time.Since(started)),
		)
		return nil
	},
}

func applyRunFlags() {
	if runWorkbook != "" {
		cfg.Input.Workbook = runWorkbook
	}
	if runOutDir != "" {
		cfg.Output.Dir = runOutDir
	}
	if runSQLite != "" {
		cfg.Output.SQLitePath = runSQLite
	}
	if runManifest != "" {
		cfg.Output.Manifest = runManifest
	}
}

func saveSQLite(ctx context.Context, path, runID string, files []export.File, res *obt.Result) error {
	st, err := store.NewSQLite(path)
	if err != nil {
		return eris.Wrap(err, "run: open sqlite")
	}
	defer st.Close() //nolint:errcheck

	if err := st.Migrate(ctx); err != nil {
		return err
	}
	for _, f := range files {
		if err := st.SaveTable(ctx, f.Name, f.Table); err != nil {
			return err
		}
	}
	run := store.Run{
		ID:        runID,
		Input:     cfg.Input.Workbook,
		FinalRows: res.Final.Len(),
	}
	for _, c := range res.CleanedSources() {
		run.Sources = append(run.Sources, store.RunSource{
			Name:     c.Source,
			RawRows:  c.Report.Raw,
			KeptRows: c.Report.Kept,
			LossPct:  c.Report.LossPct,
		})
	}
	return st.CreateRun(ctx, run)
}

func init() {
	runCmd.Flags().StringVar(&runWorkbook, "workbook", "", "path to the input workbook (default from config)")
	runCmd.Flags().StringVar(&runOutDir, "out", "", "output directory for CSV files (default from config)")
	runCmd.Flags().StringVar(&runSQLite, "sqlite", "", "also write every table to this SQLite database")
	runCmd.Flags().StringVar(&runManifest, "manifest", "", "write a YAML run manifest to this path")
	rootCmd.AddCommand(runCmd)
}
