package main

import (
	"context"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/obt-cli/internal/export"
	"github.com/sells-group/obt-cli/internal/fetcher"
	"github.com/sells-group/obt-cli/internal/obt"
	"github.com/sells-group/obt-cli/internal/table"
)

var (
	joinDir      string
	joinManifest string
)

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Rebuild final.csv from the cleaned source exports",
	Long: `Reads tld_report.csv, sherpa_report.csv and carrier_report.csv written by a
previous run and re-runs only the match stages, replacing final.csv in the
same directory. With --manifest, the run manifest written by that run is
updated with the new stage statistics and final row count.

Examples:
  obt-cli join --dir data
  obt-cli join --dir data --manifest data/run.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		dir := cfg.Output.Dir
		if joinDir != "" {
			dir = joinDir
		}
		if dir == "" {
			return eris.New("join: output directory is required")
		}

		var manifest *export.Manifest
		if joinManifest != "" {
			m, err := export.ReadManifest(joinManifest)
			if err != nil {
				return eris.Wrap(err, "join: manifest")
			}
			manifest = m
		}

		names := []string{obt.SourceLead, obt.SourceSales, obt.SourceCarrier}
		tables := make([]*table.Table, len(names))
		g, gctx := errgroup.WithContext(ctx)
		for i, name := range names {
			g.Go(func() error {
				t, err := fetcher.ReadCSV(gctx, filepath.Join(dir, name+".csv"))
				if err != nil {
					return eris.Wrapf(err, "join: read %s", name)
				}
				tables[i] = t
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		final, stages, err := obt.Join(ctx, tables[0], tables[1], tables[2])
		if err != nil {
			return eris.Wrap(err, "join")
		}
		paths, err := export.WriteCSVs(ctx, dir, []export.File{{Name: finalName, Table: final}})
		if err != nil {
			return eris.Wrap(err, "join: export csv")
		}

		if manifest != nil {
			manifest.Stages = stages
			manifest.FinalRows = final.Len()
			if err := export.WriteManifest(joinManifest, manifest); err != nil {
				return eris.Wrap(err, "join: manifest")
			}
		}

		zap.L().Info("join complete",
			zap.Int("final_rows", final.Len()),
			zap.Strings("outputs", paths),
		)
		return nil
	},
}

func init() {
	joinCmd.Flags().StringVar(&joinDir, "dir", "", "directory holding the cleaned exports (default from config)")
	joinCmd.Flags().StringVar(&joinManifest, "manifest", "", "run manifest to update with the join results")
	rootCmd.AddCommand(joinCmd)
}
