package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/obt-cli/internal/fetcher"
)

var sheetsWorkbook string

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "List the sheets of a workbook in order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := cfg.Input.Workbook
		if sheetsWorkbook != "" {
			path = sheetsWorkbook
		}

		wb, err := fetcher.Open(path)
		if err != nil {
			return eris.Wrap(err, "sheets")
		}
		for i, name := range wb.SheetNames() {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i+1, name)
		}
		return nil
	},
}

func init() {
	sheetsCmd.Flags().StringVar(&sheetsWorkbook, "workbook", "", "path to the workbook (default from config)")
	rootCmd.AddCommand(sheetsCmd)
}
