package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/gpc/internal/db"
	"github.com/chriserin/gpc/internal/ui"
)

var historyFlags struct {
	limit   int
	outputs bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded compile runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunHistory(cmd.OutOrStdout(), historyFlags.limit, historyFlags.outputs)
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "maximum number of runs, 0 for all")
	historyCmd.Flags().BoolVar(&historyFlags.outputs, "outputs", false, "list the files each run wrote")
	rootCmd.AddCommand(historyCmd)
}

func RunHistory(w io.Writer, limit int, outputs bool) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("no run ledger; run `gpc init` or `gpc compile --record` first")
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	runs, err := db.ListRuns(sqlDB, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "no runs recorded")
		return nil
	}

	idWidth := 0
	for _, r := range runs {
		idWidth = max(idWidth, len(r.ID))
	}
	for _, r := range runs {
		ui.RunRow(w, r, idWidth)
		if !outputs {
			continue
		}
		files, err := db.RunOutputs(sqlDB, r.ID)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprint(w, "  ")
			ui.OutLine(w, f.Output)
		}
	}
	return nil
}
