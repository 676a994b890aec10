package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/gpc/internal/passes"
)

var passesCmd = &cobra.Command{
	Use:   "passes",
	Short: "List the passes that can be configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunPasses(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(passesCmd)
}

func RunPasses(w io.Writer) error {
	names := passes.Names()
	width := 0
	for _, n := range names {
		width = max(width, len(n))
	}
	for _, n := range names {
		fmt.Fprintf(w, "%-*s  %s\n", width, n, passes.Summary(n))
	}
	return nil
}
