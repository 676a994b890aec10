package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/gpc/internal/config"
	"github.com/chriserin/gpc/internal/format"
	"github.com/chriserin/gpc/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Compile one feature file and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFlag)
		if err != nil {
			return err
		}
		return RunShow(cmd.Context(), cmd.OutOrStdout(), cfg, args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// RunShow compiles path with the configured passes without writing anything.
func RunShow(ctx context.Context, w io.Writer, cfg *config.Config, path string) error {
	hooks, _, err := buildPasses(cfg)
	if err != nil {
		return err
	}
	texts, err := compileFile(ctx, path, hooks, format.Options{Indent: cfg.Format.Indent})
	if err != nil {
		return err
	}

	ui.ShowHeader(w, path, len(texts))
	for _, text := range texts {
		fmt.Fprintln(w)
		ui.ShowGherkin(w, text)
	}
	return nil
}
