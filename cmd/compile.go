package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/chriserin/gpc/internal/compiler"
	"github.com/chriserin/gpc/internal/config"
	"github.com/chriserin/gpc/internal/db"
	"github.com/chriserin/gpc/internal/discover"
	"github.com/chriserin/gpc/internal/format"
	"github.com/chriserin/gpc/internal/parser"
	"github.com/chriserin/gpc/internal/passes"
	"github.com/chriserin/gpc/internal/ui"
)

var compileFlags struct {
	source      string
	base        string
	destination string
	clean       bool
	record      bool
}

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile the source feature files into the destination directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return RunCompile(cmd.Context(), cmd.OutOrStdout(), cfg)
	},
}

func init() {
	f := compileCmd.Flags()
	f.StringVar(&compileFlags.source, "source", "", "glob of feature files to compile")
	f.StringVar(&compileFlags.base, "base", "", "directory stripped from input paths")
	f.StringVar(&compileFlags.destination, "destination", "", "output directory")
	f.BoolVar(&compileFlags.clean, "clean", false, "remove the destination directory first")
	f.BoolVar(&compileFlags.record, "record", false, "record the run in "+dbPath)
	rootCmd.AddCommand(compileCmd)
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = compileFlags.source
	}
	if flags.Changed("base") {
		cfg.Base = compileFlags.base
	}
	if flags.Changed("destination") {
		cfg.Destination = compileFlags.destination
	}
	if flags.Changed("clean") {
		cfg.Clean = compileFlags.clean
	}
	if flags.Changed("record") {
		cfg.Record = compileFlags.record
	}
	return cfg, cfg.Validate()
}

// buildPasses creates the configured passes in order, failing on the first
// that cannot be built.
func buildPasses(cfg *config.Config) ([]*compiler.Hooks, []string, error) {
	hooks := make([]*compiler.Hooks, 0, len(cfg.Passes))
	names := make([]string, 0, len(cfg.Passes))
	for _, p := range cfg.Passes {
		h, err := passes.Build(p.Name, p.Options)
		if err != nil {
			return nil, nil, err
		}
		hooks = append(hooks, h)
		names = append(names, p.Name)
	}
	return hooks, names, nil
}

// compileFile parses path, runs it through hooks and formats every document
// produced.
func compileFile(ctx context.Context, path string, hooks []*compiler.Hooks, opts format.Options) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := parser.Parse(path, content)
	if err != nil {
		return nil, err
	}
	docs, err := compiler.Process(ctx, doc, hooks...)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", path, err)
	}
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = format.Format(d, opts)
	}
	return texts, nil
}

func RunCompile(ctx context.Context, w io.Writer, cfg *config.Config) error {
	started := time.Now()

	hooks, names, err := buildPasses(cfg)
	if err != nil {
		return err
	}
	pairs, err := discover.Find(cfg.Source, cfg.Base, cfg.Destination)
	if err != nil {
		return err
	}

	if cfg.Clean {
		log.Info().Str("dir", cfg.Destination).Msg("cleaning destination")
		if err := os.RemoveAll(cfg.Destination); err != nil {
			return fmt.Errorf("cleaning %s: %w", cfg.Destination, err)
		}
	}

	opts := format.Options{Indent: cfg.Format.Indent}
	var written []db.Output
	for _, p := range pairs {
		texts, err := compileFile(ctx, p.Input, hooks, opts)
		if err != nil {
			return err
		}
		if len(texts) == 0 {
			log.Info().Str("file", p.Input).Msg("no documents produced")
			ui.NoneLine(w, p.Input)
			continue
		}
		for i, out := range discover.OutputNames(p.Output, len(texts)) {
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", filepath.Dir(out), err)
			}
			if err := os.WriteFile(out, []byte(texts[i]), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			log.Debug().Str("input", p.Input).Str("output", out).Msg("wrote document")
			ui.OutLine(w, out)
			written = append(written, db.Output{Input: p.Input, Output: out})
		}
	}

	if cfg.Record {
		id, err := record(started, names, written)
		if err != nil {
			return err
		}
		ui.RunRecorded(w, id)
	}

	ui.SummaryLine(w, len(pairs), len(written))
	return nil
}

func record(started time.Time, names []string, written []db.Output) (string, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", stateDir, err)
	}
	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return "", fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()
	return db.RecordRun(sqlDB, started, names, written)
}
