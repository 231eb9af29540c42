// Package main provides the CLI entrypoint for binop-generator.
//
// binop-generator expands binary operator trait implementations in Rust
// source files:
//   - Finds items annotated with `#[binop(...)]` or `#[read_binop_impl]`
//   - Derives the commuted, reference and owned variants the options ask for
//   - Writes the expanded source next to the input, into an output
//     directory, in place, or to stdout
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"binop-generator/internal/common"
	"binop-generator/internal/config"
	"binop-generator/internal/source"
)

// Set with -ldflags at release time.
var (
	version = "v0.1.0"
	commit  = "dev"
)

// globalFlags holds the flags shared by every command.
type globalFlags struct {
	Config string
	Debug  bool
	Trace  bool
}

func main() {
	rootCmd := newRootCmd()

	if err := fang.Execute(context.Background(), rootCmd,
		fang.WithVersion(version),
		fang.WithCommit(commit),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	rootCmd := &cobra.Command{
		Use:   "binop-generator",
		Short: "Expand binary operator impls in Rust sources",
		Long: `binop-generator rewrites Rust source files, replacing every impl annotated
with #[binop(...)] by the family of impls its options derive:

  commute     also implement the operator with the operands swapped
  refs_clone  implement it for references, cloning before delegating
  derefs      implement it for owned operands, borrowing before delegating
  dev_print   dump the parsed impl to stderr

Items annotated with #[read_binop_impl] are re-emitted in canonical form.`,
		Example: `  # Write lib.expanded.rs next to lib.rs
  binop-generator expand src/lib.rs

  # Rewrite files in place
  binop-generator expand --write src/*.rs

  # Report problems without writing anything
  binop-generator check src/*.rs`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&g.Config, "config", "c", "", "Path to binop.yaml or binop.toml (searched upward from the first input when empty)")
	rootCmd.PersistentFlags().BoolVarP(&g.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&g.Trace, "trace", false, "Trace every annotated item as if dev_print were set")

	rootCmd.AddCommand(expandCmd(&g), readCmd(&g), checkCmd(&g), configCmd(&g))

	return rootCmd
}

// env is what every command needs after flags and config are resolved.
type env struct {
	cfg  *config.Config
	log  *slog.Logger
	proc *source.Processor
}

func setup(cmd *cobra.Command, g *globalFlags, files []string, readAll bool) (*env, error) {
	// Set up slog with appropriate level
	level := slog.LevelInfo
	if g.Debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))

	cfg, err := loadConfig(g.Config, files, logger)
	if err != nil {
		return nil, err
	}

	proc := source.New(source.Options{
		ExpandAttrs: cfg.Attributes.Expand,
		ReadAttrs:   cfg.Attributes.Read,
		Trace:       cmd.ErrOrStderr(),
		ForceTrace:  g.Trace || cfg.Trace,
		ReadAll:     readAll,
		Logger:      logger,
	})

	return &env{cfg: cfg, log: logger, proc: proc}, nil
}

func loadConfig(path string, files []string, logger *slog.Logger) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "loading config")
		}

		logger.Debug("config loaded", "path", path)

		return cfg, nil
	}

	dir := "."
	if first, ok := common.First(files); ok {
		dir = filepath.Dir(first)
	}

	found, cfg, err := config.Find(dir)
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}

	if cfg == nil {
		logger.Debug("no config file found, using defaults", "from", dir)

		return config.Default(), nil
	}

	logger.Debug("config loaded", "path", found)

	return cfg, nil
}
