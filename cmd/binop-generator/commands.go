package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"binop-generator/internal/config"
	"binop-generator/internal/diagnostic"
	"binop-generator/internal/gen"
	"binop-generator/internal/source"
	"binop-generator/internal/token"
)

type expandFlags struct {
	Out    string
	Write  bool
	Stdout bool
	Suffix string
}

func expandCmd(g *globalFlags) *cobra.Command {
	var f expandFlags

	cmd := &cobra.Command{
		Use:   "expand [files...]",
		Short: "Expand annotated impls and write the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, g, args, false)
			if err != nil {
				return err
			}

			if f.Out != "" {
				e.cfg.Output.Dir = f.Out
			}

			if f.Suffix != "" {
				e.cfg.Output.Suffix = f.Suffix
			}

			return runExpand(cmd, e, f, args)
		},
	}

	cmd.Flags().StringVarP(&f.Out, "out", "o", "", "Output directory (default: next to each input)")
	cmd.Flags().BoolVarP(&f.Write, "write", "w", false, "Rewrite input files in place")
	cmd.Flags().BoolVar(&f.Stdout, "stdout", false, "Print results to stdout instead of writing files")
	cmd.Flags().StringVar(&f.Suffix, "suffix", "", "Output file suffix replacing .rs (default from config)")
	cmd.MarkFlagsMutuallyExclusive("write", "stdout", "out")

	return cmd
}

func runExpand(cmd *cobra.Command, e *env, f expandFlags, files []string) error {
	results, diags := processAll(e, files)

	var (
		out    []gen.GeneratedFile
		stdout []string
	)

	producer := make(map[string]string)

	for _, file := range files {
		res, ok := results[file]

		switch {
		case !ok:
			continue
		case f.Stdout:
			stdout = append(stdout, res.Text)
		case !res.Changed():
			e.log.Debug("no annotated items, skipping", "file", file)
		case f.Write:
			out = append(out, gen.NewFile(file, res.Text, false))
		default:
			name := gen.OutputPath(file, e.cfg.Output.Dir, e.cfg.OutputName(file))
			if prev, dup := producer[name]; dup {
				diags.AddError(diagnostic.CodeOutput,
					fmt.Sprintf("output %s is also produced by %s", name, prev), file, token.Pos{})

				continue
			}

			producer[name] = file
			out = append(out, gen.NewFile(name, res.Text, e.cfg.Output.Header))
		}
	}

	printDiagnostics(cmd.ErrOrStderr(), diags, false)

	if !diags.IsValid() {
		return errors.Errorf("%d error(s); no files written", len(diags.Errors))
	}

	for _, text := range stdout {
		if _, err := io.WriteString(cmd.OutOrStdout(), text); err != nil {
			return errors.Wrap(err, "writing to stdout")
		}
	}

	if err := gen.WriteFiles(out, ""); err != nil {
		return err
	}

	for _, file := range out {
		e.log.Info("wrote", "file", file.Filename)
	}

	return nil
}

func readCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "read <file>",
		Short: "Re-emit every annotated impl in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, g, args, true)
			if err != nil {
				return err
			}

			res, err := e.proc.ProcessFile(args[0])
			if err != nil {
				var diags diagnostic.Diagnostics
				diags.AddErr(args[0], err)

				return diags.Error()
			}

			_, err = io.WriteString(cmd.OutOrStdout(), res.Text)

			return errors.Wrap(err, "writing to stdout")
		},
	}
}

func checkCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check [files...]",
		Short: "Parse and expand annotated impls without writing",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, g, args, false)
			if err != nil {
				return err
			}

			results, diags := processAll(e, args)

			items := 0
			for _, res := range results {
				items += len(res.Items)
			}

			printDiagnostics(cmd.ErrOrStderr(), diags, g.Debug)
			fmt.Fprintf(cmd.OutOrStdout(), "checked %d file(s), %d annotated item(s): %d error(s), %d warning(s)\n",
				len(args), items, len(diags.Errors), len(diags.Warnings))

			if diags.HasErrors() {
				return errors.Errorf("check failed with %d error(s)", len(diags.Errors))
			}

			return nil
		},
	}
}

// processAll runs every file through the processor. Files fail
// independently; the diagnostics of all of them are returned together.
func processAll(e *env, files []string) (map[string]source.Result, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	results := make(map[string]source.Result, len(files))

	for _, file := range files {
		res, err := e.proc.ProcessFile(file)
		diags.Merge(res.Diagnostics)

		if err != nil {
			diags.AddErr(file, err)

			continue
		}

		results[file] = res
	}

	return results, diags
}

// printDiagnostics prints errors and warnings, and infos when infos is set.
func printDiagnostics(w io.Writer, diags diagnostic.Diagnostics, infos bool) {
	for _, d := range diags.All() {
		if d.Severity == diagnostic.DiagnosticInfo && !infos {
			continue
		}

		fmt.Fprintln(w, d.String())
	}
}

func configCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config [dir]",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(args) == 1 {
				// loadConfig searches upward from the directory of its first file.
				files = []string{filepath.Join(args[0], "_")}
			}

			e, err := setup(cmd, g, files, false)
			if err != nil {
				return err
			}

			data, err := config.Marshal(e.cfg)
			if err != nil {
				return errors.Wrap(err, "encoding config")
			}

			_, err = cmd.OutOrStdout().Write(data)

			return errors.Wrap(err, "writing to stdout")
		},
	}
}
