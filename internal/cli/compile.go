package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/snapc/internal/config"
	"github.com/roach88/snapc/internal/diag"
	"github.com/roach88/snapc/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	OutDir      string
	Target      string
	Mode        string
	ContentHash string
	NoCache     bool
	Stdout      bool
	Concurrency int
}

// CompileSummary is the JSON payload of a compile run.
type CompileSummary struct {
	Files     []*FileResult `json:"files"`
	Compiled  int           `json:"compiled"`
	Cached    int           `json:"cached"`
	Failed    int           `json:"failed"`
	Snapshots int           `json:"snapshots"`
	Warnings  int           `json:"warnings"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <files|dirs...>",
		Short: "Compile JSX sources to snapshot definitions",
		Long: `Compile JSX sources, replacing every element tree with a reference to a
generated snapshot definition.

Directories are searched for the extensions listed under include in
snapc.yaml. Unchanged files are served from the build cache unless
--no-cache is given. Files that report error diagnostics are not written.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.OutDir, "output", "o", "", "output directory (default from config)")
	cmd.Flags().StringVar(&opts.Target, "target", "", "target thread (JS|LEPUS|MIXED)")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "runtime mode (production|development|test)")
	cmd.Flags().StringVar(&opts.ContentHash, "content-hash", "", "fixed content hash for snapshot uids")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "compile every file and skip the build cache")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "print compiled code instead of writing files")
	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "j", 0, "files compiled in parallel (default from config)")

	return cmd
}

// applyOverrides copies explicitly set flags over cfg.
func (o *CompileOptions) applyOverrides(cmd *cobra.Command, cfg *config.File) {
	flags := cmd.Flags()
	if flags.Changed("target") {
		cfg.Target = strings.ToUpper(o.Target)
	}
	if flags.Changed("mode") {
		cfg.Mode = strings.ToLower(o.Mode)
	}
	if flags.Changed("content-hash") {
		cfg.ContentHash = o.ContentHash
	}
	if flags.Changed("output") {
		cfg.OutDir = o.OutDir
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = o.Concurrency
	}
}

func runCompile(opts *CompileOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := opts.Logger(cmd.ErrOrStderr())

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return failLoad(formatter, err)
	}
	opts.applyOverrides(cmd, cfg)
	if err := validateOverrides(cfg); err != nil {
		return failLoad(formatter, err)
	}

	sources, err := FindSources(args, cfg)
	if err != nil {
		return failLoad(formatter, err)
	}
	formatter.VerboseLog("Found %d source file(s)", len(sources))

	builder := &Builder{Config: cfg, Logger: logger, OutDir: cfg.OutDir}
	if opts.Stdout {
		builder.OutDir = ""
	}
	if !opts.NoCache {
		st, err := store.Open(cfg.Cache)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeCache, err.Error(), nil)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logger.Error("error closing cache", "error", cerr)
			}
		}()
		builder.Store = st
	}

	ctx := cmd.Context()
	if err := builder.Begin(ctx); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeCache, err.Error(), nil)
	}
	formatter.BuildID = builder.BuildID()

	results, err := builder.Build(ctx, sources)
	if err != nil {
		var we *writeError
		if errors.As(err, &we) {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, err.Error(), nil)
		}
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	summary := summarize(results)
	if formatter.Format != "json" {
		renderDiagnostics(formatter.GetErrWriter(), results)
	}

	if summary.Failed > 0 {
		msg := fmt.Sprintf("%d file(s) reported errors", summary.Failed)
		if formatter.Format == "json" {
			stripCode(summary.Files, opts.Stdout)
			_ = formatter.Error(ErrCodeCompileFailed, msg, summary)
		} else {
			fmt.Fprintf(formatter.Writer, "✗ Compilation failed: %s\n", msg)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %s", ErrCodeCompileFailed, msg))
	}

	if formatter.Format == "json" {
		stripCode(summary.Files, opts.Stdout)
		return formatter.Success(summary)
	}

	if opts.Stdout {
		for _, r := range results {
			fmt.Fprint(formatter.Writer, r.Code)
		}
		return nil
	}

	fmt.Fprintf(formatter.Writer, "✓ Compiled %d file(s): %d snapshot(s), %d cached, %d warning(s)\n",
		len(results), summary.Snapshots, summary.Cached, summary.Warnings)
	if opts.Verbose {
		for _, r := range results {
			state := "compiled"
			if r.Cached {
				state = "cached"
			}
			fmt.Fprintf(formatter.Writer, "  %s → %s (%s)\n", r.Path, r.OutPath, state)
		}
	}
	return nil
}

// stripCode drops printed code from JSON results. Code of failed files is
// never reported; other files keep theirs only with --stdout.
func stripCode(results []*FileResult, keep bool) {
	for _, r := range results {
		if r.Failed || !keep {
			r.Code = ""
		}
	}
}

func summarize(results []*FileResult) *CompileSummary {
	s := &CompileSummary{Files: results}
	for _, r := range results {
		switch {
		case r.Failed:
			s.Failed++
		case r.Cached:
			s.Cached++
		default:
			s.Compiled++
		}
		s.Snapshots += len(r.Manifests)
		for _, d := range r.Diagnostics {
			if d.Severity == diag.Warning {
				s.Warnings++
			}
		}
	}
	return s
}
