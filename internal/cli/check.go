package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/snapc/internal/compiler"
	"github.com/roach88/snapc/internal/config"
	"github.com/roach88/snapc/internal/diag"
	"github.com/roach88/snapc/internal/ir"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Sources []string
}

// CheckProblem is one failed check.
type CheckProblem struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check [config]",
		Short: "Validate a config file and optionally the snapshots of sources",
		Long: `Validate snapc.yaml (or the given file) against the config schema,
reporting every violation.

With --sources, every file found is compiled without writing output and
each snapshot is checked for structural consistency: part and slot
indices, values numbering and target-specific emission.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Config = args[0]
			}
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Sources, "sources", nil, "files or directories whose snapshots are checked")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	path := opts.Config
	if path == "" {
		path = config.DefaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return failLoad(formatter, &LoadError{Code: ErrCodeNotFound, Message: "config file not found", Path: path})
		}
		var verrs *config.ValidationErrors
		if !errors.As(err, &verrs) {
			return reportProblems(formatter, []CheckProblem{{Path: path, Code: ErrCodeConfigInvalid, Message: err.Error()}})
		}
		problems := make([]CheckProblem, len(verrs.Errors))
		for i, fe := range verrs.Errors {
			problems[i] = CheckProblem{Path: path, Field: fe.Field, Code: ErrCodeConfigInvalid, Message: fe.Message}
		}
		return reportProblems(formatter, problems)
	}

	var problems []CheckProblem
	snapshots := 0
	if len(opts.Sources) > 0 {
		sources, err := FindSources(opts.Sources, cfg)
		if err != nil {
			return failLoad(formatter, err)
		}
		problems, snapshots, err = checkSources(cmd, opts, cfg, sources)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
		}
	}

	if len(problems) > 0 {
		return reportProblems(formatter, problems)
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]any{"config": path, "snapshots": snapshots})
	}
	fmt.Fprintf(formatter.Writer, "✓ %s is valid\n", path)
	if len(opts.Sources) > 0 {
		fmt.Fprintf(formatter.Writer, "✓ %d snapshot(s) checked\n", snapshots)
	}
	return nil
}

// checkSources compiles every source in memory and validates its
// snapshots. Error diagnostics are problems too.
func checkSources(cmd *cobra.Command, opts *CheckOptions, cfg *config.File, sources []Source) ([]CheckProblem, int, error) {
	var problems []CheckProblem
	count := 0
	logger := opts.Logger(cmd.ErrOrStderr())
	target, err := compiler.ParseTarget(cfg.Target)
	if err != nil {
		return nil, 0, err
	}

	for _, src := range sources {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, 0, fmt.Errorf("reading %s: %w", src.Path, err)
		}
		compiled, diags, err := compileInMemory(cmd.Context(), cfg, src, data, logger)
		if err != nil {
			return nil, 0, err
		}
		for _, d := range diags {
			if d.Severity == diag.Warning {
				continue
			}
			problems = append(problems, CheckProblem{Path: src.Path, Code: d.Code, Message: d.Error()})
		}
		if compiled == nil {
			continue
		}
		for _, snap := range compiled.Result.Snapshots {
			count++
			for _, ve := range compiler.Validate(snap, target) {
				problems = append(problems, CheckProblem{
					Path:    src.Path,
					Field:   snap.UID + "." + ve.Field,
					Code:    ve.Code,
					Message: ve.Message,
				})
			}
		}
	}
	return problems, count, nil
}

func compileInMemory(ctx context.Context, cfg *config.File, src Source, data []byte, logger *slog.Logger) (*compiler.Output, []diag.Diagnostic, error) {
	opts, err := cfg.CompilerOptions(src.Path, ir.ContentHash(data))
	if err != nil {
		return nil, nil, err
	}
	opts.Logger = logger
	sink := &diag.Collector{}
	out, err := compiler.CompileSource(ctx, data, opts, sink)
	return out, sink.Diagnostics(), err
}

func reportProblems(formatter *OutputFormatter, problems []CheckProblem) error {
	msg := fmt.Sprintf("check failed with %d problem(s)", len(problems))
	if formatter.Format == "json" {
		_ = formatter.Error(problems[0].Code, msg, problems)
		return NewExitError(ExitFailure, msg)
	}

	fmt.Fprintln(formatter.Writer, "✗ Check failed")
	fmt.Fprintln(formatter.Writer)
	for _, p := range problems {
		loc := p.Path
		if p.Field != "" {
			loc += ": " + p.Field
		}
		fmt.Fprintf(formatter.Writer, "%s\n  %s: %s\n\n", loc, p.Code, p.Message)
	}
	return NewExitError(ExitFailure, msg)
}
