package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/snapc/internal/ir"
	"github.com/roach88/snapc/internal/store"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	UID string
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the snapshots a file defines",
		Long: `Compile a file and print the manifest of every snapshot it defines:
element count, dynamic parts with their element and value indices, the
slot descriptor and, with --verbose, the generated creator and updaters.

With --uid, the manifest is read from the build cache instead.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.UID, "uid", "", "look up a snapshot uid in the build cache")

	return cmd
}

func runInspect(opts *InspectOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if (opts.UID == "") == (len(args) == 0) {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "give exactly one of a file or --uid", nil)
	}

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return failLoad(formatter, err)
	}

	var manifests []ir.Manifest
	if opts.UID != "" {
		st, err := store.Open(cfg.Cache)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeCache, err.Error(), nil)
		}
		defer st.Close()

		m, ok, err := st.SnapshotByUID(cmd.Context(), opts.UID)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeCache, err.Error(), nil)
		}
		if !ok {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("snapshot %s is not in the cache", opts.UID), nil)
		}
		manifests = []ir.Manifest{m}
	} else {
		sources, err := FindSources(args, cfg)
		if err != nil {
			return failLoad(formatter, err)
		}
		b := &Builder{Config: cfg, Logger: opts.Logger(cmd.ErrOrStderr())}
		if err := b.Begin(cmd.Context()); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
		}
		res, err := b.Compile(cmd.Context(), sources[0])
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
		}
		if formatter.Format != "json" {
			renderDiagnostics(formatter.GetErrWriter(), []*FileResult{res})
		}
		if res.Failed {
			return formatter.Fail(ExitFailure, ErrCodeCompileFailed, res.Path+" reported errors", res.Diagnostics)
		}
		manifests = res.Manifests
	}

	if formatter.Format == "json" {
		return formatter.Success(manifests)
	}
	for i, m := range manifests {
		if i > 0 {
			fmt.Fprintln(formatter.Writer)
		}
		printManifest(formatter.Writer, m, opts.Verbose)
	}
	return nil
}

func printManifest(w io.Writer, m ir.Manifest, verbose bool) {
	fmt.Fprintf(w, "%s  (%s:%d, %s)\n", m.UID, m.Filename, m.Line, m.Target)
	fmt.Fprintf(w, "  elements: %d\n", m.Elements)
	if m.CSSID != nil {
		fmt.Fprintf(w, "  css id:   %d\n", *m.CSSID)
	}
	if m.HasKey {
		fmt.Fprintln(w, "  keyed")
	}

	if len(m.Parts) == 0 {
		fmt.Fprintln(w, "  parts:    none")
	} else {
		fmt.Fprintln(w, "  parts:")
		for i, p := range m.Parts {
			if p.Value < 0 {
				fmt.Fprintf(w, "    [%d] %-14s element=%d\n", i, p.Kind, p.Element)
			} else {
				fmt.Fprintf(w, "    [%d] %-14s element=%d value=%d\n", i, p.Kind, p.Element, p.Value)
			}
		}
	}
	if len(m.Slots) > 0 {
		fmt.Fprintln(w, "  slots:")
		for _, s := range m.Slots {
			fmt.Fprintf(w, "    %-14s element=%d\n", s.Kind, s.Element)
		}
	}
	fmt.Fprintf(w, "  hash:     %s\n", m.Hash)

	if verbose && m.Code != "" {
		fmt.Fprintln(w, "  code:")
		fmt.Fprintln(w, indent(m.Code, "    "))
	}
}

func indent(s, prefix string) string {
	out := []byte(prefix)
	for i := 0; i < len(s); i++ {
		out = append(out, s[i])
		if s[i] == '\n' && i+1 < len(s) {
			out = append(out, prefix...)
		}
	}
	return string(out)
}
