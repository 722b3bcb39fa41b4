package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // path to snapc.yaml; empty means the default path

	log *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the snapc CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "snapc",
		Short: "snapc - JSX snapshot compiler",
		Long: `snapc compiles the static shape of JSX element trees into snapshot
definitions for the Lynx runtime, leaving only dynamic parts to be
reconciled at run time.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "config file (default snapc.yaml)")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// Logger returns the logger commands write progress to. Logs always go to
// w (stderr) so JSON on stdout stays parseable; --verbose enables debug
// events and --format json switches to JSON records.
func (o *RootOptions) Logger(w io.Writer) *slog.Logger {
	if o.log != nil {
		return o.log
	}
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if o.Format == "json" {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	o.log = slog.New(h)
	return o.log
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
