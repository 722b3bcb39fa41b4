package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/roach88/snapc/internal/config"
	"github.com/roach88/snapc/internal/metrics"
	"github.com/roach88/snapc/internal/store"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	OutDir      string
	MetricsAddr string
	NoCache     bool
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Recompile sources as they change",
		Long: `Compile every source under dir, then recompile files as they are written.
Removed or renamed files are dropped from the build cache and their output
is deleted.

With --metrics-addr, Prometheus metrics are served at /metrics.
Stop with Ctrl+C.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.OutDir, "output", "o", "", "output directory (default from config)")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "skip the build cache")

	return cmd
}

func runWatch(opts *WatchOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := opts.Logger(cmd.ErrOrStderr())

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return failLoad(formatter, err)
	}
	if cmd.Flags().Changed("output") {
		cfg.OutDir = opts.OutDir
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.MetricsAddr = opts.MetricsAddr
	}
	if err := validateOverrides(cfg); err != nil {
		return failLoad(formatter, err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("not a directory: %s", dir), nil)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	builder := &Builder{
		Config:  cfg,
		Metrics: metrics.New(reg),
		Logger:  logger,
		OutDir:  cfg.OutDir,
	}
	if !opts.NoCache {
		st, err := store.Open(cfg.Cache)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeCache, err.Error(), nil)
		}
		defer st.Close()
		builder.Store = st
	}
	if err := builder.Begin(ctx); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeCache, err.Error(), nil)
	}

	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("starting watcher: %v", err), nil)
	}
	defer fw.Close()

	w := &watcher{
		root:    dir,
		cfg:     cfg,
		builder: builder,
		fs:      fw,
		logger:  logger,
		errOut:  formatter.GetErrWriter(),
	}
	if err := w.addRecursive(dir); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeScanError, err.Error(), nil)
	}

	// Initial build. A directory without sources yet is fine in watch mode.
	sources, err := FindSources([]string{dir}, cfg)
	var le *LoadError
	if err != nil && !(errors.As(err, &le) && le.Code == ErrCodeNoFiles) {
		return failLoad(formatter, err)
	}
	if len(sources) > 0 {
		results, err := builder.Build(ctx, sources)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
		}
		renderDiagnostics(w.errOut, results)
		s := summarize(results)
		logger.Info("initial build", "files", len(results), "cached", s.Cached, "failed", s.Failed, "snapshots", s.Snapshots)
	}

	logger.Info("watching", "dir", dir, "build_id", builder.BuildID())
	return w.run(ctx)
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	return srv
}

// watcher turns file system events into incremental compiles.
type watcher struct {
	root    string
	cfg     *config.File
	builder *Builder
	fs      *fsnotify.Watcher
	logger  *slog.Logger
	errOut  io.Writer
}

func (w *watcher) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopping watch")
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if err := w.handleEvent(ctx, ev); err != nil {
				w.logger.Error("handling event", "path", ev.Name, "op", ev.Op.String(), "error", err)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}

// handleEvent recompiles written or created sources and forgets removed
// or renamed ones. New directories are added to the watch list.
func (w *watcher) handleEvent(ctx context.Context, ev fsnotify.Event) error {
	op := opName(ev.Op)
	if op == "" {
		return nil
	}

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			w.builder.Metrics.WatchEvent(op)
			return w.addRecursive(ev.Name)
		}
	}
	if !w.cfg.Includes(ev.Name) {
		return nil
	}
	w.builder.Metrics.WatchEvent(op)

	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		return err
	}
	src := Source{Path: ev.Name, Rel: rel}

	switch {
	case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
		w.logger.Info("removed", "path", src.Path)
		return w.builder.Forget(ctx, src)
	case ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create):
		res, err := w.builder.Compile(ctx, src)
		if err != nil {
			return err
		}
		renderDiagnostics(w.errOut, []*FileResult{res})
		if res.Failed {
			w.logger.Warn("compile failed", "path", src.Path, "diagnostics", len(res.Diagnostics))
			return nil
		}
		w.logger.Info("compiled", "path", src.Path, "snapshots", len(res.Manifests), "cached", res.Cached)
	}
	return nil
}

// addRecursive watches dir and every directory below it that sources may
// live in.
func (w *watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if w.fs == nil {
			return nil
		}
		return w.fs.Add(path)
	})
}

// opName is the metrics label for op. Chmod-only events are ignored.
func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	}
	return ""
}
