package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/snapc/internal/compiler"
	"github.com/roach88/snapc/internal/config"
	"github.com/roach88/snapc/internal/diag"
	"github.com/roach88/snapc/internal/ir"
	"github.com/roach88/snapc/internal/metrics"
	"github.com/roach88/snapc/internal/store"
)

// Builder compiles sources under one configuration, consulting and filling
// the build cache when Store is set.
type Builder struct {
	Config *config.File
	// Store is the build cache; nil compiles every file.
	Store *store.Store
	// Metrics may be nil.
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	// OutDir receives compiled files; empty writes nothing.
	OutDir string

	configHash string
	buildID    string
}

// FileResult is the outcome for one source.
type FileResult struct {
	Source      Source            `json:"-"`
	Path        string            `json:"path"`
	OutPath     string            `json:"output,omitempty"`
	Code        string            `json:"code,omitempty"`
	Manifests   []ir.Manifest     `json:"snapshots"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
	Cached      bool              `json:"cached"`
	// Failed is set when an error diagnostic was reported. Failed files
	// are neither written nor cached.
	Failed bool `json:"failed"`

	src []byte
}

// Begin hashes the configuration and records a build in the cache. It must
// be called before Compile or Build.
func (b *Builder) Begin(ctx context.Context) error {
	if b.Logger == nil {
		b.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h, err := b.Config.Hash()
	if err != nil {
		return fmt.Errorf("hashing config: %w", err)
	}
	b.configHash = h

	if b.Store == nil {
		return nil
	}
	id, err := b.Store.BeginBuild(ctx, h)
	if err != nil {
		return err
	}
	b.buildID = id
	b.Logger.Debug("build started", "build_id", id, "config_hash", h)
	return nil
}

// BuildID is the id recorded by Begin, or empty without a cache.
func (b *Builder) BuildID() string { return b.buildID }

// Build compiles sources with at most Config.Concurrency files in flight.
// Results are in the order of sources. The first internal or I/O error
// cancels the remaining work.
func (b *Builder) Build(ctx context.Context, sources []Source) ([]*FileResult, error) {
	results := make([]*FileResult, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.Config.Concurrency, 1))
	for i, src := range sources {
		g.Go(func() error {
			r, err := b.Compile(ctx, src)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Compile compiles one source, or returns its cached result when neither
// the source nor the configuration changed.
func (b *Builder) Compile(ctx context.Context, src Source) (*FileResult, error) {
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src.Path, err)
	}
	fileHash := ir.FileHash(data)

	res := &FileResult{Source: src, Path: src.Path, src: data}
	if b.Store != nil {
		hit, err := b.lookup(ctx, res, fileHash)
		if err != nil {
			return nil, err
		}
		if hit {
			b.Metrics.ObserveFile(metrics.ResultCached, 0, len(res.Manifests), res.Diagnostics)
			b.Logger.Debug("cache hit", "path", src.Path, "snapshots", len(res.Manifests))
			return res, b.write(res)
		}
	}

	opts, err := b.Config.CompilerOptions(src.Path, ir.ContentHash(data))
	if err != nil {
		return nil, err
	}
	opts.Logger = b.Logger.With("path", src.Path)

	sink := &diag.Collector{}
	done := b.Metrics.Track()
	start := time.Now()
	out, err := compiler.CompileSource(ctx, data, opts, sink)
	elapsed := time.Since(start)
	done()

	res.Diagnostics = sink.Diagnostics()
	if err != nil {
		b.Metrics.ObserveFile(metrics.ResultFailed, elapsed, 0, res.Diagnostics)
		return nil, fmt.Errorf("compiling %s: %w", src.Path, err)
	}

	res.Failed = sink.HasErrors()
	res.Manifests = []ir.Manifest{}
	if out != nil {
		res.Code = out.Code
		res.Manifests = out.Manifests
	}
	if res.Failed {
		b.Metrics.ObserveFile(metrics.ResultFailed, elapsed, 0, res.Diagnostics)
		return res, nil
	}
	b.Metrics.ObserveFile(metrics.ResultCompiled, elapsed, len(res.Manifests), res.Diagnostics)
	b.Logger.Debug("compiled", "path", src.Path, "snapshots", len(res.Manifests), "elapsed", elapsed)

	if b.Store != nil {
		if err := b.save(ctx, res, fileHash); err != nil {
			return nil, err
		}
	}
	return res, b.write(res)
}

// Forget drops src from the cache and removes its output file.
func (b *Builder) Forget(ctx context.Context, src Source) error {
	if b.Store != nil {
		if err := b.Store.DeleteFile(ctx, src.Path); err != nil {
			return err
		}
	}
	if b.OutDir == "" {
		return nil
	}
	err := os.Remove(OutputPath(b.OutDir, src))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing output: %w", err)
	}
	return nil
}

func (b *Builder) lookup(ctx context.Context, res *FileResult, fileHash string) (bool, error) {
	rec, ok, err := b.Store.LookupFile(ctx, res.Path, fileHash, b.configHash)
	if err != nil || !ok {
		return false, err
	}
	manifests, err := b.Store.Snapshots(ctx, res.Path)
	if errors.Is(err, store.ErrCorruptManifest) {
		b.Logger.Warn("discarding corrupt cache entry", "path", res.Path)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	res.Code = rec.Output
	res.Diagnostics = rec.Diagnostics
	res.Manifests = manifests
	res.Cached = true
	return true, nil
}

func (b *Builder) save(ctx context.Context, res *FileResult, fileHash string) error {
	err := b.Store.PutFile(ctx, store.FileRecord{
		Path:        res.Path,
		FileHash:    fileHash,
		ConfigHash:  b.configHash,
		BuildID:     b.buildID,
		Output:      res.Code,
		Diagnostics: res.Diagnostics,
	})
	if err != nil {
		return err
	}
	return b.Store.PutSnapshots(ctx, res.Path, res.Manifests)
}

func (b *Builder) write(res *FileResult) error {
	if b.OutDir == "" || res.Failed {
		return nil
	}
	res.OutPath = OutputPath(b.OutDir, res.Source)
	if err := os.MkdirAll(filepath.Dir(res.OutPath), 0755); err != nil {
		return &writeError{path: res.OutPath, err: err}
	}
	if err := os.WriteFile(res.OutPath, []byte(res.Code), 0644); err != nil {
		return &writeError{path: res.OutPath, err: err}
	}
	return nil
}

// writeError marks output failures so commands report ErrCodeWriteFailed.
type writeError struct {
	path string
	err  error
}

func (e *writeError) Error() string { return fmt.Sprintf("writing %s: %v", e.path, e.err) }
func (e *writeError) Unwrap() error { return e.err }

// renderDiagnostics prints every result's diagnostics with source excerpts.
func renderDiagnostics(w io.Writer, results []*FileResult) {
	r := &diag.Renderer{Color: diag.ColorFor(w), Context: 1}
	for _, res := range results {
		if len(res.Diagnostics) > 0 {
			r.Render(w, res.Path, res.src, res.Diagnostics)
		}
	}
}
