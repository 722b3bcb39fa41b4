package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roach88/snapc/internal/config"
)

// Source is one file selected for compilation.
type Source struct {
	// Path is the file as found on disk. It keys the build cache.
	Path string
	// Rel is Path relative to the argument it was found under; outputs are
	// written at the same relative location.
	Rel string
}

// LoadError reports a problem locating sources or loading configuration.
type LoadError struct {
	Code    string
	Message string
	Path    string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// skipDir reports directories never searched for sources.
func skipDir(name string) bool {
	return name == "node_modules" || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

// FindSources expands files and directories into the sources to compile.
// Files named explicitly are always included; directories are walked for
// files with an extension listed in cfg.Include. The result is sorted by
// path and free of duplicates.
func FindSources(paths []string, cfg *config.File) ([]Source, error) {
	seen := make(map[string]bool)
	var out []Source
	add := func(s Source) {
		if seen[s.Path] {
			return
		}
		seen[s.Path] = true
		out = append(out, s)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: "no such file or directory", Path: root}
		}
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: err.Error(), Path: root}
		}

		if !info.IsDir() {
			add(Source{Path: root, Rel: filepath.Base(root)})
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !cfg.Includes(path) {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			add(Source{Path: path, Rel: rel})
			return nil
		})
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err), Path: root}
		}
	}

	if len(out) == 0 {
		return nil, &LoadError{
			Code:    ErrCodeNoFiles,
			Message: fmt.Sprintf("no source files found (extensions %s)", strings.Join(cfg.Include, ", ")),
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// OutputPath is where the compiled form of s is written under outDir.
func OutputPath(outDir string, s Source) string {
	rel := strings.TrimSuffix(s.Rel, filepath.Ext(s.Rel)) + ".js"
	return filepath.Join(outDir, rel)
}

// loadConfig loads the config named by opts (or the default) and maps
// failures to command errors.
func loadConfig(opts *RootOptions) (*config.File, error) {
	cfg, err := config.Load(opts.Config)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: "config file not found", Path: opts.Config}
	}
	return nil, &LoadError{Code: ErrCodeConfigInvalid, Message: err.Error(), Path: opts.Config}
}

// validateOverrides re-checks cfg after flags were applied to it.
func validateOverrides(cfg *config.File) error {
	errs := config.Validate(cfg)
	if len(errs) == 0 {
		return nil
	}
	return &LoadError{Code: ErrCodeConfigInvalid, Message: (&config.ValidationErrors{Errors: errs}).Error()}
}

// failLoad reports err through f as a command error.
func failLoad(f *OutputFormatter, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		msg := le.Message
		if le.Path != "" {
			msg = le.Path + ": " + msg
		}
		return f.Fail(ExitCommandError, le.Code, msg, nil)
	}
	return f.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
}
