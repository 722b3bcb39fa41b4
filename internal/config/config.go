// Package config loads snapc.yaml and validates it against an embedded CUE
// schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/snapc/internal/compiler"
	"github.com/roach88/snapc/internal/ir"
)

//go:embed schema.cue
var schemaSource []byte

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "snapc.yaml"

// File is the decoded config file. Field names follow the YAML keys.
type File struct {
	RuntimePkg         string `yaml:"runtime_pkg" json:"runtime_pkg"`
	Target             string `yaml:"target" json:"target"`
	Mode               string `yaml:"mode" json:"mode"`
	IsDynamicComponent bool   `yaml:"is_dynamic_component" json:"is_dynamic_component"`
	// FilenamePrefix is stripped from file paths before they are hashed
	// into snapshot uids, so uids do not depend on the checkout location.
	FilenamePrefix string `yaml:"filename_prefix" json:"filename_prefix"`
	// ContentHash fixes the content component of uids. When empty it is
	// computed from each file's source.
	ContentHash string `yaml:"content_hash" json:"content_hash"`
	// CSSID applies to files without a @jsxCSSId pragma; -1 leaves it unset.
	CSSID       int      `yaml:"css_id" json:"css_id"`
	Cache       string   `yaml:"cache" json:"cache"`
	OutDir      string   `yaml:"out_dir" json:"out_dir"`
	Concurrency int      `yaml:"concurrency" json:"concurrency"`
	MetricsAddr string   `yaml:"metrics_addr" json:"metrics_addr"`
	Include     []string `yaml:"include" json:"include"`
}

// Default returns the configuration used when no file exists.
func Default() *File {
	return &File{
		RuntimePkg:  compiler.DefaultRuntimePkg,
		Target:      compiler.TargetLepus.String(),
		Mode:        compiler.ModeProduction.String(),
		CSSID:       -1,
		Cache:       filepath.Join(".snapc", "cache.db"),
		OutDir:      "dist",
		Concurrency: 4,
		Include:     []string{".jsx", ".tsx"},
	}
}

// Load reads and validates the config at path. A missing file at
// DefaultPath is not an error: the defaults are returned.
func Load(path string) (*File, error) {
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*File, error) {
	f := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	f.Target = strings.ToUpper(f.Target)
	f.Mode = strings.ToLower(f.Mode)
	if f.Include == nil {
		f.Include = []string{}
	}

	if errs := Validate(f); len(errs) > 0 {
		return nil, &ValidationErrors{Errors: errs}
	}
	return f, nil
}

// FieldError is one schema violation.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every violation found in a config file.
type ValidationErrors struct {
	Errors []FieldError
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

const schemaDef = "#Config"

// Validate unifies f with the #Config schema and reports every violation.
func Validate(f *File) []FieldError {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []FieldError{{Message: fmt.Sprintf("compiling schema: %v", err)}}
	}
	def := schema.LookupPath(cue.ParsePath(schemaDef))

	value := def.Unify(ctx.Encode(f))
	err := value.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var out []FieldError
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		out = append(out, FieldError{
			Field:   fieldPath(e.Path()),
			Message: fmt.Sprintf(format, args...),
		})
	}
	return out
}

// fieldPath names a schema violation by its YAML key. CUE reports paths
// from the definition down, so the leading #Config selector is dropped.
func fieldPath(path []string) string {
	if len(path) > 0 && path[0] == schemaDef {
		path = path[1:]
	}
	return strings.Join(path, ".")
}

// CompilerOptions derives the options for compiling one file. contentHash
// is used when the file pins none.
func (f *File) CompilerOptions(filename, contentHash string) (compiler.Options, error) {
	target, err := compiler.ParseTarget(f.Target)
	if err != nil {
		return compiler.Options{}, err
	}
	mode, err := compiler.ParseMode(f.Mode)
	if err != nil {
		return compiler.Options{}, err
	}
	opts := compiler.Options{
		Filename:           f.RelativeName(filename),
		ContentHash:        contentHash,
		Target:             target,
		Mode:               mode,
		RuntimePkg:         f.RuntimePkg,
		IsDynamicComponent: f.IsDynamicComponent,
	}
	if f.ContentHash != "" {
		opts.ContentHash = f.ContentHash
	}
	if f.CSSID >= 0 {
		id := f.CSSID
		opts.CSSID = &id
	}
	return opts, nil
}

// RelativeName is the name hashed into uids for filename: slash separated
// with FilenamePrefix removed.
func (f *File) RelativeName(filename string) string {
	name := filepath.ToSlash(filename)
	if f.FilenamePrefix != "" {
		name = strings.TrimPrefix(name, filepath.ToSlash(f.FilenamePrefix))
	}
	return name
}

// Includes reports whether path has one of the configured extensions.
func (f *File) Includes(path string) bool {
	ext := filepath.Ext(path)
	for _, inc := range f.Include {
		if ext == inc {
			return true
		}
	}
	return false
}

// Hash identifies the settings that affect compiler output. Cached results
// are reused only under an equal hash.
func (f *File) Hash() (string, error) {
	return ir.ConfigHash(ir.Object{
		"compiler":             ir.String(ir.CompilerVersion),
		"runtime_pkg":          ir.String(f.RuntimePkg),
		"target":               ir.String(f.Target),
		"mode":                 ir.String(f.Mode),
		"is_dynamic_component": ir.Bool(f.IsDynamicComponent),
		"filename_prefix":      ir.String(f.FilenamePrefix),
		"content_hash":         ir.String(f.ContentHash),
		"css_id":               ir.Int(f.CSSID),
	})
}
