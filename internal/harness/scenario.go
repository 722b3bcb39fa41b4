package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/snapc/internal/compiler"
)

// Scenario defines one end-to-end compile check.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Filename is hashed into snapshot uids. Defaults to the base name of
	// SourceFile when that is set.
	Filename string `yaml:"filename"`

	// Source is the inline JSX module to compile.
	Source string `yaml:"source,omitempty"`

	// SourceFile is a path to the module, relative to the scenario file.
	SourceFile string `yaml:"source_file,omitempty"`

	// Options are the compiler options; zero values use compiler defaults.
	Options ScenarioOptions `yaml:"options,omitempty"`

	// Assertions validate the compiled output.
	Assertions []Assertion `yaml:"assertions"`
}

// ScenarioOptions mirrors compiler.Options in YAML form.
type ScenarioOptions struct {
	Target             string `yaml:"target,omitempty"`
	Mode               string `yaml:"mode,omitempty"`
	ContentHash        string `yaml:"content_hash,omitempty"`
	RuntimePkg         string `yaml:"runtime_pkg,omitempty"`
	IsDynamicComponent bool   `yaml:"is_dynamic_component,omitempty"`
	CSSID              *int   `yaml:"css_id,omitempty"`
}

// CompilerOptions converts o for a compile of filename.
func (o ScenarioOptions) CompilerOptions(filename string) (compiler.Options, error) {
	opts := compiler.Options{
		Filename:           filename,
		ContentHash:        o.ContentHash,
		RuntimePkg:         o.RuntimePkg,
		IsDynamicComponent: o.IsDynamicComponent,
		CSSID:              o.CSSID,
	}
	if o.Target != "" {
		t, err := compiler.ParseTarget(o.Target)
		if err != nil {
			return compiler.Options{}, err
		}
		opts.Target = t
	}
	m, err := compiler.ParseMode(o.Mode)
	if err != nil {
		return compiler.Options{}, err
	}
	opts.Mode = m
	return opts, nil
}

// Assertion validates one property of the compiled result.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Text is the substring for output_contains and output_not_contains.
	Text string `yaml:"text,omitempty"`

	// Code is the diagnostic code for diagnostic.
	Code string `yaml:"code,omitempty"`

	// Count is the expected number of snapshots (snapshot_count) or of
	// diagnostics with Code (diagnostic). For diagnostic, nil means at
	// least one.
	Count *int `yaml:"count,omitempty"`

	// Snapshot indexes the snapshot for part_kinds and slot_kinds.
	Snapshot int `yaml:"snapshot,omitempty"`

	// Kinds is the expected kind list for part_kinds and slot_kinds.
	Kinds []string `yaml:"kinds,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputContains    = "output_contains"
	AssertOutputNotContains = "output_not_contains"
	AssertSnapshotCount     = "snapshot_count"
	AssertPartKinds         = "part_kinds"
	AssertSlotKinds         = "slot_kinds"
	AssertDiagnostic        = "diagnostic"
	AssertNoDiagnostics     = "no_diagnostics"
)

// LoadScenario reads and parses a scenario YAML file. source_file is
// resolved relative to the scenario file.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving source_file relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict decoding catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.SourceFile != "" && !filepath.IsAbs(scenario.SourceFile) && basePath != "" {
		scenario.SourceFile = filepath.Join(basePath, scenario.SourceFile)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// SourceBytes returns the module to compile.
func (s *Scenario) SourceBytes() ([]byte, error) {
	if s.SourceFile == "" {
		return []byte(s.Source), nil
	}
	data, err := os.ReadFile(s.SourceFile)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return data, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Source == "" && s.SourceFile == "":
		return fmt.Errorf("one of source or source_file is required")
	case s.Source != "" && s.SourceFile != "":
		return fmt.Errorf("source and source_file are mutually exclusive")
	}
	if s.SourceFile != "" {
		if _, err := os.Stat(s.SourceFile); os.IsNotExist(err) {
			return fmt.Errorf("source file not found: %s", s.SourceFile)
		}
		if s.Filename == "" {
			s.Filename = filepath.Base(s.SourceFile)
		}
	}
	if s.Filename == "" {
		return fmt.Errorf("filename is required with inline source")
	}

	if _, err := s.Options.CompilerOptions(s.Filename); err != nil {
		return fmt.Errorf("options: %w", err)
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOutputContains, AssertOutputNotContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertSnapshotCount:
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for snapshot_count", index)
		}
	case AssertPartKinds, AssertSlotKinds:
		if a.Snapshot < 0 {
			return fmt.Errorf("assertions[%d]: snapshot must be non-negative", index)
		}
		if a.Kinds == nil {
			return fmt.Errorf("assertions[%d]: kinds is required for %s (use [] for none)", index, a.Type)
		}
	case AssertDiagnostic:
		if a.Code == "" {
			return fmt.Errorf("assertions[%d]: code is required for diagnostic", index)
		}
		if a.Count != nil && *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for diagnostic", index)
		}
	case AssertNoDiagnostics:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
