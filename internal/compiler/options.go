package compiler

import (
	"fmt"
	"log/slog"
	"strings"
)

// Target selects the runtime(s) a snapshot must run under.
type Target uint8

const (
	// TargetLepus is the main-thread interpreter: creators and updaters are
	// emitted, and event handlers are replaced by sentinels because the
	// markup layer owns them.
	TargetLepus Target = iota
	// TargetJS is the background thread: values keep live closures and no
	// creator or updaters are emitted.
	TargetJS
	// TargetMixed emits main-thread creators and updaters while keeping live
	// values, for bundles that serve both threads.
	TargetMixed
)

func (t Target) String() string {
	switch t {
	case TargetLepus:
		return "LEPUS"
	case TargetJS:
		return "JS"
	case TargetMixed:
		return "MIXED"
	default:
		return fmt.Sprintf("Target(%d)", t)
	}
}

// ParseTarget parses "JS", "LEPUS" or "MIXED", case-insensitively.
func ParseTarget(s string) (Target, error) {
	switch strings.ToUpper(s) {
	case "LEPUS":
		return TargetLepus, nil
	case "JS":
		return TargetJS, nil
	case "MIXED":
		return TargetMixed, nil
	}
	return 0, fmt.Errorf("unknown target %q: must be one of JS, LEPUS, MIXED", s)
}

// Mode selects how the runtime module is referenced.
type Mode uint8

const (
	ModeProduction Mode = iota
	ModeDevelopment
	ModeTest
)

func (m Mode) String() string {
	switch m {
	case ModeProduction:
		return "production"
	case ModeDevelopment:
		return "development"
	case ModeTest:
		return "test"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// ParseMode parses "production", "development" or "test".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "production", "":
		return ModeProduction, nil
	case "development":
		return ModeDevelopment, nil
	case "test":
		return ModeTest, nil
	}
	return 0, fmt.Errorf("unknown mode %q: must be one of production, development, test", s)
}

// Default option values.
const (
	DefaultRuntimePkg  = "@lynx-js/react"
	DefaultContentHash = "test"

	devRuntimePkg        = "@lynx-js/react/internal"
	runtimeComponentsPkg = "@lynx-js/react/runtime-components"
	runtimeIdent         = "ReactLynx"
	componentsIdent      = "ReactLynxRuntimeComponents"
	dynamicEntryIdent    = "globDynamicComponentEntry"
)

// Options configures one Transform call.
type Options struct {
	// Filename is hashed into every snapshot uid.
	Filename string
	// ContentHash identifies the file contents; DefaultContentHash when empty.
	ContentHash string
	Target      Target
	Mode        Mode
	// RuntimePkg is the module imported as the runtime in production and
	// test modes; DefaultRuntimePkg when empty.
	RuntimePkg string
	// IsDynamicComponent passes the dynamic component entry to every
	// createSnapshot call and defaults the CSS id to 0.
	IsDynamicComponent bool
	// CSSID applies when the file has no @jsxCSSId pragma.
	CSSID *int
	// Logger receives debug events; slog.Default() when nil.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.ContentHash == "" {
		o.ContentHash = DefaultContentHash
	}
	if o.RuntimePkg == "" {
		o.RuntimePkg = DefaultRuntimePkg
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
