// Package diag carries compiler diagnostics.
//
// Diagnostics are plain values reported to an explicit Sink that every
// compiler entry point takes as a parameter. Nothing is global: a test can
// hand the compiler a fresh Collector and inspect exactly what was reported.
//
// Invariant violations that well-formed input can never reach are a separate
// class. They are raised with Internalf, which panics with *InternalError,
// and recovered once at the compiler boundary.
package diag

import (
	"fmt"
	"sync"

	"github.com/roach88/snapc/internal/jsx"
)

// Diagnostic codes.
const (
	// Warnings (W200-W299): compilation continues.
	WarnKeyNotOnRoot     = "W201" // key on a non-root element
	WarnNamespaceElement = "W202" // namespaced element name
	WarnStyleLiteral     = "W203" // style literal of an unsupported shape
	WarnUnknownCSS       = "W204" // style object key outside the property table

	// Errors (E300-E399): the current snapshot root is abandoned. E300
	// abandons the whole file.
	ErrSyntax        = "E300" // source does not parse
	ErrComponentTag  = "E301" // raw <component />
	ErrNamespaceAttr = "E302" // unsupported ns:name attribute

	// Internal errors (E900-E999).
	ErrInternal = "E901"
)

// Severity orders diagnostics by impact.
type Severity uint8

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", s)
	}
}

// MarshalText implements encoding.TextMarshaler so JSON output carries the
// name rather than the number.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "warning":
		*s = Warning
	case "error":
		*s = Error
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Pos      jsx.Pos  `json:"pos"`
	Hint     string   `json:"hint,omitempty"`
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	if d.Pos.Line > 0 {
		return fmt.Sprintf("[%s] %d:%d: %s", d.Code, d.Pos.Line, d.Pos.Column, d.Message)
	}
	return fmt.Sprintf("[%s] %s", d.Code, d.Message)
}

// Sink receives diagnostics.
type Sink interface {
	Report(d Diagnostic)
}

// Warn reports a warning to s.
func Warn(s Sink, code string, pos jsx.Pos, message string) {
	s.Report(Diagnostic{Severity: Warning, Code: code, Message: message, Pos: pos})
}

// Errorf reports an error to s.
func Errorf(s Sink, code string, pos jsx.Pos, format string, args ...any) {
	s.Report(Diagnostic{Severity: Error, Code: code, Message: fmt.Sprintf(format, args...), Pos: pos})
}

// Collector is a Sink that records diagnostics in report order. It is safe
// for concurrent use so one collector can serve a parallel build.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// Report implements Sink.
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, d)
}

// Diagnostics returns a copy of everything reported so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

// HasErrors reports whether any error-severity diagnostic was reported.
func (c *Collector) HasErrors() bool {
	return c.Count(Error) > 0
}

// Count returns the number of diagnostics with the given severity.
func (c *Collector) Count(sev Severity) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Codes returns the codes reported so far, in order.
func (c *Collector) Codes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	codes := make([]string, len(c.diags))
	for i, d := range c.diags {
		codes[i] = d.Code
	}
	return codes
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(Diagnostic) {}

// InternalError is an invariant violation inside the compiler.
type InternalError struct {
	Message string
	Pos     jsx.Pos
}

func (e *InternalError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("[%s] internal error at %d:%d: %s", ErrInternal, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("[%s] internal error: %s", ErrInternal, e.Message)
}

// Internalf panics with an *InternalError. Callers at the compiler boundary
// recover it with Recover.
func Internalf(pos jsx.Pos, format string, args ...any) {
	panic(&InternalError{Message: fmt.Sprintf(format, args...), Pos: pos})
}

// Recover converts an *InternalError panic into *err. Other panics are
// re-raised. Use it as `defer diag.Recover(&err)`.
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if ie, ok := r.(*InternalError); ok {
		*err = ie
		return
	}
	panic(r)
}
