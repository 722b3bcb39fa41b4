package harness

import (
	"github.com/roach88/snapc/internal/diag"
	"github.com/roach88/snapc/internal/ir"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Output is the printed module. Empty when the source did not compile.
	Output string `json:"output"`

	// Snapshots holds one manifest per compiled snapshot.
	Snapshots []ir.Manifest `json:"snapshots"`

	// Diagnostics lists everything the compiler reported, in order.
	Diagnostics []diag.Diagnostic `json:"diagnostics"`

	// Errors contains assertion failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:        true,
		Snapshots:   []ir.Manifest{},
		Diagnostics: []diag.Diagnostic{},
		Errors:      []string{},
	}
}

// AddError records an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Codes returns the diagnostic codes in report order.
func (r *Result) Codes() []string {
	codes := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		codes[i] = d.Code
	}
	return codes
}
