package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when an assertion fails. It carries the
// diagnostics that were reported so failures are debuggable from the
// message alone.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Codes    []string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if len(e.Codes) > 0 {
		fmt.Fprintf(&buf, "  Diagnostics: %s\n", strings.Join(e.Codes, ", "))
	}
	return buf.String()
}

// evaluateAssertion dispatches a to its checker.
func evaluateAssertion(r *Result, a Assertion) error {
	switch a.Type {
	case AssertOutputContains:
		return assertOutputContains(r, a)
	case AssertOutputNotContains:
		return assertOutputNotContains(r, a)
	case AssertSnapshotCount:
		return assertSnapshotCount(r, a)
	case AssertPartKinds:
		return assertKinds(r, a, partKinds)
	case AssertSlotKinds:
		return assertKinds(r, a, slotKinds)
	case AssertDiagnostic:
		return assertDiagnostic(r, a)
	case AssertNoDiagnostics:
		return assertNoDiagnostics(r)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func assertOutputContains(r *Result, a Assertion) error {
	if strings.Contains(r.Output, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("output containing %q", a.Text),
		Actual:   describeOutput(r.Output),
		Codes:    r.Codes(),
	}
}

func assertOutputNotContains(r *Result, a Assertion) error {
	if !strings.Contains(r.Output, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("output without %q", a.Text),
		Actual:   describeOutput(r.Output),
	}
}

func assertSnapshotCount(r *Result, a Assertion) error {
	if len(r.Snapshots) == *a.Count {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("%d snapshots", *a.Count),
		Actual:   fmt.Sprintf("%d snapshots", len(r.Snapshots)),
		Codes:    r.Codes(),
	}
}

func partKinds(r *Result, i int) []string {
	kinds := make([]string, len(r.Snapshots[i].Parts))
	for j, p := range r.Snapshots[i].Parts {
		kinds[j] = p.Kind
	}
	return kinds
}

func slotKinds(r *Result, i int) []string {
	kinds := make([]string, len(r.Snapshots[i].Slots))
	for j, s := range r.Snapshots[i].Slots {
		kinds[j] = s.Kind
	}
	return kinds
}

func assertKinds(r *Result, a Assertion, kindsOf func(*Result, int) []string) error {
	if a.Snapshot >= len(r.Snapshots) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("snapshot %d", a.Snapshot),
			Actual:   fmt.Sprintf("%d snapshots", len(r.Snapshots)),
			Codes:    r.Codes(),
		}
	}
	got := kindsOf(r, a.Snapshot)
	if slices.Equal(got, a.Kinds) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("[%s]", strings.Join(a.Kinds, ", ")),
		Actual:   fmt.Sprintf("[%s]", strings.Join(got, ", ")),
	}
}

func assertDiagnostic(r *Result, a Assertion) error {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Code == a.Code {
			n++
		}
	}

	if a.Count == nil {
		if n > 0 {
			return nil
		}
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("diagnostic %s", a.Code),
			Actual:   "not reported",
			Codes:    r.Codes(),
		}
	}
	if n == *a.Count {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("diagnostic %s reported %d times", a.Code, *a.Count),
		Actual:   fmt.Sprintf("reported %d times", n),
		Codes:    r.Codes(),
	}
}

func assertNoDiagnostics(r *Result) error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertNoDiagnostics,
		Expected: "no diagnostics",
		Actual:   fmt.Sprintf("%d diagnostics", len(r.Diagnostics)),
		Codes:    r.Codes(),
	}
}

func describeOutput(out string) string {
	if out == "" {
		return "no output"
	}
	const limit = 200
	if len(out) > limit {
		return fmt.Sprintf("%q...", out[:limit])
	}
	return fmt.Sprintf("%q", out)
}
