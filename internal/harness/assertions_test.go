package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/snapc/internal/diag"
	"github.com/roach88/snapc/internal/ir"
)

func intPtr(n int) *int { return &n }

func sampleResult() *Result {
	r := NewResult()
	r.Output = `const __snapshot_1 = ReactLynx.createSnapshot("__snapshot_1", null, null, null, undefined);`
	r.Snapshots = []ir.Manifest{{
		UID:   "__snapshot_1",
		Parts: []ir.PartRecord{{Kind: "class", Value: 0}, {Kind: "children", Element: 1, Value: -1}},
		Slots: []ir.SlotRecord{{Kind: "children", Element: 1}},
	}}
	r.Diagnostics = []diag.Diagnostic{
		{Severity: diag.Warning, Code: diag.WarnKeyNotOnRoot},
		{Severity: diag.Warning, Code: diag.WarnKeyNotOnRoot},
	}
	return r
}

func TestEvaluateAssertion(t *testing.T) {
	tests := []struct {
		name string
		a    Assertion
		pass bool
	}{
		{"contains", Assertion{Type: AssertOutputContains, Text: "createSnapshot"}, true},
		{"contains missing", Assertion{Type: AssertOutputContains, Text: "__CreateView"}, false},
		{"not contains", Assertion{Type: AssertOutputNotContains, Text: "__CreateView"}, true},
		{"not contains present", Assertion{Type: AssertOutputNotContains, Text: "undefined"}, false},
		{"snapshot count", Assertion{Type: AssertSnapshotCount, Count: intPtr(1)}, true},
		{"snapshot count wrong", Assertion{Type: AssertSnapshotCount, Count: intPtr(2)}, false},
		{"part kinds", Assertion{Type: AssertPartKinds, Kinds: []string{"class", "children"}}, true},
		{"part kinds order matters", Assertion{Type: AssertPartKinds, Kinds: []string{"children", "class"}}, false},
		{"part kinds out of range", Assertion{Type: AssertPartKinds, Snapshot: 3, Kinds: []string{}}, false},
		{"slot kinds", Assertion{Type: AssertSlotKinds, Kinds: []string{"children"}}, true},
		{"slot kinds wrong", Assertion{Type: AssertSlotKinds, Kinds: []string{}}, false},
		{"diagnostic any", Assertion{Type: AssertDiagnostic, Code: diag.WarnKeyNotOnRoot}, true},
		{"diagnostic exact", Assertion{Type: AssertDiagnostic, Code: diag.WarnKeyNotOnRoot, Count: intPtr(2)}, true},
		{"diagnostic wrong count", Assertion{Type: AssertDiagnostic, Code: diag.WarnKeyNotOnRoot, Count: intPtr(1)}, false},
		{"diagnostic absent", Assertion{Type: AssertDiagnostic, Code: diag.ErrComponentTag}, false},
		{"diagnostic absent zero", Assertion{Type: AssertDiagnostic, Code: diag.ErrComponentTag, Count: intPtr(0)}, true},
		{"no diagnostics", Assertion{Type: AssertNoDiagnostics}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := evaluateAssertion(sampleResult(), tt.a)
			if tt.pass {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestEvaluateAssertion_UnknownType(t *testing.T) {
	err := evaluateAssertion(NewResult(), Assertion{Type: "final_state"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown assertion type")
}

func TestNoDiagnosticsOnCleanResult(t *testing.T) {
	assert.NoError(t, evaluateAssertion(NewResult(), Assertion{Type: AssertNoDiagnostics}))
}

func TestAssertionError_ErrorFormat(t *testing.T) {
	err := evaluateAssertion(sampleResult(), Assertion{Type: AssertSnapshotCount, Count: intPtr(3)})
	require.Error(t, err)

	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "3 snapshots", ae.Expected)
	assert.Equal(t, "1 snapshots", ae.Actual)

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: snapshot_count")
	assert.Contains(t, msg, "Expected: 3 snapshots")
	assert.Contains(t, msg, "Diagnostics: W201, W201")
}

func TestDescribeOutputTruncates(t *testing.T) {
	assert.Equal(t, "no output", describeOutput(""))
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'a'
	}
	assert.Contains(t, describeOutput(string(long)), "...")
}
