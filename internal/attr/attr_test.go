package attr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want Name
	}{
		{"data-foo", Dataset{Name: "foo"}},
		{"data-", Dataset{Name: ""}},
		{"class", Class{}},
		{"className", Class{}},
		{"style", Style{}},
		{"id", ID{}},
		{"ref", Ref{}},
		{"__lynx_timing_flag", TimingFlag{}},
		{"bindtap", Event{Type: "bindEvent", Name: "tap"}},
		{"catchtap", Event{Type: "catchEvent", Name: "tap"}},
		{"global-bindscroll", Event{Type: "global-bindEvent", Name: "scroll"}},
		{"capture-bindtap", Event{Type: "capture-bind", Name: "tap"}},
		{"capture-catchtouchstart", Event{Type: "capture-catch", Name: "touchstart"}},
		{"bind", Attr{Name: "bind"}},
		{"bindtap2", Attr{Name: "bindtap2"}},
		{"src", Attr{Name: "src"}},
		{"flatten", Attr{Name: "flatten"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// data-bindtap looks like an event but the dataset rule comes first.
	assert.Equal(t, Dataset{Name: "bindtap"}, Classify("data-bindtap"))
}

func TestClassifyNS(t *testing.T) {
	got, err := ClassifyNS("main-thread", "ref")
	require.NoError(t, err)
	assert.Equal(t, WorkletRef{Namespace: "main-thread"}, got)

	got, err = ClassifyNS("main-thread", "bindtap")
	require.NoError(t, err)
	assert.Equal(t, WorkletEvent{Namespace: "main-thread", Type: "bindEvent", Name: "tap"}, got)

	got, err = ClassifyNS("main-thread", "gesture")
	require.NoError(t, err)
	assert.Equal(t, Gesture{Namespace: "main-thread"}, got)

	_, err = ClassifyNS("main-thread", "foo")
	var ue *UnsupportedError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "unsupported namespaced attribute main-thread:foo", err.Error())
}

func TestKindLabels(t *testing.T) {
	assert.Equal(t, "event", Event{}.Kind())
	assert.Equal(t, "parsed-style", ParsedStyle{}.Kind())
	assert.Equal(t, "list-item-platform-info", ListItemPlatformInfo{}.Kind())
}
