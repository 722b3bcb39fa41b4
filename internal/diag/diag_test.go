package diag

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/snapc/internal/jsx"
)

func TestCollector(t *testing.T) {
	c := &Collector{}
	Warn(c, WarnKeyNotOnRoot, jsx.Pos{Line: 2, Column: 5}, "key is not on root element of snapshot")
	Errorf(c, ErrComponentTag, jsx.Pos{}, "<%s /> is not supported", "component")

	assert.True(t, c.HasErrors())
	assert.Equal(t, 1, c.Count(Warning))
	assert.Equal(t, []string{WarnKeyNotOnRoot, ErrComponentTag}, c.Codes())

	ds := c.Diagnostics()
	require.Len(t, ds, 2)
	assert.Equal(t, "[W201] 2:5: key is not on root element of snapshot", ds[0].Error())
	assert.Equal(t, "[E301] <component /> is not supported", ds[1].Error())
}

func TestRecoverInternalError(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		Internalf(jsx.Pos{Line: 1, Column: 1}, "spread children are not supported")
		return nil
	}

	err := run()
	var ie *InternalError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "spread children are not supported", ie.Message)
}

func TestRecoverRepanicsForeignValues(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		var err error
		defer Recover(&err)
		panic("boom")
	})
}

func TestRenderPlain(t *testing.T) {
	src := []byte("const a = 1;\nconst b = <view><text key={k}/></view>;\n")
	d := Diagnostic{
		Severity: Warning,
		Code:     WarnKeyNotOnRoot,
		Message:  "key is not on root element of snapshot",
		Pos:      jsx.Pos{Line: 2, Column: 17},
	}

	var buf bytes.Buffer
	r := &Renderer{Context: 1}
	r.Render(&buf, "app.jsx", src, []Diagnostic{d})

	want := "warning W201: key is not on root element of snapshot\n" +
		"  app.jsx:2:17\n" +
		"     1 │ const a = 1;\n" +
		"→    2 │ const b = <view><text key={k}/></view>;\n" +
		"       │                 ^\n"
	assert.Equal(t, want, buf.String())
}

func TestColorForNonFile(t *testing.T) {
	assert.False(t, ColorFor(&bytes.Buffer{}))
}
