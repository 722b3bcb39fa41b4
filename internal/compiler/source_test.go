package compiler

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/snapc/internal/diag"
)

func TestCompileSource(t *testing.T) {
	src := []byte(`const App = () => <view id="root"><text>Hello</text></view>;`)
	c := &diag.Collector{}

	out, err := CompileSource(context.Background(), src, Options{Filename: "basic.jsx"}, c)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Empty(t, c.Diagnostics())

	assert.Contains(t, out.Code, `import * as ReactLynx from "@lynx-js/react";`)
	assert.Contains(t, out.Code, `const App = () => <__snapshot_3ccc0_test_1 />;`)

	require.Len(t, out.Manifests, 1)
	m := out.Manifests[0]
	assert.Equal(t, "__snapshot_3ccc0_test_1", m.UID)
	assert.Equal(t, "basic.jsx", m.Filename)
	assert.Equal(t, "LEPUS", m.Target)
	assert.Equal(t, 3, m.Elements)
	assert.Empty(t, m.Parts)
	assert.NotEmpty(t, m.Hash)
	assert.Contains(t, m.Code, `__SetID(el, "root");`)
}

func TestCompileSourceSyntaxError(t *testing.T) {
	c := &diag.Collector{}
	out, err := CompileSource(context.Background(), []byte("const a = <view>;"), Options{Filename: "bad.jsx"}, c)

	require.NoError(t, err)
	assert.Nil(t, out)
	assert.Equal(t, []string{diag.ErrSyntax}, c.Codes())
	assert.True(t, c.HasErrors())
}

func TestCompileSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &diag.Collector{}
	_, err := CompileSource(ctx, []byte("foo();"), Options{Filename: "a.jsx"}, c)
	require.Error(t, err)
	assert.Empty(t, c.Diagnostics())
}

func TestCompileSourceJSTarget(t *testing.T) {
	src := []byte("function Card({ title, onTap }) {\n  return <view class={title} bindtap={onTap}><text>{title}</text></view>;\n}")
	out, err := CompileSource(context.Background(), src, Options{Filename: "dynamic.jsx", Target: TargetJS}, diag.Discard)
	require.NoError(t, err)

	assert.NotContains(t, out.Code, "__CreateView")
	assert.Contains(t, out.Code, "values={[title, onTap]}")

	require.Len(t, out.Manifests, 1)
	var got []string
	for _, p := range out.Manifests[0].Parts {
		got = append(got, p.Kind)
	}
	assert.Equal(t, []string{"class", "event", "children"}, got)
	assert.Equal(t, "JS", out.Manifests[0].Target)
}

func TestCompileSourceKeepsUserErrorsNonFatal(t *testing.T) {
	c := &diag.Collector{}
	src := []byte("const C = () => <component><A /></component>;\nconst D = () => <view />;")
	out, err := CompileSource(context.Background(), src, Options{Filename: "c.jsx"}, c)

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, []string{diag.ErrComponentTag}, c.Codes())
	require.Len(t, out.Manifests, 1)
	assert.True(t, strings.HasSuffix(out.Manifests[0].UID, "_test_1"), out.Manifests[0].UID)
}
