package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/snapc/internal/ir"
)

const cardSource = "function Card({ title, onTap }) {\n  return <view class={title} bindtap={onTap}><text>{title}</text></view>;\n}"

func TestInspectFile(t *testing.T) {
	p := newProject(t, "content_hash: test\n")
	path := p.write(t, "dynamic.jsx", cardSource)

	out, _, err := execute(NewInspectCommand(&RootOptions{Format: "text", Config: p.config}), path)
	require.NoError(t, err)

	assert.Contains(t, out, "__snapshot_5dad2_test_1  (dynamic.jsx:")
	assert.Contains(t, out, ", LEPUS)")
	assert.Contains(t, out, "elements: 2")
	assert.Contains(t, out, "[0] class          element=0 value=0")
	assert.Contains(t, out, "[1] event          element=0 value=1")
	assert.Contains(t, out, "[2] children       element=1\n")
	assert.Contains(t, out, "    children       element=1")
	assert.NotContains(t, out, "code:")
}

func TestInspectVerboseShowsCode(t *testing.T) {
	p := newProject(t, "")
	path := p.write(t, "dynamic.jsx", cardSource)

	out, _, err := execute(NewInspectCommand(&RootOptions{Format: "text", Verbose: true, Config: p.config}), path)
	require.NoError(t, err)
	assert.Contains(t, out, "code:")
	assert.Contains(t, out, "    function() {")
}

func TestInspectJSON(t *testing.T) {
	p := newProject(t, "")
	path := p.write(t, "dynamic.jsx", cardSource)

	out, _, err := execute(NewInspectCommand(&RootOptions{Format: "json", Config: p.config}), path)
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   []ir.Manifest `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	m := resp.Data[0]
	assert.Equal(t, 2, m.Elements)
	got, err := ir.ManifestHash(m)
	require.NoError(t, err)
	assert.Equal(t, m.Hash, got, "printed manifests verify against their hash")
}

func TestInspectByUID(t *testing.T) {
	p := newProject(t, "content_hash: test\n")
	p.write(t, "dynamic.jsx", cardSource)

	_, _, err := execute(NewCompileCommand(&RootOptions{Format: "text", Config: p.config}), p.src)
	require.NoError(t, err)

	out, _, err := execute(NewInspectCommand(&RootOptions{Format: "text", Config: p.config}), "--uid", "__snapshot_5dad2_test_1")
	require.NoError(t, err)
	assert.Contains(t, out, "__snapshot_5dad2_test_1")

	out, _, err = execute(NewInspectCommand(&RootOptions{Format: "text", Config: p.config}), "--uid", "__snapshot_00000_test_9")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestInspectArguments(t *testing.T) {
	p := newProject(t, "")
	path := p.write(t, "dynamic.jsx", cardSource)

	for _, args := range [][]string{{}, {path, "--uid", "x"}} {
		out, _, err := execute(NewInspectCommand(&RootOptions{Format: "text", Config: p.config}), args...)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, out, "exactly one of a file or --uid")
	}
}

func TestInspectReportsErrors(t *testing.T) {
	p := newProject(t, "")
	path := p.write(t, "Bad.jsx", `const C = () => <component><A /></component>;`)

	_, errOut, err := execute(NewInspectCommand(&RootOptions{Format: "text", Config: p.config}), path)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, errOut, "E301")
}
