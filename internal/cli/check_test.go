package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckValidConfig(t *testing.T) {
	p := newProject(t, "target: MIXED\n")

	out, _, err := execute(NewCheckCommand(&RootOptions{Format: "text"}), p.config)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ "+p.config+" is valid")
}

func TestCheckReportsEveryViolation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapc.yaml")
	writeFile(t, path, "target: WEB\nconcurrency: 0\n")

	out, _, err := execute(NewCheckCommand(&RootOptions{Format: "json"}), path)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string `json:"status"`
		Error  struct {
			Code    string         `json:"code"`
			Details []CheckProblem `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeConfigInvalid, resp.Error.Code)

	fields := map[string]bool{}
	for _, p := range resp.Error.Details {
		fields[p.Field] = true
	}
	assert.True(t, fields["target"])
	assert.True(t, fields["concurrency"])
}

func TestCheckUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapc.yaml")
	writeFile(t, path, "targte: JS\n")

	out, _, err := execute(NewCheckCommand(&RootOptions{Format: "text"}), path)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Check failed")
	assert.Contains(t, out, "targte")
}

func TestCheckMissingConfig(t *testing.T) {
	out, _, err := execute(NewCheckCommand(&RootOptions{Format: "text"}), filepath.Join(t.TempDir(), "none.yaml"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestCheckSources(t *testing.T) {
	p := newProject(t, "")
	p.write(t, "dynamic.jsx", cardSource)
	p.write(t, "App.jsx", basicSource)

	out, _, err := execute(NewCheckCommand(&RootOptions{Format: "text"}), p.config, "--sources", p.src)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 2 snapshot(s) checked")
}

func TestCheckSourcesWithErrors(t *testing.T) {
	p := newProject(t, "")
	p.write(t, "Bad.jsx", `const C = () => <component><A /></component>;`)

	out, _, err := execute(NewCheckCommand(&RootOptions{Format: "text"}), p.config, "--sources", p.src)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E301")
	assert.Contains(t, out, "Bad.jsx")
}
