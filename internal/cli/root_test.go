package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "snapc", cmd.Use)
	assert.Contains(t, cmd.Long, "snapshot")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"compile", "inspect", "watch", "check"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err, "Command %s should exist", name)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	config := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, config)
	assert.Equal(t, "c", config.Shorthand)
}

func TestCompileCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	compileCmd, _, err := cmd.Find([]string{"compile"})
	require.NoError(t, err)

	for _, name := range []string{"output", "target", "mode", "content-hash", "no-cache", "stdout", "concurrency"} {
		assert.NotNil(t, compileCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "o", compileCmd.Flags().Lookup("output").Shorthand)
	assert.Equal(t, "j", compileCmd.Flags().Lookup("concurrency").Shorthand)
}

func TestWatchCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	watchCmd, _, err := cmd.Find([]string{"watch"})
	require.NoError(t, err)

	addr := watchCmd.Flags().Lookup("metrics-addr")
	require.NotNil(t, addr)
	assert.Equal(t, "", addr.DefValue)
}

func TestInvalidFormatRejected(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"check", "--format", "yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
}

func TestLoggerFollowsFormat(t *testing.T) {
	var buf bytes.Buffer
	opts := &RootOptions{Format: "json"}
	opts.Logger(&buf).Info("hello", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	opts = &RootOptions{Format: "text"}
	log := opts.Logger(&buf)
	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Same(t, log, opts.Logger(&buf), "logger is built once")

	buf.Reset()
	opts = &RootOptions{Format: "text", Verbose: true}
	opts.Logger(&buf).Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}
