package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf, BuildID: "b-1"}

	require.NoError(t, formatter.Success(map[string]string{"code": "<view />"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "b-1", resp.BuildID)
	assert.Nil(t, resp.Error)
	assert.Contains(t, buf.String(), "<view />", "HTML is not escaped")
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error(ErrCodeNotFound, "missing", []string{"a.jsx"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E005", resp.Error.Code)
	assert.Equal(t, "missing", resp.Error.Message)
	assert.Equal(t, []any{"a.jsx"}, resp.Error.Details)
	assert.Empty(t, resp.BuildID)
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Error("E001", "boom", "detail"))
	assert.Equal(t, "Error [E001]: boom\n", buf.String())

	buf.Reset()
	formatter.Verbose = true
	require.NoError(t, formatter.Error("E001", "boom", "detail"))
	assert.Contains(t, buf.String(), "Details: detail")
}

func TestOutputFormatter_Fail(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := formatter.Fail(ExitCommandError, ErrCodeCache, "locked", nil)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "E006: locked", err.Error())
	assert.Contains(t, buf.String(), "Error [E006]: locked")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut}

	formatter.VerboseLog("quiet %d", 1)
	assert.Empty(t, errOut.String())

	formatter.Verbose = true
	formatter.VerboseLog("loud %d", 2)
	assert.Equal(t, "loud 2\n", errOut.String())
	assert.Empty(t, out.String(), "verbose output never reaches stdout")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "x")))

	wrapped := WrapExitError(ExitFailure, "compile", errors.New("inner"))
	assert.Equal(t, "compile: inner", wrapped.Error())
	assert.EqualError(t, errors.Unwrap(wrapped), "inner")
}
