package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped), "code survives wrapping")
}

func TestExitError_Message(t *testing.T) {
	err := WrapExitError(ExitFailure, "open database", errors.New("locked"))
	assert.Equal(t, "open database: locked", err.Error())
	assert.Equal(t, "locked", err.Unwrap().Error())

	bare := NewExitError(ExitFailure, "unknown variant")
	assert.Equal(t, "unknown variant", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestOutputFormatter_JSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	err := f.Success(map[string]int{"score": 7}, func(io.Writer) {
		t.Fatal("render must not run in json mode")
	})
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]any{"score": float64(7)}, resp.Data)
}

func TestOutputFormatter_TextCallsRender(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	err := f.Success(nil, func(w io.Writer) {
		fmt.Fprintln(w, "score 7")
	})
	require.NoError(t, err)
	assert.Equal(t, "score 7\n", buf.String())
}

func TestOutputFormatter_VerbosefRouting(t *testing.T) {
	var out, errw bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out, ErrWriter: &errw, Verbose: true}

	f.Verbosef("opened %s", "game.db")
	assert.Empty(t, out.String(), "diagnostics must not touch stdout")
	assert.Equal(t, "opened game.db\n", errw.String())

	f.Verbose = false
	errw.Reset()
	f.Verbosef("quiet")
	assert.Empty(t, errw.String())
}
