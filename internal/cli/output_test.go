package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/gesture"
)

func TestExitErrorCodes(t *testing.T) {
	base := errors.New("boom")
	f := &OutputFormatter{Format: "text", Writer: &bytes.Buffer{}}
	err := f.Fail(ExitCommandError, ErrCodeParse, base, nil)

	assert.Equal(t, "E_PARSE: boom", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, Reported(err))

	assert.Equal(t, ExitFailure, GetExitCode(base))
	assert.False(t, Reported(base))
	assert.True(t, Reported(fmt.Errorf("wrapped: %w", err)))
}

func TestFailText(t *testing.T) {
	out := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: out}
	_ = f.Fail(ExitFailure, "E_X", errors.New("bad thing"), map[string]any{"n": 1})
	assert.Equal(t, "Error [E_X]: bad thing\n", out.String())

	out.Reset()
	f.Verbose = true
	_ = f.Fail(ExitFailure, "E_X", errors.New("bad thing"), "more")
	assert.Equal(t, "Error [E_X]: bad thing\nDetails: more\n", out.String())
}

func TestSuccessTextWritesNothing(t *testing.T) {
	out := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: out}
	require.NoError(t, f.Success(map[string]int{"x": 1}))
	assert.Empty(t, out.String())
}

func TestReportReplayErrorJSON(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		exit     int
		code     string
		hasState bool
	}{
		{
			name: "invariant",
			err: fmt.Errorf("step 1 (up): %w",
				&gesture.InvariantError{Op: "touch up", State: gesture.StateFlinging}),
			exit:     ExitFailure,
			code:     ErrCodeInvariant,
			hasState: true,
		},
		{
			name: "unsettled fling",
			err:  errors.New("step 4 (settle): fling did not settle"),
			exit: ExitCommandError,
			code: ErrCodeReplay,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			f := &OutputFormatter{Format: "json", Writer: out}
			err := reportReplayError(f, tt.err, 3)

			require.Error(t, err)
			assert.Equal(t, tt.exit, GetExitCode(err))
			assert.True(t, Reported(err))

			var resp struct {
				Status string `json:"status"`
				Error  struct {
					Code    string         `json:"code"`
					Message string         `json:"message"`
					Details map[string]any `json:"details"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.err.Error(), resp.Error.Message)
			assert.EqualValues(t, 3, resp.Error.Details["events"])
			if tt.hasState {
				assert.Equal(t, "Flinging", resp.Error.Details["state"])
			}
		})
	}
}

func TestVerboseLogGoesToErrWriter(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}
	f.VerboseLog("loaded %d", 3)
	assert.Empty(t, out.String())
	assert.Equal(t, "loaded 3\n", errOut.String())

	f.Verbose = false
	f.VerboseLog("hidden")
	assert.Equal(t, "loaded 3\n", errOut.String())
}
