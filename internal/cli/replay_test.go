package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tapScript = `{"steps":[
	{"action":"down","id":1,"x":5,"y":7},
	{"action":"allow"},
	{"action":"up","id":1,"x":5,"y":7}
]}`

const flingScript = `
steps:
  - {action: swipe, id: 1, x: 0, y: 0, toX: 0, toY: 300, frames: 6}
  - {action: vsync, frames: 3}
`

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func executeReplay(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewReplayCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestReplayMissingArgument(t *testing.T) {
	_, err := executeReplay(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestReplayMissingFile(t *testing.T) {
	out, err := executeReplay(t, "text", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeRead)
}

func TestReplayMalformedScript(t *testing.T) {
	path := writeScript(t, "bad.json", `{"steps":[{"action":"wiggle"}]}`)
	out, err := executeReplay(t, "json", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeParse, resp.Error.Code)
}

func TestReplayTapText(t *testing.T) {
	path := writeScript(t, "tap.json", tapScript)
	out, err := executeReplay(t, "text", path)
	require.NoError(t, err)
	assert.Contains(t, out, "click")
	assert.Contains(t, out, "at (5,7)")
	assert.Contains(t, out, "Final state: Nothing")
}

func TestReplayFlingYAMLJSONOutput(t *testing.T) {
	path := writeScript(t, "fling.yaml", flingScript)
	out, err := executeReplay(t, "json", path, "--auto-allow")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ReplayResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Steps)

	var scrolls, flings int
	for _, e := range resp.Data.Events {
		switch e.Type {
		case "scroll":
			scrolls++
		case "fling":
			flings++
			assert.Equal(t, 300, e.CursorY)
		}
	}
	assert.Equal(t, 4, scrolls)
	assert.Equal(t, 3, flings)
	assert.Contains(t, resp.Data.FinalState, "Flinging")
	assert.Greater(t, resp.Data.OffsetY, 240.0)
}

func TestReplayWithoutAutoAllowHoldsGesture(t *testing.T) {
	path := writeScript(t, "fling.yml", flingScript)
	out, err := executeReplay(t, "text", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No gesture events emitted.")
	assert.Contains(t, out, "Final state: Nothing")
}

func TestReplayScaleRaisesPanThreshold(t *testing.T) {
	// A 30px move pans at scale 1 but not at scale 2 (threshold 40px).
	script := `{"steps":[
		{"action":"down","id":1,"x":0,"y":0},
		{"action":"allow"},
		{"action":"move","id":1,"x":0,"y":30}
	]}`
	path := writeScript(t, "pan.json", script)

	out, err := executeReplay(t, "text", path)
	require.NoError(t, err)
	assert.Contains(t, out, "scroll")

	out, err = executeReplay(t, "text", path, "--scale", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "scroll")
	assert.Contains(t, out, "Final state: Touching")
}

func TestReplayInvariantViolation(t *testing.T) {
	script := `{"steps":[
		{"action":"swipe","id":1,"x":0,"y":0,"toX":0,"toY":300,"frames":6},
		{"action":"up","id":1,"x":0,"y":300}
	]}`
	path := writeScript(t, "broken.json", script)

	out, err := executeReplay(t, "json", path, "--auto-allow")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, Reported(err), "main must not print the error a second time")

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvariant, resp.Error.Code)
}

func TestReplayInvariantViolationTextReportedOnce(t *testing.T) {
	script := `{"steps":[
		{"action":"swipe","id":1,"x":0,"y":0,"toX":0,"toY":300,"frames":6},
		{"action":"move","id":1,"x":0,"y":310}
	]}`
	path := writeScript(t, "broken.json", script)

	out, err := executeReplay(t, "text", path, "--auto-allow")
	require.Error(t, err)
	assert.True(t, Reported(err))
	assert.Equal(t, 1, strings.Count(out, "Error [E_INVARIANT]"))
	assert.NotContains(t, out, "Final state")
}

func TestValidateCommand(t *testing.T) {
	path := writeScript(t, "tap.json", tapScript)
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "3 step(s)")
}
