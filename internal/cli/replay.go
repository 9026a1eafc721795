package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/phanxgames/gesture"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Scale     float64
	AutoAllow bool
	MinZoom   float64
	MaxZoom   float64
}

// EventRecord is one emitted gesture event in replay output.
type EventRecord struct {
	Type          string  `json:"type"`
	TouchID       int     `json:"touch_id,omitempty"`
	X             float64 `json:"x,omitempty"`
	Y             float64 `json:"y,omitempty"`
	DX            float64 `json:"dx,omitempty"`
	DY            float64 `json:"dy,omitempty"`
	Magnification float64 `json:"magnification,omitempty"`
	CursorX       int     `json:"cursor_x,omitempty"`
	CursorY       int     `json:"cursor_y,omitempty"`
}

// ReplayResult holds the outcome of replaying one script.
type ReplayResult struct {
	Script     string        `json:"script"`
	Steps      int           `json:"steps"`
	Events     []EventRecord `json:"events"`
	FinalState string        `json:"final_state"`
	OffsetX    float64       `json:"offset_x"`
	OffsetY    float64       `json:"offset_y"`
	Zoom       float64       `json:"zoom"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Replay a gesture script and report emitted events",
		Long: `Replay a gesture script through a fresh surface and report every
emitted gesture event, the final recognizer state and the viewport.

Scripts ending in .yaml or .yml are read as YAML, anything else as JSON.

Exit codes:
  0 - Replay completed
  1 - The recognizer hit an invariant violation
  2 - Command error (unreadable or malformed script, unfinished replay)

Examples:
  gesturereplay replay fling.json
  gesturereplay replay pinch.yaml --auto-allow --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Scale, "scale", 1, "device scale factor for the pan threshold")
	cmd.Flags().BoolVar(&opts.AutoAllow, "auto-allow", false, "answer every touch down with DefaultAllowed")
	cmd.Flags().Float64Var(&opts.MinZoom, "min-zoom", 0, "minimum viewport zoom (0 = unlimited)")
	cmd.Flags().Float64Var(&opts.MaxZoom, "max-zoom", 0, "maximum viewport zoom (0 = unlimited)")

	return cmd
}

// eventCollector is the surface's EventSink during a replay.
type eventCollector struct {
	events []EventRecord
}

func (c *eventCollector) EmitEvent(e gesture.GestureEvent) {
	rec := EventRecord{
		Type:          e.Type.String(),
		TouchID:       int(e.TouchID),
		DX:            e.Delta.X,
		DY:            e.Delta.Y,
		Magnification: e.Magnification,
		CursorX:       e.Cursor.X,
		CursorY:       e.Cursor.Y,
	}
	switch e.Type {
	case gesture.EventClick:
		rec.X, rec.Y = e.Content.X, e.Content.Y
	case gesture.EventDispatch, gesture.EventScroll, gesture.EventZoom:
		rec.X, rec.Y = e.Point.X, e.Point.Y
	}
	c.events = append(c.events, rec)
}

// autoAllow answers every down with DefaultAllowed, standing in for a
// script that never prevents default handling.
type autoAllow struct {
	surface *gesture.Surface
}

func (a *autoAllow) DispatchTouch(e gesture.TouchEvent) {
	if e.Type == gesture.TouchDown {
		a.surface.EventProcessed(gesture.DefaultAllowed)
	}
}

func runReplay(opts *ReplayOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sc, err := loadScriptFile(formatter, path)
	if err != nil {
		return err
	}
	formatter.VerboseLog("Loaded %d step(s) from %s", sc.Len(), path)

	collector := &eventCollector{events: []EventRecord{}}
	cfg := gesture.SurfaceConfig{
		DeviceScale: opts.Scale,
		Sink:        collector,
		Logger:      replayLogger(opts.Verbose, formatter.GetErrWriter()),
		MinZoom:     opts.MinZoom,
		MaxZoom:     opts.MaxZoom,
	}
	var dispatcher *autoAllow
	if opts.AutoAllow {
		dispatcher = &autoAllow{}
		cfg.Script = dispatcher
	}
	surface := gesture.NewSurface(cfg)
	if dispatcher != nil {
		dispatcher.surface = surface
	}

	if err := sc.Replay(surface); err != nil {
		return reportReplayError(formatter, err, len(collector.events))
	}

	vp := surface.Viewport()
	result := ReplayResult{
		Script:     path,
		Steps:      sc.Len(),
		Events:     collector.events,
		FinalState: surface.State().String(),
		OffsetX:    vp.Offset.X,
		OffsetY:    vp.Offset.Y,
		Zoom:       vp.Zoom,
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return outputReplayText(formatter.Writer, result)
}

// reportReplayError writes a failed replay through f. An invariant
// violation exits with ExitFailure; anything else that stops the replay
// is a command error.
func reportReplayError(f *OutputFormatter, err error, emitted int) error {
	var ie *gesture.InvariantError
	if errors.As(err, &ie) {
		return f.Fail(ExitFailure, ErrCodeInvariant, err, map[string]any{
			"events": emitted,
			"state":  ie.State.String(),
		})
	}
	return f.Fail(ExitCommandError, ErrCodeReplay, err, map[string]any{"events": emitted})
}

// replayLogger returns a debug-level text logger on w in verbose mode, or
// nil to keep the recognizer silent.
func replayLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func outputReplayText(w io.Writer, result ReplayResult) error {
	fmt.Fprintf(w, "Replay: %s (%d steps)\n", result.Script, result.Steps)
	fmt.Fprintln(w)

	for i, e := range result.Events {
		switch e.Type {
		case "click", "dispatch":
			fmt.Fprintf(w, "%3d %-8s touch=%d at (%g,%g)\n", i, e.Type, e.TouchID, e.X, e.Y)
		case "scroll":
			fmt.Fprintf(w, "%3d %-8s touch=%d by (%g,%g)\n", i, e.Type, e.TouchID, e.DX, e.DY)
		case "zoom":
			fmt.Fprintf(w, "%3d %-8s touch=%d x%.4g by (%g,%g)\n", i, e.Type, e.TouchID, e.Magnification, e.DX, e.DY)
		case "fling":
			fmt.Fprintf(w, "%3d %-8s from (%d,%d) by (%g,%g)\n", i, e.Type, e.CursorX, e.CursorY, e.DX, e.DY)
		default:
			fmt.Fprintf(w, "%3d %s\n", i, e.Type)
		}
	}
	if len(result.Events) == 0 {
		fmt.Fprintln(w, "No gesture events emitted.")
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Final state: %s\n", result.FinalState)
	fmt.Fprintf(w, "Viewport: offset (%g,%g) zoom %g\n", result.OffsetX, result.OffsetY, result.Zoom)
	return nil
}
