package gesture

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FrameDuration is the frame time, in seconds, that replayed vsync steps
// pass to Surface.Update.
const FrameDuration = float32(1.0 / 60.0)

// maxSettleFrames bounds a "settle" step. A fling clamped to the maximum
// velocity decays below the minimum in well under this many frames.
const maxSettleFrames = 10000

// scriptStep is a single action in a gesture script.
type scriptStep struct {
	Action string  `json:"action" yaml:"action"`
	ID     int     `json:"id,omitempty" yaml:"id,omitempty"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	ToX    float64 `json:"toX,omitempty" yaml:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty" yaml:"toY,omitempty"`
	Frames int     `json:"frames,omitempty" yaml:"frames,omitempty"`
}

// Script is a parsed sequence of touch events, script verdicts and frame
// ticks that can be replayed against a Surface.
//
// Actions:
//   - down, move, up, cancel: one touch event for id at (x, y)
//   - allow, prevent: the script verdict for the pending sequence
//   - vsync: frames frame ticks (default 1)
//   - settle: frame ticks until any fling has ended
//   - swipe: down at (x, y), frames-2 interpolated moves, up at (toX, toY)
type Script struct {
	Steps []scriptStep `json:"steps" yaml:"steps"`
}

var validActions = map[string]bool{
	"down": true, "move": true, "up": true, "cancel": true,
	"allow": true, "prevent": true,
	"vsync": true, "settle": true, "swipe": true,
}

// LoadScript parses a JSON gesture script.
func LoadScript(jsonData []byte) (*Script, error) {
	var script Script
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if err := script.validate(); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	return &script, nil
}

// LoadScriptYAML parses a YAML gesture script with the same schema as
// LoadScript.
func LoadScriptYAML(yamlData []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(yamlData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if err := script.validate(); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	return &script, nil
}

func (sc *Script) validate() error {
	if len(sc.Steps) == 0 {
		return errors.New("no steps")
	}
	for i, st := range sc.Steps {
		if !validActions[st.Action] {
			return fmt.Errorf("step %d: unknown action %q", i, st.Action)
		}
	}
	return nil
}

// Len returns the number of steps.
func (sc *Script) Len() int {
	return len(sc.Steps)
}

// Replay executes every step against s in order. An invariant violation
// raised by the handler stops the replay and is returned as an error
// wrapping the *InvariantError.
func (sc *Script) Replay(s *Surface) error {
	for i, st := range sc.Steps {
		if err := replayStep(s, st); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Action, err)
		}
	}
	return nil
}

func replayStep(s *Surface, st scriptStep) (err error) {
	defer func() {
		if r := recover(); r != nil {
			var ie *InvariantError
			if e, ok := r.(error); ok && errors.As(e, &ie) {
				err = ie
				return
			}
			panic(r)
		}
	}()

	id := TouchID(st.ID)
	p := Vec2{X: st.X, Y: st.Y}
	switch st.Action {
	case "down":
		s.TouchDown(id, p)
	case "move":
		s.TouchMove(id, p)
	case "up":
		s.TouchUp(id, p)
	case "cancel":
		s.TouchCancel(id, p)
	case "allow":
		s.EventProcessed(DefaultAllowed)
	case "prevent":
		s.EventProcessed(DefaultPrevented)
	case "vsync":
		frames := st.Frames
		if frames < 1 {
			frames = 1
		}
		for range frames {
			s.Update(FrameDuration)
		}
	case "settle":
		for n := 0; s.State().Kind == StateFlinging; n++ {
			if n >= maxSettleFrames {
				return errors.New("fling did not settle")
			}
			s.Update(FrameDuration)
		}
	case "swipe":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		s.TouchDown(id, p)
		steps := frames - 2
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps+1)
			s.TouchMove(id, Vec2{X: st.X + (st.ToX-st.X)*t, Y: st.Y + (st.ToY-st.Y)*t})
		}
		s.TouchUp(id, Vec2{X: st.ToX, Y: st.ToY})
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}
