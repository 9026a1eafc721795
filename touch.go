package gesture

import (
	"log/slog"
	"math"
)

// Tuning constants. These are fixed, not runtime configuration.
const (
	// touchPanMinScreenPx is the movement, in device-independent pixels on
	// either axis, needed before a touch becomes a pan.
	touchPanMinScreenPx = 20.0
	flingScalingFactor  = 0.95
	flingMinimum        = 3.0
	flingMax            = 4000.0
)

// TouchHandler is the touch input state machine for one gesture surface.
//
// It is a plain state container. Calls must be serialized by the owner;
// see [Surface] for an owner that does so.
type TouchHandler struct {
	state  TouchState
	points []TouchPoint

	logger      *slog.Logger
	panMinPx    float64 // pan threshold in device pixels
	deviceScale float64
}

// NewTouchHandler creates a handler in the Nothing state.
func NewTouchHandler(opts ...Option) *TouchHandler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &TouchHandler{
		state:       TouchState{Kind: StateNothing},
		logger:      o.logger,
		deviceScale: o.deviceScale,
		panMinPx:    touchPanMinScreenPx * o.deviceScale,
	}
}

// State returns the current classification.
func (h *TouchHandler) State() TouchState {
	return h.state
}

// TouchCount returns the number of active touch points.
func (h *TouchHandler) TouchCount() int {
	return len(h.points)
}

// ActivePoints returns a copy of the active touch set. Order is not stable
// across removals.
func (h *TouchHandler) ActivePoints() []TouchPoint {
	out := make([]TouchPoint, len(h.points))
	copy(out, h.points)
	return out
}

// DeviceScale returns the device pixels per device-independent pixel this
// handler was created with.
func (h *TouchHandler) DeviceScale() float64 {
	return h.deviceScale
}

func (h *TouchHandler) log() *slog.Logger {
	if h.logger != nil {
		return h.logger
	}
	return Logger()
}

func (h *TouchHandler) setState(next TouchState) {
	if next.Kind != h.state.Kind {
		h.log().Debug("touch state transition", "from", h.state.Kind, "to", next.Kind)
	}
	h.state = next
}

// indexOf returns the position of id in the active set, or -1.
func (h *TouchHandler) indexOf(id TouchID) int {
	for i := range h.points {
		if h.points[i].ID == id {
			return i
		}
	}
	return -1
}

// removeAt swap-removes the point at i. The last point takes its slot.
func (h *TouchHandler) removeAt(i int) {
	last := len(h.points) - 1
	h.points[i] = h.points[last]
	h.points[last] = TouchPoint{}
	h.points = h.points[:last]
}

// OnTouchDown records a new finger.
func (h *TouchHandler) OnTouchDown(id TouchID, point Vec2) {
	h.points = append(h.points, TouchPoint{ID: id, Point: point})

	switch h.state.Kind {
	case StateNothing:
		h.setState(TouchState{Kind: StateWaitingForScript})
	case StateFlinging:
		h.setState(TouchState{Kind: StateTouching})
	case StateTouching, StatePanning:
		h.setState(TouchState{Kind: StatePinching})
	case StateWaitingForScript, StateDefaultPrevented:
		// Still waiting, or still suppressed.
	case StatePinching, StateMultiTouch:
		h.setState(TouchState{Kind: StateMultiTouch})
	default:
		invariantf("touch down", h.state.Kind, "unknown state")
	}
}

// OnTouchMove updates a finger position and returns the resulting action.
// A move for an inactive id is logged and ignored.
func (h *TouchHandler) OnTouchMove(id TouchID, point Vec2) TouchAction {
	if h.state.Kind == StateFlinging {
		invariantf("touch move", h.state.Kind, "no finger drives a fling")
	}
	idx := h.indexOf(id)
	if idx < 0 {
		h.log().Warn("touch move for non-active touch point", "id", id)
		return NoAction
	}
	old := h.points[idx].Point

	var action TouchAction
	switch h.state.Kind {
	case StateTouching:
		delta := point.Sub(old)
		if math.Abs(delta.X) > h.panMinPx || math.Abs(delta.Y) > h.panMinPx {
			h.setState(TouchState{Kind: StatePanning, YVelocity: delta.Y})
			action = Scroll(delta)
		} else {
			action = NoAction
		}
	case StatePanning:
		delta := point.Sub(old)
		h.state.YVelocity = (delta.Y + h.state.YVelocity) / 2
		action = Scroll(delta)
	case StateDefaultPrevented:
		action = DispatchEvent
	case StatePinching:
		d0, c0 := h.pinchDistanceAndCenter()
		h.points[idx].Point = point
		d1, c1 := h.pinchDistanceAndCenter()

		magnification := 1.0
		if d0 > 0 {
			magnification = d1 / d0
		}
		action = Zoom(magnification, c1.Sub(c0.Scale(magnification)))
	case StateWaitingForScript, StateMultiTouch:
		action = NoAction
	case StateNothing:
		invariantf("touch move", h.state.Kind, "move without preceding down")
	default:
		invariantf("touch move", h.state.Kind, "unknown state")
	}

	// While still deciding between click and pan, keep the original location
	// so the pan delta is measured from the gesture start.
	if h.state.Kind != StateTouching && h.state.Kind != StateWaitingForScript {
		h.points[idx].Point = point
	}
	return action
}

// OnTouchUp releases a finger and returns the resulting action. An unknown
// id is logged and leaves the state untouched.
func (h *TouchHandler) OnTouchUp(id TouchID, point Vec2) TouchAction {
	if h.state.Kind == StateFlinging {
		invariantf("touch up", h.state.Kind, "no finger drives a fling")
	}
	idx := h.indexOf(id)
	if idx < 0 {
		h.log().Warn("touch up for non-active touch point", "id", id)
		return NoAction
	}
	h.removeAt(idx)

	switch h.state.Kind {
	case StateTouching:
		h.setState(TouchState{Kind: StateNothing})
		return Click
	case StateNothing:
		return NoAction
	case StatePanning:
		v := h.state.YVelocity
		if math.Abs(v) >= flingMinimum {
			cursor := roundPoint(point)
			v = math.Max(-flingMax, math.Min(flingMax, v))
			h.log().Info("touch fling start", "cursor_x", cursor.X, "cursor_y", cursor.Y,
				"raw_velocity", h.state.YVelocity, "velocity", v)
			h.setState(TouchState{Kind: StateFlinging, YVelocity: v, Cursor: cursor})
		} else {
			h.setState(TouchState{Kind: StateNothing})
		}
		return NoAction
	case StatePinching:
		h.setState(TouchState{Kind: StatePanning, YVelocity: 0})
		return NoAction
	case StateWaitingForScript, StateDefaultPrevented, StateMultiTouch:
		if len(h.points) == 0 {
			h.setState(TouchState{Kind: StateNothing})
		}
		return NoAction
	default:
		invariantf("touch up", h.state.Kind, "unknown state")
	}
	return NoAction
}

// OnTouchCancel drops a finger without producing an action. An unknown id is
// logged and leaves the state untouched.
func (h *TouchHandler) OnTouchCancel(id TouchID, _ Vec2) {
	idx := h.indexOf(id)
	if idx < 0 {
		h.log().Warn("touch cancel for non-active touch point", "id", id)
		return
	}
	h.removeAt(idx)

	switch h.state.Kind {
	case StateNothing:
	case StateTouching, StatePanning, StateFlinging:
		h.setState(TouchState{Kind: StateNothing})
	case StatePinching:
		h.setState(TouchState{Kind: StatePanning, YVelocity: 0})
	case StateWaitingForScript, StateDefaultPrevented, StateMultiTouch:
		if len(h.points) == 0 {
			h.setState(TouchState{Kind: StateNothing})
		}
	default:
		invariantf("touch cancel", h.state.Kind, "unknown state")
	}
}

// OnEventProcessed resolves a pending script verdict. It has no effect
// unless the handler is WaitingForScript.
func (h *TouchHandler) OnEventProcessed(result EventResult) {
	if h.state.Kind != StateWaitingForScript {
		return
	}
	switch result {
	case DefaultPrevented:
		h.setState(TouchState{Kind: StateDefaultPrevented})
	case DefaultAllowed:
		switch len(h.points) {
		case 1:
			h.setState(TouchState{Kind: StateTouching})
		case 2:
			h.setState(TouchState{Kind: StatePinching})
		default:
			h.setState(TouchState{Kind: StateMultiTouch})
		}
	}
}

// OnVsync advances a fling by one frame. It reports false when the handler
// is not flinging or the fling has just decayed to a stop.
func (h *TouchHandler) OnVsync() (FlingAction, bool) {
	if h.state.Kind != StateFlinging {
		h.log().Debug("vsync: not flinging")
		return FlingAction{}, false
	}
	v := h.state.YVelocity
	if math.Abs(v) < flingMinimum {
		h.setState(TouchState{Kind: StateNothing})
		h.log().Info("touch fling end")
		return FlingAction{}, false
	}
	h.state.YVelocity = v * flingScalingFactor
	h.log().Debug("vsync: fling", "velocity", v)
	return FlingAction{Delta: Vec2{X: 0, Y: v}, Cursor: h.state.Cursor}, true
}

func (h *TouchHandler) pinchDistanceAndCenter() (float64, Vec2) {
	if len(h.points) != 2 {
		invariantf("pinch", h.state.Kind, "need exactly 2 touch points, have %d", len(h.points))
	}
	p0 := h.points[0].Point
	p1 := h.points[1].Point
	return p0.Sub(p1).Len(), p0.Lerp(p1, 0.5)
}
