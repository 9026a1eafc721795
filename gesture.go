package gesture

import (
	"fmt"
	"math"
)

// Vec2 is a 2D vector in device pixels, used for touch positions and deltas.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Lerp returns the point a fraction t of the way from v to o.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// IntPoint is a point rounded to whole device pixels.
type IntPoint struct {
	X, Y int
}

// roundPoint rounds p to the nearest device pixel.
func roundPoint(p Vec2) IntPoint {
	return IntPoint{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// TouchID identifies a finger for the duration of one down..up/cancel sequence.
// Values are assigned by the input source and may be reused after release.
type TouchID int

// TouchPoint is a currently pressed finger and its last committed position.
type TouchPoint struct {
	ID    TouchID
	Point Vec2
}

// EventResult is the script engine's verdict on a dispatched touch sequence.
type EventResult uint8

const (
	DefaultAllowed   EventResult = iota // script did not call preventDefault
	DefaultPrevented                    // script consumed the sequence
)

func (r EventResult) String() string {
	switch r {
	case DefaultAllowed:
		return "DefaultAllowed"
	case DefaultPrevented:
		return "DefaultPrevented"
	default:
		return fmt.Sprintf("EventResult(%d)", uint8(r))
	}
}

// StateKind identifies which TouchState variant is active.
type StateKind uint8

const (
	StateNothing          StateKind = iota // not tracking any touch point
	StateWaitingForScript                  // touchstart dispatched, verdict pending
	StateDefaultPrevented                  // script owns the sequence
	StateTouching                          // one finger down, not yet panning
	StatePanning                           // one finger down and scrolling
	StateFlinging                          // no fingers, inertial scroll continues
	StatePinching                          // two fingers, zoom gesture
	StateMultiTouch                        // three or more fingers, ignored
)

func (k StateKind) String() string {
	switch k {
	case StateNothing:
		return "Nothing"
	case StateWaitingForScript:
		return "WaitingForScript"
	case StateDefaultPrevented:
		return "DefaultPrevented"
	case StateTouching:
		return "Touching"
	case StatePanning:
		return "Panning"
	case StateFlinging:
		return "Flinging"
	case StatePinching:
		return "Pinching"
	case StateMultiTouch:
		return "MultiTouch"
	default:
		return fmt.Sprintf("StateKind(%d)", uint8(k))
	}
}

// TouchState is the recognizer's current classification. YVelocity is valid
// for StatePanning and StateFlinging; Cursor only for StateFlinging.
type TouchState struct {
	Kind      StateKind
	YVelocity float64
	Cursor    IntPoint
}

func (s TouchState) String() string {
	switch s.Kind {
	case StatePanning:
		return fmt.Sprintf("Panning{y_velocity: %g}", s.YVelocity)
	case StateFlinging:
		return fmt.Sprintf("Flinging{y_velocity: %g, cursor: (%d, %d)}", s.YVelocity, s.Cursor.X, s.Cursor.Y)
	default:
		return s.Kind.String()
	}
}

// ActionKind identifies which TouchAction variant was produced.
type ActionKind uint8

const (
	ActionNone          ActionKind = iota // don't do anything
	ActionClick                           // simulate a mouse click
	ActionScroll                          // scroll by Delta
	ActionZoom                            // zoom by Magnification, then scroll by Delta
	ActionDispatchEvent                   // forward the raw event to script
)

func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "NoAction"
	case ActionClick:
		return "Click"
	case ActionScroll:
		return "Scroll"
	case ActionZoom:
		return "Zoom"
	case ActionDispatchEvent:
		return "DispatchEvent"
	default:
		return fmt.Sprintf("ActionKind(%d)", uint8(k))
	}
}

// TouchAction is what the compositor should do in response to a touch event.
type TouchAction struct {
	Kind          ActionKind
	Delta         Vec2
	Magnification float64
}

// Action constructors.
var (
	NoAction      = TouchAction{Kind: ActionNone}
	Click         = TouchAction{Kind: ActionClick}
	DispatchEvent = TouchAction{Kind: ActionDispatchEvent}
)

// Scroll returns a scroll action by delta.
func Scroll(delta Vec2) TouchAction {
	return TouchAction{Kind: ActionScroll, Delta: delta}
}

// Zoom returns a zoom action with the given magnification and scroll offset.
func Zoom(magnification float64, delta Vec2) TouchAction {
	return TouchAction{Kind: ActionZoom, Magnification: magnification, Delta: delta}
}

func (a TouchAction) String() string {
	switch a.Kind {
	case ActionScroll:
		return fmt.Sprintf("Scroll(%g, %g)", a.Delta.X, a.Delta.Y)
	case ActionZoom:
		return fmt.Sprintf("Zoom(%g, (%g, %g))", a.Magnification, a.Delta.X, a.Delta.Y)
	default:
		return a.Kind.String()
	}
}

// FlingAction is one frame of inertial scrolling.
type FlingAction struct {
	Delta  Vec2
	Cursor IntPoint
}

// TouchEventType identifies a raw touch event forwarded to script.
type TouchEventType uint8

const (
	TouchDown TouchEventType = iota
	TouchMove
	TouchUp
	TouchCancel
)

func (t TouchEventType) String() string {
	switch t {
	case TouchDown:
		return "down"
	case TouchMove:
		return "move"
	case TouchUp:
		return "up"
	case TouchCancel:
		return "cancel"
	default:
		return fmt.Sprintf("TouchEventType(%d)", uint8(t))
	}
}

// TouchEvent is a raw touch event as delivered to the script engine.
type TouchEvent struct {
	Type  TouchEventType
	ID    TouchID
	Point Vec2
}

// EventType identifies a kind of gesture event emitted by a Surface.
type EventType uint8

const (
	EventClick    EventType = iota // tap with no significant movement
	EventScroll                    // single-finger pan
	EventZoom                      // two-finger pinch
	EventFling                     // one frame of inertial scroll
	EventDispatch                  // raw move forwarded to script
)

func (e EventType) String() string {
	switch e {
	case EventClick:
		return "click"
	case EventScroll:
		return "scroll"
	case EventZoom:
		return "zoom"
	case EventFling:
		return "fling"
	case EventDispatch:
		return "dispatch"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(e))
	}
}
