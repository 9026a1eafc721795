package gesture

import (
	"log/slog"
	"sync"

	"github.com/tanema/gween/ease"
)

// ScriptDispatcher delivers raw touch events to the document's script engine.
// The verdict for a touch sequence arrives later through
// [Surface.EventProcessed]; DispatchTouch must not wait for it.
type ScriptDispatcher interface {
	DispatchTouch(event TouchEvent)
}

// EventSink receives the gesture events a Surface produces.
type EventSink interface {
	EmitEvent(event GestureEvent)
}

// GestureEvent carries the result of one recognized gesture step.
type GestureEvent struct {
	Type    EventType
	TouchID TouchID
	// Point is the screen position of the triggering touch (Click, Dispatch).
	Point Vec2
	// Content is Point in content coordinates at the time of the event.
	Content Vec2
	// Delta is the scroll offset (Scroll, Zoom, Fling).
	Delta Vec2
	// Magnification is the zoom factor (Zoom only).
	Magnification float64
	// Cursor is the fling origin (Fling only).
	Cursor IntPoint
}

// SurfaceConfig holds optional Surface configuration.
type SurfaceConfig struct {
	// DeviceScale is device pixels per device-independent pixel. Zero means 1.
	DeviceScale float64
	// Script receives raw touch events. Nil drops them; the caller must then
	// resolve every sequence with EventProcessed itself.
	Script ScriptDispatcher
	// Sink receives gesture events. Nil drops them.
	Sink EventSink
	// Logger overrides the package logger for this surface.
	Logger *slog.Logger
	// MinZoom and MaxZoom limit pinch zoom. Zero disables the limit.
	MinZoom, MaxZoom float64
}

// Surface is the compositor-side owner of a TouchHandler. It serializes
// input events and frame ticks with a mutex, applies the resulting actions
// to its Viewport, and reports them to the script engine and event sink.
//
// Script and sink callbacks run after the lock is released, so a dispatcher
// may call EventProcessed synchronously.
type Surface struct {
	mu       sync.Mutex
	handler  *TouchHandler
	viewport *Viewport
	script   ScriptDispatcher
	sink     EventSink

	// outgoing buffers, delivered once the lock is released
	pendingScript []TouchEvent
	pendingEvents []GestureEvent
}

// NewSurface creates a surface with a fresh handler and viewport.
func NewSurface(cfg SurfaceConfig) *Surface {
	var opts []Option
	if cfg.DeviceScale > 0 {
		opts = append(opts, WithDeviceScale(cfg.DeviceScale))
	}
	if cfg.Logger != nil {
		opts = append(opts, WithLogger(cfg.Logger))
	}
	vp := NewViewport()
	vp.MinZoom, vp.MaxZoom = cfg.MinZoom, cfg.MaxZoom
	return &Surface{
		handler:  NewTouchHandler(opts...),
		viewport: vp,
		script:   cfg.Script,
		sink:     cfg.Sink,
	}
}

// TouchDown handles a finger press and forwards it to script.
func (s *Surface) TouchDown(id TouchID, point Vec2) {
	s.run(func() {
		s.handler.OnTouchDown(id, point)
		s.queueScript(TouchDown, id, point)
	})
}

// TouchMove handles a finger move, scrolling or zooming the viewport or
// forwarding the move to script as the gesture requires.
func (s *Surface) TouchMove(id TouchID, point Vec2) {
	s.run(func() {
		action := s.handler.OnTouchMove(id, point)
		switch action.Kind {
		case ActionScroll:
			s.viewport.ScrollBy(action.Delta)
			s.queueEvent(GestureEvent{Type: EventScroll, TouchID: id, Point: point, Delta: action.Delta})
		case ActionZoom:
			s.viewport.ZoomBy(action.Magnification, action.Delta)
			s.queueEvent(GestureEvent{Type: EventZoom, TouchID: id, Point: point,
				Delta: action.Delta, Magnification: action.Magnification})
		case ActionDispatchEvent:
			s.queueScript(TouchMove, id, point)
			s.queueEvent(GestureEvent{Type: EventDispatch, TouchID: id, Point: point})
		case ActionNone, ActionClick:
		}
	})
}

// TouchUp handles a finger release. A tap is reported as EventClick.
func (s *Surface) TouchUp(id TouchID, point Vec2) {
	s.run(func() {
		s.queueScript(TouchUp, id, point)
		if action := s.handler.OnTouchUp(id, point); action.Kind == ActionClick {
			s.queueEvent(GestureEvent{Type: EventClick, TouchID: id, Point: point,
				Content: s.viewport.ScreenToContent(point)})
		}
	})
}

// TouchCancel handles a cancelled touch and forwards it to script.
func (s *Surface) TouchCancel(id TouchID, point Vec2) {
	s.run(func() {
		s.handler.OnTouchCancel(id, point)
		s.queueScript(TouchCancel, id, point)
	})
}

// EventProcessed delivers the script verdict for the pending touch sequence.
func (s *Surface) EventProcessed(result EventResult) {
	s.run(func() {
		s.handler.OnEventProcessed(result)
	})
}

// Update runs one frame: advances any fling and viewport animation. dt is
// the frame duration in seconds.
func (s *Surface) Update(dt float32) {
	s.run(func() {
		if fa, ok := s.handler.OnVsync(); ok {
			s.viewport.ScrollBy(fa.Delta)
			s.queueEvent(GestureEvent{Type: EventFling, Delta: fa.Delta, Cursor: fa.Cursor})
		}
		s.viewport.update(dt)
	})
}

// ScrollTo animates the viewport offset; see [Viewport.ScrollTo].
func (s *Surface) ScrollTo(offset Vec2, duration float32, easeFn ease.TweenFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport.ScrollTo(offset, duration, easeFn)
}

// State returns the recognizer state.
func (s *Surface) State() TouchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handler.State()
}

// TouchCount returns the number of active touch points.
func (s *Surface) TouchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handler.TouchCount()
}

// Viewport returns a snapshot of the viewport.
func (s *Surface) Viewport() Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.viewport
}

func (s *Surface) queueScript(typ TouchEventType, id TouchID, point Vec2) {
	if s.script != nil {
		s.pendingScript = append(s.pendingScript, TouchEvent{Type: typ, ID: id, Point: point})
	}
}

func (s *Surface) queueEvent(e GestureEvent) {
	if s.sink != nil {
		s.pendingEvents = append(s.pendingEvents, e)
	}
}

// run calls fn with the lock held, then delivers the output fn buffered.
func (s *Surface) run(fn func()) {
	scripts, events := s.locked(fn)
	for _, e := range scripts {
		s.script.DispatchTouch(e)
	}
	for _, e := range events {
		s.sink.EmitEvent(e)
	}
}

func (s *Surface) locked(fn func()) ([]TouchEvent, []GestureEvent) {
	s.mu.Lock()
	defer func() {
		s.pendingScript, s.pendingEvents = nil, nil
		s.mu.Unlock()
	}()
	fn()
	return s.pendingScript, s.pendingEvents
}
