package gesture

import "github.com/hajimehoshi/ebiten/v2"

// TouchReader reads the platform's current touches. The default reader is
// backed by ebiten; tests supply their own.
type TouchReader interface {
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (int, int)
}

type ebitenTouches struct{}

func (ebitenTouches) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (ebitenTouches) TouchPosition(id ebiten.TouchID) (int, int) {
	return ebiten.TouchPosition(id)
}

// TouchReceiver consumes discrete touch events. [Surface] implements it.
type TouchReceiver interface {
	TouchDown(id TouchID, point Vec2)
	TouchMove(id TouchID, point Vec2)
	TouchUp(id TouchID, point Vec2)
	TouchCancel(id TouchID, point Vec2)
}

type trackedTouch struct {
	id  ebiten.TouchID
	pos Vec2
}

// TouchSource turns per-frame touch polling into down/move/up events.
// Call Poll once per frame, from the game's Update.
type TouchSource struct {
	// Scale converts reader coordinates to device pixels. Ebiten reports
	// device-independent coordinates, so set this to the monitor's device
	// scale factor. Zero is treated as 1.
	Scale float64

	reader  TouchReader
	ids     []ebiten.TouchID
	current []trackedTouch
	tracked []trackedTouch

	injectQueue []syntheticTouchEvent
}

// NewTouchSource creates a source reading from reader, or from ebiten when
// reader is nil.
func NewTouchSource(reader TouchReader) *TouchSource {
	if reader == nil {
		reader = ebitenTouches{}
	}
	return &TouchSource{Scale: 1, reader: reader}
}

func (s *TouchSource) toDevice(x, y float64) Vec2 {
	scale := s.Scale
	if scale <= 0 {
		scale = 1
	}
	return Vec2{X: x * scale, Y: y * scale}
}

// Poll reads this frame's touches and forwards the changes to r. Releases
// are delivered before new presses. The platform reports no cancellation,
// so a vanished touch is always an up at its last position.
//
// While injected events are queued, one is delivered per Poll and real
// touches are not read.
func (s *TouchSource) Poll(r TouchReceiver) {
	if s.processInjected(r) {
		return
	}

	s.ids = s.reader.AppendTouchIDs(s.ids[:0])
	s.current = s.current[:0]
	for _, tid := range s.ids {
		x, y := s.reader.TouchPosition(tid)
		s.current = append(s.current, trackedTouch{id: tid, pos: s.toDevice(float64(x), float64(y))})
	}

	kept := s.tracked[:0]
	for _, t := range s.tracked {
		if findTouch(s.current, t.id) < 0 {
			r.TouchUp(TouchID(t.id), t.pos)
			continue
		}
		kept = append(kept, t)
	}
	s.tracked = kept

	for _, c := range s.current {
		i := findTouch(s.tracked, c.id)
		if i < 0 {
			s.tracked = append(s.tracked, c)
			r.TouchDown(TouchID(c.id), c.pos)
			continue
		}
		if s.tracked[i].pos != c.pos {
			s.tracked[i].pos = c.pos
			r.TouchMove(TouchID(c.id), c.pos)
		}
	}
}

// Active returns the number of platform touches seen by the last Poll.
func (s *TouchSource) Active() int {
	return len(s.tracked)
}

func findTouch(ts []trackedTouch, id ebiten.TouchID) int {
	for i := range ts {
		if ts[i].id == id {
			return i
		}
	}
	return -1
}
