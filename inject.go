package gesture

// syntheticTouchEvent is a single injected touch event. Coordinates use the
// same units as the reader and are scaled like real input.
type syntheticTouchEvent struct {
	typ  TouchEventType
	id   TouchID
	x, y float64
}

func (s *TouchSource) inject(typ TouchEventType, id TouchID, x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticTouchEvent{typ: typ, id: id, x: x, y: y})
}

// InjectDown queues a press of finger id at (x, y). Queued events are
// consumed one per Poll.
func (s *TouchSource) InjectDown(id TouchID, x, y float64) { s.inject(TouchDown, id, x, y) }

// InjectMove queues a move of finger id to (x, y).
func (s *TouchSource) InjectMove(id TouchID, x, y float64) { s.inject(TouchMove, id, x, y) }

// InjectUp queues a release of finger id at (x, y).
func (s *TouchSource) InjectUp(id TouchID, x, y float64) { s.inject(TouchUp, id, x, y) }

// InjectCancel queues a cancellation of finger id.
func (s *TouchSource) InjectCancel(id TouchID, x, y float64) { s.inject(TouchCancel, id, x, y) }

// InjectTap queues a press followed by a release at the same point.
// Consumes two frames.
func (s *TouchSource) InjectTap(id TouchID, x, y float64) {
	s.InjectDown(id, x, y)
	s.InjectUp(id, x, y)
}

// InjectSwipe queues a press at (fromX, fromY), frames-2 linearly
// interpolated moves, and a release at (toX, toY). The sequence consumes
// frames frames; the minimum is 2.
func (s *TouchSource) InjectSwipe(id TouchID, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectDown(id, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(id, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectUp(id, toX, toY)
}

// InjectPinch queues a horizontal two-finger pinch centered on (cx, cy).
// The fingers start fromDist apart and end toDist apart after steps moves
// of each finger, then both lift.
func (s *TouchSource) InjectPinch(id0, id1 TouchID, cx, cy, fromDist, toDist float64, steps int) {
	s.InjectDown(id0, cx-fromDist/2, cy)
	s.InjectDown(id1, cx+fromDist/2, cy)
	d := fromDist
	for i := 1; i <= steps; i++ {
		d = fromDist + (toDist-fromDist)*float64(i)/float64(steps)
		s.InjectMove(id0, cx-d/2, cy)
		s.InjectMove(id1, cx+d/2, cy)
	}
	s.InjectUp(id0, cx-d/2, cy)
	s.InjectUp(id1, cx+d/2, cy)
}

// Pending returns the number of queued injected events.
func (s *TouchSource) Pending() int {
	return len(s.injectQueue)
}

// processInjected pops one injected event and forwards it to r. Returns
// true if an event was consumed.
func (s *TouchSource) processInjected(r TouchReceiver) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	p := s.toDevice(evt.x, evt.y)
	switch evt.typ {
	case TouchDown:
		r.TouchDown(evt.id, p)
	case TouchMove:
		r.TouchMove(evt.id, p)
	case TouchUp:
		r.TouchUp(evt.id, p)
	case TouchCancel:
		r.TouchCancel(evt.id, p)
	}
	return true
}
