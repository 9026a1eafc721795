package ecs

import (
	"testing"

	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []gesture.GestureEvent
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.GestureEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(gesture.GestureEvent{
		Type:    gesture.EventClick,
		TouchID: 42,
		Point:   gesture.Vec2{X: 100, Y: 200},
	})
	sink.EmitEvent(gesture.GestureEvent{
		Type:          gesture.EventZoom,
		Magnification: 2.0,
		Delta:         gesture.Vec2{X: -10, Y: -5},
	})

	// Events are queued; process them.
	GestureEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != gesture.EventClick || e0.TouchID != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Point != (gesture.Vec2{X: 100, Y: 200}) {
		t.Errorf("event 0 position: %v", e0.Point)
	}
	e1 := received[1]
	if e1.Type != gesture.EventZoom || e1.Magnification != 2.0 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_FromSurface(t *testing.T) {
	world := donburi.NewWorld()
	s := gesture.NewSurface(gesture.SurfaceConfig{Sink: NewDonburiSink(world)})

	var types []gesture.EventType
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.GestureEvent) {
		types = append(types, e.Type)
	})

	s.TouchDown(1, gesture.Vec2{X: 0, Y: 0})
	s.EventProcessed(gesture.DefaultAllowed)
	s.TouchMove(1, gesture.Vec2{X: 0, Y: 50})
	s.TouchUp(1, gesture.Vec2{X: 0, Y: 50})
	s.Update(gesture.FrameDuration)
	s.Update(gesture.FrameDuration)

	if len(types) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %v", types)
	}
	events.ProcessAllEvents(world)

	want := []gesture.EventType{gesture.EventScroll, gesture.EventFling, gesture.EventFling}
	if len(types) != len(want) {
		t.Fatalf("types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("types[%d] = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.GestureEvent) {
		count1++
	})
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.GestureEvent) {
		count2++
	})

	sink.EmitEvent(gesture.GestureEvent{Type: gesture.EventClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestSubscribeKind(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var flings []float64
	SubscribeKind(world, gesture.EventFling, func(w donburi.World, e gesture.GestureEvent) {
		flings = append(flings, e.Delta.Y)
	})

	sink.EmitEvent(gesture.GestureEvent{Type: gesture.EventScroll, Delta: gesture.Vec2{Y: 5}})
	sink.EmitEvent(gesture.GestureEvent{Type: gesture.EventFling, Delta: gesture.Vec2{Y: 60}})
	sink.EmitEvent(gesture.GestureEvent{Type: gesture.EventClick})
	sink.EmitEvent(gesture.GestureEvent{Type: gesture.EventFling, Delta: gesture.Vec2{Y: 57}})
	GestureEventType.ProcessEvents(world)

	if len(flings) != 2 || flings[0] != 60 || flings[1] != 57 {
		t.Errorf("flings = %v, want [60 57]", flings)
	}
}
