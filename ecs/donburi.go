package ecs

import (
	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType carries every gesture event a surface emits: clicks,
// scroll and zoom steps, one event per fling frame, and moves forwarded to
// script.
var GestureEventType = events.NewEventType[gesture.GestureEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink returns an EventSink that queues gesture events on
// GestureEventType in world. Nothing reaches subscribers until a system
// calls GestureEventType.ProcessEvents (or events.ProcessAllEvents), so
// subscribers run inside the ECS update rather than inside input handling.
func NewDonburiSink(world donburi.World) gesture.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event gesture.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}

// SubscribeKind subscribes fn to gesture events of kind typ only.
func SubscribeKind(world donburi.World, typ gesture.EventType, fn func(donburi.World, gesture.GestureEvent)) {
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.GestureEvent) {
		if e.Type == typ {
			fn(w, e)
		}
	})
}
