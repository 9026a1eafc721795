// Package ecs provides ECS adapters for gesture surfaces.
//
// [NewDonburiSink] bridges gesture events (click, scroll, zoom, fling,
// dispatch) into a [Donburi] world as typed events. Subscribe to
// [GestureEventType] in your ECS systems to receive them.
//
// Usage:
//
//	surface := gesture.NewSurface(gesture.SurfaceConfig{
//		Sink: ecs.NewDonburiSink(world),
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
