// Package gesture recognizes touch gestures for a scrollable, zoomable
// surface running on [Ebitengine].
//
// A [TouchHandler] is a finite-state machine fed touch down, move, up and
// cancel events. It classifies each sequence as a tap, a pan, a fling or a
// two-finger pinch and answers with a [TouchAction] for the compositor to
// apply. Before any gesture is recognized the page script gets to see the
// touch and may prevent default handling; the handler waits for that
// verdict in [StateWaitingForScript] and receives it through
// [TouchHandler.OnEventProcessed].
//
// # Quick start
//
// Most programs use a [Surface], which owns a handler and a [Viewport] and
// applies actions for you. The handler works in device pixels, so give the
// surface and the touch source the same scale:
//
//	scale := ebiten.Monitor().DeviceScaleFactor()
//	surface := gesture.NewSurface(gesture.SurfaceConfig{
//		DeviceScale: scale,
//		Script:      page,
//		Sink:        sink,
//	})
//	source := gesture.NewTouchSource(nil)
//	source.Scale = scale
//
//	func (g *Game) Update() error {
//		source.Poll(surface)
//		surface.Update(1.0 / 60)
//		return nil
//	}
//
// # Flinging
//
// Releasing a pan with enough vertical velocity starts a fling. Each
// [TouchHandler.OnVsync] yields one scroll step and decays the velocity
// until it drops below the minimum.
//
// # Scripts
//
// [LoadScript] and [LoadScriptYAML] parse recorded touch sequences that
// [Script.Replay] feeds to a Surface. The gesturereplay command wraps this
// for the command line.
//
// # Logging
//
// The package is silent by default. Pass a *slog.Logger to [SetLogger] or
// [WithLogger] to see state transitions at debug level and fling
// start/end at info level.
//
// [Ebitengine]: https://ebitengine.org
package gesture
