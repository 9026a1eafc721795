package gesture

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for the viewport offset.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Viewport applies gesture actions to a scrollable, zoomable view of content.
// Content maps to the screen as screen = Zoom*content + Offset, all in
// device pixels.
type Viewport struct {
	// Offset is the screen position of the content origin.
	Offset Vec2
	// Zoom is the content scale factor (1.0 = no zoom).
	Zoom float64

	// MinZoom and MaxZoom limit pinch zoom. Zero disables the limit.
	MinZoom, MaxZoom float64

	scrollTween *scrollAnim
}

// NewViewport creates a viewport at the origin with no zoom.
func NewViewport() *Viewport {
	return &Viewport{Zoom: 1}
}

// ScrollBy moves the content by delta. It cancels any running ScrollTo.
func (v *Viewport) ScrollBy(delta Vec2) {
	v.scrollTween = nil
	v.Offset = v.Offset.Add(delta)
}

// ZoomBy scales the view by magnification and then scrolls by delta, so the
// screen point c0 maps to magnification*c0 + delta. For a pinch this keeps the
// content under the fingers. When a zoom limit is hit the magnification is
// reduced around the same fixed point. It cancels any running ScrollTo.
func (v *Viewport) ZoomBy(magnification float64, delta Vec2) {
	v.scrollTween = nil
	if magnification <= 0 {
		return
	}
	m := magnification
	if m != 1 {
		m = v.clampMagnification(magnification)
		if m != magnification {
			// Fixed point of s -> magnification*s + delta.
			f := delta.Scale(1 / (1 - magnification))
			delta = f.Scale(1 - m)
		}
	}
	v.Zoom *= m
	v.Offset = v.Offset.Scale(m).Add(delta)
}

func (v *Viewport) clampMagnification(m float64) float64 {
	next := v.Zoom * m
	if v.MaxZoom > 0 && next > v.MaxZoom {
		return v.MaxZoom / v.Zoom
	}
	if v.MinZoom > 0 && next < v.MinZoom {
		return v.MinZoom / v.Zoom
	}
	return m
}

// ScrollTo animates the offset to the given position over duration seconds.
func (v *Viewport) ScrollTo(offset Vec2, duration float32, easeFn ease.TweenFunc) {
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.Offset.X), float32(offset.X), duration, easeFn),
		tweenY: gween.New(float32(v.Offset.Y), float32(offset.Y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is running.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// ContentToScreen converts a content position to screen coordinates.
func (v *Viewport) ContentToScreen(p Vec2) Vec2 {
	return p.Scale(v.Zoom).Add(v.Offset)
}

// ScreenToContent converts a screen position to content coordinates.
func (v *Viewport) ScreenToContent(p Vec2) Vec2 {
	return p.Sub(v.Offset).Scale(1 / v.Zoom)
}

// update advances the scroll animation. Called from Surface.Update.
func (v *Viewport) update(dt float32) {
	a := v.scrollTween
	if a == nil {
		return
	}
	if !a.doneX {
		val, done := a.tweenX.Update(dt)
		v.Offset.X = float64(val)
		a.doneX = done
	}
	if !a.doneY {
		val, done := a.tweenY.Update(dt)
		v.Offset.Y = float64(val)
		a.doneY = done
	}
	if a.doneX && a.doneY {
		v.scrollTween = nil
	}
}
