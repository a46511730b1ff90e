// Package coords converts between the three screen spaces used by the UI.
//
// Window-pixel space has its origin at the top-left corner with y growing
// downward. UI-logical space is centred on the viewport with y growing
// upward. Normalized space spans -1..1 on both axes and is only used as an
// intermediate.
//
// The x axis of the two conversions is not symmetric: WindowToUI negates the
// normalized x, while UIToWindow takes the absolute value of the logical x.
// The pair round-trips exactly on the left half of the viewport and mirrors
// positions on the right half. This is pinned by tests until the intended
// convention is settled.
package coords

import "github.com/go-gl/mathgl/mgl32"

// Viewport is the size of the UI viewport in pixels.
type Viewport struct {
	Width, Height float32
}

func (v Viewport) Half() mgl32.Vec2 {
	return mgl32.Vec2{v.Width / 2, v.Height / 2}
}

// Valid reports whether both extents are positive.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Normalize maps a window pixel to -1..1 with y pointing up.
func Normalize(v Viewport, p mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		2*p[0]/v.Width - 1,
		1 - 2*p[1]/v.Height,
	}
}

// WindowToUI maps a window pixel to UI-logical space.
func WindowToUI(v Viewport, p mgl32.Vec2) mgl32.Vec2 {
	n := Normalize(v, p)
	h := v.Half()
	return mgl32.Vec2{-n[0] * h[0], n[1] * h[1]}
}

// UIToWindow maps a UI-logical position to a window pixel.
func UIToWindow(v Viewport, u mgl32.Vec2) mgl32.Vec2 {
	h := v.Half()
	return mgl32.Vec2{h[0] - abs(u[0]), h[1] - u[1]}
}

// Rescale scales a UI-logical position proportionally from one viewport to another.
func Rescale(from, to Viewport, u mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{u[0] * to.Width / from.Width, u[1] * to.Height / from.Height}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
