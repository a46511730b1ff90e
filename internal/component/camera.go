package component

import "github.com/go-gl/mathgl/mgl32"

type ProjectionKind uint8

const (
	Perspective ProjectionKind = iota
	Orthographic
)

// Camera is owned by a viewport rather than pooled. View and Proj are valid
// only while their flags are clear; the setters raise the flags.
type Camera struct {
	Active bool

	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Target   mgl32.Vec3

	Kind   ProjectionKind
	FovY   float32 // radians
	Aspect float32
	Near   float32
	Far    float32

	Left, Right, Bottom, Top float32

	View mgl32.Mat4
	Proj mgl32.Mat4

	ViewNeedsUpdate       bool
	ProjectionNeedsUpdate bool
}

func NewPerspectiveCamera(position, front, up mgl32.Vec3, fovY, aspect, near, far float32) *Camera {
	return &Camera{
		Active:                true,
		Position:              position,
		Front:                 front,
		Up:                    up,
		Kind:                  Perspective,
		FovY:                  fovY,
		Aspect:                aspect,
		Near:                  near,
		Far:                   far,
		View:                  mgl32.Ident4(),
		Proj:                  mgl32.Ident4(),
		ViewNeedsUpdate:       true,
		ProjectionNeedsUpdate: true,
	}
}

func NewOrthographicCamera(left, right, bottom, top, near, far float32) *Camera {
	return &Camera{
		Active:                true,
		Front:                 mgl32.Vec3{0, 0, -1},
		Up:                    mgl32.Vec3{0, 1, 0},
		Kind:                  Orthographic,
		Left:                  left,
		Right:                 right,
		Bottom:                bottom,
		Top:                   top,
		Near:                  near,
		Far:                   far,
		View:                  mgl32.Ident4(),
		Proj:                  mgl32.Ident4(),
		ViewNeedsUpdate:       true,
		ProjectionNeedsUpdate: true,
	}
}

func (c *Camera) SetPosition(p mgl32.Vec3) {
	c.Position = p
	c.ViewNeedsUpdate = true
}

func (c *Camera) SetFront(f mgl32.Vec3) {
	c.Front = f
	c.ViewNeedsUpdate = true
}

func (c *Camera) SetUp(u mgl32.Vec3) {
	c.Up = u
	c.ViewNeedsUpdate = true
}

func (c *Camera) SetAspect(aspect float32) {
	c.Aspect = aspect
	c.ProjectionNeedsUpdate = true
}

func (c *Camera) SetBounds(left, right, bottom, top float32) {
	c.Left, c.Right, c.Bottom, c.Top = left, right, bottom, top
	c.ProjectionNeedsUpdate = true
}

// UpdateView recomputes the look-at matrix and clears the flag.
func (c *Camera) UpdateView() {
	c.Target = c.Position.Add(c.Front)
	c.View = mgl32.LookAtV(c.Position, c.Target, c.Up)
	c.ViewNeedsUpdate = false
}

// UpdateProjection recomputes the projection matrix and clears the flag.
func (c *Camera) UpdateProjection() {
	switch c.Kind {
	case Orthographic:
		c.Proj = mgl32.Ortho(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
	default:
		c.Proj = mgl32.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
	}
	c.ProjectionNeedsUpdate = false
}
