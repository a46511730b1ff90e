package component

import "github.com/scenert/scenert/internal/core/ecs"

// Rect is a window-pixel rectangle with a top-left origin.
type Rect struct {
	X, Y, W, H float32
}

func (r Rect) Right() float32  { return r.X + r.W }
func (r Rect) Bottom() float32 { return r.Y + r.H }

// Contains reports whether the pixel (x, y) lies inside r. The right and
// bottom edges are exclusive.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Scale multiplies position and extent by sx, sy.
func (r Rect) Scale(sx, sy float32) Rect {
	return Rect{X: r.X * sx, Y: r.Y * sy, W: r.W * sx, H: r.H * sy}
}

// UI is a screen-space element. Box is authoritative; the layout system
// derives the entity's transform from it whenever the element is flagged.
type UI struct {
	Box        Rect
	Depth      float32
	Text       *TextBuffer // nil when the element does not hold text
	LineHeight float32

	Hovered bool
	Clicked bool

	BoxVisual ecs.EntityID // bounding-box visualisation, or ecs.None
	Parent    ecs.EntityID
	Children  []ecs.EntityID

	Action ClickAction
	Base   Material // restored when the pointer leaves
}

func NewUI(box Rect, base Material) UI {
	return UI{
		Box:       box,
		BoxVisual: ecs.None,
		Parent:    ecs.None,
		Base:      base,
	}
}

func (u *UI) TextCapable() bool { return u.Text != nil }

func (u *UI) Release() {
	if u.Text != nil {
		u.Text.Release()
		u.Text = nil
	}
	u.Children = nil
}

// ClickAction is what clicking a UI element raises.
type ClickAction interface {
	clickAction()
}

// ToggleSiblings flips visibility of the other children of the element's parent.
type ToggleSiblings struct{}

// Notify raises a named click event for application handlers.
type Notify struct {
	Name string
}

// FocusText focuses the element's text field.
type FocusText struct{}

func (ToggleSiblings) clickAction() {}
func (Notify) clickAction()         {}
func (FocusText) clickAction()      {}
