package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/scenert/scenert/internal/component"
	"github.com/scenert/scenert/internal/coords"
	"github.com/scenert/scenert/internal/core/ecs"
)

var (
	ErrTooManyChildren = fmt.Errorf("too many children: %w", ecs.ErrPoolExhausted)
	ErrTooManyLights   = fmt.Errorf("too many lights: %w", ecs.ErrPoolExhausted)
)

// Options sizes the scene.
type Options struct {
	Capacity      int
	MaxChildren   int
	MaxLights     int
	TextMaxLength int
}

// State holds the entity pool, one store per component kind, the dirty
// sets and the viewport cameras. Accessed only from the frame loop
// goroutine, so no locks.
type State struct {
	ecs *ecs.World

	Transforms *ecs.Store[component.Transform]
	Groups     *ecs.Store[component.Group]
	Meshes     *ecs.Store[component.Mesh]
	Materials  *ecs.Store[component.Material]
	UIs        *ecs.Store[component.UI]
	Lights     *ecs.Store[component.Light]
	Lines      *ecs.Store[component.Line]
	Points     *ecs.Store[component.Point]
	Boxes      *ecs.Store[component.BoundingBox]

	// ModelDirty holds entities whose world matrix is stale.
	ModelDirty *ecs.DirtySet
	// LayoutDirty holds UI entities whose transform must be re-derived from their box.
	LayoutDirty *ecs.DirtySet

	Cameras []*component.Camera

	viewport coords.Viewport
	opts     Options
}

func NewState(opts Options, viewport coords.Viewport) *State {
	w := ecs.NewWorld(opts.Capacity)
	return &State{
		ecs:         w,
		Transforms:  ecs.AddStore[component.Transform](w),
		Groups:      ecs.AddStore[component.Group](w),
		Meshes:      ecs.AddStore[component.Mesh](w),
		Materials:   ecs.AddStore[component.Material](w),
		UIs:         ecs.AddStore[component.UI](w),
		Lights:      ecs.AddStore[component.Light](w),
		Lines:       ecs.AddStore[component.Line](w),
		Points:      ecs.AddStore[component.Point](w),
		Boxes:       ecs.AddStore[component.BoundingBox](w),
		ModelDirty:  ecs.AddDirtySet(w),
		LayoutDirty: ecs.AddDirtySet(w),
		viewport:    viewport,
		opts:        opts,
	}
}

func (s *State) Pool() *ecs.EntityPool       { return s.ecs.Pool() }
func (s *State) Viewport() coords.Viewport   { return s.viewport }
func (s *State) Alive(id ecs.EntityID) bool  { return s.ecs.Alive(id) }
func (s *State) Tag(id ecs.EntityID) ecs.Tag { return s.ecs.Pool().Tag(id) }

func (s *State) Visible(id ecs.EntityID) bool { return s.ecs.Pool().Visible(id) }

func (s *State) SetVisible(id ecs.EntityID, visible bool) {
	s.ecs.Pool().SetVisible(id, visible)
}

// CreateEntity allocates an empty entity.
func (s *State) CreateEntity(tag ecs.Tag) (ecs.EntityID, error) {
	id, err := s.ecs.CreateEntity(tag)
	if err != nil {
		return ecs.None, fmt.Errorf("create %s entity: %w", tag, err)
	}
	return id, nil
}

// DestroyEntity frees the entity, its bounding-box visualisation and its
// text buffer, and detaches it from its UI parent.
func (s *State) DestroyEntity(id ecs.EntityID) {
	if !s.Alive(id) {
		return
	}
	if ui, ok := s.UIs.Get(id); ok {
		if ui.BoxVisual.Valid() {
			s.DestroyEntity(ui.BoxVisual)
		}
		if parent, ok := s.UIs.Get(ui.Parent); ok {
			parent.Children = removeID(parent.Children, id)
		}
		for _, child := range ui.Children {
			if c, ok := s.UIs.Get(child); ok {
				c.Parent = ecs.None
			}
		}
	}
	s.ecs.DestroyEntity(id)
}

// SetPosition, SetRotation and SetScale are the transform mutators; each
// flags the entity's world matrix as stale.
func (s *State) SetPosition(id ecs.EntityID, p mgl32.Vec3) bool {
	t, ok := s.Transforms.Get(id)
	if !ok {
		return false
	}
	t.Position = p
	s.ModelDirty.Mark(id)
	return true
}

func (s *State) SetRotation(id ecs.EntityID, r mgl32.Vec3) bool {
	t, ok := s.Transforms.Get(id)
	if !ok {
		return false
	}
	t.Rotation = r
	s.ModelDirty.Mark(id)
	return true
}

func (s *State) SetScale(id ecs.EntityID, sc mgl32.Vec3) bool {
	t, ok := s.Transforms.Get(id)
	if !ok {
		return false
	}
	t.Scale = sc
	s.ModelDirty.Mark(id)
	return true
}

func (s *State) ModelNeedsUpdate(id ecs.EntityID) bool { return s.ModelDirty.Has(id) }
func (s *State) UINeedsUpdate(id ecs.EntityID) bool    { return s.LayoutDirty.Has(id) }

// MoveUI replaces a UI element's pixel box and flags it for layout.
func (s *State) MoveUI(id ecs.EntityID, box component.Rect) bool {
	ui, ok := s.UIs.Get(id)
	if !ok {
		return false
	}
	ui.Box = box
	s.LayoutDirty.Mark(id)
	return true
}

// PlaceRect sets a quad entity's transform from a window-pixel rectangle:
// position is the UI-logical top-left corner and scale is the pixel size.
func (s *State) PlaceRect(id ecs.EntityID, r component.Rect, depth float32) bool {
	t, ok := s.Transforms.Get(id)
	if !ok {
		return false
	}
	u := coords.WindowToUI(s.viewport, mgl32.Vec2{r.X, r.Y})
	pos := mgl32.Vec3{u[0], u[1], depth}
	scale := mgl32.Vec3{r.W, r.H, 1}
	if pos == t.Position && scale == t.Scale {
		return true
	}
	t.Position = pos
	t.Scale = scale
	s.ModelDirty.Mark(id)
	return true
}

// Resize switches to a new viewport. Every UI box is rescaled by the ratio
// of new to old extents, which rescales UI-logical positions by the same
// ratio, and cameras follow the new aspect.
func (s *State) Resize(v coords.Viewport) {
	if !v.Valid() || v == s.viewport {
		return
	}
	sx := v.Width / s.viewport.Width
	sy := v.Height / s.viewport.Height
	s.viewport = v
	s.UIs.Each(func(id ecs.EntityID, ui *component.UI) {
		ui.Box = ui.Box.Scale(sx, sy)
		s.LayoutDirty.Mark(id)
	})
	for _, c := range s.Cameras {
		switch c.Kind {
		case component.Orthographic:
			c.SetBounds(-v.Width/2, v.Width/2, -v.Height/2, v.Height/2)
		default:
			c.SetAspect(v.Width / v.Height)
		}
	}
}

// AddCamera attaches a viewport camera.
func (s *State) AddCamera(c *component.Camera) {
	s.Cameras = append(s.Cameras, c)
}

func removeID(ids []ecs.EntityID, id ecs.EntityID) []ecs.EntityID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
