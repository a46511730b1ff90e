package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/scenert/scenert/internal/component"
	"github.com/scenert/scenert/internal/core/ecs"
)

var boxVisualColor = mgl32.Vec4{0.2, 1, 0.2, 1}

// SpawnTextField creates an editable text element with its bounding-box
// visualisation. The visualisation starts hidden.
func (s *State) SpawnTextField(box component.Rect, text string, color mgl32.Vec4, lineHeight float32) (ecs.EntityID, error) {
	buf, err := component.NewTextBuffer(text, s.opts.TextMaxLength)
	if err != nil {
		return ecs.None, fmt.Errorf("spawn text field: %w", err)
	}
	id, err := s.spawnUI(ecs.TagText, box, color, component.FocusText{})
	if err != nil {
		return ecs.None, err
	}
	ui, _ := s.UIs.Get(id)
	ui.Text = buf
	ui.LineHeight = lineHeight
	return id, nil
}

// SpawnButton creates a clickable element raising action.
func (s *State) SpawnButton(box component.Rect, color mgl32.Vec4, action component.ClickAction) (ecs.EntityID, error) {
	return s.spawnUI(ecs.TagWidget, box, color, action)
}

func (s *State) spawnUI(tag ecs.Tag, box component.Rect, color mgl32.Vec4, action component.ClickAction) (ecs.EntityID, error) {
	id, err := s.CreateEntity(tag)
	if err != nil {
		return ecs.None, err
	}
	vis, err := s.CreateEntity(ecs.TagBoundingBox)
	if err != nil {
		s.DestroyEntity(id)
		return ecs.None, err
	}

	mat := component.NewMaterial(color)
	ui := component.NewUI(box, mat)
	ui.Action = action
	ui.BoxVisual = vis

	s.UIs.Set(id, ui)
	s.Transforms.Set(id, component.NewTransform(mgl32.Vec3{}))
	s.Boxes.Set(id, component.UnitBox())
	s.Meshes.Set(id, component.Mesh{Kind: component.MeshQuad})
	s.Materials.Set(id, mat)
	s.LayoutDirty.Mark(id)

	s.Transforms.Set(vis, component.NewTransform(mgl32.Vec3{}))
	s.Boxes.Set(vis, component.UnitBox())
	s.Lines.Set(vis, component.Line{To: mgl32.Vec3{1, 1, 0}, Color: boxVisualColor, Width: 1})
	s.Materials.Set(vis, component.NewMaterial(boxVisualColor))
	s.SetVisible(vis, false)
	return id, nil
}

// SpawnRect creates a minimal coloured quad, used for caret and selection visuals.
func (s *State) SpawnRect(tag ecs.Tag, r component.Rect, depth float32, color mgl32.Vec4) (ecs.EntityID, error) {
	id, err := s.CreateEntity(tag)
	if err != nil {
		return ecs.None, err
	}
	s.Transforms.Set(id, component.NewTransform(mgl32.Vec3{}))
	s.Meshes.Set(id, component.Mesh{Kind: component.MeshQuad})
	s.Materials.Set(id, component.NewMaterial(color))
	s.PlaceRect(id, r, depth)
	return id, nil
}

// SpawnModel creates a 3D entity with the given mesh and local bounds.
func (s *State) SpawnModel(mesh component.Mesh, position mgl32.Vec3, bounds component.BoundingBox, color mgl32.Vec4) (ecs.EntityID, error) {
	id, err := s.CreateEntity(ecs.TagModel)
	if err != nil {
		return ecs.None, err
	}
	mesh.Kind = component.MeshModel
	s.Transforms.Set(id, component.NewTransform(position))
	s.Meshes.Set(id, mesh)
	s.Materials.Set(id, component.NewMaterial(color))
	s.Boxes.Set(id, bounds)
	s.ModelDirty.Mark(id)
	return id, nil
}

// GroupModels records members as the sub-parts of one model under owner.
func (s *State) GroupModels(owner ecs.EntityID, name string, members ...ecs.EntityID) bool {
	if !s.Alive(owner) {
		return false
	}
	s.Groups.Set(owner, component.Group{Name: name, Members: append([]ecs.EntityID(nil), members...)})
	return true
}

// AddLight creates a light entity at position.
func (s *State) AddLight(light component.Light, position mgl32.Vec3) (ecs.EntityID, error) {
	if s.opts.MaxLights > 0 && s.Lights.Count() >= s.opts.MaxLights {
		return ecs.None, fmt.Errorf("add light: %w", ErrTooManyLights)
	}
	id, err := s.CreateEntity(ecs.TagLight)
	if err != nil {
		return ecs.None, err
	}
	s.Transforms.Set(id, component.NewTransform(position))
	s.Lights.Set(id, light)
	s.Points.Set(id, component.Point{Size: 4, Color: light.Color.Vec4(1)})
	s.ModelDirty.Mark(id)
	return id, nil
}

// AddChild attaches child under parent. Both must be UI elements.
func (s *State) AddChild(parent, child ecs.EntityID) error {
	p, ok := s.UIs.Get(parent)
	if !ok {
		return fmt.Errorf("add child: parent %d is not a UI element", parent)
	}
	c, ok := s.UIs.Get(child)
	if !ok {
		return fmt.Errorf("add child: child %d is not a UI element", child)
	}
	if c.Parent == parent {
		return nil
	}
	if s.opts.MaxChildren > 0 && len(p.Children) >= s.opts.MaxChildren {
		return fmt.Errorf("add child to %d: %w", parent, ErrTooManyChildren)
	}
	if old, ok := s.UIs.Get(c.Parent); ok {
		old.Children = removeID(old.Children, child)
	}
	p.Children = append(p.Children, child)
	c.Parent = parent
	return nil
}

// TextFieldAt returns the visible text field containing the pixel, preferring
// the highest depth.
func (s *State) TextFieldAt(x, y float32) (ecs.EntityID, bool) {
	found := ecs.None
	var depth float32
	s.UIs.Each(func(id ecs.EntityID, ui *component.UI) {
		if !ui.TextCapable() || !s.Visible(id) || !ui.Box.Contains(x, y) {
			return
		}
		if found == ecs.None || ui.Depth > depth {
			found, depth = id, ui.Depth
		}
	})
	return found, found != ecs.None
}
