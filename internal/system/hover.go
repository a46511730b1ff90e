package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/scenert/scenert/internal/component"
	"github.com/scenert/scenert/internal/core/ecs"
	"github.com/scenert/scenert/internal/core/event"
	coresys "github.com/scenert/scenert/internal/core/system"
	"github.com/scenert/scenert/internal/input"
	"github.com/scenert/scenert/internal/world"
	"go.uber.org/zap"
)

// HoverTint dims a hovered element's material.
var HoverTint = mgl32.Vec4{0.8, 0.8, 0.8, 1}

// HoverSystem tests the pointer against every visible UI element, tints
// hovered materials, restores the base material on leave, and turns presses
// into click actions. Clicks are published as event.Clicked for the next
// frame. Phase 4 (Hover).
type HoverSystem struct {
	world *world.State
	input *input.State
	bus   *event.Bus
	log   *zap.Logger
}

func NewHoverSystem(ws *world.State, in *input.State, bus *event.Bus, log *zap.Logger) *HoverSystem {
	return &HoverSystem{world: ws, input: in, bus: bus, log: log}
}

func (s *HoverSystem) Phase() coresys.Phase { return coresys.PhaseHover }

func (s *HoverSystem) Update(_ time.Duration) {
	var clicked []ecs.EntityID

	ecs.Each3(s.world.UIs, s.world.Boxes, s.world.Materials,
		func(id ecs.EntityID, ui *component.UI, _ *component.BoundingBox, mat *component.Material) {
			over := s.world.Visible(id) && ui.Box.Contains(s.input.X, s.input.Y)
			switch {
			case over && !ui.Hovered:
				ui.Hovered = true
				mat.Tint = HoverTint
			case !over && ui.Hovered:
				ui.Hovered = false
				*mat = ui.Base
			}
			ui.Clicked = over && s.input.Pressed
			if ui.Clicked {
				clicked = append(clicked, id)
			}
		})

	// Actions run after the scan so visibility toggles apply from the next frame.
	for _, id := range clicked {
		s.click(id)
	}
}

func (s *HoverSystem) click(id ecs.EntityID) {
	ui, ok := s.world.UIs.Get(id)
	if !ok {
		return
	}
	switch a := ui.Action.(type) {
	case component.ToggleSiblings:
		s.toggleSiblings(id, ui.Parent)
	case component.Notify:
		s.log.Debug("ui click", zap.Int32("entity", int32(id)), zap.String("name", a.Name))
	case component.FocusText, nil:
	}
	event.Emit(s.bus, event.Clicked{EntityID: id, Action: ui.Action})
}

func (s *HoverSystem) toggleSiblings(id, parent ecs.EntityID) {
	p, ok := s.world.UIs.Get(parent)
	if !ok {
		return
	}
	for _, sib := range p.Children {
		if sib == id || !s.world.Alive(sib) {
			continue
		}
		s.world.SetVisible(sib, !s.world.Visible(sib))
	}
}
