package system

import (
	"time"

	"github.com/scenert/scenert/internal/coords"
	"github.com/scenert/scenert/internal/core/ecs"
	"github.com/scenert/scenert/internal/core/event"
	coresys "github.com/scenert/scenert/internal/core/system"
	"github.com/scenert/scenert/internal/world"
	"go.uber.org/zap"
)

// LayoutSystem applies window resizes and re-derives the transform of every
// UI element flagged in the layout dirty set from its pixel box. The
// element's bounding-box visualisation follows. Phase 2 (Layout).
type LayoutSystem struct {
	world *world.State
	bus   *event.Bus
	log   *zap.Logger
}

func NewLayoutSystem(ws *world.State, bus *event.Bus, log *zap.Logger) *LayoutSystem {
	return &LayoutSystem{world: ws, bus: bus, log: log}
}

func (s *LayoutSystem) Phase() coresys.Phase { return coresys.PhaseLayout }

func (s *LayoutSystem) Update(_ time.Duration) {
	if resizes := event.Events[event.Resized](s.bus); len(resizes) > 0 {
		last := resizes[len(resizes)-1]
		v := coords.Viewport{Width: last.Width, Height: last.Height}
		if v.Valid() {
			s.log.Debug("viewport resized",
				zap.Float32("width", v.Width),
				zap.Float32("height", v.Height),
			)
			s.world.Resize(v)
		}
	}

	s.world.LayoutDirty.Drain(func(id ecs.EntityID) {
		if !s.world.Alive(id) || !s.world.Transforms.Has(id) || !s.world.Boxes.Has(id) {
			return
		}
		ui, ok := s.world.UIs.Get(id)
		if !ok {
			return
		}
		s.world.PlaceRect(id, ui.Box, ui.Depth)
		if ui.BoxVisual.Valid() {
			s.world.PlaceRect(ui.BoxVisual, ui.Box, ui.Depth)
		}
	})
}
