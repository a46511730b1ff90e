package system

import (
	"time"

	"github.com/scenert/scenert/internal/core/ecs"
	coresys "github.com/scenert/scenert/internal/core/system"
	"github.com/scenert/scenert/internal/world"
)

// ModelSystem recomputes the world matrix of every entity flagged in the
// model dirty set. Phase 6 (Model), last so it sees every position written
// earlier in the frame.
type ModelSystem struct {
	world *world.State
}

func NewModelSystem(ws *world.State) *ModelSystem {
	return &ModelSystem{world: ws}
}

func (s *ModelSystem) Phase() coresys.Phase { return coresys.PhaseModel }

func (s *ModelSystem) Update(_ time.Duration) {
	s.world.ModelDirty.Drain(func(id ecs.EntityID) {
		if !s.world.Alive(id) {
			return
		}
		if t, ok := s.world.Transforms.Get(id); ok {
			t.World = t.Matrix()
		}
	})
}
