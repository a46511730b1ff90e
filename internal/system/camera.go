package system

import (
	"time"

	coresys "github.com/scenert/scenert/internal/core/system"
	"github.com/scenert/scenert/internal/world"
)

// CameraSystem recomputes view and projection matrices of active cameras
// whose flags are raised. Phase 1 (Camera).
type CameraSystem struct {
	world *world.State
}

func NewCameraSystem(ws *world.State) *CameraSystem {
	return &CameraSystem{world: ws}
}

func (s *CameraSystem) Phase() coresys.Phase { return coresys.PhaseCamera }

func (s *CameraSystem) Update(_ time.Duration) {
	for _, c := range s.world.Cameras {
		if !c.Active {
			continue
		}
		if c.ViewNeedsUpdate {
			c.UpdateView()
		}
		if c.ProjectionNeedsUpdate {
			c.UpdateProjection()
		}
	}
}
