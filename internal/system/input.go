package system

import (
	"time"

	"github.com/scenert/scenert/internal/core/event"
	coresys "github.com/scenert/scenert/internal/core/system"
	"github.com/scenert/scenert/internal/input"
)

// InputSystem swaps the event bus so events queued since the last frame
// become readable, dispatches them to subscribers, and folds pointer and
// modifier events into the shared input state. Phase 0 (Input).
type InputSystem struct {
	bus   *event.Bus
	state *input.State
}

func NewInputSystem(bus *event.Bus, state *input.State) *InputSystem {
	return &InputSystem{bus: bus, state: state}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
	s.state.BeginFrame()

	for _, ev := range event.Events[event.Pointer](s.bus) {
		switch ev.Kind {
		case event.PointerMove:
			s.state.MoveTo(ev.X, ev.Y)
		case event.PointerDown:
			s.state.Press(ev.X, ev.Y)
		case event.PointerUp:
			s.state.Release(ev.X, ev.Y)
		case event.PointerDoubleClick:
			s.state.DoubleClick(ev.X, ev.Y)
		}
	}
	for _, ev := range event.Events[event.Key](s.bus) {
		s.state.Mods = ev.Mods
	}
}
