package system

import (
	"time"

	"github.com/scenert/scenert/internal/core/event"
	coresys "github.com/scenert/scenert/internal/core/system"
	"github.com/scenert/scenert/internal/input"
	"github.com/scenert/scenert/internal/textedit"
	"github.com/scenert/scenert/internal/world"
	"go.uber.org/zap"
)

// Pipeline owns the per-frame system order. Collaborators queue events on
// Bus between frames; Frame makes them visible and runs every phase once.
type Pipeline struct {
	World   *world.State
	Bus     *event.Bus
	Input   *input.State
	Session *textedit.Session

	runner *coresys.Runner
}

func NewPipeline(ws *world.State, session *textedit.Session, log *zap.Logger) *Pipeline {
	p := &Pipeline{
		World:   ws,
		Bus:     event.NewBus(),
		Input:   &input.State{},
		Session: session,
		runner:  coresys.NewRunner(),
	}
	p.runner.Register(NewInputSystem(p.Bus, p.Input))
	p.runner.Register(NewCameraSystem(ws))
	p.runner.Register(NewLayoutSystem(ws, p.Bus, log))
	p.runner.Register(NewTextInputSystem(p.Bus, session, log))
	p.runner.Register(NewHoverSystem(ws, p.Input, p.Bus, log))
	p.runner.Register(NewCaretSystem(ws, p.Bus, session, log))
	p.runner.Register(NewModelSystem(ws))
	return p
}

// Frame runs one pass of the pipeline.
func (p *Pipeline) Frame(dt time.Duration) {
	p.runner.Tick(dt)
}

// Phases lists registered phases in execution order.
func (p *Pipeline) Phases() []coresys.Phase {
	return p.runner.Phases()
}

// Timings reports per-phase durations of the last frame.
func (p *Pipeline) Timings() []coresys.PhaseTiming {
	return p.runner.Timings()
}
