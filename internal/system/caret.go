package system

import (
	"time"

	"github.com/scenert/scenert/internal/core/event"
	coresys "github.com/scenert/scenert/internal/core/system"
	"github.com/scenert/scenert/internal/textedit"
	"github.com/scenert/scenert/internal/world"
	"go.uber.org/zap"
)

// CaretSystem drives click-to-focus, drag selection, double-click select-all
// and blink from this frame's pointer events, in arrival order. It runs
// after TextInputSystem so the caret reflects this frame's edits.
// Phase 5 (Caret).
type CaretSystem struct {
	world   *world.State
	bus     *event.Bus
	session *textedit.Session
	log     *zap.Logger
}

func NewCaretSystem(ws *world.State, bus *event.Bus, session *textedit.Session, log *zap.Logger) *CaretSystem {
	return &CaretSystem{world: ws, bus: bus, session: session, log: log}
}

func (s *CaretSystem) Phase() coresys.Phase { return coresys.PhaseCaret }

func (s *CaretSystem) Update(dt time.Duration) {
	for _, ev := range event.Events[event.Pointer](s.bus) {
		s.warn("pointer", s.pointer(ev))
	}
	s.warn("refresh", s.session.Refresh())
	s.session.Blink(dt)
}

func (s *CaretSystem) pointer(ev event.Pointer) error {
	switch ev.Kind {
	case event.PointerDown:
		id, ok := s.world.TextFieldAt(ev.X, ev.Y)
		if !ok {
			return nil
		}
		if err := s.session.Focus(id, ev.X); err != nil {
			return err
		}
		s.session.BeginDrag(ev.X, ev.Y)
	case event.PointerMove:
		if s.session.State() == textedit.Dragging {
			return s.session.Drag(ev.X)
		}
	case event.PointerUp:
		return s.session.EndDrag()
	case event.PointerDoubleClick:
		id, ok := s.world.TextFieldAt(ev.X, ev.Y)
		if !ok {
			return nil
		}
		if s.session.Focused() != id {
			if err := s.session.Focus(id, ev.X); err != nil {
				return err
			}
		}
		if err := s.session.EndDrag(); err != nil {
			return err
		}
		return s.session.SelectAll()
	}
	return nil
}

func (s *CaretSystem) warn(op string, err error) {
	if err == nil {
		return
	}
	s.log.Warn("caret update failed",
		zap.String("op", op),
		zap.Int32("entity", int32(s.session.Focused())),
		zap.Error(err),
	)
}
