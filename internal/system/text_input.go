package system

import (
	"time"

	"github.com/scenert/scenert/internal/core/event"
	coresys "github.com/scenert/scenert/internal/core/system"
	"github.com/scenert/scenert/internal/input"
	"github.com/scenert/scenert/internal/textedit"
	"go.uber.org/zap"
)

// TextInputSystem feeds this frame's key events to the editing session.
// Failed edits are logged and leave the field unchanged. Phase 3 (TextInput).
type TextInputSystem struct {
	bus     *event.Bus
	session *textedit.Session
	log     *zap.Logger
}

func NewTextInputSystem(bus *event.Bus, session *textedit.Session, log *zap.Logger) *TextInputSystem {
	return &TextInputSystem{bus: bus, session: session, log: log}
}

func (s *TextInputSystem) Phase() coresys.Phase { return coresys.PhaseTextInput }

func (s *TextInputSystem) Update(_ time.Duration) {
	for _, ev := range event.Events[event.Key](s.bus) {
		if s.session.State() == textedit.Unfocused {
			return
		}
		if err := s.apply(ev); err != nil {
			s.log.Warn("text edit rejected",
				zap.Stringer("key", ev.Key),
				zap.Int32("entity", int32(s.session.Focused())),
				zap.Error(err),
			)
		}
	}
}

func (s *TextInputSystem) apply(ev event.Key) error {
	switch ev.Key {
	case input.KeyRune:
		r := input.MapRune(ev.Rune, ev.Mods)
		if !input.Printable(r) {
			return nil
		}
		return s.session.Insert(r)
	case input.KeyLeft:
		return s.session.MoveLeft()
	case input.KeyRight:
		return s.session.MoveRight()
	case input.KeyBackspace:
		return s.session.Backspace()
	case input.KeyDelete:
		return s.session.Delete()
	case input.KeyEnter, input.KeyEscape:
		s.session.Unfocus()
	}
	return nil
}
