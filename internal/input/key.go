package input

// Key identifies a key delivered by the input collaborator.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune     // printable character, see the event's Rune
	KeyLeft
	KeyRight
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyRune:
		return "rune"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "escape"
	default:
		return "none"
	}
}

// Modifiers is a bit set of held modifier keys and lock states.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModCapsLock
)

func (m Modifiers) Has(flag Modifiers) bool { return m&flag != 0 }
