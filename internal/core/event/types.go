package event

import (
	"github.com/scenert/scenert/internal/component"
	"github.com/scenert/scenert/internal/core/ecs"
	"github.com/scenert/scenert/internal/input"
)

// PointerKind distinguishes pointer events. All pointer events share one
// type so their relative order within a frame is preserved.
type PointerKind uint8

const (
	PointerMove PointerKind = iota
	PointerDown
	PointerUp
	PointerDoubleClick
)

// Pointer is a pointer event in window-pixel coordinates.
type Pointer struct {
	Kind PointerKind
	X, Y float32
}

// Key is a key-down event. Rune is the unshifted character for KeyRune.
type Key struct {
	Key  input.Key
	Rune rune
	Mods input.Modifiers
}

// Resized reports a new window size in pixels.
type Resized struct {
	Width, Height float32
}

// Clicked is raised by the hover system when a UI element is clicked.
type Clicked struct {
	EntityID ecs.EntityID
	Action   component.ClickAction
}
