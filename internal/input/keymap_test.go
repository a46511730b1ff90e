package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapRune(t *testing.T) {
	tests := []struct {
		name string
		base rune
		mods Modifiers
		want rune
	}{
		{"lower", 'a', 0, 'a'},
		{"shift", 'a', ModShift, 'A'},
		{"caps", 'q', ModCapsLock, 'Q'},
		{"caps and shift cancel", 'q', ModCapsLock | ModShift, 'q'},
		{"upper base unshifted", 'Z', 0, 'z'},
		{"digit", '1', 0, '1'},
		{"shifted digit", '1', ModShift, '!'},
		{"caps does not shift digits", '2', ModCapsLock, '2'},
		{"shifted symbol", '/', ModShift, '?'},
		{"space", ' ', ModShift, ' '},
		{"non-ascii letter", 'é', ModShift, 'É'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, string(tt.want), string(MapRune(tt.base, tt.mods)))
		})
	}
}

func TestPrintable(t *testing.T) {
	assert.True(t, Printable('a'))
	assert.True(t, Printable(' '))
	assert.False(t, Printable('\n'))
	assert.False(t, Printable(0x7f))
}

func TestStateEdges(t *testing.T) {
	var s State
	s.Press(10, 20)
	assert.True(t, s.Pressed)
	assert.True(t, s.Down)
	assert.True(t, s.Moved)

	s.BeginFrame()
	assert.False(t, s.Pressed)
	assert.True(t, s.Down, "held state survives frames")

	s.Release(10, 20)
	assert.True(t, s.Released)
	assert.False(t, s.Down)
	assert.False(t, s.Moved)
}
