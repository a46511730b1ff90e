package component

import (
	"errors"
	"fmt"
)

var (
	ErrFieldFull    = errors.New("text field full")
	ErrInvalidRange = errors.New("invalid text range")
)

// TextBuffer is an owned, length-capped character buffer for a text field.
// Edits build a fresh backing array so readers holding a previous String()
// are unaffected.
type TextBuffer struct {
	runes []rune
	max   int
}

// NewTextBuffer returns a buffer holding s. max <= 0 means unlimited.
func NewTextBuffer(s string, max int) (*TextBuffer, error) {
	b := &TextBuffer{max: max}
	if err := b.Replace(s); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *TextBuffer) String() string { return string(b.runes) }

// Len returns the number of characters.
func (b *TextBuffer) Len() int { return len(b.runes) }

func (b *TextBuffer) Max() int { return b.max }

// At returns the character at i.
func (b *TextBuffer) At(i int) (rune, bool) {
	if i < 0 || i >= len(b.runes) {
		return 0, false
	}
	return b.runes[i], true
}

// Insert places r before index i (0..Len).
func (b *TextBuffer) Insert(i int, r rune) error {
	if i < 0 || i > len(b.runes) {
		return fmt.Errorf("%w: insert at %d of %d", ErrInvalidRange, i, len(b.runes))
	}
	if b.max > 0 && len(b.runes) >= b.max {
		return ErrFieldFull
	}
	next := make([]rune, 0, len(b.runes)+1)
	next = append(next, b.runes[:i]...)
	next = append(next, r)
	next = append(next, b.runes[i:]...)
	b.runes = next
	return nil
}

// DeleteRange removes characters in [start, end).
func (b *TextBuffer) DeleteRange(start, end int) error {
	if start < 0 || end > len(b.runes) || start > end {
		return fmt.Errorf("%w: delete [%d,%d) of %d", ErrInvalidRange, start, end, len(b.runes))
	}
	if start == end {
		return nil
	}
	next := make([]rune, 0, len(b.runes)-(end-start))
	next = append(next, b.runes[:start]...)
	next = append(next, b.runes[end:]...)
	b.runes = next
	return nil
}

// Replace swaps the whole content.
func (b *TextBuffer) Replace(s string) error {
	next := []rune(s)
	if b.max > 0 && len(next) > b.max {
		return fmt.Errorf("%w: %d characters, max %d", ErrFieldFull, len(next), b.max)
	}
	b.runes = next
	return nil
}

// Release drops the backing storage.
func (b *TextBuffer) Release() {
	b.runes = nil
}
