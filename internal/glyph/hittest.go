package glyph

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrUnsupportedGlyph = errors.New("unsupported glyph")
	ErrInvalidIndex     = errors.New("invalid character index")
)

// Hit is the character boundary closest to a pixel.
type Hit struct {
	Index int        // boundary index, 0..len(text)
	Pos   mgl32.Vec2 // pixel position of the boundary
	Width float32    // advance of the glyph at Index; 0 at the end of text
}

// HitTest walks text from origin and returns the boundary nearest targetX.
// Boundary i sits at the drawn origin (pen + bearing) of glyph i; the last
// boundary sits at the pen after the final advance. Ties go to the later index.
func HitTest(face Face, text string, origin mgl32.Vec2, targetX float32) (Hit, error) {
	runes := []rune(text)
	if len(runes) == 0 {
		return checked(Hit{Pos: origin})
	}

	pen := origin[0]
	best := float32(math.Inf(1))
	var prev Hit
	for i, r := range runes {
		m, ok := face.Glyph(r)
		if !ok {
			return Hit{}, fmt.Errorf("%w: %q at %d", ErrUnsupportedGlyph, r, i)
		}
		x := pen + m.BearingX
		d := distance(targetX, x)
		if d > best {
			return checked(prev)
		}
		best = d
		prev = Hit{Index: i, Pos: mgl32.Vec2{x, origin[1]}, Width: m.Advance}
		pen += m.Advance
	}

	end := Hit{Index: len(runes), Pos: mgl32.Vec2{pen, origin[1]}}
	if distance(targetX, pen) <= best {
		return checked(end)
	}
	return checked(prev)
}

// BoundaryX returns the pixel x of boundary index in text.
func BoundaryX(face Face, text string, originX float32, index int) (float32, error) {
	runes := []rune(text)
	if index < 0 || index > len(runes) {
		return 0, fmt.Errorf("%w: %d of %d", ErrInvalidIndex, index, len(runes))
	}
	pen := originX
	for i, r := range runes {
		m, ok := face.Glyph(r)
		if !ok {
			return 0, fmt.Errorf("%w: %q at %d", ErrUnsupportedGlyph, r, i)
		}
		if i == index {
			return pen + m.BearingX, nil
		}
		pen += m.Advance
	}
	return pen, nil
}

// Measure returns the total advance of text.
func Measure(face Face, text string) (float32, error) {
	var w float32
	for i, r := range text {
		m, ok := face.Glyph(r)
		if !ok {
			return 0, fmt.Errorf("%w: %q at byte %d", ErrUnsupportedGlyph, r, i)
		}
		w += m.Advance
	}
	return w, nil
}

func checked(h Hit) (Hit, error) {
	if h.Index < 0 || h.Pos[0] < 0 || h.Pos[1] < 0 || h.Width < 0 {
		return Hit{}, fmt.Errorf("%w: index %d at (%.1f, %.1f) width %.1f",
			ErrInvalidIndex, h.Index, h.Pos[0], h.Pos[1], h.Width)
	}
	return h, nil
}

func distance(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}
