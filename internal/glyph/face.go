package glyph

import "unicode"

// Metrics describes one glyph in pixels.
type Metrics struct {
	Advance  float32 // pen movement after the glyph
	BearingX float32 // offset from the pen to the glyph's left edge
	BearingY float32 // offset from the baseline to the glyph's top edge
	Width    float32
	Height   float32
}

// Face answers glyph metrics by character. It is implemented by the font
// collaborator; the runtime never rasterizes.
type Face interface {
	Glyph(r rune) (Metrics, bool)
	LineHeight() float32
}

// Mono is a fixed-pitch face where every printable character has the same
// metrics. A terminal is a Mono face with a one-pixel cell.
type Mono struct {
	Advance float32
	Height  float32
}

func (m Mono) Glyph(r rune) (Metrics, bool) {
	if !unicode.IsPrint(r) {
		return Metrics{}, false
	}
	return Metrics{Advance: m.Advance, Width: m.Advance, Height: m.Height, BearingY: m.Height}, true
}

func (m Mono) LineHeight() float32 { return m.Height }

// Table is a face backed by an explicit per-character table.
type Table struct {
	glyphs     map[rune]Metrics
	lineHeight float32
}

func NewTable(lineHeight float32, glyphs map[rune]Metrics) *Table {
	return &Table{glyphs: glyphs, lineHeight: lineHeight}
}

func (t *Table) Glyph(r rune) (Metrics, bool) {
	m, ok := t.glyphs[r]
	return m, ok
}

func (t *Table) LineHeight() float32 { return t.lineHeight }

// Count returns the number of characters in the table.
func (t *Table) Count() int { return len(t.glyphs) }
