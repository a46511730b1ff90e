package data

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/scenert/scenert/internal/glyph"
	"gopkg.in/yaml.v3"
)

// GlyphEntry is one character's metrics as exported by the font tooling.
type GlyphEntry struct {
	Char     string  `yaml:"char"`
	Advance  float32 `yaml:"advance"`
	BearingX float32 `yaml:"bearing_x"`
	BearingY float32 `yaml:"bearing_y"`
	Width    float32 `yaml:"width"`
	Height   float32 `yaml:"height"`
}

type glyphFile struct {
	LineHeight float32      `yaml:"line_height"`
	Glyphs     []GlyphEntry `yaml:"glyphs"`
}

// LoadGlyphTable loads a glyph metrics yaml file into a face.
func LoadGlyphTable(path string) (*glyph.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glyph metrics: %w", err)
	}
	return ParseGlyphTable(raw)
}

// ParseGlyphTable decodes glyph metrics yaml.
func ParseGlyphTable(raw []byte) (*glyph.Table, error) {
	var f glyphFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse glyph metrics: %w", err)
	}
	if f.LineHeight <= 0 {
		return nil, fmt.Errorf("parse glyph metrics: line_height must be positive, got %v", f.LineHeight)
	}
	glyphs := make(map[rune]glyph.Metrics, len(f.Glyphs))
	for i, e := range f.Glyphs {
		r, size := utf8.DecodeRuneInString(e.Char)
		if r == utf8.RuneError || size != len(e.Char) {
			return nil, fmt.Errorf("parse glyph metrics: entry %d: char %q is not a single character", i, e.Char)
		}
		if e.Advance < 0 || e.Width < 0 || e.Height < 0 {
			return nil, fmt.Errorf("parse glyph metrics: entry %d (%q): negative metrics", i, e.Char)
		}
		glyphs[r] = glyph.Metrics{
			Advance:  e.Advance,
			BearingX: e.BearingX,
			BearingY: e.BearingY,
			Width:    e.Width,
			Height:   e.Height,
		}
	}
	return glyph.NewTable(f.LineHeight, glyphs), nil
}
