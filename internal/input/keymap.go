package input

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// US layout shifted symbols.
var shifted = map[rune]rune{
	'1': '!', '2': '@', '3': '#', '4': '$', '5': '%',
	'6': '^', '7': '&', '8': '*', '9': '(', '0': ')',
	'-': '_', '=': '+', '[': '{', ']': '}', '\\': '|',
	';': ':', '\'': '"', ',': '<', '.': '>', '/': '?',
	'`': '~',
}

var upper = cases.Upper(language.Und)

// MapRune returns the character produced by base under mods. Letters are
// upper-cased when exactly one of shift and caps lock is active; symbols
// follow the shift state only.
func MapRune(base rune, mods Modifiers) rune {
	if unicode.IsLetter(base) {
		if mods.Has(ModShift) != mods.Has(ModCapsLock) {
			r, _ := utf8.DecodeRuneInString(upper.String(string(base)))
			return r
		}
		return unicode.ToLower(base)
	}
	if mods.Has(ModShift) {
		if s, ok := shifted[base]; ok {
			return s
		}
	}
	return base
}

// Printable reports whether r can be inserted into a text field.
func Printable(r rune) bool {
	return r >= ' ' && r != 0x7f && unicode.IsPrint(r)
}
