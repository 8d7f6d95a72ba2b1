package asciify

import "strings"

// DefaultStyle is the ramp used when a style is empty or unknown.
const DefaultStyle = "classic"

// Ramp is an ordered glyph sequence from the emptiest glyph (index 0,
// always a space in the built-in ramps) to the densest.
type Ramp []rune

// NewRamp builds a Ramp from a string, one glyph per rune.
func NewRamp(s string) Ramp {
	return Ramp(s)
}

// Len returns the number of glyphs in the ramp.
func (r Ramp) Len() int {
	return len(r)
}

// Glyph returns the glyph for a brightness level in [0, Len()-1]. Level
// Len()-1 is the brightest and selects the emptiest glyph; level 0
// selects the densest.
func (r Ramp) Glyph(level int) rune {
	return r[len(r)-1-level]
}

// String returns the ramp as a string.
func (r Ramp) String() string {
	return string(r)
}

// ramps holds the built-in styles. It is filled once in init and only
// read afterwards; custom ramps live on a Converter.
var ramps = newOrderedMap[string, Ramp]()

func init() {
	for _, def := range []struct{ name, glyphs string }{
		{"classic", " .:-=+*#%@"},
		{"dense", " .'`^\",:;Il!i><~+_-?][}{1)(|\\/tfjrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@$"},
		{"blocks", " ░▒▓█"},
		{"dots", " ·•○●"},
		{"minimal", " .-+#"},
		{"retro", " .,;:clodxkO0KXNWM"},
		{"braille", " ⠁⠃⠇⠏⠟⠿⣿"},
		{"shades", " ▁▂▃▄▅▆▇█"},
		{"geometric", " ◦▫▪■"},
		{"hearts", " ♡♥"},
		{"gradient", " ░▒▓█"},
	} {
		ramps.Set(def.name, NewRamp(def.glyphs))
	}
}

// Styles lists the built-in ramp names in order.
func Styles() []string {
	return ramps.Keys()
}

// RampFor returns the built-in ramp named style. Lookup is
// case-insensitive.
func RampFor(style string) (Ramp, bool) {
	return ramps.Get(normalizeName(style))
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// LookupRamp returns the ramp for style, falling back to the classic
// ramp for unknown or empty names.
func LookupRamp(style string) Ramp {
	if r, ok := RampFor(style); ok {
		return r
	}
	r, _ := ramps.Get(DefaultStyle)
	return r
}

// GlyphIndex maps a luminance value onto a brightness level of a ramp
// with n glyphs: floor(lum/256*n), which never exceeds n-1. With invert
// the level is mirrored to n-1-level.
func GlyphIndex(lum uint8, n int, invert bool) int {
	if n <= 0 {
		panic("asciify: glyph index on empty ramp")
	}
	idx := int(lum) * n / 256
	if idx > n-1 {
		idx = n - 1
	}
	if invert {
		idx = n - 1 - idx
	}
	return idx
}
