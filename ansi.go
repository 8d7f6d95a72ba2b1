package asciify

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

const (
	ESC = "\u001b"
)

// ANSIProfile renders the grid with escapes for the given terminal
// profile. Adjacent glyphs of the same color share one escape and each
// colored run ends with a reset, so no color leaks past a run. The
// Ascii profile emits no escapes at all.
func (r *Result) ANSIProfile(profile termenv.Profile) string {
	var sb strings.Builder
	sequence := func(c Color) string {
		return profile.Color(c.Hex()).Sequence(false)
	}
	for y, row := range r.rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		eachRun(row, sequence, func(seq string, glyphs []rune) {
			if seq == "" {
				sb.WriteString(string(glyphs))
				return
			}
			sb.WriteString(formatANSICode(seq, glyphs))
		})
	}
	return sb.String()
}

// formatANSICode wraps a run of glyphs in a select-graphic-rendition
// escape and a reset.
func formatANSICode(seq string, glyphs []rune) string {
	var code strings.Builder
	code.WriteString(ESC)
	code.WriteByte('[')
	code.WriteString(seq)
	code.WriteByte('m')
	code.WriteString(string(glyphs))
	code.WriteString(ESC)
	code.WriteString("[0m")
	return code.String()
}

// StripANSI removes every escape sequence from s.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// ParseProfile resolves a color profile name: truecolor, ansi256, ansi
// or ascii.
func ParseProfile(name string) (termenv.Profile, error) {
	switch strings.ToLower(name) {
	case "truecolor", "24bit", "":
		return termenv.TrueColor, nil
	case "ansi256", "256":
		return termenv.ANSI256, nil
	case "ansi", "16":
		return termenv.ANSI, nil
	case "ascii", "none":
		return termenv.Ascii, nil
	}
	return termenv.Ascii, &InvalidOptionsError{Field: "profile", Value: name, Reason: "unknown color profile"}
}
