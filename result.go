package asciify

import (
	"strings"

	"github.com/muesli/termenv"
)

// Cell is one position of the output grid.
type Cell struct {
	Glyph     rune
	Luminance uint8
	// Color is zero when the cell is uncolored.
	Color Color
}

// Result is the finished glyph grid. It is immutable and every
// encoding is derived from the same cells.
type Result struct {
	rows [][]Cell
}

// Rows returns the number of glyph rows.
func (r *Result) Rows() int {
	return len(r.rows)
}

// Cols returns the number of glyphs per row.
func (r *Result) Cols() int {
	if len(r.rows) == 0 {
		return 0
	}
	return len(r.rows[0])
}

// Cell returns the cell at column x, row y.
func (r *Result) Cell(x, y int) Cell {
	return r.rows[y][x]
}

// Row returns a copy of row y.
func (r *Result) Row(y int) []Cell {
	return append([]Cell(nil), r.rows[y]...)
}

// PlainText returns the glyphs only, rows joined by "\n" with no
// trailing newline.
func (r *Result) PlainText() string {
	var sb strings.Builder
	sb.Grow(r.Rows() * (r.Cols() + 1))
	for y, row := range r.rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			sb.WriteRune(c.Glyph)
		}
	}
	return sb.String()
}

// ANSI renders the grid with 24-bit color escapes.
func (r *Result) ANSI() string {
	return r.ANSIProfile(termenv.TrueColor)
}

// HTML renders the grid as HTML color spans with CSS colors kept as
// produced.
func (r *Result) HTML() string {
	return r.HTMLProfile(termenv.TrueColor)
}

// Encoding names a text serialization of a Result.
type Encoding string

const (
	EncodingPlain   Encoding = "plain"
	EncodingANSI    Encoding = "ansi"
	EncodingHTML    Encoding = "html"
	EncodingEmail   Encoding = "email"
	EncodingMessage Encoding = "message"
)

// Format renders the grid in the given encoding.
func (r *Result) Format(enc Encoding) (string, error) {
	switch Encoding(strings.ToLower(string(enc))) {
	case EncodingPlain, "":
		return r.PlainText(), nil
	case EncodingANSI:
		return r.ANSI(), nil
	case EncodingHTML:
		return r.HTML(), nil
	case EncodingEmail:
		return EmailHTML(r), nil
	case EncodingMessage:
		return MessageText(r), nil
	}
	return "", &InvalidOptionsError{Field: "encoding", Value: enc, Reason: "unknown encoding"}
}

// colorized reports whether any cell carries a color.
func (r *Result) colorized() bool {
	for _, row := range r.rows {
		for _, c := range row {
			if !c.Color.IsZero() {
				return true
			}
		}
	}
	return false
}

// eachRun walks row in maximal runs of cells sharing the same key. A
// space or an uncolored cell always has the empty key; key is only
// consulted for visible colored glyphs.
func eachRun(row []Cell, key func(Color) string, emit func(key string, glyphs []rune)) {
	var current string
	var glyphs []rune
	for _, c := range row {
		k := ""
		if c.Glyph != ' ' && !c.Color.IsZero() {
			k = key(c.Color)
		}
		if k != current && len(glyphs) > 0 {
			emit(current, glyphs)
			glyphs = glyphs[:0]
		}
		current = k
		glyphs = append(glyphs, c.Glyph)
	}
	if len(glyphs) > 0 {
		emit(current, glyphs)
	}
}
