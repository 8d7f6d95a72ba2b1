package asciify

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// BorderStyle selects the characters drawn around framed art.
type BorderStyle string

const (
	BorderNone   BorderStyle = "none"
	BorderSingle BorderStyle = "single"
	BorderDouble BorderStyle = "double"
	BorderBlock  BorderStyle = "block"
	BorderRound  BorderStyle = "round"
)

var borders = map[BorderStyle]lipgloss.Border{
	BorderSingle: lipgloss.NormalBorder(),
	BorderDouble: lipgloss.DoubleBorder(),
	BorderBlock:  lipgloss.BlockBorder(),
	BorderRound:  lipgloss.RoundedBorder(),
}

// ParseBorderStyle resolves a border name.
func ParseBorderStyle(name string) (BorderStyle, error) {
	s := BorderStyle(strings.ToLower(strings.TrimSpace(name)))
	if s == "" || s == BorderNone {
		return BorderNone, nil
	}
	if _, ok := borders[s]; ok {
		return s, nil
	}
	return BorderNone, &InvalidOptionsError{Field: "border", Value: name, Reason: "unknown border style"}
}

// Frame returns a copy of r surrounded by a border with one space of
// padding. Border and padding cells are uncolored. BorderNone returns r
// unchanged.
func Frame(r *Result, style BorderStyle) *Result {
	b, ok := borders[style]
	if !ok || r.Rows() == 0 {
		return r
	}
	cols := r.Cols()
	width := cols + 4

	edge := func(left, fill, right string) []Cell {
		row := make([]Cell, width)
		row[0] = borderCell(left)
		for i := 1; i < width-1; i++ {
			row[i] = borderCell(fill)
		}
		row[width-1] = borderCell(right)
		return row
	}
	padded := func(inner []Cell) []Cell {
		row := make([]Cell, 0, width)
		row = append(row, borderCell(b.Left), blankCell)
		if inner == nil {
			for i := 0; i < cols; i++ {
				row = append(row, blankCell)
			}
		} else {
			row = append(row, inner...)
		}
		return append(row, blankCell, borderCell(b.Right))
	}

	out := make([][]Cell, 0, r.Rows()+4)
	out = append(out, edge(b.TopLeft, b.Top, b.TopRight), padded(nil))
	for _, row := range r.rows {
		out = append(out, padded(row))
	}
	out = append(out, padded(nil), edge(b.BottomLeft, b.Bottom, b.BottomRight))
	return &Result{rows: out}
}

var blankCell = Cell{Glyph: ' ', Luminance: 255}

func borderCell(s string) Cell {
	g, _ := utf8.DecodeRuneInString(s)
	if g == utf8.RuneError {
		g = ' '
	}
	return Cell{Glyph: g}
}
