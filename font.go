package asciify

import (
	"fmt"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is the point size used when PNGOptions.FontSize is
// not set and a TrueType font is supplied.
const DefaultFontSize = 14.0

// LoadFont loads a TrueType font from file.
func LoadFont(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}

	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}

	return ttf, nil
}

// glyphFace is a font face with the monospace cell metrics derived from
// it.
type glyphFace struct {
	face     font.Face
	cellW    int
	cellH    int
	ascent   int
	ownsFace bool
}

// newGlyphFace builds a face for ttf at size points, or the 7x13 basic
// font when ttf is nil.
func newGlyphFace(ttf *truetype.Font, size float64) *glyphFace {
	if ttf == nil {
		face := basicfont.Face7x13
		return &glyphFace{
			face:   face,
			cellW:  face.Advance,
			cellH:  face.Height,
			ascent: face.Ascent,
		}
	}
	if size <= 0 {
		size = DefaultFontSize
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	// Monospace cell: the advance of a wide glyph and the line height
	metrics := face.Metrics()
	advance, ok := face.GlyphAdvance('M')
	if !ok {
		advance = fixed.I(int(size * 0.6))
	}
	cellH := (metrics.Ascent + metrics.Descent).Ceil()
	if h := metrics.Height.Ceil(); h > cellH {
		cellH = h
	}
	return &glyphFace{
		face:     face,
		cellW:    advance.Ceil(),
		cellH:    cellH,
		ascent:   metrics.Ascent.Ceil(),
		ownsFace: true,
	}
}

// Close releases the face if it was created here.
func (g *glyphFace) Close() error {
	if g.ownsFace {
		return g.face.Close()
	}
	return nil
}
