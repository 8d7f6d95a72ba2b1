package asciify

import (
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/wbrown/asciify/imageutil"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// PNG export defaults.
const (
	DefaultPNGPadding = 40
)

var (
	// DefaultPNGBackground is the canvas color of exported images.
	DefaultPNGBackground = imageutil.RGB{R: 0, G: 0, B: 0}
	// DefaultPNGForeground draws uncolored glyphs in terminal green.
	DefaultPNGForeground = imageutil.RGB{R: 0x00, G: 0xFF, B: 0x41}
)

// PNGOptions configures RenderPNG. The zero value draws with the basic
// 7x13 bitmap font on black with 40px of padding.
type PNGOptions struct {
	// Font is a parsed TrueType font; nil selects the basic font.
	Font *truetype.Font
	// FontSize in points, used with Font.
	FontSize float64
	// Padding around the text in pixels. Negative means none.
	Padding int
	// Background and Foreground override the defaults when non-nil.
	Background *imageutil.RGB
	Foreground *imageutil.RGB
}

// RenderPNG draws the grid onto an image, one monospace cell per glyph.
// Colored cells use their own color; others use the foreground.
func RenderPNG(r *Result, opts PNGOptions) *image.RGBA {
	gf := newGlyphFace(opts.Font, opts.FontSize)
	defer gf.Close()

	pad := opts.Padding
	if pad == 0 {
		pad = DefaultPNGPadding
	} else if pad < 0 {
		pad = 0
	}
	bg, fg := DefaultPNGBackground, DefaultPNGForeground
	if opts.Background != nil {
		bg = *opts.Background
	}
	if opts.Foreground != nil {
		fg = *opts.Foreground
	}

	width := r.Cols()*gf.cellW + 2*pad
	height := r.Rows()*gf.cellH + 2*pad
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg.ToColor()), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Face: gf.face}
	inks := make(map[imageutil.RGB]*image.Uniform)
	for y, row := range r.rows {
		baseline := pad + y*gf.cellH + gf.ascent
		for x, c := range row {
			if c.Glyph == ' ' {
				continue
			}
			ink := fg
			if !c.Color.IsZero() {
				ink = c.Color.RGB()
			}
			src, ok := inks[ink]
			if !ok {
				src = image.NewUniform(color.RGBA{R: ink.R, G: ink.G, B: ink.B, A: 255})
				inks[ink] = src
			}
			d.Src = src
			d.Dot = fixed.P(pad+x*gf.cellW, baseline)
			d.DrawString(string(c.Glyph))
		}
	}
	return img
}

// SavePNG renders the grid and writes it to path.
func SavePNG(r *Result, path string, opts PNGOptions) error {
	return imageutil.SaveImage(RenderPNG(r, opts), path)
}
