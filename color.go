package asciify

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wbrown/asciify/imageutil"
)

type colorKind uint8

const (
	colorNone colorKind = iota
	colorRGB
	colorHSL
)

// Color is a cell color: absent, an RGB triple sampled from the image,
// or an HSL value produced by an effect. The zero value is absent.
type Color struct {
	kind    colorKind
	rgb     imageutil.RGB
	h, s, l float64
}

// RGBColor returns an RGB color.
func RGBColor(r, g, b uint8) Color {
	return Color{kind: colorRGB, rgb: imageutil.RGB{R: r, G: g, B: b}}
}

// HSLColor returns an HSL color. Hue is in degrees and normalized into
// [0, 360); saturation and lightness are percentages clamped to [0, 100].
func HSLColor(h, s, l float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return Color{kind: colorHSL, h: h, s: clampPercent(s), l: clampPercent(l)}
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// IsZero reports whether the color is absent.
func (c Color) IsZero() bool {
	return c.kind == colorNone
}

// IsHSL reports whether the color was produced in HSL form.
func (c Color) IsHSL() bool {
	return c.kind == colorHSL
}

// HSL returns the hue, saturation and lightness of an HSL color.
func (c Color) HSL() (h, s, l float64) {
	return c.h, c.s, c.l
}

// RGB resolves the color to 8-bit channels. HSL colors are converted
// with go-colorful. An absent color resolves to black.
func (c Color) RGB() imageutil.RGB {
	switch c.kind {
	case colorRGB:
		return c.rgb
	case colorHSL:
		r, g, b := colorful.Hsl(c.h, c.s/100, c.l/100).Clamped().RGB255()
		return imageutil.RGB{R: r, G: g, B: b}
	}
	return imageutil.RGB{}
}

// Hex returns the resolved color as "#RRGGBB".
func (c Color) Hex() string {
	return c.RGB().Hex()
}

// CSS returns the color in the form used in HTML output: "#RRGGBB" for
// sampled colors and "hsl(h, s%, l%)" for effect colors. Absent colors
// return "".
func (c Color) CSS() string {
	switch c.kind {
	case colorRGB:
		return c.rgb.Hex()
	case colorHSL:
		return fmt.Sprintf("hsl(%s, %s%%, %s%%)", trimFloat(c.h), trimFloat(c.s), trimFloat(c.l))
	}
	return ""
}

// String implements fmt.Stringer.
func (c Color) String() string {
	if c.IsZero() {
		return "none"
	}
	return c.CSS()
}

// trimFloat prints v with at most two decimals and no trailing zeros.
func trimFloat(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ANSI256Hex maps xterm 256-color palette indices to "#RRGGBB".
var ANSI256Hex = buildANSI256Hex()

func buildANSI256Hex() [256]string {
	var table [256]string
	base := [16]imageutil.RGB{
		{R: 0, G: 0, B: 0}, {R: 128, G: 0, B: 0}, {R: 0, G: 128, B: 0}, {R: 128, G: 128, B: 0},
		{R: 0, G: 0, B: 128}, {R: 128, G: 0, B: 128}, {R: 0, G: 128, B: 128}, {R: 192, G: 192, B: 192},
		{R: 128, G: 128, B: 128}, {R: 255, G: 0, B: 0}, {R: 0, G: 255, B: 0}, {R: 255, G: 255, B: 0},
		{R: 0, G: 0, B: 255}, {R: 255, G: 0, B: 255}, {R: 0, G: 255, B: 255}, {R: 255, G: 255, B: 255},
	}
	for i, c := range base {
		table[i] = c.Hex()
	}

	// 6x6x6 color cube
	steps := [6]uint8{0, 95, 135, 175, 215, 255}
	for i := 0; i < 216; i++ {
		c := imageutil.RGB{R: steps[i/36], G: steps[(i/6)%6], B: steps[i%6]}
		table[16+i] = c.Hex()
	}

	// Grayscale ramp
	for i := 0; i < 24; i++ {
		v := uint8(8 + i*10)
		table[232+i] = imageutil.RGB{R: v, G: v, B: v}.Hex()
	}
	return table
}
