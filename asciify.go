// Package asciify converts raster images into text art: a grid of glyphs
// whose density follows the source luminance, optionally colored from
// the image or from a named gradient effect, rendered as plain text,
// ANSI escapes, HTML or PNG.
//
// A conversion is a single synchronous pass:
//
//	buf, _ := asciify.DecodeImage(data)
//	res, _ := asciify.Convert(buf, asciify.ProcessOptions{Width: 60})
//	fmt.Println(res.PlainText())
package asciify

import (
	"context"
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"runtime/debug"

	"github.com/wbrown/asciify/imageutil"
)

// DefaultCellAspect is the number of glyph rows emitted per column's
// worth of source height. At 1.0 a 2x2 image rendered two columns wide
// yields two rows. Terminals draw cells about twice as tall as they are
// wide; use 0.5 there to keep proportions. The common fixed 0.5 factor
// is this setting, not a constant of the row formula.
const DefaultCellAspect = 1.0

// DefaultMaxRows caps the glyph rows of a single conversion.
const DefaultMaxRows = 1000

// Converter holds conversion limits and custom ramps or effects shared
// by many requests. It is immutable after construction and safe for
// concurrent use.
type Converter struct {
	maxWidth     int
	defaultWidth int
	maxRows      int
	cellAspect   float64
	limits       imageutil.Limits
	decoder      imageutil.Decoder
	ramps        *orderedMap[string, Ramp]
	effects      *orderedMap[string, Effect]
	// err is the first invalid option; every conversion reports it.
	err error
}

// ConverterOption is a functional option for configuring a Converter.
type ConverterOption func(*Converter)

// NewConverter creates a Converter with the given options.
// Default values: MaxWidth=400, DefaultWidth=80, MaxRows=1000,
// CellAspect=1.0, MaxBytes=10 MiB, MaxPixels=40 million, decoding
// through the image package registry.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{
		maxWidth:     MaxWidth,
		defaultWidth: DefaultWidth,
		maxRows:      DefaultMaxRows,
		cellAspect:   DefaultCellAspect,
		limits:       imageutil.DefaultLimits,
		decoder:      imageutil.StdDecoder{},
		ramps:        newOrderedMap[string, Ramp](),
		effects:      newOrderedMap[string, Effect](),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.defaultWidth < 1 {
		c.defaultWidth = DefaultWidth
	}
	if c.maxWidth < 1 {
		c.maxWidth = MaxWidth
	}
	if c.defaultWidth > c.maxWidth {
		c.defaultWidth = c.maxWidth
	}
	if c.maxRows < 1 {
		c.maxRows = DefaultMaxRows
	}
	return c
}

// WithMaxWidth sets the upper clamp for ProcessOptions.Width.
func WithMaxWidth(width int) ConverterOption {
	return func(c *Converter) {
		c.maxWidth = width
	}
}

// WithDefaultWidth sets the width used when ProcessOptions.Width is zero.
func WithDefaultWidth(width int) ConverterOption {
	return func(c *Converter) {
		c.defaultWidth = width
	}
}

// WithMaxRows sets the upper clamp for the number of glyph rows. Very
// tall images are squashed to fit.
func WithMaxRows(rows int) ConverterOption {
	return func(c *Converter) {
		c.maxRows = rows
	}
}

// WithCellAspect sets how many rows a column's worth of source height
// produces. Values that are not positive and finite make every
// conversion fail with an InvalidOptionsError.
func WithCellAspect(aspect float64) ConverterOption {
	return func(c *Converter) {
		c.cellAspect = aspect
	}
}

// WithMaxBytes sets the size ceiling for encoded images (0 disables it).
func WithMaxBytes(n int64) ConverterOption {
	return func(c *Converter) {
		c.limits.MaxBytes = n
	}
}

// WithMaxPixels sets the ceiling on decoded width*height (0 disables it).
func WithMaxPixels(n int64) ConverterOption {
	return func(c *Converter) {
		c.limits.MaxPixels = n
	}
}

// WithDecoder replaces the image decoder.
func WithDecoder(dec imageutil.Decoder) ConverterOption {
	return func(c *Converter) {
		if dec != nil {
			c.decoder = dec
		}
	}
}

// WithRamp makes a custom ramp available to this converter under name.
// Built-in style names cannot be replaced; an invalid ramp makes every
// conversion fail with an InvalidOptionsError.
func WithRamp(name, glyphs string) ConverterOption {
	return func(c *Converter) {
		key := normalizeName(name)
		switch {
		case key == "":
			c.fail(&InvalidOptionsError{Field: "style", Value: name, Reason: "ramp name is empty"})
		case glyphs == "":
			c.fail(&InvalidOptionsError{Field: "ramp", Value: name, Reason: "ramp has no glyphs"})
		default:
			if _, ok := RampFor(key); ok {
				c.fail(&InvalidOptionsError{Field: "style", Value: name, Reason: "shadows a built-in ramp"})
				return
			}
			c.ramps.Set(key, NewRamp(glyphs))
		}
	}
}

// WithEffect makes a custom effect available to this converter. The same
// rules as WithRamp apply.
func WithEffect(e Effect) ConverterOption {
	return func(c *Converter) {
		key := normalizeName(e.Name)
		switch {
		case key == "":
			c.fail(&InvalidOptionsError{Field: "effect", Value: e.Name, Reason: "effect name is empty"})
		case e.Func == nil:
			c.fail(&InvalidOptionsError{Field: "effect", Value: e.Name, Reason: "effect has no function"})
		default:
			if _, ok := effects.Get(key); ok {
				c.fail(&InvalidOptionsError{Field: "effect", Value: e.Name, Reason: "shadows a built-in effect"})
				return
			}
			e.Name = key
			c.effects.Set(key, e)
		}
	}
}

func (c *Converter) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Err reports the first invalid option given to NewConverter.
func (c *Converter) Err() error {
	return c.err
}

// Styles lists the built-in ramps followed by this converter's own.
func (c *Converter) Styles() []string {
	return append(Styles(), c.ramps.Keys()...)
}

// Effects lists the built-in effects followed by this converter's own.
func (c *Converter) Effects() []string {
	return append(Effects(), c.effects.Keys()...)
}

// lookupRamp prefers a converter ramp, then a built-in one, then classic.
func (c *Converter) lookupRamp(style string) Ramp {
	if r, ok := c.ramps.Get(normalizeName(style)); ok {
		return r
	}
	return LookupRamp(style)
}

// lookupEffect prefers a converter effect, then a built-in one, then
// rainbow.
func (c *Converter) lookupEffect(name string) Effect {
	if e, ok := c.effects.Get(normalizeName(name)); ok {
		return e
	}
	return LookupEffect(name)
}

var defaultConverter = NewConverter()

// Convert runs the pipeline with the default converter.
func Convert(buf *PixelBuffer, opts ProcessOptions) (*Result, error) {
	return defaultConverter.ConvertContext(context.Background(), buf, opts)
}

// Convert turns buf into a glyph grid. It never returns a partial
// result: on error the Result is nil.
func (c *Converter) Convert(buf *PixelBuffer, opts ProcessOptions) (*Result, error) {
	return c.ConvertContext(context.Background(), buf, opts)
}

// ConvertImage converts an already decoded image.
func (c *Converter) ConvertImage(img image.Image, opts ProcessOptions) (*Result, error) {
	buf, err := PixelBufferFromImage(img)
	if err != nil {
		return nil, err
	}
	return c.Convert(buf, opts)
}

// ConvertFile decodes the image at path and converts it.
func (c *Converter) ConvertFile(path string, opts ProcessOptions) (*Result, error) {
	buf, err := c.LoadImageFile(path)
	if err != nil {
		return nil, err
	}
	return c.Convert(buf, opts)
}

// ConvertContext is Convert with cancellation. The context is checked
// between rows; a cancelled conversion returns ctx.Err() unchanged.
func (c *Converter) ConvertContext(ctx context.Context, buf *PixelBuffer, opts ProcessOptions) (res *Result, err error) {
	if c.err != nil {
		return nil, c.err
	}
	if buf == nil || buf.img == nil || buf.Width() == 0 || buf.Height() == 0 {
		return nil, &InvalidOptionsError{Field: "image", Value: nil, Reason: "pixel buffer is empty"}
	}
	if math.IsNaN(c.cellAspect) || math.IsInf(c.cellAspect, 0) || c.cellAspect <= 0 {
		return nil, &InvalidOptionsError{Field: "cellAspect", Value: c.cellAspect, Reason: "must be positive and finite"}
	}
	resolved, err := c.resolve(opts)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = &InternalComputationError{Op: "convert", Cause: r, Stack: debug.Stack()}
		}
	}()
	return c.convert(ctx, buf, resolved)
}

func (c *Converter) convert(ctx context.Context, buf *PixelBuffer, opts resolvedOptions) (*Result, error) {
	src := buf.img
	if opts.Enhance {
		src = imageutil.AutoContrast(src)
	}

	cols := opts.Width
	rows := min(GridRows(src.Width(), src.Height(), cols, c.cellAspect), c.maxRows)
	s := newSampler(src, cols, rows, opts.Sampling)
	paint := newColorizer(opts)
	n := opts.ramp.Len()

	grid := make([][]Cell, rows)
	for y := 0; y < rows; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := make([]Cell, cols)
		for x := 0; x < cols; x++ {
			rgb := s.sample(x, y)
			lum := rgb.Luminance()
			level := GlyphIndex(lum, n, opts.Invert)
			if level < 0 || level >= n {
				panic(fmt.Sprintf("glyph level %d outside ramp of %d", level, n))
			}
			row[x] = Cell{
				Glyph:     opts.ramp.Glyph(level),
				Luminance: lum,
				Color:     paint(x, y, cols, rows, rgb),
			}
		}
		grid[y] = row
	}
	return &Result{rows: grid}, nil
}

// maxGridRows bounds GridRows so the float to int conversion stays
// defined for extreme aspect ratios.
const maxGridRows = math.MaxInt32

// GridRows returns the number of glyph rows for an imgW x imgH image
// rendered cols wide: max(1, round(imgH/imgW * cols * cellAspect)).
// Converters further clamp the result to their row limit.
func GridRows(imgW, imgH, cols int, cellAspect float64) int {
	if imgW <= 0 || imgH <= 0 || cols <= 0 {
		return 1
	}
	rows := math.Round(float64(imgH) / float64(imgW) * float64(cols) * cellAspect)
	switch {
	case !(rows >= 1):
		return 1
	case rows > maxGridRows:
		return maxGridRows
	}
	return int(rows)
}

// newJitter returns a fresh generator for conversions that did not
// supply one.
func newJitter() Jitter {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
