package asciify

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/wbrown/asciify/imageutil"
)

func solidBuffer(t *testing.T, w, h int, c imageutil.RGB) *PixelBuffer {
	t.Helper()
	buf, err := PixelBufferFromImage(imageutil.CreateSolidImage(w, h, c).RGBA)
	if err != nil {
		t.Fatalf("Failed to build pixel buffer: %v", err)
	}
	return buf
}

func gradientBuffer(t *testing.T, w, h int) *PixelBuffer {
	t.Helper()
	buf, err := PixelBufferFromImage(imageutil.CreateGradientImage(w, h).RGBA)
	if err != nil {
		t.Fatalf("Failed to build pixel buffer: %v", err)
	}
	return buf
}

func mustConvert(t *testing.T, buf *PixelBuffer, opts ProcessOptions) *Result {
	t.Helper()
	res, err := Convert(buf, opts)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	return res
}

var white = imageutil.RGB{R: 255, G: 255, B: 255}

func TestScenarioSolidWhite(t *testing.T) {
	t.Parallel()

	buf := solidBuffer(t, 2, 2, white)
	res := mustConvert(t, buf, ProcessOptions{Width: 2, Style: "classic"})

	if got, want := res.PlainText(), "  \n  "; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestScenarioSolidWhiteInverted(t *testing.T) {
	t.Parallel()

	buf := solidBuffer(t, 2, 2, white)
	res := mustConvert(t, buf, ProcessOptions{Width: 2, Style: "classic", Invert: true})

	if got, want := res.PlainText(), "@@\n@@"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestScenarioRedPixelHTML(t *testing.T) {
	t.Parallel()

	buf := solidBuffer(t, 1, 1, imageutil.RGB{R: 255})
	for _, style := range Styles() {
		t.Run(style, func(t *testing.T) {
			res := mustConvert(t, buf, ProcessOptions{Width: 1, Style: style, UseColor: true})
			out := res.HTML()

			if n := strings.Count(out, `<span style="color: #FF0000;">`); n != 1 {
				t.Fatalf("Expected exactly one red span, got %d in %q", n, out)
			}
			inner := strings.TrimSuffix(strings.TrimPrefix(out, `<span style="color: #FF0000;">`), "</span>")
			if got := []rune(StripMarkup(inner)); len(got) != 1 {
				t.Errorf("Expected one glyph inside the span, got %q", inner)
			}
		})
	}
}

func TestScenarioRainbowVariesAcrossRow(t *testing.T) {
	t.Parallel()

	buf := gradientBuffer(t, 40, 20)
	for _, w := range []int{2, 10, 80} {
		res := mustConvert(t, buf, ProcessOptions{Width: w, Rainbow: true})
		first, last := res.Cell(0, 0).Color, res.Cell(w-1, 0).Color
		if first.CSS() == last.CSS() {
			t.Errorf("Width %d: expected different colors at row ends, both %s", w, first)
		}
	}
}

func TestConvertDeterministic(t *testing.T) {
	t.Parallel()

	buf := gradientBuffer(t, 97, 61)
	optsList := []ProcessOptions{
		{Width: 40},
		{Width: 40, Style: "blocks", UseColor: true},
		{Width: 33, Rainbow: true, Effect: "neon"},
		{Width: 50, Invert: true, Enhance: true, Sampling: SampleLanczos},
		{Width: 25, Sampling: SampleNearest, Style: "dense"},
	}
	for _, opts := range optsList {
		a := mustConvert(t, buf, opts)
		b := mustConvert(t, buf, opts)
		if a.PlainText() != b.PlainText() || a.HTML() != b.HTML() || a.ANSI() != b.ANSI() {
			t.Errorf("Options %+v: repeated conversions differ", opts)
		}
	}
}

func TestConvertDimensions(t *testing.T) {
	t.Parallel()

	buf := gradientBuffer(t, 100, 50)
	tests := []struct {
		name     string
		width    int
		wantCols int
	}{
		{"explicit", 30, 30},
		{"default", 0, DefaultWidth},
		{"negative clamps to one", -5, 1},
		{"too wide clamps", 1000, MaxWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustConvert(t, buf, ProcessOptions{Width: tt.width})
			if res.Cols() != tt.wantCols {
				t.Errorf("Expected %d columns, got %d", tt.wantCols, res.Cols())
			}
			if want := GridRows(100, 50, tt.wantCols, DefaultCellAspect); res.Rows() != want {
				t.Errorf("Expected %d rows, got %d", want, res.Rows())
			}
			lines := strings.Split(res.PlainText(), "\n")
			if len(lines) != res.Rows() {
				t.Errorf("Expected %d lines, got %d", res.Rows(), len(lines))
			}
			for i, line := range lines {
				if n := len([]rune(line)); n != tt.wantCols {
					t.Errorf("Line %d: expected %d glyphs, got %d", i, tt.wantCols, n)
				}
			}
		})
	}
}

func TestGridRows(t *testing.T) {
	tests := []struct {
		imgW, imgH, cols int
		aspect           float64
		want             int
	}{
		{2, 2, 2, 1.0, 2},
		{2, 2, 2, 0.5, 1},
		{100, 50, 80, 0.5, 20},
		{1000, 1, 10, 0.5, 1},
		{10, 100, 10, 1.0, 100},
		{1, 100000, 400, 1.0, 40000000},
		{1, 1, 1, 1e300, math.MaxInt32},
		{1, 1, 1, math.NaN(), 1},
	}
	for _, tt := range tests {
		if got := GridRows(tt.imgW, tt.imgH, tt.cols, tt.aspect); got != tt.want {
			t.Errorf("GridRows(%d, %d, %d, %v) = %d, want %d",
				tt.imgW, tt.imgH, tt.cols, tt.aspect, got, tt.want)
		}
	}
}

func TestConverterCellAspect(t *testing.T) {
	t.Parallel()

	buf := solidBuffer(t, 100, 50, white)
	res, err := NewConverter(WithCellAspect(0.5)).Convert(buf, ProcessOptions{Width: 80})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if res.Rows() != 20 {
		t.Errorf("Expected 20 rows, got %d", res.Rows())
	}
}

func TestConverterClampsRows(t *testing.T) {
	t.Parallel()

	// 1x100000 at full width would otherwise be 40 million rows
	img := imageutil.NewRGBAImage(1, 100000)
	buf, err := PixelBufferFromImage(img.RGBA)
	if err != nil {
		t.Fatal(err)
	}
	res, err := defaultConverter.Convert(buf, ProcessOptions{Width: MaxWidth})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if res.Rows() != DefaultMaxRows || res.Cols() != MaxWidth {
		t.Errorf("Expected %dx%d, got %dx%d", MaxWidth, DefaultMaxRows, res.Cols(), res.Rows())
	}

	small, err := NewConverter(WithMaxRows(3)).Convert(solidBuffer(t, 10, 100, white), ProcessOptions{Width: 10})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if small.Rows() != 3 {
		t.Errorf("Expected 3 rows, got %d", small.Rows())
	}
}

func TestConverterOptions(t *testing.T) {
	c := NewConverter(
		WithMaxWidth(50),
		WithDefaultWidth(70),
		WithMaxBytes(1234),
		WithMaxPixels(5678),
		WithMaxRows(0),
		WithDecoder(nil),
	)

	if c.maxWidth != 50 {
		t.Errorf("Expected maxWidth=50, got %d", c.maxWidth)
	}
	if c.defaultWidth != 50 {
		t.Errorf("Expected defaultWidth clamped to 50, got %d", c.defaultWidth)
	}
	if c.limits.MaxBytes != 1234 || c.limits.MaxPixels != 5678 {
		t.Errorf("Expected limits {1234 5678}, got %+v", c.limits)
	}
	if c.maxRows != DefaultMaxRows {
		t.Errorf("Expected a non-positive row limit to keep %d, got %d", DefaultMaxRows, c.maxRows)
	}
	if c.Err() != nil {
		t.Errorf("Expected no option error, got %v", c.Err())
	}
	if c.decoder == nil {
		t.Error("A nil decoder option should keep the default decoder")
	}
}

func TestAreaSampling(t *testing.T) {
	t.Parallel()

	img := imageutil.NewRGBAImage(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := imageutil.RGB{}
			if x >= 2 {
				c = white
			}
			img.SetRGB(x, y, c)
		}
	}
	buf, err := PixelBufferFromImage(img.RGBA)
	if err != nil {
		t.Fatal(err)
	}

	res := mustConvert(t, buf, ProcessOptions{Width: 2})
	if got, want := res.PlainText(), "@ \n@ "; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNearestSamplingHitsEdges(t *testing.T) {
	t.Parallel()

	// black | gray | white; two columns must read the outer pixels
	img := imageutil.NewRGBAImage(3, 1)
	img.SetRGB(0, 0, imageutil.RGB{})
	img.SetRGB(1, 0, imageutil.RGB{R: 128, G: 128, B: 128})
	img.SetRGB(2, 0, white)
	buf, err := PixelBufferFromImage(img.RGBA)
	if err != nil {
		t.Fatal(err)
	}

	res := mustConvert(t, buf, ProcessOptions{Width: 2, Sampling: SampleNearest})
	if res.Rows() != 1 {
		t.Fatalf("Expected 1 row, got %d", res.Rows())
	}
	if got := res.Cell(0, 0).Luminance; got != 0 {
		t.Errorf("First cell should read the left edge, got luminance %d", got)
	}
	if got := res.Cell(1, 0).Luminance; got != 255 {
		t.Errorf("Last cell should read the right edge, got luminance %d", got)
	}
}

func TestSamplingModesAgreeOnSolidImages(t *testing.T) {
	t.Parallel()

	buf := solidBuffer(t, 64, 32, imageutil.RGB{R: 90, G: 140, B: 200})
	want := mustConvert(t, buf, ProcessOptions{Width: 16}).PlainText()
	for _, mode := range []SampleMode{SampleNearest, SampleBilinear, SampleLanczos} {
		got := mustConvert(t, buf, ProcessOptions{Width: 16, Sampling: mode}).PlainText()
		if got != want {
			t.Errorf("Sampling %s: expected %q, got %q", mode, want, got)
		}
	}
}

func TestEnhanceStretchesContrast(t *testing.T) {
	t.Parallel()

	img := imageutil.NewRGBAImage(4, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			v := uint8(100)
			if x >= 2 {
				v = 150
			}
			img.SetRGB(x, y, imageutil.RGB{R: v, G: v, B: v})
		}
	}
	buf, err := PixelBufferFromImage(img.RGBA)
	if err != nil {
		t.Fatal(err)
	}

	plain := mustConvert(t, buf, ProcessOptions{Width: 2})
	if got, want := plain.PlainText(), "*="; got != want {
		t.Errorf("Without enhance expected %q, got %q", want, got)
	}

	enhanced := mustConvert(t, buf, ProcessOptions{Width: 2, Enhance: true})
	if got, want := enhanced.PlainText(), "@ "; got != want {
		t.Errorf("With enhance expected %q, got %q", want, got)
	}

	// The source buffer is untouched
	if c := buf.At(0, 0); c.R != 100 {
		t.Errorf("Enhance modified the source buffer: %v", c)
	}
}

func TestEnhanceFlatImageUnchanged(t *testing.T) {
	t.Parallel()

	buf := solidBuffer(t, 8, 8, imageutil.RGB{R: 120, G: 120, B: 120})
	a := mustConvert(t, buf, ProcessOptions{Width: 4})
	b := mustConvert(t, buf, ProcessOptions{Width: 4, Enhance: true})
	if a.PlainText() != b.PlainText() {
		t.Errorf("Flat image should not change: %q vs %q", a.PlainText(), b.PlainText())
	}
}

func TestColorPriority(t *testing.T) {
	t.Parallel()

	buf := solidBuffer(t, 4, 4, imageutil.RGB{R: 10, G: 200, B: 30})

	none := mustConvert(t, buf, ProcessOptions{Width: 4})
	if !none.Cell(0, 0).Color.IsZero() {
		t.Errorf("Expected no color, got %s", none.Cell(0, 0).Color)
	}

	sampled := mustConvert(t, buf, ProcessOptions{Width: 4, UseColor: true})
	if got := sampled.Cell(1, 1).Color.CSS(); got != "#0AC81E" {
		t.Errorf("Expected sampled #0AC81E, got %s", got)
	}

	rainbow := mustConvert(t, buf, ProcessOptions{Width: 4, UseColor: true, Rainbow: true})
	if !rainbow.Cell(0, 0).Color.IsHSL() {
		t.Errorf("Rainbow should take priority, got %s", rainbow.Cell(0, 0).Color)
	}
}

func TestConvertErrors(t *testing.T) {
	t.Parallel()

	buf := solidBuffer(t, 2, 2, white)

	tests := []struct {
		name  string
		conv  *Converter
		buf   *PixelBuffer
		opts  ProcessOptions
		field string
	}{
		{"nil buffer", defaultConverter, nil, ProcessOptions{}, "image"},
		{"empty buffer", defaultConverter, &PixelBuffer{}, ProcessOptions{}, "image"},
		{"empty ramp", defaultConverter, buf, ProcessOptions{Ramp: Ramp{}}, "ramp"},
		{"zero aspect", NewConverter(WithCellAspect(0)), buf, ProcessOptions{}, "cellAspect"},
		{"nan aspect", NewConverter(WithCellAspect(math.NaN())), buf, ProcessOptions{}, "cellAspect"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.conv.Convert(tt.buf, tt.opts)
			if res != nil {
				t.Error("Expected no result on error")
			}
			if !errors.Is(err, ErrInvalidOptions) {
				t.Fatalf("Expected ErrInvalidOptions, got %v", err)
			}
			var optErr *InvalidOptionsError
			if !errors.As(err, &optErr) || optErr.Field != tt.field {
				t.Errorf("Expected field %q, got %v", tt.field, err)
			}
		})
	}
}

func TestUnknownStyleFallsBackToClassic(t *testing.T) {
	t.Parallel()

	buf := gradientBuffer(t, 50, 50)
	a := mustConvert(t, buf, ProcessOptions{Width: 20, Style: "no-such-style"})
	b := mustConvert(t, buf, ProcessOptions{Width: 20, Style: "classic"})
	if a.PlainText() != b.PlainText() {
		t.Error("Unknown style should render like classic")
	}
}

func TestCustomRamp(t *testing.T) {
	t.Parallel()

	buf := solidBuffer(t, 2, 2, imageutil.RGB{})
	res := mustConvert(t, buf, ProcessOptions{Width: 2, Ramp: NewRamp(" X")})
	if got, want := res.PlainText(), "XX\nXX"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestPanicBecomesInternalError(t *testing.T) {
	c := NewConverter(WithEffect(Effect{Name: "broken", Func: func(x, y, w, h int, _ Jitter) Color {
		var table []Color
		return table[x+y+w+h]
	}}))
	if err := c.Err(); err != nil {
		t.Fatalf("WithEffect failed: %v", err)
	}

	buf := solidBuffer(t, 2, 2, white)
	res, err := c.Convert(buf, ProcessOptions{Width: 2, Rainbow: true, Effect: "broken"})
	if res != nil {
		t.Error("Expected no partial result")
	}
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("Expected ErrInternal, got %v", err)
	}
	var internal *InternalComputationError
	if !errors.As(err, &internal) {
		t.Fatalf("Expected *InternalComputationError, got %T", err)
	}
	if len(internal.Stack) == 0 {
		t.Error("Expected a captured stack")
	}
}

func TestConvertContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := defaultConverter.ConvertContext(ctx, gradientBuffer(t, 10, 10), ProcessOptions{Width: 10})
	if res != nil {
		t.Error("Expected no result after cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestConvertConcurrent(t *testing.T) {
	t.Parallel()

	buf := gradientBuffer(t, 120, 80)
	opts := ProcessOptions{Width: 60, UseColor: true, Enhance: true}
	want := mustConvert(t, buf, opts).HTML()

	var wg sync.WaitGroup
	results := make([]string, 10)
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			res, err := Convert(buf, opts)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = res.HTML()
		}(i)
	}
	wg.Wait()

	for i := range results {
		if errs[i] != nil {
			t.Errorf("Conversion %d failed: %v", i, errs[i])
			continue
		}
		if results[i] != want {
			t.Errorf("Conversion %d differs from the sequential result", i)
		}
	}
}

func TestConvertImageAndFile(t *testing.T) {
	t.Parallel()

	img := imageutil.CreateColorBarsImage(64, 32)
	res, err := defaultConverter.ConvertImage(img.RGBA, ProcessOptions{Width: 16})
	if err != nil {
		t.Fatalf("ConvertImage failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "bars.png")
	if err := imageutil.SaveImage(img.RGBA, path); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	fromFile, err := defaultConverter.ConvertFile(path, ProcessOptions{Width: 16})
	if err != nil {
		t.Fatalf("ConvertFile failed: %v", err)
	}
	if fromFile.PlainText() != res.PlainText() {
		t.Error("File and in-memory conversions differ")
	}

	if _, err := defaultConverter.ConvertFile(filepath.Join(t.TempDir(), "missing.png"), ProcessOptions{}); !errors.Is(err, ErrDecode) {
		t.Errorf("Expected ErrDecode for a missing file, got %v", err)
	}
}

func TestDecodeImage(t *testing.T) {
	t.Parallel()

	var data bytes.Buffer
	if err := png.Encode(&data, imageutil.CreateGradientImage(32, 16).RGBA); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}

	buf, err := DecodeImage(data.Bytes())
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if buf.Width() != 32 || buf.Height() != 16 {
		t.Errorf("Expected 32x16, got %dx%d", buf.Width(), buf.Height())
	}

	small := NewConverter(WithMaxBytes(int64(data.Len() - 1)))
	if _, err := small.DecodeImage(data.Bytes()); !errors.Is(err, imageutil.ErrTooLarge) || !errors.Is(err, ErrDecode) {
		t.Errorf("Expected a size ceiling DecodeError, got %v", err)
	}
	if _, err := small.LoadImage(bytes.NewReader(data.Bytes())); !errors.Is(err, imageutil.ErrTooLarge) {
		t.Errorf("Expected ErrTooLarge from LoadImage, got %v", err)
	}

	_, err = DecodeImage([]byte("not an image at all"))
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Errorf("Expected *DecodeError for garbage, got %v", err)
	}
}

func TestDecodeImagePixelCeiling(t *testing.T) {
	t.Parallel()

	var data bytes.Buffer
	if err := png.Encode(&data, image.NewGray(image.Rect(0, 0, 1, 100000))); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}

	_, err := NewConverter(WithMaxPixels(1000)).DecodeImage(data.Bytes())
	if !errors.Is(err, ErrDecode) || !errors.Is(err, imageutil.ErrTooManyPixels) {
		t.Errorf("Expected a pixel ceiling DecodeError, got %v", err)
	}
	_, err = NewConverter(WithMaxPixels(1000)).LoadImage(bytes.NewReader(data.Bytes()))
	if !errors.Is(err, imageutil.ErrTooManyPixels) {
		t.Errorf("Expected ErrTooManyPixels from LoadImage, got %v", err)
	}
	if _, err := DecodeImage(data.Bytes()); err != nil {
		t.Errorf("Default limits should accept the strip, got %v", err)
	}
}

func TestConverterRamps(t *testing.T) {
	t.Parallel()

	c := NewConverter(WithRamp("Stars", " .*"))
	if err := c.Err(); err != nil {
		t.Fatalf("WithRamp failed: %v", err)
	}
	styles := c.Styles()
	if got := styles[len(styles)-1]; got != "stars" {
		t.Errorf("Expected stars listed last, got %v", styles)
	}

	buf := solidBuffer(t, 2, 2, imageutil.RGB{})
	res, err := c.Convert(buf, ProcessOptions{Width: 2, Style: "STARS"})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got, want := res.PlainText(), "**\n**"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	// Other converters never see it
	if got := mustConvert(t, buf, ProcessOptions{Width: 2, Style: "stars"}).PlainText(); got != "@@\n@@" {
		t.Errorf("Default converter should fall back to classic, got %q", got)
	}
	if _, ok := RampFor("stars"); ok {
		t.Error("Converter ramp leaked into the built-in styles")
	}
}

func TestConverterEffects(t *testing.T) {
	t.Parallel()

	teal := Effect{Name: "teal", Func: func(_, _, _, _ int, _ Jitter) Color { return HSLColor(180, 50, 50) }}
	c := NewConverter(WithEffect(teal))
	if names := c.Effects(); names[len(names)-1] != "teal" {
		t.Errorf("Expected teal listed last, got %v", names)
	}

	buf := solidBuffer(t, 2, 2, imageutil.RGB{})
	res, err := c.Convert(buf, ProcessOptions{Width: 2, Rainbow: true, Effect: "teal"})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got := res.Cell(1, 1).Color.CSS(); got != "hsl(180, 50%, 50%)" {
		t.Errorf("Expected the converter effect, got %s", got)
	}

	other := mustConvert(t, buf, ProcessOptions{Width: 2, Rainbow: true, Effect: "teal"})
	if got, want := other.Cell(1, 1).Color, rainbowEffect(1, 1, 2, 2, nil); got != want {
		t.Errorf("Default converter should fall back to rainbow, got %s", got)
	}
}

func TestConverterRejectsInvalidRampsAndEffects(t *testing.T) {
	t.Parallel()

	buf := solidBuffer(t, 2, 2, white)
	tests := []struct {
		name  string
		opt   ConverterOption
		field string
	}{
		{"empty ramp name", WithRamp(" ", "ab"), "style"},
		{"empty ramp", WithRamp("nothing", ""), "ramp"},
		{"built-in ramp", WithRamp("Classic", " X"), "style"},
		{"empty effect name", WithEffect(Effect{Func: rainbowEffect}), "effect"},
		{"nil effect func", WithEffect(Effect{Name: "nil"}), "effect"},
		{"built-in effect", WithEffect(Effect{Name: "fire", Func: rainbowEffect}), "effect"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConverter(tt.opt)
			var optErr *InvalidOptionsError
			if !errors.As(c.Err(), &optErr) || optErr.Field != tt.field {
				t.Errorf("Expected an invalid %s, got %v", tt.field, c.Err())
			}
			if res, err := c.Convert(buf, ProcessOptions{}); res != nil || !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("Expected conversions to fail with ErrInvalidOptions, got %v", err)
			}
		})
	}

	// The built-in classic ramp is unchanged
	if got := mustConvert(t, solidBuffer(t, 1, 1, imageutil.RGB{}), ProcessOptions{Width: 1}).PlainText(); got != "@" {
		t.Errorf("Expected @, got %q", got)
	}
}

func TestTransparencyBecomesWhite(t *testing.T) {
	t.Parallel()

	pix := []uint8{
		0, 0, 0, 0, 0, 0, 0, 255,
	}
	buf, err := NewPixelBuffer(2, 1, pix)
	if err != nil {
		t.Fatalf("NewPixelBuffer failed: %v", err)
	}
	res := mustConvert(t, buf, ProcessOptions{Width: 2})
	if got := res.Cell(0, 0).Glyph; got != ' ' {
		t.Errorf("Transparent pixel should map to the emptiest glyph, got %q", got)
	}
	if got := res.Cell(1, 0).Glyph; got != '@' {
		t.Errorf("Opaque black should map to the densest glyph, got %q", got)
	}
}

func TestNewPixelBufferValidation(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		pix  []uint8
	}{
		{"zero width", 0, 1, nil},
		{"short data", 2, 2, make([]uint8, 15)},
		{"long data", 1, 1, make([]uint8, 5)},
	}
	for _, tt := range tests {
		if _, err := NewPixelBuffer(tt.w, tt.h, tt.pix); !errors.Is(err, ErrInvalidOptions) {
			t.Errorf("%s: expected ErrInvalidOptions, got %v", tt.name, err)
		}
	}
	if _, err := PixelBufferFromImage(nil); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("Expected ErrInvalidOptions for a nil image, got %v", err)
	}
}

func TestPixelBufferIsImmutable(t *testing.T) {
	pix := []uint8{10, 20, 30, 255}
	buf, err := NewPixelBuffer(1, 1, pix)
	if err != nil {
		t.Fatal(err)
	}
	pix[0] = 99
	out := buf.Pix()
	out[1] = 99
	if c := buf.At(0, 0); c.R != 10 || c.G != 20 {
		t.Errorf("Buffer changed through a shared slice: %v", c)
	}
}

func TestPresets(t *testing.T) {
	p, ok := LookupPreset("COLOR")
	if !ok {
		t.Fatal("Expected the color preset")
	}
	if !p.Options.UseColor || !p.Options.Enhance {
		t.Errorf("Color preset should enable color and enhance, got %+v", p.Options)
	}

	d, ok := LookupPreset("detailed")
	if !ok || d.Options.Width != 120 || d.Options.Style != "retro" {
		t.Errorf("Unexpected detailed preset %+v", d)
	}

	if _, ok := LookupPreset("nope"); ok {
		t.Error("Unknown preset should not be found")
	}
	if n := len(Presets()); n != 4 {
		t.Errorf("Expected 4 presets, got %d", n)
	}
}

func TestParseSampleMode(t *testing.T) {
	for _, mode := range []SampleMode{SampleArea, SampleNearest, SampleBilinear, SampleLanczos} {
		got, err := ParseSampleMode(strings.ToUpper(mode.String()))
		if err != nil || got != mode {
			t.Errorf("ParseSampleMode(%q) = %v, %v", mode, got, err)
		}
	}
	if _, err := ParseSampleMode("cubic"); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("Expected ErrInvalidOptions, got %v", err)
	}
}
