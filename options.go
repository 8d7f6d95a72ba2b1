package asciify

import (
	"fmt"
	"strings"
)

// Width limits applied to ProcessOptions.Width.
const (
	DefaultWidth = 80
	MaxWidth     = 400
)

// SampleMode selects how a cell's source region is reduced to one color.
type SampleMode int

const (
	// SampleArea averages every pixel in the cell's region.
	SampleArea SampleMode = iota
	// SampleNearest takes a single pixel; the first and last cells land
	// exactly on the image edges.
	SampleNearest
	// SampleBilinear resamples with a bilinear filter.
	SampleBilinear
	// SampleLanczos resamples with a Lanczos-3 filter.
	SampleLanczos
)

var sampleModeNames = []string{"area", "nearest", "bilinear", "lanczos"}

func (m SampleMode) String() string {
	if m < 0 || int(m) >= len(sampleModeNames) {
		return fmt.Sprintf("SampleMode(%d)", int(m))
	}
	return sampleModeNames[m]
}

// ParseSampleMode resolves a sampling mode by name.
func ParseSampleMode(name string) (SampleMode, error) {
	for i, n := range sampleModeNames {
		if strings.EqualFold(n, name) {
			return SampleMode(i), nil
		}
	}
	return SampleArea, &InvalidOptionsError{Field: "sampling", Value: name, Reason: "unknown sampling mode"}
}

// Jitter supplies the random component of non-deterministic effects.
// *rand.Rand from math/rand/v2 satisfies it. A Jitter is called from the
// converting goroutine without locking, so one value must not be shared
// by concurrent conversions.
type Jitter interface {
	Float64() float64
}

// ProcessOptions configures a single conversion. The zero value converts
// at DefaultWidth with the classic ramp and no color.
type ProcessOptions struct {
	// Width is the number of character columns. Zero selects the
	// converter's default; other values are clamped to [1, max].
	Width int
	// Style names a built-in or converter ramp. Unknown names fall back
	// to classic.
	Style string
	// Ramp overrides Style when non-nil. An empty non-nil ramp is
	// rejected.
	Ramp Ramp
	// UseColor attaches each cell's sampled color.
	UseColor bool
	// Rainbow attaches a synthetic color from Effect, ignoring the image.
	// It takes priority over UseColor.
	Rainbow bool
	// Effect names the rainbow effect. Empty selects "rainbow".
	Effect string
	// Invert mirrors the brightness mapping for a light-on-dark look.
	Invert bool
	// Enhance stretches contrast between the 5th and 95th luminance
	// percentiles before sampling.
	Enhance bool
	// Sampling selects the cell reduction strategy.
	Sampling SampleMode
	// Jitter feeds effects with a random component. Nil uses a
	// per-conversion generator. Do not share one across goroutines.
	Jitter Jitter
}

// resolvedOptions is ProcessOptions after clamping and lookups.
type resolvedOptions struct {
	ProcessOptions
	ramp   Ramp
	effect Effect
}

func (c *Converter) resolve(opts ProcessOptions) (resolvedOptions, error) {
	r := resolvedOptions{ProcessOptions: opts}

	switch {
	case r.Width == 0:
		r.Width = c.defaultWidth
	case r.Width < 1:
		r.Width = 1
	}
	if r.Width > c.maxWidth {
		r.Width = c.maxWidth
	}
	if r.Width < 1 {
		return r, &InvalidOptionsError{Field: "width", Value: opts.Width, Reason: "no usable column count"}
	}

	if opts.Ramp != nil {
		if len(opts.Ramp) == 0 {
			return r, &InvalidOptionsError{Field: "ramp", Value: `""`, Reason: "ramp has no glyphs"}
		}
		r.ramp = opts.Ramp
	} else {
		r.ramp = c.lookupRamp(opts.Style)
	}

	if r.Sampling < SampleArea || r.Sampling > SampleLanczos {
		r.Sampling = SampleArea
	}

	if r.Rainbow {
		r.effect = c.lookupEffect(opts.Effect)
	}
	return r, nil
}

// Preset is a named starting configuration.
type Preset struct {
	Name    string
	Vibe    string
	Options ProcessOptions
}

var presets = []Preset{
	{Name: "classic", Vibe: "clean and simple", Options: ProcessOptions{
		Width: 80, Style: "classic"}},
	{Name: "color", Vibe: "full spectrum", Options: ProcessOptions{
		Width: 80, Style: "classic", UseColor: true, Enhance: true}},
	{Name: "inverted", Vibe: "light on dark", Options: ProcessOptions{
		Width: 80, Style: "classic", Invert: true}},
	{Name: "detailed", Vibe: "maximum texture", Options: ProcessOptions{
		Width: 120, Style: "retro"}},
}

// Presets returns the built-in presets.
func Presets() []Preset {
	return append([]Preset(nil), presets...)
}

// LookupPreset finds a preset by case-insensitive name.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}
