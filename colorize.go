package asciify

import "github.com/wbrown/asciify/imageutil"

// colorizer picks the color of one cell.
type colorizer func(x, y, cols, rows int, sampled imageutil.RGB) Color

// newColorizer applies the priority rainbow > sampled color > none.
func newColorizer(opts resolvedOptions) colorizer {
	switch {
	case opts.Rainbow:
		effect := opts.effect.Func
		rnd := opts.Jitter
		if rnd == nil {
			rnd = newJitter()
		}
		return func(x, y, cols, rows int, _ imageutil.RGB) Color {
			return effect(x, y, cols, rows, rnd)
		}
	case opts.UseColor:
		return func(_, _, _, _ int, sampled imageutil.RGB) Color {
			return RGBColor(sampled.R, sampled.G, sampled.B)
		}
	default:
		return func(_, _, _, _ int, _ imageutil.RGB) Color {
			return Color{}
		}
	}
}
