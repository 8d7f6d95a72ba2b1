package imageutil

import (
	"image"
	"math"

	"github.com/disintegration/gift"
)

// Percentiles used by AutoContrast.
const (
	DefaultLowPercentile  = 5.0
	DefaultHighPercentile = 95.0
)

// StretchBounds is the luminance window that a contrast stretch maps
// onto the full 0-255 range.
type StretchBounds struct {
	Low, High uint8
}

// Flat reports whether the window is empty, in which case a stretch
// would divide by zero and is skipped.
func (b StretchBounds) Flat() bool {
	return b.High <= b.Low
}

// PercentileBounds scans the whole image once and returns the luminance
// levels at the low and high percentiles (0-100).
func PercentileBounds(img *RGBAImage, lowPct, highPct float64) StretchBounds {
	hist := Histogram(ToGrayscale(img))
	total := img.Width() * img.Height()
	return StretchBounds{
		Low:  percentileLevel(hist, total, lowPct),
		High: percentileLevel(hist, total, highPct),
	}
}

// percentileLevel returns the smallest level whose cumulative count
// reaches pct percent of total.
func percentileLevel(hist [256]int, total int, pct float64) uint8 {
	if total == 0 {
		return 0
	}
	rank := int(math.Ceil(pct / 100 * float64(total)))
	if rank < 1 {
		rank = 1
	}
	if rank > total {
		rank = total
	}
	cum := 0
	for level, n := range hist {
		cum += n
		if cum >= rank {
			return uint8(level)
		}
	}
	return 255
}

// ContrastStretch returns a copy of img with every color channel
// remapped linearly so that [b.Low, b.High] covers [0, 255]. Values
// outside the window clip. A flat window returns an unmodified copy.
func ContrastStretch(img *RGBAImage, b StretchBounds) *RGBAImage {
	if b.Flat() {
		return img.Clone()
	}
	low := float32(b.Low) / 255
	scale := 255 / float32(int(b.High)-int(b.Low))

	g := gift.New(gift.ColorFunc(func(r0, g0, b0, a0 float32) (r, g, b, a float32) {
		return stretchChannel(r0, low, scale), stretchChannel(g0, low, scale),
			stretchChannel(b0, low, scale), a0
	}))
	g.SetParallelization(false)

	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img.RGBA)
	return &RGBAImage{RGBA: dst}
}

func stretchChannel(v, low, scale float32) float32 {
	v = (v - low) * scale
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// AutoContrast applies ContrastStretch using the 5th and 95th
// luminance percentiles of img.
func AutoContrast(img *RGBAImage) *RGBAImage {
	return ContrastStretch(img, PercentileBounds(img, DefaultLowPercentile, DefaultHighPercentile))
}
