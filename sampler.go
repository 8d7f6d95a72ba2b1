package asciify

import (
	"math"

	"github.com/wbrown/asciify/imageutil"
)

// sampler reduces the source region of cell (cx, cy) to one color.
type sampler interface {
	sample(cx, cy int) imageutil.RGB
}

func newSampler(img *imageutil.RGBAImage, cols, rows int, mode SampleMode) sampler {
	switch mode {
	case SampleNearest:
		return &nearestSampler{img: img, cols: cols, rows: rows}
	case SampleBilinear:
		return &gridSampler{img: imageutil.Resize(img, cols, rows, imageutil.InterpolationLinear)}
	case SampleLanczos:
		return &gridSampler{img: imageutil.Resize(img, cols, rows, imageutil.InterpolationLanczos)}
	default:
		return &areaSampler{img: img, cols: cols, rows: rows}
	}
}

// cellSpan returns the half-open source range [lo, hi) covered by cell c
// of n across size pixels. Spans tile the axis and are never empty.
func cellSpan(c, n, size int) (lo, hi int) {
	lo = c * size / n
	hi = (c + 1) * size / n
	if hi <= lo {
		hi = lo + 1
	}
	if hi > size {
		hi = size
		lo = hi - 1
	}
	return lo, hi
}

// areaSampler averages every pixel of the cell's span.
type areaSampler struct {
	img        *imageutil.RGBAImage
	cols, rows int
}

func (s *areaSampler) sample(cx, cy int) imageutil.RGB {
	x0, x1 := cellSpan(cx, s.cols, s.img.Width())
	y0, y1 := cellSpan(cy, s.rows, s.img.Height())

	var r, g, b int
	for y := y0; y < y1; y++ {
		row := s.img.Pix[y*s.img.Stride:]
		for x := x0; x < x1; x++ {
			r += int(row[x*4])
			g += int(row[x*4+1])
			b += int(row[x*4+2])
		}
	}
	n := (x1 - x0) * (y1 - y0)
	return imageutil.RGB{
		R: uint8((r + n/2) / n),
		G: uint8((g + n/2) / n),
		B: uint8((b + n/2) / n),
	}
}

// nearestSampler picks one pixel per cell, pinning the first and last
// cells to the image edges.
type nearestSampler struct {
	img        *imageutil.RGBAImage
	cols, rows int
}

func (s *nearestSampler) sample(cx, cy int) imageutil.RGB {
	return s.img.GetRGB(edgeMapped(cx, s.cols, s.img.Width()), edgeMapped(cy, s.rows, s.img.Height()))
}

// edgeMapped maps cell c of n onto round(c*(size-1)/(n-1)). A single
// cell reads the middle pixel.
func edgeMapped(c, n, size int) int {
	if n <= 1 {
		return (size - 1) / 2
	}
	return int(math.Round(float64(c) * float64(size-1) / float64(n-1)))
}

// gridSampler reads from an image already resampled to the grid size.
type gridSampler struct {
	img *imageutil.RGBAImage
}

func (s *gridSampler) sample(cx, cy int) imageutil.RGB {
	return s.img.GetRGB(cx, cy)
}
