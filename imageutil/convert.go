package imageutil

import "image/color"

// Luminance returns the BT.601 luma of an RGB triple:
// Y = 0.299*R + 0.587*G + 0.114*B, rounded to the nearest integer.
func Luminance(r, g, b uint8) uint8 {
	// Integer math scaled by 1000
	lum := (299*int(r) + 587*int(g) + 114*int(b) + 500) / 1000
	if lum > 255 {
		lum = 255
	}
	return uint8(lum)
}

// ToGrayscale converts an RGBA image to grayscale using the standard
// luminance formula. Alpha is ignored; flatten the image first if it
// carries transparency.
func ToGrayscale(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.RGBAAt(x, y)
			gray.Gray.SetGray(x, y, color.Gray{Y: Luminance(c.R, c.G, c.B)})
		}
	}

	return gray
}

// Histogram counts how many pixels of a grayscale image fall on each of
// the 256 luminance levels.
func Histogram(gray *GrayImage) [256]int {
	var hist [256]int
	width, height := gray.Width(), gray.Height()
	for y := 0; y < height; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+width]
		for _, v := range row {
			hist[v]++
		}
	}
	return hist
}
