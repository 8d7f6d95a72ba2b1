package asciify

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/wbrown/asciify/imageutil"
)

// PixelBuffer is a decoded, fully opaque RGBA image. It is immutable:
// nothing in the package writes to it after construction, and accessors
// return copies.
type PixelBuffer struct {
	img *imageutil.RGBAImage
}

// NewPixelBuffer builds a PixelBuffer from non-premultiplied RGBA
// tuples in row-major order. Partially transparent pixels are
// composited onto white. The slice is copied.
func NewPixelBuffer(width, height int, pix []uint8) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, &InvalidOptionsError{
			Field:  "image",
			Value:  fmt.Sprintf("%dx%d", width, height),
			Reason: "width and height must be positive",
		}
	}
	if len(pix) != width*height*4 {
		return nil, &InvalidOptionsError{
			Field:  "image",
			Value:  len(pix),
			Reason: fmt.Sprintf("expected %d bytes of RGBA data", width*height*4),
		}
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(nrgba.Pix, pix)
	return &PixelBuffer{img: imageutil.FlattenOnWhite(nrgba)}, nil
}

// PixelBufferFromImage copies an already decoded image into a
// PixelBuffer, compositing transparency onto white.
func PixelBufferFromImage(img image.Image) (*PixelBuffer, error) {
	if img == nil {
		return nil, &InvalidOptionsError{Field: "image", Value: nil, Reason: "image is nil"}
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &InvalidOptionsError{
			Field:  "image",
			Value:  fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
			Reason: "width and height must be positive",
		}
	}
	return &PixelBuffer{img: imageutil.FlattenOnWhite(img)}, nil
}

// Width returns the image width in pixels.
func (b *PixelBuffer) Width() int {
	return b.img.Width()
}

// Height returns the image height in pixels.
func (b *PixelBuffer) Height() int {
	return b.img.Height()
}

// At returns the pixel at (x, y).
func (b *PixelBuffer) At(x, y int) color.RGBA {
	return b.img.RGBAAt(x, y)
}

// Pix returns a copy of the RGBA data in row-major order.
func (b *PixelBuffer) Pix() []uint8 {
	out := make([]uint8, b.Width()*b.Height()*4)
	for y := 0; y < b.Height(); y++ {
		row := b.img.Pix[y*b.img.Stride : y*b.img.Stride+b.Width()*4]
		copy(out[y*b.Width()*4:], row)
	}
	return out
}

// DecodeImage decodes an encoded image held in memory. Input over the
// byte or pixel ceiling fails with a DecodeError.
func (c *Converter) DecodeImage(data []byte) (*PixelBuffer, error) {
	img, format, err := imageutil.DecodeBytes(data, c.limits, c.decoder)
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	return &PixelBuffer{img: img}, nil
}

// LoadImage reads and decodes an image from r, enforcing the byte
// ceiling while reading and the pixel ceiling before decoding.
func (c *Converter) LoadImage(r io.Reader) (*PixelBuffer, error) {
	img, format, err := imageutil.Decode(r, c.limits, c.decoder)
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	return &PixelBuffer{img: img}, nil
}

// LoadImageFile reads and decodes the image at path.
func (c *Converter) LoadImageFile(path string) (*PixelBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	defer f.Close()

	return c.LoadImage(f)
}

// DecodeImage decodes data with the default converter.
func DecodeImage(data []byte) (*PixelBuffer, error) {
	return defaultConverter.DecodeImage(data)
}

// LoadImage decodes an image from r with the default converter.
func LoadImage(r io.Reader) (*PixelBuffer, error) {
	return defaultConverter.LoadImage(r)
}

// LoadImageFile decodes the image at path with the default converter.
func LoadImageFile(path string) (*PixelBuffer, error) {
	return defaultConverter.LoadImageFile(path)
}
