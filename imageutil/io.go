package imageutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Default decoding ceilings.
const (
	DefaultMaxBytes  int64 = 10 << 20
	DefaultMaxPixels int64 = 40_000_000
)

// Limits bounds what a decode may consume. A non-positive field
// disables that check.
type Limits struct {
	// MaxBytes caps the encoded input size.
	MaxBytes int64
	// MaxPixels caps width*height of the decoded image.
	MaxPixels int64
}

// DefaultLimits are the ceilings used when nothing else is configured.
var DefaultLimits = Limits{MaxBytes: DefaultMaxBytes, MaxPixels: DefaultMaxPixels}

var (
	// ErrTooLarge is returned when the encoded image exceeds the ceiling.
	ErrTooLarge = errors.New("image exceeds size limit")
	// ErrTooManyPixels is returned when the decoded dimensions exceed
	// the pixel ceiling.
	ErrTooManyPixels = errors.New("image exceeds pixel limit")
	// ErrEmptyImage is returned when a decoded image has no pixels.
	ErrEmptyImage = errors.New("image has zero width or height")
)

// Decoder turns encoded image bytes into an image.Image and reports the
// format name it recognized.
type Decoder interface {
	Decode(data []byte) (image.Image, string, error)
}

// StdDecoder decodes through the image package registry: PNG, JPEG and
// GIF from the standard library, BMP, TIFF and WebP from x/image.
type StdDecoder struct{}

// Decode implements Decoder.
func (StdDecoder) Decode(data []byte) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(data))
}

// ReadLimited reads all of r, failing with ErrTooLarge once more than
// maxBytes have been read. A non-positive maxBytes disables the check.
func ReadLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxBytes)
	}
	return data, nil
}

// Decode reads an encoded image from r and returns it flattened onto a
// white background. A nil dec means StdDecoder.
func Decode(r io.Reader, lim Limits, dec Decoder) (*RGBAImage, string, error) {
	data, err := ReadLimited(r, lim.MaxBytes)
	if err != nil {
		return nil, "", err
	}
	return DecodeBytes(data, lim, dec)
}

// DecodeBytes decodes an in-memory image within lim. Dimensions are
// read from the header first, so an oversized image fails before its
// pixels are allocated.
func DecodeBytes(data []byte, lim Limits, dec Decoder) (*RGBAImage, string, error) {
	if lim.MaxBytes > 0 && int64(len(data)) > lim.MaxBytes {
		return nil, "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), lim.MaxBytes)
	}
	// Formats only a custom decoder understands have no config reader;
	// they are checked after decoding instead.
	if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		if err := checkPixels(cfg.Width, cfg.Height, lim.MaxPixels); err != nil {
			return nil, format, err
		}
	}

	if dec == nil {
		dec = StdDecoder{}
	}
	img, format, err := dec.Decode(data)
	if err != nil {
		return nil, format, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, format, ErrEmptyImage
	}
	if err := checkPixels(b.Dx(), b.Dy(), lim.MaxPixels); err != nil {
		return nil, format, err
	}
	return FlattenOnWhite(img), format, nil
}

func checkPixels(w, h int, maxPixels int64) error {
	if maxPixels > 0 && int64(w)*int64(h) > maxPixels {
		return fmt.Errorf("%w: %dx%d, limit %d pixels", ErrTooManyPixels, w, h, maxPixels)
	}
	return nil
}

// LoadImage loads an image from the specified path.
func LoadImage(path string, lim Limits, dec Decoder) (*RGBAImage, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return Decode(f, lim, dec)
}

// SaveImage saves an image to the specified path.
// Format is determined by file extension (png, jpg/jpeg, gif).
func SaveImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".gif":
		return gif.Encode(f, img, nil)
	default:
		// Default to PNG
		return png.Encode(f, img)
	}
}
