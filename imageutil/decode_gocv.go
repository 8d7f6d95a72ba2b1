//go:build gocv

package imageutil

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
)

// GocvDecoder decodes through OpenCV's imdecode. It accepts the formats
// the linked OpenCV build supports, which usually adds JPEG 2000, PPM
// and OpenEXR to the pure Go set. Build with -tags gocv.
type GocvDecoder struct {
	// Flags is passed to IMDecode. Zero means gocv.IMReadColor.
	Flags gocv.IMReadFlag
}

// Decode implements Decoder.
func (d GocvDecoder) Decode(data []byte) (image.Image, string, error) {
	flags := d.Flags
	if flags == 0 {
		flags = gocv.IMReadColor
	}
	mat, err := gocv.IMDecode(data, flags)
	if err != nil {
		return nil, "", err
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, "", errors.New("opencv could not decode image")
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, "", err
	}
	return img, "opencv", nil
}
