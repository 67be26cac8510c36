// Package media validates uploaded food photos before they reach the vision
// model.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
)

var ErrUnsupported = errors.New("unsupported image")

// Image is a decoded-and-verified upload.
type Image struct {
	Data   []byte
	MIME   string
	Format string // "jpeg" or "png"
	Width  int
	Height int
}

var accepted = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
}

// Decode sniffs the content type and checks that the header decodes.
func Decode(data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, fmt.Errorf("%w: empty file", ErrUnsupported)
	}

	mt := mimetype.Detect(data)
	format, ok := accepted[mt.String()]
	if !ok {
		return Image{}, fmt.Errorf("%w: %s", ErrUnsupported, mt.String())
	}

	cfg, decoded, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if decoded != format {
		return Image{}, fmt.Errorf("%w: content is %s but decodes as %s", ErrUnsupported, format, decoded)
	}

	return Image{
		Data:   data,
		MIME:   mt.String(),
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
