package engine

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
)

// JPEGEncoder implements ImageEncoder with the standard library JPEG encoder.
type JPEGEncoder struct{}

// Encode compresses the rendered page at the given quality factor (1-100).
func (JPEGEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("jpeg encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}
