// Package imagecodec provides a ports.ImageCodec over the standard image
// decoders and golang.org/x/image.
package imagecodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/user/xcandb/pkg/ports"
)

// ErrUnsupportedFormat is returned for an unknown output format.
var ErrUnsupportedFormat = errors.New("imagecodec: unsupported format")

// Codec implements ports.ImageCodec.
type Codec struct {
	png png.Encoder
}

// New creates a Codec. PNG output uses best compression since saves are
// interactive and rare.
func New() *Codec {
	return &Codec{png: png.Encoder{CompressionLevel: png.BestCompression}}
}

// DecodeImage decodes PNG, JPEG, GIF, BMP, TIFF or WebP data.
func (c *Codec) DecodeImage(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if b := img.Bounds(); b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("decode %s: empty image", format)
	}
	return img, nil
}

// EncodeImage encodes img losslessly in the given format.
func (c *Codec) EncodeImage(img image.Image, format ports.ImageFormat) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatPNG:
		if err := c.png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	case ports.FormatBMP:
		if err := bmp.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode BMP: %w", err)
		}
	case ports.FormatTIFF:
		opts := &tiff.Options{Compression: tiff.Deflate}
		if err := tiff.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode TIFF: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, format)
	}

	return buf.Bytes(), nil
}

// Ensure Codec implements ports.ImageCodec
var _ ports.ImageCodec = (*Codec)(nil)
