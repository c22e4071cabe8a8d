// Package pixbuf provides the packed truecolor pixel buffer edited by the canvas.
package pixbuf

import (
	"fmt"
	"image"
	"image/color"
)

// White is the packed value stored for fully transparent source pixels.
const White uint32 = 0xffffff

// Buffer is a row-major array of packed 0x00RRGGBB pixels.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint32
}

// New allocates a zeroed width x height buffer.
func New(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
	}
}

// Wrap uses pix as the storage of a width x height buffer.
// pix may be longer than needed; the excess is ignored.
func Wrap(width, height int, pix []uint32) (*Buffer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("pixbuf: invalid size %dx%d", width, height)
	}
	if len(pix) < width*height {
		return nil, fmt.Errorf("pixbuf: storage holds %d pixels, need %d", len(pix), width*height)
	}
	return &Buffer{Width: width, Height: height, Pix: pix[:width*height]}, nil
}

// Pack combines 8-bit channels into a packed pixel.
func Pack(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Unpack splits a packed pixel into its channels.
func Unpack(c uint32) (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// At returns the packed pixel at (x, y).
func (b *Buffer) At(x, y int) uint32 {
	return b.Pix[y*b.Width+x]
}

// Set stores a packed pixel at (x, y).
func (b *Buffer) Set(x, y int, c uint32) {
	b.Pix[y*b.Width+x] = c
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c uint32) {
	for i := range b.Pix {
		b.Pix[i] = c
	}
}

// Row returns the pixels of row y.
func (b *Buffer) Row(y int) []uint32 {
	return b.Pix[y*b.Width : (y+1)*b.Width]
}

// Bytes returns the size of the pixel data in bytes, 4 per pixel.
func (b *Buffer) Bytes() int {
	return b.Width * b.Height * 4
}

// Clone returns a deep copy backed by Go memory.
func (b *Buffer) Clone() *Buffer {
	c := New(b.Width, b.Height)
	copy(c.Pix, b.Pix)
	return c
}

// CopyFrom copies src into b. Both must have the same dimensions.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if b.Width != src.Width || b.Height != src.Height {
		return fmt.Errorf("pixbuf: size mismatch %dx%d vs %dx%d", b.Width, b.Height, src.Width, src.Height)
	}
	copy(b.Pix, src.Pix)
	return nil
}

// Decode converts img into dst, which must match the image size.
// Fully transparent pixels become White; any other pixel keeps its
// non-premultiplied RGB and loses its alpha.
func Decode(img image.Image, dst *Buffer) error {
	bounds := img.Bounds()
	if bounds.Dx() != dst.Width || bounds.Dy() != dst.Height {
		return fmt.Errorf("pixbuf: image is %dx%d, buffer is %dx%d",
			bounds.Dx(), bounds.Dy(), dst.Width, dst.Height)
	}

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < dst.Height; y++ {
			row := nrgba.Pix[(y+bounds.Min.Y-nrgba.Rect.Min.Y)*nrgba.Stride:]
			off := (bounds.Min.X - nrgba.Rect.Min.X) * 4
			out := dst.Row(y)
			for x := range out {
				p := row[off+x*4 : off+x*4+4 : off+x*4+4]
				out[x] = packOpaque(p[0], p[1], p[2], p[3])
			}
		}
		return nil
	}

	for y := 0; y < dst.Height; y++ {
		out := dst.Row(y)
		for x := range out {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			out[x] = packOpaque(c.R, c.G, c.B, c.A)
		}
	}
	return nil
}

func packOpaque(r, g, b, a uint8) uint32 {
	if a == 0 {
		return White
	}
	return Pack(r, g, b)
}

// Image expands the buffer to an opaque NRGBA image.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		dst := img.Pix[y*img.Stride:]
		for x, c := range b.Row(y) {
			r, g, bl := Unpack(c)
			dst[x*4+0] = r
			dst[x*4+1] = g
			dst[x*4+2] = bl
			dst[x*4+3] = 0xff
		}
	}
	return img
}
