package geometry

import "github.com/user/xcandb/pkg/pixbuf"

// Crop copies the clamped rectangle of src into a new buffer.
// ok is false when the clamped rectangle is empty or covers the whole
// buffer; src is never modified.
func Crop(src *pixbuf.Buffer, r Rect) (dst *pixbuf.Buffer, ok bool) {
	r = Clamp(r, src.Width, src.Height)
	if r.Empty() || (r.Width == src.Width && r.Height == src.Height) {
		return nil, false
	}

	dst = pixbuf.New(r.Width, r.Height)
	for dy := 0; dy < r.Height; dy++ {
		from := (r.Y+dy)*src.Width + r.X
		copy(dst.Row(dy), src.Pix[from:from+r.Width])
	}
	return dst, true
}
