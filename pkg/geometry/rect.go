// Package geometry implements the rectangle edits applied to a pixel buffer.
package geometry

import "image"

// Rect is an edit rectangle in canvas coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// FromPoints returns the rectangle spanned by two corner points.
func FromPoints(a, b image.Point) Rect {
	x, y := min(a.X, b.X), min(a.Y, b.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  max(a.X, b.X) - x,
		Height: max(a.Y, b.Y) - y,
	}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width < 1 || r.Height < 1
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Clamp fits r into a width x height buffer.
// A negative origin shrinks the extent by the overflow; an extent reaching
// the far edge is cut to end there. The result may be empty.
func Clamp(r Rect, width, height int) Rect {
	if r.X < 0 {
		r.Width += r.X
		r.X = 0
	}
	if r.Y < 0 {
		r.Height += r.Y
		r.Y = 0
	}
	if r.X+r.Width >= width {
		r.Width = width - r.X
	}
	if r.Y+r.Height >= height {
		r.Height = height - r.Y
	}
	return r
}
