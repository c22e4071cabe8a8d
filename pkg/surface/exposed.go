package surface

import "image"

// Exposed returns the viewport areas not covered by the canvas placed at
// placement, in the order top, bottom, left, right. Empty strips are
// omitted; strips may overlap in the corners.
func Exposed(placement image.Rectangle, viewport image.Point) []image.Rectangle {
	view := image.Rectangle{Max: viewport}
	candidates := [4]image.Rectangle{
		image.Rect(0, 0, viewport.X, placement.Min.Y),
		image.Rect(0, placement.Max.Y, viewport.X, viewport.Y),
		image.Rect(0, 0, placement.Min.X, viewport.Y),
		image.Rect(placement.Max.X, 0, viewport.X, viewport.Y),
	}

	strips := make([]image.Rectangle, 0, len(candidates))
	for _, c := range candidates {
		// image.Rect swaps inverted bounds, which then fall outside view.
		if r := c.Intersect(view); !r.Empty() {
			strips = append(strips, r)
		}
	}
	return strips
}
