// Package camera maps canvas space into viewport space.
package camera

import "image"

// Camera holds the placement of the canvas inside the viewport.
//
// Position is the offset of the canvas's top-left corner from the viewport's
// top-left corner. Panning keeps Position.X within [-canvas width, viewport
// width] and Position.Y within [-canvas height, viewport height], so the
// canvas edge never leaves the viewport by more than the canvas size.
type Camera struct {
	pos      image.Point
	viewport image.Point
	canvas   image.Point
}

// New creates a camera at the origin.
func New(canvasWidth, canvasHeight, viewportWidth, viewportHeight int) *Camera {
	return &Camera{
		viewport: image.Pt(viewportWidth, viewportHeight),
		canvas:   image.Pt(canvasWidth, canvasHeight),
	}
}

// Position returns the canvas offset in viewport pixels.
func (c *Camera) Position() image.Point {
	return c.pos
}

// Viewport returns the viewport size.
func (c *Camera) Viewport() image.Point {
	return c.viewport
}

// CanvasSize returns the canvas size the camera clamps against.
func (c *Camera) CanvasSize() image.Point {
	return c.canvas
}

// Placement returns the canvas rectangle in viewport coordinates.
func (c *Camera) Placement() image.Rectangle {
	return image.Rectangle{Min: c.pos, Max: c.pos.Add(c.canvas)}
}

// SetCanvasSize records a new canvas size. The position is left as is;
// callers that want the canvas centered call MoveToCenter.
func (c *Camera) SetCanvasSize(width, height int) {
	c.canvas = image.Pt(width, height)
}

// MoveRelative pans by (dx, dy) and clamps.
func (c *Camera) MoveRelative(dx, dy int) {
	c.pos = c.pos.Add(image.Pt(dx, dy))
	c.clamp()
}

// MoveToCenter centers the canvas, truncating odd differences toward zero.
func (c *Camera) MoveToCenter() {
	c.pos = image.Pt(
		(c.viewport.X-c.canvas.X)/2,
		(c.viewport.Y-c.canvas.Y)/2,
	)
}

// SetViewport updates the viewport size and clamps.
func (c *Camera) SetViewport(width, height int) {
	c.viewport = image.Pt(width, height)
	c.clamp()
}

// CanvasToViewport maps a canvas point into the viewport.
func (c *Camera) CanvasToViewport(p image.Point) image.Point {
	return p.Add(c.pos)
}

// ViewportToCanvas maps a viewport point onto the canvas.
func (c *Camera) ViewportToCanvas(p image.Point) image.Point {
	return p.Sub(c.pos)
}

func (c *Camera) clamp() {
	c.pos.X = min(max(c.pos.X, -c.canvas.X), c.viewport.X)
	c.pos.Y = min(max(c.pos.Y, -c.canvas.Y), c.viewport.Y)
}
