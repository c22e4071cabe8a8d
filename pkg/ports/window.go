package ports

import (
	"context"
	"image"
)

// Event is a window event delivered by an EventSource.
type Event interface{}

// Expose asks for the window contents to be redrawn.
type Expose struct{}

// KeyPress carries the keysym of a pressed key.
type KeyPress struct {
	Keysym  uint32
	Control bool
}

// ButtonPress is a mouse button press in window coordinates.
type ButtonPress struct {
	Button int
	X, Y   int
}

// ButtonRelease is a mouse button release in window coordinates.
type ButtonRelease struct {
	Button int
	X, Y   int
}

// MotionNotify reports pointer movement in window coordinates.
type MotionNotify struct {
	X, Y int
}

// ConfigureNotify reports the new window size.
type ConfigureNotify struct {
	Width, Height int
}

// CloseRequest is sent when the window manager asks the window to close.
type CloseRequest struct{}

// Keysyms used by the viewer.
const (
	KeyEscape uint32 = 0xff1b
	KeyS      uint32 = 0x0073
)

// Mouse buttons.
const (
	ButtonLeft   = 1
	ButtonMiddle = 2
	ButtonRight  = 3
)

// Cursor selects one of the window's pointer shapes.
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorHand
	CursorCrosshair
)

// EventSource delivers window events in order.
type EventSource interface {
	// NextEvent blocks until the next event arrives or ctx is done.
	NextEvent(ctx context.Context) (Event, error)
}

// Window exposes the window operations the viewer needs besides drawing the canvas.
type Window interface {
	// SetCursor changes the pointer shape over the window.
	SetCursor(c Cursor) error

	// DrawSelection outlines r with a dashed rectangle.
	DrawSelection(r image.Rectangle) error
}
