// Package viewer dispatches window events to the canvas engine.
//
// Button 1 drags a crop rectangle, button 2 pans and button 3 drags a blur
// rectangle. Only one drag is active at a time. Escape cancels a pending
// crop or blur and Ctrl+S saves the canvas under a prompted path.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/ideamans/go-l10n"

	"github.com/user/xcandb/pkg/canvas"
	"github.com/user/xcandb/pkg/geometry"
	"github.com/user/xcandb/pkg/ports"
)

// SavePrompt is the text shown by the save-path prompt.
const SavePrompt = "save as..."

// Canvas is the part of *canvas.Engine the viewer drives.
type Canvas interface {
	Render() error
	Crop(r geometry.Rect) error
	BlurDefault(r geometry.Rect) error
	Save(path string) error
	MoveRelative(dx, dy int)
	MoveToCenter()
	SetViewport(width, height int)
	ViewportToCanvas(p image.Point) image.Point
}

type gesture int

const (
	gestureNone gesture = iota
	gesturePan
	gestureCrop
	gestureBlur
)

// Viewer is the single-threaded event loop around one canvas.
type Viewer struct {
	canvas   Canvas
	events   ports.EventSource
	window   ports.Window
	fs       ports.FileSystem
	prompter ports.Prompter
	notifier ports.Notifier
	logger   ports.Logger
	title    string

	gesture gesture
	start   image.Point
	last    image.Point
	closed  bool
}

// New creates a Viewer. title is used as the notification summary.
func New(
	c Canvas,
	events ports.EventSource,
	window ports.Window,
	fs ports.FileSystem,
	prompter ports.Prompter,
	notifier ports.Notifier,
	logger ports.Logger,
	title string,
) *Viewer {
	return &Viewer{
		canvas:   c,
		events:   events,
		window:   window,
		fs:       fs,
		prompter: prompter,
		notifier: notifier,
		logger:   logger.WithComponent("viewer"),
		title:    title,
	}
}

// Run renders the canvas and handles events until the window is closed or
// ctx is done. A closed window returns nil.
func (v *Viewer) Run(ctx context.Context) error {
	if err := v.canvas.Render(); err != nil {
		return fmt.Errorf("initial render: %w", err)
	}

	for !v.closed {
		ev, err := v.events.NextEvent(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				v.logger.Debug("Event loop cancelled")
				return nil
			}
			return fmt.Errorf("next event: %w", err)
		}
		if err := v.Handle(ev); err != nil {
			return err
		}
	}
	v.logger.Debug("Window closed")
	return nil
}

// Closed reports whether a close request has been handled.
func (v *Viewer) Closed() bool {
	return v.closed
}

// Handle processes one event.
func (v *Viewer) Handle(ev ports.Event) error {
	switch e := ev.(type) {
	case ports.Expose:
		return v.canvas.Render()
	case ports.ConfigureNotify:
		v.canvas.SetViewport(e.Width, e.Height)
		v.canvas.MoveToCenter()
		return nil
	case ports.CloseRequest:
		v.closed = true
		return nil
	case ports.KeyPress:
		return v.keyPress(e)
	case ports.ButtonPress:
		return v.buttonPress(e)
	case ports.MotionNotify:
		return v.motion(image.Pt(e.X, e.Y))
	case ports.ButtonRelease:
		return v.buttonRelease(e)
	default:
		return nil
	}
}

func (v *Viewer) keyPress(e ports.KeyPress) error {
	switch {
	case e.Keysym == ports.KeyEscape:
		if v.gesture != gestureCrop && v.gesture != gestureBlur {
			return nil
		}
		v.gesture = gestureNone
		if err := v.window.SetCursor(ports.CursorArrow); err != nil {
			return err
		}
		return v.canvas.Render()
	case e.Control && e.Keysym == ports.KeyS:
		v.save()
		return nil
	default:
		return nil
	}
}

func (v *Viewer) buttonPress(e ports.ButtonPress) error {
	if v.gesture != gestureNone {
		return nil
	}

	var cursor ports.Cursor
	switch e.Button {
	case ports.ButtonLeft:
		v.gesture, cursor = gestureCrop, ports.CursorCrosshair
	case ports.ButtonMiddle:
		v.gesture, cursor = gesturePan, ports.CursorHand
	case ports.ButtonRight:
		v.gesture, cursor = gestureBlur, ports.CursorCrosshair
	default:
		return nil
	}
	v.start = image.Pt(e.X, e.Y)
	v.last = v.start
	return v.window.SetCursor(cursor)
}

func (v *Viewer) motion(p image.Point) error {
	switch v.gesture {
	case gesturePan:
		d := p.Sub(v.last)
		v.last = p
		v.canvas.MoveRelative(d.X, d.Y)
		return v.canvas.Render()
	case gestureCrop, gestureBlur:
		v.last = p
		if err := v.canvas.Render(); err != nil {
			return err
		}
		return v.window.DrawSelection(image.Rectangle{Min: v.start, Max: v.last}.Canon())
	default:
		return nil
	}
}

func (v *Viewer) buttonRelease(e ports.ButtonRelease) error {
	want := map[gesture]int{
		gesturePan:  ports.ButtonMiddle,
		gestureCrop: ports.ButtonLeft,
		gestureBlur: ports.ButtonRight,
	}[v.gesture]
	if v.gesture == gestureNone || e.Button != want {
		return nil
	}

	g := v.gesture
	v.gesture = gestureNone
	v.last = image.Pt(e.X, e.Y)
	if err := v.window.SetCursor(ports.CursorArrow); err != nil {
		return err
	}

	switch g {
	case gesturePan:
		return nil
	case gestureCrop:
		err := v.canvas.Crop(v.selection())
		if v.recoverable(err) {
			return err
		}
		v.canvas.MoveToCenter()
	case gestureBlur:
		if err := v.canvas.BlurDefault(v.selection()); v.recoverable(err) {
			return err
		}
	}
	return v.canvas.Render()
}

// selection returns the dragged rectangle in canvas coordinates.
func (v *Viewer) selection() geometry.Rect {
	r := geometry.FromPoints(v.start, v.last)
	origin := v.canvas.ViewportToCanvas(image.Pt(r.X, r.Y))
	r.X, r.Y = origin.X, origin.Y
	return r
}

// recoverable logs allocation failures and reports whether err must stop
// the loop.
func (v *Viewer) recoverable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, canvas.ErrResourceExhausted) {
		v.logger.Warn("Edit skipped: %v", err)
		v.notify(l10n.T("Not enough memory for this edit"))
		return false
	}
	return true
}

// save prompts for a path and writes the canvas there. Every outcome is
// reported through the notifier; none of them stops the loop.
func (v *Viewer) save() {
	text, ok, err := v.prompter.Prompt(SavePrompt)
	if err != nil {
		v.logger.Warn("Prompt failed: %v", err)
		v.notify(l10n.T("Could not ask for a file name"))
		return
	}
	if !ok {
		v.logger.Debug("Save cancelled")
		return
	}

	path, err := ExpandPath(text)
	if err != nil {
		v.logger.Warn("Cannot expand %s: %v", text, err)
		v.notify(l10n.F("Could not expand path %s", text))
		return
	}
	if !v.fs.Writable(path) {
		v.logger.Warn("Not writable: %s", path)
		v.notify(l10n.F("Cannot save to %s", path))
		return
	}
	if err := v.canvas.Save(path); err != nil {
		v.logger.Error("Save failed: %v", err)
		v.notify(l10n.F("Saving to %s failed", path))
		return
	}
	v.logger.Info("Saved %s", path)
	v.notify(l10n.F("Saved image to %s", path))
}

func (v *Viewer) notify(body string) {
	if err := v.notifier.Notify(v.title, body); err != nil {
		v.logger.Warn("Notification failed: %v", err)
	}
}

// Ensure *canvas.Engine can be driven by a Viewer
var _ Canvas = (*canvas.Engine)(nil)
