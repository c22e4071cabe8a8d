// Package canvas implements the canvas engine: one loaded image, its
// on-screen surface and the camera placing it in the window.
package canvas

import (
	"errors"
	"fmt"
	"image"

	"github.com/user/xcandb/pkg/camera"
	"github.com/user/xcandb/pkg/geometry"
	"github.com/user/xcandb/pkg/pixbuf"
	"github.com/user/xcandb/pkg/ports"
	"github.com/user/xcandb/pkg/surface"
)

// Env holds the external collaborators of an Engine.
type Env struct {
	Display      ports.Display
	SharedMemory ports.SharedMemory // nil disables shared surfaces
	Codec        ports.ImageCodec
	FileSystem   ports.FileSystem
	Logger       ports.Logger
}

// Engine owns the pixel buffer, its presentation surface and the camera.
// It is not safe for concurrent use; the viewer is its only caller.
type Engine struct {
	env    Env
	opts   Options
	logger ports.Logger
	blur   geometry.Blurrer

	buf  *pixbuf.Buffer
	surf surface.Surface
	mode surface.Mode
	cam  *camera.Camera
}

// Load decodes the image at path into a new surface sized to it.
// The camera starts at the origin of a viewport of the given size.
func Load(path string, viewport image.Point, env Env, opts Options) (*Engine, error) {
	logger := env.Logger.WithComponent("canvas")

	img, err := ReadImage(env.FileSystem, env.Codec, path)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()

	surf, err := surface.New(env.Display, env.SharedMemory, bounds.Dx(), bounds.Dy(), opts.surfaceOptions(), env.Logger)
	if err != nil {
		return nil, fmt.Errorf("create surface for %s: %w", path, err)
	}

	buf, err := pixbuf.Wrap(bounds.Dx(), bounds.Dy(), surf.Pixels())
	if err == nil {
		err = pixbuf.Decode(img, buf)
	}
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err), surf.Close())
	}

	logger.Debug("Loaded %s: %dx%d, %s surface", path, buf.Width, buf.Height, surf.Mode())

	return &Engine{
		env:    env,
		opts:   opts,
		logger: logger,
		blur:   geometry.Blurrer{Workers: opts.BlurWorkers},
		buf:    buf,
		surf:   surf,
		mode:   surf.Mode(),
		cam:    camera.New(buf.Width, buf.Height, viewport.X, viewport.Y),
	}, nil
}

// ReadImage reads and decodes the image file at path.
func ReadImage(fs ports.FileSystem, codec ports.ImageCodec, path string) (image.Image, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrDecodeFailed, path, err)
	}
	img, err := codec.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err)
	}
	if b := img.Bounds(); b.Empty() {
		return nil, fmt.Errorf("%w: %s: empty image", ErrDecodeFailed, path)
	}
	return img, nil
}

// WriteBuffer encodes buf as an opaque image in the format implied by the
// extension of path and writes it atomically.
func WriteBuffer(fs ports.FileSystem, codec ports.ImageCodec, buf *pixbuf.Buffer, path string) error {
	data, err := codec.EncodeImage(buf.Image(), ports.FormatFromPath(path))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncodeFailed, path, err)
	}
	if err := fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrEncodeFailed, path, err)
	}
	return nil
}

// Save writes the canvas to path.
func (e *Engine) Save(path string) error {
	if e.surf == nil {
		return ErrClosed
	}
	if err := WriteBuffer(e.env.FileSystem, e.env.Codec, e.buf, path); err != nil {
		return err
	}
	e.logger.Debug("Saved %s", path)
	return nil
}

// Crop keeps only the given rectangle of the canvas. Rectangles that clamp
// to nothing, or to the whole canvas, leave it unchanged. The camera is not
// moved. On ErrResourceExhausted the canvas is left as it was.
func (e *Engine) Crop(r geometry.Rect) error {
	if e.surf == nil {
		return ErrClosed
	}

	dst, ok := geometry.Crop(e.buf, r)
	if !ok {
		return nil
	}

	if err := e.surf.Resize(dst.Width, dst.Height); err != nil {
		return fmt.Errorf("crop to %dx%d: %w", dst.Width, dst.Height, err)
	}

	buf, err := pixbuf.Wrap(dst.Width, dst.Height, e.surf.Pixels())
	if err != nil {
		return err
	}
	copy(buf.Pix, dst.Pix)
	e.buf = buf
	e.cam.SetCanvasSize(buf.Width, buf.Height)

	e.logger.Debug("Cropped to %dx%d", buf.Width, buf.Height)
	return nil
}

// Blur applies strength passes of the box blur to the given rectangle.
func (e *Engine) Blur(r geometry.Rect, strength int) error {
	if e.surf == nil {
		return ErrClosed
	}
	e.blur.Blur(e.buf, r, strength)
	e.logger.Debug("Blurred %dx%d at (%d,%d), %d passes", r.Width, r.Height, r.X, r.Y, strength)
	return nil
}

// BlurDefault blurs the rectangle with the configured strength.
func (e *Engine) BlurDefault(r geometry.Rect) error {
	return e.Blur(r, e.opts.BlurStrength)
}

// Render clears the parts of the viewport the canvas does not cover, draws
// the canvas at the camera position and flushes the display.
func (e *Engine) Render() error {
	if e.surf == nil {
		return ErrClosed
	}

	for _, strip := range surface.Exposed(e.cam.Placement(), e.cam.Viewport()) {
		if err := e.env.Display.ClearArea(strip); err != nil {
			return fmt.Errorf("clear %v: %w", strip, err)
		}
	}
	if err := e.surf.Blit(e.cam.Position()); err != nil {
		return fmt.Errorf("blit: %w", err)
	}
	return e.env.Display.Flush()
}

// MoveRelative pans the canvas by (dx, dy) viewport pixels.
func (e *Engine) MoveRelative(dx, dy int) {
	e.cam.MoveRelative(dx, dy)
}

// MoveToCenter centers the canvas in the viewport.
func (e *Engine) MoveToCenter() {
	e.cam.MoveToCenter()
}

// SetViewport records a new window size.
func (e *Engine) SetViewport(width, height int) {
	e.cam.SetViewport(width, height)
}

// CanvasToViewport maps a canvas point to window coordinates.
func (e *Engine) CanvasToViewport(p image.Point) image.Point {
	return e.cam.CanvasToViewport(p)
}

// ViewportToCanvas maps a window point to canvas coordinates.
func (e *Engine) ViewportToCanvas(p image.Point) image.Point {
	return e.cam.ViewportToCanvas(p)
}

// Position returns the canvas offset inside the viewport.
func (e *Engine) Position() image.Point {
	return e.cam.Position()
}

// Size returns the canvas dimensions.
func (e *Engine) Size() (int, int) {
	return e.buf.Width, e.buf.Height
}

// Buffer returns the live pixel buffer. It is replaced by Crop.
func (e *Engine) Buffer() *pixbuf.Buffer {
	return e.buf
}

// Mode returns the surface mode picked at load.
func (e *Engine) Mode() surface.Mode {
	return e.mode
}

// Close releases the surface. The engine cannot be used afterwards.
func (e *Engine) Close() error {
	if e.surf == nil {
		return ErrClosed
	}
	err := e.surf.Close()
	e.surf = nil
	e.buf = &pixbuf.Buffer{}
	return err
}
