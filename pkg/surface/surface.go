// Package surface implements the on-screen backing store of the canvas.
//
// A surface owns the pixel storage that the canvas edits and knows how to
// put it on the target window. Two variants exist: Shared keeps the pixels in
// a SysV shared memory segment that also backs a server-side pixmap, so a
// blit is a server-side copy; Local keeps the pixels in client memory and
// transmits them with PutImage on every blit. The variant is picked once by
// New and never changes for the lifetime of the surface.
package surface

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/user/xcandb/pkg/ports"
)

// DefaultMaxLocalBytes bounds a Local surface's buffer.
const DefaultMaxLocalBytes = 16 << 20

// maxDimension is the largest width or height the X protocol can address.
const maxDimension = 1<<15 - 1

var (
	// ErrResourceExhausted is returned when memory or server resources for a
	// surface cannot be acquired.
	ErrResourceExhausted = errors.New("surface: resource exhausted")

	// ErrClosed is returned when a closed surface is used.
	ErrClosed = errors.New("surface: closed")
)

// Mode identifies a surface variant.
type Mode int

const (
	ModeLocal Mode = iota
	ModeShared
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeShared:
		return "shared"
	case ModeLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Surface is a mode-specific backing store.
type Surface interface {
	// Mode returns the variant chosen at construction.
	Mode() Mode

	// Size returns the current pixel dimensions.
	Size() (width, height int)

	// Pixels returns the backing storage, Width*Height packed pixels.
	// The slice is invalidated by Resize and Close.
	Pixels() []uint32

	// Resize replaces the storage with one of the given size in the same
	// mode. On failure the previous storage is kept. The new contents are
	// unspecified.
	Resize(width, height int) error

	// Blit draws the whole surface with its top-left corner at pos.
	Blit(pos image.Point) error

	// Close releases every resource. Further calls return ErrClosed.
	Close() error
}

// Options configures surface selection.
type Options struct {
	// ForceLocal skips the shared memory probe.
	ForceLocal bool

	// MaxLocalBytes caps the Local buffer; zero selects DefaultMaxLocalBytes.
	MaxLocalBytes int
}

// New creates a surface of the given size. Shared mode is used when the
// display supports shared pixmaps, shm is available and ForceLocal is unset.
// A shared surface that cannot be set up, as with a remote server, falls
// back to a local one.
func New(display ports.Display, shm ports.SharedMemory, width, height int, opts Options, logger ports.Logger) (Surface, error) {
	logger = logger.WithComponent("surface")

	if !opts.ForceLocal && shm != nil && display.SupportsSharedPixmaps() {
		s, err := NewShared(display, shm, width, height)
		if err == nil {
			logger.Debug("Using shared memory surface %dx%d", width, height)
			return s, nil
		}
		logger.Warn("Shared memory unavailable, falling back to local surface: %v", err)
	}

	logger.Debug("Using local surface %dx%d", width, height)
	return NewLocal(display, width, height, opts.MaxLocalBytes)
}

func checkSize(width, height int) error {
	if width < 1 || height < 1 || width > maxDimension || height > maxDimension {
		return fmt.Errorf("%w: unsupported size %dx%d", ErrResourceExhausted, width, height)
	}
	return nil
}

// pixelsOf reinterprets raw memory as packed pixels.
func pixelsOf(mem []byte) []uint32 {
	if len(mem) < 4 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&mem[0])), len(mem)/4)
}

// bytesOf reinterprets packed pixels as raw memory.
func bytesOf(pix []uint32) []byte {
	if len(pix) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&pix[0])), len(pix)*4)
}
