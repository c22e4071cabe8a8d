package surface

import (
	"fmt"
	"image"

	"github.com/user/xcandb/pkg/ports"
)

// putImageHeader is the fixed size of a PutImage request.
const putImageHeader = 24

// Local is a client-side surface transmitted to the server on every blit.
type Local struct {
	display  ports.Display
	maxBytes int
	pix      []uint32
	width    int
	height   int
	closed   bool
}

// NewLocal allocates a client buffer of the given size. maxBytes caps the
// buffer; zero selects DefaultMaxLocalBytes.
func NewLocal(display ports.Display, width, height, maxBytes int) (*Local, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxLocalBytes
	}
	l := &Local{display: display, maxBytes: maxBytes}
	pix, err := l.allocate(width, height)
	if err != nil {
		return nil, err
	}
	l.pix, l.width, l.height = pix, width, height
	return l, nil
}

func (l *Local) allocate(width, height int) ([]uint32, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	if size := width * height * 4; size > l.maxBytes {
		return nil, fmt.Errorf("%w: local buffer of %d bytes exceeds the %d byte limit",
			ErrResourceExhausted, size, l.maxBytes)
	}
	return make([]uint32, width*height), nil
}

// Mode returns ModeLocal.
func (l *Local) Mode() Mode {
	return ModeLocal
}

// Size returns the current pixel dimensions.
func (l *Local) Size() (int, int) {
	return l.width, l.height
}

// Pixels returns the client buffer.
func (l *Local) Pixels() []uint32 {
	return l.pix
}

// Resize replaces the client buffer.
func (l *Local) Resize(width, height int) error {
	if l.closed {
		return ErrClosed
	}
	pix, err := l.allocate(width, height)
	if err != nil {
		return err
	}
	l.pix, l.width, l.height = pix, width, height
	return nil
}

// Blit transmits the buffer with its top-left corner at pos, in row strips
// that fit the server's request size limit.
func (l *Local) Blit(pos image.Point) error {
	if l.closed {
		return ErrClosed
	}

	stride := l.width * 4
	rows := max((l.display.MaxRequestBytes()-putImageHeader)/stride, 1)
	data := bytesOf(l.pix)

	for y := 0; y < l.height; y += rows {
		n := min(rows, l.height-y)
		strip := data[y*stride : (y+n)*stride]
		if err := l.display.PutImage(strip, l.width, n, pos.X, pos.Y+y); err != nil {
			return fmt.Errorf("put image rows %d-%d: %w", y, y+n, err)
		}
	}
	return nil
}

// Close drops the client buffer.
func (l *Local) Close() error {
	if l.closed {
		return ErrClosed
	}
	l.closed = true
	l.pix = nil
	return nil
}

// Ensure Local implements Surface
var _ Surface = (*Local)(nil)
