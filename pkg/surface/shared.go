package surface

import (
	"errors"
	"fmt"
	"image"

	"github.com/user/xcandb/pkg/ports"
)

// segment is one shared memory mapping and the server objects built on it.
type segment struct {
	mem    []byte
	seg    ports.SegmentID
	pixmap ports.PixmapID
	width  int
	height int
}

// Shared is a zero-copy surface backed by a SysV segment and a server pixmap.
type Shared struct {
	display ports.Display
	shm     ports.SharedMemory
	cur     *segment
}

// NewShared acquires a shared segment and pixmap of the given size.
func NewShared(display ports.Display, shm ports.SharedMemory, width, height int) (*Shared, error) {
	s := &Shared{display: display, shm: shm}
	seg, err := s.acquire(width, height)
	if err != nil {
		return nil, err
	}
	s.cur = seg
	return s, nil
}

// acquire maps a new segment, attaches it to the server, marks it for
// removal and creates the pixmap. Partial acquisitions are undone.
func (s *Shared) acquire(width, height int) (*segment, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}

	id, err := s.shm.Create(width * height * 4)
	if err != nil {
		return nil, fmt.Errorf("%w: create segment: %v", ErrResourceExhausted, err)
	}

	mem, err := s.shm.Attach(id)
	if err != nil {
		err = fmt.Errorf("%w: attach segment: %v", ErrResourceExhausted, err)
		return nil, errors.Join(err, s.shm.Remove(id))
	}

	seg, err := s.display.AttachSegment(id)
	if err != nil {
		err = fmt.Errorf("%w: attach segment to server: %v", ErrResourceExhausted, err)
		return nil, errors.Join(err, s.shm.Remove(id), s.shm.Detach(mem))
	}

	// Both sides are attached; the kernel frees the segment once they detach,
	// even if the process dies.
	if err := s.shm.Remove(id); err != nil {
		err = fmt.Errorf("%w: mark segment for removal: %v", ErrResourceExhausted, err)
		return nil, errors.Join(err, s.display.DetachSegment(seg), s.shm.Detach(mem))
	}

	pixmap, err := s.display.CreateSharedPixmap(seg, width, height)
	if err != nil {
		err = fmt.Errorf("%w: create shared pixmap: %v", ErrResourceExhausted, err)
		return nil, errors.Join(err, s.display.DetachSegment(seg), s.shm.Detach(mem))
	}

	return &segment{mem: mem, seg: seg, pixmap: pixmap, width: width, height: height}, nil
}

// release frees the pixmap and detaches the segment from the server before
// unmapping it locally.
func (s *Shared) release(seg *segment) error {
	return errors.Join(
		s.display.FreePixmap(seg.pixmap),
		s.display.DetachSegment(seg.seg),
		s.shm.Detach(seg.mem),
	)
}

// Mode returns ModeShared.
func (s *Shared) Mode() Mode {
	return ModeShared
}

// Size returns the current pixel dimensions.
func (s *Shared) Size() (int, int) {
	if s.cur == nil {
		return 0, 0
	}
	return s.cur.width, s.cur.height
}

// Pixels returns the mapped segment as packed pixels.
func (s *Shared) Pixels() []uint32 {
	if s.cur == nil {
		return nil
	}
	return pixelsOf(s.cur.mem)[:s.cur.width*s.cur.height]
}

// Resize swaps in a new segment and pixmap of the given size.
func (s *Shared) Resize(width, height int) error {
	if s.cur == nil {
		return ErrClosed
	}
	next, err := s.acquire(width, height)
	if err != nil {
		return err
	}
	old := s.cur
	s.cur = next
	return s.release(old)
}

// Blit copies the pixmap to the window at pos.
func (s *Shared) Blit(pos image.Point) error {
	if s.cur == nil {
		return ErrClosed
	}
	return s.display.CopyArea(s.cur.pixmap, pos.X, pos.Y, s.cur.width, s.cur.height)
}

// Close releases the segment and pixmap.
func (s *Shared) Close() error {
	if s.cur == nil {
		return ErrClosed
	}
	old := s.cur
	s.cur = nil
	return s.release(old)
}

// Ensure Shared implements Surface
var _ Surface = (*Shared)(nil)
