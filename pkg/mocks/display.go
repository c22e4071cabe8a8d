// Package mocks provides mock implementations for testing.
package mocks

import (
	"fmt"
	"image"
	"sync"

	"github.com/user/xcandb/pkg/ports"
)

// Call records one request made against a mock.
type Call struct {
	Name string
	Args []any
}

// String formats the call for test failure messages.
func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Display is a mock implementation of ports.Display.
// Every request is appended to Calls in order.
type Display struct {
	mu     sync.Mutex
	Calls  []Call
	nextID uint32

	Shared     bool
	BitDepth   int
	MaxRequest int

	AttachSegmentFunc      func(shmid int) (ports.SegmentID, error)
	CreateSharedPixmapFunc func(seg ports.SegmentID, width, height int) (ports.PixmapID, error)
	PutImageFunc           func(data []byte, width, height, dstX, dstY int) error
	FlushFunc              func() error
}

// NewDisplay creates a mock Display; shared selects MIT-SHM support.
func NewDisplay(shared bool) *Display {
	return &Display{
		Shared:     shared,
		BitDepth:   24,
		MaxRequest: 1 << 18,
	}
}

func (m *Display) record(name string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, Call{Name: name, Args: args})
}

func (m *Display) id() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	return m.nextID
}

// Names returns the names of the recorded calls.
func (m *Display) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		names[i] = c.Name
	}
	return names
}

// Reset forgets the recorded calls.
func (m *Display) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = nil
}

func (m *Display) SupportsSharedPixmaps() bool {
	return m.Shared
}

func (m *Display) Depth() int {
	return m.BitDepth
}

func (m *Display) MaxRequestBytes() int {
	return m.MaxRequest
}

func (m *Display) AttachSegment(shmid int) (ports.SegmentID, error) {
	m.record("AttachSegment", shmid)
	if m.AttachSegmentFunc != nil {
		return m.AttachSegmentFunc(shmid)
	}
	return ports.SegmentID(m.id()), nil
}

func (m *Display) DetachSegment(seg ports.SegmentID) error {
	m.record("DetachSegment", seg)
	return nil
}

func (m *Display) CreateSharedPixmap(seg ports.SegmentID, width, height int) (ports.PixmapID, error) {
	m.record("CreateSharedPixmap", seg, width, height)
	if m.CreateSharedPixmapFunc != nil {
		return m.CreateSharedPixmapFunc(seg, width, height)
	}
	return ports.PixmapID(m.id()), nil
}

func (m *Display) FreePixmap(pixmap ports.PixmapID) error {
	m.record("FreePixmap", pixmap)
	return nil
}

func (m *Display) CopyArea(pixmap ports.PixmapID, dstX, dstY, width, height int) error {
	m.record("CopyArea", pixmap, dstX, dstY, width, height)
	return nil
}

func (m *Display) PutImage(data []byte, width, height, dstX, dstY int) error {
	m.record("PutImage", len(data), width, height, dstX, dstY)
	if m.PutImageFunc != nil {
		return m.PutImageFunc(data, width, height, dstX, dstY)
	}
	return nil
}

func (m *Display) ClearArea(r image.Rectangle) error {
	m.record("ClearArea", r)
	return nil
}

func (m *Display) Flush() error {
	m.record("Flush")
	if m.FlushFunc != nil {
		return m.FlushFunc()
	}
	return nil
}

var _ ports.Display = (*Display)(nil)
