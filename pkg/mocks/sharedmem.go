package mocks

import (
	"fmt"
	"sync"

	"github.com/user/xcandb/pkg/ports"
)

// SharedMemory is an in-process mock implementation of ports.SharedMemory.
// Segments are plain byte slices; Calls records every request in order.
type SharedMemory struct {
	mu       sync.Mutex
	Calls    []Call
	segments map[int][]byte
	removed  map[int]bool
	attached int
	nextID   int

	CreateFunc func(size int) (int, error)
	AttachFunc func(id int) ([]byte, error)
}

// NewSharedMemory creates a mock SharedMemory.
func NewSharedMemory() *SharedMemory {
	return &SharedMemory{
		segments: make(map[int][]byte),
		removed:  make(map[int]bool),
	}
}

func (m *SharedMemory) record(name string, args ...any) {
	m.Calls = append(m.Calls, Call{Name: name, Args: args})
}

// Attached returns the number of mappings that have not been detached.
func (m *SharedMemory) Attached() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attached
}

// Removed reports whether Remove was called for id.
func (m *SharedMemory) Removed(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removed[id]
}

func (m *SharedMemory) Create(size int) (int, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(size)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Create", size)
	m.nextID++
	m.segments[m.nextID] = make([]byte, size)
	return m.nextID, nil
}

func (m *SharedMemory) Attach(id int) ([]byte, error) {
	if m.AttachFunc != nil {
		return m.AttachFunc(id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Attach", id)
	mem, ok := m.segments[id]
	if !ok {
		return nil, fmt.Errorf("segment %d not found", id)
	}
	m.attached++
	return mem, nil
}

func (m *SharedMemory) Detach(mem []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Detach", len(mem))
	m.attached--
	return nil
}

func (m *SharedMemory) Remove(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Remove", id)
	m.removed[id] = true
	return nil
}

var _ ports.SharedMemory = (*SharedMemory)(nil)
