//go:build linux

// Package sysvshm provides ports.SharedMemory over System V shared memory.
package sysvshm

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/user/xcandb/pkg/ports"
)

// Owner read-write; the X server attaches as root or as the same user.
const perm = 0o600

// SharedMemory implements ports.SharedMemory with shmget/shmat.
type SharedMemory struct{}

// New creates a new SharedMemory.
func New() *SharedMemory {
	return &SharedMemory{}
}

// Create allocates a new private segment of size bytes.
func (s *SharedMemory) Create(size int) (int, error) {
	id, err := unix.SysvShmGet(unix.IPC_PRIVATE, size, unix.IPC_CREAT|perm)
	if err != nil {
		return 0, fmt.Errorf("shmget %d bytes: %w", size, err)
	}
	return id, nil
}

// Attach maps the segment read-write into the process.
func (s *SharedMemory) Attach(id int) ([]byte, error) {
	mem, err := unix.SysvShmAttach(id, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("shmat %d: %w", id, err)
	}
	return mem, nil
}

// Detach unmaps a segment returned by Attach.
func (s *SharedMemory) Detach(mem []byte) error {
	if err := unix.SysvShmDetach(mem); err != nil {
		return fmt.Errorf("shmdt: %w", err)
	}
	return nil
}

// Remove marks the segment for destruction once every attachment is gone.
func (s *SharedMemory) Remove(id int) error {
	if _, err := unix.SysvShmCtl(id, unix.IPC_RMID, nil); err != nil {
		return fmt.Errorf("shmctl IPC_RMID %d: %w", id, err)
	}
	return nil
}

// Ensure SharedMemory implements ports.SharedMemory
var _ ports.SharedMemory = (*SharedMemory)(nil)
