//go:build linux

package sysvshm

import (
	"errors"
	"testing"

	"golang.org/x/sys/unix"
)

func TestSharedMemory_Lifecycle(t *testing.T) {
	shm := New()

	id, err := shm.Create(4096)
	if errors.Is(err, unix.ENOSYS) || errors.Is(err, unix.EPERM) {
		t.Skipf("System V shared memory unavailable: %v", err)
	}
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	mem, err := shm.Attach(id)
	if err != nil {
		shm.Remove(id)
		t.Fatalf("Attach failed: %v", err)
	}
	if len(mem) != 4096 {
		t.Errorf("expected 4096 bytes, got %d", len(mem))
	}

	// The mapping stays usable after the segment is marked for removal
	if err := shm.Remove(id); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	mem[0], mem[4095] = 0xab, 0xcd
	if mem[0] != 0xab || mem[4095] != 0xcd {
		t.Error("expected writes to be visible")
	}

	if err := shm.Detach(mem); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if _, err := shm.Attach(id); err == nil {
		t.Error("expected Attach to fail after removal and detach")
	}
}
