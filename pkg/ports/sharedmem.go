package ports

// SharedMemory abstracts kernel shared memory segments.
type SharedMemory interface {
	// Create allocates a private segment of size bytes and returns its id.
	Create(size int) (int, error)

	// Attach maps the segment into the process.
	Attach(id int) ([]byte, error)

	// Detach unmaps a segment previously returned by Attach.
	Detach(mem []byte) error

	// Remove marks the segment for removal once every attachment is gone.
	Remove(id int) error
}
