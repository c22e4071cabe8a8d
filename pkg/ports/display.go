// Package ports defines interfaces for external dependencies.
package ports

import "image"

// SegmentID identifies a shared memory segment attached to the display server.
type SegmentID uint32

// PixmapID identifies a server-side pixmap.
type PixmapID uint32

// Display abstracts the display server connection bound to one target window.
// All drawing operations target that window.
type Display interface {
	// SupportsSharedPixmaps reports whether the server offers the MIT-SHM
	// extension with shared pixmap support.
	SupportsSharedPixmaps() bool

	// Depth returns the bit depth of the target window's visual.
	Depth() int

	// MaxRequestBytes returns the largest request payload the server accepts.
	MaxRequestBytes() int

	// AttachSegment attaches the kernel segment shmid to the server.
	AttachSegment(shmid int) (SegmentID, error)

	// DetachSegment releases the server's reference to a segment.
	DetachSegment(seg SegmentID) error

	// CreateSharedPixmap creates a pixmap whose storage is the given segment.
	CreateSharedPixmap(seg SegmentID, width, height int) (PixmapID, error)

	// FreePixmap destroys a server-side pixmap.
	FreePixmap(pixmap PixmapID) error

	// CopyArea copies a width x height area of pixmap to (dstX, dstY) of the window.
	CopyArea(pixmap PixmapID, dstX, dstY, width, height int) error

	// PutImage transmits 32 bits per pixel ZPixmap data to (dstX, dstY) of the window.
	PutImage(data []byte, width, height, dstX, dstY int) error

	// ClearArea fills r with the window background.
	ClearArea(r image.Rectangle) error

	// Flush makes sure every request issued so far reached the server.
	Flush() error
}
