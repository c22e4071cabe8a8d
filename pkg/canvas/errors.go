package canvas

import (
	"errors"

	"github.com/user/xcandb/pkg/surface"
)

var (
	// ErrDecodeFailed is returned when an image file cannot be read or decoded.
	ErrDecodeFailed = errors.New("canvas: decode failed")

	// ErrEncodeFailed is returned when the canvas cannot be encoded or written.
	ErrEncodeFailed = errors.New("canvas: encode failed")

	// ErrResourceExhausted is returned when surface memory or server
	// resources cannot be acquired. The engine stays usable.
	ErrResourceExhausted = surface.ErrResourceExhausted

	// ErrClosed is returned when a closed engine is used.
	ErrClosed = errors.New("canvas: engine closed")
)
