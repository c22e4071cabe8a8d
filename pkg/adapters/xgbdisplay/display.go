// Package xgbdisplay implements the display ports over the X11 protocol
// using github.com/jezek/xgb.
//
// A Display owns one connection and one top-level window. It draws the
// canvas into that window (ports.Display), delivers its events
// (ports.EventSource) and changes its cursor and selection overlay
// (ports.Window).
package xgbdisplay

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/shm"
	"github.com/jezek/xgb/xproto"

	"github.com/user/xcandb/pkg/ports"
)

var (
	// ErrConnect is returned when the X server cannot be reached.
	ErrConnect = errors.New("xgbdisplay: cannot open display")

	// ErrDisconnected is returned by NextEvent once the connection is gone.
	ErrDisconnected = errors.New("xgbdisplay: connection closed")
)

// Config describes the window to create.
type Config struct {
	DisplayName string // Empty uses $DISPLAY
	Title       string
	Class       string
	Width       int
	Height      int
	Background  uint32 // Packed 0x00RRGGBB
	Fullscreen  bool
}

// DefaultConfig returns the stock 800x600 window.
func DefaultConfig() Config {
	return Config{
		Title:      "xcandb",
		Class:      "xcandb",
		Width:      800,
		Height:     600,
		Background: 0x1e1e1e,
	}
}

// Display is an X11 connection bound to one window.
type Display struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	logger ports.Logger

	win      xproto.Window
	gc       xproto.Gcontext
	dashGC   xproto.Gcontext
	cursors  [3]xproto.Cursor
	atoms    atoms
	keys     *keymap
	shared   bool
	maxBytes int

	events    chan ports.Event
	closeOnce sync.Once
}

// Open connects to the X server and maps a new window.
func Open(cfg Config, logger ports.Logger) (*Display, error) {
	logger = logger.WithComponent("x11")

	var conn *xgb.Conn
	var err error
	if cfg.DisplayName != "" {
		conn, err = xgb.NewConnDisplay(cfg.DisplayName)
	} else {
		conn, err = xgb.NewConn()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	setup := xproto.Setup(conn)
	d := &Display{
		conn:     conn,
		screen:   setup.DefaultScreen(conn),
		logger:   logger,
		maxBytes: int(setup.MaximumRequestLength) * 4,
		events:   make(chan ports.Event, 64),
	}

	if err := d.init(cfg, setup); err != nil {
		conn.Close()
		return nil, err
	}

	d.shared = d.probeShm()
	logger.Debug("Connected: depth %d, max request %d bytes, shared pixmaps %t",
		d.Depth(), d.maxBytes, d.shared)

	go d.pump()
	return d, nil
}

// probeShm reports whether MIT-SHM with shared pixmaps is usable.
func (d *Display) probeShm() bool {
	if d.Depth() != 24 {
		return false
	}
	if err := shm.Init(d.conn); err != nil {
		d.logger.Debug("MIT-SHM unavailable: %v", err)
		return false
	}
	reply, err := shm.QueryVersion(d.conn).Reply()
	if err != nil {
		d.logger.Debug("MIT-SHM version query failed: %v", err)
		return false
	}
	return reply.SharedPixmaps && reply.PixmapFormat == xproto.ImageFormatZPixmap
}

// Close destroys the window and disconnects. It is safe to call twice.
func (d *Display) Close() error {
	d.closeOnce.Do(func() {
		xproto.FreeGC(d.conn, d.gc)
		xproto.FreeGC(d.conn, d.dashGC)
		for _, c := range d.cursors {
			xproto.FreeCursor(d.conn, c)
		}
		xproto.DestroyWindow(d.conn, d.win)
		d.conn.Close()
	})
	return nil
}

func (d *Display) SupportsSharedPixmaps() bool {
	return d.shared
}

func (d *Display) Depth() int {
	return int(d.screen.RootDepth)
}

func (d *Display) MaxRequestBytes() int {
	return d.maxBytes
}

func (d *Display) AttachSegment(shmid int) (ports.SegmentID, error) {
	seg, err := shm.NewSegId(d.conn)
	if err != nil {
		return 0, err
	}
	if err := shm.AttachChecked(d.conn, seg, uint32(shmid), false).Check(); err != nil {
		return 0, fmt.Errorf("shm attach: %v", err)
	}
	return ports.SegmentID(seg), nil
}

func (d *Display) DetachSegment(seg ports.SegmentID) error {
	return shm.DetachChecked(d.conn, shm.Seg(seg)).Check()
}

func (d *Display) CreateSharedPixmap(seg ports.SegmentID, width, height int) (ports.PixmapID, error) {
	pid, err := xproto.NewPixmapId(d.conn)
	if err != nil {
		return 0, err
	}
	err = shm.CreatePixmapChecked(d.conn, pid, xproto.Drawable(d.win),
		u16(width), u16(height), d.screen.RootDepth, shm.Seg(seg), 0).Check()
	if err != nil {
		return 0, fmt.Errorf("shm create pixmap: %v", err)
	}
	return ports.PixmapID(pid), nil
}

func (d *Display) FreePixmap(pixmap ports.PixmapID) error {
	return xproto.FreePixmapChecked(d.conn, xproto.Pixmap(pixmap)).Check()
}

func (d *Display) CopyArea(pixmap ports.PixmapID, dstX, dstY, width, height int) error {
	xproto.CopyArea(d.conn, xproto.Drawable(pixmap), xproto.Drawable(d.win), d.gc,
		0, 0, i16(dstX), i16(dstY), u16(width), u16(height))
	return nil
}

// PutImage sends one ZPixmap strip. The caller keeps each strip below
// MaxRequestBytes.
func (d *Display) PutImage(data []byte, width, height, dstX, dstY int) error {
	xproto.PutImage(d.conn, xproto.ImageFormatZPixmap, xproto.Drawable(d.win), d.gc,
		u16(width), u16(height), i16(dstX), i16(dstY), 0, d.screen.RootDepth, data)
	return nil
}

func (d *Display) ClearArea(r image.Rectangle) error {
	// A zero extent means "to the window edge" to the server.
	if r.Empty() {
		return nil
	}
	xproto.ClearArea(d.conn, false, d.win,
		i16(r.Min.X), i16(r.Min.Y), u16(r.Dx()), u16(r.Dy()))
	return nil
}

// Flush waits for a round trip, so every earlier request has been
// processed and any error it caused has been reported.
func (d *Display) Flush() error {
	if _, err := xproto.GetInputFocus(d.conn).Reply(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	return nil
}

// i16 clamps v to the protocol's coordinate range.
func i16(v int) int16 {
	return int16(min(max(v, math.MinInt16), math.MaxInt16))
}

// u16 clamps v to the protocol's extent range.
func u16(v int) uint16 {
	return uint16(min(max(v, 0), math.MaxUint16))
}

// Ensure Display implements the display ports
var (
	_ ports.Display     = (*Display)(nil)
	_ ports.EventSource = (*Display)(nil)
	_ ports.Window      = (*Display)(nil)
)
