package xgbdisplay

import (
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/user/xcandb/pkg/ports"
)

// Glyphs of the standard "cursor" font.
const (
	glyphLeftPtr   = 68
	glyphFleur     = 52
	glyphCrosshair = 34
)

const eventMask = xproto.EventMaskExposure |
	xproto.EventMaskKeyPress |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskStructureNotify

type atoms struct {
	wmProtocols    xproto.Atom
	wmDeleteWindow xproto.Atom
}

// init creates and maps the window with its properties, cursors and GCs.
func (d *Display) init(cfg Config, setup *xproto.SetupInfo) error {
	var err error
	if d.win, err = xproto.NewWindowId(d.conn); err != nil {
		return err
	}

	err = xproto.CreateWindowChecked(d.conn, d.screen.RootDepth, d.win, d.screen.Root,
		0, 0, u16(cfg.Width), u16(cfg.Height), 0,
		xproto.WindowClassInputOutput, d.screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{cfg.Background, eventMask}).Check()
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	if err := d.setProperties(cfg); err != nil {
		return err
	}
	if err := d.createCursors(); err != nil {
		return err
	}
	if err := d.createGCs(); err != nil {
		return err
	}
	if d.keys, err = loadKeymap(d.conn, setup.MinKeycode, setup.MaxKeycode); err != nil {
		return err
	}

	xproto.ChangeWindowAttributes(d.conn, d.win, xproto.CwCursor,
		[]uint32{uint32(d.cursors[ports.CursorArrow])})
	return xproto.MapWindowChecked(d.conn, d.win).Check()
}

func (d *Display) intern(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(d.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern atom %s: %w", name, err)
	}
	return reply.Atom, nil
}

func (d *Display) setProperties(cfg Config) error {
	names := []string{
		"WM_PROTOCOLS", "WM_DELETE_WINDOW", "_NET_WM_NAME", "UTF8_STRING",
		"_NET_WM_WINDOW_OPACITY", "_NET_WM_STATE", "_NET_WM_STATE_FULLSCREEN",
	}
	a := make(map[string]xproto.Atom, len(names))
	for _, name := range names {
		atom, err := d.intern(name)
		if err != nil {
			return err
		}
		a[name] = atom
	}
	d.atoms = atoms{
		wmProtocols:    a["WM_PROTOCOLS"],
		wmDeleteWindow: a["WM_DELETE_WINDOW"],
	}

	replace := func(prop, typ xproto.Atom, format byte, data []byte) {
		n := uint32(len(data)) / uint32(format/8)
		xproto.ChangeProperty(d.conn, xproto.PropModeReplace, d.win, prop, typ, format, n, data)
	}

	replace(a["_NET_WM_NAME"], a["UTF8_STRING"], 8, []byte(cfg.Title))
	replace(xproto.AtomWmName, xproto.AtomString, 8, []byte(cfg.Title))
	replace(xproto.AtomWmClass, xproto.AtomString, 8, wmClass(cfg.Class))
	replace(a["WM_PROTOCOLS"], xproto.AtomAtom, 32, card32(uint32(a["WM_DELETE_WINDOW"])))
	replace(a["_NET_WM_WINDOW_OPACITY"], xproto.AtomCardinal, 32, card32(0xffffffff))
	if cfg.Fullscreen {
		replace(a["_NET_WM_STATE"], xproto.AtomAtom, 32, card32(uint32(a["_NET_WM_STATE_FULLSCREEN"])))
	}
	return nil
}

// wmClass encodes the instance and class names, both set to class.
func wmClass(class string) []byte {
	b := make([]byte, 0, 2*len(class)+2)
	b = append(b, class...)
	b = append(b, 0)
	b = append(b, class...)
	return append(b, 0)
}

// card32 encodes values in the connection's byte order.
func card32(values ...uint32) []byte {
	b := make([]byte, 4*len(values))
	for i, v := range values {
		xgb.Put32(b[4*i:], v)
	}
	return b
}

func (d *Display) createCursors() error {
	font, err := xproto.NewFontId(d.conn)
	if err != nil {
		return err
	}
	const name = "cursor"
	if err := xproto.OpenFontChecked(d.conn, font, uint16(len(name)), name).Check(); err != nil {
		return fmt.Errorf("open cursor font: %w", err)
	}
	defer xproto.CloseFont(d.conn, font)

	glyphs := [3]uint16{
		ports.CursorArrow:     glyphLeftPtr,
		ports.CursorHand:      glyphFleur,
		ports.CursorCrosshair: glyphCrosshair,
	}
	for i, glyph := range glyphs {
		c, err := xproto.NewCursorId(d.conn)
		if err != nil {
			return err
		}
		// Black glyph on a white mask, the mask glyph follows its shape.
		err = xproto.CreateGlyphCursorChecked(d.conn, c, font, font, glyph, glyph+1,
			0, 0, 0, 0xffff, 0xffff, 0xffff).Check()
		if err != nil {
			return fmt.Errorf("create cursor: %w", err)
		}
		d.cursors[i] = c
	}
	return nil
}

func (d *Display) createGCs() error {
	var err error
	if d.gc, err = xproto.NewGcontextId(d.conn); err != nil {
		return err
	}
	err = xproto.CreateGCChecked(d.conn, d.gc, xproto.Drawable(d.win),
		xproto.GcGraphicsExposures, []uint32{0}).Check()
	if err != nil {
		return fmt.Errorf("create gc: %w", err)
	}

	if d.dashGC, err = xproto.NewGcontextId(d.conn); err != nil {
		return err
	}
	err = xproto.CreateGCChecked(d.conn, d.dashGC, xproto.Drawable(d.win),
		xproto.GcForeground|xproto.GcBackground|xproto.GcLineStyle|xproto.GcGraphicsExposures,
		[]uint32{0xffffff, 0x000000, xproto.LineStyleDoubleDash, 0}).Check()
	if err != nil {
		return fmt.Errorf("create selection gc: %w", err)
	}
	return nil
}

// SetCursor changes the pointer shape over the window.
func (d *Display) SetCursor(c ports.Cursor) error {
	if c < 0 || int(c) >= len(d.cursors) {
		return fmt.Errorf("unknown cursor %d", c)
	}
	xproto.ChangeWindowAttributes(d.conn, d.win, xproto.CwCursor,
		[]uint32{uint32(d.cursors[c])})
	return d.Flush()
}

// DrawSelection outlines r, in window coordinates, with a dashed rectangle.
func (d *Display) DrawSelection(r image.Rectangle) error {
	r = r.Canon()
	xproto.PolyRectangle(d.conn, xproto.Drawable(d.win), d.dashGC, []xproto.Rectangle{{
		X:      i16(r.Min.X),
		Y:      i16(r.Min.Y),
		Width:  u16(r.Dx()),
		Height: u16(r.Dy()),
	}})
	return d.Flush()
}
