package xgbdisplay

import (
	"context"
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/user/xcandb/pkg/ports"
)

// pump forwards converted events until the connection closes.
func (d *Display) pump() {
	defer close(d.events)
	for {
		ev, xerr := d.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			d.logger.Warn("X error: %v", xerr)
			continue
		}
		if m, ok := ev.(xproto.MappingNotifyEvent); ok {
			d.refreshKeymap(m)
			continue
		}
		if out := d.convert(ev); out != nil {
			d.events <- out
		}
	}
}

// NextEvent blocks until the next window event or until ctx is done.
func (d *Display) NextEvent(ctx context.Context) (ports.Event, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case ev, ok := <-d.events:
		if !ok {
			return nil, ErrDisconnected
		}
		return ev, nil
	}
}

// convert maps a protocol event to a port event; nil drops it.
func (d *Display) convert(ev xgb.Event) ports.Event {
	switch e := ev.(type) {
	case xproto.ExposeEvent:
		// Only the last of a series triggers a redraw.
		if e.Count != 0 {
			return nil
		}
		return ports.Expose{}
	case xproto.KeyPressEvent:
		return ports.KeyPress{
			Keysym:  d.keys.lookup(e.Detail),
			Control: e.State&xproto.ModMaskControl != 0,
		}
	case xproto.ButtonPressEvent:
		return ports.ButtonPress{Button: int(e.Detail), X: int(e.EventX), Y: int(e.EventY)}
	case xproto.ButtonReleaseEvent:
		return ports.ButtonRelease{Button: int(e.Detail), X: int(e.EventX), Y: int(e.EventY)}
	case xproto.MotionNotifyEvent:
		return ports.MotionNotify{X: int(e.EventX), Y: int(e.EventY)}
	case xproto.ConfigureNotifyEvent:
		if e.Window != d.win {
			return nil
		}
		return ports.ConfigureNotify{Width: int(e.Width), Height: int(e.Height)}
	case xproto.ClientMessageEvent:
		if e.Type == d.atoms.wmProtocols && e.Format == 32 &&
			xproto.Atom(e.Data.Data32[0]) == d.atoms.wmDeleteWindow {
			return ports.CloseRequest{}
		}
		return nil
	default:
		return nil
	}
}

// refreshKeymap reloads the whole mapping after a keyboard change.
func (d *Display) refreshKeymap(m xproto.MappingNotifyEvent) {
	if m.Request != xproto.MappingKeyboard {
		return
	}
	setup := xproto.Setup(d.conn)
	keys, err := loadKeymap(d.conn, setup.MinKeycode, setup.MaxKeycode)
	if err != nil {
		d.logger.Warn("Keyboard mapping refresh failed: %v", err)
		return
	}
	d.keys = keys
}

// keymap resolves keycodes to their unshifted keysyms.
type keymap struct {
	first   xproto.Keycode
	perCode int
	syms    []xproto.Keysym
}

func loadKeymap(conn *xgb.Conn, first, last xproto.Keycode) (*keymap, error) {
	count := int(last) - int(first) + 1
	reply, err := xproto.GetKeyboardMapping(conn, first, byte(count)).Reply()
	if err != nil {
		return nil, fmt.Errorf("get keyboard mapping: %w", err)
	}
	return &keymap{
		first:   first,
		perCode: int(reply.KeysymsPerKeycode),
		syms:    reply.Keysyms,
	}, nil
}

// lookup returns column 0 of the keycode's keysym list, or 0 when unknown.
func (k *keymap) lookup(code xproto.Keycode) uint32 {
	if k == nil || k.perCode == 0 || code < k.first {
		return 0
	}
	i := int(code-k.first) * k.perCode
	if i >= len(k.syms) {
		return 0
	}
	return uint32(k.syms[i])
}
