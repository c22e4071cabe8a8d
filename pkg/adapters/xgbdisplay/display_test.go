package xgbdisplay

import (
	"bytes"
	"math"
	"testing"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/user/xcandb/pkg/adapters/logger"
	"github.com/user/xcandb/pkg/ports"
)

func testDisplay() *Display {
	return &Display{
		win:    42,
		logger: logger.NewNoop(),
		atoms:  atoms{wmProtocols: 100, wmDeleteWindow: 101},
		keys: &keymap{
			first:   8,
			perCode: 2,
			// keycode 8: s/S, keycode 9: Escape
			syms: []xproto.Keysym{0x0073, 0x0053, 0xff1b, 0},
		},
	}
}

func TestConvert(t *testing.T) {
	d := testDisplay()

	tests := []struct {
		name string
		in   xgb.Event
		want ports.Event
	}{
		{"expose last", xproto.ExposeEvent{Count: 0}, ports.Expose{}},
		{"expose pending", xproto.ExposeEvent{Count: 2}, nil},
		{"ctrl+s", xproto.KeyPressEvent{Detail: 8, State: xproto.ModMaskControl},
			ports.KeyPress{Keysym: ports.KeyS, Control: true}},
		{"shift+s", xproto.KeyPressEvent{Detail: 8, State: xproto.ModMaskShift},
			ports.KeyPress{Keysym: ports.KeyS}},
		{"escape", xproto.KeyPressEvent{Detail: 9}, ports.KeyPress{Keysym: ports.KeyEscape}},
		{"button press", xproto.ButtonPressEvent{Detail: 3, EventX: -4, EventY: 7},
			ports.ButtonPress{Button: 3, X: -4, Y: 7}},
		{"button release", xproto.ButtonReleaseEvent{Detail: 1, EventX: 10, EventY: 20},
			ports.ButtonRelease{Button: 1, X: 10, Y: 20}},
		{"motion", xproto.MotionNotifyEvent{EventX: 5, EventY: 6}, ports.MotionNotify{X: 5, Y: 6}},
		{"configure", xproto.ConfigureNotifyEvent{Window: 42, Width: 640, Height: 480},
			ports.ConfigureNotify{Width: 640, Height: 480}},
		{"configure other window", xproto.ConfigureNotifyEvent{Window: 7, Width: 1, Height: 1}, nil},
		{"delete window", xproto.ClientMessageEvent{
			Format: 32, Type: 100,
			Data: xproto.ClientMessageDataUnionData32New([]uint32{101, 0, 0, 0, 0}),
		}, ports.CloseRequest{}},
		{"other protocol", xproto.ClientMessageEvent{
			Format: 32, Type: 100,
			Data: xproto.ClientMessageDataUnionData32New([]uint32{555, 0, 0, 0, 0}),
		}, nil},
		{"unrelated", xproto.FocusInEvent{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.convert(tt.in); got != tt.want {
				t.Errorf("convert() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestKeymapLookup(t *testing.T) {
	k := testDisplay().keys

	tests := []struct {
		code xproto.Keycode
		want uint32
	}{
		{8, 0x0073},
		{9, 0xff1b},
		{7, 0},
		{10, 0},
	}
	for _, tt := range tests {
		if got := k.lookup(tt.code); got != tt.want {
			t.Errorf("lookup(%d) = %#x, want %#x", tt.code, got, tt.want)
		}
	}

	var empty *keymap
	if got := empty.lookup(8); got != 0 {
		t.Errorf("nil keymap lookup = %#x, want 0", got)
	}
}

func TestWMClass(t *testing.T) {
	if got := wmClass("xcandb"); !bytes.Equal(got, []byte("xcandb\x00xcandb\x00")) {
		t.Errorf("wmClass() = %q", got)
	}
}

func TestCard32(t *testing.T) {
	got := card32(0x01020304, 0xffffffff)
	want := []byte{4, 3, 2, 1, 0xff, 0xff, 0xff, 0xff}
	if !bytes.Equal(got, want) {
		t.Errorf("card32() = %v, want %v", got, want)
	}
}

func TestClamp16(t *testing.T) {
	if i16(-100000) != math.MinInt16 || i16(100000) != math.MaxInt16 || i16(-5) != -5 {
		t.Error("i16 does not clamp")
	}
	if u16(-1) != 0 || u16(1<<20) != math.MaxUint16 || u16(640) != 640 {
		t.Error("u16 does not clamp")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width != 800 || cfg.Height != 600 || cfg.Background != 0x1e1e1e || cfg.Class != "xcandb" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}
