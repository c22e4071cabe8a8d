package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ideamans/go-l10n"

	"github.com/user/xcandb/pkg/adapters/logger"
	"github.com/user/xcandb/pkg/canvas"
	"github.com/user/xcandb/pkg/geometry"
	"github.com/user/xcandb/pkg/mocks"
	"github.com/user/xcandb/pkg/ports"
)

// mockCanvas records the calls made by the viewer.
type mockCanvas struct {
	calls []string
	pos   image.Point

	renderErr error
	cropErr   error
	saveErr   error
}

func (m *mockCanvas) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *mockCanvas) Render() error {
	m.record("Render")
	return m.renderErr
}

func (m *mockCanvas) Crop(r geometry.Rect) error {
	m.record("Crop(%d,%d,%d,%d)", r.X, r.Y, r.Width, r.Height)
	return m.cropErr
}

func (m *mockCanvas) BlurDefault(r geometry.Rect) error {
	m.record("Blur(%d,%d,%d,%d)", r.X, r.Y, r.Width, r.Height)
	return nil
}

func (m *mockCanvas) Save(path string) error {
	m.record("Save(%s)", path)
	return m.saveErr
}

func (m *mockCanvas) MoveRelative(dx, dy int) {
	m.record("MoveRelative(%d,%d)", dx, dy)
}

func (m *mockCanvas) MoveToCenter() {
	m.record("MoveToCenter")
}

func (m *mockCanvas) SetViewport(width, height int) {
	m.record("SetViewport(%d,%d)", width, height)
}

func (m *mockCanvas) ViewportToCanvas(p image.Point) image.Point {
	return p.Sub(m.pos)
}

type fixture struct {
	canvas   *mockCanvas
	window   *mocks.Window
	fs       *mocks.FileSystem
	prompter *mocks.Prompter
	notifier *mocks.Notifier
	viewer   *Viewer
}

func newFixture() *fixture {
	f := &fixture{
		canvas:   &mockCanvas{},
		window:   &mocks.Window{},
		fs:       mocks.NewFileSystem(),
		prompter: &mocks.Prompter{},
		notifier: &mocks.Notifier{},
	}
	f.viewer = New(f.canvas, mocks.NewEventSource(), f.window, f.fs, f.prompter, f.notifier,
		logger.NewNoop(), "xcandb")
	return f
}

func (f *fixture) handle(t *testing.T, events ...ports.Event) {
	t.Helper()
	for _, ev := range events {
		if err := f.viewer.Handle(ev); err != nil {
			t.Fatalf("Handle(%#v) error = %v", ev, err)
		}
	}
}

func (f *fixture) expectCalls(t *testing.T, want ...string) {
	t.Helper()
	if len(want) == 0 {
		want = nil
	}
	if !reflect.DeepEqual(f.canvas.calls, want) {
		t.Errorf("canvas calls = %q, want %q", f.canvas.calls, want)
	}
}

func TestViewer_PanMovesByDelta(t *testing.T) {
	f := newFixture()

	f.handle(t,
		ports.ButtonPress{Button: ports.ButtonMiddle, X: 10, Y: 10},
		ports.MotionNotify{X: 15, Y: 12},
		ports.MotionNotify{X: 20, Y: 20},
		ports.ButtonRelease{Button: ports.ButtonMiddle, X: 20, Y: 20},
	)

	f.expectCalls(t, "MoveRelative(5,2)", "Render", "MoveRelative(5,8)", "Render")
	if want := []ports.Cursor{ports.CursorHand, ports.CursorArrow}; !reflect.DeepEqual(f.window.Cursors, want) {
		t.Errorf("cursors = %v, want %v", f.window.Cursors, want)
	}
	if len(f.window.Selections) != 0 {
		t.Errorf("pan drew %d selections", len(f.window.Selections))
	}
}

func TestViewer_CropGesture(t *testing.T) {
	f := newFixture()
	f.canvas.pos = image.Pt(100, 50)

	f.handle(t,
		ports.ButtonPress{Button: ports.ButtonLeft, X: 160, Y: 100},
		ports.MotionNotify{X: 130, Y: 70},
		ports.ButtonRelease{Button: ports.ButtonLeft, X: 110, Y: 60},
	)

	f.expectCalls(t, "Render", "Crop(10,10,50,40)", "MoveToCenter", "Render")
	if want := []image.Rectangle{image.Rect(130, 70, 160, 100)}; !reflect.DeepEqual(f.window.Selections, want) {
		t.Errorf("selections = %v, want %v", f.window.Selections, want)
	}
	if want := []ports.Cursor{ports.CursorCrosshair, ports.CursorArrow}; !reflect.DeepEqual(f.window.Cursors, want) {
		t.Errorf("cursors = %v, want %v", f.window.Cursors, want)
	}
}

func TestViewer_BlurGesture(t *testing.T) {
	f := newFixture()

	f.handle(t,
		ports.ButtonPress{Button: ports.ButtonRight, X: 5, Y: 5},
		ports.ButtonRelease{Button: ports.ButtonRight, X: 25, Y: 15},
	)

	f.expectCalls(t, "Blur(5,5,20,10)", "Render")
}

func TestViewer_OneGestureAtATime(t *testing.T) {
	f := newFixture()

	f.handle(t,
		ports.ButtonPress{Button: ports.ButtonLeft, X: 0, Y: 0},
		ports.ButtonPress{Button: ports.ButtonMiddle, X: 3, Y: 3},
		ports.ButtonRelease{Button: ports.ButtonMiddle, X: 3, Y: 3},
		ports.ButtonRelease{Button: ports.ButtonLeft, X: 4, Y: 4},
	)

	f.expectCalls(t, "Crop(0,0,4,4)", "MoveToCenter", "Render")
}

func TestViewer_EscapeCancels(t *testing.T) {
	f := newFixture()

	f.handle(t,
		ports.ButtonPress{Button: ports.ButtonRight, X: 0, Y: 0},
		ports.KeyPress{Keysym: ports.KeyEscape},
		ports.MotionNotify{X: 9, Y: 9},
		ports.ButtonRelease{Button: ports.ButtonRight, X: 9, Y: 9},
	)

	f.expectCalls(t, "Render")
	if f.window.Cursor() != ports.CursorArrow {
		t.Errorf("cursor = %v, want arrow", f.window.Cursor())
	}
}

func TestViewer_EscapeIgnoredWhilePanning(t *testing.T) {
	f := newFixture()

	f.handle(t,
		ports.KeyPress{Keysym: ports.KeyEscape},
		ports.ButtonPress{Button: ports.ButtonMiddle, X: 0, Y: 0},
		ports.KeyPress{Keysym: ports.KeyEscape},
		ports.MotionNotify{X: 1, Y: 0},
	)

	f.expectCalls(t, "MoveRelative(1,0)", "Render")
}

func TestViewer_ConfigureRecenters(t *testing.T) {
	f := newFixture()

	f.handle(t, ports.ConfigureNotify{Width: 1024, Height: 768}, ports.Expose{})

	f.expectCalls(t, "SetViewport(1024,768)", "MoveToCenter", "Render")
}

func TestViewer_CropOutOfMemoryKeepsRunning(t *testing.T) {
	f := newFixture()
	f.canvas.cropErr = fmt.Errorf("crop: %w", canvas.ErrResourceExhausted)

	f.handle(t,
		ports.ButtonPress{Button: ports.ButtonLeft, X: 0, Y: 0},
		ports.ButtonRelease{Button: ports.ButtonLeft, X: 4, Y: 4},
	)

	if len(f.notifier.Notifications) != 1 {
		t.Errorf("notifications = %v, want one", f.notifier.Notifications)
	}
}

func TestViewer_CropFailureStops(t *testing.T) {
	f := newFixture()
	f.canvas.cropErr = canvas.ErrClosed

	f.handle(t, ports.ButtonPress{Button: ports.ButtonLeft, X: 0, Y: 0})
	err := f.viewer.Handle(ports.ButtonRelease{Button: ports.ButtonLeft, X: 4, Y: 4})
	if !errors.Is(err, canvas.ErrClosed) {
		t.Errorf("Handle() error = %v, want ErrClosed", err)
	}
}

func TestViewer_Save(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XCANDB_TEST_NAME", "shot")

	f := newFixture()
	f.prompter.PromptFunc = func(string) (string, bool, error) {
		return "~/$XCANDB_TEST_NAME.png", true, nil
	}

	f.handle(t, ports.KeyPress{Keysym: ports.KeyS, Control: true})

	want := filepath.Join(home, "shot.png")
	f.expectCalls(t, "Save("+want+")")
	if !reflect.DeepEqual(f.prompter.Prompts, []string{SavePrompt}) {
		t.Errorf("prompts = %q", f.prompter.Prompts)
	}
	wantNote := mocks.Notification{Summary: "xcandb", Body: l10n.F("Saved image to %s", want)}
	if !reflect.DeepEqual(f.notifier.Notifications, []mocks.Notification{wantNote}) {
		t.Errorf("notifications = %v, want %v", f.notifier.Notifications, wantNote)
	}
}

func TestViewer_SaveOutcomes(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		ok        bool
		promptErr error
		writable  bool
		saveErr   error
		wantSave  bool
		wantNotes int
	}{
		{"dismissed", "", false, nil, true, nil, false, 0},
		{"prompt error", "", false, errors.New("boom"), true, nil, false, 1},
		{"not writable", "/ro/out.png", true, nil, false, nil, false, 1},
		{"save error", "/tmp/out.png", true, nil, true, canvas.ErrEncodeFailed, true, 1},
		{"plain key s", "", false, nil, true, nil, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.canvas.saveErr = tt.saveErr
			f.fs.WritableFunc = func(string) bool { return tt.writable }
			f.prompter.PromptFunc = func(string) (string, bool, error) {
				return tt.answer, tt.ok, tt.promptErr
			}

			f.handle(t, ports.KeyPress{Keysym: ports.KeyS, Control: tt.name != "plain key s"})

			if saved := len(f.canvas.calls) == 1; saved != tt.wantSave {
				t.Errorf("saved = %v, want %v (calls %q)", saved, tt.wantSave, f.canvas.calls)
			}
			if len(f.notifier.Notifications) != tt.wantNotes {
				t.Errorf("notifications = %v, want %d", f.notifier.Notifications, tt.wantNotes)
			}
		})
	}
}

func TestViewer_Run(t *testing.T) {
	f := newFixture()
	events := mocks.NewEventSource(ports.Expose{}, ports.CloseRequest{}, ports.Expose{})
	f.viewer.events = events

	if err := f.viewer.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !f.viewer.Closed() {
		t.Error("viewer not closed")
	}
	f.expectCalls(t, "Render", "Render")
	if len(events.Events) != 1 {
		t.Errorf("%d events left, want 1", len(events.Events))
	}
}

func TestViewer_RunCancelled(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := f.viewer.Run(ctx); err != nil {
		t.Errorf("Run() error = %v, want nil", err)
	}
}

func TestViewer_RunSourceError(t *testing.T) {
	f := newFixture()
	sentinel := errors.New("connection lost")
	f.viewer.events = &mocks.EventSource{Err: sentinel}

	if err := f.viewer.Run(context.Background()); !errors.Is(err, sentinel) {
		t.Errorf("Run() error = %v, want %v", err, sentinel)
	}
}

func TestViewer_RunRenderError(t *testing.T) {
	f := newFixture()
	f.canvas.renderErr = errors.New("bad drawable")

	if err := f.viewer.Run(context.Background()); err == nil {
		t.Error("Run() error = nil, want render failure")
	}
}
