package mocks

import (
	"context"
	"image"

	"github.com/user/xcandb/pkg/ports"
)

// Window is a mock implementation of ports.Window.
type Window struct {
	Cursors    []ports.Cursor
	Selections []image.Rectangle

	SetCursorFunc     func(c ports.Cursor) error
	DrawSelectionFunc func(r image.Rectangle) error
}

func (m *Window) SetCursor(c ports.Cursor) error {
	m.Cursors = append(m.Cursors, c)
	if m.SetCursorFunc != nil {
		return m.SetCursorFunc(c)
	}
	return nil
}

func (m *Window) DrawSelection(r image.Rectangle) error {
	m.Selections = append(m.Selections, r)
	if m.DrawSelectionFunc != nil {
		return m.DrawSelectionFunc(r)
	}
	return nil
}

// Cursor returns the most recently set cursor, CursorArrow if none.
func (m *Window) Cursor() ports.Cursor {
	if len(m.Cursors) == 0 {
		return ports.CursorArrow
	}
	return m.Cursors[len(m.Cursors)-1]
}

// EventSource is a mock implementation of ports.EventSource replaying a
// fixed list of events. Once they run out NextEvent returns Err, or blocks
// until the context is done when Err is nil.
type EventSource struct {
	Events []ports.Event
	Err    error
}

// NewEventSource creates an EventSource replaying events.
func NewEventSource(events ...ports.Event) *EventSource {
	return &EventSource{Events: events}
}

func (m *EventSource) NextEvent(ctx context.Context) (ports.Event, error) {
	if len(m.Events) > 0 {
		ev := m.Events[0]
		m.Events = m.Events[1:]
		return ev, nil
	}
	if m.Err != nil {
		return nil, m.Err
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

var (
	_ ports.Window      = (*Window)(nil)
	_ ports.EventSource = (*EventSource)(nil)
)
