package mocks

import "github.com/user/xcandb/pkg/ports"

// Notification records one Notify call.
type Notification struct {
	Summary string
	Body    string
}

// Notifier is a mock implementation of ports.Notifier.
type Notifier struct {
	Notifications []Notification
	Closed        bool

	NotifyFunc func(summary, body string) error
}

func (m *Notifier) Notify(summary, body string) error {
	m.Notifications = append(m.Notifications, Notification{Summary: summary, Body: body})
	if m.NotifyFunc != nil {
		return m.NotifyFunc(summary, body)
	}
	return nil
}

func (m *Notifier) Close() error {
	m.Closed = true
	return nil
}

// Prompter is a mock implementation of ports.Prompter.
type Prompter struct {
	Prompts []string

	PromptFunc func(prompt string) (string, bool, error)
}

func (m *Prompter) Prompt(prompt string) (string, bool, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.PromptFunc != nil {
		return m.PromptFunc(prompt)
	}
	return "", false, nil
}

var (
	_ ports.Notifier = (*Notifier)(nil)
	_ ports.Prompter = (*Prompter)(nil)
)
