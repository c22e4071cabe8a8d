package ports

// Notifier shows short desktop notifications.
type Notifier interface {
	// Notify displays body under the given summary.
	Notify(summary, body string) error

	// Close releases the notifier's connection, if any.
	Close() error
}

// Prompter asks the user for a line of text.
type Prompter interface {
	// Prompt shows the prompt and returns the entered text.
	// ok is false when the user dismissed the prompt.
	Prompt(prompt string) (text string, ok bool, err error)
}
