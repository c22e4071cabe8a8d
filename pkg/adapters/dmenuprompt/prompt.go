// Package dmenuprompt asks for a line of text through an external menu
// program such as dmenu.
package dmenuprompt

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/user/xcandb/pkg/ports"
)

// Placeholder is replaced by the prompt text in the command arguments.
const Placeholder = "{prompt}"

// DefaultCommand runs dmenu with the prompt as its label.
var DefaultCommand = []string{"dmenu", "-p", Placeholder}

// Prompter implements ports.Prompter by running a command with empty input
// and reading the first line it prints.
type Prompter struct {
	command []string
}

// New creates a Prompter for the given command line. An empty command
// selects DefaultCommand.
func New(command []string) *Prompter {
	if len(command) == 0 {
		command = DefaultCommand
	}
	return &Prompter{command: command}
}

// Prompt runs the command. A non-zero exit status, as dmenu uses for
// Escape, or an empty answer counts as dismissed.
func (p *Prompter) Prompt(prompt string) (string, bool, error) {
	args := make([]string, len(p.command)-1)
	for i, a := range p.command[1:] {
		args[i] = strings.ReplaceAll(a, Placeholder, prompt)
	}

	cmd := exec.Command(p.command[0], args...)
	cmd.Stdin = strings.NewReader("")
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("run %s: %w", p.command[0], err)
	}

	line, _, _ := bytes.Cut(out, []byte("\n"))
	text := strings.TrimSpace(string(line))
	return text, text != "", nil
}

// Ensure Prompter implements ports.Prompter
var _ ports.Prompter = (*Prompter)(nil)
