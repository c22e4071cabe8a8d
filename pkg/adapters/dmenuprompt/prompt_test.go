package dmenuprompt

import (
	"os/exec"
	"testing"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestPrompter_Answer(t *testing.T) {
	requireSh(t)
	p := New([]string{"sh", "-c", `printf '  %s.png  \nignored\n' "$1"`, "sh", Placeholder})

	text, ok, err := p.Prompt("save as...")
	if err != nil {
		t.Fatalf("Prompt failed: %v", err)
	}
	if !ok || text != "save as....png" {
		t.Errorf("Prompt() = %q, %v; want %q, true", text, ok, "save as....png")
	}
}

func TestPrompter_Dismissed(t *testing.T) {
	requireSh(t)

	for _, script := range []string{"exit 1", "true", "echo '   '"} {
		text, ok, err := New([]string{"sh", "-c", script}).Prompt("x")
		if err != nil {
			t.Errorf("%q: unexpected error %v", script, err)
		}
		if ok || text != "" {
			t.Errorf("%q: Prompt() = %q, %v; want dismissed", script, text, ok)
		}
	}
}

func TestPrompter_MissingCommand(t *testing.T) {
	_, ok, err := New([]string{"/nonexistent/menu-program"}).Prompt("x")
	if err == nil || ok {
		t.Errorf("expected an error for a missing command, got ok=%v err=%v", ok, err)
	}
}

func TestNew_Default(t *testing.T) {
	p := New(nil)
	if len(p.command) != 3 || p.command[0] != "dmenu" || p.command[2] != Placeholder {
		t.Errorf("unexpected default command %v", p.command)
	}
}
