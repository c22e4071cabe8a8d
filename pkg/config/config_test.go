package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 600 || cfg.BlurStrength != 10 || cfg.MaxLocalBufferMiB != 16 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.PromptCommand, []string{"dmenu", "-p", "{prompt}"}) {
		t.Errorf("PromptCommand = %q", cfg.PromptCommand)
	}

	// Defaults must not share the package-level command slice.
	cfg.PromptCommand[0] = "rofi"
	if Defaults().PromptCommand[0] != "dmenu" {
		t.Error("Defaults() aliases DefaultCommand")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
width: 1280
fullscreen: true
background: "#102030"
no_shm: true
blur_strength: 3
prompt_command: ["rofi", "-dmenu", "-p", "{prompt}"]
notify: false
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Width != 1280 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 1280x600", cfg.Width, cfg.Height)
	}
	if !cfg.Fullscreen || !cfg.NoShm || cfg.Notify {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.PromptCommand[0] != "rofi" || len(cfg.PromptCommand) != 4 {
		t.Errorf("PromptCommand = %q", cfg.PromptCommand)
	}

	opts := cfg.ToCanvasOptions()
	if !opts.ForceLocal || opts.BlurStrength != 3 || opts.MaxLocalBufferMiB != 16 || opts.BlurWorkers < 1 {
		t.Errorf("ToCanvasOptions() = %+v", opts)
	}

	wc := cfg.ToWindowConfig()
	if wc.Width != 1280 || !wc.Fullscreen || wc.Background != 0x102030 || wc.Title != "xcandb" {
		t.Errorf("ToWindowConfig() = %+v", wc)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
	if _, err := LoadFromFile(writeConfig(t, "width: [")); err == nil {
		t.Error("malformed YAML accepted")
	}
	if _, err := LoadFromFile(writeConfig(t, "background: teal")); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("bad color error = %v", err)
	}
	if _, err := LoadFromFile(writeConfig(t, "height: 0")); err == nil {
		t.Error("zero height accepted")
	}
	if _, err := LoadFromFile(writeConfig(t, "prompt_command: []")); err == nil {
		t.Error("empty prompt command accepted")
	}
}

func TestLoadDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := LoadDefault()
	if err != nil || !reflect.DeepEqual(cfg, Defaults()) {
		t.Fatalf("LoadDefault() without file = %+v, %v", cfg, err)
	}

	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "xcandb", "config.yaml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("height: 900\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if cfg, err := LoadDefault(); err != nil || cfg.Height != 900 {
		t.Errorf("LoadDefault() = %+v, %v", cfg, err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"#1e1e1e", 0x1e1e1e, false},
		{"FFAA00", 0xffaa00, false},
		{"#000000", 0, false},
		{"", 0, true},
		{"#fff", 0, true},
		{"#12345g", 0, true},
		{"#1234567", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}
