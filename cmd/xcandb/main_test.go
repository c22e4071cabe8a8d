package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/user/xcandb/pkg/adapters/logger"
	"github.com/user/xcandb/pkg/adapters/lognotify"
)

func TestBuildConfig_Overrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	strength := 4
	cmd := &CLI{
		Fullscreen:   true,
		NoShm:        true,
		BlurStrength: &strength,
		NoNotify:     true,
		LogLevel:     "debug",
	}

	cfg, err := cmd.buildConfig()
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}
	if !cfg.Fullscreen || !cfg.NoShm || cfg.Notify || cfg.BlurStrength != 4 || cfg.LogLevel != "debug" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestBuildConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xcandb.yaml")
	if err := os.WriteFile(path, []byte("blur_strength: 2\nlog_level: warn\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := (&CLI{Config: path}).buildConfig()
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}
	if cfg.BlurStrength != 2 || cfg.LogLevel != "warn" {
		t.Errorf("file values not loaded: %+v", cfg)
	}

	if _, err := (&CLI{Config: path + ".missing"}).buildConfig(); err == nil {
		t.Error("missing explicit config accepted")
	}
}

func TestOpenNotifier_Disabled(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := (&CLI{NoNotify: true}).buildConfig()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := openNotifier(cfg, logger.NewNoop()).(*lognotify.Notifier); !ok {
		t.Error("disabled notifications did not select the log notifier")
	}
}
