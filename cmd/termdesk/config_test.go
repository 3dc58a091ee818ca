package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Backend != "ansi" {
		t.Errorf("Expected ansi backend, got %q", cfg.Backend)
	}
	if cfg.PollTimeout != 100*time.Millisecond {
		t.Errorf("Expected 100ms poll timeout, got %v", cfg.PollTimeout)
	}
	if !cfg.Mouse {
		t.Errorf("Expected mouse enabled by default")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Errorf("Expected missing file to be ignored, got %v", err)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termdesk.yaml")
	data := "backend: tcell\npalette: bw\npoll-timeout: 250ms\nbell: \"off\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TERMDESK_PALETTE", "mono")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Backend != "tcell" {
		t.Errorf("Expected tcell from file, got %q", cfg.Backend)
	}
	if cfg.Palette != "mono" {
		t.Errorf("Expected environment to override file, got %q", cfg.Palette)
	}
	if cfg.PollTimeout != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %v", cfg.PollTimeout)
	}
	if cfg.Bell != "off" {
		t.Errorf("Expected bell off, got %q", cfg.Bell)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
	}{
		{"backend", "TERMDESK_BACKEND", "curses"},
		{"bell", "TERMDESK_BELL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.val)
			if _, err := loadConfig(""); err == nil {
				t.Errorf("Expected error for %s=%s", tt.env, tt.val)
			}
		})
	}
}
