package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gosh.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Prompt != DefaultPrompt {
		t.Fatalf("expected default prompt %q, got %q", DefaultPrompt, cfg.Prompt)
	}
	if cfg.ShowPrompt == nil || !*cfg.ShowPrompt {
		t.Fatalf("expected prompt shown by default")
	}
	if cfg.NotifyResumed == nil || !*cfg.NotifyResumed {
		t.Fatalf("expected resume notifications on by default")
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "prompt: \"$ \"\nshow_prompt: false\nnotify_resumed: false\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Prompt != "$ " {
		t.Fatalf("expected prompt %q, got %q", "$ ", cfg.Prompt)
	}
	if *cfg.ShowPrompt {
		t.Fatalf("expected prompt disabled")
	}
	if *cfg.NotifyResumed {
		t.Fatalf("expected resume notifications disabled")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "show_prompt: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Prompt != DefaultPrompt {
		t.Fatalf("expected default prompt, got %q", cfg.Prompt)
	}
	if cfg.NotifyResumed == nil || !*cfg.NotifyResumed {
		t.Fatalf("expected resume notifications defaulted on")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "prompt: \"$ \"\ncolour: red\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}

func TestLoadRejectsMultilinePrompt(t *testing.T) {
	path := writeConfig(t, "prompt: \"a\\nb\"\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "line breaks") {
		t.Fatalf("expected prompt validation error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
