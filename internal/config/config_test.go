package config

import (
	"path/filepath"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DAYDASH_DATA_DIR", dir)

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.DataDir != dir {
		t.Fatalf("DataDir=%q, want %q", cfg.DataDir, dir)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel=%q, want warn", cfg.LogLevel)
	}
	if cfg.Ephemeral {
		t.Fatal("Ephemeral should default to false")
	}
	if got, want := cfg.DBPath(), filepath.Join(dir, "daydash.db"); got != want {
		t.Fatalf("DBPath=%q, want %q", got, want)
	}
	if got, want := cfg.LogPath(), filepath.Join(dir, "daydash.log"); got != want {
		t.Fatalf("LogPath=%q, want %q", got, want)
	}
}

func TestParseXDGFallback(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("DAYDASH_DATA_DIR", "")
	t.Setenv("XDG_DATA_HOME", xdg)

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if want := filepath.Join(xdg, "daydash"); cfg.DataDir != want {
		t.Fatalf("DataDir=%q, want %q", cfg.DataDir, want)
	}
}

func TestParseEphemeral(t *testing.T) {
	t.Setenv("DAYDASH_DATA_DIR", t.TempDir())
	t.Setenv("DAYDASH_EPHEMERAL", "true")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cfg.Ephemeral {
		t.Fatal("Ephemeral not parsed")
	}
}
