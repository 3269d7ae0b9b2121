package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if !filepath.IsAbs(cfg.Paths.AudiotracksDir) {
		t.Fatalf("expected absolute audiotracks dir, got %q", cfg.Paths.AudiotracksDir)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
audiotracks_dir = "` + dir + `/tracks"
output_dir = "` + dir + `/out"

[render]
write_speaker_tracks = false

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %s to be read, got %s (exists=%v)", path, resolved, exists)
	}
	if cfg.Paths.AudiotracksDir != filepath.Join(dir, "tracks") {
		t.Fatalf("unexpected audiotracks dir: %q", cfg.Paths.AudiotracksDir)
	}
	if cfg.Render.WriteSpeakerTracks {
		t.Fatal("expected write_speaker_tracks to be overridden to false")
	}
	if !cfg.Render.WriteMix {
		t.Fatal("expected write_mix default to survive")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected log level %q", cfg.Logging.Level)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, _, _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantIn string
	}{
		{"empty audiotracks dir", func(c *Config) { c.Paths.AudiotracksDir = "" }, "audiotracks_dir"},
		{"empty output dir", func(c *Config) { c.Paths.OutputDir = "" }, "output_dir"},
		{"history without path", func(c *Config) { c.History.Path = "" }, "history.path"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Fatalf("error %q does not mention %q", err, tt.wantIn)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected sample log format %q", cfg.Logging.Format)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := ExpandPath("~/tracks")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "tracks") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
