package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/fbui/internal/app"
	"github.com/atomicstack/fbui/internal/widget"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := app.Config{Backend: app.BackendTcell, Overflow: widget.Wrap}
	if cfg.App != want {
		t.Fatalf("expected %#v, got %#v", want, cfg.App)
	}
	if cfg.Logging.Trace || cfg.Logging.FilePath != "" {
		t.Fatalf("unexpected logging defaults %#v", cfg.Logging)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadArgsEnvironmentThenFlags(t *testing.T) {
	environ := []string{
		envBackend + "=tea",
		envWidth + "=640",
		envHeight + "=480",
		envOverflow + "=scroll",
		envTrace + "=1",
		envDebugBorders + "=notabool",
		"MALFORMED",
	}
	cfg, err := LoadArgs([]string{"-width", "800", "-height", "600", "-debug-borders"}, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Backend != app.BackendTea || cfg.App.Overflow != widget.Scroll {
		t.Fatalf("environment not applied: %#v", cfg.App)
	}
	if cfg.App.Width != 800 || cfg.App.Height != 600 {
		t.Fatalf("flags should win over environment, got %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if !cfg.App.DebugBorders || !cfg.Logging.Trace {
		t.Fatalf("expected debug borders and trace enabled")
	}
	if cfg.Flags["overflow"] != "scroll" || cfg.Flags["width"] != "800" {
		t.Fatalf("unexpected flag snapshot %v", cfg.Flags)
	}
	if len(cfg.Args) != 5 {
		t.Fatalf("expected args preserved, got %v", cfg.Args)
	}
}

func TestLoadArgsRejectsUnknownOverflow(t *testing.T) {
	if _, err := LoadArgs([]string{"-overflow", "clip"}, nil); err == nil {
		t.Fatalf("expected overflow error")
	}
	if _, err := LoadArgs([]string{"-nope"}, nil); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

func TestValidate(t *testing.T) {
	themeFile := filepath.Join(t.TempDir(), "theme.toml")
	if err := os.WriteFile(themeFile, []byte("[font_sizes]\np = 1\n"), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}
	cases := []struct {
		name string
		cfg  app.Config
		want string
	}{
		{"ok", app.Config{Backend: app.BackendTea, Width: 640, Height: 480, ThemePath: themeFile}, ""},
		{"backend", app.Config{Backend: "x11"}, "unknown backend"},
		{"negative", app.Config{Backend: app.BackendTcell, Width: -1, Height: 10}, "width must be"},
		{"half", app.Config{Backend: app.BackendTcell, Width: 640}, "set together"},
		{"missing theme", app.Config{Backend: app.BackendTcell, ThemePath: themeFile + ".gone"}, "theme"},
		{"theme dir", app.Config{Backend: app.BackendTcell, ThemePath: t.TempDir()}, "directory"},
	}
	for _, tc := range cases {
		err := Validate(Config{App: tc.cfg})
		if tc.want == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}
}
