package app

import (
	"fmt"

	"github.com/atomicstack/fbui/internal/backend"
	"github.com/atomicstack/fbui/internal/backend/program"
	"github.com/atomicstack/fbui/internal/backend/screen"
	"github.com/atomicstack/fbui/internal/graphics"
	"github.com/atomicstack/fbui/internal/notes"
	"github.com/atomicstack/fbui/internal/theme"
	"github.com/atomicstack/fbui/internal/widget"
	"github.com/muesli/termenv"
)

// Backend names accepted by Config.Backend.
const (
	BackendTcell = "tcell"
	BackendTea   = "tea"
)

// Config describes user-provided application options.
type Config struct {
	Backend      string
	Width        int
	Height       int
	ThemePath    string
	Overflow     widget.Overflow
	DebugBorders bool
}

// Driver is a terminal that shows a canvas and reads keys.
type Driver interface {
	graphics.Surface
	graphics.Flusher
	KeySource
	Resolution() graphics.Size
	Close() error
}

// Run loads the theme, opens the driver and runs the notes screen until it
// quits.
func Run(cfg Config) (err error) {
	th := theme.Default()
	if cfg.ThemePath != "" {
		if th, err = theme.Load(cfg.ThemePath); err != nil {
			return fmt.Errorf("load theme: %w", err)
		}
	}

	driver, err := openDriver(cfg.Backend, backend.Options{Scale: th.FontSizes.P})
	if err != nil {
		return fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}
	defer func() {
		if cerr := driver.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	g := graphics.New(driver, th)
	g.DebugBorders = cfg.DebugBorders
	if cfg.Width > 0 && cfg.Height > 0 {
		g.SetResolution(cfg.Width, cfg.Height)
	}

	root := notes.New(notes.Config{
		ID:       "notes",
		Size:     driver.Resolution(),
		Overflow: cfg.Overflow,
	}, g.Metrics())
	return New(root, g, driver).Run()
}

func openDriver(name string, opts backend.Options) (Driver, error) {
	switch name {
	case "", BackendTcell:
		s, err := screen.New(opts)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendTea:
		p, err := program.New(program.Config{Canvas: opts, Profile: termenv.EnvColorProfile()})
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}
