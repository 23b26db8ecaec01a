package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/fbui/internal/app"
	"github.com/atomicstack/fbui/internal/widget"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envBackend      = "FBUI_BACKEND"
	envWidth        = "FBUI_WIDTH"
	envHeight       = "FBUI_HEIGHT"
	envTheme        = "FBUI_THEME"
	envOverflow     = "FBUI_OVERFLOW"
	envDebugBorders = "FBUI_DEBUG_BORDERS"
	envTrace        = "FBUI_TRACE"
	envLogFile      = "FBUI_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("fbui", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	backendName := fs.String("backend", env.String(envBackend, app.BackendTcell), "terminal backend: tcell or tea")
	width := fs.Int("width", env.Int(envWidth, 0), "resolution width in pixels (0 keeps the terminal size)")
	height := fs.Int("height", env.Int(envHeight, 0), "resolution height in pixels (0 keeps the terminal size)")
	themePath := fs.String("theme", env.String(envTheme, ""), "path to a .toml or .yaml theme file")
	overflow := fs.String("overflow", env.String(envOverflow, widget.Wrap.String()), "long line handling: wrap or scroll")
	debugBorders := fs.Bool("debug-borders", env.Bool(envDebugBorders, false), "outline every rectangle")
	trace := fs.Bool("trace", env.Bool(envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", env.String(envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	mode, err := widget.ParseOverflow(*overflow)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Backend:      *backendName,
			Width:        *width,
			Height:       *height,
			ThemePath:    *themePath,
			Overflow:     mode,
			DebugBorders: *debugBorders,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"backend":      *backendName,
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"theme":        *themePath,
			"overflow":     mode.String(),
			"debugBorders": strconv.FormatBool(*debugBorders),
			"trace":        strconv.FormatBool(*trace),
			"logFile":      *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// environment is the process environment keyed by variable name.
type environment map[string]string

func parseEnv(environ []string) environment {
	values := make(environment, len(environ))
	for _, entry := range environ {
		k, v, ok := strings.Cut(entry, "=")
		if !ok || k == "" {
			continue
		}
		values[k] = v
	}
	return values
}

func (e environment) String(key, fallback string) string {
	if v, ok := e[key]; ok {
		return v
	}
	return fallback
}

// lookup returns the trimmed value, or false when unset or blank.
func (e environment) lookup(key string) (string, bool) {
	v := strings.TrimSpace(e[key])
	return v, v != ""
}

// Int and Bool ignore values that do not parse.
func (e environment) Int(key string, fallback int) int {
	if v, ok := e.lookup(key); ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func (e environment) Bool(key string, fallback bool) bool {
	if v, ok := e.lookup(key); ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects settings the application cannot start with.
func Validate(cfg Config) error {
	switch cfg.App.Backend {
	case app.BackendTcell, app.BackendTea:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", cfg.App.Backend, app.BackendTcell, app.BackendTea)
	}
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if (cfg.App.Width == 0) != (cfg.App.Height == 0) {
		return fmt.Errorf("width and height must be set together (got %dx%d)", cfg.App.Width, cfg.App.Height)
	}
	if cfg.App.ThemePath != "" {
		info, err := os.Stat(cfg.App.ThemePath)
		if err != nil {
			return fmt.Errorf("theme: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("theme %s is a directory", cfg.App.ThemePath)
		}
	}
	return nil
}
