package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/fbui/internal/app"
	"github.com/atomicstack/fbui/internal/backend"
	"github.com/atomicstack/fbui/internal/config"
	"github.com/atomicstack/fbui/internal/graphics"
	"github.com/atomicstack/fbui/internal/logging"
	"github.com/atomicstack/fbui/internal/logging/events"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg))

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload records what the process was started with and what
// kind of terminal it found.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = logging.Path()

	payload := map[string]interface{}{
		"argv":         cfg.Args,
		"flags":        flags,
		"config":       cfg,
		"colorProfile": profileName(termenv.EnvColorProfile()),
		"terminal":     probeTerminal(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	return payload
}

// profileName labels what the tea backend will be able to render.
func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	}
	return "ascii"
}

type terminalInfo struct {
	// Resolution is the unscaled pixel size of the first descriptor that
	// reports a size.
	Resolution  string           `json:"resolution,omitempty"`
	Descriptors []descriptorInfo `json:"descriptors"`
}

type descriptorInfo struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Cols     int    `json:"cols,omitempty"`
	Rows     int    `json:"rows,omitempty"`
	Error    string `json:"error,omitempty"`
}

func probeTerminal() terminalInfo {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}

	var info terminalInfo
	for i, f := range files {
		d := descriptorInfo{Name: names[i]}
		fd := int(f.Fd())
		if fd >= 0 && term.IsTerminal(fd) {
			d.Terminal = true
			cols, rows, err := term.GetSize(fd)
			switch {
			case err != nil:
				d.Error = err.Error()
			default:
				d.Cols, d.Rows = cols, rows
				if info.Resolution == "" {
					info.Resolution = graphics.Size{Width: cols * backend.DefaultGlyphWidth, Height: rows * backend.DefaultGlyphHeight}.String()
				}
			}
		}
		info.Descriptors = append(info.Descriptors, d)
	}
	return info
}
