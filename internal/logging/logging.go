// Package logging writes plain log lines and JSON trace entries to one file.
// The terminal belongs to the UI while it runs, so nothing goes to stdout.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "fbui.log"

type settings struct {
	mu    sync.Mutex
	path  string
	trace bool
	seq   uint64
}

var current = &settings{path: defaultLogFile}

func (s *settings) destination() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	appendTo(current.destination(), func(w io.Writer) error {
		log.New(w, "error: ", log.LstdFlags).Println(err)
		return nil
	})
}

// Infof writes an informational line to the shared log file.
func Infof(format string, args ...interface{}) {
	appendTo(current.destination(), func(w io.Writer) error {
		log.New(w, "", log.LstdFlags).Printf(format, args...)
		return nil
	})
}

// appendTo opens path for appending for the duration of fn. Failures go to
// stderr since there is nowhere else to report them.
func appendTo(path string, fn func(io.Writer) error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()
	if err := fn(f); err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
	}
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	current.mu.Lock()
	current.trace = enabled
	current.mu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	current.mu.Lock()
	defer current.mu.Unlock()
	return current.trace
}

type traceEntry struct {
	Time    time.Time   `json:"time"`
	Seq     uint64      `json:"seq"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Trace appends one JSON line when tracing is enabled. Seq numbers entries
// in emission order within the process.
func Trace(event string, payload interface{}) {
	current.mu.Lock()
	if !current.trace {
		current.mu.Unlock()
		return
	}
	current.seq++
	entry := traceEntry{Time: time.Now().UTC(), Seq: current.seq, Event: event, Payload: payload}
	path := current.path
	current.mu.Unlock()

	appendTo(path, func(w io.Writer) error {
		return json.NewEncoder(w).Encode(entry)
	})
}

// Configure sets the log destination. Empty values fall back to the default
// path; missing directories are created.
func Configure(path string) {
	current.mu.Lock()
	defer current.mu.Unlock()
	current.path = defaultLogFile
	if strings.TrimSpace(path) == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		return
	}
	current.path = path
}

// Path returns the current log destination.
func Path() string {
	return current.destination()
}
