// Package program presents a backend.Canvas through a Bubble Tea program.
//
// The program runs on its own goroutine. Keys travel to the widget loop over
// a channel and finished frames travel back as strings, so the canvas is only
// ever touched by the loop goroutine.
package program

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/atomicstack/fbui/internal/backend"
	"github.com/atomicstack/fbui/internal/key"
	"github.com/atomicstack/fbui/internal/theme"
	teakey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	fallbackCols = 80
	fallbackRows = 24
)

// Config describes the terminal the program runs on. Zero values select the
// process's terminal.
type Config struct {
	Canvas  backend.Options
	Input   io.Reader
	Output  io.Writer
	Profile termenv.Profile
	Cols    int
	Rows    int
}

type keyEvent struct {
	key key.Key
	err error
}

type frameMsg string

var bindings = []struct {
	binding teakey.Binding
	key     key.Key
}{
	{teakey.NewBinding(teakey.WithKeys("up")), key.Special(key.ScanUp)},
	{teakey.NewBinding(teakey.WithKeys("down")), key.Special(key.ScanDown)},
	{teakey.NewBinding(teakey.WithKeys("left")), key.Special(key.ScanLeft)},
	{teakey.NewBinding(teakey.WithKeys("right")), key.Special(key.ScanRight)},
	{teakey.NewBinding(teakey.WithKeys("home")), key.Special(key.ScanHome)},
	{teakey.NewBinding(teakey.WithKeys("end")), key.Special(key.ScanEnd)},
	{teakey.NewBinding(teakey.WithKeys("insert")), key.Special(key.ScanInsert)},
	{teakey.NewBinding(teakey.WithKeys("delete")), key.Special(key.ScanDelete)},
	{teakey.NewBinding(teakey.WithKeys("pgup")), key.Special(key.ScanPageUp)},
	{teakey.NewBinding(teakey.WithKeys("pgdown")), key.Special(key.ScanPageDown)},
	{teakey.NewBinding(teakey.WithKeys("esc")), key.Special(key.ScanEscape)},
	{teakey.NewBinding(teakey.WithKeys("backspace")), key.Printable(key.Backspace)},
	{teakey.NewBinding(teakey.WithKeys("enter")), key.Printable(key.Enter)},
	{teakey.NewBinding(teakey.WithKeys("tab")), key.Printable(key.Tab)},
	{teakey.NewBinding(teakey.WithKeys("ctrl+w")), key.Printable(key.NextWidget)},
}

var interrupt = teakey.NewBinding(teakey.WithKeys("ctrl+c"))

// translate maps a Bubble Tea key message. Pasted text arrives as several
// runes and yields one key per rune.
func translate(msg tea.KeyMsg) ([]key.Key, error) {
	if teakey.Matches(msg, interrupt) {
		return nil, key.ErrInterrupted
	}
	for _, b := range bindings {
		if teakey.Matches(msg, b.binding) {
			return []key.Key{b.key}, nil
		}
	}
	if msg.Type == tea.KeySpace {
		return []key.Key{key.Printable(' ')}, nil
	}
	if msg.Type != tea.KeyRunes || msg.Alt {
		return nil, nil
	}
	keys := make([]key.Key, len(msg.Runes))
	for i, r := range msg.Runes {
		keys[i] = key.Printable(r)
	}
	return keys, nil
}

type model struct {
	frame string
	keys  chan<- keyEvent
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = string(msg)
	case tea.KeyMsg:
		keys, err := translate(msg)
		if err != nil {
			m.keys <- keyEvent{err: err}
			return m, tea.Quit
		}
		for _, k := range keys {
			m.keys <- keyEvent{key: k}
		}
	}
	return m, nil
}

func (m *model) View() string {
	return m.frame
}

// Program is a canvas shown by a running Bubble Tea program.
type Program struct {
	*backend.Canvas
	program  *tea.Program
	renderer *lipgloss.Renderer
	cols     int
	keys     chan keyEvent
	exit     chan error
}

// New sizes a canvas to the terminal and starts the program.
func New(cfg Config) (*Program, error) {
	cols, rows := cfg.Cols, cfg.Rows
	if cols <= 0 || rows <= 0 {
		cols, rows = terminalSize()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	renderer := lipgloss.NewRenderer(out)
	renderer.SetColorProfile(cfg.Profile)

	keys := make(chan keyEvent, 64)
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithOutput(out)}
	if cfg.Input != nil {
		opts = append(opts, tea.WithInput(cfg.Input))
	}
	p := &Program{
		Canvas:   backend.FitCanvas(cols, rows, cfg.Canvas),
		program:  tea.NewProgram(&model{keys: keys}, opts...),
		renderer: renderer,
		cols:     cols,
		keys:     keys,
		exit:     make(chan error, 1),
	}
	go p.run()
	return p, nil
}

func (p *Program) run() {
	_, err := p.program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	close(p.keys)
	p.exit <- err
}

func terminalSize() (cols, rows int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackCols, fallbackRows
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil || cols <= 0 || rows <= 0 {
		return fallbackCols, fallbackRows
	}
	return cols, rows
}

// NextKey blocks until the program delivers a key or exits.
func (p *Program) NextKey() (key.Key, error) {
	ev, ok := <-p.keys
	if !ok {
		return key.Key{}, io.EOF
	}
	return ev.key, ev.err
}

// Flush renders the canvas and hands the frame to the program.
func (p *Program) Flush() error {
	p.program.Send(frameMsg(Render(p.Canvas, p.renderer, p.cols)))
	return nil
}

// Close stops the program and restores the terminal.
func (p *Program) Close() error {
	p.program.Quit()
	go func() {
		// unblock Update if it is mid-send
		for range p.keys {
		}
	}()
	p.program.Wait()
	if err := <-p.exit; err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// Render draws every canvas row with lipgloss styles, one run of equally
// styled cells at a time, and clips rows to cols cells.
func Render(c *backend.Canvas, r *lipgloss.Renderer, cols int) string {
	rows := c.Cells()
	lines := make([]string, len(rows))
	for y, row := range rows {
		var b strings.Builder
		var run strings.Builder
		var current backend.Cell
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(cellStyle(r, current).Render(run.String()))
				run.Reset()
			}
		}
		for x, cell := range row {
			if backend.IsContinuation(cell) {
				continue
			}
			if x > 0 && !sameStyle(cell, current) {
				flush()
			}
			current = cell
			run.WriteRune(cell.Rune)
		}
		flush()
		lines[y] = ansi.Truncate(b.String(), cols, "")
	}
	return strings.Join(lines, "\n")
}

func sameStyle(a, b backend.Cell) bool {
	return a.Fg == b.Fg && a.Bg == b.Bg && a.Underline == b.Underline && a.UnderlineColor == b.UnderlineColor
}

func cellStyle(r *lipgloss.Renderer, cell backend.Cell) lipgloss.Style {
	style := r.NewStyle()
	if fg, ok := lipColor(cell.Fg); ok {
		style = style.Foreground(fg)
	}
	if bg, ok := lipColor(cell.Bg); ok {
		style = style.Background(bg)
	}
	if cell.Underline {
		style = style.Underline(true)
		if ul, ok := lipColor(cell.UnderlineColor); ok {
			style = style.Foreground(ul)
		}
	}
	return style
}

func lipColor(c color.RGBA) (lipgloss.Color, bool) {
	if c.A == 0 {
		return "", false
	}
	return lipgloss.Color(theme.Hex(c)), true
}
