// Package screen presents a backend.Canvas on a terminal through tcell and
// reads keys from it.
package screen

import (
	"fmt"
	"image/color"
	"io"

	"github.com/atomicstack/fbui/internal/backend"
	"github.com/atomicstack/fbui/internal/key"
	"github.com/gdamore/tcell/v2"
)

// Screen is a canvas mirrored onto a tcell screen.
type Screen struct {
	*backend.Canvas
	screen tcell.Screen
}

// New initialises the terminal and sizes the canvas to it.
func New(opts backend.Options) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(s, opts), nil
}

// NewWithScreen wraps an initialised screen, e.g. a SimulationScreen.
func NewWithScreen(s tcell.Screen, opts backend.Options) *Screen {
	s.HideCursor()
	cols, rows := s.Size()
	return &Screen{Canvas: backend.FitCanvas(cols, rows, opts), screen: s}
}

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyUp:         key.Special(key.ScanUp),
	tcell.KeyDown:       key.Special(key.ScanDown),
	tcell.KeyLeft:       key.Special(key.ScanLeft),
	tcell.KeyRight:      key.Special(key.ScanRight),
	tcell.KeyHome:       key.Special(key.ScanHome),
	tcell.KeyEnd:        key.Special(key.ScanEnd),
	tcell.KeyInsert:     key.Special(key.ScanInsert),
	tcell.KeyDelete:     key.Special(key.ScanDelete),
	tcell.KeyPgUp:       key.Special(key.ScanPageUp),
	tcell.KeyPgDn:       key.Special(key.ScanPageDown),
	tcell.KeyEscape:     key.Special(key.ScanEscape),
	tcell.KeyBackspace:  key.Printable(key.Backspace),
	tcell.KeyBackspace2: key.Printable(key.Backspace),
	tcell.KeyEnter:      key.Printable(key.Enter),
	tcell.KeyTab:        key.Printable(key.Tab),
	tcell.KeyCtrlW:      key.Printable(key.NextWidget),
}

// translate maps a tcell key event. ok is false for keys the toolkit has no
// use for.
func translate(ev *tcell.EventKey) (k key.Key, ok bool, err error) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return key.Key{}, false, key.ErrInterrupted
	case tcell.KeyRune:
		return key.Printable(ev.Rune()), true, nil
	}
	k, ok = specialKeys[ev.Key()]
	return k, ok, nil
}

// NextKey blocks until a key the toolkit understands arrives. Resizes are
// answered with a full repaint of the last frame.
func (s *Screen) NextKey() (key.Key, error) {
	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return key.Key{}, io.EOF
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventKey:
			k, ok, err := translate(ev)
			if err != nil {
				return key.Key{}, err
			}
			if ok {
				return k, nil
			}
		}
	}
}

func tcellColor(c color.RGBA) tcell.Color {
	if c.A == 0 {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Style converts a canvas cell to a tcell style. Underlined cells mark the
// text cursor and take its color.
func Style(cell backend.Cell) tcell.Style {
	style := tcell.StyleDefault.Foreground(tcellColor(cell.Fg)).Background(tcellColor(cell.Bg))
	if cell.Underline {
		style = style.Underline(true).Foreground(tcellColor(cell.UnderlineColor))
	}
	return style
}

// Flush copies the canvas to the terminal.
func (s *Screen) Flush() error {
	for y, row := range s.Cells() {
		for x, cell := range row {
			if backend.IsContinuation(cell) {
				continue
			}
			r := cell.Rune
			if cell.Underline && r == ' ' {
				r = '_'
			}
			s.screen.SetContent(x, y, r, nil, Style(cell))
		}
	}
	s.screen.Show()
	return nil
}

// Close restores the terminal.
func (s *Screen) Close() error {
	s.screen.Fini()
	return nil
}
