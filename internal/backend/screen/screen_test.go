package screen

import (
	"errors"
	"image/color"
	"testing"

	"github.com/atomicstack/fbui/internal/backend"
	"github.com/atomicstack/fbui/internal/graphics"
	"github.com/atomicstack/fbui/internal/key"
	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init simulation: %v", err)
	}
	sim.SetSize(20, 6)
	t.Cleanup(sim.Fini)
	return NewWithScreen(sim, backend.Options{}), sim
}

func TestCanvasFollowsTerminalSize(t *testing.T) {
	s, _ := newSimScreen(t)
	if cols, rows := s.Grid(); cols != 20 || rows != 6 {
		t.Fatalf("expected 20x6 grid, got %dx%d", cols, rows)
	}
	if err := s.SetResolution(20*8+1, 16); !errors.Is(err, graphics.ErrUnsupportedResolution) {
		t.Fatalf("expected resolution above terminal rejected, got %v", err)
	}
}

func TestNextKeyTranslatesTerminalKeys(t *testing.T) {
	s, sim := newSimScreen(t)
	inject := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	}
	for _, ev := range inject {
		if err := sim.PostEvent(ev); err != nil {
			t.Fatalf("post event: %v", err)
		}
	}
	want := []key.Key{
		key.Special(key.ScanUp),
		key.Printable('x'),
		key.Printable(key.Backspace),
		key.Printable(key.Enter),
		key.Printable(key.NextWidget),
		key.Special(key.ScanEscape),
	}
	for i, w := range want {
		got, err := s.NextKey()
		if err != nil {
			t.Fatalf("key %d: unexpected error %v", i, err)
		}
		if got != w {
			t.Fatalf("key %d: expected %v, got %v", i, w, got)
		}
	}
	if _, err := s.NextKey(); !errors.Is(err, key.ErrInterrupted) {
		t.Fatalf("expected interrupt, got %v", err)
	}
}

func TestFlushCopiesCells(t *testing.T) {
	s, sim := newSimScreen(t)
	fg := color.RGBA{R: 0x8c, G: 0x79, B: 0x40, A: 0xff}
	s.DrawCharacter('h', graphics.Point{X: 8, Y: 16}, 1, fg)
	s.DrawCharacter('i', graphics.Point{X: 16, Y: 16}, 1, fg)
	if err := s.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	r, _, style, _ := sim.GetContent(1, 1)
	if r != 'h' {
		t.Fatalf("expected 'h' at 1,1, got %q", r)
	}
	if got, _, _ := style.Decompose(); got != tcell.NewRGBColor(0x8c, 0x79, 0x40) {
		t.Fatalf("unexpected foreground %v", got)
	}
	if r, _, _, _ := sim.GetContent(2, 1); r != 'i' {
		t.Fatalf("expected 'i' at 2,1, got %q", r)
	}
}

func TestStyleMarksCursorCells(t *testing.T) {
	cursor := color.RGBA{R: 0x80, G: 0x77, B: 0x38, A: 0xff}
	style := Style(backend.Cell{Rune: 'a', Underline: true, UnderlineColor: cursor})
	fg, bg, attrs := style.Decompose()
	if attrs&tcell.AttrUnderline == 0 {
		t.Fatalf("expected underline attribute")
	}
	if fg != tcell.NewRGBColor(0x80, 0x77, 0x38) || bg != tcell.ColorDefault {
		t.Fatalf("unexpected colors fg=%v bg=%v", fg, bg)
	}
}
