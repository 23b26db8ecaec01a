package widget

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/atomicstack/fbui/internal/graphics"
	"github.com/atomicstack/fbui/internal/key"
)

const (
	// ScrollOff is how close, in characters, the cursor may get to a visible
	// edge in scroll mode before the viewport follows it.
	ScrollOff = 3
	// CursorWeight is the cursor bar thickness in pixels.
	CursorWeight = 3
)

// Overflow selects how lines wider than the viewport are shown.
type Overflow int

const (
	// Wrap reflows long lines onto extra visual rows.
	Wrap Overflow = iota
	// Scroll pans the viewport horizontally.
	Scroll
)

func (o Overflow) String() string {
	if o == Scroll {
		return "scroll"
	}
	return "wrap"
}

// ParseOverflow accepts the names produced by Overflow.String.
func ParseOverflow(name string) (Overflow, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "wrap":
		return Wrap, nil
	case "scroll":
		return Scroll, nil
	}
	return Wrap, fmt.Errorf("unknown overflow %q (want wrap or scroll)", name)
}

// Position is a (column, row) pair in characters.
type Position struct {
	Col int
	Row int
}

// TextAreaConfig describes a TextArea.
type TextAreaConfig struct {
	ID            string
	Content       string
	Editable      bool
	Start         graphics.Point
	Size          graphics.Size
	FontSize      graphics.FontSize
	Overflow      Overflow
	Padding       graphics.Size
	Subscriptions []string
}

// TextArea is a multi-line text view with an optional editing cursor.
type TextArea struct {
	Base
	lines    [][]rune
	cursor   Position
	viewport Position
	cols     int
	rows     int
	char     graphics.Size
	editable bool
	start    graphics.Point
	size     graphics.Size
	padding  graphics.Size
	fontSize graphics.FontSize
	overflow Overflow
}

// NewTextArea builds a TextArea whose character grid is derived from m.
func NewTextArea(cfg TextAreaConfig, m graphics.Metrics) *TextArea {
	char := m.CharSize(cfg.FontSize)
	t := &TextArea{
		Base:     NewBase(cfg.ID, cfg.Subscriptions...),
		lines:    splitLines(cfg.Content),
		char:     char,
		editable: cfg.Editable,
		start:    cfg.Start,
		size:     cfg.Size,
		padding:  cfg.Padding,
		fontSize: cfg.FontSize,
		overflow: cfg.Overflow,
	}
	if char.Width > 0 {
		t.cols = max(0, (cfg.Size.Width-2*cfg.Padding.Width)/char.Width)
	}
	if char.Height > 0 {
		t.rows = max(0, (cfg.Size.Height-2*cfg.Padding.Height)/char.Height)
	}
	return t
}

// splitLines breaks s on \n, \r and \r\n. The result always holds at least
// one line.
func splitLines(s string) [][]rune {
	lines := [][]rune{{}}
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			lines = append(lines, []rune{})
		case '\n':
			lines = append(lines, []rune{})
		default:
			last := len(lines) - 1
			lines[last] = append(lines[last], runes[i])
		}
	}
	return lines
}

// Value is the whole document, lines joined by \n.
func (t *TextArea) Value() string {
	parts := make([]string, len(t.lines))
	for i, line := range t.lines {
		parts[i] = string(line)
	}
	return strings.Join(parts, "\n")
}

// SetContent replaces the document and resets cursor and viewport.
func (t *TextArea) SetContent(s string) {
	t.lines = splitLines(s)
	t.cursor = Position{}
	t.viewport = Position{}
}

// Lines returns a copy of the document lines.
func (t *TextArea) Lines() []string {
	out := make([]string, len(t.lines))
	for i, line := range t.lines {
		out[i] = string(line)
	}
	return out
}

func (t *TextArea) Cursor() Position   { return t.cursor }
func (t *TextArea) Viewport() Position { return t.viewport }

// Grid is the visible character grid as (cols, rows).
func (t *TextArea) Grid() (cols, rows int) {
	return t.cols, t.rows
}

func (t *TextArea) Editable() bool { return t.editable }

func (t *TextArea) Dimensions() graphics.Size {
	return t.size
}

// MoveTo places the cursor, clamped into the document, and refollows it.
func (t *TextArea) MoveTo(p Position) {
	t.cursor.Row = min(max(p.Row, 0), len(t.lines)-1)
	t.cursor.Col = min(max(p.Col, 0), len(t.lines[t.cursor.Row]))
	t.followCursor()
}

func (t *TextArea) HandleKey(k key.Key, g *graphics.Graphics) Result {
	if t.move(k) {
		t.followCursor()
		t.Draw(g, true)
		return OK()
	}
	if !t.editable || !t.edit(k) {
		return OK()
	}
	t.followCursor()
	t.Draw(g, true)
	return OK()
}

// move applies navigation keys and reports whether k was one.
func (t *TextArea) move(k key.Key) bool {
	line := t.lines[t.cursor.Row]
	switch k.Scan {
	case key.ScanLeft:
		if t.cursor.Col > 0 {
			t.cursor.Col--
		}
	case key.ScanRight:
		if t.cursor.Col < len(line) {
			t.cursor.Col++
		}
	case key.ScanUp:
		if t.cursor.Row > 0 {
			t.cursor.Row--
		}
		t.snap()
	case key.ScanDown:
		if t.cursor.Row < len(t.lines)-1 {
			t.cursor.Row++
		}
		t.snap()
	case key.ScanHome:
		t.cursor.Col = 0
	case key.ScanEnd:
		t.cursor.Col = len(line)
	default:
		return false
	}
	return true
}

// snap pulls the column back onto the current line after a vertical move.
func (t *TextArea) snap() {
	t.cursor.Col = min(t.cursor.Col, len(t.lines[t.cursor.Row]))
}

// edit applies editing keys and reports whether the document changed.
func (t *TextArea) edit(k key.Key) bool {
	row, col := t.cursor.Row, t.cursor.Col
	line := t.lines[row]

	switch {
	case k.Is(key.ScanDelete):
		switch {
		case col < len(line):
			t.lines[row] = append(line[:col:col], line[col+1:]...)
		case row < len(t.lines)-1:
			t.lines[row] = append(line[:col:col], t.lines[row+1]...)
			t.lines = append(t.lines[:row+1], t.lines[row+2:]...)
		default:
			return false
		}
	case k.IsEnter():
		tail := append([]rune{}, line[col:]...)
		t.lines[row] = line[:col:col]
		t.lines = append(t.lines[:row+1], append([][]rune{tail}, t.lines[row+1:]...)...)
		t.cursor = Position{Col: 0, Row: row + 1}
	case k.IsRune(key.Backspace):
		switch {
		case col > 0:
			t.lines[row] = append(line[:col-1:col-1], line[col:]...)
			t.cursor.Col--
		case row > 0:
			prev := t.lines[row-1]
			t.cursor = Position{Col: len(prev), Row: row - 1}
			t.lines[row-1] = append(prev[:len(prev):len(prev)], line...)
			t.lines = append(t.lines[:row], t.lines[row+1:]...)
		default:
			return false
		}
	case k.IsPrintable() && (k.Rune == key.Tab || !unicode.IsControl(k.Rune)):
		next := make([]rune, 0, len(line)+1)
		next = append(next, line[:col]...)
		next = append(next, k.Rune)
		t.lines[row] = append(next, line[col:]...)
		t.cursor.Col++
	default:
		return false
	}
	return true
}

// followCursor moves the viewport so the cursor is visible. It is a no-op
// when the cursor is already in view, so calling it from Draw is safe.
func (t *TextArea) followCursor() {
	if t.overflow == Wrap {
		t.followWrapped()
		return
	}
	t.viewport.Col = nudge(t.viewport.Col, t.cursor.Col, t.cols)
	t.viewport.Row = nudge(t.viewport.Row, t.cursor.Row, t.rows)
}

// nudge keeps pos at least ScrollOff cells inside a window of span cells
// starting at origin. The margin shrinks for small windows so both edges can
// be honoured at once.
func nudge(origin, pos, span int) int {
	if span <= 0 {
		return max(pos, 0)
	}
	off := min(ScrollOff, max(0, (span-1)/2))
	left, right := origin+off, origin+span-1-off
	switch {
	case pos < left:
		origin -= left - pos
	case pos > right:
		origin += pos - right
	}
	return max(origin, 0)
}

func (t *TextArea) followWrapped() {
	t.viewport.Col = 0
	row := t.cursor.Row
	if row < t.viewport.Row {
		t.viewport.Row = row
		return
	}
	used := 0
	for i := row; i >= t.viewport.Row; i-- {
		used += len(WrapLine(t.lines[i], t.cols))
		if used > t.rows {
			// lines [i+1..row] are the most that fit; the cursor line alone
			// may still overflow, in which case it goes to the top.
			t.viewport.Row = min(i+1, row)
			return
		}
	}
}

func (t *TextArea) Draw(g *graphics.Graphics, focused bool) {
	t.followCursor()

	border := graphics.BorderUnfocused
	if focused {
		border = graphics.BorderFocused
	}
	g.DrawBox(graphics.Background, border, t.start, t.size)

	if t.overflow == Wrap {
		t.drawWrapped(g)
	} else {
		t.drawScrolled(g)
	}

	if t.editable {
		t.drawCursor(g)
	}
}

// cell returns the pixel origin of grid cell (x, y).
func (t *TextArea) cell(x, y int) graphics.Point {
	return graphics.Point{
		X: t.start.X + t.padding.Width + x*t.char.Width,
		Y: t.start.Y + t.padding.Height + y*t.char.Height,
	}
}

func (t *TextArea) drawScrolled(g *graphics.Graphics) {
	for y := 0; y < t.rows; y++ {
		row := t.viewport.Row + y
		if row >= len(t.lines) {
			return
		}
		line := t.lines[row]
		for x := 0; x < t.cols; x++ {
			col := t.viewport.Col + x
			if col >= len(line) {
				break
			}
			g.WriteChar(line[col], t.cell(x, y), t.fontSize, graphics.Foreground)
		}
	}
}

func (t *TextArea) drawWrapped(g *graphics.Graphics) {
	y := 0
	for row := t.viewport.Row; row < len(t.lines); row++ {
		line := t.lines[row]
		for _, s := range WrapLine(line, t.cols) {
			if y >= t.rows {
				return
			}
			from := s.Start + s.lead(line, t.cols)
			for x, c := range line[from:s.End] {
				if x >= t.cols {
					break
				}
				g.WriteChar(c, t.cell(x, y), t.fontSize, graphics.Foreground)
			}
			y++
		}
	}
}

// screenCursor maps the cursor to a grid cell. ok is false when the cursor
// is outside the visible grid.
func (t *TextArea) screenCursor() (x, y int, ok bool) {
	if t.overflow == Scroll {
		x, y = t.cursor.Col-t.viewport.Col, t.cursor.Row-t.viewport.Row
	} else {
		for row := t.viewport.Row; row < t.cursor.Row; row++ {
			y += len(WrapLine(t.lines[row], t.cols))
		}
		line := t.lines[t.cursor.Row]
		spans := WrapLine(line, t.cols)
		i := spanFor(spans, t.cursor.Col)
		y += i
		x = max(0, t.cursor.Col-spans[i].Start-spans[i].lead(line, t.cols))
	}
	if t.cols > 0 {
		// the end-of-line caret of a full row sits on the last cell
		x = min(x, t.cols-1)
	}
	return x, y, x >= 0 && y >= 0 && y < t.rows && x < t.cols
}

func (t *TextArea) drawCursor(g *graphics.Graphics) {
	x, y, ok := t.screenCursor()
	if !ok {
		return
	}
	at := t.cell(x, y)
	at.Y += t.char.Height - CursorWeight
	g.DrawRect(graphics.Cursor, at, graphics.Size{Width: t.char.Width, Height: CursorWeight})
}
