package key

import (
	"errors"
	"fmt"
)

// ErrInterrupted is returned by key sources when the user aborts the program
// (Ctrl+C on a terminal).
var ErrInterrupted = errors.New("interrupted")

// ScanCode identifies a non-printable key.
type ScanCode int

const (
	ScanNone ScanCode = iota
	ScanUp
	ScanDown
	ScanRight
	ScanLeft
	ScanHome
	ScanEnd
	ScanInsert
	ScanDelete
	ScanPageUp
	ScanPageDown
	ScanEscape
)

// Control characters that arrive as printable keys.
const (
	Backspace  = '\b'
	Tab        = '\t'
	Newline    = '\n'
	Enter      = '\r'
	NextWidget = '\x17' // ^W
)

var scanNames = map[ScanCode]string{
	ScanNone:     "none",
	ScanUp:       "up",
	ScanDown:     "down",
	ScanRight:    "right",
	ScanLeft:     "left",
	ScanHome:     "home",
	ScanEnd:      "end",
	ScanInsert:   "insert",
	ScanDelete:   "delete",
	ScanPageUp:   "pgup",
	ScanPageDown: "pgdown",
	ScanEscape:   "esc",
}

func (s ScanCode) String() string {
	if name, ok := scanNames[s]; ok {
		return name
	}
	return fmt.Sprintf("scan(%d)", int(s))
}

// Key is a single keyboard event: either a printable character or a special
// key identified by its scan code.
type Key struct {
	Rune rune
	Scan ScanCode
}

// Printable builds a character key.
func Printable(r rune) Key {
	return Key{Rune: r}
}

// Special builds a scan-code key.
func Special(s ScanCode) Key {
	return Key{Scan: s}
}

// IsPrintable reports whether the key carries a character.
func (k Key) IsPrintable() bool {
	return k.Scan == ScanNone
}

// Is reports whether k is the special key s.
func (k Key) Is(s ScanCode) bool {
	return k.Scan == s && s != ScanNone
}

// IsRune reports whether k is the printable character r.
func (k Key) IsRune(r rune) bool {
	return k.IsPrintable() && k.Rune == r
}

// IsEnter accepts both carriage return and newline.
func (k Key) IsEnter() bool {
	return k.IsRune(Enter) || k.IsRune(Newline)
}

func (k Key) String() string {
	if !k.IsPrintable() {
		return k.Scan.String()
	}
	switch k.Rune {
	case Backspace:
		return "backspace"
	case Tab:
		return "tab"
	case Newline, Enter:
		return "enter"
	case NextWidget:
		return "ctrl+w"
	}
	return fmt.Sprintf("%q", k.Rune)
}
