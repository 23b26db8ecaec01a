package components

import (
	"strings"
	"testing"

	"github.com/atomicstack/fbui/internal/graphics"
	"github.com/atomicstack/fbui/internal/key"
	"github.com/atomicstack/fbui/internal/widget"
)

func newTextInput(t *testing.T, content string) (*TextInput, *graphics.Graphics) {
	t.Helper()
	g, _ := newTestGraphics(t)
	return NewTextInput(TextInputConfig{
		ID:      "note",
		Content: content,
		Size:    graphics.Size{Width: 160, Height: 128},
	}, g.Metrics()), g
}

func typeText(in *TextInput, g *graphics.Graphics, s string) {
	for _, r := range s {
		in.HandleKey(key.Printable(r), g)
	}
}

func TestTextInputSubscribesToItsMenu(t *testing.T) {
	in, _ := newTextInput(t, "")
	if got := strings.Join(in.Subscriptions(), ","); got != "note_action_menu" {
		t.Fatalf("unexpected subscriptions %s", got)
	}
	if in.FocusedID() != "note_textarea" {
		t.Fatalf("expected text area focused first, got %s", in.FocusedID())
	}
}

func TestTextInputLayout(t *testing.T) {
	in, _ := newTextInput(t, "")
	// bar: 19 px button + 6 px margin rounded up to 32; text area keeps 96
	area := in.TextArea()
	if got := area.Dimensions(); got != (graphics.Size{Width: 160, Height: 96}) {
		t.Fatalf("unexpected text area size %v", got)
	}
	if cols, rows := area.Grid(); cols != 18 || rows != 4 {
		t.Fatalf("expected 18x4 grid inside padding, got %dx%d", cols, rows)
	}
}

func TestTextInputSavePostsContentUnderOwnID(t *testing.T) {
	in, g := newTextInput(t, "")
	typeText(in, g, "hi")
	in.HandleKey(key.Printable(key.NextWidget), g)
	if in.FocusedID() != "note_action_menu" {
		t.Fatalf("expected menu focused, got %s", in.FocusedID())
	}
	if in.Value() != "hi" {
		t.Fatalf("expected text area value while menu focused, got %q", in.Value())
	}

	res := in.HandleKey(key.Printable(key.Enter), g)
	if res.Kind != widget.KindPost || res.Topic != "note" || res.Payload != "hi" {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestTextInputCancelCloses(t *testing.T) {
	in, g := newTextInput(t, "draft")
	in.HandleKey(key.Printable(key.NextWidget), g)
	in.HandleKey(key.Special(key.ScanRight), g)
	if res := in.HandleKey(key.Printable(key.Enter), g); res.Kind != widget.KindClose {
		t.Fatalf("expected cancel to close, got %#v", res)
	}
}

func TestTextInputEscapeCloses(t *testing.T) {
	in, g := newTextInput(t, "")
	if res := in.HandleKey(key.Special(key.ScanEscape), g); res.Kind != widget.KindClose {
		t.Fatalf("expected escape to close, got %v", res.Kind)
	}
}

func TestTextInputEnterInTextAreaSplitsLine(t *testing.T) {
	in, g := newTextInput(t, "")
	typeText(in, g, "a\rb")
	if in.Value() != "a\nb" {
		t.Fatalf("unexpected value %q", in.Value())
	}
}

func TestTextInputDraw(t *testing.T) {
	g, canvas := newTestGraphics(t)
	in := NewTextInput(TextInputConfig{
		ID:      "note",
		Content: "hello",
		Size:    graphics.Size{Width: 160, Height: 128},
	}, g.Metrics())
	in.Draw(g, true)
	text := canvas.String()
	for _, want := range []string{"┌", "│hello", "save", "cancel"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in rendering:\n%s", want, text)
		}
	}
}
