// Package notes is the demo home screen: a list of in-memory notes with a
// side menu to write a new note, search the existing ones, or quit.
package notes

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/atomicstack/fbui/internal/components"
	"github.com/atomicstack/fbui/internal/format/table"
	"github.com/atomicstack/fbui/internal/graphics"
	"github.com/atomicstack/fbui/internal/key"
	"github.com/atomicstack/fbui/internal/logging/events"
	"github.com/atomicstack/fbui/internal/widget"
	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Menu choices.
const (
	ChoiceNew    = "new"
	ChoiceSearch = "search"
	ChoiceQuit   = "quit"
)

// SearchID is the id of the search input and the topic its query is posted on.
const SearchID = "note_search"

const titleWidth = 24

var listColumns = []table.Column{
	{Align: table.AlignRight},
	{Max: titleWidth},
	{Align: table.AlignRight},
}

// Config describes a Notebook.
type Config struct {
	ID       string
	Start    graphics.Point
	Size     graphics.Size
	Overflow widget.Overflow
}

type note struct {
	id   string
	text string
}

// Notebook is a widget.Widget listing notes. Editors it opens post their
// text back under their own id, which the notebook subscribes to.
type Notebook struct {
	widget.Base
	cfg      Config
	metrics  graphics.Metrics
	listID   string
	menuID   string
	list     *widget.TextArea
	children *widget.MultiWidget
	notes    []note
	editors  []string
	query    string
}

// New lays out the list and the side menu inside cfg's rectangle.
func New(cfg Config, m graphics.Metrics) *Notebook {
	char := m.CharSize(graphics.P)
	choices := []string{ChoiceNew, ChoiceSearch, ChoiceQuit}
	menuWidth := components.ButtonSize(choices, m).Width + 2*char.Width
	if char.Width > 0 {
		menuWidth = (menuWidth + char.Width - 1) / char.Width * char.Width
	}
	listWidth := max(0, cfg.Size.Width-menuWidth)

	n := &Notebook{
		Base:    widget.NewBase(cfg.ID),
		cfg:     cfg,
		metrics: m,
		listID:  cfg.ID + "_list",
		menuID:  cfg.ID + "_menu",
	}
	n.list = widget.NewTextArea(widget.TextAreaConfig{
		ID:       n.listID,
		Start:    cfg.Start,
		Size:     graphics.Size{Width: listWidth, Height: cfg.Size.Height},
		FontSize: graphics.P,
		Overflow: widget.Scroll,
		Padding:  char,
	}, m)
	menu := components.NewMenu(components.MenuConfig{
		ID:          n.menuID,
		Choices:     choices,
		Start:       graphics.Point{X: cfg.Start.X + listWidth, Y: cfg.Start.Y},
		Size:        graphics.Size{Width: menuWidth, Height: cfg.Size.Height},
		Orientation: components.Vertical,
	}, m)
	n.children = widget.NewMultiWidget(cfg.ID+"_multiwidget", []widget.Widget{n.list, menu}, 1, cfg.Size)
	n.refresh()
	return n
}

// Subscriptions covers the search input and every editor opened so far.
func (n *Notebook) Subscriptions() []string {
	return append([]string{SearchID}, n.editors...)
}

// Notes returns the note texts in creation order.
func (n *Notebook) Notes() []string {
	out := make([]string, len(n.notes))
	for i, nt := range n.notes {
		out[i] = nt.text
	}
	return out
}

// Query is the active search, empty when showing every note.
func (n *Notebook) Query() string {
	return n.query
}

// Listing is the text currently shown in the list.
func (n *Notebook) Listing() string {
	return n.list.Value()
}

func (n *Notebook) HandlePost(topic, payload string) {
	if topic == SearchID {
		n.query = strings.TrimSpace(payload)
		n.refresh()
		return
	}
	for i := range n.notes {
		if n.notes[i].id == topic {
			n.notes[i].text = payload
			events.Notes.Saved(topic, len(n.notes))
			n.refresh()
			return
		}
	}
	for _, id := range n.editors {
		if id == topic {
			n.notes = append(n.notes, note{id: topic, text: payload})
			events.Notes.Saved(topic, len(n.notes))
			n.refresh()
			return
		}
	}
}

// refresh rebuilds the list text from the notes and the active query.
func (n *Notebook) refresh() {
	if len(n.notes) == 0 {
		n.list.SetContent("no notes yet")
		return
	}

	order := make([]int, len(n.notes))
	for i := range order {
		order[i] = i
	}
	var header []string
	if n.query != "" {
		order = n.search(n.query)
		header = []string{fmt.Sprintf("search: %s (%d)", n.query, len(order)), ""}
	}

	rows := make([][]string, 0, len(order))
	for _, i := range order {
		text := n.notes[i].text
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			title(text),
			fmt.Sprintf("%d ln", strings.Count(text, "\n")+1),
		})
	}
	lines := append(header, table.Format(rows, listColumns)...)
	n.list.SetContent(strings.Join(lines, "\n"))
}

// search ranks notes against query, closest first.
func (n *Notebook) search(query string) []int {
	targets := make([]string, len(n.notes))
	for i, nt := range n.notes {
		targets[i] = nt.text
	}
	ranks := fuzzy.RankFindFold(query, targets)
	sort.Stable(ranks)
	order := make([]int, len(ranks))
	for i, r := range ranks {
		order[i] = r.OriginalIndex
	}
	events.Notes.Search(query, len(order))
	return order
}

func title(text string) string {
	first, _, _ := strings.Cut(text, "\n")
	if first = strings.TrimSpace(first); first == "" {
		return "(untitled)"
	}
	return first
}

func (n *Notebook) editor(id, content string) widget.Widget {
	return components.NewTextInput(components.TextInputConfig{
		ID:       id,
		Content:  content,
		Start:    n.cfg.Start,
		Size:     n.cfg.Size,
		Overflow: n.cfg.Overflow,
	}, n.metrics)
}

func (n *Notebook) Draw(g *graphics.Graphics, focused bool) {
	n.children.Draw(g, focused)
}

func (n *Notebook) HandleKey(k key.Key, g *graphics.Graphics) widget.Result {
	if k.Is(key.ScanEscape) {
		// the home screen only leaves through "quit"
		return widget.OK()
	}
	result := n.children.HandleKey(k, g)
	if result.Kind != widget.KindPost || result.Topic != n.menuID {
		return result
	}
	switch result.Payload {
	case ChoiceNew:
		id := "note-" + uuid.NewString()
		n.editors = append(n.editors, id)
		events.Notes.Open(id)
		return widget.Open(n.editor(id, ""))
	case ChoiceSearch:
		events.Notes.Open(SearchID)
		return widget.Open(n.editor(SearchID, n.query))
	case ChoiceQuit:
		return widget.Close()
	}
	return widget.OK()
}

func (n *Notebook) Dimensions() graphics.Size {
	return n.cfg.Size
}
