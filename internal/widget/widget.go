// Package widget holds the widget contract and the building-block widgets:
// Button, TextArea and the MultiWidget container.
//
// Widgets are drawn, receive key presses, and post/listen for events. A
// HandleKey call returns a Result that tells the container what to do next:
// nothing, close the widget, broadcast a post to subscribers, or open a new
// widget on top of the application stack.
package widget

import (
	"github.com/atomicstack/fbui/internal/graphics"
	"github.com/atomicstack/fbui/internal/key"
)

// Widget is implemented by every UI element.
type Widget interface {
	// ID is stable for the widget's lifetime and doubles as its post topic.
	ID() string
	// Value is the data held by the widget; empty for widgets holding none.
	Value() string
	// Subscriptions lists the topics this widget wants posts for.
	Subscriptions() []string
	HandlePost(topic, payload string)
	// Draw must be idempotent.
	Draw(g *graphics.Graphics, focused bool)
	HandleKey(k key.Key, g *graphics.Graphics) Result
	Dimensions() graphics.Size
}

// Base carries the identity shared by every widget and supplies the default
// Value and HandlePost behaviour.
type Base struct {
	id            string
	subscriptions []string
}

// NewBase builds a Base with the given id and subscriptions.
func NewBase(id string, subscriptions ...string) Base {
	return Base{id: id, subscriptions: subscriptions}
}

func (b *Base) ID() string {
	return b.id
}

func (b *Base) Value() string {
	return ""
}

func (b *Base) Subscriptions() []string {
	return b.subscriptions
}

func (b *Base) HandlePost(string, string) {}

// Subscribes reports whether w listens to topic.
func Subscribes(w Widget, topic string) bool {
	for _, s := range w.Subscriptions() {
		if s == topic {
			return true
		}
	}
	return false
}

// ResultKind tags a Result.
type ResultKind int

const (
	// KindOK means nothing for the container to do.
	KindOK ResultKind = iota
	// KindClose asks the container to remove the widget.
	KindClose
	// KindPost publishes Payload under Topic.
	KindPost
	// KindOpen asks the application to push Widget on its stack.
	KindOpen
)

func (k ResultKind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindClose:
		return "close"
	case KindPost:
		return "post"
	case KindOpen:
		return "open"
	}
	return "unknown"
}

// Result is returned by HandleKey.
type Result struct {
	Kind    ResultKind
	Topic   string
	Payload string
	Widget  Widget
}

// OK is the no-op result.
func OK() Result {
	return Result{Kind: KindOK}
}

// Close requests removal of the widget from its container.
func Close() Result {
	return Result{Kind: KindClose}
}

// Post publishes payload to every widget subscribed to topic.
func Post(topic, payload string) Result {
	return Result{Kind: KindPost, Topic: topic, Payload: payload}
}

// Open requests that w be pushed on the application stack.
func Open(w Widget) Result {
	return Result{Kind: KindOpen, Widget: w}
}

// Retag returns r with its topic replaced when r is a post.
func (r Result) Retag(topic string) Result {
	if r.Kind != KindPost {
		return r
	}
	r.Topic = topic
	return r
}
