package events

import "github.com/atomicstack/fbui/internal/logging"

type NotesTracer struct{}

var Notes = NotesTracer{}

func (NotesTracer) Open(id string) {
	logging.Trace("notes.open", map[string]interface{}{"id": id})
}

func (NotesTracer) Saved(id string, count int) {
	logging.Trace("notes.saved", map[string]interface{}{"id": id, "count": count})
}

func (NotesTracer) Search(query string, matches int) {
	logging.Trace("notes.search", map[string]interface{}{"query": query, "matches": matches})
}
