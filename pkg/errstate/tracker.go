// Package errstate tracks which form fields are currently invalid and keeps
// the aggregate error count consistent with that mapping.
package errstate

import (
	"sort"
	"sync"

	"github.com/goliatone/go-intake/pkg/model"
)

// Tracker records the invalid flag and message for every field validated
// since the last reset. The zero value is not usable; use New.
type Tracker struct {
	mu       sync.RWMutex
	invalid  map[model.FieldID]bool
	messages map[model.FieldID]string
	count    int
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{
		invalid:  make(map[model.FieldID]bool),
		messages: make(map[model.FieldID]string),
	}
}

// SetError creates or overwrites the entry for id. A valid field keeps its
// key with a false flag and no message.
func (t *Tracker) SetError(id model.FieldID, invalid bool, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.invalid[id] = invalid
	if invalid {
		t.messages[id] = message
	} else {
		delete(t.messages, id)
	}
	t.recount()
}

// Apply records the outcome of a rule for id.
func (t *Tracker) Apply(id model.FieldID, res model.Result) {
	t.SetError(id, !res.Valid, res.Message)
}

// ClearError marks id as valid. The key stays present; clearing an already
// clear field leaves the count unchanged.
func (t *Tracker) ClearError(id model.FieldID) {
	t.SetError(id, false, "")
}

// Count returns the number of fields currently flagged invalid.
func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.count
}

// Snapshot returns a copy of the field to invalid-flag mapping.
func (t *Tracker) Snapshot() map[model.FieldID]bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[model.FieldID]bool, len(t.invalid))
	for id, invalid := range t.invalid {
		out[id] = invalid
	}
	return out
}

// Message returns the message recorded for an invalid field.
func (t *Tracker) Message(id model.FieldID) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.invalid[id] {
		return "", false
	}
	return t.messages[id], true
}

// Invalid lists the flagged fields in form order.
func (t *Tracker) Invalid() []model.FieldID {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []model.FieldID
	for id, invalid := range t.invalid {
		if invalid {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := out[i].Position(), out[j].Position()
		if pi != pj {
			return pi < pj
		}
		return out[i] < out[j]
	})
	return out
}

// Tracked reports whether id has been validated since the last reset.
func (t *Tracker) Tracked(id model.FieldID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.invalid[id]
	return ok
}

// Reset drops every entry.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.invalid = make(map[model.FieldID]bool)
	t.messages = make(map[model.FieldID]string)
	t.count = 0
}

// recount derives the count from the mapping. Callers hold the write lock.
func (t *Tracker) recount() {
	count := 0
	for _, invalid := range t.invalid {
		if invalid {
			count++
		}
	}
	t.count = count
}
