package model

import "strings"

// Value is the raw content of a control as currently entered. Text carries
// input, select and textarea content; Selected carries the checked options of
// radio groups and checkbox sets.
type Value struct {
	Text     string   `json:"text,omitempty" yaml:"text,omitempty"`
	Selected []string `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// Text builds a Value for a free-text or select control.
func Text(raw string) Value {
	return Value{Text: raw}
}

// Choice builds a Value for radio groups and checkbox sets.
func Choice(options ...string) Value {
	if len(options) == 0 {
		return Value{}
	}
	return Value{Selected: append([]string(nil), options...)}
}

// IsEmpty reports whether nothing meaningful has been entered.
func (v Value) IsEmpty() bool {
	if strings.TrimSpace(v.Text) != "" {
		return false
	}
	for _, option := range v.Selected {
		if strings.TrimSpace(option) != "" {
			return false
		}
	}
	return true
}

// Trimmed returns the text content without surrounding whitespace.
func (v Value) Trimmed() string {
	return strings.TrimSpace(v.Text)
}

func (v Value) clone() Value {
	out := Value{Text: v.Text}
	if len(v.Selected) > 0 {
		out.Selected = append([]string(nil), v.Selected...)
	}
	return out
}

// Snapshot is a read-only view of every field value at validation time. Rules
// consult sibling fields through it instead of shared mutable state.
type Snapshot map[FieldID]Value

// Get returns the value stored for id (zero Value when absent).
func (s Snapshot) Get(id FieldID) Value {
	if s == nil {
		return Value{}
	}
	return s[id]
}

// Text returns the raw text stored for id.
func (s Snapshot) Text(id FieldID) string {
	return s.Get(id).Text
}

// Clone deep-copies the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for id, value := range s {
		out[id] = value.clone()
	}
	return out
}

// With returns a copy of the snapshot with id set to value. The receiver is
// left untouched.
func (s Snapshot) With(id FieldID, value Value) Snapshot {
	out := s.Clone()
	out[id] = value.clone()
	return out
}
