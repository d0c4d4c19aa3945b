package orchestrator

import "github.com/goliatone/go-intake/pkg/model"

// Listener receives validation output. Presentation adapters implement it to
// render inline messages, the summary banner, and to move focus or continue
// after a successful submit.
type Listener interface {
	FieldValidated(id model.FieldID, res model.Result)
	Summary(valid bool, errorCount int)
	Proceed(values model.Snapshot)
	Focus(id model.FieldID)
}

// NopListener ignores every callback.
type NopListener struct{}

func (NopListener) FieldValidated(model.FieldID, model.Result) {}
func (NopListener) Summary(bool, int)                          {}
func (NopListener) Proceed(model.Snapshot)                     {}
func (NopListener) Focus(model.FieldID)                        {}

// Listeners fans callbacks out in order.
type Listeners []Listener

func (ls Listeners) FieldValidated(id model.FieldID, res model.Result) {
	for _, l := range ls {
		if l != nil {
			l.FieldValidated(id, res)
		}
	}
}

func (ls Listeners) Summary(valid bool, errorCount int) {
	for _, l := range ls {
		if l != nil {
			l.Summary(valid, errorCount)
		}
	}
}

func (ls Listeners) Proceed(values model.Snapshot) {
	for _, l := range ls {
		if l != nil {
			l.Proceed(values)
		}
	}
}

func (ls Listeners) Focus(id model.FieldID) {
	for _, l := range ls {
		if l != nil {
			l.Focus(id)
		}
	}
}

// Hooks adapts optional functions into a Listener. Nil hooks are skipped.
type Hooks struct {
	OnField   func(id model.FieldID, res model.Result)
	OnSummary func(valid bool, errorCount int)
	OnProceed func(values model.Snapshot)
	OnFocus   func(id model.FieldID)
}

func (h Hooks) FieldValidated(id model.FieldID, res model.Result) {
	if h.OnField != nil {
		h.OnField(id, res)
	}
}

func (h Hooks) Summary(valid bool, errorCount int) {
	if h.OnSummary != nil {
		h.OnSummary(valid, errorCount)
	}
}

func (h Hooks) Proceed(values model.Snapshot) {
	if h.OnProceed != nil {
		h.OnProceed(values)
	}
}

func (h Hooks) Focus(id model.FieldID) {
	if h.OnFocus != nil {
		h.OnFocus(id)
	}
}
