package intake

import (
	"fmt"
	"time"

	"github.com/goliatone/go-intake/pkg/config"
	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/orchestrator"
)

// Form validates one intake form instance; alias exported via the root
// package for convenience.
type Form = orchestrator.Form

// Snapshot is the set of field values at validation time.
type Snapshot = model.Snapshot

// Value is the raw content of one control.
type Value = model.Value

// Result is the outcome of validating one field.
type Result = model.Result

// FieldID names a form control.
type FieldID = model.FieldID

// Variant selects one of the canonical rule sets.
type Variant = model.Variant

// Listener receives presentation callbacks from a Form.
type Listener = orchestrator.Listener

// Hooks adapts plain functions to Listener.
type Hooks = orchestrator.Hooks

// Submission reports the outcome of a submit attempt.
type Submission = orchestrator.Submission

// NewForm exposes the orchestrator constructor from the top-level module.
func NewForm(options ...orchestrator.Option) (*Form, error) {
	return orchestrator.New(options...)
}

// NewFormForProfile builds a form from one of the embedded deployment
// profiles. An empty name selects the default profile.
func NewFormForProfile(name string, options ...orchestrator.Option) (*Form, error) {
	store, err := config.Defaults()
	if err != nil {
		return nil, fmt.Errorf("intake: %w", err)
	}
	profile, err := store.Profile(name)
	if err != nil {
		return nil, fmt.Errorf("intake: %w", err)
	}
	return profile.NewForm(time.Now, options...)
}

// Submit validates snapshot against a fresh form for variant and reports
// whether it may be submitted. It is the simplest entry point for callers
// that hold a complete set of answers.
func Submit(variant Variant, snapshot Snapshot, options ...orchestrator.Option) (Submission, error) {
	form, err := orchestrator.New(append([]orchestrator.Option{orchestrator.WithVariant(variant)}, options...)...)
	if err != nil {
		return Submission{}, err
	}
	return form.AttemptSubmit(snapshot), nil
}

// WithListener registers presentation callbacks on forms built through the
// root package.
func WithListener(listeners ...Listener) orchestrator.Option {
	return orchestrator.WithListener(listeners...)
}

// WithClock overrides the clock used by date rules.
func WithClock(now func() time.Time) orchestrator.Option {
	return orchestrator.WithClock(now)
}
