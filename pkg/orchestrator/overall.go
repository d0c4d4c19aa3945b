package orchestrator

import (
	"strings"

	"github.com/goliatone/go-intake/pkg/dependency"
	"github.com/goliatone/go-intake/pkg/model"
)

// FieldOutcome pairs a field with the result of its rule.
type FieldOutcome = dependency.Outcome

// Overall summarises a whole-form validation pass.
type Overall struct {
	Valid        bool
	ErrorCount   int
	Results      []FieldOutcome
	FirstInvalid model.FieldID
}

// Result returns the outcome recorded for id.
func (o Overall) Result(id model.FieldID) (model.Result, bool) {
	for _, outcome := range o.Results {
		if outcome.Field == id {
			return outcome.Result, true
		}
	}
	return model.Result{}, false
}

// FieldErrors returns the failures keyed by field identifier, in the
// map[string][]string shape error payloads use.
func (o Overall) FieldErrors() map[string][]string {
	out := make(map[string][]string)
	for _, outcome := range o.Results {
		if outcome.Result.Valid {
			continue
		}
		if messages := normalizeMessages([]string{outcome.Result.Message}); len(messages) > 0 {
			out[outcome.Field.String()] = append(out[outcome.Field.String()], messages...)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Messages lists every failure message in form order without duplicates.
func (o Overall) Messages() []string {
	var messages []string
	for _, outcome := range o.Results {
		if !outcome.Result.Valid {
			messages = append(messages, outcome.Result.Message)
		}
	}
	return normalizeMessages(messages)
}

// Normalize returns a copy of snapshot with every normalised value written
// back as text.
func (o Overall) Normalize(snapshot model.Snapshot) model.Snapshot {
	out := snapshot.Clone()
	for _, outcome := range o.Results {
		if outcome.Result.Valid && outcome.Result.Normalized != "" {
			value := out[outcome.Field]
			value.Text = outcome.Result.Normalized
			out[outcome.Field] = value
		}
	}
	return out
}

// Submission reports the outcome of AttemptSubmit.
type Submission struct {
	Overall
	// Eligible is true when no field is invalid.
	Eligible bool
	// Values holds the normalised snapshot handed to Proceed. Nil when the
	// submission was blocked.
	Values model.Snapshot
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
