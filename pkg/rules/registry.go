package rules

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-intake/pkg/model"
)

var (
	// ErrDuplicateRule is returned when a field already has a rule.
	ErrDuplicateRule = errors.New("rules: rule already registered")
	// ErrUnknownField is returned when registering a rule for an identifier
	// outside the form's field set.
	ErrUnknownField = errors.New("rules: unknown field")
)

// Rule validates one field. Rules are pure: they read the value and the
// snapshot, never mutate either, and always return a Result.
type Rule func(value model.Value, snapshot model.Snapshot) model.Result

// Registry maps field identifiers to rules and remembers registration order,
// which doubles as evaluation order for whole-form validation.
type Registry struct {
	mu    sync.RWMutex
	rules map[model.FieldID]Rule
	order []model.FieldID
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[model.FieldID]Rule),
	}
}

// Register adds a rule for id. Unknown identifiers, nil rules and duplicates
// return an error.
func (r *Registry) Register(id model.FieldID, rule Rule) error {
	if rule == nil {
		return fmt.Errorf("rules: rule for %q is nil", id)
	}
	if !id.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRule, id)
	}
	r.rules[id] = rule
	r.order = append(r.order, id)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(id model.FieldID, rule Rule) {
	if err := r.Register(id, rule); err != nil {
		panic(err)
	}
}

// Validate runs the rule registered for id. Fields without a rule are always
// valid.
func (r *Registry) Validate(id model.FieldID, value model.Value, snapshot model.Snapshot) model.Result {
	r.mu.RLock()
	rule, ok := r.rules[id]
	r.mu.RUnlock()

	if !ok {
		return model.Pass()
	}
	return rule(value, snapshot)
}

// Has reports whether a rule is registered for id.
func (r *Registry) Has(id model.FieldID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rules[id]
	return ok
}

// Fields returns the registered identifiers in registration order.
func (r *Registry) Fields() []model.FieldID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]model.FieldID(nil), r.order...)
}
