package orchestrator

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-intake/pkg/dependency"
	"github.com/goliatone/go-intake/pkg/errstate"
	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/rules"
)

// Option customises the form configuration.
type Option func(*Form)

// WithVariant selects the rule set. Ignored for components supplied through
// WithRegistry or WithResolver.
func WithVariant(variant model.Variant) Option {
	return func(f *Form) {
		f.variant = variant
	}
}

// WithRegistry injects a prepared rule registry.
func WithRegistry(registry *rules.Registry) Option {
	return func(f *Form) {
		f.registry = registry
	}
}

// WithResolver injects a prepared dependency resolver.
func WithResolver(resolver *dependency.Resolver) Option {
	return func(f *Form) {
		f.resolver = resolver
	}
}

// WithTracker shares an error state tracker with the form.
func WithTracker(tracker *errstate.Tracker) Option {
	return func(f *Form) {
		f.tracker = tracker
	}
}

// WithListener registers presentation callbacks. Multiple listeners are
// notified in registration order.
func WithListener(listeners ...Listener) Option {
	return func(f *Form) {
		for _, l := range listeners {
			if l != nil {
				f.listeners = append(f.listeners, l)
			}
		}
	}
}

// WithLogger sets the logger used for validation events.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Form) {
		f.logger = logger
	}
}

// WithClock overrides the clock handed to date rules when the form builds its
// own registry.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// Form validates one intake form instance. It owns its error state; separate
// forms never share state unless a tracker is injected explicitly. A Form is
// not safe for concurrent use.
type Form struct {
	variant   model.Variant
	registry  *rules.Registry
	resolver  *dependency.Resolver
	tracker   *errstate.Tracker
	listeners Listeners
	logger    zerolog.Logger
	now       func() time.Time
}

// New constructs a Form applying any provided options. Missing components are
// built for the selected variant.
func New(options ...Option) (*Form, error) {
	f := &Form{
		variant: model.DefaultVariant,
		logger:  zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if err := f.applyDefaults(); err != nil {
		return nil, err
	}
	return f, nil
}

// MustNew panics when the form cannot be assembled.
func MustNew(options ...Option) *Form {
	f, err := New(options...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Form) applyDefaults() error {
	if _, err := model.ParseVariant(string(f.variant)); err != nil {
		return fmt.Errorf("orchestrator: %w", err)
	}
	if f.registry == nil {
		registry, err := rules.NewRuleSet(f.variant, rules.WithClock(f.now))
		if err != nil {
			return fmt.Errorf("orchestrator: build rule set: %w", err)
		}
		f.registry = registry
	}
	if f.resolver == nil {
		resolver, err := dependency.NewResolver(dependency.DefaultEdges(f.variant)...)
		if err != nil {
			return fmt.Errorf("orchestrator: build resolver: %w", err)
		}
		f.resolver = resolver
	}
	if f.tracker == nil {
		f.tracker = errstate.New()
	}
	return nil
}

// Variant returns the rule set variant the form was built for.
func (f *Form) Variant() model.Variant { return f.variant }

// Registry exposes the rule registry.
func (f *Form) Registry() *rules.Registry { return f.registry }

// Tracker exposes the error state tracker.
func (f *Form) Tracker() *errstate.Tracker { return f.tracker }

// Catalog returns the field layout for the form's variant.
func (f *Form) Catalog() []model.Field { return model.Catalog(f.variant) }

// FieldChanged handles an input event for id: the field is validated, then
// every dependent the resolver triggers, each updating the tracker before the
// next runs.
func (f *Form) FieldChanged(id model.FieldID, snapshot model.Snapshot) []FieldOutcome {
	outcomes := f.resolver.OnFieldChanged(id, snapshot, func(target model.FieldID) model.Result {
		return f.validate(target, snapshot)
	})
	if len(outcomes) > 1 {
		f.logger.Debug().
			Str("field", id.String()).
			Int("dependents", len(outcomes)-1).
			Msg("dependents revalidated")
	}
	return outcomes
}

// ValidateField validates id alone, without triggering dependents.
func (f *Form) ValidateField(id model.FieldID, snapshot model.Snapshot) model.Result {
	return f.validate(id, snapshot)
}

// ValidateAll runs every registered rule in registration order. Failures
// never stop evaluation of later fields.
func (f *Form) ValidateAll(snapshot model.Snapshot) Overall {
	fields := f.registry.Fields()
	overall := Overall{Results: make([]FieldOutcome, 0, len(fields))}
	for _, id := range fields {
		res := f.validate(id, snapshot)
		overall.Results = append(overall.Results, FieldOutcome{Field: id, Result: res})
		if !res.Valid && overall.FirstInvalid == "" {
			overall.FirstInvalid = id
		}
	}
	overall.ErrorCount = f.tracker.Count()
	overall.Valid = overall.ErrorCount == 0

	f.logger.Info().
		Str("variant", string(f.variant)).
		Bool("valid", overall.Valid).
		Int("errors", overall.ErrorCount).
		Msg("form validated")
	f.listeners.Summary(overall.Valid, overall.ErrorCount)
	return overall
}

// AttemptSubmit validates the whole form. With no errors the listeners
// receive the normalised values; otherwise focus moves to the first invalid
// field and the snapshot is left as entered.
func (f *Form) AttemptSubmit(snapshot model.Snapshot) Submission {
	overall := f.ValidateAll(snapshot)
	submission := Submission{Overall: overall}
	if overall.ErrorCount > 0 {
		f.logger.Info().
			Int("errors", overall.ErrorCount).
			Str("focus", overall.FirstInvalid.String()).
			Msg("submission blocked")
		if overall.FirstInvalid != "" {
			f.listeners.Focus(overall.FirstInvalid)
		}
		return submission
	}

	submission.Eligible = true
	submission.Values = overall.Normalize(snapshot)
	f.logger.Info().Msg("submission accepted")
	f.listeners.Proceed(submission.Values.Clone())
	return submission
}

// Reset clears every tracked error.
func (f *Form) Reset() {
	f.tracker.Reset()
	f.logger.Debug().Msg("form reset")
}

func (f *Form) validate(id model.FieldID, snapshot model.Snapshot) model.Result {
	res := f.registry.Validate(id, snapshot.Get(id), snapshot)
	f.tracker.Apply(id, res)

	event := f.logger.Debug().Str("field", id.String()).Bool("valid", res.Valid)
	if !res.Valid {
		event = event.Str("kind", string(res.Kind))
	}
	event.Msg("field validated")

	f.listeners.FieldValidated(id, res)
	return res
}
