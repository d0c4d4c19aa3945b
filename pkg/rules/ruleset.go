package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-intake/pkg/model"
)

// Option customises rule set construction.
type Option func(*options)

type options struct {
	now    func() time.Time
	states []string
}

// WithClock overrides the clock used by date rules.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithStates replaces the enumerated state option set.
func WithStates(states []string) Option {
	return func(o *options) {
		if len(states) > 0 {
			o.states = append([]string(nil), states...)
		}
	}
}

// NewRuleSet builds a registry holding the complete rule catalog for
// variant, registered in form order.
func NewRuleSet(variant model.Variant, opts ...Option) (*Registry, error) {
	cfg := options{
		now:    time.Now,
		states: StateCodes(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	var table []entry
	switch variant {
	case model.VariantV1:
		table = variantOne(cfg)
	case model.VariantV2:
		table = variantTwo(cfg)
	default:
		return nil, fmt.Errorf("rules: unknown variant %q", variant)
	}

	registry := NewRegistry()
	for _, e := range table {
		if err := registry.Register(e.id, e.rule); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// MustRuleSet panics when the variant is unknown.
func MustRuleSet(variant model.Variant, opts ...Option) *Registry {
	registry, err := NewRuleSet(variant, opts...)
	if err != nil {
		panic(err)
	}
	return registry
}

type entry struct {
	id   model.FieldID
	rule Rule
}

func variantOne(cfg options) []entry {
	return []entry{
		{model.FieldFirstName, FirstName()},
		{model.FieldMiddleInitial, MiddleInitial()},
		{model.FieldLastName, LastName()},
		{model.FieldDateOfBirth, DateOfBirth(cfg.now)},
		{model.FieldAddressLine1, AddressLine1()},
		{model.FieldAddressLine2, AddressLine2()},
		{model.FieldCity, City()},
		{model.FieldState, State(cfg.states)},
		{model.FieldZipCode, ZipCodeExtended()},
		{model.FieldEmail, Email()},
		{model.FieldPhone, Phone()},
		{model.FieldGender, ExactlyOne(model.FieldGender)},
		{model.FieldSick, ExactlyOne(model.FieldSick)},
		{model.FieldInsurance, ExactlyOne(model.FieldInsurance)},
		{model.FieldVaccinated, ExactlyOne(model.FieldVaccinated)},
		{model.FieldMedicalHistory, AnyOf(model.FieldMedicalHistory)},
		{model.FieldPainLevel, PainLevel()},
		{model.FieldUserID, UserID(30)},
		{model.FieldPassword, PasswordStrict()},
		{model.FieldReenterPassword, PasswordMatch()},
	}
}

func variantTwo(cfg options) []entry {
	return []entry{
		{model.FieldFirstName, FirstName()},
		{model.FieldMiddleInitial, MiddleInitial()},
		{model.FieldLastName, LastName()},
		{model.FieldDateOfBirth, DateOfBirth(cfg.now)},
		{model.FieldSocialSecurity, SocialSecurity()},
		{model.FieldAddressLine1, AddressLine1()},
		{model.FieldAddressLine2, AddressLine2()},
		{model.FieldCity, City()},
		{model.FieldState, State(cfg.states)},
		{model.FieldZipCode, ZipCodeFive()},
		{model.FieldEmail, Email()},
		{model.FieldPhone, Phone()},
		{model.FieldGender, ExactlyOne(model.FieldGender)},
		{model.FieldSick, ExactlyOne(model.FieldSick)},
		{model.FieldInsurance, ExactlyOne(model.FieldInsurance)},
		{model.FieldVaccinated, ExactlyOne(model.FieldVaccinated)},
		{model.FieldMedicalHistory, AnyOf(model.FieldMedicalHistory)},
		{model.FieldPainLevel, PainLevel()},
		{model.FieldUserID, UserID(20)},
		{model.FieldPassword, PasswordBasic()},
		{model.FieldReenterPassword, PasswordMatch()},
	}
}

func toSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.ToUpper(strings.TrimSpace(value))
		if trimmed == "" {
			continue
		}
		out[trimmed] = struct{}{}
	}
	return out
}
