package openapi

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/rules"
)

// SchemaName is the component name used for the intake payload.
const SchemaName = "PatientIntake"

const (
	namePattern     = `^[A-Za-z'\- ]+$`
	lastNamePattern = `^[A-Za-z'\-2-5 ]+$`
	initialPattern  = `^[A-Za-z]$`
	ssnPattern      = `^\d{3}-\d{2}-\d{4}$`
	emailPattern    = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	phonePattern    = `^\d{3}-\d{3}-\d{4}$`
	zipPlusPattern  = `^\d{5}(-\d{4})?$`
	zipFivePattern  = `^\d{5}$`
	userIDPattern   = `^[A-Za-z][A-Za-z0-9_-]*$`
	painPattern     = `^([1-9]|10)$`
)

// Option customises schema generation.
type Option func(*options)

type options struct {
	states []string
}

// WithStates replaces the state enumeration.
func WithStates(states []string) Option {
	return func(o *options) {
		if len(states) > 0 {
			o.states = append([]string(nil), states...)
		}
	}
}

// FormSchema describes the normalised submission payload for variant as an
// object schema. Only shape constraints are expressed; cross-field and date
// rules stay in the rules package.
func FormSchema(variant model.Variant, opts ...Option) (*openapi3.Schema, error) {
	variant, err := model.ParseVariant(string(variant))
	if err != nil {
		return nil, fmt.Errorf("openapi: %w", err)
	}
	cfg := options{states: rules.StateCodes()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	schema := openapi3.NewObjectSchema()
	schema.Title = "Patient intake"
	schema.Description = fmt.Sprintf("Intake submission validated with rule set %s.", variant)

	var required []string
	for _, field := range model.Catalog(variant) {
		property := propertySchema(field, variant, cfg)
		if property == nil {
			continue
		}
		property.Title = field.Label
		if field.Help != "" {
			property.Description = field.Help
		}
		schema.WithProperty(field.ID.String(), property)
		if field.Required {
			required = append(required, field.ID.String())
		}
	}
	schema.WithRequired(required)
	return schema, nil
}

func propertySchema(field model.Field, variant model.Variant, cfg options) *openapi3.Schema {
	switch field.ID {
	case model.FieldFirstName:
		return text(1, 30).WithPattern(namePattern)
	case model.FieldLastName:
		return text(1, 30).WithPattern(lastNamePattern)
	case model.FieldMiddleInitial:
		return openapi3.NewStringSchema().WithPattern(initialPattern)
	case model.FieldDateOfBirth:
		return text(1, 0)
	case model.FieldSocialSecurity:
		if variant == model.VariantV2 {
			return openapi3.NewStringSchema().WithPattern(ssnPattern)
		}
		return openapi3.NewStringSchema()
	case model.FieldAddressLine1, model.FieldAddressLine2, model.FieldCity:
		return text(2, 30)
	case model.FieldState:
		return openapi3.NewStringSchema().WithEnum(anySlice(cfg.states)...)
	case model.FieldZipCode:
		if variant == model.VariantV2 {
			return openapi3.NewStringSchema().WithPattern(zipFivePattern)
		}
		return openapi3.NewStringSchema().WithPattern(zipPlusPattern)
	case model.FieldEmail:
		return openapi3.NewStringSchema().WithPattern(emailPattern)
	case model.FieldPhone:
		return openapi3.NewStringSchema().WithPattern(phonePattern)
	case model.FieldPainLevel:
		return openapi3.NewStringSchema().WithPattern(painPattern)
	case model.FieldSymptoms:
		return openapi3.NewStringSchema()
	case model.FieldUserID:
		if variant == model.VariantV2 {
			return text(5, 20).WithPattern(userIDPattern)
		}
		return text(5, 30).WithPattern(userIDPattern)
	case model.FieldPassword:
		if variant == model.VariantV2 {
			return text(8, 0)
		}
		return text(8, 30)
	case model.FieldReenterPassword:
		return text(1, 0)
	}

	switch field.Control {
	case model.ControlRadio:
		return openapi3.NewStringSchema().WithEnum(optionValues(field.Options)...)
	case model.ControlCheckbox:
		items := openapi3.NewStringSchema().WithEnum(optionValues(field.Options)...)
		return openapi3.NewArraySchema().WithItems(items).WithUniqueItems(true)
	}
	return nil
}

func text(min, max int64) *openapi3.Schema {
	schema := openapi3.NewStringSchema().WithMinLength(min)
	if max > 0 {
		schema = schema.WithMaxLength(max)
	}
	return schema
}

func optionValues(options []model.Option) []any {
	out := make([]any, 0, len(options))
	for _, option := range options {
		out = append(out, option.Value)
	}
	return out
}

func anySlice(values []string) []any {
	out := make([]any, 0, len(values))
	for _, value := range values {
		out = append(out, strings.ToUpper(strings.TrimSpace(value)))
	}
	return out
}

// Payload converts a snapshot into the JSON shape FormSchema describes:
// checkbox sets become arrays, radio groups their single value, everything
// else its text. Empty values are omitted.
func Payload(snapshot model.Snapshot) map[string]any {
	out := make(map[string]any, len(snapshot))
	for _, field := range model.Catalog(model.DefaultVariant) {
		value, ok := snapshot[field.ID]
		if !ok || value.IsEmpty() {
			continue
		}
		switch field.Control {
		case model.ControlCheckbox:
			items := make([]any, 0, len(value.Selected))
			for _, option := range value.Selected {
				items = append(items, option)
			}
			out[field.ID.String()] = items
		case model.ControlRadio:
			if len(value.Selected) > 0 {
				out[field.ID.String()] = value.Selected[0]
			} else {
				out[field.ID.String()] = value.Text
			}
		default:
			out[field.ID.String()] = value.Text
		}
	}
	return out
}
