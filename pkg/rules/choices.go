package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-intake/pkg/model"
)

// ExactlyOne requires exactly one option of the field's radio group. A text
// value is accepted as a single selection for adapters that submit radio
// groups as plain strings.
func ExactlyOne(id model.FieldID) Rule {
	label := model.Label(id)
	allowed := optionSet(id)
	return func(value model.Value, _ model.Snapshot) model.Result {
		selected := selections(value)
		switch len(selected) {
		case 0:
			return model.Fail(model.KindRequiredFieldEmpty, fmt.Sprintf("Please select an option for %s", label))
		case 1:
		default:
			return model.Fail(model.KindFormatMismatch, fmt.Sprintf("Select only one option for %s", label))
		}
		if _, ok := allowed[selected[0]]; !ok {
			return model.Fail(model.KindFormatMismatch, fmt.Sprintf("%q is not a valid option for %s", selected[0], label))
		}
		return model.Pass()
	}
}

// AnyOf accepts zero or more options of the field's checkbox set, rejecting
// unknown values.
func AnyOf(id model.FieldID) Rule {
	label := model.Label(id)
	allowed := optionSet(id)
	return func(value model.Value, _ model.Snapshot) model.Result {
		for _, option := range selections(value) {
			if _, ok := allowed[option]; !ok {
				return model.Fail(model.KindFormatMismatch, fmt.Sprintf("%q is not a valid option for %s", option, label))
			}
		}
		return model.Pass()
	}
}

// PainLevel is optional; when present it must be a whole number from 1 to
// 10.
func PainLevel() Rule {
	return textRule("Pain level", false, func(text string, _ model.Snapshot) (model.Result, bool) {
		level, err := strconv.Atoi(text)
		if err != nil {
			return model.Fail(model.KindFormatMismatch, "Pain level must be a whole number"), true
		}
		if level < 1 || level > 10 {
			return model.Fail(model.KindSemanticInvalid, "Pain level must be between 1 and 10"), true
		}
		return model.Result{}, false
	})
}

func optionSet(id model.FieldID) map[string]struct{} {
	options := model.OptionsFor(id)
	out := make(map[string]struct{}, len(options))
	for _, option := range options {
		out[option.Value] = struct{}{}
	}
	return out
}

func selections(value model.Value) []string {
	var out []string
	for _, option := range value.Selected {
		if trimmed := strings.TrimSpace(option); trimmed != "" {
			out = append(out, strings.ToLower(trimmed))
		}
	}
	if len(out) == 0 {
		if trimmed := value.Trimmed(); trimmed != "" {
			out = append(out, strings.ToLower(trimmed))
		}
	}
	return out
}
