package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-intake/pkg/model"
)

// textCheck inspects trimmed, non-empty text. It returns the failure and true
// when the check does not hold.
type textCheck func(text string, snapshot model.Snapshot) (model.Result, bool)

// textRule trims the value, applies the required check and then runs checks
// in priority order, returning the first failure.
func textRule(label string, required bool, checks ...textCheck) Rule {
	return func(value model.Value, snapshot model.Snapshot) model.Result {
		text := value.Trimmed()
		if text == "" {
			if required {
				return requiredFailure(label)
			}
			return model.Pass()
		}
		for _, check := range checks {
			if res, failed := check(text, snapshot); failed {
				return res
			}
		}
		return model.Pass()
	}
}

// normalizing wraps rule so valid results carry fn applied to the trimmed
// text.
func normalizing(rule Rule, fn func(string) string) Rule {
	return func(value model.Value, snapshot model.Snapshot) model.Result {
		res := rule(value, snapshot)
		if !res.Valid || value.Trimmed() == "" {
			return res
		}
		return model.PassNormalized(fn(value.Trimmed()))
	}
}

func requiredFailure(label string) model.Result {
	return model.Fail(model.KindRequiredFieldEmpty, label+" is required")
}

func lengthBetween(label string, min, max int) textCheck {
	message := fmt.Sprintf("%s must be %d-%d characters", label, min, max)
	if min == max {
		message = fmt.Sprintf("%s must be exactly %d characters", label, min)
	}
	return func(text string, _ model.Snapshot) (model.Result, bool) {
		n := utf8.RuneCountInString(text)
		if n < min || n > max {
			return model.Fail(model.KindLengthOutOfRange, message), true
		}
		return model.Result{}, false
	}
}

func matches(pattern *regexp.Regexp, message string) textCheck {
	return func(text string, _ model.Snapshot) (model.Result, bool) {
		if !pattern.MatchString(text) {
			return model.Fail(model.KindFormatMismatch, message), true
		}
		return model.Result{}, false
	}
}

func oneOf(label string, allowed map[string]struct{}) textCheck {
	return func(text string, _ model.Snapshot) (model.Result, bool) {
		if _, ok := allowed[strings.ToUpper(text)]; !ok {
			return model.Fail(model.KindFormatMismatch, label+" must be one of the listed options"), true
		}
		return model.Result{}, false
	}
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
