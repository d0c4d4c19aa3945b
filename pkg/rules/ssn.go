package rules

import (
	"strings"

	"github.com/goliatone/go-intake/pkg/model"
)

const ssnDigits = 9

// SocialSecurity requires exactly nine digits (dashes and spaces ignored) and
// normalises the value to XXX-XX-XXXX.
func SocialSecurity() Rule {
	rule := textRule("Social security number", true, func(text string, _ model.Snapshot) (model.Result, bool) {
		for _, r := range text {
			if (r < '0' || r > '9') && r != '-' && r != ' ' {
				return model.Fail(model.KindFormatMismatch, "Social security number may only contain digits and dashes"), true
			}
		}
		if len(digitsOnly(text)) != ssnDigits {
			return model.Fail(model.KindLengthOutOfRange, "Social security number must contain 9 digits"), true
		}
		return model.Result{}, false
	})
	return normalizing(rule, FormatSSN)
}

// FormatSSN reformats partially typed input as the user types: digits are
// kept (up to nine) and dashes are inserted after the third and fifth digit.
func FormatSSN(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) > ssnDigits {
		digits = digits[:ssnDigits]
	}
	switch {
	case len(digits) > 5:
		return digits[:3] + "-" + digits[3:5] + "-" + digits[5:]
	case len(digits) > 3:
		return digits[:3] + "-" + digits[3:]
	default:
		return digits
	}
}

func digitsOnly(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
