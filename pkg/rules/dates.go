package rules

import (
	"strings"
	"time"

	"github.com/goliatone/go-intake/pkg/model"
)

// MaxAgeYears bounds how far in the past a date of birth may lie.
const MaxAgeYears = 120

var birthDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// ParseDate parses a date of birth in ISO or US notation in loc.
func ParseDate(raw string, loc *time.Location) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range birthDateLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// EarliestBirthDate returns the oldest accepted date of birth for today: the
// same calendar day MaxAgeYears years earlier.
func EarliestBirthDate(today time.Time) time.Time {
	y, m, d := today.Date()
	return time.Date(y-MaxAgeYears, m, d, 0, 0, 0, 0, today.Location())
}

// DateOfBirth requires a parseable calendar date that is not in the future
// and not older than MaxAgeYears. The age boundary is computed from the
// year/month/day of today so a birth date exactly 120 years back is accepted
// and one day earlier is not.
func DateOfBirth(now func() time.Time) Rule {
	if now == nil {
		now = time.Now
	}
	return textRule("Date of birth", true, func(text string, _ model.Snapshot) (model.Result, bool) {
		current := now()
		y, m, d := current.Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, current.Location())

		birth, ok := ParseDate(text, today.Location())
		if !ok {
			return model.Fail(model.KindFormatMismatch, "Date of birth must be a valid date (YYYY-MM-DD)"), true
		}
		if birth.After(today) {
			return model.Fail(model.KindSemanticInvalid, "Date of birth cannot be in the future"), true
		}
		if birth.Before(EarliestBirthDate(today)) {
			return model.Fail(model.KindSemanticInvalid, "Date of birth cannot be more than 120 years ago"), true
		}
		return model.Result{}, false
	})
}

// AgeOn returns the whole years between birth and today.
func AgeOn(birth, today time.Time) int {
	by, bm, bd := birth.Date()
	ty, tm, td := today.Date()
	age := ty - by
	if tm < bm || (tm == bm && td < bd) {
		age--
	}
	return age
}
