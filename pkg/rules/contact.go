package rules

import (
	"regexp"
	"strings"
)

var (
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern   = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	zipPlusPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	zipFivePattern = regexp.MustCompile(`^\d{5}$`)
)

// Email requires a local@domain.tld address and normalises it to lowercase.
func Email() Rule {
	return normalizing(
		textRule("Email address", true,
			matches(emailPattern, "Please enter a valid email address (name@domain.tld)"),
		),
		strings.ToLower,
	)
}

// Phone requires the DDD-DDD-DDDD layout.
func Phone() Rule {
	return textRule("Phone number", true,
		matches(phonePattern, "Phone must be in format: 000-000-0000"),
	)
}

// ZipCodeExtended accepts five digit and ZIP+4 codes.
func ZipCodeExtended() Rule {
	return textRule("Zip code", true,
		matches(zipPlusPattern, "Zip code must be 5 digits or 5+4 format (12345 or 12345-6789)"),
	)
}

// ZipCodeFive accepts five digit codes only.
func ZipCodeFive() Rule {
	return textRule("Zip code", true,
		matches(zipFivePattern, "Zip code must be 5 digits"),
	)
}

// AddressLine1 requires 2-30 characters.
func AddressLine1() Rule {
	return textRule("Address line 1", true, lengthBetween("Address line 1", 2, 30))
}

// AddressLine2 is optional; when present it must be 2-30 characters.
func AddressLine2() Rule {
	return textRule("Address line 2", false, lengthBetween("Address line 2", 2, 30))
}

// City requires 2-30 characters.
func City() Rule {
	return textRule("City", true, lengthBetween("City", 2, 30))
}

// State requires a selection from states. Codes match case-insensitively and
// normalise to upper case.
func State(states []string) Rule {
	if len(states) == 0 {
		states = StateCodes()
	}
	return normalizing(
		textRule("State", true, oneOf("State", toSet(states))),
		strings.ToUpper,
	)
}

var stateCodes = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH",
	"NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "PR",
	"RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV",
	"WI", "WY",
}

// StateCodes returns the default state option set.
func StateCodes() []string {
	return append([]string(nil), stateCodes...)
}
