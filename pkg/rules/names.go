package rules

import "regexp"

var (
	firstNamePattern     = regexp.MustCompile(`^[A-Za-z'\-\s]+$`)
	lastNamePattern      = regexp.MustCompile(`^[A-Za-z'\-2-5\s]+$`)
	middleInitialPattern = regexp.MustCompile(`^[A-Za-z]$`)
)

// FirstName accepts 1-30 letters, apostrophes, dashes and internal spaces.
func FirstName() Rule {
	return textRule("First name", true,
		lengthBetween("First name", 1, 30),
		matches(firstNamePattern, "First name may only contain letters, apostrophes, dashes, and spaces"),
	)
}

// LastName follows FirstName and also permits the digits 2-5 used by
// numbered suffixes ("Ford3").
func LastName() Rule {
	return textRule("Last name", true,
		lengthBetween("Last name", 1, 30),
		matches(lastNamePattern, "Last name may only contain letters, apostrophes, dashes, spaces, and the digits 2-5"),
	)
}

// MiddleInitial is optional; when present it must be a single letter.
func MiddleInitial() Rule {
	return textRule("Middle initial", false,
		lengthBetween("Middle initial", 1, 1),
		matches(middleInitialPattern, "Middle initial must be a single letter"),
	)
}
