package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-intake/pkg/model"
)

var userIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// PasswordSpecials lists the characters that satisfy the special character
// requirement of the strict password rule.
const PasswordSpecials = "!@#%^&*()-_+=\\/<>.,`~"

const passwordQuotes = `"'`

// UserID requires 5..maxLen characters starting with a letter, followed by
// letters, digits, underscores or dashes. Valid ids normalise to lowercase.
// The leading character is checked before the length so "5bob" reports the
// leading digit rather than its length.
func UserID(maxLen int) Rule {
	rule := textRule("User ID", true,
		func(text string, _ model.Snapshot) (model.Result, bool) {
			first, _ := utf8.DecodeRuneInString(text)
			switch {
			case isASCIIDigit(first):
				return model.Fail(model.KindFormatMismatch, "User ID cannot start with a number"), true
			case !isASCIILetter(first):
				return model.Fail(model.KindFormatMismatch, "User ID must start with a letter"), true
			}
			return model.Result{}, false
		},
		lengthBetween("User ID", 5, maxLen),
		func(text string, _ model.Snapshot) (model.Result, bool) {
			if strings.IndexFunc(text, unicode.IsSpace) >= 0 {
				return model.Fail(model.KindFormatMismatch, "User ID cannot contain spaces"), true
			}
			return model.Result{}, false
		},
		matches(userIDPattern, "User ID may only contain letters, numbers, underscores, and dashes"),
	)
	return normalizing(rule, strings.ToLower)
}

// PasswordStrict is the aggregate password rule: every violated requirement
// is reported, joined by "; ". Requirements: 8-30 characters, an upper case
// letter, a lower case letter, a digit, a special character from
// PasswordSpecials, no quotes, and no case-insensitive occurrence of the user
// id, first name or last name.
func PasswordStrict() Rule {
	return func(value model.Value, snapshot model.Snapshot) model.Result {
		password := value.Text
		if password == "" {
			return requiredFailure("Password")
		}

		var (
			kind     model.FailureKind
			messages []string
		)
		add := func(k model.FailureKind, message string) {
			if kind == "" {
				kind = k
			}
			messages = append(messages, message)
		}

		if n := utf8.RuneCountInString(password); n < 8 || n > 30 {
			add(model.KindLengthOutOfRange, "Password must be 8-30 characters")
		}
		if !strings.ContainsFunc(password, isASCIIUpper) {
			add(model.KindFormatMismatch, "Must contain uppercase letter")
		}
		if !strings.ContainsFunc(password, isASCIILower) {
			add(model.KindFormatMismatch, "Must contain lowercase letter")
		}
		if !strings.ContainsFunc(password, isASCIIDigit) {
			add(model.KindFormatMismatch, "Must contain a number")
		}
		if !strings.ContainsAny(password, PasswordSpecials) {
			add(model.KindFormatMismatch, "Must contain special character")
		}
		if strings.ContainsAny(password, passwordQuotes) {
			add(model.KindFormatMismatch, "Cannot contain quotes")
		}
		if containsFold(password, snapshot.Get(model.FieldUserID).Trimmed()) {
			add(model.KindSemanticInvalid, "Cannot contain user ID")
		}
		if containsFold(password, snapshot.Get(model.FieldFirstName).Trimmed()) {
			add(model.KindSemanticInvalid, "Cannot contain first name")
		}
		if containsFold(password, snapshot.Get(model.FieldLastName).Trimmed()) {
			add(model.KindSemanticInvalid, "Cannot contain last name")
		}

		if len(messages) == 0 {
			return model.Pass()
		}
		return model.Fail(kind, strings.Join(messages, "; "))
	}
}

// PasswordBasic reports the first failing requirement: at least 8
// characters, an upper case letter, a lower case letter, a digit, and no
// case-insensitive occurrence of the user id.
func PasswordBasic() Rule {
	return func(value model.Value, snapshot model.Snapshot) model.Result {
		password := value.Text
		if password == "" {
			return requiredFailure("Password")
		}
		if utf8.RuneCountInString(password) < 8 {
			return model.Fail(model.KindLengthOutOfRange, "Password must be at least 8 characters")
		}
		checks := []struct {
			ok      func(rune) bool
			message string
		}{
			{isASCIIUpper, "uppercase letter"},
			{isASCIILower, "lowercase letter"},
			{isASCIIDigit, "number"},
		}
		for _, check := range checks {
			if !strings.ContainsFunc(password, check.ok) {
				return model.Fail(model.KindFormatMismatch, fmt.Sprintf("Password must contain at least one %s", check.message))
			}
		}

		userID := snapshot.Get(model.FieldUserID).Trimmed()
		switch {
		case userID != "" && strings.EqualFold(password, userID):
			return model.Fail(model.KindSemanticInvalid, "Password cannot be the same as the user ID")
		case containsFold(password, userID):
			return model.Fail(model.KindSemanticInvalid, "Password cannot contain the user ID")
		}
		return model.Pass()
	}
}

// PasswordMatch requires the re-entered password to equal the password field
// exactly.
func PasswordMatch() Rule {
	return func(value model.Value, snapshot model.Snapshot) model.Result {
		if value.Text == "" {
			return model.Fail(model.KindRequiredFieldEmpty, "Please re-enter your password")
		}
		if value.Text != snapshot.Text(model.FieldPassword) {
			return model.Fail(model.KindSemanticInvalid, "Passwords do not match")
		}
		return model.Pass()
	}
}

func isASCIILetter(r rune) bool {
	return isASCIILower(r) || isASCIIUpper(r)
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
