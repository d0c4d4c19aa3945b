package model

import "fmt"

// FailureKind classifies why a field failed validation. Every failure is an
// expected, user-correctable condition.
type FailureKind string

const (
	// KindRequiredFieldEmpty marks a required field with no content.
	KindRequiredFieldEmpty FailureKind = "required"
	// KindLengthOutOfRange marks content outside the permitted length.
	KindLengthOutOfRange FailureKind = "length"
	// KindFormatMismatch marks content that does not match the expected shape.
	KindFormatMismatch FailureKind = "format"
	// KindSemanticInvalid marks well-formed content that is still wrong
	// (date math, cross-field mismatch).
	KindSemanticInvalid FailureKind = "semantic"
)

// Result is the outcome of running one rule. Invalid results carry the
// failure kind and a message; valid results may carry a normalised value the
// presentation layer should write back into the control.
type Result struct {
	Valid      bool        `json:"valid"`
	Kind       FailureKind `json:"kind,omitempty"`
	Message    string      `json:"message,omitempty"`
	Normalized string      `json:"normalized,omitempty"`
}

// Pass returns a valid Result.
func Pass() Result {
	return Result{Valid: true}
}

// PassNormalized returns a valid Result carrying the canonical form of the
// value.
func PassNormalized(normalized string) Result {
	return Result{Valid: true, Normalized: normalized}
}

// Fail returns an invalid Result.
func Fail(kind FailureKind, message string) Result {
	return Result{Kind: kind, Message: message}
}

// Err converts an invalid result into a *FieldError for callers that prefer
// error values (prompt validators, errors.As). Valid results return nil.
func (r Result) Err(id FieldID) error {
	if r.Valid {
		return nil
	}
	return &FieldError{Field: id, Kind: r.Kind, Message: r.Message}
}

// FieldError is the error form of an invalid Result.
type FieldError struct {
	Field   FieldID
	Kind    FailureKind
	Message string
}

func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return fmt.Sprintf("%s: invalid (%s)", e.Field, e.Kind)
	}
	return e.Message
}
