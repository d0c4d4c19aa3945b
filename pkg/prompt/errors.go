package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrDeclined is returned when the user declines to submit after the
	// review.
	ErrDeclined = errors.New("prompt: submission declined")
	// ErrTooManyAttempts is returned when a field stays invalid after the
	// configured number of attempts.
	ErrTooManyAttempts = errors.New("prompt: too many invalid attempts")
)
