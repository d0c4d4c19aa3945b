package prompt

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-intake/pkg/model"
)

// Theme captures optional message prefixes the session applies when printing
// through the driver.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithPrefill seeds answers; prompts offer them as defaults.
func WithPrefill(values model.Snapshot) Option {
	return func(s *Session) {
		s.prefill = values.Clone()
	}
}

// WithMaxAttempts bounds how often a single field is re-prompted. Zero
// re-prompts until the answer is valid.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

// WithStates sets the options offered for the state select.
func WithStates(states []string) Option {
	return func(s *Session) {
		if len(states) > 0 {
			s.states = append([]string(nil), states...)
		}
	}
}

// WithConfirm toggles the "submit?" confirmation after the review.
func WithConfirm(enabled bool) Option {
	return func(s *Session) {
		s.confirm = enabled
	}
}

// WithLogger sets the session logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}
