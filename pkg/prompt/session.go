package prompt

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/orchestrator"
	"github.com/goliatone/go-intake/pkg/review"
	"github.com/goliatone/go-intake/pkg/rules"
)

// Session walks a user through the intake form in catalog order. Every answer
// goes through Form.FieldChanged, so dependent fields are rechecked the same
// way an interactive form would recheck them.
type Session struct {
	form        *orchestrator.Form
	driver      PromptDriver
	theme       Theme
	prefill     model.Snapshot
	states      []string
	maxAttempts int
	confirm     bool
	logger      zerolog.Logger
}

// Outcome is what a completed session hands back.
type Outcome struct {
	Review     review.Review
	Submission orchestrator.Submission
}

// NewSession prepares a prompt session for form.
func NewSession(form *orchestrator.Form, opts ...Option) (*Session, error) {
	if form == nil {
		return nil, fmt.Errorf("prompt: form is required")
	}
	s := &Session{
		form:    form,
		states:  rules.StateCodes(),
		confirm: true,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s, nil
}

// Run prompts for every field, shows the review and submits. A blocked
// submission re-prompts the first invalid field until the form passes.
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	snapshot := s.prefill.Clone()
	if snapshot == nil {
		snapshot = model.Snapshot{}
	}

	catalog := s.form.Catalog()
	for _, field := range catalog {
		if err := s.ask(ctx, field, snapshot); err != nil {
			return Outcome{}, err
		}
	}

	for round := 0; ; round++ {
		rv := review.Build(snapshot, s.form.Registry())
		if err := s.showReview(ctx, rv); err != nil {
			return Outcome{}, err
		}
		if s.confirm {
			ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Submit this information?", Default: true})
			if err != nil {
				return Outcome{}, err
			}
			if !ok {
				return Outcome{Review: rv}, ErrDeclined
			}
		}

		submission := s.form.AttemptSubmit(snapshot)
		if submission.Eligible {
			return Outcome{Review: review.Build(submission.Values, s.form.Registry()), Submission: submission}, nil
		}
		if round >= len(catalog) {
			return Outcome{Review: rv, Submission: submission}, fmt.Errorf("%w: %s", ErrTooManyAttempts, submission.Overall.FirstInvalid)
		}

		first := submission.Overall.FirstInvalid
		if err := s.info(ctx, s.theme.ErrorPrefix, fmt.Sprintf("%d field(s) need attention", submission.Overall.ErrorCount)); err != nil {
			return Outcome{}, err
		}
		for _, field := range catalog {
			if field.ID == first {
				if err := s.ask(ctx, field, snapshot); err != nil {
					return Outcome{}, err
				}
				break
			}
		}
	}
}

// ask prompts for field until its rule passes, writing the answer (or its
// normalised form) into snapshot.
func (s *Session) ask(ctx context.Context, field model.Field, snapshot model.Snapshot) error {
	for attempt := 1; ; attempt++ {
		value, err := s.promptValue(ctx, field, snapshot)
		if err != nil {
			return fmt.Errorf("prompt: %s: %w", field.ID, err)
		}
		snapshot[field.ID] = value

		outcomes := s.form.FieldChanged(field.ID, snapshot)
		res := outcomes[0].Result
		for _, dep := range outcomes[1:] {
			// unanswered dependents are reported when their own turn comes
			if dep.Result.Valid || snapshot.Get(dep.Field).IsEmpty() {
				continue
			}
			if err := s.info(ctx, s.theme.ErrorPrefix, fmt.Sprintf("%s: %s", model.Label(dep.Field), dep.Result.Message)); err != nil {
				return err
			}
		}

		if res.Valid {
			if res.Normalized != "" && res.Normalized != value.Text {
				value.Text = res.Normalized
				snapshot[field.ID] = value
			}
			s.logger.Debug().Str("field", field.ID.String()).Int("attempts", attempt).Msg("answer accepted")
			return nil
		}

		if err := s.info(ctx, s.theme.ErrorPrefix, res.Message); err != nil {
			return err
		}
		if s.maxAttempts > 0 && attempt >= s.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.ID)
		}
	}
}

func (s *Session) promptValue(ctx context.Context, field model.Field, snapshot model.Snapshot) (model.Value, error) {
	current := snapshot.Get(field.ID)
	message := field.Label
	if !field.Required {
		message += " (optional)"
	}

	switch field.Control {
	case model.ControlPassword:
		text, err := s.driver.Password(ctx, InputConfig{Message: message, Help: field.Help, Validator: s.validator(field.ID, snapshot)})
		return model.Text(text), err

	case model.ControlSelect:
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      s.states,
			DefaultIndex: indexOf(s.states, strings.ToUpper(current.Trimmed())),
			Help:         field.Help,
			PageSize:     10,
		})
		if err != nil {
			return model.Value{}, err
		}
		if idx < 0 || idx >= len(s.states) {
			return model.Value{}, nil
		}
		return model.Text(s.states[idx]), nil

	case model.ControlRadio:
		labels, values := optionLists(field.Options)
		def := -1
		if len(current.Selected) > 0 {
			def = indexOf(values, current.Selected[0])
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: def, Help: field.Help})
		if err != nil {
			return model.Value{}, err
		}
		if idx < 0 || idx >= len(values) {
			return model.Value{}, nil
		}
		return model.Choice(values[idx]), nil

	case model.ControlCheckbox:
		labels, values := optionLists(field.Options)
		indices, err := s.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  labels,
			Defaults: indicesOf(values, current.Selected),
			Help:     field.Help,
		})
		if err != nil {
			return model.Value{}, err
		}
		return model.Choice(defaultsFromIndices(values, indices)...), nil

	case model.ControlTextArea:
		text, err := s.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current.Text, Help: field.Help})
		return model.Text(text), err

	default:
		text, err := s.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   current.Text,
			Help:      field.Help,
			Validator: s.validator(field.ID, snapshot),
		})
		return model.Text(text), err
	}
}

// validator lets drivers reject an answer before it is submitted. It runs the
// field's rule against a copy of the snapshot and leaves the error state
// alone; the tracker only sees answers that went through FieldChanged.
func (s *Session) validator(id model.FieldID, snapshot model.Snapshot) func(string) error {
	registry := s.form.Registry()
	return func(text string) error {
		value := model.Text(text)
		return registry.Validate(id, value, snapshot.With(id, value)).Err(id)
	}
}

func (s *Session) showReview(ctx context.Context, rv review.Review) error {
	var buf bytes.Buffer
	if err := review.RenderText(&buf, rv); err != nil {
		return fmt.Errorf("prompt: render review: %w", err)
	}
	return s.info(ctx, s.theme.InfoPrefix, strings.TrimRight(buf.String(), "\n"))
}

func (s *Session) info(ctx context.Context, prefix, msg string) error {
	if prefix != "" {
		msg = prefix + " " + msg
	}
	return s.driver.Info(ctx, msg)
}

func optionLists(options []model.Option) (labels, values []string) {
	labels = make([]string, 0, len(options))
	values = make([]string, 0, len(options))
	for _, option := range options {
		labels = append(labels, option.Label)
		values = append(values, option.Value)
	}
	return labels, values
}
