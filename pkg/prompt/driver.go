package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures a single-line text or password prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// SelectConfig configures a single or multi-select prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Defaults     []int // used for multi-select; indices into Options
	Help         string
	PageSize     int
}

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// TextAreaConfig configures a multi-line text prompt.
type TextAreaConfig struct {
	Message string
	Default string
	Help    string
}

// PromptDriver abstracts the terminal so sessions can be tested without one
// and callers can swap implementations.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Password(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

// askFunc matches survey.AskOne.
type askFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

type surveyDriver struct {
	out  io.Writer
	ask  askFunc
	opts []survey.AskOpt
}

// DriverOption customises the survey driver.
type DriverOption func(*surveyDriver)

// WithErrorIcon replaces the marker survey prints in front of a rejected
// answer, so inline validation matches the session's error prefix.
func WithErrorIcon(text string) DriverOption {
	return func(d *surveyDriver) {
		if text == "" {
			return
		}
		d.opts = append(d.opts, survey.WithIcons(func(icons *survey.IconSet) {
			icons.Error.Text = text
		}))
	}
}

// WithStdio sends prompts through the given streams instead of the process
// terminal.
func WithStdio(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) DriverOption {
	return func(d *surveyDriver) {
		d.opts = append(d.opts, survey.WithStdio(in, out, errOut))
	}
}

// NewSurveyDriver returns the survey-backed driver. Informational messages go
// to out, or stdout when out is nil.
func NewSurveyDriver(out io.Writer, opts ...DriverOption) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	d := &surveyDriver{out: out, ask: survey.AskOne}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// askOne runs one survey prompt and decodes the answer into T.
func askOne[T any](ctx context.Context, d *surveyDriver, p survey.Prompt, extra ...survey.AskOpt) (T, error) {
	var answer T
	if err := ctx.Err(); err != nil {
		return answer, err
	}
	opts := append(append([]survey.AskOpt(nil), d.opts...), extra...)
	if err := d.ask(p, &answer, opts...); err != nil {
		var zero T
		return zero, translateSurveyErr(err)
	}
	return answer, nil
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	return askOne[string](ctx, d, &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}, validatorOpts(cfg.Validator)...)
}

// Password never offers a default; prefilled secrets are not echoed back.
func (d *surveyDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	return askOne[string](ctx, d, &survey.Password{
		Message: cfg.Message,
		Help:    cfg.Help,
	}, validatorOpts(cfg.Validator)...)
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	return askOne[bool](ctx, d, &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	})
}

// Select returns the index of the chosen option, or -1 when survey hands back
// something outside cfg.Options.
func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	p := &survey.Select{
		Message:  cfg.Message,
		Options:  cfg.Options,
		Help:     cfg.Help,
		PageSize: cfg.PageSize,
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		p.Default = cfg.Options[cfg.DefaultIndex]
	}
	choice, err := askOne[string](ctx, d, p)
	if err != nil {
		return -1, err
	}
	return indexOf(cfg.Options, choice), nil
}

func (d *surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	p := &survey.MultiSelect{
		Message:  cfg.Message,
		Options:  cfg.Options,
		Help:     cfg.Help,
		PageSize: cfg.PageSize,
	}
	if defaults := defaultsFromIndices(cfg.Options, cfg.Defaults); len(defaults) > 0 {
		p.Default = defaults
	}
	choices, err := askOne[[]string](ctx, d, p)
	if err != nil {
		return nil, err
	}
	return indicesOf(cfg.Options, choices), nil
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	return askOne[string](ctx, d, &survey.Multiline{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	})
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// validatorOpts adapts a string validator to survey's untyped signature.
func validatorOpts(validate func(string) error) []survey.AskOpt {
	if validate == nil {
		return nil
	}
	return []survey.AskOpt{survey.WithValidator(func(ans interface{}) error {
		text, ok := ans.(string)
		if !ok {
			return fmt.Errorf("prompt: unexpected answer type %T", ans)
		}
		return validate(text)
	})}
}

// translateSurveyErr maps Ctrl-C to ErrAborted so callers can stop cleanly.
func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

func indicesOf(options, values []string) []int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	var out []int
	for i, option := range options {
		if _, ok := seen[option]; ok {
			out = append(out, i)
		}
	}
	return out
}

func defaultsFromIndices(options []string, indices []int) []string {
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out
}
