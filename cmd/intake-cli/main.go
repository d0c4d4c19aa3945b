package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-intake/pkg/config"
	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/openapi"
	"github.com/goliatone/go-intake/pkg/orchestrator"
	"github.com/goliatone/go-intake/pkg/prompt"
	"github.com/goliatone/go-intake/pkg/review"
)

// errInvalid marks a check that completed but found field errors.
var errInvalid = errors.New("form has validation errors")

type options struct {
	mode     string
	values   string
	profile  string
	profiles string
	variant  string
	format   string
	output   string
}

func main() {
	var opts options
	flag.StringVar(&opts.mode, "mode", "interactive", "interactive, check, review or schema")
	flag.StringVar(&opts.values, "values", "", "answers file (YAML or JSON) for check and review, prefill for interactive")
	flag.StringVar(&opts.profile, "profile", "", "deployment profile name (default profile if empty)")
	flag.StringVar(&opts.profiles, "profiles", "", "directory of profile documents (embedded profiles if empty)")
	flag.StringVar(&opts.variant, "variant", "", "override the profile's rule set (v1 or v2)")
	flag.StringVar(&opts.format, "format", "", "output format: json|yaml for check/schema/interactive, text|html for review")
	flag.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	logger := newLogger(*logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		if errors.Is(err, errInvalid) {
			os.Exit(1)
		}
		if errors.Is(err, prompt.ErrAborted) || errors.Is(err, prompt.ErrDeclined) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(130)
		}
		logger.Fatal().Err(err).Str("mode", opts.mode).Msg("intake-cli failed")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Str("app", "intake-cli").
		Logger()
}

func run(ctx context.Context, opts options, logger zerolog.Logger) error {
	profile, err := loadProfile(opts)
	if err != nil {
		return err
	}
	logger.Debug().
		Str("profile", profile.Name).
		Str("variant", string(profile.Variant)).
		Str("source", profile.Source).
		Msg("profile selected")

	out, closeOut, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer closeOut()

	switch opts.mode {
	case "schema":
		return writeSchema(out, profile, opts.format)
	case "check":
		values, err := readValues(opts.values, true)
		if err != nil {
			return err
		}
		return check(out, profile, values, opts.format, logger)
	case "review":
		values, err := readValues(opts.values, true)
		if err != nil {
			return err
		}
		return writeReview(out, profile, values, opts.format, logger)
	case "interactive":
		values, err := readValues(opts.values, false)
		if err != nil {
			return err
		}
		return interactive(ctx, out, profile, values, opts.format, logger)
	default:
		return fmt.Errorf("unknown mode %q", opts.mode)
	}
}

func loadProfile(opts options) (config.Profile, error) {
	var (
		store *config.Store
		err   error
	)
	if opts.profiles != "" {
		store, err = config.LoadFS(os.DirFS(opts.profiles))
	} else {
		store, err = config.Defaults()
	}
	if err != nil {
		return config.Profile{}, err
	}

	profile, err := store.Profile(opts.profile)
	if err != nil {
		return config.Profile{}, err
	}
	if opts.variant != "" {
		variant, err := model.ParseVariant(opts.variant)
		if err != nil {
			return config.Profile{}, err
		}
		profile.Variant = variant
	}
	return profile, nil
}

func readValues(path string, required bool) (model.Snapshot, error) {
	if path == "" {
		if required {
			return nil, fmt.Errorf("-values is required for this mode")
		}
		return nil, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return config.ReadValues(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func newForm(profile config.Profile, logger zerolog.Logger, extra ...orchestrator.Option) (*orchestrator.Form, error) {
	opts := append([]orchestrator.Option{orchestrator.WithLogger(logger)}, extra...)
	return profile.NewForm(nil, opts...)
}

type checkReport struct {
	Profile string              `json:"profile" yaml:"profile"`
	Variant model.Variant       `json:"variant" yaml:"variant"`
	Valid   bool                `json:"valid" yaml:"valid"`
	Errors  int                 `json:"errors" yaml:"errors"`
	Focus   string              `json:"focus,omitempty" yaml:"focus,omitempty"`
	Fields  map[string][]string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Values  map[string]any      `json:"values,omitempty" yaml:"values,omitempty"`
}

func check(out io.Writer, profile config.Profile, values model.Snapshot, format string, logger zerolog.Logger) error {
	form, err := newForm(profile, logger)
	if err != nil {
		return err
	}
	submission := form.AttemptSubmit(values)
	report := checkReport{
		Profile: profile.Name,
		Variant: profile.Variant,
		Valid:   submission.Eligible,
		Errors:  submission.ErrorCount,
		Focus:   submission.FirstInvalid.String(),
		Fields:  submission.FieldErrors(),
	}
	if submission.Eligible {
		report.Values = openapi.Payload(submission.Values)
	}
	if err := encode(out, report, format); err != nil {
		return err
	}
	if !submission.Eligible {
		return errInvalid
	}
	return nil
}

func writeReview(out io.Writer, profile config.Profile, values model.Snapshot, format string, logger zerolog.Logger) error {
	form, err := newForm(profile, logger)
	if err != nil {
		return err
	}
	rv := review.Build(values, form.Registry())

	switch format {
	case "", "text":
		return review.RenderText(out, rv)
	case "html":
		renderer, err := review.NewHTMLRenderer(review.WithTheme(profile.RendererConfig()))
		if err != nil {
			return err
		}
		return renderer.Render(out, rv)
	default:
		return fmt.Errorf("unsupported review format %q", format)
	}
}

func writeSchema(out io.Writer, profile config.Profile, format string) error {
	doc, err := openapi.Document(profile.Variant, openapi.WithStates(profile.States))
	if err != nil {
		return err
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("decode schema: %w", err)
	}
	return encode(out, generic, format)
}

func interactive(ctx context.Context, out io.Writer, profile config.Profile, prefill model.Snapshot, format string, logger zerolog.Logger) error {
	form, err := newForm(profile, logger)
	if err != nil {
		return err
	}
	sessionOpts := []prompt.Option{
		prompt.WithPromptDriver(prompt.NewSurveyDriver(os.Stderr,
			prompt.WithErrorIcon("✗"),
			prompt.WithStdio(os.Stdin, os.Stderr, os.Stderr),
		)),
		prompt.WithTheme(prompt.Theme{ErrorPrefix: "✗"}),
		prompt.WithStates(profile.States),
		prompt.WithLogger(logger),
	}
	if prefill != nil {
		sessionOpts = append(sessionOpts, prompt.WithPrefill(prefill))
	}
	session, err := prompt.NewSession(form, sessionOpts...)
	if err != nil {
		return err
	}
	outcome, err := session.Run(ctx)
	if err != nil {
		return err
	}
	return encode(out, openapi.Payload(outcome.Submission.Values), format)
}

func encode(out io.Writer, value any, format string) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
