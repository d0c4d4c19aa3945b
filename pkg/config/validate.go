package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	structValidator  = newStructValidator()
	tokenNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// newStructValidator adds the tags profile documents use on top of the
// built-in set. token_name limits theme token keys to characters that are
// safe inside a CSS custom property name.
func newStructValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("token_name", func(fl validator.FieldLevel) bool {
		return tokenNamePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// validateProfile checks the raw document against its struct tags before the
// profile is normalised. Tag failures are reported by YAML path.
func validateProfile(raw profileFile) error {
	err := structValidator.Struct(raw)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	path := strings.TrimPrefix(fe.Namespace(), "profileFile.")
	switch fe.Tag() {
	case "timezone":
		return fmt.Sprintf("%s: unknown time zone %q", path, fe.Value())
	case "len", "max":
		return fmt.Sprintf("%s: %s must be %s", path, fe.Tag(), fe.Param())
	case "alpha":
		return fmt.Sprintf("%s: must contain letters only", path)
	case "token_name":
		return fmt.Sprintf("%s: %q may only contain letters, digits, '-' and '_'", path, fe.Value())
	case "required":
		return fmt.Sprintf("%s: is required", path)
	default:
		return fmt.Sprintf("%s: failed %s", path, fe.Tag())
	}
}
