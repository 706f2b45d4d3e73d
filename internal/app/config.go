package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/specialistvlad/drawcheck/internal/report"
)

// DefaultExtensions are searched for inside directories.
var DefaultExtensions = []string{".drawio", ".drawio.svg", ".drawio.png"}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths      []string `validate:"min=1,dive,required"`
	Extensions []string `validate:"min=1,dive,required"`
	Disabled   []report.Code
	Enabled    []report.Code

	Format    string `validate:"oneof=text json yaml"`
	NoColor   bool
	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`
	Workers   int    `validate:"min=1,max=1024"`
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// NewConfig checks cfg and returns a copy ready for NewApp.
func NewConfig(cfg Config) (*Config, error) {
	if err := configValidator.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, describe(verrs)
		}
		return nil, err
	}
	for _, c := range cfg.Disabled {
		if !report.IsWarningCode(c) {
			return nil, fmt.Errorf("invalid configuration: %q cannot be disabled", c)
		}
	}
	for _, c := range cfg.Enabled {
		if !report.IsOptInCode(c) {
			return nil, fmt.Errorf("invalid configuration: %q cannot be enabled", c)
		}
	}
	return &cfg, nil
}

func describe(verrs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s fails %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New("invalid configuration: " + strings.Join(msgs, "; "))
}
