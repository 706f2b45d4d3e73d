package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/drawcheck/internal/ctxlog"
	"github.com/specialistvlad/drawcheck/internal/report"
)

// DefaultFile is looked up in the working directory when no file is named.
const DefaultFile = "drawcheck.hcl"

// ErrInvalid is wrapped by every error caused by the content of a file.
var ErrInvalid = errors.New("invalid configuration")

// File is the decoded form of a configuration file. Nil and empty fields
// mean "not set" and leave the command-line defaults alone.
type File struct {
	Workers    *int     `hcl:"workers,optional"`
	Extensions []string `hcl:"extensions,optional"`
	Disable    []string `hcl:"disable,optional"`
	Enable     []string `hcl:"enable,optional"`
}

// DisabledCodes returns Disable as report codes.
func (f *File) DisabledCodes() []report.Code {
	codes := make([]report.Code, 0, len(f.Disable))
	for _, c := range f.Disable {
		codes = append(codes, report.Code(c))
	}
	return codes
}

// EnabledCodes returns Enable as report codes.
func (f *File) EnabledCodes() []report.Code {
	codes := make([]report.Code, 0, len(f.Enable))
	for _, c := range f.Enable {
		codes = append(codes, report.Code(c))
	}
	return codes
}

// EvalContext returns the variables visible to a configuration file.
func EvalContext() *hcl.EvalContext {
	warnings := make([]cty.Value, 0, len(report.WarningCodes))
	for _, c := range report.WarningCodes {
		warnings = append(warnings, cty.StringVal(string(c)))
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"warnings": cty.ListVal(warnings),
		},
	}
}

// Load reads the file at path. When optional is set and the file does not
// exist, Load returns (nil, nil).
func Load(ctx context.Context, path string, optional bool) (*File, error) {
	logger := ctxlog.FromContext(ctx)

	src, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			logger.Debug("No configuration file found.", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	f, err := Parse(src, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Configuration file loaded.", "path", path, "disabled", len(f.Disable))
	return f, nil
}

// Parse decodes and checks configuration source. filename is used in
// diagnostics only.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrInvalid, filename, diags)
	}

	var f File
	diags = gohcl.DecodeBody(hclFile.Body, EvalContext(), &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", ErrInvalid, filename, diags)
	}

	if err := f.check(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, filename, err)
	}
	return &f, nil
}

func (f *File) check() error {
	if f.Workers != nil && *f.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", *f.Workers)
	}
	for _, ext := range f.Extensions {
		if ext == "" {
			return errors.New("extensions must not contain an empty string")
		}
	}
	for _, c := range f.Disable {
		if !report.IsWarningCode(report.Code(c)) {
			return fmt.Errorf("%q cannot be disabled: only hygiene warnings can", c)
		}
	}
	for _, c := range f.Enable {
		if !report.IsOptInCode(report.Code(c)) {
			return fmt.Errorf("%q cannot be enabled: only opt-in warnings can", c)
		}
	}
	return nil
}
