/*
Package theme loads chart themes.

The style engine does not decide what default styling should look like;
it only needs a theme's color scheme to derive fallback colors for
data-driven coloring. Themes are read from TOML or YAML documents:

	name = "dark"

	[[colorScheme.default]]
	maxDomainLength = 10
	colors = ["#5383F4", "#7BCF8E", "#FF9D2C"]

	[[colorScheme.series.pie]]
	colors = ["#FF8A00", "#1AC6FF"]

Loaded themes are validated and completed with values of the default theme.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package theme

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vstyle/color"
	"github.com/npillmayer/vstyle/errors"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'vstyle.theme'.
func tracer() tracing.Trace {
	return tracing.Select("vstyle.theme")
}

// Theme holds the parts of a chart theme relevant for style resolution.
type Theme struct {
	Name        string       `toml:"name" yaml:"name" validate:"required"`
	ColorScheme color.Scheme `toml:"colorScheme" yaml:"colorScheme"`
}

// DefaultPalette is the default theme's data palette.
var DefaultPalette = []string{
	"#1664FF", "#1AC6FF", "#FF8A00", "#3CC780", "#7442D4",
	"#FFC400", "#304D77", "#B48DEB", "#009488", "#FF7DDA",
}

// Default returns a fresh copy of the default theme.
func Default() *Theme {
	colors := make([]string, len(DefaultPalette))
	copy(colors, DefaultPalette)
	return &Theme{
		Name: "light",
		ColorScheme: color.Scheme{
			Default: color.DataScheme{{Colors: colors}},
		},
	}
}

// Scheme returns the theme's color scheme. A nil theme has no scheme.
func (t *Theme) Scheme() *color.Scheme {
	if t == nil {
		return nil
	}
	return &t.ColorScheme
}

// --- Loading ---------------------------------------------------------------

// Format is a theme document format.
type Format string

// Supported document formats.
const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// FormatFromPath derives the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported theme format: %s", path)
}

// Load reads a theme file, choosing the decoder by file extension.
func Load(path string) (*Theme, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tracer().Infof("loading theme from %s", path)
	return Decode(f, format)
}

// Decode reads a theme document, validates it and completes missing
// values from the default theme.
func Decode(r io.Reader, format Format) (*Theme, error) {
	t := &Theme{}
	switch format {
	case TOML:
		if _, err := toml.NewDecoder(r).Decode(t); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "cannot decode TOML theme")
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(t); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "cannot decode YAML theme")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported theme format: %q", format)
	}
	if err := mergo.Merge(t, Default()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "cannot complete theme")
	}
	if err := Validate(t); err != nil {
		return nil, err
	}
	tracer().Debugf("theme %q with %d palette(s)", t.Name, len(t.ColorScheme.Default))
	return t, nil
}

// --- Validation ------------------------------------------------------------

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
			return color.IsColor(fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks a theme for structural errors and malformed colors.
func Validate(t *Theme) error {
	if err := validatorInstance().Struct(t); err != nil {
		tracer().Errorf("invalid theme: %v", err)
		return errors.Wrap(errors.ErrCodeInvalidTheme, err, "theme %q is invalid", t.Name)
	}
	return nil
}
