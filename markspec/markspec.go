/*
Package markspec reads declarative mark specs.

A mark spec document describes the marks of a series together with their
styles, per-state styles and delegation:

	series:
	  type: bar
	  colorField: category
	  colorDomain: [A, B, C]
	marks:
	  bar:
	    type: rect
	    style:
	      fill: { scale: color, field: category }
	      angle: 45
	    state:
	      hover:
	        fill: '#FF8A00'
	      selected:
	        level: 2
	        filter: { field: category, value: A }
	        style:
	          outerBorder: { distance: 2, lineWidth: 1 }
	  shadow:
	    referer: bar

Documents may be written in YAML or TOML.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package markspec

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vstyle/color"
	"github.com/npillmayer/vstyle/errors"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'vstyle.markspec'.
func tracer() tracing.Trace {
	return tracing.Select("vstyle.markspec")
}

// Spec is the user spec of a single mark.
type Spec struct {
	ID          string                    `toml:"id" yaml:"id"`
	Type        string                    `toml:"type" yaml:"type"`
	Interactive *bool                     `toml:"interactive" yaml:"interactive"`
	ZIndex      *int                      `toml:"zIndex" yaml:"zIndex"`
	Visible     *bool                     `toml:"visible" yaml:"visible"`
	Level       string                    `toml:"level" yaml:"level" validate:"omitempty,level"`
	Style       map[string]any            `toml:"style" yaml:"style"`
	State       map[string]map[string]any `toml:"state" yaml:"state"`
	Referer     string                    `toml:"referer" yaml:"referer"`
}

// StateEntry splits the spec of a state. Entries holding a "style" sub-map
// carry state info besides the style; other entries are the style itself.
func StateEntry(entry map[string]any) (style map[string]any, info map[string]any) {
	st, ok := entry["style"]
	if !ok {
		return entry, nil
	}
	style, _ = st.(map[string]any)
	info = make(map[string]any, 2)
	for _, k := range []string{"level", "filter"} {
		if x, ok := entry[k]; ok {
			info[k] = x
		}
	}
	return style, info
}

// SeriesSpec describes the series owning the marks of a document.
type SeriesSpec struct {
	ID          string   `toml:"id" yaml:"id"`
	Type        string   `toml:"type" yaml:"type"`
	ColorField  string   `toml:"colorField" yaml:"colorField"`
	ColorDomain []any    `toml:"colorDomain" yaml:"colorDomain"`
	ColorRange  []string `toml:"colorRange" yaml:"colorRange" validate:"omitempty,dive,color"`
}

// Document is a set of named mark specs, optionally owned by a series.
type Document struct {
	Series *SeriesSpec      `toml:"series" yaml:"series"`
	Scales map[string]any   `toml:"scales" yaml:"scales"`
	Marks  map[string]*Spec `toml:"marks" yaml:"marks" validate:"dive"`
}

// MarkNames lists the marks of a document in an order where every mark
// comes after the mark it refers to. Marks taking part in a referer cycle
// are listed last, sorted by name.
func (doc *Document) MarkNames() []string {
	names := make([]string, 0, len(doc.Marks))
	for name := range doc.Marks {
		names = append(names, name)
	}
	sort.Strings(names)
	ordered := make([]string, 0, len(names))
	done := make(map[string]bool, len(names))
	for len(ordered) < len(names) {
		progress := false
		for _, name := range names {
			if done[name] {
				continue
			}
			ref := doc.Marks[name].Referer
			if ref == "" || done[ref] || doc.Marks[ref] == nil {
				ordered = append(ordered, name)
				done[name] = true
				progress = true
			}
		}
		if !progress {
			for _, name := range names {
				if !done[name] {
					ordered = append(ordered, name)
					done[name] = true
				}
			}
		}
	}
	return ordered
}

// --- Decoding --------------------------------------------------------------

// Format is a document format.
type Format string

// Supported document formats.
const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// Load reads a mark spec document, choosing the decoder by file extension.
func Load(path string) (*Document, error) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		format = TOML
	case ".yaml", ".yml":
		format = YAML
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported mark spec format: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, format)
}

// Decode reads and validates a mark spec document.
func Decode(r io.Reader, format Format) (*Document, error) {
	doc := &Document{}
	switch format {
	case TOML:
		if _, err := toml.NewDecoder(r).Decode(doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "cannot decode TOML mark spec")
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(doc); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "cannot decode YAML mark spec")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported mark spec format: %q", format)
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	tracer().Debugf("mark spec document with %d mark(s)", len(doc.Marks))
	return doc, nil
}

// --- Validation ------------------------------------------------------------

// LevelNames are the names of the priority levels a spec may write at.
var LevelNames = []string{
	"default", "theme", "chart", "baseSeries", "series", "mark",
	"userChart", "userSeries", "userMark", "userSeriesStyle", "builtIn",
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
			return color.IsColor(fl.Field().String())
		})
		_ = v.RegisterValidation("level", func(fl validator.FieldLevel) bool {
			name := fl.Field().String()
			for _, l := range LevelNames {
				if strings.EqualFold(l, name) {
					return true
				}
			}
			return false
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks a document for structural errors, unknown level names
// and referers to marks missing from the document.
func Validate(doc *Document) error {
	if err := validatorInstance().Struct(doc); err != nil {
		tracer().Errorf("invalid mark spec: %v", err)
		return errors.Wrap(errors.ErrCodeInvalidSpec, err, "invalid mark spec document")
	}
	for name, spec := range doc.Marks {
		if spec == nil {
			return errors.New(errors.ErrCodeInvalidSpec, "mark %q has an empty spec", name)
		}
		if spec.Referer != "" && doc.Marks[spec.Referer] == nil {
			return errors.New(errors.ErrCodeInvalidSpec, "mark %q refers to unknown mark %q", name, spec.Referer)
		}
		for state, entry := range spec.State {
			if st, ok := entry["style"]; ok {
				if _, isMap := st.(map[string]any); !isMap {
					return errors.New(errors.ErrCodeInvalidSpec, "style of state %q of mark %q is not a map", state, name)
				}
			}
		}
	}
	return nil
}
