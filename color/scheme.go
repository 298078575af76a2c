package color

import "github.com/npillmayer/vstyle/maybe"

// Palette is a list of colors, applicable to color domains of at most
// MaxDomainLength entries. A MaxDomainLength of 0 means "unbounded".
type Palette struct {
	MaxDomainLength int      `toml:"maxDomainLength" yaml:"maxDomainLength" validate:"min=0"`
	Colors          []string `toml:"colors" yaml:"colors" validate:"required,min=1,dive,color"`
}

// IsAvailable checks whether the palette may color a domain of a given size.
func (p Palette) IsAvailable(domain []any) bool {
	return p.MaxDomainLength == 0 || len(domain) <= p.MaxDomainLength
}

// DataScheme is a progressive list of palettes. Small color domains are
// colored with the first palette able to hold them; larger domains fall
// through to later palettes.
type DataScheme []Palette

// Actual selects the colors to use for a given color domain: the first
// palette available for the domain, or the last palette if none is.
func (ds DataScheme) Actual(domain []any) []string {
	if len(ds) == 0 {
		return nil
	}
	for _, p := range ds {
		if p.IsAvailable(domain) {
			return p.Colors
		}
	}
	return ds[len(ds)-1].Colors
}

// Scheme is a theme's color scheme: a default data scheme, and optional
// data schemes specific to a series type (e.g., "bar", "pie").
type Scheme struct {
	Default DataScheme            `toml:"default" yaml:"default" validate:"dive"`
	Series  map[string]DataScheme `toml:"series" yaml:"series" validate:"dive,dive"`
}

// NewScheme creates a scheme with a single, unbounded default palette.
func NewScheme(colors ...string) *Scheme {
	return &Scheme{Default: DataScheme{{Colors: colors}}}
}

// DataScheme returns the data scheme for a series type. If the scheme has no
// entry for the type, or seriesType is empty, the default data scheme is returned.
// A nil scheme returns nil.
func (s *Scheme) DataScheme(seriesType string) DataScheme {
	if s == nil {
		return nil
	}
	if seriesType != "" {
		if ds, ok := s.Series[seriesType]; ok && len(ds) > 0 {
			return ds
		}
	}
	return s.Default
}

// ThemeColor returns the first color of the actual palette for a series type
// and color domain. This is the fallback color used whenever data-driven
// coloring fails to produce a value.
func (s *Scheme) ThemeColor(seriesType string, domain []any) maybe.Maybe[string] {
	colors := s.DataScheme(seriesType).Actual(domain)
	if len(colors) == 0 {
		tracer().Debugf("no theme color for series type %q", seriesType)
		return maybe.Nothing[string]()
	}
	return maybe.Just(colors[0])
}
