/*
Package model provides owning models for marks.

Marks ask their owning model for fallback colors. Charts embedding the
style engine have their own series and component implementations; the
types of this package serve hosts without such a layer, like the vstyle
command, and tests.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package model

import (
	"github.com/npillmayer/vstyle/color"
	"github.com/npillmayer/vstyle/scale"
)

// Series is a data series owning marks. Its color attribute maps values of
// ColorField through ColorScale.
type Series struct {
	ID          string
	Type        string // series type, e.g. "bar"; selects a series-specific data scheme
	Scheme      *color.Scheme
	ColorScale  scale.Scale
	ColorField  string
	ColorDomain []any
}

// NewSeries creates a series whose color scale is an ordinal scale over
// domain, colored with the scheme's actual palette for the series type.
func NewSeries(id, seriesType string, scheme *color.Scheme, field string, domain []any) *Series {
	colors := scheme.DataScheme(seriesType).Actual(domain)
	rng := make([]any, len(colors))
	for i, c := range colors {
		rng[i] = c
	}
	return &Series{
		ID:          id,
		Type:        seriesType,
		Scheme:      scheme,
		ColorScale:  scale.NewOrdinal(domain, rng),
		ColorField:  field,
		ColorDomain: domain,
	}
}

func (s *Series) ModelType() string { return "series" }

func (s *Series) ColorScheme() *color.Scheme { return s.Scheme }

// DefaultColorDomain returns the domain the series colors.
func (s *Series) DefaultColorDomain() []any { return s.ColorDomain }

// ColorAttribute returns the series' color scale and field.
func (s *Series) ColorAttribute() (scale.Scale, string) {
	return s.ColorScale, s.ColorField
}

// Spec returns the series' spec entries relevant for styling.
func (s *Series) Spec() map[string]any {
	return map[string]any{"id": s.ID, "type": s.Type}
}

// Component is a non-series model, e.g. an axis or a legend.
type Component struct {
	Name   string
	Scheme *color.Scheme
}

func (c *Component) ModelType() string { return "component" }

func (c *Component) ColorScheme() *color.Scheme { return c.Scheme }
