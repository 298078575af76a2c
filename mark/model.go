package mark

import (
	"github.com/npillmayer/vstyle/color"
	"github.com/npillmayer/vstyle/maybe"
	"github.com/npillmayer/vstyle/scale"
)

// ModelTypeSeries is the model type of data series.
const ModelTypeSeries = "series"

// Model is the series or component owning a mark. Marks consult their model
// for fallback colors only.
type Model interface {
	ColorScheme() *color.Scheme
	ModelType() string
}

// SeriesModel is a Model for a data series.
type SeriesModel interface {
	Model
	DefaultColorDomain() []any
	ColorAttribute() (scale.Scale, string) // the series' color scale and field
}

// SpecProvider is implemented by models exposing their spec. A series
// spec's "type" entry selects a series-specific data scheme.
type SpecProvider interface {
	Spec() map[string]any
}

func (m *Mark) isSeriesOwned() bool {
	return m.opt.Model != nil && m.opt.Model.ModelType() == ModelTypeSeries
}

// themeColor computes the first color of the model's actual data scheme.
func (m *Mark) themeColor() maybe.Maybe[string] {
	model := m.opt.Model
	if model == nil {
		return maybe.Nothing[string]()
	}
	seriesType := ""
	if m.isSeriesOwned() {
		if sp, ok := model.(SpecProvider); ok {
			seriesType, _ = sp.Spec()["type"].(string)
		}
	}
	var domain []any
	if sm, ok := model.(SeriesModel); ok {
		domain = sm.DefaultColorDomain()
	}
	return model.ColorScheme().ThemeColor(seriesType, domain)
}

// colorAttribute completes an explicit color scale and field with the
// color attribute of the owning series.
func (m *Mark) colorAttribute(s scale.Scale, field string) (scale.Scale, string) {
	if (s != nil && field != "") || !m.isSeriesOwned() {
		return s, field
	}
	sm, ok := m.opt.Model.(SeriesModel)
	if !ok {
		return s, field
	}
	gs, gf := sm.ColorAttribute()
	if s == nil {
		s = gs
	}
	if field == "" {
		field = gf
	}
	return s, field
}
