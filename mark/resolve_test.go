package mark

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vstyle/color"
	"github.com/npillmayer/vstyle/errors"
	"github.com/npillmayer/vstyle/maybe"
	"github.com/npillmayer/vstyle/model"
	"github.com/npillmayer/vstyle/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barSeries() *model.Series {
	scheme := color.NewScheme("#1664FF", "#1AC6FF", "#FF8A00")
	return model.NewSeries("s1", "bar", scheme, "category", []any{"A", "B", "C"})
}

func TestGradientStopFallsBackToThemeColor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	m := New("bar", TypeRect, Option{Model: barSeries()})
	m.SetAttribute("fill", Record{
		"gradient": "linear",
		"stops": []any{
			Record{"offset": 0},
			Record{"offset": 1, "color": "#FF0000", "opacity": 0.5},
		},
	}, StateNormal, LevelSeries)
	v, err := m.GetAttribute("fill", Datum{"category": "Z"}, StateNormal, nil)
	require.NoError(t, err)
	g := v.(Record)
	assert.Equal(t, "linear", g["gradient"])
	assert.Equal(t, 1.0, g["x1"])
	assert.Equal(t, 0.0, g["y1"])
	stops := g["stops"].([]Record)
	require.Len(t, stops, 2)
	assert.Equal(t, Record{"offset": 0, "color": "#1664FF"}, stops[0])
	assert.Equal(t, Record{"offset": 1, "color": "rgba(255,0,0,0.5)"}, stops[1])

	v, _ = m.GetAttribute("fill", Datum{"category": "B"}, StateNormal, nil)
	stops = v.(Record)["stops"].([]Record)
	assert.Equal(t, "#1AC6FF", stops[0]["color"], "series color attribute is inherited")
}

func TestGradientSubFields(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	cs := scale.NewOrdinal([]any{"A"}, []any{"#00FF00"})
	m := New("arc", TypeArc, Option{Model: &model.Component{Name: "legend"}})
	m.SetAttribute("fill", Record{
		"gradient": "radial",
		"scale":    cs,
		"field":    "kind",
		"r1":       func(d Datum) any { return d["r"] },
		"stops": []any{
			Record{"offset": func(d Datum) any { return 0.25 }, "opacity": 0.2},
			Record{"offset": 1, "color": func(d Datum) any { return "blue" }},
		},
	}, StateNormal, LevelSeries)
	v, err := m.GetAttribute("fill", Datum{"kind": "A", "r": 0.8}, StateNormal, nil)
	require.NoError(t, err)
	g := v.(Record)
	assert.Equal(t, 0.8, g["r1"])
	assert.Equal(t, 0.5, g["x0"])
	stops := g["stops"].([]Record)
	assert.Equal(t, Record{"offset": 0.25, "color": "rgba(0,255,0,0.2)"}, stops[0])
	assert.Equal(t, "blue", stops[1]["color"])

	v, _ = m.GetAttribute("fill", Datum{"kind": "X"}, StateNormal, nil)
	stops = v.(Record)["stops"].([]Record)
	assert.Nil(t, stops[0]["color"], "components without color scheme have no theme color")
}

func TestConicalGradientDefaults(t *testing.T) {
	m := New("arc", TypeArc, Option{})
	m.SetAttribute("fill", Record{"gradient": "conical", "x": 0.2}, StateNormal, LevelSeries)
	v, err := m.GetAttribute("fill", nil, StateNormal, nil)
	require.NoError(t, err)
	g := v.(Record)
	assert.Equal(t, 0.2, g["x"])
	assert.InDelta(t, 2*math.Pi, g["endAngle"], 1e-12)
	_, hasStops := g["stops"]
	assert.False(t, hasStops)
}

func TestUnknownGradientKind(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	m := New("bar", TypeRect, Option{})
	m.SetAttribute("fill", Record{"gradient": "spiral"}, StateNormal, LevelSeries)
	_, err := m.ComputeAttribute("fill", StateNormal)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfiguration))
	_, err = m.Encode(StateNormal)
	assert.True(t, errors.Is(err, errors.ErrCodeConfiguration))
	_, err = m.ComputeAttribute("x", StateNormal)
	assert.NoError(t, err)
}

func TestBorderStrokeSynthesis(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	m := New("bar", TypeRect, Option{Model: barSeries()})
	m.SetAttribute("outerBorder", Record{
		"distance":  2,
		"lineWidth": func(d Datum) any { return d["value"] },
	}, StateNormal, LevelSeries)
	v, err := m.GetAttribute("outerBorder", Datum{"category": "B", "value": 3}, StateNormal, nil)
	require.NoError(t, err)
	assert.Equal(t, Record{"distance": 2, "lineWidth": 3, "stroke": "#1AC6FF"}, v)
	v, _ = m.GetAttribute("outerBorder", Datum{"category": "Z"}, StateNormal, nil)
	assert.Equal(t, "#1664FF", v.(Record)["stroke"], "theme color is the last resort")

	explicit := scale.NewOrdinal([]any{"B"}, []any{"black"})
	m.SetAttribute("innerBorder", Record{"scale": explicit, "distance": 1}, StateNormal, LevelSeries)
	v, _ = m.GetAttribute("innerBorder", Datum{"category": "B"}, StateNormal, nil)
	assert.Equal(t, Record{"distance": 1, "stroke": "black"}, v, "explicit scale, inherited field")
}

func TestBorderWithoutSeries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	m := New("legend-item", TypeSymbol, Option{Model: &model.Component{Name: "legend"}})
	m.SetAttribute("outerBorder", Record{"distance": 2}, StateNormal, LevelSeries)
	v, err := m.GetAttribute("outerBorder", Datum{"category": "B"}, StateNormal, nil)
	require.NoError(t, err)
	assert.Equal(t, Record{"distance": 2}, v)

	// border records on other attributes are plain constants
	m.SetAttribute("shadow", Record{"distance": 2}, StateNormal, LevelSeries)
	v, _ = m.GetAttribute("shadow", nil, StateNormal, nil)
	assert.Equal(t, Record{"distance": 2}, v)
}

func TestBorderGradientStroke(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	global := scale.NewRegistry()
	global.Register("color", scale.NewOrdinal([]any{"A"}, []any{"#FF0000"}))
	m := New("bar", TypeRect, Option{Model: barSeries(), GlobalScale: global})
	m.SetAttribute("outerBorder", Record{
		"lineWidth": 1,
		"stroke": Record{
			"gradient": "linear",
			"scale":    "color",
			"stops":    []any{Record{"offset": 0}},
		},
	}, StateNormal, LevelSeries)
	v, err := m.GetAttribute("outerBorder", Datum{"category": "A"}, StateNormal, nil)
	require.NoError(t, err)
	border := v.(Record)
	assert.Equal(t, 1, border["lineWidth"])
	stroke := border["stroke"].(Record)
	assert.Equal(t, "linear", stroke["gradient"])
	assert.Equal(t, "#FF0000", stroke["stops"].([]Record)[0]["color"])

	m.SetAttribute("innerBorder", Record{
		"stroke": Record{"gradient": "spiral"},
	}, StateNormal, LevelSeries)
	_, err = m.ComputeAttribute("innerBorder", StateNormal)
	assert.True(t, errors.Is(err, errors.ErrCodeConfiguration))
}

func TestTypedGradientStops(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	m := New("bar", TypeRect, Option{})
	m.SetAttribute("fill", Record{
		"gradient": "linear",
		"stops": []GradientStop{
			{Offset: 0, Color: "red"},
			{Offset: 1, Color: "blue", Opacity: maybe.Just(0.5)},
		},
	}, StateNormal, LevelSeries)
	v, err := m.GetAttribute("fill", Datum{}, StateNormal, nil)
	require.NoError(t, err)
	stops := v.(Record)["stops"].([]Record)
	require.Len(t, stops, 2)
	assert.Equal(t, "red", stops[0]["color"])
	assert.Equal(t, "rgba(0,0,255,0.5)", stops[1]["color"])

	s := New("area", TypeRect, Option{Model: barSeries()})
	s.SetAttribute("fill", GradientOf(Gradient{
		Kind:  LinearGradient,
		Stops: []GradientStop{{Offset: 0}},
	}), StateNormal, LevelSeries)
	s.SetAttribute("fill", Record{"x1": 0.5}, StateNormal, LevelUserSeries)
	v, err = s.GetAttribute("fill", Datum{"category": "B"}, StateNormal, nil)
	require.NoError(t, err)
	g := v.(Record)
	assert.Equal(t, 0.5, g["x1"])
	assert.Equal(t, "#1AC6FF", g["stops"].([]Record)[0]["color"])
}

func TestBorderOfGradientStroke(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	stroke := Record{
		"gradient": "linear",
		"stops":    []any{Record{"offset": 0, "color": "red"}},
	}
	m := New("bar", TypeRect, Option{})
	m.SetAttribute("outerBorder", BorderOf(Border{
		Attrs: Record{"lineWidth": 1, "stroke": stroke},
	}), StateNormal, LevelSeries)
	v, err := m.GetAttribute("outerBorder", Datum{}, StateNormal, nil)
	require.NoError(t, err)
	border := v.(Record)
	assert.Equal(t, 1, border["lineWidth"])
	resolved := border["stroke"].(Record)
	assert.Equal(t, "linear", resolved["gradient"])
	assert.Equal(t, 1.0, resolved["x1"])
	assert.Equal(t, []Record{{"offset": 0, "color": "red"}}, resolved["stops"])
	assert.NotContains(t, stroke, "x1")

	m.SetAttribute("innerBorder", BorderOf(Border{
		Attrs: Record{"stroke": Record{"gradient": "spiral"}},
	}), StateNormal, LevelSeries)
	_, err = m.ComputeAttribute("innerBorder", StateNormal)
	assert.True(t, errors.Is(err, errors.ErrCodeConfiguration))
}

func TestCompositeMerge(t *testing.T) {
	m := New("bar", TypeRect, Option{Model: barSeries()})
	m.SetAttribute("outerBorder", Record{"distance": 2, "lineWidth": 1}, StateNormal, LevelTheme)
	m.SetAttribute("outerBorder", Record{"lineWidth": 4}, StateNormal, LevelUserMark)
	v, _ := m.GetAttribute("outerBorder", Datum{"category": "A"}, StateNormal, nil)
	assert.Equal(t, Record{"distance": 2, "lineWidth": 4, "stroke": "#1664FF"}, v)

	m.SetAttribute("fill", Record{"gradient": "linear", "x1": 0.5}, StateNormal, LevelTheme)
	m.SetAttribute("fill", Record{"gradient": "radial"}, StateNormal, LevelUserMark)
	style, _ := m.Style("fill", StateNormal)
	rec, _ := style.Record()
	assert.Equal(t, Record{"gradient": "radial", "x1": 0.5}, rec)
}
