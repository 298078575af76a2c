package mark

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vstyle/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categories = []Datum{
	{"category": "A", "value": 3},
	{"category": "B", "value": 7},
	{"category": "C", "value": 1},
	{"category": "Z"},
	nil,
}

func colorScale() *scale.OrdinalScale {
	return scale.NewOrdinal([]any{"A", "B", "C"}, []any{"#1664FF", "#1AC6FF", "#FF8A00"})
}

func TestScaledOverridesConstant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	cs := colorScale()
	m := New("bar", TypeRect, Option{})
	m.SetAttribute("fill", "#FFF", StateNormal, LevelDefault)
	m.SetAttribute("fill", Record{"scale": cs, "field": "category"}, StateNormal, LevelUserSeries)
	fill, err := m.GetAttribute("fill", Datum{"category": "A"}, StateNormal, nil)
	require.NoError(t, err)
	assert.Equal(t, cs.Scale("A"), fill)
	assert.NotEqual(t, "#FFF", fill)
	fill, _ = m.GetAttribute("fill", Datum{"category": "Z"}, StateNormal, nil)
	assert.Nil(t, fill, "unmapped values are undefined")
}

func TestFallbackToNormal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	m := New("bar", TypeRect, Option{})
	m.SetAttribute("fill", Record{"scale": colorScale(), "field": "category"}, StateNormal, LevelSeries)
	m.SetAttribute("stroke", "black", "hover", LevelSeries)
	normal, err := m.ComputeAttribute("fill", StateNormal)
	require.NoError(t, err)
	hover, err := m.ComputeAttribute("fill", "hover")
	require.NoError(t, err)
	for _, d := range categories {
		assert.Equal(t, normal(d, nil), hover(d, nil))
	}
	missing, err := m.ComputeAttribute("opacity", "hover")
	require.NoError(t, err)
	assert.Nil(t, missing(categories[0], nil))
}

func TestCallbackArguments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	view := []Datum{{"value": 10}}
	m := New("bar", TypeRect, Option{AttributeContext: "chart-1", DataView: view})
	var seen []any
	m.SetAttribute("height", Callback(func(d Datum, ctx AttributeContext, opt Options, v DataView) any {
		seen = []any{ctx, opt["scale"], len(v.([]Datum))}
		return d["value"].(int) * opt["scale"].(int)
	}), StateNormal, LevelSeries)
	h, err := m.GetAttribute("height", Datum{"value": 4}, StateNormal, Options{"scale": 2})
	require.NoError(t, err)
	assert.Equal(t, 8, h)
	assert.Equal(t, []any{"chart-1", 2, 1}, seen)

	f, _ := m.ComputeAttribute("height", StateNormal)
	m.SetDataView(append(view, Datum{"value": 20}))
	f(Datum{"value": 1}, Options{"scale": 1})
	assert.Equal(t, 2, seen[2], "accessors observe the current data view")
}

func TestDelegation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	reg := NewRegistry()
	a := New("a", TypeRect, Option{Registry: reg})
	b := New("b", TypeRect, Option{Registry: reg})
	a.SetAttribute("fill", Record{"scale": colorScale(), "field": "category"}, StateNormal, LevelSeries)
	a.SetAttribute("fill", "#000000", "hover", LevelSeries)
	b.SetAttribute("fill", "#FFFFFF", StateNormal, LevelBuiltIn)
	b.SetReferer(a, "fill", StateNormal)
	b.SetPostProcess("fill", func(v any, _ Datum, _ AttributeContext, _ Options, _ DataView) any {
		return "overridden"
	}, StateNormal)
	fa, _ := a.ComputeAttribute("fill", StateNormal)
	fb, err := b.ComputeAttribute("fill", StateNormal)
	require.NoError(t, err)
	for _, d := range categories {
		assert.Equal(t, fa(d, nil), fb(d, nil))
	}
	// the delegating state is passed to the referer
	b.SetReferer(a, "fill", "hover")
	v, _ := b.GetAttribute("fill", categories[0], "hover", nil)
	assert.Equal(t, "#000000", v)

	a.Release()
	fb, err = b.ComputeAttribute("fill", StateNormal)
	require.NoError(t, err)
	assert.Nil(t, fb(categories[0], nil), "released referers resolve to undefined")
	_, ok := reg.Lookup(a.ID())
	assert.False(t, ok)
	assert.Equal(t, 1, reg.Len())
}

func TestDelegationAllSlotsAndCycles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	reg := NewRegistry()
	a := New("a", TypeRect, Option{Registry: reg})
	b := New("b", TypeRect, Option{Registry: reg})
	a.SetAttribute("x", 10, StateNormal, LevelSeries)
	b.SetReferer(a, "", "")
	for _, attr := range b.Table().Attributes(StateNormal) {
		s, _ := b.Table().Slot(StateNormal, attr)
		assert.Equal(t, a.ID(), s.Referer, attr)
	}
	x, _ := b.GetAttribute("x", nil, StateNormal, nil)
	assert.Equal(t, 10, x)

	a.SetReferer(b, "x", StateNormal)
	f, err := b.ComputeAttribute("x", StateNormal)
	require.NoError(t, err)
	assert.Nil(t, f(nil, nil), "cycles resolve to undefined")

	other := New("other", TypeRect, Option{})
	a.SetReferer(other, "y", StateNormal)
	s, _ := a.Table().Slot(StateNormal, "y")
	assert.Equal(t, NoMark, s.Referer, "marks of other registries are rejected")
	found, ok := reg.Find("b")
	assert.True(t, ok)
	assert.Same(t, b, found)
}

func TestPostProcessAndExtensionCompute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	var states []string
	typ := NewType("sized", WithExtensionCompute("size",
		func(key string, d Datum, state string, opt Options, base any) any {
			states = append(states, state)
			return base.(float64) + 1
		}))
	m := New("point", typ, Option{})
	m.SetAttribute("size", 2.0, StateNormal, LevelSeries)
	v, err := m.GetAttribute("size", nil, StateNormal, nil)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	m.SetPostProcess("size", func(v any, _ Datum, _ AttributeContext, _ Options, _ DataView) any {
		return v.(float64) * 10
	}, StateNormal)
	v, _ = m.GetAttribute("size", nil, StateNormal, nil)
	assert.Equal(t, 21.0, v, "post-process runs before extension compute")
	v, _ = m.GetAttribute("size", nil, "hover", nil)
	assert.Equal(t, 21.0, v)
	assert.Equal(t, []string{StateNormal, StateNormal, "hover"}, states)

	m.SetPostProcess("missing", func(v any, _ Datum, _ AttributeContext, _ Options, _ DataView) any {
		return "x"
	}, StateNormal)
	_, ok := m.Table().Slot(StateNormal, "missing")
	assert.False(t, ok, "post-processing needs an existing slot")
}

func TestRecompilationIsObservablyIdentical(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	m := New("bar", TypeRect, Option{})
	m.SetAttribute("fill", Record{"scale": colorScale(), "field": "category"}, StateNormal, LevelSeries)
	m.SetAttribute("height", func(d Datum) any { return d["value"] }, StateNormal, LevelSeries)
	for _, attr := range []string{"fill", "height", "x", "nothing"} {
		f1, err1 := m.ComputeAttribute(attr, "hover")
		f2, err2 := m.ComputeAttribute(attr, "hover")
		require.NoError(t, err1)
		require.NoError(t, err2)
		for _, d := range categories {
			assert.Equal(t, f1(d, nil), f2(d, nil), attr)
		}
	}
}

func TestStyleConvertVisualSpecs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	global := scale.NewRegistry()
	global.Register("color", colorScale())
	global.Register("s1/color", scale.NewOrdinal([]any{"A"}, []any{"red"}))
	m := New("bar", TypeRect, Option{GlobalScale: global})
	m.SetAttribute("fill", Record{
		"type":   "ordinal",
		"domain": []any{"A", "B"},
		"range":  []any{"red", "green"},
		"field":  "category",
	}, StateNormal, LevelSeries)
	fill, _ := m.GetAttribute("fill", Datum{"category": "B"}, StateNormal, nil)
	assert.Equal(t, "green", fill)

	m.SetAttribute("stroke", Record{"scale": "color", "field": "category"}, StateNormal, LevelSeries)
	stroke, _ := m.GetAttribute("stroke", Datum{"category": "C"}, StateNormal, nil)
	assert.Equal(t, "#FF8A00", stroke)

	scoped := New("bar", TypeRect, Option{GlobalScale: global, SeriesID: "s1"})
	scoped.SetAttribute("stroke", Record{"scale": "color", "field": "category"}, StateNormal, LevelSeries)
	stroke, _ = scoped.GetAttribute("stroke", Datum{"category": "A"}, StateNormal, nil)
	assert.Equal(t, "red", stroke, "series scales take precedence")

	m.SetAttribute("shadow", Record{"scale": "missing", "field": "category"}, StateNormal, LevelSeries)
	v, _ := m.Style("shadow", StateNormal)
	assert.Equal(t, "constant", v.Kind(), "unresolvable visual specs pass through")
}

func TestClassify(t *testing.T) {
	cs := colorScale()
	assert.True(t, Classify("fill", nil).IsUndefined())
	assert.Equal(t, "callback", Classify("fill", func(d Datum) any { return 1 }).Kind())
	assert.Equal(t, "scaled", Classify("fill", Record{"scale": cs, "field": "f"}).Kind())
	assert.Equal(t, "gradient", Classify("fill", Record{"gradient": "linear", "scale": cs}).Kind())
	assert.Equal(t, "border", Classify("outerBorder", Record{"scale": cs}).Kind())
	assert.Equal(t, "constant", Classify("fill", Record{"scale": "not-a-scale"}).Kind())
	assert.Equal(t, "gradient", Classify("innerBorder", Record{"gradient": "radial"}).Kind())
	v := Constant("#FFF")
	assert.Equal(t, v, Classify("fill", v), "values pass through")
}

func TestEncode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vstyle.mark")
	defer teardown()
	//
	m := New("bar", TypeRect, Option{})
	m.SetAttribute("fill", Record{"scale": colorScale(), "field": "category"}, StateNormal, LevelSeries)
	m.SetAttribute("fill", "#000000", "hover", LevelSeries)
	m.SetAttribute("lineWidth", 2, "hover", LevelSeries)
	enc, err := m.Encode("hover")
	require.NoError(t, err)
	assert.Equal(t, []string{"fill", "lineWidth", "visible", "x", "y"}, enc.Attributes())
	out := enc.Apply(categories[0], nil)
	assert.Equal(t, map[string]any{
		"fill": "#000000", "lineWidth": 2, "visible": true, "x": 0, "y": 0,
	}, out)
	enc, _ = m.Encode(StateNormal)
	assert.Equal(t, "#1AC6FF", enc.Apply(categories[1], nil)["fill"])
}
