package mark

import (
	"maps"
	"math"

	"github.com/npillmayer/vstyle/color"
	"github.com/npillmayer/vstyle/errors"
)

// gradientDefaults are the geometry defaults per gradient kind. Styles
// override them per sub-field.
var gradientDefaults = map[GradientKind]Record{
	LinearGradient:  {"x0": 0.0, "y0": 0.0, "x1": 1.0, "y1": 0.0},
	RadialGradient:  {"x0": 0.5, "y0": 0.5, "x1": 0.5, "y1": 0.5, "r0": 0.0, "r1": 0.5},
	ConicalGradient: {"x": 0.5, "y": 0.5, "startAngle": 0.0, "endAngle": 2 * math.Pi},
}

// computeGradient compiles a gradient style. The accessor returns a record
// with the resolved sub-fields, the resolved stops and the gradient kind.
func (m *Mark) computeGradient(g *Gradient) (Accessor, error) {
	if !g.Kind.IsKnown() {
		tracer().Errorf("mark %s: unknown gradient kind %q", m.name, g.Kind)
		return nil, errors.New(errors.ErrCodeConfiguration, "unknown gradient kind %q", g.Kind)
	}
	colorScale, colorField := m.colorAttribute(g.Scale, g.Field)
	themeColor := m.themeColor()
	attrs := maps.Clone(gradientDefaults[g.Kind])
	maps.Copy(attrs, g.Attrs)
	stops := g.Stops
	return func(d Datum, opt Options) any {
		view := m.DataView()
		out := make(Record, len(attrs)+2)
		for k, x := range attrs {
			out[k] = m.resolveField(x, d, opt, view)
		}
		if stops != nil {
			resolved := make([]Record, len(stops))
			for i, stop := range stops {
				var c any
				if cb, ok := asCallback(stop.Color); ok {
					c = cb(d, m.opt.AttributeContext, opt, view)
				} else if stop.Color != nil {
					c = stop.Color
				} else if colorScale != nil {
					c = colorScale.Scale(d[colorField])
				}
				if op, ok := stop.opacity(); ok {
					if s, isStr := c.(string); isStr && s != "" {
						c = color.SetOpacity(s, op)
					}
				}
				if isEmpty(c) {
					if tc, ok := themeColor.Get(); ok {
						c = tc
					}
				}
				resolved[i] = Record{
					"offset": m.resolveField(stop.Offset, d, opt, view),
					"color":  c,
				}
			}
			out["stops"] = resolved
		}
		out["gradient"] = string(g.Kind)
		return out
	}, nil
}

// computeBorder compiles a border style. A missing stroke is synthesized
// for marks owned by a series, from the color scale of the border or of the
// series, or from the theme color.
func (m *Mark) computeBorder(b *Border) (Accessor, error) {
	var strokeGradient Accessor
	if sv, ok := b.Attrs["stroke"].(Value); ok {
		var g *Gradient
		switch mt := sv.Match(); mt {
		case mt.Gradient(&g):
			f, err := m.computeGradient(g)
			if err != nil {
				return nil, err
			}
			strokeGradient = f
		}
	}
	_, hasStroke := b.Attrs["stroke"]
	synthesize := !hasStroke && m.isSeriesOwned()
	colorScale, colorField := m.colorAttribute(b.Scale, b.Field)
	themeColor := m.themeColor()
	return func(d Datum, opt Options) any {
		view := m.DataView()
		out := make(Record, len(b.Attrs)+1)
		for k, x := range b.Attrs {
			out[k] = m.resolveField(x, d, opt, view)
		}
		switch {
		case strokeGradient != nil:
			out["stroke"] = strokeGradient(d, opt)
		case synthesize:
			var c any
			if colorScale != nil {
				c = colorScale.Scale(d[colorField])
			}
			if isEmpty(c) {
				c = themeColor.WithDefault("")
			}
			if !isEmpty(c) {
				out["stroke"] = c
			}
		}
		return out
	}, nil
}

// resolveField resolves a sub-field of a composite style: callbacks are
// invoked, other values are constant.
func (m *Mark) resolveField(x any, d Datum, opt Options, view DataView) any {
	if cb, ok := asCallback(x); ok {
		return cb(d, m.opt.AttributeContext, opt, view)
	}
	return x
}

func isEmpty(x any) bool {
	if x == nil {
		return true
	}
	s, ok := x.(string)
	return ok && s == ""
}
