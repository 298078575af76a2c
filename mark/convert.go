package mark

import (
	"maps"
	"math"

	"github.com/npillmayer/vstyle/scale"
)

// StyleConvert normalizes a raw style for attr before it is stored.
// A visual spec, e.g.
//
//	{ type: ordinal, domain: [A, B], range: [red, blue], field: category }
//
// is turned into a record holding a scale, the field and the domain-change
// flag. Scales referenced by id are looked up in the mark's global scales.
// In composite styles (gradients and borders) only scale ids are resolved.
// All other inputs pass through.
func (m *Mark) StyleConvert(attr string, raw any) any {
	rec, ok := raw.(Record)
	if !ok {
		return raw
	}
	if _, isGradient := rec["gradient"]; isGradient || IsBorderAttribute(attr) {
		return m.resolveScaleRefs(rec)
	}
	spec, ok := scale.ParseVisualSpec(rec)
	if !ok {
		return raw
	}
	s := scale.FromSpec(spec, m.scaleOptions())
	if s == nil {
		tracer().Debugf("cannot create a scale for attribute %s", attr)
		return raw
	}
	return Record{"scale": s, "field": spec.Field, "changeDomain": spec.ChangeDomain}
}

func (m *Mark) scaleOptions() scale.Options {
	return scale.Options{Global: m.opt.GlobalScale, SeriesID: m.opt.SeriesID}
}

// resolveScaleRefs replaces scale ids in a composite style and in a
// gradient stroke nested in it.
func (m *Mark) resolveScaleRefs(rec Record) Record {
	id, isRef := rec["scale"].(string)
	stroke, hasStroke := rec["stroke"].(Record)
	if !isRef && !hasStroke {
		return rec
	}
	rec = maps.Clone(rec)
	if isRef {
		if s := scale.FromSpec(scale.VisualSpec{Scale: id}, m.scaleOptions()); s != nil {
			rec["scale"] = s
		} else {
			delete(rec, "scale")
		}
	}
	if hasStroke {
		if _, isGradient := stroke["gradient"]; isGradient {
			rec["stroke"] = m.resolveScaleRefs(stroke)
		}
	}
	return rec
}

// --- User attribute filter -------------------------------------------------

// filterAttribute converts and classifies a raw style. Styles of user levels
// are transformed from user conventions to renderer conventions: angles are
// given in degrees and paddings grow inwards.
func (m *Mark) filterAttribute(attr string, raw any, level Level) Value {
	v := Classify(attr, m.StyleConvert(attr, raw))
	if !level.IsUser() {
		return v
	}
	switch attr {
	case "angle":
		v = TransformValue(v, degreeToRadian)
	case "innerPadding", "outerPadding":
		v = TransformValue(v, negate)
	}
	return v
}

// TransformValue applies f to the values a style produces. For a scaled
// style, the scale's range is rewritten in place; shared scales observe
// the change. Callbacks are wrapped and constants transformed directly.
// Composite styles are returned unchanged.
func TransformValue(v Value, f func(any) any) Value {
	var c any
	var cb Callback
	var s *Scaled
	switch m := v.Match(); m {
	case m.Scaled(&s):
		if s.Scale != nil {
			rng := s.Scale.Range()
			out := make([]any, len(rng))
			for i, x := range rng {
				out[i] = f(x)
			}
			s.Scale.SetRange(out)
		}
	case m.Callback(&cb):
		return Func(func(d Datum, ctx AttributeContext, opt Options, view DataView) any {
			return f(cb(d, ctx, opt, view))
		})
	case m.Constant(&c):
		return Constant(f(c))
	}
	return v
}

func degreeToRadian(x any) any {
	if deg, ok := scale.ToFloat(x); ok {
		return deg * math.Pi / 180
	}
	return x
}

func negate(x any) any {
	if n, ok := scale.ToFloat(x); ok {
		return -n
	}
	return x
}
