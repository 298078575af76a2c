package mark

import (
	"maps"

	"github.com/npillmayer/vstyle/maybe"
	"github.com/npillmayer/vstyle/scale"
)

// IsBorderAttribute is true for the attributes holding composite border styles.
func IsBorderAttribute(attr string) bool {
	return attr == "outerBorder" || attr == "innerBorder"
}

// Classify determines the shape of a raw style for attribute attr.
// Shapes are tested in order:
//
//   - a record with a "gradient" entry is a gradient
//   - a record for a border attribute is a border
//   - a record carrying a scale under "scale" is a scaled value
//   - a function is a callback
//   - anything else is a constant
//
// Values pass through unchanged. Gradient kinds are not checked here;
// unknown kinds are reported when the attribute is compiled.
func Classify(attr string, raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Value{}
	case Value:
		return x
	case Record:
		return classifyRecord(attr, x)
	}
	if f, ok := asCallback(raw); ok {
		return Func(f)
	}
	return Constant(raw)
}

func classifyRecord(attr string, rec Record) Value {
	if k, ok := gradientKind(rec["gradient"]); ok {
		return GradientOf(parseGradient(k, rec))
	}
	if IsBorderAttribute(attr) {
		b := Border{Attrs: Record{}}
		b.Scale, _ = rec["scale"].(scale.Scale)
		b.Field, _ = rec["field"].(string)
		for key, x := range rec {
			if key == "scale" || key == "field" {
				continue
			}
			b.Attrs[key] = x
		}
		return BorderOf(b)
	}
	if s, ok := rec["scale"].(scale.Scale); ok && s != nil {
		v := ScaledBy(s, "")
		v.scaled.Field, _ = rec["field"].(string)
		v.scaled.ChangeDomain, _ = rec["changeDomain"].(bool)
		return v
	}
	return Constant(rec)
}

// strokeStyle turns a gradient record given as a border stroke into a
// gradient value.
func strokeStyle(x any) any {
	if rec, ok := x.(Record); ok {
		if k, ok := gradientKind(rec["gradient"]); ok {
			return GradientOf(parseGradient(k, rec))
		}
	}
	return x
}

func gradientKind(x any) (GradientKind, bool) {
	switch k := x.(type) {
	case string:
		return GradientKind(k), k != ""
	case GradientKind:
		return k, k != ""
	}
	return "", false
}

func parseGradient(k GradientKind, rec Record) Gradient {
	g := Gradient{Kind: k, Attrs: Record{}}
	g.Scale, _ = rec["scale"].(scale.Scale)
	g.Field, _ = rec["field"].(string)
	for key, x := range rec {
		switch key {
		case "gradient", "scale", "field":
		case "stops":
			g.Stops = parseStops(x)
		default:
			g.Attrs[key] = x
		}
	}
	return g
}

func parseStops(x any) []GradientStop {
	stops := []GradientStop{}
	switch list := x.(type) {
	case []GradientStop:
		return append(stops, list...)
	case []Record:
		for _, rec := range list {
			stops = append(stops, parseStop(rec))
		}
	case []any:
		for _, el := range list {
			switch s := el.(type) {
			case Record:
				stops = append(stops, parseStop(s))
			case GradientStop:
				stops = append(stops, s)
			default:
				tracer().Debugf("ignoring malformed gradient stop %v", el)
			}
		}
	}
	return stops
}

func parseStop(rec Record) GradientStop {
	op, ok := scale.ToFloat(rec["opacity"])
	return GradientStop{
		Offset:  rec["offset"],
		Color:   rec["color"],
		Opacity: maybe.Of(op, ok),
	}
}

// asCallback recognizes functions usable as callbacks. Besides Callback
// itself, plain functions of a datum are accepted.
func asCallback(x any) (Callback, bool) {
	switch f := x.(type) {
	case Callback:
		return f, f != nil
	case func(Datum, AttributeContext, Options, DataView) any:
		return Callback(f), f != nil
	case func(Datum) any:
		if f == nil {
			return nil, false
		}
		return func(d Datum, _ AttributeContext, _ Options, _ DataView) any {
			return f(d)
		}, true
	}
	return nil, false
}

// merge computes the style resulting from writing incoming over old.
// If both have a record shape, the records are merged with incoming keys
// taking precedence, and the result is classified again. Otherwise incoming
// replaces old. An undefined incoming value keeps old.
func merge(attr string, old, incoming Value) Value {
	if incoming.IsUndefined() {
		return old
	}
	orec, ok := old.Record()
	if !ok {
		return incoming
	}
	irec, ok := incoming.Record()
	if !ok {
		return incoming
	}
	maps.Copy(orec, irec)
	return Classify(attr, orec)
}
