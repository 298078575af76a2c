package mark

import (
	"fmt"
	"maps"

	"github.com/npillmayer/vstyle/maybe"
	"github.com/npillmayer/vstyle/scale"
)

// kind is an enum type for the shapes of style values.
type kind uint8

const (
	kindConstant kind = iota
	kindCallback
	kindScaled
	kindGradient
	kindBorder
)

var kindNames = [...]string{"constant", "callback", "scaled", "gradient", "border"}

/*
type Value
	= Constant any
	| Callback func
	| Scaled scale field
	| Gradient kind scale field stops attrs
	| Border scale field attrs
*/

// Value is an option type for the ways an attribute value is obtained.
// Values are classified once, when written to a mark (see Classify).
//
// The zero value is the undefined constant.
type Value struct {
	kind     kind
	constant any
	callback Callback
	scaled   *Scaled
	gradient *Gradient
	border   *Border
}

// Scaled is a data-driven value: the datum's field value mapped by a scale.
type Scaled struct {
	Scale        scale.Scale
	Field        string
	ChangeDomain bool
}

// GradientKind names a kind of color gradient.
type GradientKind string

// Known gradient kinds.
const (
	LinearGradient  GradientKind = "linear"
	RadialGradient  GradientKind = "radial"
	ConicalGradient GradientKind = "conical"
)

// IsKnown is true for gradient kinds we are able to resolve.
func (k GradientKind) IsKnown() bool {
	return k == LinearGradient || k == RadialGradient || k == ConicalGradient
}

// Gradient is a composite color gradient style. Stop colors may be
// data-driven through Scale and Field; if both are missing for a mark owned
// by a series, the series' color attribute is used.
type Gradient struct {
	Kind  GradientKind
	Scale scale.Scale
	Field string
	Stops []GradientStop
	Attrs Record // other sub-fields (x0, y0, r1, …), constants or callbacks
}

// GradientStop is a color stop of a gradient. Offset and Color are constants
// or callbacks; a nil color is looked up in the gradient's scale.
type GradientStop struct {
	Offset  any
	Color   any
	Opacity maybe.Maybe[float64]
}

// opacity returns the explicit opacity of s, if any. A zero-valued Opacity
// means "none".
func (s GradientStop) opacity() (float64, bool) {
	if s.Opacity == nil {
		return 0, false
	}
	return s.Opacity.Get()
}

// Border is a composite style for the outer and inner borders of a mark.
// A "stroke" sub-field holding a gradient is stored as a gradient Value.
type Border struct {
	Scale scale.Scale
	Field string
	Attrs Record
}

// Constant creates a constant style value. A nil x denotes "undefined".
func Constant(x any) Value {
	return Value{kind: kindConstant, constant: x}
}

// Func creates a style value computed by a callback.
func Func(f Callback) Value {
	if f == nil {
		return Value{}
	}
	return Value{kind: kindCallback, callback: f}
}

// ScaledBy creates a style value mapping a datum field through a scale.
func ScaledBy(s scale.Scale, field string) Value {
	return Value{kind: kindScaled, scaled: &Scaled{Scale: s, Field: field}}
}

// GradientOf wraps a gradient into a style value.
func GradientOf(g Gradient) Value {
	return Value{kind: kindGradient, gradient: &g}
}

// BorderOf wraps a border into a style value. A stroke given as a gradient
// record is turned into a gradient value.
func BorderOf(b Border) Value {
	if x, ok := b.Attrs["stroke"]; ok {
		b.Attrs = maps.Clone(b.Attrs)
		b.Attrs["stroke"] = strokeStyle(x)
	}
	return Value{kind: kindBorder, border: &b}
}

// IsUndefined is true for a nil constant.
func (v Value) IsUndefined() bool {
	return v.kind == kindConstant && v.constant == nil
}

// Kind returns the name of v's shape.
func (v Value) Kind() string {
	return kindNames[v.kind]
}

func (v Value) String() string {
	switch v.kind {
	case kindCallback:
		return "callback"
	case kindScaled:
		return fmt.Sprintf("scaled(%s)", v.scaled.Field)
	case kindGradient:
		return fmt.Sprintf("gradient(%s)", v.gradient.Kind)
	case kindBorder:
		return fmt.Sprintf("border(%d fields)", len(v.border.Attrs))
	}
	if v.constant == nil {
		return "undefined"
	}
	return fmt.Sprintf("%v", v.constant)
}

// Record returns v's key/value shape, if v has one. Constants holding a
// record, scaled values and composite values have a record shape.
// The record is a fresh copy.
func (v Value) Record() (Record, bool) {
	switch v.kind {
	case kindConstant:
		if rec, ok := v.constant.(Record); ok {
			return maps.Clone(rec), true
		}
	case kindScaled:
		rec := Record{"scale": v.scaled.Scale, "field": v.scaled.Field}
		if v.scaled.ChangeDomain {
			rec["changeDomain"] = true
		}
		return rec, true
	case kindGradient:
		return v.gradient.record(), true
	case kindBorder:
		rec := Record{}
		for k, x := range v.border.Attrs {
			if xv, ok := x.(Value); ok && xv.kind == kindGradient {
				x = xv.gradient.record()
			}
			rec[k] = x
		}
		if v.border.Scale != nil {
			rec["scale"] = v.border.Scale
		}
		if v.border.Field != "" {
			rec["field"] = v.border.Field
		}
		return rec, true
	}
	return nil, false
}

func (g *Gradient) record() Record {
	rec := maps.Clone(g.Attrs)
	if rec == nil {
		rec = Record{}
	}
	rec["gradient"] = string(g.Kind)
	if g.Scale != nil {
		rec["scale"] = g.Scale
	}
	if g.Field != "" {
		rec["field"] = g.Field
	}
	if g.Stops != nil {
		stops := make([]any, len(g.Stops))
		for i, s := range g.Stops {
			stop := Record{"offset": s.Offset, "color": s.Color}
			if op, ok := s.opacity(); ok {
				stop["opacity"] = op
			}
			stops[i] = stop
		}
		rec["stops"] = stops
	}
	return rec
}

// --- Matching --------------------------------------------------------------

// Match starts matching a value against its possible shapes:
//
//	var f mark.Callback
//	switch m := v.Match(); m {
//	case m.Callback(&f):
//	    …
//	case m.Constant(nil):
//	    …
//	}
func (v Value) Match() *VMatcher {
	return &VMatcher{v: v}
}

// VMatcher is returned by Value.Match. Each method matches one shape and, if
// given a non-nil pointer, extracts the shape's content.
type VMatcher struct {
	v Value
}

func (m *VMatcher) Constant(x *any) *VMatcher {
	if m.v.kind == kindConstant {
		if x != nil {
			*x = m.v.constant
		}
		return m
	}
	return nil
}

func (m *VMatcher) Callback(f *Callback) *VMatcher {
	if m.v.kind == kindCallback {
		if f != nil {
			*f = m.v.callback
		}
		return m
	}
	return nil
}

func (m *VMatcher) Scaled(s **Scaled) *VMatcher {
	if m.v.kind == kindScaled {
		if s != nil {
			*s = m.v.scaled
		}
		return m
	}
	return nil
}

func (m *VMatcher) Gradient(g **Gradient) *VMatcher {
	if m.v.kind == kindGradient {
		if g != nil {
			*g = m.v.gradient
		}
		return m
	}
	return nil
}

func (m *VMatcher) Border(b **Border) *VMatcher {
	if m.v.kind == kindBorder {
		if b != nil {
			*b = m.v.border
		}
		return m
	}
	return nil
}
