package mark

import (
	"sort"
)

// ComputeAttribute compiles an accessor for attr in state.
//
// The slot for (state, attr) is used, or the normal slot if state has none.
// A slot delegating to a referer is compiled by the referer, for the same
// attribute and state. Otherwise the slot's style is compiled, and the
// slot's post-process and the type's extension compute are applied in this
// order.
//
// Missing slots, scales and referers make the accessor return nil. An error
// is returned for malformed composite styles only.
func (m *Mark) ComputeAttribute(attr, state string) (Accessor, error) {
	return m.compute(attr, state, nil)
}

func (m *Mark) compute(attr, state string, visited map[ID]bool) (Accessor, error) {
	slot, ok := m.table.Lookup(state, attr)
	if !ok {
		return undefined, nil
	}
	if slot.Referer != NoMark {
		if visited == nil {
			visited = make(map[ID]bool)
		}
		visited[m.id] = true
		if visited[slot.Referer] {
			tracer().Errorf("referer cycle at mark %s for %s.%s", m.name, state, attr)
			return undefined, nil
		}
		target, ok := m.registry.Lookup(slot.Referer)
		if !ok {
			tracer().Debugf("referer of %s for %s.%s has been released", m.name, state, attr)
			return undefined, nil
		}
		return target.compute(attr, state, visited)
	}
	base, err := m.computeStyle(attr, slot.Style)
	if err != nil {
		return nil, err
	}
	post := slot.PostProcess
	exCompute, hasExCompute := m.typ.ExtensionCompute(attr)
	switch {
	case post != nil && hasExCompute:
		return func(d Datum, opt Options) any {
			v := post(base(d, opt), d, m.opt.AttributeContext, opt, m.DataView())
			return exCompute(attr, d, state, opt, v)
		}, nil
	case post != nil:
		return func(d Datum, opt Options) any {
			return post(base(d, opt), d, m.opt.AttributeContext, opt, m.DataView())
		}, nil
	case hasExCompute:
		return func(d Datum, opt Options) any {
			return exCompute(attr, d, state, opt, base(d, opt))
		}, nil
	}
	return base, nil
}

func (m *Mark) computeStyle(attr string, v Value) (Accessor, error) {
	var c any
	var cb Callback
	var s *Scaled
	var g *Gradient
	var b *Border
	switch mt := v.Match(); mt {
	case mt.Callback(&cb):
		return func(d Datum, opt Options) any {
			return cb(d, m.opt.AttributeContext, opt, m.DataView())
		}, nil
	case mt.Gradient(&g):
		return m.computeGradient(g)
	case mt.Border(&b):
		if IsBorderAttribute(attr) {
			return m.computeBorder(b)
		}
		rec, _ := v.Record()
		return func(Datum, Options) any { return rec }, nil
	case mt.Scaled(&s):
		return func(d Datum, _ Options) any {
			if s.Scale == nil {
				return nil
			}
			return s.Scale.Scale(d[s.Field])
		}, nil
	case mt.Constant(&c):
	}
	return func(Datum, Options) any { return c }, nil
}

// GetAttribute resolves attr for a single datum.
func (m *Mark) GetAttribute(attr string, d Datum, state string, opt Options) (any, error) {
	f, err := m.ComputeAttribute(attr, state)
	if err != nil {
		return nil, err
	}
	return f(d, opt), nil
}

// --- Encoders --------------------------------------------------------------

// Encoder holds compiled accessors for all attributes of a mark in a state.
type Encoder map[string]Accessor

// Encode compiles every attribute visible in state, i.e., the attributes of
// state and of the normal state.
func (m *Mark) Encode(state string) (Encoder, error) {
	enc := make(Encoder)
	attrs := m.table.Attributes(StateNormal)
	if state != StateNormal {
		attrs = append(attrs, m.table.Attributes(state)...)
	}
	for _, attr := range attrs {
		if _, done := enc[attr]; done {
			continue
		}
		f, err := m.ComputeAttribute(attr, state)
		if err != nil {
			return nil, err
		}
		enc[attr] = f
	}
	return enc, nil
}

// Attributes lists the encoder's attributes, sorted.
func (enc Encoder) Attributes() []string {
	attrs := make([]string, 0, len(enc))
	for a := range enc {
		attrs = append(attrs, a)
	}
	sort.Strings(attrs)
	return attrs
}

// Apply resolves all attributes for a datum.
func (enc Encoder) Apply(d Datum, opt Options) map[string]any {
	out := make(map[string]any, len(enc))
	for attr, f := range enc {
		out[attr] = f(d, opt)
	}
	return out
}
