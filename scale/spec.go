package scale

import (
	"sort"
	"sync"
)

// VisualSpec is a declarative description of a scale-driven visual channel,
// as found in mark specs:
//
//     fill:
//       type: ordinal
//       domain: [A, B, C]
//       range: ['#1664FF', '#1AC6FF', '#FF8A00']
//       field: category
//
// Instead of a type, a spec may reference an existing scale, either
// directly or by the id of a scale in a Global registry:
//
//     fill: { scale: color, field: category }
type VisualSpec struct {
	Type         Type
	Domain       []any
	Range        []any
	Specified    map[string]any
	Clamp        bool
	Scale        any // a Scale or the id of a global scale
	Field        string
	ChangeDomain bool
}

// ParseVisualSpec checks a raw style record for a visual spec. ok is false
// if rec carries neither a recognized scale type nor a scale reference.
func ParseVisualSpec(rec map[string]any) (spec VisualSpec, ok bool) {
	if t, isStr := rec["type"].(string); isStr && IsValidType(Type(t)) {
		spec.Type = Type(t)
		ok = true
	}
	if s, exists := rec["scale"]; exists && s != nil {
		switch s.(type) {
		case Scale, string:
			spec.Scale = s
			ok = true
		}
	}
	if !ok {
		return
	}
	spec.Domain, _ = rec["domain"].([]any)
	spec.Range, _ = rec["range"].([]any)
	spec.Specified, _ = rec["specified"].(map[string]any)
	spec.Clamp, _ = rec["clamp"].(bool)
	spec.Field, _ = rec["field"].(string)
	spec.ChangeDomain, _ = rec["changeDomain"].(bool)
	return
}

// Options configures scale creation from visual specs.
type Options struct {
	Global   Global // registry of shared scales, may be nil
	SeriesID string // series-scoped scale ids take precedence over global ids
}

// FromSpec creates a scale from a visual spec, or looks up the scale
// referenced by it. It returns nil if no scale can be produced.
func FromSpec(spec VisualSpec, opts Options) Scale {
	switch s := spec.Scale.(type) {
	case Scale:
		return s
	case string:
		if opts.Global == nil {
			tracer().Debugf("no global scales to look up scale %q", s)
			return nil
		}
		if opts.SeriesID != "" {
			if sc, ok := opts.Global.Scale(opts.SeriesID + "/" + s); ok {
				return sc
			}
		}
		if sc, ok := opts.Global.Scale(s); ok {
			return sc
		}
		tracer().Debugf("global scale %q not found", s)
		return nil
	}
	switch spec.Type {
	case Ordinal:
		o := NewOrdinal(spec.Domain, spec.Range)
		keys := make([]string, 0, len(spec.Specified))
		for k := range spec.Specified {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			o.Specify(k, spec.Specified[k])
		}
		return o
	case Linear:
		return NewLinear(spec.Domain, spec.Range).Clamp(spec.Clamp)
	case Threshold:
		return NewThreshold(spec.Domain, spec.Range)
	case Identity:
		return IdentityScale{}
	}
	return nil
}

// --- Global scales ---------------------------------------------------------

// Global gives access to scales shared between marks.
type Global interface {
	Scale(id string) (Scale, bool)
}

// Registry is a Global implementation safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	scales map[string]Scale
}

// NewRegistry creates an empty scale registry.
func NewRegistry() *Registry {
	return &Registry{scales: make(map[string]Scale)}
}

// Register adds or replaces a scale under id.
func (r *Registry) Register(id string, s Scale) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scales[id] = s
}

// Scale looks up a scale by id.
func (r *Registry) Scale(id string) (Scale, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scales[id]
	return s, ok
}

var _ Global = &Registry{}
