/*
Package scale provides data-to-visual mappings for style resolution.

A scale maps a value of a data field (a category, a measure) to a visual
value (a color, a size, a position). The style engine treats scales as
external collaborators: it only needs Scale(), Range() and SetRange(),
and a type tag recognized by IsValidType. This package defines that
boundary contract, together with a small set of concrete scales and a
registry for scales shared between marks (e.g., a chart-global color scale).

Scales are deliberately not thread-safe. Mutating a shared scale's domain or
range is the host's responsibility; every accessor referencing the scale will
observe the change immediately, as scale output is never cached.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scale

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vstyle.scale'.
func tracer() tracing.Trace {
	return tracing.Select("vstyle.scale")
}

// Type is a scale type discriminator.
type Type string

// Scale types we know how to create.
const (
	Ordinal   Type = "ordinal"
	Linear    Type = "linear"
	Threshold Type = "threshold"
	Identity  Type = "identity"
)

// IsValidType is a predicate for scale types recognized by this package.
func IsValidType(t Type) bool {
	switch t {
	case Ordinal, Linear, Threshold, Identity:
		return true
	}
	return false
}

// Scale maps domain values to range values.
type Scale interface {
	Type() Type
	Scale(v any) any  // maps a domain value, returns nil if unmappable
	Domain() []any    // the input domain
	Range() []any     // the output range
	SetRange(r []any) // replaces the output range
}

// --- Ordinal ---------------------------------------------------------------

// OrdinalScale maps discrete domain values to range values by position.
// Range values are re-used cyclically if the domain is longer than the range.
// Values not contained in the domain map to nil, unless they are
// listed as specified values.
type OrdinalScale struct {
	domain    []any
	rng       []any
	specified map[string]any
}

// NewOrdinal creates an ordinal scale.
func NewOrdinal(domain, rng []any) *OrdinalScale {
	return &OrdinalScale{domain: domain, rng: rng}
}

// Specify pins the output for a domain value, overriding the positional mapping.
func (s *OrdinalScale) Specify(v any, out any) *OrdinalScale {
	if s.specified == nil {
		s.specified = make(map[string]any)
	}
	s.specified[key(v)] = out
	return s
}

func (s *OrdinalScale) Type() Type { return Ordinal }

func (s *OrdinalScale) Scale(v any) any {
	if out, ok := s.specified[key(v)]; ok {
		return out
	}
	if len(s.rng) == 0 || v == nil {
		return nil
	}
	k := key(v)
	for i, d := range s.domain {
		if key(d) == k {
			return s.rng[i%len(s.rng)]
		}
	}
	return nil
}

func (s *OrdinalScale) Domain() []any { return s.domain }

// SetDomain replaces the input domain.
func (s *OrdinalScale) SetDomain(d []any) { s.domain = d }

func (s *OrdinalScale) Range() []any { return s.rng }

func (s *OrdinalScale) SetRange(r []any) { s.rng = r }

// key normalizes domain values for comparison. Data read from JSON or YAML
// documents will carry numbers of varying Go types.
func key(v any) string {
	if f, ok := ToFloat(v); ok {
		return fmt.Sprintf("#%g", f)
	}
	return fmt.Sprint(v)
}

// --- Identity --------------------------------------------------------------

// IdentityScale returns its input.
type IdentityScale struct{}

func (IdentityScale) Type() Type       { return Identity }
func (IdentityScale) Scale(v any) any  { return v }
func (IdentityScale) Domain() []any    { return nil }
func (IdentityScale) Range() []any     { return nil }
func (IdentityScale) SetRange(r []any) {}

var _ Scale = &OrdinalScale{}
var _ Scale = IdentityScale{}
