/*
Package mark resolves visual attributes of chart marks.

A mark is a drawable primitive (a bar, a point, a glyph set) owned by a
series or a component. Several independent writers set style for a mark:
the theme, the chart, the series and, finally, the user. Each write happens
at a priority level and for an interaction state ("normal", "hover",
"selected", …). Marks keep these writes in a state table, one slot per
(state, attribute) pair:

	normal                                    hover
	├── fill   [level 7] scaled(category)     ├── fill    [level 8] "#FF8A00"
	├── x      [level 0] 0                    └── stroke  [level 0] (copied from normal)
	└── stroke [level 0] "#000"

At render time, clients compile an accessor for an (attribute, state) pair
and call it once per datum:

	fill, err := m.ComputeAttribute("fill", mark.StateNormal)
	for _, d := range data {
	    paint(fill(d, nil))
	}

Resolution falls back to the normal state, follows referers to other marks,
invokes callbacks, looks up scales and resolves composite gradient and border
styles. Accessors are not invalidated when the table changes; clients
recompile after writes.

Marks are not safe for concurrent mutation. The mark Registry, which
resolves referer handles, may be shared between goroutines.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package mark

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vstyle.mark'.
func tracer() tracing.Trace {
	return tracing.Select("vstyle.mark")
}

// StateNormal is the baseline interaction state. Lookups for other states
// fall back to it.
const StateNormal = "normal"

// Datum is a single data record bound to a mark.
type Datum = map[string]any

// Options are per-call options handed through to callbacks.
type Options = map[string]any

// Record is a key/value style record, e.g. the sub-fields of a border.
type Record = map[string]any

// AttributeContext is opaque host data passed unchanged to every callback,
// e.g. identifying the chart a mark belongs to.
type AttributeContext = any

// DataView is the data currently bound to a mark. It is passed unchanged
// to callbacks.
type DataView = any

// Callback computes an attribute value from a datum.
type Callback func(d Datum, ctx AttributeContext, opt Options, view DataView) any

// PostProcessFunc transforms a resolved attribute value.
type PostProcessFunc func(v any, d Datum, ctx AttributeContext, opt Options, view DataView) any

// Accessor is a compiled attribute resolver.
type Accessor func(d Datum, opt Options) any

// undefined is the accessor for attributes without a value.
func undefined(Datum, Options) any {
	return nil
}
