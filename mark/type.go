package mark

import (
	"slices"
	"sort"
	"sync"
)

// ExtensionFunc post-processes the resolved value of an attribute for a
// mark type. base is the value resolved by the ordinary pipeline.
type ExtensionFunc func(key string, d Datum, state string, opt Options, base any) any

// Type describes a kind of mark. It carries the static per-type
// configuration of extension channels. Types are immutable after creation.
type Type struct {
	name     string
	channels map[string][]string
	compute  map[string]ExtensionFunc
}

// TypeOption configures a Type on creation.
type TypeOption func(*Type)

// WithExtensionChannel registers secondary attributes which have to
// accompany primary whenever primary is set for a non-normal state.
func WithExtensionChannel(primary string, secondaries ...string) TypeOption {
	return func(t *Type) {
		t.channels[primary] = append(t.channels[primary], secondaries...)
	}
}

// WithExtensionCompute registers a transform applied to every resolved
// value of attr, for all states.
func WithExtensionCompute(attr string, f ExtensionFunc) TypeOption {
	return func(t *Type) {
		if f != nil {
			t.compute[attr] = f
		}
	}
}

// NewType creates a mark type.
func NewType(name string, opts ...TypeOption) *Type {
	t := &Type{
		name:     name,
		channels: make(map[string][]string),
		compute:  make(map[string]ExtensionFunc),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the type's name. A nil type is named "mark".
func (t *Type) Name() string {
	if t == nil {
		return "mark"
	}
	return t.name
}

// ExtensionChannels returns the secondary attributes of primary.
func (t *Type) ExtensionChannels(primary string) []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.channels[primary])
}

// ExtensionCompute returns the transform registered for attr, if any.
func (t *Type) ExtensionCompute(attr string) (ExtensionFunc, bool) {
	if t == nil {
		return nil, false
	}
	f, ok := t.compute[attr]
	return f, ok
}

// Primaries lists the attributes having extension channels, sorted.
func (t *Type) Primaries() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.channels))
	for k := range t.channels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- Built-in types --------------------------------------------------------

var (
	typesMu sync.RWMutex
	types   = map[string]*Type{}
)

// Built-in mark types.
var (
	TypeRect   = RegisterType(NewType("rect"))
	TypeLine   = RegisterType(NewType("line"))
	TypeText   = RegisterType(NewType("text"))
	TypeSymbol = RegisterType(NewType("symbol",
		WithExtensionChannel("size", "symbolType"),
	))
	TypeArc = RegisterType(NewType("arc",
		WithExtensionChannel("centerOffset", "x", "y"),
	))
	TypeArea = RegisterType(NewType("area",
		WithExtensionChannel("fill", "fillOpacity"),
	))
)

// RegisterType makes a type available to LookupType, replacing a type of
// the same name.
func RegisterType(t *Type) *Type {
	typesMu.Lock()
	defer typesMu.Unlock()
	types[t.Name()] = t
	return t
}

// LookupType finds a registered type by name.
func LookupType(name string) (*Type, bool) {
	typesMu.RLock()
	defer typesMu.RUnlock()
	t, ok := types[name]
	return t, ok
}
