package mark

import (
	"sort"

	"github.com/npillmayer/vstyle/markspec"
	"github.com/npillmayer/vstyle/maybe"
	"github.com/npillmayer/vstyle/scale"
)

// Option configures a new mark.
type Option struct {
	Model            Model            // owning series or component, may be nil
	AttributeContext AttributeContext // passed to every callback
	DataView         DataView         // data bound to the mark
	Registry         *Registry        // registry for referer handles; a private one if nil
	GlobalScale      scale.Global     // shared scales referenced by id in styles
	SeriesID         string           // scope for series-specific global scales
}

// StateInfo describes a state declared by a mark spec. The engine does not
// compute state membership; hosts use StateInfos to do so.
type StateInfo struct {
	Value  string           // state name
	Level  maybe.Maybe[int] // priority among simultaneously active states
	Filter any              // membership filter: a record or a func(Datum, Options) bool
}

// Mark is a drawable primitive with a state style table.
type Mark struct {
	id          ID
	name        string
	typ         *Type
	opt         Option
	registry    *Registry
	table       *StateTable
	userID      string
	visible     bool
	zIndex      int
	interactive bool
	stateInfos  []StateInfo
}

// New creates a mark of type typ and registers it. The normal state is
// seeded with default attributes at the default level.
func New(name string, typ *Type, opt Option) *Mark {
	m := &Mark{
		name:        name,
		typ:         typ,
		opt:         opt,
		registry:    opt.Registry,
		table:       NewStateTable(),
		visible:     true,
		interactive: true,
	}
	if m.registry == nil {
		m.registry = NewRegistry()
	}
	m.id = m.registry.register(m)
	m.SetStyle(defaultStyle(), StateNormal, LevelDefault)
	return m
}

// defaultStyle holds the attributes every mark has.
func defaultStyle() map[string]any {
	return map[string]any{"visible": true, "x": 0, "y": 0}
}

// ID returns the mark's handle in its registry.
func (m *Mark) ID() ID { return m.id }

// Name returns the mark's name.
func (m *Mark) Name() string { return m.name }

// Type returns the mark's type.
func (m *Mark) Type() *Type { return m.typ }

// Registry returns the registry the mark is registered with.
func (m *Mark) Registry() *Registry { return m.registry }

// Table returns the mark's state style table.
func (m *Mark) Table() *StateTable { return m.table }

// UserID returns the id given to the mark by a user spec.
func (m *Mark) UserID() string { return m.userID }

func (m *Mark) Visible() bool         { return m.visible }
func (m *Mark) SetVisible(v bool)     { m.visible = v }
func (m *Mark) ZIndex() int           { return m.zIndex }
func (m *Mark) SetZIndex(z int)       { m.zIndex = z }
func (m *Mark) Interactive() bool     { return m.interactive }
func (m *Mark) SetInteractive(i bool) { m.interactive = i }

// DataView returns the data bound to the mark.
func (m *Mark) DataView() DataView { return m.opt.DataView }

// SetDataView binds data to the mark. Compiled accessors observe the new
// data view.
func (m *Mark) SetDataView(view DataView) { m.opt.DataView = view }

// StateInfos returns the states declared by the mark's spec.
func (m *Mark) StateInfos() []StateInfo { return m.stateInfos }

// Release unregisters the mark. Referers to it resolve to undefined
// afterwards.
func (m *Mark) Release() {
	m.registry.Release(m.id)
}

// --- Writing styles --------------------------------------------------------

// SetStyle writes several attributes for a state at a priority level.
// Nil entries are skipped. Styles written at user levels pass the user
// attribute filter.
func (m *Mark) SetStyle(style map[string]any, state string, level Level) {
	if style == nil {
		return
	}
	m.table.state(state, true)
	attrs := make([]string, 0, len(style))
	for attr, x := range style {
		if x != nil {
			attrs = append(attrs, attr)
		}
	}
	sort.Strings(attrs)
	for _, attr := range attrs {
		v := m.filterAttribute(attr, style[attr], level)
		m.SetAttribute(attr, v, state, level)
	}
}

// SetAttribute writes the style of one attribute for a state at a priority
// level. Raw styles are converted and classified first.
func (m *Mark) SetAttribute(attr string, style any, state string, level Level) {
	v := Classify(attr, m.StyleConvert(attr, style))
	m.table.Write(attr, v, state, level, m.typ.ExtensionChannels(attr))
}

// Style returns the stored style of attr in state, without fallback.
func (m *Mark) Style(attr, state string) (Value, bool) {
	s, ok := m.table.Slot(state, attr)
	if !ok {
		return Value{}, false
	}
	return s.Style, true
}

// SetReferer delegates resolution to another mark. With attr and state
// given, the slot for (state, attr) delegates, being created if necessary.
// Otherwise every existing slot delegates.
//
// The target must be registered with the mark's registry.
func (m *Mark) SetReferer(target *Mark, attr, state string) {
	if target == nil {
		return
	}
	if target.registry != m.registry {
		tracer().Errorf("mark %s cannot refer to mark %s of another registry", m.name, target.name)
		return
	}
	if attr != "" && state != "" {
		m.table.ensure(state, attr).Referer = target.id
		return
	}
	m.table.each(func(_, _ string, s *Slot) {
		s.Referer = target.id
	})
}

// SetPostProcess sets a transform for the resolved values of attr in
// state. It does nothing if there is no slot for (state, attr).
func (m *Mark) SetPostProcess(attr string, f PostProcessFunc, state string) {
	if s, ok := m.table.Slot(state, attr); ok {
		s.PostProcess = f
	}
}

// --- Specs -----------------------------------------------------------------

// InitStyleWithSpec applies a user mark spec. Styles are written at the
// user mark level unless the spec names another level.
func (m *Mark) InitStyleWithSpec(spec *markspec.Spec) {
	if spec == nil {
		return
	}
	if spec.ID != "" {
		m.userID = spec.ID
	}
	if spec.Interactive != nil {
		m.interactive = *spec.Interactive
	}
	if spec.ZIndex != nil {
		m.zIndex = *spec.ZIndex
	}
	if spec.Visible != nil {
		m.visible = *spec.Visible
	}
	level := LevelUserMark
	if l, ok := ParseLevel(spec.Level); ok && spec.Level != "" {
		level = l
	}
	if spec.Style != nil {
		m.SetStyle(spec.Style, StateNormal, level)
	}
	states := make([]string, 0, len(spec.State))
	for s := range spec.State {
		states = append(states, s)
	}
	sort.Strings(states)
	for _, state := range states {
		style, info := markspec.StateEntry(spec.State[state])
		if info != nil {
			si := StateInfo{Value: state, Level: maybe.Nothing[int]()}
			if l, ok := scale.ToFloat(info["level"]); ok {
				si.Level = maybe.Just(int(l))
			}
			si.Filter = info["filter"]
			m.stateInfos = append(m.stateInfos, si)
		}
		m.SetStyle(style, state, level)
	}
}
