package mark

import (
	"sort"
)

// Slot is the stored style of one (state, attribute) pair.
type Slot struct {
	Level       Level           // priority of the last effective write
	Style       Value           // how the attribute value is obtained
	Referer     ID              // mark to delegate resolution to, or NoMark
	PostProcess PostProcessFunc // optional transform of the resolved value
}

// StateTable maps interaction states to attribute slots. It always holds
// the normal state.
type StateTable struct {
	states map[string]map[string]*Slot
}

// NewStateTable creates a table holding an empty normal state.
func NewStateTable() *StateTable {
	return &StateTable{
		states: map[string]map[string]*Slot{StateNormal: {}},
	}
}

func (t *StateTable) state(state string, create bool) map[string]*Slot {
	slots, ok := t.states[state]
	if !ok && create {
		slots = make(map[string]*Slot)
		t.states[state] = slots
	}
	return slots
}

// Slot returns the slot stored for (state, attr), without fallback.
func (t *StateTable) Slot(state, attr string) (*Slot, bool) {
	s, ok := t.states[state][attr]
	return s, ok
}

// Lookup returns the slot for (state, attr), falling back to the normal
// state if state has no slot for attr.
func (t *StateTable) Lookup(state, attr string) (*Slot, bool) {
	if s, ok := t.Slot(state, attr); ok {
		return s, true
	}
	return t.Slot(StateNormal, attr)
}

// HasState is true if any write created state.
func (t *StateTable) HasState(state string) bool {
	_, ok := t.states[state]
	return ok
}

// States lists the table's states, normal first and the others sorted.
func (t *StateTable) States() []string {
	states := make([]string, 0, len(t.states))
	for s := range t.states {
		if s != StateNormal {
			states = append(states, s)
		}
	}
	sort.Strings(states)
	return append([]string{StateNormal}, states...)
}

// Attributes lists the attributes having a slot in state, sorted.
func (t *StateTable) Attributes(state string) []string {
	attrs := make([]string, 0, len(t.states[state]))
	for a := range t.states[state] {
		attrs = append(attrs, a)
	}
	sort.Strings(attrs)
	return attrs
}

// Write applies a style write at a priority level. It returns false if the
// write was ignored because of a lower level than the stored one.
//
// If state is not the normal state, each of the secondary attributes lacking
// a slot in state receives a copy of its normal slot. This happens for
// ignored writes as well.
func (t *StateTable) Write(attr string, style Value, state string, level Level, secondaries []string) bool {
	slots := t.state(state, true)
	applied := true
	if slot, ok := slots[attr]; !ok {
		slots[attr] = &Slot{Level: level, Style: style}
	} else if slot.Level <= level {
		slot.Style = merge(attr, slot.Style, style)
		slot.Level = level
	} else {
		tracer().Debugf("ignoring %s.%s at level %s, stored level is %s", state, attr, level, slot.Level)
		applied = false
	}
	if state == StateNormal {
		return applied
	}
	for _, sec := range secondaries {
		if _, ok := slots[sec]; ok {
			continue
		}
		if ns, ok := t.Slot(StateNormal, sec); ok {
			c := *ns
			slots[sec] = &c
			tracer().Debugf("extension channel %s.%s copied from normal", state, sec)
		}
	}
	return applied
}

// ensure returns the slot for (state, attr), creating an undefined slot at
// the default level if necessary.
func (t *StateTable) ensure(state, attr string) *Slot {
	slots := t.state(state, true)
	s, ok := slots[attr]
	if !ok {
		s = &Slot{Level: LevelDefault}
		slots[attr] = s
	}
	return s
}

// each calls f for every slot of the table.
func (t *StateTable) each(f func(state, attr string, s *Slot)) {
	for _, state := range t.States() {
		for _, attr := range t.Attributes(state) {
			f(state, attr, t.states[state][attr])
		}
	}
}
