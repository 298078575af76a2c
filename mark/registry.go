package mark

import (
	"sort"
	"sync"
)

// ID is a handle to a mark within a Registry.
type ID uint64

// NoMark is the handle of no mark.
const NoMark ID = 0

// Registry hands out IDs to marks and resolves them. Referers are stored
// as IDs, thus marks referring to each other do not keep each other alive.
// Once released, a mark's ID does not resolve any more.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	last  ID
	marks map[ID]*Mark
}

// NewRegistry creates an empty mark registry.
func NewRegistry() *Registry {
	return &Registry{marks: make(map[ID]*Mark)}
}

func (r *Registry) register(m *Mark) ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last++
	r.marks[r.last] = m
	return r.last
}

// Lookup resolves a mark handle.
func (r *Registry) Lookup(id ID) (*Mark, bool) {
	if r == nil || id == NoMark {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.marks[id]
	return m, ok
}

// Find returns the first live mark (by ID) with a given name.
func (r *Registry) Find(name string) (*Mark, bool) {
	for _, m := range r.Marks() {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// Release removes a mark. Its handle does not resolve any more.
func (r *Registry) Release(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.marks, id)
}

// Marks lists the live marks, ordered by ID.
func (r *Registry) Marks() []*Mark {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]ID, 0, len(r.marks))
	for id := range r.marks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	marks := make([]*Mark, len(ids))
	for i, id := range ids {
		marks[i] = r.marks[id]
	}
	return marks
}

// Len returns the number of live marks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.marks)
}
