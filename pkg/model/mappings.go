package model

// Mappings is the ordered set of candidate task-to-resource bindings
// of a specification.
type Mappings struct {
	list []*Mapping
	byID map[string]int
}

// NewMappings constructs an empty mapping set.
func NewMappings() *Mappings {
	return &Mappings{byID: map[string]int{}}
}

// Add appends a mapping. Adding a mapping whose identifier is already
// present is a no-op.
func (ms *Mappings) Add(m *Mapping) {
	if _, ok := ms.byID[m.ID()]; ok {
		return
	}
	ms.byID[m.ID()] = len(ms.list)
	ms.list = append(ms.list, m)
}

// Remove deletes the mapping with the identifier of m. It reports
// whether a mapping was removed.
func (ms *Mappings) Remove(m *Mapping) bool {
	i, ok := ms.byID[m.ID()]
	if !ok {
		return false
	}
	ms.list = append(ms.list[:i], ms.list[i+1:]...)
	ms.reindex()
	return true
}

// RemoveAll deletes all given mappings.
func (ms *Mappings) RemoveAll(remove []*Mapping) {
	for _, m := range remove {
		ms.Remove(m)
	}
}

// Mapping returns the mapping with the given identifier.
func (ms *Mappings) Mapping(id string) (*Mapping, bool) {
	i, ok := ms.byID[id]
	if !ok {
		return nil, false
	}
	return ms.list[i], true
}

// All returns the mappings in insertion order.
func (ms *Mappings) All() []*Mapping {
	out := make([]*Mapping, len(ms.list))
	copy(out, ms.list)
	return out
}

// Size returns the number of mappings.
func (ms *Mappings) Size() int { return len(ms.list) }

// Get returns the mappings of the given task, in insertion order.
func (ms *Mappings) Get(t Task) []*Mapping {
	var out []*Mapping
	for _, m := range ms.list {
		if m.Source().ID() == t.ID() {
			out = append(out, m)
		}
	}
	return out
}

// GetByTarget returns the mappings onto the given resource, in
// insertion order.
func (ms *Mappings) GetByTarget(r *Resource) []*Mapping {
	var out []*Mapping
	for _, m := range ms.list {
		if m.Target().ID() == r.ID() {
			out = append(out, m)
		}
	}
	return out
}

// GetPair returns the mappings binding the given task to the given
// resource.
func (ms *Mappings) GetPair(t Task, r *Resource) []*Mapping {
	var out []*Mapping
	for _, m := range ms.list {
		if m.Source().ID() == t.ID() && m.Target().ID() == r.ID() {
			out = append(out, m)
		}
	}
	return out
}

// Targets returns the distinct target resources of the given task, in
// mapping insertion order.
func (ms *Mappings) Targets(t Task) []*Resource {
	var out []*Resource
	seen := map[string]struct{}{}
	for _, m := range ms.Get(t) {
		if _, ok := seen[m.Target().ID()]; ok {
			continue
		}
		seen[m.Target().ID()] = struct{}{}
		out = append(out, m.Target())
	}
	return out
}

func (ms *Mappings) reindex() {
	ms.byID = make(map[string]int, len(ms.list))
	for i, m := range ms.list {
		ms.byID[m.ID()] = i
	}
}
