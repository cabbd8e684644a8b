package model

// Attributes is an ordered map from attribute names to values. Values
// are strings, ints, float64s, bools, byte slices, parameter values,
// model elements, or homogeneous collections of these.
type Attributes struct {
	names  []string
	values map[string]interface{}
}

// NewAttributes constructs an empty attribute map.
func NewAttributes() *Attributes {
	return &Attributes{values: map[string]interface{}{}}
}

// Set stores a value under the given name. The insertion order of
// first-time names is preserved.
func (a *Attributes) Set(name string, value interface{}) {
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = value
}

// Get returns the value stored under the given name, or nil.
func (a *Attributes) Get(name string) interface{} {
	return a.values[name]
}

// Has reports whether a value is stored under the given name.
func (a *Attributes) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Delete removes the value stored under the given name.
func (a *Attributes) Delete(name string) {
	if _, ok := a.values[name]; !ok {
		return
	}
	delete(a.values, name)
	for i, n := range a.names {
		if n == name {
			a.names = append(a.names[:i], a.names[i+1:]...)
			break
		}
	}
}

// Names returns the attribute names in insertion order.
func (a *Attributes) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.names)
}

// SetAttributes copies all entries of attributes into the target.
func SetAttributes(target interface{ SetAttribute(string, interface{}) }, attributes *Attributes) {
	if attributes == nil {
		return
	}
	for _, name := range attributes.Names() {
		target.SetAttribute(name, attributes.Get(name))
	}
}
