package model

// Specification aggregates an application, an architecture, the
// candidate mappings and the communication routings, together with its
// own attribute map.
type Specification struct {
	application  *Application
	architecture *Architecture
	mappings     *Mappings
	routings     *Routings
	attrs        *Attributes
}

// NewSpecification constructs a specification without routings.
func NewSpecification(application *Application, architecture *Architecture, mappings *Mappings) *Specification {
	return NewSpecificationRoutings(application, architecture, mappings, NewRoutings())
}

// NewSpecificationRoutings constructs a specification with routings.
func NewSpecificationRoutings(application *Application, architecture *Architecture, mappings *Mappings, routings *Routings) *Specification {
	if routings == nil {
		routings = NewRoutings()
	}
	return &Specification{
		application:  application,
		architecture: architecture,
		mappings:     mappings,
		routings:     routings,
		attrs:        NewAttributes(),
	}
}

// Application returns the application graph.
func (s *Specification) Application() *Application { return s.application }

// Architecture returns the architecture graph.
func (s *Specification) Architecture() *Architecture { return s.architecture }

// Mappings returns the mapping set.
func (s *Specification) Mappings() *Mappings { return s.mappings }

// Routings returns the routing map.
func (s *Specification) Routings() *Routings { return s.routings }

// GetAttribute returns the specification attribute stored under name.
func (s *Specification) GetAttribute(name string) interface{} { return s.attrs.Get(name) }

// SetAttribute stores a specification attribute.
func (s *Specification) SetAttribute(name string, value interface{}) { s.attrs.Set(name, value) }

// AttributeNames returns the specification attribute names in
// insertion order.
func (s *Specification) AttributeNames() []string { return s.attrs.Names() }

// FilterProcesses returns only the process tasks of the given tasks.
func FilterProcesses(tasks []Task) []Task {
	var out []Task
	for _, t := range tasks {
		if IsProcess(t) {
			out = append(out, t)
		}
	}
	return out
}

// FilterCommunications returns only the communication tasks of the
// given tasks.
func FilterCommunications(tasks []Task) []Task {
	var out []Task
	for _, t := range tasks {
		if IsCommunication(t) {
			out = append(out, t)
		}
	}
	return out
}
