package model

// FunctionIDAttribute names a function explicitly. Without it, a
// function is identified by its first member task.
const FunctionIDAttribute = "FUNCTION_ID"

// Application is the directed acyclic multigraph of tasks and
// communications with dependency edges. Its weakly connected
// components are the functions of the application; each function
// carries its own attribute map.
type Application struct {
	*Graph[Task, *Dependency]

	// functionAttrs stores function attribute maps keyed by the id of
	// an anchor task of the component.
	functionAttrs map[string]*Attributes
}

// NewApplication constructs an empty application.
func NewApplication() *Application {
	return &Application{
		Graph:         NewGraph[Task, *Dependency](),
		functionAttrs: map[string]*Attributes{},
	}
}

// AddDependency adds a directed dependency edge from source to dest.
func (a *Application) AddDependency(d *Dependency, source, dest Task) {
	a.AddEdge(d, source, dest, Directed)
}

// Function is a weakly connected component of an application. It is a
// graph over the member tasks and their dependencies, carries an
// identifier and an attribute map.
type Function struct {
	id string
	*Graph[Task, *Dependency]
	attrs *Attributes
}

// ID returns the identifier of the function.
func (f *Function) ID() string { return f.id }

// GetAttribute returns the function attribute stored under name.
func (f *Function) GetAttribute(name string) interface{} {
	return f.attrs.Get(name)
}

// SetAttribute stores a function attribute.
func (f *Function) SetAttribute(name string, value interface{}) {
	f.attrs.Set(name, value)
}

// AttributeNames returns the function attribute names in insertion
// order.
func (f *Function) AttributeNames() []string { return f.attrs.Names() }

// Tasks returns the member tasks in application insertion order.
func (f *Function) Tasks() []Task { return f.Vertices() }

// Functions returns the functions of the application in order of
// their first member task.
func (a *Application) Functions() []*Function {
	comps := a.components()
	out := make([]*Function, 0, len(comps))
	for _, members := range comps {
		out = append(out, a.buildFunction(members))
	}
	return out
}

// Function returns the function containing the given task, or nil if
// the task is not part of the application.
func (a *Application) Function(t Task) *Function {
	if _, ok := a.VertexOf(t); !ok {
		return nil
	}
	for _, members := range a.components() {
		for _, m := range members {
			if m.ID() == t.ID() {
				return a.buildFunction(members)
			}
		}
	}
	return nil
}

// FunctionByID returns the function with the given identifier.
func (a *Application) FunctionByID(id string) (*Function, bool) {
	for _, f := range a.Functions() {
		if f.id == id {
			return f, true
		}
	}
	return nil, false
}

func (a *Application) buildFunction(members []Task) *Function {
	attrs := a.functionAttributes(members)
	f := &Function{
		id:    functionID(members, attrs),
		Graph: NewGraph[Task, *Dependency](),
		attrs: attrs,
	}
	in := make(map[string]struct{}, len(members))
	for _, t := range members {
		f.AddVertex(t)
		in[t.ID()] = struct{}{}
	}
	for _, d := range a.Edges() {
		src, dst, _ := a.Endpoints(d)
		if _, ok := in[src.ID()]; !ok {
			continue
		}
		if _, ok := in[dst.ID()]; !ok {
			continue
		}
		f.AddEdge(d, src, dst, a.KindOf(d))
	}
	return f
}

// functionAttributes returns the attribute map anchored at any member
// of the component, creating and anchoring a fresh one at the first
// member if the component has none yet.
func (a *Application) functionAttributes(members []Task) *Attributes {
	for _, t := range members {
		if attrs, ok := a.functionAttrs[t.ID()]; ok {
			return attrs
		}
	}
	attrs := NewAttributes()
	if len(members) > 0 {
		a.functionAttrs[members[0].ID()] = attrs
	}
	return attrs
}

func functionID(members []Task, attrs *Attributes) string {
	if id, ok := attrs.Get(FunctionIDAttribute).(string); ok && id != "" {
		return id
	}
	if len(members) > 0 {
		return members[0].ID()
	}
	return ""
}
