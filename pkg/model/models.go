package model

import "github.com/pkg/errors"

// DirectedLink is a link viewed in one direction, with explicit
// source and destination resources.
type DirectedLink struct {
	link   *Link
	source *Resource
	dest   *Resource
}

// Link returns the wrapped link.
func (d DirectedLink) Link() *Link { return d.link }

// Source returns the source resource.
func (d DirectedLink) Source() *Resource { return d.source }

// Dest returns the destination resource.
func (d DirectedLink) Dest() *Resource { return d.dest }

// GetOutLinks returns the directed links leaving the given resource.
func GetOutLinks(architecture *Architecture, r *Resource) []DirectedLink {
	var out []DirectedLink
	for _, l := range architecture.OutEdges(r) {
		opp, _ := architecture.Opposite(r, l)
		out = append(out, DirectedLink{link: l, source: r, dest: opp})
	}
	return out
}

// GetInLinks returns the directed links entering the given resource.
func GetInLinks(architecture *Architecture, r *Resource) []DirectedLink {
	var in []DirectedLink
	for _, l := range architecture.InEdges(r) {
		opp, _ := architecture.Opposite(r, l)
		in = append(in, DirectedLink{link: l, source: opp, dest: r})
	}
	return in
}

// GetLinks returns the directed-link view of the whole architecture.
// Undirected links appear once per direction, directed links once.
func GetLinks(architecture *Architecture) []DirectedLink {
	var all []DirectedLink
	for _, r := range architecture.Vertices() {
		all = append(all, GetOutLinks(architecture, r)...)
	}
	return all
}

// GetLinksOf returns the directed-link view of a single link.
func GetLinksOf(architecture *Architecture, l *Link) []DirectedLink {
	src, dst, ok := architecture.Endpoints(l)
	if !ok {
		return nil
	}
	if architecture.KindOf(l) == Undirected {
		return []DirectedLink{
			{link: l, source: src, dest: dst},
			{link: l, source: dst, dest: src},
		}
	}
	return []DirectedLink{{link: l, source: src, dest: dst}}
}

// ElementsMap returns all elements of a specification keyed by their
// identifiers.
func ElementsMap(s *Specification) map[string]Element {
	elements := map[string]Element{}
	for _, r := range s.Architecture().Vertices() {
		elements[r.ID()] = r
	}
	for _, l := range s.Architecture().Edges() {
		elements[l.ID()] = l
	}
	for _, t := range s.Application().Vertices() {
		elements[t.ID()] = t
	}
	for _, d := range s.Application().Edges() {
		elements[d.ID()] = d
	}
	for _, m := range s.Mappings().All() {
		elements[m.ID()] = m
	}
	return elements
}

// Elements returns all elements of a specification in a stable order:
// architecture vertices, architecture edges, application vertices,
// application edges, mappings.
func Elements(s *Specification) []Element {
	var elements []Element
	for _, r := range s.Architecture().Vertices() {
		elements = append(elements, r)
	}
	for _, l := range s.Architecture().Edges() {
		elements = append(elements, l)
	}
	for _, t := range s.Application().Vertices() {
		elements = append(elements, t)
	}
	for _, d := range s.Application().Edges() {
		elements = append(elements, d)
	}
	for _, m := range s.Mappings().All() {
		elements = append(elements, m)
	}
	return elements
}

// FilterType returns only those elements whose type tag equals one of
// the given types.
func FilterType[E Element](elements []E, types ...string) []E {
	var out []E
	for _, e := range elements {
		for _, t := range types {
			if e.Type() == t {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// CopySpecification produces an isomorphic specification in which
// every element is a freshly constructed instance deriving from its
// original.
func CopySpecification(s *Specification) (*Specification, error) {
	sArchitecture := s.Architecture()
	sApplication := s.Application()
	sMappings := s.Mappings()
	sRoutings := s.Routings()

	iArchitecture := NewArchitecture()
	iApplication := NewApplication()
	iMappings := NewMappings()
	iRoutings := NewRoutings()

	for _, r := range sArchitecture.Vertices() {
		c, err := Copy(r)
		if err != nil {
			return nil, err
		}
		iArchitecture.AddVertex(c.(*Resource))
	}
	for _, l := range sArchitecture.Edges() {
		src, dst, _ := sArchitecture.Endpoints(l)
		iSrc, _ := iArchitecture.Vertex(src.ID())
		iDst, _ := iArchitecture.Vertex(dst.ID())
		c, err := Copy(l)
		if err != nil {
			return nil, err
		}
		iArchitecture.AddEdge(c.(*Link), iSrc, iDst, sArchitecture.KindOf(l))
	}

	for _, t := range sApplication.Vertices() {
		c, err := Copy(t)
		if err != nil {
			return nil, err
		}
		iApplication.AddVertex(c.(Task))
	}
	for _, d := range sApplication.Edges() {
		src, dst, _ := sApplication.Endpoints(d)
		iSrc, _ := iApplication.Vertex(src.ID())
		iDst, _ := iApplication.Vertex(dst.ID())
		c, err := Copy(d)
		if err != nil {
			return nil, err
		}
		iApplication.AddEdge(c.(*Dependency), iSrc, iDst, sApplication.KindOf(d))
	}

	for _, function := range iApplication.Functions() {
		anchor := function.Tasks()[0]
		sAnchor, _ := sApplication.Vertex(anchor.ID())
		sFunction := sApplication.Function(sAnchor)
		for _, name := range sFunction.AttributeNames() {
			function.SetAttribute(name, sFunction.GetAttribute(name))
		}
	}

	for _, m := range sMappings.All() {
		iSrc, ok := iApplication.Vertex(m.Source().ID())
		if !ok {
			return nil, errors.Errorf("mapping %q references unknown task %q", m.ID(), m.Source().ID())
		}
		iTgt, ok := iArchitecture.Vertex(m.Target().ID())
		if !ok {
			return nil, errors.Errorf("mapping %q references unknown resource %q", m.ID(), m.Target().ID())
		}
		iMappings.Add(CopyMapping(m, iSrc, iTgt))
	}

	for _, c := range FilterCommunications(sApplication.Vertices()) {
		sRouting := sRoutings.Get(c)
		iRouting := NewArchitecture()

		for _, r := range sRouting.Vertices() {
			iR, ok := iArchitecture.Vertex(r.ID())
			if !ok {
				continue
			}
			cp, err := Copy(iR)
			if err != nil {
				return nil, err
			}
			iRouting.AddVertex(cp.(*Resource))
		}
		for _, l := range sRouting.Edges() {
			src, dst, _ := sRouting.Endpoints(l)
			iSrc, okSrc := iRouting.Vertex(src.ID())
			iDst, okDst := iRouting.Vertex(dst.ID())
			if !okSrc || !okDst {
				continue
			}
			cp, err := Copy(l)
			if err != nil {
				return nil, err
			}
			iRouting.AddEdge(cp.(*Link), iSrc, iDst, sRouting.KindOf(l))
		}

		iC, _ := iApplication.Vertex(c.ID())
		iRoutings.Set(iC, iRouting)
	}

	out := NewSpecificationRoutings(iApplication, iArchitecture, iMappings, iRoutings)
	for _, name := range s.AttributeNames() {
		out.SetAttribute(name, s.GetAttribute(name))
	}
	return out, nil
}

// CloneSpecification rebuilds the structure of a specification while
// reusing every element instance.
func CloneSpecification(s *Specification) *Specification {
	sArchitecture := s.Architecture()
	sApplication := s.Application()

	iArchitecture := NewArchitecture()
	iApplication := NewApplication()
	iMappings := NewMappings()
	iRoutings := NewRoutings()

	for _, r := range sArchitecture.Vertices() {
		iArchitecture.AddVertex(r)
	}
	for _, l := range sArchitecture.Edges() {
		src, dst, _ := sArchitecture.Endpoints(l)
		iArchitecture.AddEdge(l, src, dst, sArchitecture.KindOf(l))
	}

	for _, t := range sApplication.Vertices() {
		iApplication.AddVertex(t)
	}
	for _, d := range sApplication.Edges() {
		src, dst, _ := sApplication.Endpoints(d)
		iApplication.AddEdge(d, src, dst, sApplication.KindOf(d))
	}

	for _, function := range iApplication.Functions() {
		anchor := function.Tasks()[0]
		sFunction := sApplication.Function(anchor)
		for _, name := range sFunction.AttributeNames() {
			function.SetAttribute(name, sFunction.GetAttribute(name))
		}
	}

	for _, m := range s.Mappings().All() {
		iMappings.Add(m)
	}

	for _, c := range FilterCommunications(sApplication.Vertices()) {
		iRoutings.Set(c, s.Routings().Get(c))
	}

	clone := NewSpecificationRoutings(iApplication, iArchitecture, iMappings, iRoutings)
	for _, name := range s.AttributeNames() {
		clone.SetAttribute(name, s.GetAttribute(name))
	}
	return clone
}

// FilterByResources restricts the specification to the given
// resources, in place. Mappings onto removed resources are deleted;
// process tasks left without mappings are deleted. All communication
// tasks are deleted: routings cannot be meaningfully preserved across
// a resource filter.
func FilterByResources(s *Specification, resources []*Resource) {
	keep := make(map[string]struct{}, len(resources))
	for _, r := range resources {
		keep[r.ID()] = struct{}{}
	}

	var deleteResources []*Resource
	for _, r := range s.Architecture().Vertices() {
		if _, ok := keep[r.ID()]; !ok {
			deleteResources = append(deleteResources, r)
		}
	}

	var deleteMappings []*Mapping
	var deleteTasks []Task

	for _, task := range s.Application().Vertices() {
		if IsCommunication(task) {
			routing := s.Routings().Get(task)
			var deleteRouting []*Resource
			for _, r := range routing.Vertices() {
				if _, ok := keep[r.ID()]; !ok {
					deleteRouting = append(deleteRouting, r)
				}
			}
			routing.RemoveVertices(deleteRouting)
			deleteTasks = append(deleteTasks, task)
		} else {
			keepTask := false
			for _, mapping := range s.Mappings().Get(task) {
				if _, ok := keep[mapping.Target().ID()]; ok {
					keepTask = true
				} else {
					deleteMappings = append(deleteMappings, mapping)
				}
			}
			if !keepTask {
				deleteTasks = append(deleteTasks, task)
			}
		}
	}

	s.Mappings().RemoveAll(deleteMappings)
	s.Application().RemoveVertices(deleteTasks)
	s.Architecture().RemoveVertices(deleteResources)
}

// Filter restricts the specification to the tasks of the given
// functions, in place. Mappings and routings of removed tasks are
// deleted, and resources neither targeted by a surviving mapping nor
// appearing in a surviving routing are removed from the architecture
// and from all routings.
func Filter(s *Specification, functions []*Function) {
	keep := map[string]struct{}{}
	for _, function := range functions {
		for _, task := range function.Tasks() {
			keep[task.ID()] = struct{}{}
		}
	}

	var removeTasks []Task
	var removeMappings []*Mapping

	for _, task := range s.Application().Vertices() {
		if _, ok := keep[task.ID()]; !ok {
			removeTasks = append(removeTasks, task)
		}
	}
	for _, mapping := range s.Mappings().All() {
		if _, ok := keep[mapping.Source().ID()]; !ok {
			removeMappings = append(removeMappings, mapping)
		}
	}

	for _, task := range removeTasks {
		if IsCommunication(task) {
			s.Routings().Remove(task)
		}
		s.Application().RemoveVertex(task)
	}
	s.Mappings().RemoveAll(removeMappings)

	keepResources := map[string]struct{}{}
	for _, mapping := range s.Mappings().All() {
		keepResources[mapping.Target().ID()] = struct{}{}
	}
	for _, routing := range s.Routings().All() {
		for _, r := range routing.Vertices() {
			keepResources[r.ID()] = struct{}{}
		}
	}

	var removeResources []*Resource
	for _, r := range s.Architecture().Vertices() {
		if _, ok := keepResources[r.ID()]; !ok {
			removeResources = append(removeResources, r)
		}
	}
	s.Architecture().RemoveVertices(removeResources)

	for _, routing := range s.Routings().All() {
		var remove []*Resource
		for _, r := range routing.Vertices() {
			if _, ok := s.Architecture().Vertex(r.ID()); !ok {
				remove = append(remove, r)
			}
		}
		routing.RemoveVertices(remove)
	}
}

// FilterByFunctionName restricts the specification to the functions
// with the given identifiers, in place.
func FilterByFunctionName(s *Specification, names ...string) {
	var functions []*Function
	for _, name := range names {
		if f, ok := s.Application().FunctionByID(name); ok {
			functions = append(functions, f)
		}
	}
	Filter(s, functions)
}
