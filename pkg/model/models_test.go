package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// busSpecification builds the canonical three-resource instance: two
// processing resources connected over a bus, a sender and a receiver
// process with a message between them, and a fixed routing over the
// bus.
func busSpecification() *Specification {
	r1 := NewResource("r1")
	r2 := NewResource("r2")
	can := NewResource("can")

	architecture := NewArchitecture()
	architecture.AddVertex(r1)
	architecture.AddVertex(r2)
	architecture.AddVertex(can)
	architecture.AddEdge(NewLink("l1"), r1, can, Undirected)
	architecture.AddEdge(NewLink("l2"), r2, can, Undirected)

	t1 := NewProcess("t1")
	t2 := NewCommunication("t2")
	t3 := NewProcess("t3")

	application := NewApplication()
	application.AddVertex(t1)
	application.AddVertex(t2)
	application.AddVertex(t3)
	application.AddDependency(NewDependency("d1"), t1, t2)
	application.AddDependency(NewDependency("d2"), t2, t3)

	mappings := NewMappings()
	mappings.Add(NewMapping("m1", t1, r1))
	mappings.Add(NewMapping("m2", t3, r2))

	l1, _ := architecture.Edge("l1")
	l2, _ := architecture.Edge("l2")
	routing := NewArchitecture()
	routing.AddVertex(r1)
	routing.AddVertex(can)
	routing.AddVertex(r2)
	routing.AddEdge(l1, r1, can, Directed)
	routing.AddEdge(l2, can, r2, Directed)

	routings := NewRoutings()
	routings.Set(t2, routing)

	return NewSpecificationRoutings(application, architecture, mappings, routings)
}

func TestDirectedLinkView(t *testing.T) {
	s := busSpecification()
	links := GetLinks(s.Architecture())

	var got [][3]string
	for _, dl := range links {
		got = append(got, [3]string{dl.Link().ID(), dl.Source().ID(), dl.Dest().ID()})
	}
	assert.ElementsMatch(t, [][3]string{
		{"l1", "r1", "can"},
		{"l1", "can", "r1"},
		{"l2", "r2", "can"},
		{"l2", "can", "r2"},
	}, got)
}

func TestDirectedLinkViewOfDirectedLink(t *testing.T) {
	architecture := NewArchitecture()
	r1 := NewResource("r1")
	r2 := NewResource("r2")
	l := NewLink("l")
	architecture.AddEdge(l, r1, r2, Directed)

	links := GetLinksOf(architecture, l)
	require.Len(t, links, 1)
	assert.Equal(t, "r1", links[0].Source().ID())
	assert.Equal(t, "r2", links[0].Dest().ID())
}

func TestFilterByResources(t *testing.T) {
	s := busSpecification()
	r1, _ := s.Architecture().Vertex("r1")
	can, _ := s.Architecture().Vertex("can")

	FilterByResources(s, []*Resource{r1, can})

	var resources []string
	for _, r := range s.Architecture().Vertices() {
		resources = append(resources, r.ID())
	}
	assert.Equal(t, []string{"r1", "can"}, resources)

	require.Equal(t, 1, s.Mappings().Size())
	m := s.Mappings().All()[0]
	assert.Equal(t, "m1", m.ID())
	assert.Equal(t, "r1", m.Target().ID())

	var tasks []string
	for _, task := range s.Application().Vertices() {
		tasks = append(tasks, task.ID())
	}
	assert.Equal(t, []string{"t1"}, tasks)
}

func TestFilterByResourcesKeepsMappingTargetsInside(t *testing.T) {
	s := busSpecification()
	initial := map[string]struct{}{}
	for _, r := range s.Architecture().Vertices() {
		initial[r.ID()] = struct{}{}
	}
	r2, _ := s.Architecture().Vertex("r2")
	can, _ := s.Architecture().Vertex("can")
	keep := []*Resource{r2, can}

	FilterByResources(s, keep)

	for _, r := range s.Architecture().Vertices() {
		_, wasThere := initial[r.ID()]
		assert.True(t, wasThere)
	}
	for _, m := range s.Mappings().All() {
		assert.Contains(t, []string{"r2", "can"}, m.Target().ID())
	}
	for _, task := range s.Application().Vertices() {
		assert.False(t, IsCommunication(task))
		assert.NotEmpty(t, s.Mappings().Get(task))
	}
}

func TestFilterByFunctions(t *testing.T) {
	s := busSpecification()

	// A second function, mapped onto its own resource r3, that will be
	// filtered away.
	t4 := NewProcess("t4")
	s.Application().AddVertex(t4)
	r3 := NewResource("r3")
	s.Architecture().AddVertex(r3)
	s.Mappings().Add(NewMapping("m3", t4, r3))

	t1, _ := s.Application().Vertex("t1")
	f := s.Application().Function(t1)
	require.NotNil(t, f)

	Filter(s, []*Function{f})

	var tasks []string
	for _, task := range s.Application().Vertices() {
		tasks = append(tasks, task.ID())
	}
	assert.Equal(t, []string{"t1", "t2", "t3"}, tasks)

	assert.Equal(t, 2, s.Mappings().Size())

	var resources []string
	for _, r := range s.Architecture().Vertices() {
		resources = append(resources, r.ID())
	}
	// r3 is neither a surviving mapping target nor part of a routing.
	assert.Equal(t, []string{"r1", "r2", "can"}, resources)

	// Every surviving resource is a mapping target or routed over.
	routed := map[string]struct{}{}
	for _, routing := range s.Routings().All() {
		for _, r := range routing.Vertices() {
			routed[r.ID()] = struct{}{}
		}
	}
	for _, r := range s.Architecture().Vertices() {
		_, isRouted := routed[r.ID()]
		isTarget := len(s.Mappings().GetByTarget(r)) > 0
		assert.True(t, isRouted || isTarget, "resource %s", r.ID())
	}
}

func TestFilterByFunctionName(t *testing.T) {
	s := busSpecification()
	t4 := NewProcess("t4")
	s.Application().AddVertex(t4)

	FilterByFunctionName(s, "t4")

	require.Equal(t, 1, s.Application().VertexCount())
	only := s.Application().Vertices()[0]
	assert.Equal(t, "t4", only.ID())
	assert.Zero(t, s.Architecture().VertexCount())
}

func TestCopySpecificationIsomorphism(t *testing.T) {
	s := busSpecification()
	t1, _ := s.Application().Vertex("t1")
	s.Application().Function(t1).SetAttribute("priority", 2)
	s.SetAttribute("name", "bus")

	cp, err := CopySpecification(s)
	require.NoError(t, err)

	assert.Equal(t, s.Architecture().VertexCount(), cp.Architecture().VertexCount())
	assert.Equal(t, s.Architecture().EdgeCount(), cp.Architecture().EdgeCount())
	assert.Equal(t, s.Application().VertexCount(), cp.Application().VertexCount())
	assert.Equal(t, s.Mappings().Size(), cp.Mappings().Size())
	assert.Equal(t, "bus", cp.GetAttribute("name"))

	for _, r := range s.Architecture().Vertices() {
		cr, ok := cp.Architecture().Vertex(r.ID())
		require.True(t, ok)
		assert.NotSame(t, r, cr)
	}
	for _, task := range s.Application().Vertices() {
		ct, ok := cp.Application().Vertex(task.ID())
		require.True(t, ok)
		assert.NotSame(t, task, ct)
		assert.Equal(t, IsCommunication(task), IsCommunication(ct))
	}
	for _, m := range s.Mappings().All() {
		cm, ok := cp.Mappings().Mapping(m.ID())
		require.True(t, ok)
		assert.NotSame(t, m, cm)
		inApp, _ := cp.Application().Vertex(cm.Source().ID())
		assert.Same(t, inApp, cm.Source())
		inArch, _ := cp.Architecture().Vertex(cm.Target().ID())
		assert.Same(t, inArch, cm.Target())
	}

	ct1, _ := cp.Application().Vertex("t1")
	assert.Equal(t, 2, cp.Application().Function(ct1).GetAttribute("priority"))

	ct2, _ := cp.Application().Vertex("t2")
	routing := cp.Routings().Get(ct2)
	assert.Equal(t, 3, routing.VertexCount())
	assert.Equal(t, 2, routing.EdgeCount())
	for _, r := range routing.Vertices() {
		archR, ok := cp.Architecture().Vertex(r.ID())
		require.True(t, ok)
		assert.Same(t, archR, r.Parent())
	}

	for _, d := range cp.Application().Edges() {
		src, dst, ok := cp.Application().Endpoints(d)
		require.True(t, ok)
		inSrc, _ := cp.Application().Vertex(src.ID())
		inDst, _ := cp.Application().Vertex(dst.ID())
		assert.Same(t, inSrc, src)
		assert.Same(t, inDst, dst)
	}
}

func TestCloneSpecificationPreservesIdentity(t *testing.T) {
	s := busSpecification()
	clone := CloneSpecification(s)

	for _, r := range s.Architecture().Vertices() {
		cr, ok := clone.Architecture().Vertex(r.ID())
		require.True(t, ok)
		assert.Same(t, r, cr)
	}
	for _, l := range s.Architecture().Edges() {
		cl, ok := clone.Architecture().Edge(l.ID())
		require.True(t, ok)
		assert.Same(t, l, cl)
	}
	for _, task := range s.Application().Vertices() {
		ct, ok := clone.Application().Vertex(task.ID())
		require.True(t, ok)
		assert.Same(t, task, ct)
	}
	for i, m := range s.Mappings().All() {
		assert.Same(t, m, clone.Mappings().All()[i])
	}
	t2, _ := s.Application().Vertex("t2")
	assert.Same(t, s.Routings().Get(t2), clone.Routings().Get(t2))
}

func TestElementsMap(t *testing.T) {
	s := busSpecification()
	elements := ElementsMap(s)

	for _, id := range []string{"r1", "r2", "can", "l1", "l2", "t1", "t2", "t3", "d1", "d2", "m1", "m2"} {
		assert.Contains(t, elements, id)
	}
	assert.Len(t, elements, 12)
}

func TestFilterTypeSelectsByTypeTag(t *testing.T) {
	ecu := NewResource("ecu0")
	ecu.SetAttribute(TypeAttribute, "ecu")
	bus := NewResource("bus0")
	bus.SetAttribute(TypeAttribute, "bus")

	filtered := FilterType([]*Resource{ecu, bus}, "ecu")
	require.Len(t, filtered, 1)
	assert.Same(t, ecu, filtered[0])
}

func TestProxyID(t *testing.T) {
	r := NewResource("r1")
	assert.Equal(t, "r1", ProxyID(r))
	assert.False(t, HasProxy(r))

	r.SetAttribute(ProxyAttribute, "can")
	assert.Equal(t, "can", ProxyID(r))
	assert.True(t, HasProxy(r))
}
