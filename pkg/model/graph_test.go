package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphInsertionOrder(t *testing.T) {
	g := NewGraph[*Resource, *Link]()
	ids := []string{"r3", "r1", "r2"}
	for _, id := range ids {
		g.AddVertex(NewResource(id))
	}

	var got []string
	for _, v := range g.Vertices() {
		got = append(got, v.ID())
	}
	assert.Equal(t, ids, got)
}

func TestGraphDuplicateVertexIsNoOp(t *testing.T) {
	g := NewGraph[*Resource, *Link]()
	r := NewResource("r1")
	g.AddVertex(r)
	g.AddVertex(NewResource("r1"))

	require.Equal(t, 1, g.VertexCount())
	v, ok := g.Vertex("r1")
	require.True(t, ok)
	assert.Same(t, r, v)
}

func TestGraphEndpointQueries(t *testing.T) {
	g := NewGraph[*Resource, *Link]()
	r1 := NewResource("r1")
	r2 := NewResource("r2")
	can := NewResource("can")
	l1 := NewLink("l1")
	l2 := NewLink("l2")
	g.AddVertex(r1)
	g.AddVertex(r2)
	g.AddVertex(can)
	g.AddEdge(l1, r1, can, Undirected)
	g.AddEdge(l2, can, r2, Directed)

	src, dst, ok := g.Endpoints(l1)
	require.True(t, ok)
	assert.Same(t, r1, src)
	assert.Same(t, can, dst)

	opp, ok := g.Opposite(can, l1)
	require.True(t, ok)
	assert.Same(t, r1, opp)

	// The undirected l1 counts in both directions, the directed l2
	// only from can to r2.
	assert.Len(t, g.OutEdges(r1), 1)
	assert.Len(t, g.InEdges(r1), 1)
	assert.Len(t, g.OutEdges(can), 2)
	assert.Len(t, g.InEdges(can), 1)
	assert.Len(t, g.InEdges(r2), 1)
	assert.Empty(t, g.OutEdges(r2))

	succs := g.Successors(can)
	require.Len(t, succs, 2)
	assert.Same(t, r1, succs[0])
	assert.Same(t, r2, succs[1])
}

func TestGraphRemoveVertexRemovesIncidentEdges(t *testing.T) {
	g := NewGraph[*Resource, *Link]()
	r1 := NewResource("r1")
	r2 := NewResource("r2")
	can := NewResource("can")
	g.AddEdge(NewLink("l1"), r1, can, Undirected)
	g.AddEdge(NewLink("l2"), can, r2, Undirected)

	require.True(t, g.RemoveVertex(can))

	assert.Equal(t, 2, g.VertexCount())
	assert.Zero(t, g.EdgeCount())
	_, ok := g.Edge("l1")
	assert.False(t, ok)
}

func TestGraphAddEdgeAddsMissingEndpoints(t *testing.T) {
	g := NewGraph[*Resource, *Link]()
	r1 := NewResource("r1")
	r2 := NewResource("r2")
	g.AddEdge(NewLink("l1"), r1, r2, Directed)

	assert.True(t, g.ContainsVertex(r1))
	assert.True(t, g.ContainsVertex(r2))
	assert.Equal(t, Directed, g.KindOf(mustEdge(t, g, "l1")))
}

func mustEdge(t *testing.T, g *Graph[*Resource, *Link], id string) *Link {
	t.Helper()
	e, ok := g.Edge(id)
	require.True(t, ok)
	return e
}
