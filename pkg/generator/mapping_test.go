package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

func testInstance() (*model.Application, *model.Architecture) {
	application := model.NewApplication()
	t1 := model.NewProcess("t1")
	c1 := model.NewCommunication("c1")
	t2 := model.NewProcess("t2")
	application.AddVertex(t1)
	application.AddVertex(c1)
	application.AddVertex(t2)
	application.AddDependency(model.NewDependency("d1"), t1, c1)
	application.AddDependency(model.NewDependency("d2"), c1, t2)

	architecture := model.NewArchitecture()
	architecture.AddVertex(model.NewResource("r1"))
	architecture.AddVertex(model.NewResource("r2"))
	architecture.AddVertex(model.NewResource("r3"))
	return application, architecture
}

func TestIDProvider(t *testing.T) {
	p := NewIDProvider("m")
	assert.Equal(t, "m0", p.Next())
	assert.Equal(t, "m1", p.Next())
}

func TestMappingGeneratorBounds(t *testing.T) {
	application, architecture := testInstance()
	g := NewMappingGenerator(42)
	mappings := g.Create(application, architecture, 1, 3)

	for _, task := range model.FilterProcesses(application.Vertices()) {
		count := len(mappings.Get(task))
		assert.GreaterOrEqual(t, count, 1)
		assert.LessOrEqual(t, count, 3)
		for _, m := range mappings.Get(task) {
			assert.True(t, architecture.ContainsVertex(m.Target()))
		}
	}

	// Communications never receive mappings.
	c1, _ := application.Vertex("c1")
	assert.Empty(t, mappings.Get(c1))
}

func TestMappingGeneratorDeterministicSeed(t *testing.T) {
	application, architecture := testInstance()
	first := NewMappingGenerator(7).Create(application, architecture, 1, 2)

	application2, architecture2 := testInstance()
	second := NewMappingGenerator(7).Create(application2, architecture2, 1, 2)

	require.Equal(t, first.Size(), second.Size())
	for i, m := range first.All() {
		o := second.All()[i]
		assert.Equal(t, m.ID(), o.ID())
		assert.Equal(t, m.Source().ID(), o.Source().ID())
		assert.Equal(t, m.Target().ID(), o.Target().ID())
	}
}

func TestAnnotateAttribute(t *testing.T) {
	application, architecture := testInstance()
	g := NewMappingGenerator(3)
	mappings := g.Create(application, architecture, 1, 1)
	g.AnnotateAttribute(mappings, "costs", 5, 10)

	for _, m := range mappings.All() {
		costs, ok := m.GetAttribute("costs").(int)
		require.True(t, ok)
		assert.GreaterOrEqual(t, costs, 5)
		assert.LessOrEqual(t, costs, 10)
	}
}
