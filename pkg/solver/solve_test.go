package solver

import (
	"context"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoachimFalk/dse-opendse/pkg/encoding"
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/constraints"
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/variables"
	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

func testVariables(n int) []variables.Variable {
	store := variables.NewStore()
	names := []string{"a", "b", "c", "d", "e"}
	out := make([]variables.Variable, n)
	for i := 0; i < n; i++ {
		out[i] = store.VarT(model.NewProcess(names[i]))
	}
	return out
}

func solve(t *testing.T, input []*constraints.Constraint) (Model, error) {
	t.Helper()
	s, err := New(WithInput(input))
	require.NoError(t, err)
	return s.Solve(context.Background())
}

func TestSolveEmptyInput(t *testing.T) {
	m, err := solve(t, nil)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestSolveForcedVariable(t *testing.T) {
	vs := testVariables(1)
	m, err := solve(t, []*constraints.Constraint{constraints.SetTo(vs[0], true)})
	require.NoError(t, err)
	assert.True(t, m[vs[0]])
}

func TestSolveConflict(t *testing.T) {
	vs := testVariables(1)
	_, err := solve(t, []*constraints.Constraint{
		constraints.SetTo(vs[0], true),
		constraints.SetTo(vs[0], false),
	})
	require.Error(t, err)

	var notSat NotSatisfiable
	require.ErrorAs(t, err, &notSat)
	assert.Contains(t, err.Error(), "constraints not satisfiable")
}

func TestSolveWeightedLessEqual(t *testing.T) {
	vs := testVariables(2)
	m, err := solve(t, []*constraints.Constraint{
		constraints.SetTo(vs[0], true),
		constraints.New(constraints.LE, 2).
			AddTerm(2, constraints.P(vs[0])).
			Add(constraints.P(vs[1])),
	})
	require.NoError(t, err)
	assert.True(t, m[vs[0]])
	assert.False(t, m[vs[1]])
}

func TestSolveExactlyOne(t *testing.T) {
	vs := testVariables(3)
	exactlyOne := constraints.New(constraints.EQ, 1)
	for _, v := range vs {
		exactlyOne.Add(constraints.P(v))
	}
	m, err := solve(t, []*constraints.Constraint{exactlyOne})
	require.NoError(t, err)

	count := 0
	for _, v := range vs {
		if m[v] {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSolveNegativeCoefficient(t *testing.T) {
	vs := testVariables(2)
	m, err := solve(t, []*constraints.Constraint{
		constraints.SetTo(vs[0], true),
		constraints.Implies(vs[0], vs[1]),
	})
	require.NoError(t, err)
	assert.True(t, m[vs[1]])
}

func TestSolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := New()
	require.NoError(t, err)
	_, err = s.Solve(ctx)
	assert.ErrorIs(t, err, Incomplete)
}

// busSpecification builds the canonical bus instance.
func busSpecification() *model.Specification {
	r1 := model.NewResource("r1")
	r2 := model.NewResource("r2")
	can := model.NewResource("can")

	architecture := model.NewArchitecture()
	architecture.AddVertex(r1)
	architecture.AddVertex(r2)
	architecture.AddVertex(can)
	architecture.AddEdge(model.NewLink("l1"), r1, can, model.Undirected)
	architecture.AddEdge(model.NewLink("l2"), r2, can, model.Undirected)

	t1 := model.NewProcess("t1")
	t2 := model.NewCommunication("t2")
	t3 := model.NewProcess("t3")

	application := model.NewApplication()
	application.AddVertex(t1)
	application.AddVertex(t2)
	application.AddVertex(t3)
	application.AddDependency(model.NewDependency("d1"), t1, t2)
	application.AddDependency(model.NewDependency("d2"), t2, t3)

	mappings := model.NewMappings()
	mappings.Add(model.NewMapping("m1", t1, r1))
	mappings.Add(model.NewMapping("m2", t3, r2))

	l1, _ := architecture.Edge("l1")
	l2, _ := architecture.Edge("l2")
	rt := model.NewArchitecture()
	rt.AddVertex(r1)
	rt.AddVertex(can)
	rt.AddVertex(r2)
	rt.AddEdge(l1, r1, can, model.Directed)
	rt.AddEdge(l2, can, r2, model.Directed)

	routings := model.NewRoutings()
	routings.Set(t2, rt)

	return model.NewSpecificationRoutings(application, architecture, mappings, routings)
}

func TestSolveEncodedBusSpecification(t *testing.T) {
	spec := busSpecification()
	enc, err := encoding.New().Encode(spec)
	require.NoError(t, err)

	m, err := solve(t, enc.Constraints)
	require.NoError(t, err)

	store := enc.Store
	m1, _ := spec.Mappings().Mapping("m1")
	m2, _ := spec.Mappings().Mapping("m2")
	assert.True(t, m[store.VarM(m1)])
	assert.True(t, m[store.VarM(m2)])

	t2, _ := spec.Application().Vertex("t2")
	l1, _ := spec.Architecture().Edge("l1")
	l2, _ := spec.Architecture().Edge("l2")
	r1, _ := spec.Architecture().Vertex("r1")
	r2, _ := spec.Architecture().Vertex("r2")
	can, _ := spec.Architecture().Vertex("can")

	// The message is routed from the sender's resource over the bus
	// to the receiver's resource.
	assert.True(t, m[store.VarCLRR(t2, l1, r1, can)])
	assert.True(t, m[store.VarCLRR(t2, l2, can, r2)])
	for _, r := range []*model.Resource{r1, can, r2} {
		assert.True(t, m[store.VarCR(t2, r)], "resource %s not visited", r.ID())
	}

	impl, err := encoding.Implementation(spec, enc, m)
	require.NoError(t, err)

	var mappingIDs []string
	for _, mapping := range impl.Mappings().All() {
		mappingIDs = append(mappingIDs, mapping.ID())
	}
	sort.Strings(mappingIDs)
	assert.Empty(t, cmp.Diff([]string{"m1", "m2"}, mappingIDs))

	implT2, _ := impl.Application().Vertex("t2")
	implRouting := impl.Routings().Get(implT2)
	var routed []string
	for _, r := range implRouting.Vertices() {
		routed = append(routed, r.ID())
	}
	sort.Strings(routed)
	assert.Empty(t, cmp.Diff([]string{"can", "r1", "r2"}, routed))
	assert.Equal(t, 2, implRouting.EdgeCount())
}

func TestSolveEncodedUnsatisfiable(t *testing.T) {
	spec := busSpecification()
	// An empty routing makes the active communication impossible to
	// place.
	t2, _ := spec.Application().Vertex("t2")
	spec.Routings().Set(t2, model.NewArchitecture())

	enc, err := encoding.New().Encode(spec)
	require.NoError(t, err)

	_, err = solve(t, enc.Constraints)
	var notSat NotSatisfiable
	require.ErrorAs(t, err, &notSat)
}
