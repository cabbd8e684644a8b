package variables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

func TestInterningReturnsSameInstance(t *testing.T) {
	store := NewStore()
	t1 := model.NewProcess("t1")
	t2 := model.NewCommunication("t2")
	r1 := model.NewResource("r1")
	l1 := model.NewLink("l1")
	m1 := model.NewMapping("m1", t1, r1)

	assert.Same(t, store.VarM(m1), store.VarM(m1))
	assert.Same(t, store.VarT(t1), store.VarT(t1))
	assert.Same(t, store.VarDTT(t1, t2), store.VarDTT(t1, t2))
	assert.Same(t, store.VarCR(t2, r1), store.VarCR(t2, r1))
	assert.Same(t, store.VarCLRR(t2, l1, r1, r1), store.VarCLRR(t2, l1, r1, r1))
	assert.Same(t, store.VarRO(t2, r1, r1), store.VarRO(t2, r1, r1))

	flow := store.Flow(store.VarDTT(t1, t2), store.VarDTT(t2, t1))
	assert.Same(t, flow, store.Flow(store.VarDTT(t1, t2), store.VarDTT(t2, t1)))
	assert.Same(t, store.VarDDsR(flow, r1), store.VarDDsR(flow, r1))
	assert.Same(t, store.VarDDdR(flow, r1), store.VarDDdR(flow, r1))
	assert.Same(t, store.VarDDR(flow, r1), store.VarDDR(flow, r1))
	assert.Same(t, store.VarDDLRR(flow, l1, r1, r1), store.VarDDLRR(flow, l1, r1, r1))
}

func TestInterningSeparatesByIdentifier(t *testing.T) {
	store := NewStore()
	t1 := model.NewProcess("t1")
	t2 := model.NewProcess("t2")

	assert.NotSame(t, store.VarT(t1), store.VarT(t2))
	assert.NotEqual(t, store.VarT(t1), store.VarT(t2))
}

func TestInterningByStructureNotInstance(t *testing.T) {
	store := NewStore()
	// Two distinct instances with equal identifiers intern to the
	// same variable.
	a := model.NewProcess("t1")
	b := model.NewProcess("t1")
	assert.Same(t, store.VarT(a), store.VarT(b))
}

func TestInterningSeparatesFamilies(t *testing.T) {
	store := NewStore()
	t1 := model.NewCommunication("x")
	r1 := model.NewResource("x")
	flow := store.Flow(store.VarDTT(t1, t1), store.VarDTT(t1, t1))

	var dds Variable = store.VarDDsR(flow, r1)
	var ddd Variable = store.VarDDdR(flow, r1)
	assert.NotEqual(t, dds, ddd)
}

func TestVariableStrings(t *testing.T) {
	store := NewStore()
	t1 := model.NewProcess("t1")
	t2 := model.NewCommunication("t2")
	r1 := model.NewResource("r1")
	m1 := model.NewMapping("m1", t1, r1)

	require.Equal(t, "M(m1)", store.VarM(m1).String())
	require.Equal(t, "T(t1)", store.VarT(t1).String())
	require.Equal(t, "DTT(t1,t2)", store.VarDTT(t1, t2).String())
}

func TestMarkerInterfaces(t *testing.T) {
	store := NewStore()
	t1 := model.NewProcess("t1")
	r1 := model.NewResource("r1")
	m1 := model.NewMapping("m1", t1, r1)

	var _ MappingVariable = store.VarM(m1)
	var _ ApplicationVariable = store.VarT(t1)
	var _ ApplicationVariable = store.VarDTT(t1, t1)
	var _ RoutingVariable = store.VarCR(t1, r1)
}
