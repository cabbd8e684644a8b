package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionsAreWeaklyConnectedComponents(t *testing.T) {
	application := NewApplication()
	t1 := NewProcess("t1")
	c1 := NewCommunication("c1")
	t2 := NewProcess("t2")
	t3 := NewProcess("t3")
	application.AddVertex(t1)
	application.AddVertex(c1)
	application.AddVertex(t2)
	application.AddVertex(t3)
	application.AddDependency(NewDependency("d1"), t1, c1)
	application.AddDependency(NewDependency("d2"), c1, t2)

	functions := application.Functions()
	require.Len(t, functions, 2)

	first := functions[0]
	assert.Equal(t, "t1", first.ID())
	var members []string
	for _, task := range first.Tasks() {
		members = append(members, task.ID())
	}
	assert.Equal(t, []string{"t1", "c1", "t2"}, members)
	assert.Equal(t, 2, first.EdgeCount())

	second := functions[1]
	assert.Equal(t, "t3", second.ID())
	assert.Len(t, second.Tasks(), 1)
}

func TestFunctionAttributesSharedAcrossMembers(t *testing.T) {
	application := NewApplication()
	t1 := NewProcess("t1")
	t2 := NewProcess("t2")
	application.AddVertex(t1)
	application.AddVertex(t2)
	application.AddDependency(NewDependency("d1"), t1, t2)

	application.Function(t1).SetAttribute("priority", 7)
	assert.Equal(t, 7, application.Function(t2).GetAttribute("priority"))
}

func TestFunctionIDFromAttribute(t *testing.T) {
	application := NewApplication()
	t1 := NewProcess("t1")
	application.AddVertex(t1)
	application.Function(t1).SetAttribute(FunctionIDAttribute, "control")

	f, ok := application.FunctionByID("control")
	require.True(t, ok)
	assert.Equal(t, "control", f.ID())
}

func TestValidateAcyclic(t *testing.T) {
	application := NewApplication()
	t1 := NewProcess("t1")
	t2 := NewProcess("t2")
	t3 := NewProcess("t3")
	application.AddDependency(NewDependency("d1"), t1, t2)
	application.AddDependency(NewDependency("d2"), t2, t3)
	require.NoError(t, ValidateAcyclic(application))

	application.AddDependency(NewDependency("d3"), t3, t1)
	assert.Error(t, ValidateAcyclic(application))
}

func TestFilterProcessesAndCommunications(t *testing.T) {
	tasks := []Task{NewProcess("t1"), NewCommunication("c1"), NewProcess("t2")}

	processes := FilterProcesses(tasks)
	require.Len(t, processes, 2)
	assert.Equal(t, "t1", processes[0].ID())
	assert.Equal(t, "t2", processes[1].ID())

	communications := FilterCommunications(tasks)
	require.Len(t, communications, 1)
	assert.Equal(t, "c1", communications[0].ID())
}
