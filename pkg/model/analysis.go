package model

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// taskNode mirrors a task into a gonum graph. Ids are the insertion
// indices of the tasks, shifted by one because gonum reserves node id
// zero semantics for callers.
type taskNode struct {
	id   int64
	task Task
}

func (n taskNode) ID() int64 { return n.id }

// components returns the weakly connected components of the
// application, ordered by the insertion index of their first member,
// with members in insertion order.
func (a *Application) components() [][]Task {
	tasks := a.Vertices()
	if len(tasks) == 0 {
		return nil
	}
	index := make(map[string]int, len(tasks))
	g := simple.NewUndirectedGraph()
	for i, t := range tasks {
		index[t.ID()] = i
		g.AddNode(taskNode{id: int64(i + 1), task: t})
	}
	for _, d := range a.Edges() {
		src, dst, _ := a.Endpoints(d)
		si, di := index[src.ID()], index[dst.ID()]
		if si == di {
			continue
		}
		g.SetEdge(g.NewEdge(taskNode{id: int64(si + 1), task: src}, taskNode{id: int64(di + 1), task: dst}))
	}

	var comps [][]Task
	for _, comp := range topo.ConnectedComponents(g) {
		members := make([]Task, 0, len(comp))
		for _, n := range comp {
			members = append(members, tasks[n.ID()-1])
		}
		sortTasksByIndex(members, index)
		comps = append(comps, members)
	}
	sortComponents(comps, index)
	return comps
}

// ValidateAcyclic reports an error if the application graph contains a
// directed cycle.
func ValidateAcyclic(a *Application) error {
	tasks := a.Vertices()
	index := make(map[string]int, len(tasks))
	g := simple.NewDirectedGraph()
	for i, t := range tasks {
		index[t.ID()] = i
		g.AddNode(taskNode{id: int64(i + 1), task: t})
	}
	for _, d := range a.Edges() {
		src, dst, _ := a.Endpoints(d)
		si, di := index[src.ID()], index[dst.ID()]
		if si == di {
			return errors.Errorf("dependency %q is a self loop on task %q", d.ID(), src.ID())
		}
		g.SetEdge(g.NewEdge(taskNode{id: int64(si + 1), task: src}, taskNode{id: int64(di + 1), task: dst}))
	}
	if _, err := topo.Sort(g); err != nil {
		return errors.Wrap(err, "application graph is not acyclic")
	}
	return nil
}

func sortTasksByIndex(tasks []Task, index map[string]int) {
	for i := 1; i < len(tasks); i++ {
		for j := i; j > 0 && index[tasks[j].ID()] < index[tasks[j-1].ID()]; j-- {
			tasks[j], tasks[j-1] = tasks[j-1], tasks[j]
		}
	}
}

func sortComponents(comps [][]Task, index map[string]int) {
	for i := 1; i < len(comps); i++ {
		for j := i; j > 0 && index[comps[j][0].ID()] < index[comps[j-1][0].ID()]; j-- {
			comps[j], comps[j-1] = comps[j-1], comps[j]
		}
	}
}
