package routing

import (
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/constraints"
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/variables"
	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

// CycleBreakEncoderOrder forbids directed cycles in the chosen
// routing subgraph by imposing a level order on the routing
// resources: every used directed link must go from a lower to a
// higher level. The order is encoded with pairwise RO variables,
// antisymmetry, and transitivity.
type CycleBreakEncoderOrder struct{}

func (CycleBreakEncoderOrder) ToConstraints(store *variables.Store, comm *variables.T, routing *model.Architecture) []*constraints.Constraint {
	var out []*constraints.Constraint
	c := comm.Task()
	resources := routing.Vertices()

	for i, u := range resources {
		for j := i + 1; j < len(resources); j++ {
			v := resources[j]
			antisymmetry := constraints.New(constraints.EQ, 1).
				Add(constraints.P(store.VarRO(c, u, v))).
				Add(constraints.P(store.VarRO(c, v, u)))
			out = append(out, antisymmetry)
		}
	}

	for _, u := range resources {
		for _, v := range resources {
			if u.ID() == v.ID() {
				continue
			}
			for _, w := range resources {
				if w.ID() == u.ID() || w.ID() == v.ID() {
					continue
				}
				transitivity := constraints.New(constraints.LE, 1).
					Add(constraints.P(store.VarRO(c, u, v))).
					Add(constraints.P(store.VarRO(c, v, w))).
					AddTerm(-1, constraints.P(store.VarRO(c, u, w)))
				out = append(out, transitivity)
			}
		}
	}

	for _, dl := range model.GetLinks(routing) {
		out = append(out, constraints.Implies(
			store.VarCLRR(c, dl.Link(), dl.Source(), dl.Dest()),
			store.VarRO(c, dl.Source(), dl.Dest())))
	}
	return out
}
