package routing

import (
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/constraints"
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/variables"
	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

// HierarchyEncoderDefault ties the variable layers of one
// communication together: a routing link is used iff a flow uses it,
// a resource is visited by a flow iff an incident link is used or the
// resource is one of the flow's end nodes, a resource is visited by
// the communication iff a flow visits it, and the communication task
// is active iff any routing resource is visited.
type HierarchyEncoderDefault struct{}

func (HierarchyEncoderDefault) ToConstraints(store *variables.Store, comm *variables.T,
	flows []*variables.CommunicationFlow, routing *model.Architecture) []*constraints.Constraint {

	var out []*constraints.Constraint
	c := comm.Task()
	links := model.GetLinks(routing)

	for _, dl := range links {
		operands := make([]variables.Variable, 0, len(flows))
		for _, f := range flows {
			operands = append(operands, store.VarDDLRR(f, dl.Link(), dl.Source(), dl.Dest()))
		}
		clrr := store.VarCLRR(c, dl.Link(), dl.Source(), dl.Dest())
		out = append(out, constraints.Or(clrr, operands...)...)
	}

	for _, r := range routing.Vertices() {
		flowVisits := make([]variables.Variable, 0, len(flows))
		for _, f := range flows {
			var operands []variables.Variable
			for _, dl := range links {
				if dl.Source().ID() == r.ID() || dl.Dest().ID() == r.ID() {
					operands = append(operands, store.VarDDLRR(f, dl.Link(), dl.Source(), dl.Dest()))
				}
			}
			operands = append(operands, store.VarDDsR(f, r), store.VarDDdR(f, r))
			ddr := store.VarDDR(f, r)
			out = append(out, constraints.Or(ddr, operands...)...)
			flowVisits = append(flowVisits, ddr)
		}
		out = append(out, constraints.Or(store.VarCR(c, r), flowVisits...)...)
	}

	visited := make([]variables.Variable, 0, routing.VertexCount())
	for _, r := range routing.Vertices() {
		visited = append(visited, store.VarCR(c, r))
	}
	out = append(out, constraints.Or(comm, visited...)...)
	return out
}
