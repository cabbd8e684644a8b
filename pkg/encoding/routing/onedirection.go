package routing

import (
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/constraints"
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/variables"
	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

// OneDirectionEncoderDefault emits, for every undirected link of the
// routing, that at most one of its two directed incarnations is used
// by the communication.
type OneDirectionEncoderDefault struct{}

func (OneDirectionEncoderDefault) ToConstraints(store *variables.Store, comm *variables.T, routing *model.Architecture) []*constraints.Constraint {
	var out []*constraints.Constraint
	c := comm.Task()
	for _, l := range routing.Edges() {
		if routing.KindOf(l) != model.Undirected {
			continue
		}
		src, dst, _ := routing.Endpoints(l)
		oneDirection := constraints.New(constraints.LE, 1).
			Add(constraints.P(store.VarCLRR(c, l, src, dst))).
			Add(constraints.P(store.VarCLRR(c, l, dst, src)))
		out = append(out, oneDirection)
	}
	return out
}
