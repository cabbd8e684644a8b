package routing

import (
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/constraints"
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/variables"
	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

// ProxyEncoderDefault handles resources that are represented by a
// proxy: a proxied resource never carries a routing itself, its proxy
// does. End-node placement already lands on the proxy because mapping
// targets are resolved through their proxy id.
type ProxyEncoderDefault struct{}

func (ProxyEncoderDefault) ToConstraints(store *variables.Store, comm model.Task,
	routing *model.Architecture, mappingVars []*variables.M,
	applicationVars []variables.ApplicationVariable) []*constraints.Constraint {

	var out []*constraints.Constraint
	for _, r := range routing.Vertices() {
		if model.HasProxy(r) {
			out = append(out, constraints.SetTo(store.VarCR(comm, r), false))
		}
	}
	return out
}
