package routing

import (
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/constraints"
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/variables"
	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

// EndNodeEncoderMapping places the end nodes of a flow's routing on
// the mapping targets of the neighbor tasks of the communication. A
// resource is an end node of the flow iff the corresponding neighbor
// task is mapped onto it (through its proxy) and the flow is active.
type EndNodeEncoderMapping struct{}

func (EndNodeEncoderMapping) ToConstraints(store *variables.Store, flow *variables.CommunicationFlow,
	routing *model.Architecture, mappingVars []*variables.M) ([]*constraints.Constraint, error) {

	var out []*constraints.Constraint
	srcTask := flow.SourceDTT().SourceTask()
	dstTask := flow.DestinationDTT().DestinationTask()

	for _, res := range routing.Vertices() {
		var srcMappings, dstMappings []*variables.M
		for _, mv := range mappingVars {
			if model.ProxyID(mv.Mapping().Target()) != res.ID() {
				continue
			}
			if mv.Mapping().Source().ID() == srcTask.ID() {
				srcMappings = append(srcMappings, mv)
			}
			if mv.Mapping().Source().ID() == dstTask.ID() {
				dstMappings = append(dstMappings, mv)
			}
		}
		cs, err := makeEndNodeConstraints(store, flow, res, srcMappings, true)
		if err != nil {
			return nil, err
		}
		out = append(out, cs...)
		cs, err = makeEndNodeConstraints(store, flow, res, dstMappings, false)
		if err != nil {
			return nil, err
		}
		out = append(out, cs...)
	}
	return out, nil
}

// makeEndNodeConstraints emits the constraints for one resource and
// one end of the flow. Without candidate mappings the end-node
// variable is forced to zero; with exactly one it is the conjunction
// of the mapping and the flow's two dependency variables; more than
// one candidate violates the at-most-one-mapping-per-pair invariant.
func makeEndNodeConstraints(store *variables.Store, flow *variables.CommunicationFlow,
	res *model.Resource, mappingVars []*variables.M, source bool) ([]*constraints.Constraint, error) {

	var endNode variables.Variable
	if source {
		endNode = store.VarDDsR(flow, res)
	} else {
		endNode = store.VarDDdR(flow, res)
	}

	switch len(mappingVars) {
	case 0:
		return []*constraints.Constraint{constraints.SetTo(endNode, false)}, nil
	case 1:
		return constraints.And(endNode, mappingVars[0], flow.SourceDTT(), flow.DestinationDTT()), nil
	default:
		task := flow.SourceDTT().SourceTask()
		if !source {
			task = flow.DestinationDTT().DestinationTask()
		}
		return nil, &InvariantViolationError{TaskID: task.ID(), ResourceID: res.ID()}
	}
}
