// Package routing emits the per-communication routing constraints:
// one-direction link usage, cycle freedom, the variable hierarchy,
// end-node placement, proxy handling, and flow conservation.
package routing

import (
	"fmt"

	"github.com/JoachimFalk/dse-opendse/pkg/encoding/constraints"
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/variables"
	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

// InvariantViolationError reports that more than one mapping binds
// the same task to the same resource.
type InvariantViolationError struct {
	TaskID     string
	ResourceID string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("more than one mapping between task %q and resource %q", e.TaskID, e.ResourceID)
}

// OneDirectionEncoder constrains undirected routing links to be used
// in at most one direction.
type OneDirectionEncoder interface {
	ToConstraints(store *variables.Store, comm *variables.T, routing *model.Architecture) []*constraints.Constraint
}

// CycleBreakEncoder keeps the chosen directed routing subgraph free of
// directed cycles.
type CycleBreakEncoder interface {
	ToConstraints(store *variables.Store, comm *variables.T, routing *model.Architecture) []*constraints.Constraint
}

// HierarchyEncoder ties the per-flow, per-communication, and
// task-activity variables together.
type HierarchyEncoder interface {
	ToConstraints(store *variables.Store, comm *variables.T, flows []*variables.CommunicationFlow, routing *model.Architecture) []*constraints.Constraint
}

// EndNodeEncoder places the end nodes of each flow's routing.
type EndNodeEncoder interface {
	ToConstraints(store *variables.Store, flow *variables.CommunicationFlow, routing *model.Architecture, mappingVars []*variables.M) ([]*constraints.Constraint, error)
}

// ProxyEncoder maps logical routing endpoints onto physical proxy
// resources.
type ProxyEncoder interface {
	ToConstraints(store *variables.Store, comm model.Task, routing *model.Architecture, mappingVars []*variables.M, applicationVars []variables.ApplicationVariable) []*constraints.Constraint
}

// CommunicationFlowRoutingEncoder emits the routing constraints of a
// single communication flow.
type CommunicationFlowRoutingEncoder interface {
	ToConstraints(store *variables.Store, flow *variables.CommunicationFlow, routing *model.Architecture, mappingVars []*variables.M) ([]*constraints.Constraint, error)
}

// CommunicationFlowRoutingManager picks the encoder for a flow.
type CommunicationFlowRoutingManager interface {
	EncoderFor(flow *variables.CommunicationFlow) CommunicationFlowRoutingEncoder
}

// AdditionalConstraintsEncoder passes extra constraints through
// verbatim.
type AdditionalConstraintsEncoder interface {
	ToConstraints(store *variables.Store, comm *variables.T, flows []*variables.CommunicationFlow, routing *model.Architecture) []*constraints.Constraint
}

// Encoder assembles the full routing constraint set of one
// communication from its collaborators.
type Encoder struct {
	oneDirection OneDirectionEncoder
	cycleBreak   CycleBreakEncoder
	hierarchy    HierarchyEncoder
	proxy        ProxyEncoder
	manager      CommunicationFlowRoutingManager
	additional   AdditionalConstraintsEncoder
}

// NewEncoder constructs an Encoder from explicit collaborators.
func NewEncoder(oneDirection OneDirectionEncoder, cycleBreak CycleBreakEncoder,
	hierarchy HierarchyEncoder, proxy ProxyEncoder,
	manager CommunicationFlowRoutingManager, additional AdditionalConstraintsEncoder) *Encoder {
	return &Encoder{
		oneDirection: oneDirection,
		cycleBreak:   cycleBreak,
		hierarchy:    hierarchy,
		proxy:        proxy,
		manager:      manager,
		additional:   additional,
	}
}

// NewDefaultEncoder constructs an Encoder with the default
// collaborators.
func NewDefaultEncoder() *Encoder {
	return NewEncoder(
		OneDirectionEncoderDefault{},
		CycleBreakEncoderOrder{},
		HierarchyEncoderDefault{},
		ProxyEncoderDefault{},
		NewFlowRoutingManager(),
		AdditionalConstraintsEncoderNone{},
	)
}

// ToConstraints emits the routing constraints of the communication
// behind comm: its flows over the given routing sub-architecture.
func (e *Encoder) ToConstraints(store *variables.Store, comm *variables.T,
	flows []*variables.CommunicationFlow, routing *model.Architecture,
	mappingVars []*variables.M, applicationVars []variables.ApplicationVariable) ([]*constraints.Constraint, error) {

	var out []*constraints.Constraint
	out = append(out, e.oneDirection.ToConstraints(store, comm, routing)...)
	out = append(out, e.cycleBreak.ToConstraints(store, comm, routing)...)
	out = append(out, e.hierarchy.ToConstraints(store, comm, flows, routing)...)
	out = append(out, e.proxy.ToConstraints(store, comm.Task(), routing, mappingVars, applicationVars)...)
	for _, flow := range flows {
		flowEncoder := e.manager.EncoderFor(flow)
		cs, err := flowEncoder.ToConstraints(store, flow, routing, mappingVars)
		if err != nil {
			return nil, err
		}
		out = append(out, cs...)
	}
	out = append(out, e.additional.ToConstraints(store, comm, flows, routing)...)
	return out, nil
}
