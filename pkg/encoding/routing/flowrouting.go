package routing

import (
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/constraints"
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/variables"
	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

// FlowRoutingEncoderDefault routes a single communication flow as a
// simple path: end-node placement plus unicast conservation. Every
// visited resource is entered exactly once (through a link or by
// being the source end node) and left exactly once (through a link or
// by being the destination end node).
type FlowRoutingEncoderDefault struct {
	endNode EndNodeEncoder
}

func (e FlowRoutingEncoderDefault) ToConstraints(store *variables.Store, flow *variables.CommunicationFlow,
	routing *model.Architecture, mappingVars []*variables.M) ([]*constraints.Constraint, error) {

	out, err := e.endNode.ToConstraints(store, flow, routing, mappingVars)
	if err != nil {
		return nil, err
	}

	links := model.GetLinks(routing)
	for _, r := range routing.Vertices() {
		entered := constraints.New(constraints.EQ, 0).
			AddTerm(-1, constraints.P(store.VarDDR(flow, r))).
			Add(constraints.P(store.VarDDsR(flow, r)))
		left := constraints.New(constraints.EQ, 0).
			AddTerm(-1, constraints.P(store.VarDDR(flow, r))).
			Add(constraints.P(store.VarDDdR(flow, r)))
		for _, dl := range links {
			if dl.Dest().ID() == r.ID() {
				entered.Add(constraints.P(store.VarDDLRR(flow, dl.Link(), dl.Source(), dl.Dest())))
			}
			if dl.Source().ID() == r.ID() {
				left.Add(constraints.P(store.VarDDLRR(flow, dl.Link(), dl.Source(), dl.Dest())))
			}
		}
		out = append(out, entered, left)
	}
	return out, nil
}

// FlowRoutingManager returns the same flow encoder for every flow.
type FlowRoutingManager struct {
	encoder CommunicationFlowRoutingEncoder
}

// NewFlowRoutingManager constructs a manager handing out the default
// flow encoder.
func NewFlowRoutingManager() *FlowRoutingManager {
	return &FlowRoutingManager{encoder: FlowRoutingEncoderDefault{endNode: EndNodeEncoderMapping{}}}
}

// NewFlowRoutingManagerWith constructs a manager handing out the
// given encoder.
func NewFlowRoutingManagerWith(encoder CommunicationFlowRoutingEncoder) *FlowRoutingManager {
	return &FlowRoutingManager{encoder: encoder}
}

func (m *FlowRoutingManager) EncoderFor(*variables.CommunicationFlow) CommunicationFlowRoutingEncoder {
	return m.encoder
}
