// Package variables defines the decision variables of the constraint
// encoding. Variables are interned: two requests for the same family
// with the same payload return the same instance, so variables compare
// by identity everywhere in the encoder.
package variables

import (
	"fmt"

	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

// Variable is a Boolean decision variable of the encoded problem.
type Variable interface {
	fmt.Stringer
	variable()
}

// MappingVariable marks variables derived from mappings.
type MappingVariable interface {
	Variable
	mappingVariable()
}

// ApplicationVariable marks variables derived from the application
// graph.
type ApplicationVariable interface {
	Variable
	applicationVariable()
}

// RoutingVariable marks variables derived from routing decisions.
type RoutingVariable interface {
	Variable
	routingVariable()
}

// M encodes that a mapping is selected.
type M struct {
	mapping *model.Mapping
}

func (v *M) Mapping() *model.Mapping { return v.mapping }
func (v *M) String() string          { return fmt.Sprintf("M(%s)", v.mapping.ID()) }
func (*M) variable() {}
func (*M) mappingVariable() {}

// T encodes that a task is active.
type T struct {
	task model.Task
}

func (v *T) Task() model.Task { return v.task }
func (v *T) String() string   { return fmt.Sprintf("T(%s)", v.task.ID()) }
func (*T) variable() {}
func (*T) applicationVariable() {}

// DTT encodes that the dependency between two tasks is active.
type DTT struct {
	source model.Task
	dest   model.Task
}

func (v *DTT) SourceTask() model.Task      { return v.source }
func (v *DTT) DestinationTask() model.Task { return v.dest }
func (v *DTT) String() string {
	return fmt.Sprintf("DTT(%s,%s)", v.source.ID(), v.dest.ID())
}
func (*DTT) variable() {}
func (*DTT) applicationVariable() {}

// CommunicationFlow is one source-to-destination flow of a
// communication: the pair of the communication's ingoing and outgoing
// dependency variables. It is not itself a decision variable but the
// payload of the per-flow routing variables.
type CommunicationFlow struct {
	sourceDTT *DTT
	destDTT   *DTT
}

func (f *CommunicationFlow) SourceDTT() *DTT      { return f.sourceDTT }
func (f *CommunicationFlow) DestinationDTT() *DTT { return f.destDTT }
func (f *CommunicationFlow) String() string {
	return fmt.Sprintf("F(%s,%s)", f.sourceDTT, f.destDTT)
}

// CLRR encodes that a communication uses a link in a given direction.
type CLRR struct {
	communication model.Task
	link          *model.Link
	source        *model.Resource
	dest          *model.Resource
}

func (v *CLRR) Communication() model.Task { return v.communication }
func (v *CLRR) Link() *model.Link         { return v.link }
func (v *CLRR) Source() *model.Resource   { return v.source }
func (v *CLRR) Dest() *model.Resource     { return v.dest }
func (v *CLRR) String() string {
	return fmt.Sprintf("CLRR(%s,%s,%s,%s)", v.communication.ID(), v.link.ID(), v.source.ID(), v.dest.ID())
}
func (*CLRR) variable() {}
func (*CLRR) routingVariable() {}

// CR encodes that a communication visits a resource.
type CR struct {
	communication model.Task
	resource      *model.Resource
}

func (v *CR) Communication() model.Task  { return v.communication }
func (v *CR) Resource() *model.Resource  { return v.resource }
func (v *CR) String() string {
	return fmt.Sprintf("CR(%s,%s)", v.communication.ID(), v.resource.ID())
}
func (*CR) variable() {}
func (*CR) routingVariable() {}

// DDLRR encodes that a communication flow uses a link in a given
// direction.
type DDLRR struct {
	flow   *CommunicationFlow
	link   *model.Link
	source *model.Resource
	dest   *model.Resource
}

func (v *DDLRR) Flow() *CommunicationFlow { return v.flow }
func (v *DDLRR) Link() *model.Link        { return v.link }
func (v *DDLRR) Source() *model.Resource  { return v.source }
func (v *DDLRR) Dest() *model.Resource    { return v.dest }
func (v *DDLRR) String() string {
	return fmt.Sprintf("DDLRR(%s,%s,%s,%s)", v.flow, v.link.ID(), v.source.ID(), v.dest.ID())
}
func (*DDLRR) variable() {}
func (*DDLRR) routingVariable() {}

// DDR encodes that a communication flow visits a resource.
type DDR struct {
	flow     *CommunicationFlow
	resource *model.Resource
}

func (v *DDR) Flow() *CommunicationFlow { return v.flow }
func (v *DDR) Resource() *model.Resource { return v.resource }
func (v *DDR) String() string {
	return fmt.Sprintf("DDR(%s,%s)", v.flow, v.resource.ID())
}
func (*DDR) variable() {}
func (*DDR) routingVariable() {}

// DDsR encodes that a resource is the source end node of a flow's
// routing.
type DDsR struct {
	flow     *CommunicationFlow
	resource *model.Resource
}

func (v *DDsR) Flow() *CommunicationFlow  { return v.flow }
func (v *DDsR) Resource() *model.Resource { return v.resource }
func (v *DDsR) String() string {
	return fmt.Sprintf("DDsR(%s,%s)", v.flow, v.resource.ID())
}
func (*DDsR) variable() {}
func (*DDsR) routingVariable() {}

// DDdR encodes that a resource is the destination end node of a
// flow's routing.
type DDdR struct {
	flow     *CommunicationFlow
	resource *model.Resource
}

func (v *DDdR) Flow() *CommunicationFlow  { return v.flow }
func (v *DDdR) Resource() *model.Resource { return v.resource }
func (v *DDdR) String() string {
	return fmt.Sprintf("DDdR(%s,%s)", v.flow, v.resource.ID())
}
func (*DDdR) variable() {}
func (*DDdR) routingVariable() {}

// RO encodes a level ordering between two resources of a
// communication's routing, used to break directed cycles: RO(c,u,v)
// is true when u precedes v.
type RO struct {
	communication model.Task
	first         *model.Resource
	second        *model.Resource
}

func (v *RO) Communication() model.Task { return v.communication }
func (v *RO) First() *model.Resource    { return v.first }
func (v *RO) Second() *model.Resource   { return v.second }
func (v *RO) String() string {
	return fmt.Sprintf("RO(%s,%s,%s)", v.communication.ID(), v.first.ID(), v.second.ID())
}
func (*RO) variable() {}
func (*RO) routingVariable() {}
