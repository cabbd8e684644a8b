// Package encoding translates a specification into a pseudo-Boolean
// constraint system whose models correspond to valid implementations.
package encoding

import (
	"github.com/sirupsen/logrus"

	"github.com/JoachimFalk/dse-opendse/pkg/encoding/constraints"
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/routing"
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/variables"
	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

// Encoding is the result of encoding a specification: the constraint
// system together with the variable store and the variable groups a
// caller needs to interpret models.
type Encoding struct {
	Store                *variables.Store
	Constraints          []*constraints.Constraint
	MappingVariables     []*variables.M
	ApplicationVariables []variables.ApplicationVariable
	CommunicationFlows   map[string][]*variables.CommunicationFlow
}

// SpecificationEncoder walks a specification and emits the mapping,
// activity, dependency, and routing constraints. It does not
// interpret the constraint set; deciding it is the solver's job.
type SpecificationEncoder struct {
	routing *routing.Encoder
	logger  logrus.FieldLogger
}

// Option configures a SpecificationEncoder under construction.
type Option func(e *SpecificationEncoder)

// WithRoutingEncoder replaces the routing encoder assembly.
func WithRoutingEncoder(r *routing.Encoder) Option {
	return func(e *SpecificationEncoder) {
		e.routing = r
	}
}

// WithLogger sets the logger used for encoding progress.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(e *SpecificationEncoder) {
		e.logger = logger
	}
}

// WithAdditionalConstraints passes extra routing constraints through
// verbatim for every communication.
func WithAdditionalConstraints(cs []*constraints.Constraint) Option {
	return func(e *SpecificationEncoder) {
		e.routing = routing.NewEncoder(
			routing.OneDirectionEncoderDefault{},
			routing.CycleBreakEncoderOrder{},
			routing.HierarchyEncoderDefault{},
			routing.ProxyEncoderDefault{},
			routing.NewFlowRoutingManager(),
			routing.AdditionalConstraintsEncoderVerbatim{Constraints: cs},
		)
	}
}

// New constructs a SpecificationEncoder.
func New(options ...Option) *SpecificationEncoder {
	e := &SpecificationEncoder{}
	for _, option := range options {
		option(e)
	}
	if e.routing == nil {
		e.routing = routing.NewDefaultEncoder()
	}
	if e.logger == nil {
		quiet := logrus.New()
		quiet.SetLevel(logrus.WarnLevel)
		e.logger = quiet
	}
	return e
}

// Encode emits the constraint system of the specification. The
// specification must not be mutated until the returned encoding is no
// longer used.
func (e *SpecificationEncoder) Encode(spec *model.Specification) (*Encoding, error) {
	store := variables.NewStore()
	enc := &Encoding{
		Store:              store,
		CommunicationFlows: map[string][]*variables.CommunicationFlow{},
	}

	application := spec.Application()
	tasks := application.Vertices()

	// Every task is active. An active process occupies exactly one of
	// its mapping targets; communication activity additionally drives
	// the routing hierarchy below.
	for _, t := range tasks {
		tVar := store.VarT(t)
		if model.IsProcess(t) {
			enc.ApplicationVariables = append(enc.ApplicationVariables, tVar)
		}
		enc.Constraints = append(enc.Constraints, constraints.SetTo(tVar, true))
	}
	for _, t := range model.FilterProcesses(tasks) {
		exclusivity := constraints.New(constraints.EQ, 0).
			AddTerm(-1, constraints.P(store.VarT(t)))
		for _, m := range spec.Mappings().Get(t) {
			exclusivity.Add(constraints.P(store.VarM(m)))
		}
		enc.Constraints = append(enc.Constraints, exclusivity)
	}

	for _, m := range spec.Mappings().All() {
		enc.MappingVariables = append(enc.MappingVariables, store.VarM(m))
	}

	// A dependency is active iff both of its endpoint tasks are.
	seenDTT := map[*variables.DTT]struct{}{}
	for _, d := range application.Edges() {
		src, dst, _ := application.Endpoints(d)
		dtt := store.VarDTT(src, dst)
		if _, ok := seenDTT[dtt]; ok {
			continue
		}
		seenDTT[dtt] = struct{}{}
		enc.ApplicationVariables = append(enc.ApplicationVariables, dtt)
		enc.Constraints = append(enc.Constraints, constraints.And(dtt, store.VarT(src), store.VarT(dst))...)
	}

	for _, c := range model.FilterCommunications(tasks) {
		commVar := store.VarT(c)
		enc.ApplicationVariables = append(enc.ApplicationVariables, commVar)

		flows := e.flowsOf(store, application, c)
		enc.CommunicationFlows[c.ID()] = flows

		e.logger.WithFields(logrus.Fields{
			"communication": c.ID(),
			"flows":         len(flows),
		}).Debug("encoding communication routing")

		cs, err := e.routing.ToConstraints(store, commVar, flows, spec.Routings().Get(c),
			enc.MappingVariables, enc.ApplicationVariables)
		if err != nil {
			return nil, err
		}
		enc.Constraints = append(enc.Constraints, cs...)
	}

	return enc, nil
}

// flowsOf builds one communication flow per (predecessor, successor)
// task pair of the communication.
func (e *SpecificationEncoder) flowsOf(store *variables.Store, application *model.Application, c model.Task) []*variables.CommunicationFlow {
	var flows []*variables.CommunicationFlow
	for _, pred := range application.Predecessors(c) {
		for _, succ := range application.Successors(c) {
			flows = append(flows, store.Flow(store.VarDTT(pred, c), store.VarDTT(c, succ)))
		}
	}
	return flows
}
