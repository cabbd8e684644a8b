package encoding

import (
	"github.com/pkg/errors"

	"github.com/JoachimFalk/dse-opendse/pkg/encoding/variables"
	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

// Implementation decodes a satisfying assignment back into a concrete
// specification: only the selected mappings survive, and every
// communication's routing is restricted to the resources and links
// its message actually uses.
func Implementation(spec *model.Specification, enc *Encoding, assignment map[variables.Variable]bool) (*model.Specification, error) {
	impl, err := model.CopySpecification(spec)
	if err != nil {
		return nil, errors.Wrap(err, "copying specification for implementation")
	}
	store := enc.Store

	var drop []*model.Mapping
	for _, m := range spec.Mappings().All() {
		if assignment[store.VarM(m)] {
			continue
		}
		if implMapping, ok := impl.Mappings().Mapping(m.ID()); ok {
			drop = append(drop, implMapping)
		}
	}
	impl.Mappings().RemoveAll(drop)

	for _, c := range model.FilterCommunications(spec.Application().Vertices()) {
		routing := spec.Routings().Get(c)
		implC, ok := impl.Application().Vertex(c.ID())
		if !ok {
			continue
		}
		implRouting := impl.Routings().Get(implC)

		var dropResources []*model.Resource
		for _, r := range routing.Vertices() {
			if assignment[store.VarCR(c, r)] {
				continue
			}
			if implR, ok := implRouting.Vertex(r.ID()); ok {
				dropResources = append(dropResources, implR)
			}
		}
		implRouting.RemoveVertices(dropResources)

		var dropLinks []*model.Link
		for _, l := range routing.Edges() {
			src, dst, _ := routing.Endpoints(l)
			used := assignment[store.VarCLRR(c, l, src, dst)]
			if routing.KindOf(l) == model.Undirected {
				used = used || assignment[store.VarCLRR(c, l, dst, src)]
			}
			if used {
				continue
			}
			if implL, ok := implRouting.Edge(l.ID()); ok {
				dropLinks = append(dropLinks, implL)
			}
		}
		for _, l := range dropLinks {
			implRouting.RemoveEdge(l)
		}
	}

	return impl, nil
}
