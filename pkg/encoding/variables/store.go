package variables

import (
	"github.com/mitchellh/hashstructure"

	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

// payload identifies a variable structurally: the family tag plus the
// identifiers of the domain entities it is parameterized by.
type payload struct {
	Kind   string
	Fields []string
}

func (p payload) equal(o payload) bool {
	if p.Kind != o.Kind || len(p.Fields) != len(o.Fields) {
		return false
	}
	for i := range p.Fields {
		if p.Fields[i] != o.Fields[i] {
			return false
		}
	}
	return true
}

type entry struct {
	key      payload
	variable interface{}
}

// Store interns variables by structural hash of their payload. A
// Store is not safe for concurrent use; callers serialize access, and
// an encoding pass owns its own Store.
type Store struct {
	buckets map[uint64][]entry
}

// NewStore constructs an empty variable store.
func NewStore() *Store {
	return &Store{buckets: map[uint64][]entry{}}
}

func (s *Store) intern(key payload, build func() interface{}) interface{} {
	hash, err := hashstructure.Hash(key, nil)
	if err != nil {
		// Payloads are plain structs of strings; hashing cannot fail.
		panic(err)
	}
	for _, e := range s.buckets[hash] {
		if e.key.equal(key) {
			return e.variable
		}
	}
	v := build()
	s.buckets[hash] = append(s.buckets[hash], entry{key: key, variable: v})
	return v
}

// VarM returns the selection variable of a mapping.
func (s *Store) VarM(m *model.Mapping) *M {
	key := payload{Kind: "M", Fields: []string{m.ID()}}
	return s.intern(key, func() interface{} { return &M{mapping: m} }).(*M)
}

// VarT returns the activity variable of a task.
func (s *Store) VarT(t model.Task) *T {
	key := payload{Kind: "T", Fields: []string{t.ID()}}
	return s.intern(key, func() interface{} { return &T{task: t} }).(*T)
}

// VarDTT returns the activation variable of the dependency between
// two tasks.
func (s *Store) VarDTT(source, dest model.Task) *DTT {
	key := payload{Kind: "DTT", Fields: []string{source.ID(), dest.ID()}}
	return s.intern(key, func() interface{} { return &DTT{source: source, dest: dest} }).(*DTT)
}

// Flow returns the communication flow over the given dependency
// variables.
func (s *Store) Flow(sourceDTT, destDTT *DTT) *CommunicationFlow {
	key := payload{Kind: "F", Fields: []string{
		sourceDTT.SourceTask().ID(), sourceDTT.DestinationTask().ID(),
		destDTT.SourceTask().ID(), destDTT.DestinationTask().ID(),
	}}
	return s.intern(key, func() interface{} {
		return &CommunicationFlow{sourceDTT: sourceDTT, destDTT: destDTT}
	}).(*CommunicationFlow)
}

// VarCLRR returns the variable encoding that the communication uses
// the link from source to dest.
func (s *Store) VarCLRR(c model.Task, l *model.Link, source, dest *model.Resource) *CLRR {
	key := payload{Kind: "CLRR", Fields: []string{c.ID(), l.ID(), source.ID(), dest.ID()}}
	return s.intern(key, func() interface{} {
		return &CLRR{communication: c, link: l, source: source, dest: dest}
	}).(*CLRR)
}

// VarCR returns the variable encoding that the communication visits
// the resource.
func (s *Store) VarCR(c model.Task, r *model.Resource) *CR {
	key := payload{Kind: "CR", Fields: []string{c.ID(), r.ID()}}
	return s.intern(key, func() interface{} { return &CR{communication: c, resource: r} }).(*CR)
}

// VarDDLRR returns the variable encoding that the flow uses the link
// from source to dest.
func (s *Store) VarDDLRR(f *CommunicationFlow, l *model.Link, source, dest *model.Resource) *DDLRR {
	key := payload{Kind: "DDLRR", Fields: []string{flowKey(f), l.ID(), source.ID(), dest.ID()}}
	return s.intern(key, func() interface{} {
		return &DDLRR{flow: f, link: l, source: source, dest: dest}
	}).(*DDLRR)
}

// VarDDR returns the variable encoding that the flow visits the
// resource.
func (s *Store) VarDDR(f *CommunicationFlow, r *model.Resource) *DDR {
	key := payload{Kind: "DDR", Fields: []string{flowKey(f), r.ID()}}
	return s.intern(key, func() interface{} { return &DDR{flow: f, resource: r} }).(*DDR)
}

// VarDDsR returns the variable encoding that the resource is the
// source end node of the flow.
func (s *Store) VarDDsR(f *CommunicationFlow, r *model.Resource) *DDsR {
	key := payload{Kind: "DDsR", Fields: []string{flowKey(f), r.ID()}}
	return s.intern(key, func() interface{} { return &DDsR{flow: f, resource: r} }).(*DDsR)
}

// VarDDdR returns the variable encoding that the resource is the
// destination end node of the flow.
func (s *Store) VarDDdR(f *CommunicationFlow, r *model.Resource) *DDdR {
	key := payload{Kind: "DDdR", Fields: []string{flowKey(f), r.ID()}}
	return s.intern(key, func() interface{} { return &DDdR{flow: f, resource: r} }).(*DDdR)
}

// VarRO returns the level-order variable between two resources of the
// communication's routing.
func (s *Store) VarRO(c model.Task, first, second *model.Resource) *RO {
	key := payload{Kind: "RO", Fields: []string{c.ID(), first.ID(), second.ID()}}
	return s.intern(key, func() interface{} {
		return &RO{communication: c, first: first, second: second}
	}).(*RO)
}

func flowKey(f *CommunicationFlow) string {
	return f.SourceDTT().SourceTask().ID() + ">" + f.SourceDTT().DestinationTask().ID() +
		">" + f.DestinationDTT().DestinationTask().ID()
}
