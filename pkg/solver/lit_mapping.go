package solver

import (
	"fmt"
	"strings"

	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/JoachimFalk/dse-opendse/pkg/encoding/constraints"
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/variables"
)

type inconsistentLitMapping []error

func (inconsistentLitMapping) Error() string {
	return "internal solver failure"
}

// litMapping performs translation between the input and output types
// of Solve (pseudo-Boolean constraints, variables, models) and the
// literals that appear in the SAT formula.
type litMapping struct {
	input     []*constraints.Constraint
	inorder   []variables.Variable
	lits      map[variables.Variable]z.Lit
	selectors map[z.Lit]*constraints.Constraint
	c         *logic.C
	errs      inconsistentLitMapping
}

// newLitMapping returns a new litMapping with its state initialized
// based on the provided constraint set: every variable appearing in a
// term is assigned a literal, in first-appearance order.
func newLitMapping(input []*constraints.Constraint) *litMapping {
	d := &litMapping{
		input:     input,
		lits:      map[variables.Variable]z.Lit{},
		selectors: map[z.Lit]*constraints.Constraint{},
		c:         logic.NewCCap(len(input)),
	}
	for _, con := range input {
		for _, t := range con.Terms() {
			v := t.Literal.Variable()
			if _, ok := d.lits[v]; !ok {
				d.lits[v] = d.c.Lit()
				d.inorder = append(d.inorder, v)
			}
		}
	}
	return d
}

// LitOf returns the positive literal corresponding to the variable.
func (d *litMapping) LitOf(v variables.Variable) z.Lit {
	if m, ok := d.lits[v]; ok {
		return m
	}
	d.errs = append(d.errs, fmt.Errorf("variable %s referenced but not provided", v))
	return z.LitNull
}

// Variables returns the variables of the input constraints in
// first-appearance order.
func (d *litMapping) Variables() []variables.Variable {
	return d.inorder
}

// encode translates a pseudo-Boolean constraint into a selector
// literal of the embedded circuit that is true iff the constraint
// holds. Coefficients are lowered to cardinality form: negative
// coefficients are flipped onto the negated literal, and coefficients
// greater than one repeat their literal in the sorting network input.
func (d *litMapping) encode(con *constraints.Constraint) z.Lit {
	var ms []z.Lit
	rhs := con.RHS()
	for _, t := range con.Terms() {
		m := d.LitOf(t.Literal.Variable())
		if m == z.LitNull {
			return z.LitNull
		}
		if !t.Literal.Positive() {
			m = m.Not()
		}
		coefficient := t.Coefficient
		if coefficient < 0 {
			m = m.Not()
			rhs -= coefficient
			coefficient = -coefficient
		}
		for i := 0; i < coefficient; i++ {
			ms = append(ms, m)
		}
	}
	cs := d.c.CardSort(ms)
	switch con.Operator() {
	case constraints.LE:
		return cs.Leq(rhs)
	case constraints.GE:
		return cs.Geq(rhs)
	default:
		return d.c.Ands(cs.Leq(rhs), cs.Geq(rhs))
	}
}

// AddConstraints encodes the input constraints and teaches the
// resulting circuit to the solver g. Selector literals are recorded
// so that failed assumptions can be traced back to constraints.
func (d *litMapping) AddConstraints(g inter.S) {
	for _, con := range d.input {
		m := d.encode(con)
		if m == z.LitNull {
			continue
		}
		d.selectors[m] = con
	}
	d.c.ToCnf(g)
}

// AssumeConstraints assumes every constraint selector, so that an
// unsatisfiable outcome yields the blamed constraints via Why.
func (d *litMapping) AssumeConstraints(s inter.S) {
	for m := range d.selectors {
		s.Assume(m)
	}
}

// Conflicts returns the constraints behind the failed assumptions of
// an unsatisfiable solve.
func (d *litMapping) Conflicts(g inter.Assumable) []*constraints.Constraint {
	whys := g.Why(nil)
	cs := make([]*constraints.Constraint, 0, len(whys))
	for _, why := range whys {
		if con, ok := d.selectors[why]; ok {
			cs = append(cs, con)
		}
	}
	return cs
}

// Model reads the assignment of every input variable from a
// satisfiable solver state.
func (d *litMapping) Model(g inter.S) Model {
	m := make(Model, len(d.inorder))
	for _, v := range d.inorder {
		m[v] = g.Value(d.LitOf(v))
	}
	return m
}

// Error returns an aggregation of all errors encountered during a
// litMapping's lifetime, or nil. A non-nil return value likely
// indicates a bug in the encoder or the solver.
func (d *litMapping) Error() error {
	if len(d.errs) == 0 {
		return nil
	}
	s := make([]string, len(d.errs))
	for i, err := range d.errs {
		s[i] = err.Error()
	}
	return fmt.Errorf("%d errors encountered: %s", len(s), strings.Join(s, ", "))
}
