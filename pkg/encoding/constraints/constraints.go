// Package constraints provides the linear pseudo-Boolean constraint
// representation emitted by the encoder, together with the standard
// gate linearizations the constraint generators are built from.
package constraints

import (
	"fmt"
	"strings"

	"github.com/JoachimFalk/dse-opendse/pkg/encoding/variables"
)

// Operator relates the weighted literal sum of a constraint to its
// right-hand side.
type Operator int

const (
	// EQ constrains the sum to equal the right-hand side.
	EQ Operator = iota
	// LE constrains the sum to be at most the right-hand side.
	LE
	// GE constrains the sum to be at least the right-hand side.
	GE
)

func (op Operator) String() string {
	switch op {
	case LE:
		return "<="
	case GE:
		return ">="
	default:
		return "="
	}
}

// Literal is a decision variable or its negation.
type Literal struct {
	variable variables.Variable
	positive bool
}

// P returns the positive literal of a variable.
func P(v variables.Variable) Literal {
	return Literal{variable: v, positive: true}
}

// N returns the negative literal of a variable.
func N(v variables.Variable) Literal {
	return Literal{variable: v, positive: false}
}

// Variable returns the literal's variable.
func (l Literal) Variable() variables.Variable { return l.variable }

// Positive reports whether the literal is the positive phase.
func (l Literal) Positive() bool { return l.positive }

// Negate returns the literal with the opposite phase.
func (l Literal) Negate() Literal {
	return Literal{variable: l.variable, positive: !l.positive}
}

func (l Literal) String() string {
	if l.positive {
		return l.variable.String()
	}
	return "~" + l.variable.String()
}

// Term is a weighted literal.
type Term struct {
	Coefficient int
	Literal     Literal
}

// Constraint is a linear pseudo-Boolean constraint
// sum(c_i * l_i) op rhs.
type Constraint struct {
	op    Operator
	rhs   int
	terms []Term
}

// New constructs an empty constraint.
func New(op Operator, rhs int) *Constraint {
	return &Constraint{op: op, rhs: rhs}
}

// Add appends a term with coefficient 1.
func (c *Constraint) Add(l Literal) *Constraint {
	return c.AddTerm(1, l)
}

// AddTerm appends a weighted term.
func (c *Constraint) AddTerm(coefficient int, l Literal) *Constraint {
	c.terms = append(c.terms, Term{Coefficient: coefficient, Literal: l})
	return c
}

// Operator returns the constraint's relational operator.
func (c *Constraint) Operator() Operator { return c.op }

// RHS returns the right-hand side.
func (c *Constraint) RHS() int { return c.rhs }

// Terms returns the terms in emission order.
func (c *Constraint) Terms() []Term {
	out := make([]Term, len(c.terms))
	copy(out, c.terms)
	return out
}

func (c *Constraint) String() string {
	parts := make([]string, len(c.terms))
	for i, t := range c.terms {
		parts[i] = fmt.Sprintf("%+d %s", t.Coefficient, t.Literal)
	}
	return fmt.Sprintf("%s %s %d", strings.Join(parts, " "), c.op, c.rhs)
}

// SetTo forces a variable to the given value.
func SetTo(v variables.Variable, value bool) *Constraint {
	if value {
		return New(EQ, 1).Add(P(v))
	}
	return New(EQ, 0).Add(P(v))
}

// Implies emits "if antecedent then consequent":
// consequent - antecedent >= 0.
func Implies(antecedent, consequent variables.Variable) *Constraint {
	return New(GE, 0).Add(P(consequent)).AddTerm(-1, P(antecedent))
}

// Equal constrains two variables to take the same value.
func Equal(a, b variables.Variable) []*Constraint {
	return []*Constraint{Implies(a, b), Implies(b, a)}
}

// And emits the linearization of result = AND(conditions):
// result implies every condition, and all conditions together imply
// result.
func And(result variables.Variable, conditions ...variables.Variable) []*Constraint {
	if len(conditions) == 0 {
		return []*Constraint{SetTo(result, true)}
	}
	out := make([]*Constraint, 0, len(conditions)+1)
	for _, cond := range conditions {
		out = append(out, Implies(result, cond))
	}
	all := New(LE, len(conditions)-1)
	for _, cond := range conditions {
		all.Add(P(cond))
	}
	all.AddTerm(-len(conditions), P(result))
	out = append(out, all)
	return out
}

// Or emits the linearization of result = OR(operands): every operand
// implies result, and result implies at least one operand.
func Or(result variables.Variable, operands ...variables.Variable) []*Constraint {
	if len(operands) == 0 {
		return []*Constraint{SetTo(result, false)}
	}
	out := make([]*Constraint, 0, len(operands)+1)
	for _, op := range operands {
		out = append(out, Implies(op, result))
	}
	some := New(GE, 0)
	for _, op := range operands {
		some.Add(P(op))
	}
	some.AddTerm(-1, P(result))
	out = append(out, some)
	return out
}
