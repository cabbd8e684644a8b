// Package solver decides the pseudo-Boolean constraint systems
// produced by the encoder. It lowers constraints onto a SAT solver
// through sorting-network cardinality circuits and reports models
// over the encoder's decision variables.
package solver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-air/gini"

	"github.com/JoachimFalk/dse-opendse/pkg/encoding/constraints"
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/variables"
)

// Model assigns a truth value to every variable of the input
// constraint system.
type Model map[variables.Variable]bool

// Incomplete is returned when solving was cancelled before an outcome
// was reached.
var Incomplete = errors.New("cancelled before a solution could be found")

// NotSatisfiable is an error composed of constraints sufficient to
// make a solution impossible.
type NotSatisfiable []*constraints.Constraint

func (e NotSatisfiable) Error() string {
	const msg = "constraints not satisfiable"
	if len(e) == 0 {
		return msg
	}
	s := make([]string, len(e))
	for i, con := range e {
		s[i] = con.String()
	}
	return fmt.Sprintf("%s: %s", msg, strings.Join(s, ", "))
}

// Solver decides a fixed constraint system.
type Solver interface {
	Solve(context.Context) (Model, error)
}

const (
	satisfiable   = 1
	unsatisfiable = -1
)

type solver struct {
	g    *gini.Gini
	lits *litMapping
}

// Solve returns a model of the input constraint system, or
// NotSatisfiable listing blamed constraints when no model exists.
func (s *solver) Solve(ctx context.Context) (result Model, err error) {
	defer func() {
		// This likely indicates a bug, so discard whatever return
		// values were produced.
		if derr := s.lits.Error(); derr != nil {
			result = nil
			err = derr
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, Incomplete
	}

	s.lits.AddConstraints(s.g)
	s.lits.AssumeConstraints(s.g)

	switch s.g.Solve() {
	case satisfiable:
		return s.lits.Model(s.g), nil
	case unsatisfiable:
		return nil, NotSatisfiable(s.lits.Conflicts(s.g))
	}
	return nil, Incomplete
}

// New constructs a Solver from the given options.
func New(options ...Option) (Solver, error) {
	s := solver{g: gini.New()}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// Option configures a Solver under construction.
type Option func(s *solver) error

// WithInput sets the constraint system to decide.
func WithInput(input []*constraints.Constraint) Option {
	return func(s *solver) error {
		s.lits = newLitMapping(input)
		return nil
	}
}

var defaults = []Option{
	func(s *solver) error {
		if s.lits == nil {
			s.lits = newLitMapping(nil)
		}
		return nil
	},
}
