// Package parameter provides the typed parameter values that may be
// stored in element attributes: continuous ranges, discrete selections
// with an optional cross reference, and grouped unique ids.
package parameter

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDouble renders a float in the wire text form: the shortest
// representation of strconv's 'g' format, with a trailing ".0" added
// when that form has neither a decimal point nor an exponent (3 becomes
// "3.0", while 1e6 stays "1e+06"). Either way the text survives a
// parse-and-print round trip unchanged.
func FormatDouble(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// FormatValue renders a parameter constituent in the wire text form.
func FormatValue(v interface{}) string {
	if f, ok := v.(float64); ok {
		return FormatDouble(f)
	}
	return fmt.Sprintf("%v", v)
}

// Parameter is implemented by all typed parameter values.
type Parameter interface {
	// Value returns the current (default) value of the parameter.
	Value() interface{}
	fmt.Stringer
}

// Range is a continuous parameter with lower and upper bounds and a
// granularity.
type Range struct {
	value       float64
	lowerBound  float64
	upperBound  float64
	granularity float64
}

// NewRange constructs a Range with granularity 1.
func NewRange(value, lowerBound, upperBound float64) *Range {
	return NewRangeGranularity(value, lowerBound, upperBound, 1)
}

// NewRangeGranularity constructs a Range.
func NewRangeGranularity(value, lowerBound, upperBound, granularity float64) *Range {
	return &Range{
		value:       value,
		lowerBound:  lowerBound,
		upperBound:  upperBound,
		granularity: granularity,
	}
}

func (p *Range) Value() interface{} { return p.value }

// Float returns the current value.
func (p *Range) Float() float64 { return p.value }

// LowerBound returns the lower bound.
func (p *Range) LowerBound() float64 { return p.lowerBound }

// UpperBound returns the upper bound.
func (p *Range) UpperBound() float64 { return p.upperBound }

// Granularity returns the granularity of the range.
func (p *Range) Granularity() float64 { return p.granularity }

func (p *Range) String() string {
	return fmt.Sprintf("%s %s %s %s", FormatDouble(p.value), FormatDouble(p.lowerBound),
		FormatDouble(p.upperBound), FormatDouble(p.granularity))
}

// Select is a discrete choice among a fixed list of values. A Select
// may carry a reference to a parameter of another element that the
// choice is coupled to.
type Select struct {
	value     interface{}
	elements  []interface{}
	reference string
}

// NewSelect constructs a Select without a reference.
func NewSelect(value interface{}, elements []interface{}) *Select {
	return NewSelectRef(value, elements, "")
}

// NewSelectRef constructs a Select with a reference.
func NewSelectRef(value interface{}, elements []interface{}, reference string) *Select {
	return &Select{value: value, elements: elements, reference: reference}
}

func (p *Select) Value() interface{} { return p.value }

// Elements returns the list of selectable values.
func (p *Select) Elements() []interface{} { return p.elements }

// Reference returns the reference name, or "" if the selection is not
// coupled to another parameter.
func (p *Select) Reference() string { return p.reference }

func (p *Select) String() string {
	parts := make([]string, len(p.elements))
	for i, e := range p.elements {
		parts[i] = FormatValue(e)
	}
	s := fmt.Sprintf("%s (%s)", FormatValue(p.value), strings.Join(parts, ","))
	if p.reference != "" {
		s += " " + p.reference
	}
	return s
}

// UniqueID is a discrete value that is logically unique among all
// UniqueID parameters sharing the same identifier.
type UniqueID struct {
	value      int
	identifier string
}

// NewUniqueID constructs a UniqueID.
func NewUniqueID(value int, identifier string) *UniqueID {
	return &UniqueID{value: value, identifier: identifier}
}

func (p *UniqueID) Value() interface{} { return p.value }

// Int returns the current value.
func (p *UniqueID) Int() int { return p.value }

// Identifier returns the group identifier of the unique id.
func (p *UniqueID) Identifier() string { return p.identifier }

func (p *UniqueID) String() string {
	return fmt.Sprintf("%d [UID:%s]", p.value, p.identifier)
}
