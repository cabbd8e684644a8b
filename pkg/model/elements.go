package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// Task is the sealed vertex type of the application graph. Its
// concrete variants are *Process (a computation) and *Communication
// (a message between computations).
type Task interface {
	Element
	isTask()
}

// Process is a computation task of the application.
type Process struct {
	element
}

// NewProcess constructs a process task.
func NewProcess(id string) *Process {
	return &Process{newElement(id)}
}

func (*Process) isTask() {}

func (t *Process) String() string { return t.ID() }

// Communication is a message task of the application. It connects at
// least one predecessor process with at least one successor process.
type Communication struct {
	element
}

// NewCommunication constructs a communication task.
func NewCommunication(id string) *Communication {
	return &Communication{newElement(id)}
}

func (*Communication) isTask() {}

func (*Communication) isCommunication() {}

func (t *Communication) String() string { return t.ID() }

// IsCommunication reports whether the element is a communication task.
func IsCommunication(e Element) bool {
	_, ok := e.(interface{ isCommunication() })
	return ok
}

// IsProcess reports whether the task is a process.
func IsProcess(t Task) bool {
	return !IsCommunication(t)
}

// Resource is a processing element of the architecture.
type Resource struct {
	element
}

// NewResource constructs a resource.
func NewResource(id string) *Resource {
	return &Resource{newElement(id)}
}

// NewResourceFrom constructs a resource derived from a parent
// resource. The derived resource shares the parent's identifier and
// inherits its attributes.
func NewResourceFrom(parent *Resource) *Resource {
	return &Resource{derivedElement(parent)}
}

func (r *Resource) String() string { return r.ID() }

// Link connects two resources of the architecture. A link is directed
// or undirected depending on how it was added to the graph.
type Link struct {
	element
}

// NewLink constructs a link.
func NewLink(id string) *Link {
	return &Link{newElement(id)}
}

// NewLinkFrom constructs a link derived from a parent link.
func NewLinkFrom(parent *Link) *Link {
	return &Link{derivedElement(parent)}
}

func (l *Link) String() string { return l.ID() }

// Dependency is a directed edge of the application graph.
type Dependency struct {
	element
}

// NewDependency constructs a dependency.
func NewDependency(id string) *Dependency {
	return &Dependency{newElement(id)}
}

func (d *Dependency) String() string { return d.ID() }

// Mapping binds a task to a resource it may be implemented on.
type Mapping struct {
	element
	source Task
	target *Resource
}

// NewMapping constructs a mapping.
func NewMapping(id string, source Task, target *Resource) *Mapping {
	return &Mapping{element: newElement(id), source: source, target: target}
}

// Source returns the mapped task.
func (m *Mapping) Source() Task { return m.source }

// Target returns the resource the task is mapped onto.
func (m *Mapping) Target() *Resource { return m.target }

// SetSource rebinds the mapped task.
func (m *Mapping) SetSource(source Task) { m.source = source }

// SetTarget rebinds the target resource.
func (m *Mapping) SetTarget(target *Resource) { m.target = target }

func (m *Mapping) String() string {
	return fmt.Sprintf("%s: %s -> %s", m.ID(), m.source.ID(), m.target.ID())
}

// Copy constructs a fresh element of the same concrete kind, derived
// from e so that the copy inherits its identifier and attributes. A
// *Mapping cannot be copied without rebinding; use CopyMapping.
func Copy(e Element) (Element, error) {
	switch e.(type) {
	case *Process:
		return &Process{derivedElement(e)}, nil
	case *Communication:
		return &Communication{derivedElement(e)}, nil
	case *Resource:
		return &Resource{derivedElement(e)}, nil
	case *Link:
		return &Link{derivedElement(e)}, nil
	case *Dependency:
		return &Dependency{derivedElement(e)}, nil
	default:
		return nil, errors.Errorf("cannot copy element %q of kind %T", e.ID(), e)
	}
}

// CopyMapping constructs a fresh mapping derived from m, rebound to
// the given source and target.
func CopyMapping(m *Mapping, source Task, target *Resource) *Mapping {
	return &Mapping{element: derivedElement(m), source: source, target: target}
}
