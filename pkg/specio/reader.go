package specio

import (
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

// Reader reads a specification from its XML wire format.
type Reader struct {
	logger logrus.FieldLogger
}

// ReaderOption configures a Reader under construction.
type ReaderOption func(*Reader)

// WithReaderLogger sets the logger of the reader.
func WithReaderLogger(logger logrus.FieldLogger) ReaderOption {
	return func(r *Reader) {
		r.logger = logger
	}
}

// NewReader constructs a Reader.
func NewReader(options ...ReaderOption) *Reader {
	r := &Reader{}
	for _, option := range options {
		option(r)
	}
	if r.logger == nil {
		quiet := logrus.New()
		quiet.SetLevel(logrus.WarnLevel)
		r.logger = quiet
	}
	return r
}

// readState carries the per-read element tables. Elements seen more
// than once within a namespace resolve to the same instance.
type readState struct {
	tables map[namespace]map[string]model.Element
}

func newReadState() *readState {
	return &readState{tables: map[namespace]map[string]model.Element{
		nsRoutings:     {},
		nsArchitecture: {},
		nsApplication:  {},
		nsFunction:     {},
		nsAttributes:   {},
	}}
}

// ReadFile reads a specification from a file.
func (r *Reader) ReadFile(path string) (*model.Specification, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening specification %q", path)
	}
	defer f.Close()
	return r.Read(f)
}

// Read reads a specification from an input stream.
func (r *Reader) Read(in io.Reader) (*model.Specification, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(in); err != nil {
		return nil, errors.Wrap(err, "parsing specification document")
	}
	root := doc.Root()
	if root == nil || root.Tag != "specification" {
		return nil, errors.New("document root is not <specification>")
	}
	return r.toSpecification(root)
}

func (r *Reader) toSpecification(root *etree.Element) (*model.Specification, error) {
	st := newReadState()

	eArchitecture := root.SelectElement("architecture")
	if eArchitecture == nil {
		return nil, errors.New("specification has no <architecture>")
	}
	eApplication := root.SelectElement("application")
	if eApplication == nil {
		return nil, errors.New("specification has no <application>")
	}
	eMappings := root.SelectElement("mappings")
	if eMappings == nil {
		return nil, errors.New("specification has no <mappings>")
	}

	architecture, err := r.toArchitecture(st, eArchitecture)
	if err != nil {
		return nil, err
	}
	application, err := r.toApplication(st, eApplication)
	if err != nil {
		return nil, err
	}
	mappings, err := r.toMappings(st, eMappings, architecture, application)
	if err != nil {
		return nil, err
	}

	routings := model.NewRoutings()
	if eRoutings := root.SelectElement("routings"); eRoutings != nil {
		routings, err = r.toRoutings(st, eRoutings, architecture, application)
		if err != nil {
			return nil, err
		}
	}

	spec := model.NewSpecificationRoutings(application, architecture, mappings, routings)

	if eAttributes := root.SelectElement("attributes"); eAttributes != nil {
		attrs, err := r.toAttributes(st, eAttributes, nsAttributes)
		if err != nil {
			return nil, err
		}
		model.SetAttributes(spec, attrs)
	}

	r.logger.WithFields(logrus.Fields{
		"resources": architecture.VertexCount(),
		"tasks":     application.VertexCount(),
		"mappings":  mappings.Size(),
	}).Debug("specification read")

	return spec, nil
}

func (r *Reader) toArchitecture(st *readState, eArch *etree.Element) (*model.Architecture, error) {
	architecture := model.NewArchitecture()

	for _, eResource := range eArch.SelectElements("resource") {
		node, err := r.node(st, eResource, nsArchitecture)
		if err != nil {
			return nil, err
		}
		resource, ok := node.(*model.Resource)
		if !ok {
			return nil, errors.Errorf("expected a resource in %s", fragment(eResource))
		}
		architecture.AddVertex(resource)
	}

	for _, eLink := range eArch.SelectElements("link") {
		link, source, dest, kind, err := r.link(st, eLink, nsArchitecture, architecture.Vertex)
		if err != nil {
			return nil, err
		}
		architecture.AddEdge(link, source, dest, kind)
	}
	return architecture, nil
}

func (r *Reader) toApplication(st *readState, eApp *etree.Element) (*model.Application, error) {
	application := model.NewApplication()

	for _, eTask := range eApp.SelectElements("task") {
		node, err := r.node(st, eTask, nsApplication)
		if err != nil {
			return nil, err
		}
		task, ok := node.(model.Task)
		if !ok {
			return nil, errors.Errorf("expected a task in %s", fragment(eTask))
		}
		application.AddVertex(task)
	}
	for _, eCommunication := range eApp.SelectElements("communication") {
		node, err := r.node(st, eCommunication, nsApplication)
		if err != nil {
			return nil, err
		}
		communication, ok := node.(*model.Communication)
		if !ok {
			return nil, errors.Errorf("expected a communication in %s", fragment(eCommunication))
		}
		application.AddVertex(communication)
	}

	for _, eDependency := range eApp.SelectElements("dependency") {
		id := eDependency.SelectAttrValue("id", "")
		if id == "" {
			return nil, errors.Errorf("missing id in %s", fragment(eDependency))
		}
		dependency := model.NewDependency(id)
		if err := r.applyAttributes(st, eDependency, dependency, nsApplication); err != nil {
			return nil, err
		}
		source, ok := application.Vertex(eDependency.SelectAttrValue("source", ""))
		if !ok {
			return nil, errors.Errorf("invalid source in %s", fragment(eDependency))
		}
		dest, ok := application.Vertex(eDependency.SelectAttrValue("destination", ""))
		if !ok {
			return nil, errors.Errorf("invalid destination in %s", fragment(eDependency))
		}
		application.AddDependency(dependency, source, dest)
	}

	if eFunctions := eApp.SelectElement("functions"); eFunctions != nil {
		for _, eFunction := range eFunctions.SelectElements("function") {
			anchor, ok := application.Vertex(eFunction.SelectAttrValue("anchor", ""))
			if !ok {
				return nil, errors.Errorf("unknown anchor in %s", fragment(eFunction))
			}
			function := application.Function(anchor)
			if eAttrs := eFunction.SelectElement("attributes"); eAttrs != nil {
				attrs, err := r.toAttributes(st, eAttrs, nsFunction)
				if err != nil {
					return nil, err
				}
				model.SetAttributes(function, attrs)
			}
		}
	}

	return application, nil
}

func (r *Reader) toMappings(st *readState, eMappings *etree.Element, architecture *model.Architecture, application *model.Application) (*model.Mappings, error) {
	mappings := model.NewMappings()

	for _, eMapping := range eMappings.SelectElements("mapping") {
		kind, err := classOf(eMapping)
		if err != nil {
			return nil, err
		}
		if kind != kindMapping {
			return nil, errors.Errorf("expected a mapping in %s", fragment(eMapping))
		}
		id := eMapping.SelectAttrValue("id", "")
		if id == "" {
			return nil, errors.Errorf("missing id in %s", fragment(eMapping))
		}
		sourceID := eMapping.SelectAttrValue("source", "")
		targetID := eMapping.SelectAttrValue("target", "")
		source, ok := application.Vertex(sourceID)
		if !ok {
			return nil, errors.Errorf("unknown task %q in %s", sourceID, fragment(eMapping))
		}
		target, ok := architecture.Vertex(targetID)
		if !ok {
			return nil, errors.Errorf("unknown resource %q in %s", targetID, fragment(eMapping))
		}
		mapping := model.NewMapping(id, source, target)
		if err := r.applyAttributes(st, eMapping, mapping, nsAttributes); err != nil {
			return nil, err
		}
		mappings.Add(mapping)
	}
	return mappings, nil
}

func (r *Reader) toRoutings(st *readState, eRoutings *etree.Element, architecture *model.Architecture, application *model.Application) (*model.Routings, error) {
	routings := model.NewRoutings()

	for _, eRouting := range eRoutings.SelectElements("routing") {
		sourceID := eRouting.SelectAttrValue("source", "")
		source, ok := application.Vertex(sourceID)
		if !ok {
			return nil, errors.Errorf("unknown communication %q in %s", sourceID, fragment(eRouting))
		}
		routing, err := r.toRouting(st, eRouting, architecture)
		if err != nil {
			return nil, err
		}
		routings.Set(source, routing)
	}
	return routings, nil
}

func (r *Reader) toRouting(st *readState, eRouting *etree.Element, architecture *model.Architecture) (*model.Architecture, error) {
	routing := model.NewArchitecture()

	for _, eResource := range eRouting.SelectElements("resource") {
		id := eResource.SelectAttrValue("id", "")
		var resource *model.Resource
		if parent, ok := architecture.Vertex(id); ok {
			resource = model.NewResourceFrom(parent)
			if err := r.applyAttributes(st, eResource, resource, nsRoutings); err != nil {
				return nil, err
			}
		} else {
			node, err := r.node(st, eResource, nsRoutings)
			if err != nil {
				return nil, err
			}
			var isResource bool
			resource, isResource = node.(*model.Resource)
			if !isResource {
				return nil, errors.Errorf("expected a resource in %s", fragment(eResource))
			}
		}
		routing.AddVertex(resource)
	}

	for _, eLink := range eRouting.SelectElements("link") {
		id := eLink.SelectAttrValue("id", "")
		var link *model.Link
		if parent, ok := architecture.Edge(id); ok {
			link = model.NewLinkFrom(parent)
			if err := r.applyAttributes(st, eLink, link, nsRoutings); err != nil {
				return nil, err
			}
			source, ok := routing.Vertex(eLink.SelectAttrValue("source", ""))
			if !ok {
				return nil, errors.Errorf("invalid source in %s", fragment(eLink))
			}
			dest, ok := routing.Vertex(eLink.SelectAttrValue("destination", ""))
			if !ok {
				return nil, errors.Errorf("invalid destination in %s", fragment(eLink))
			}
			routing.AddEdge(link, source, dest, orientationOf(eLink))
			continue
		}
		link, source, dest, kind, err := r.link(st, eLink, nsRoutings, routing.Vertex)
		if err != nil {
			return nil, err
		}
		routing.AddEdge(link, source, dest, kind)
	}

	return routing, nil
}

// node reads an identified vertex element, reusing the instance of a
// previously seen identifier within the namespace.
func (r *Reader) node(st *readState, e *etree.Element, ns namespace) (model.Element, error) {
	kind, err := classOf(e)
	if err != nil {
		return nil, err
	}
	id := e.SelectAttrValue("id", "")
	if id == "" {
		return nil, errors.Errorf("missing id in %s", fragment(e))
	}
	node, ok := st.tables[ns][id]
	if !ok {
		node, err = newOfKind(kind, id)
		if err != nil {
			return nil, errors.Wrapf(err, "in %s", fragment(e))
		}
		st.tables[ns][id] = node
	}
	if err := r.applyAttributes(st, e, node, ns); err != nil {
		return nil, err
	}
	return node, nil
}

// link reads a link element whose endpoints resolve through lookup.
func (r *Reader) link(st *readState, e *etree.Element, ns namespace, lookup func(string) (*model.Resource, bool)) (*model.Link, *model.Resource, *model.Resource, model.EdgeKind, error) {
	kind, err := classOf(e)
	if err != nil {
		return nil, nil, nil, model.Undirected, err
	}
	if kind != kindLink {
		return nil, nil, nil, model.Undirected, errors.Errorf("expected a link in %s", fragment(e))
	}
	id := e.SelectAttrValue("id", "")
	if id == "" {
		return nil, nil, nil, model.Undirected, errors.Errorf("missing id in %s", fragment(e))
	}
	link := model.NewLink(id)
	if err := r.applyAttributes(st, e, link, ns); err != nil {
		return nil, nil, nil, model.Undirected, err
	}
	source, ok := lookup(e.SelectAttrValue("source", ""))
	if !ok {
		return nil, nil, nil, model.Undirected, errors.Errorf("invalid source in %s", fragment(e))
	}
	dest, ok := lookup(e.SelectAttrValue("destination", ""))
	if !ok {
		return nil, nil, nil, model.Undirected, errors.Errorf("invalid destination in %s", fragment(e))
	}
	return link, source, dest, orientationOf(e), nil
}

func (r *Reader) applyAttributes(st *readState, e *etree.Element, target interface{ SetAttribute(string, interface{}) }, ns namespace) error {
	eAttributes := e.SelectElement("attributes")
	if eAttributes == nil {
		return nil
	}
	attrs, err := r.toAttributes(st, eAttributes, ns)
	if err != nil {
		return err
	}
	model.SetAttributes(target, attrs)
	return nil
}

func (r *Reader) toAttributes(st *readState, eAttributes *etree.Element, ns namespace) (*model.Attributes, error) {
	attrs := model.NewAttributes()
	for _, eAttribute := range eAttributes.SelectElements("attribute") {
		name := eAttribute.SelectAttrValue("name", "")
		if name == "" {
			return nil, errors.Errorf("missing name in %s", fragment(eAttribute))
		}
		value, err := r.toAttribute(st, eAttribute, ns)
		if err != nil {
			return nil, err
		}
		attrs.Set(name, value)
	}
	return attrs, nil
}

func (r *Reader) toAttribute(st *readState, eAttribute *etree.Element, ns namespace) (interface{}, error) {
	parameterKind := eAttribute.SelectAttrValue("parameter", "")
	class := eAttribute.SelectAttrValue("type", "")
	value := eAttribute.Text()

	if parameterKind != "" {
		switch parameterKind {
		case "RANGE":
			return parseRange(value)
		case "SELECT":
			return st.parseSelect(class, value, ns)
		case "UID":
			return parseUniqueID(value)
		default:
			return nil, errors.Errorf("unknown parameter type %q in %s", parameterKind, fragment(eAttribute))
		}
	}

	if class == "" {
		return nil, errors.Errorf("missing type in %s", fragment(eAttribute))
	}
	if isCollectionClass(class) {
		var collection []interface{}
		for _, child := range eAttribute.SelectElements("attribute") {
			entry, err := r.toAttribute(st, child, ns)
			if err != nil {
				return nil, err
			}
			collection = append(collection, entry)
		}
		return collection, nil
	}
	instance, err := st.toInstance(value, class, ns)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", fragment(eAttribute))
	}
	return instance, nil
}

func classOf(e *etree.Element) (elementKind, error) {
	if class := e.SelectAttrValue("class", ""); class != "" {
		if kind, ok := kindByClass[class]; ok {
			return kind, nil
		}
		return 0, errors.Errorf("unknown element class %q in %s", class, fragment(e))
	}
	if kind, ok := classMap[e.Tag]; ok {
		return kind, nil
	}
	return 0, errors.Errorf("unknown node type for %s", fragment(e))
}

func orientationOf(e *etree.Element) model.EdgeKind {
	if e.SelectAttrValue("orientation", "") == "DIRECTED" {
		return model.Directed
	}
	return model.Undirected
}

// fragment renders an element for error messages.
func fragment(e *etree.Element) string {
	doc := etree.NewDocument()
	doc.SetRoot(e.Copy())
	s, err := doc.WriteToString()
	if err != nil {
		return "<" + e.Tag + ">"
	}
	return strings.TrimSpace(s)
}
