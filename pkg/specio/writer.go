package specio

import (
	"encoding/base64"
	"io"
	"os"
	"strconv"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/JoachimFalk/dse-opendse/pkg/model"
	"github.com/JoachimFalk/dse-opendse/pkg/model/parameter"
)

// Writer writes a specification in its XML wire format.
type Writer struct {
	logger logrus.FieldLogger
}

// WriterOption configures a Writer under construction.
type WriterOption func(*Writer)

// WithWriterLogger sets the logger of the writer.
func WithWriterLogger(logger logrus.FieldLogger) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

// NewWriter constructs a Writer.
func NewWriter(options ...WriterOption) *Writer {
	w := &Writer{}
	for _, option := range options {
		option(w)
	}
	if w.logger == nil {
		quiet := logrus.New()
		quiet.SetLevel(logrus.WarnLevel)
		w.logger = quiet
	}
	return w
}

// WriteFile writes a specification to a file.
func (w *Writer) WriteFile(path string, s *model.Specification) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating specification %q", path)
	}
	defer f.Close()
	return w.Write(f, s)
}

// Write writes a specification to an output stream.
func (w *Writer) Write(out io.Writer, s *model.Specification) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("specification")
	root.CreateAttr("xmlns", NS)

	if err := w.writeArchitecture(root.CreateElement("architecture"), s.Architecture()); err != nil {
		return err
	}
	if err := w.writeApplication(root.CreateElement("application"), s.Application()); err != nil {
		return err
	}
	if err := w.writeMappings(root.CreateElement("mappings"), s.Mappings()); err != nil {
		return err
	}
	if s.Routings().Size() > 0 {
		if err := w.writeRoutings(root.CreateElement("routings"), s); err != nil {
			return err
		}
	}
	if len(s.AttributeNames()) > 0 {
		if err := writeAttributeList(root.CreateElement("attributes"), s.AttributeNames(), s.GetAttribute); err != nil {
			return err
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(out); err != nil {
		return errors.Wrap(err, "writing specification document")
	}
	return nil
}

func (w *Writer) writeArchitecture(eArch *etree.Element, architecture *model.Architecture) error {
	for _, r := range architecture.Vertices() {
		eResource := eArch.CreateElement("resource")
		eResource.CreateAttr("id", r.ID())
		if err := writeElementAttributes(eResource, r); err != nil {
			return err
		}
	}
	for _, l := range architecture.Edges() {
		if err := w.writeLink(eArch, architecture, l); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeLink(parent *etree.Element, architecture *model.Architecture, l *model.Link) error {
	src, dst, _ := architecture.Endpoints(l)
	eLink := parent.CreateElement("link")
	eLink.CreateAttr("id", l.ID())
	eLink.CreateAttr("source", src.ID())
	eLink.CreateAttr("destination", dst.ID())
	eLink.CreateAttr("orientation", architecture.KindOf(l).String())
	return writeElementAttributes(eLink, l)
}

func (w *Writer) writeApplication(eApp *etree.Element, application *model.Application) error {
	tasks := application.Vertices()
	for _, t := range model.FilterProcesses(tasks) {
		eTask := eApp.CreateElement("task")
		eTask.CreateAttr("id", t.ID())
		if err := writeElementAttributes(eTask, t); err != nil {
			return err
		}
	}
	for _, c := range model.FilterCommunications(tasks) {
		eCommunication := eApp.CreateElement("communication")
		eCommunication.CreateAttr("id", c.ID())
		if err := writeElementAttributes(eCommunication, c); err != nil {
			return err
		}
	}
	for _, d := range application.Edges() {
		src, dst, _ := application.Endpoints(d)
		eDependency := eApp.CreateElement("dependency")
		eDependency.CreateAttr("id", d.ID())
		eDependency.CreateAttr("source", src.ID())
		eDependency.CreateAttr("destination", dst.ID())
		if err := writeElementAttributes(eDependency, d); err != nil {
			return err
		}
	}

	var annotated []*model.Function
	for _, f := range application.Functions() {
		if len(f.AttributeNames()) > 0 {
			annotated = append(annotated, f)
		}
	}
	if len(annotated) > 0 {
		eFunctions := eApp.CreateElement("functions")
		for _, f := range annotated {
			eFunction := eFunctions.CreateElement("function")
			eFunction.CreateAttr("anchor", f.Tasks()[0].ID())
			if err := writeAttributeList(eFunction.CreateElement("attributes"), f.AttributeNames(), f.GetAttribute); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Writer) writeMappings(eMappings *etree.Element, mappings *model.Mappings) error {
	for _, m := range mappings.All() {
		eMapping := eMappings.CreateElement("mapping")
		eMapping.CreateAttr("id", m.ID())
		eMapping.CreateAttr("source", m.Source().ID())
		eMapping.CreateAttr("target", m.Target().ID())
		if err := writeElementAttributes(eMapping, m); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeRoutings(eRoutings *etree.Element, s *model.Specification) error {
	for _, c := range model.FilterCommunications(s.Application().Vertices()) {
		if !s.Routings().Has(c) {
			continue
		}
		routing := s.Routings().Get(c)
		eRouting := eRoutings.CreateElement("routing")
		eRouting.CreateAttr("source", c.ID())
		for _, r := range routing.Vertices() {
			eResource := eRouting.CreateElement("resource")
			eResource.CreateAttr("id", r.ID())
			if err := writeLocalAttributes(eResource, r); err != nil {
				return err
			}
		}
		for _, l := range routing.Edges() {
			src, dst, _ := routing.Endpoints(l)
			eLink := eRouting.CreateElement("link")
			eLink.CreateAttr("id", l.ID())
			eLink.CreateAttr("source", src.ID())
			eLink.CreateAttr("destination", dst.ID())
			eLink.CreateAttr("orientation", routing.KindOf(l).String())
			if err := writeLocalAttributes(eLink, l); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeElementAttributes serializes the effective attributes of an
// element, including inherited ones.
func writeElementAttributes(parent *etree.Element, e model.Element) error {
	names := e.AttributeNames()
	if len(names) == 0 {
		return nil
	}
	return writeAttributeList(parent.CreateElement("attributes"), names, e.GetAttribute)
}

// writeLocalAttributes serializes only the attributes stored on the
// element itself. Routing-local resources and links use this so that
// inherited architecture attributes are not duplicated.
func writeLocalAttributes(parent *etree.Element, e model.Element) error {
	local := e.LocalAttributes()
	if local.Len() == 0 {
		return nil
	}
	return writeAttributeList(parent.CreateElement("attributes"), local.Names(), local.Get)
}

func writeAttributeList(eAttributes *etree.Element, names []string, get func(string) interface{}) error {
	for _, name := range names {
		eAttribute := eAttributes.CreateElement("attribute")
		eAttribute.CreateAttr("name", name)
		if err := writeAttributeValue(eAttribute, get(name)); err != nil {
			return errors.Wrapf(err, "attribute %q", name)
		}
	}
	return nil
}

func writeAttributeValue(eAttribute *etree.Element, value interface{}) error {
	switch v := value.(type) {
	case *parameter.Range:
		eAttribute.CreateAttr("type", classParameterRange)
		eAttribute.CreateAttr("parameter", "RANGE")
		eAttribute.SetText(v.String())
	case *parameter.Select:
		class, err := typeNameOf(v.Value())
		if err != nil {
			return err
		}
		eAttribute.CreateAttr("type", class)
		eAttribute.CreateAttr("parameter", "SELECT")
		eAttribute.SetText(v.String())
	case *parameter.UniqueID:
		eAttribute.CreateAttr("type", classParameterUniqueID)
		eAttribute.CreateAttr("parameter", "UID")
		eAttribute.SetText(v.String())
	case int:
		eAttribute.CreateAttr("type", classInteger)
		eAttribute.SetText(strconv.Itoa(v))
	case float64:
		eAttribute.CreateAttr("type", classDouble)
		eAttribute.SetText(parameter.FormatDouble(v))
	case bool:
		eAttribute.CreateAttr("type", classBoolean)
		eAttribute.SetText(strconv.FormatBool(v))
	case string:
		eAttribute.CreateAttr("type", classString)
		eAttribute.SetText(v)
	case []byte:
		eAttribute.CreateAttr("type", classSerializable)
		eAttribute.SetText(base64.StdEncoding.EncodeToString(v))
	case model.Element:
		class, err := typeNameOf(v)
		if err != nil {
			return err
		}
		eAttribute.CreateAttr("type", class)
		eAttribute.SetText(v.ID())
	case []interface{}:
		eAttribute.CreateAttr("type", classArrayList)
		for _, entry := range v {
			if err := writeAttributeValue(eAttribute.CreateElement("attribute"), entry); err != nil {
				return err
			}
		}
	default:
		return errors.Errorf("unsupported attribute value %v (%T)", value, value)
	}
	return nil
}

func typeNameOf(value interface{}) (string, error) {
	switch value.(type) {
	case int:
		return classInteger, nil
	case float64:
		return classDouble, nil
	case bool:
		return classBoolean, nil
	case string:
		return classString, nil
	case *model.Process:
		return classTask, nil
	case *model.Communication:
		return classCommunication, nil
	case *model.Resource:
		return classResource, nil
	case *model.Link:
		return classLink, nil
	case *model.Dependency:
		return classDependency, nil
	case *model.Mapping:
		return classMapping, nil
	}
	return "", errors.Errorf("unsupported attribute value type %T", value)
}
