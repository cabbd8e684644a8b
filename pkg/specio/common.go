// Package specio reads and writes specifications in the normative XML
// wire format and imports TGFF benchmark files.
package specio

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/JoachimFalk/dse-opendse/pkg/model"
	"github.com/JoachimFalk/dse-opendse/pkg/model/parameter"
)

// NS is the XML namespace of specification documents.
const NS = "opendse.sf.net"

// Class names of the wire format. The Java-style names are the
// contract; local element names map onto them when no class attribute
// is present.
const (
	classTask          = "net.sf.opendse.model.Task"
	classCommunication = "net.sf.opendse.model.Communication"
	classResource      = "net.sf.opendse.model.Resource"
	classLink          = "net.sf.opendse.model.Link"
	classDependency    = "net.sf.opendse.model.Dependency"
	classMapping       = "net.sf.opendse.model.Mapping"

	classInteger      = "java.lang.Integer"
	classDouble       = "java.lang.Double"
	classBoolean      = "java.lang.Boolean"
	classString       = "java.lang.String"
	classArrayList    = "java.util.ArrayList"
	classLinkedList   = "java.util.LinkedList"
	classHashSet      = "java.util.HashSet"
	classSerializable = "java.io.Serializable"

	classParameterRange    = "net.sf.opendse.model.parameter.ParameterRange"
	classParameterSelect   = "net.sf.opendse.model.parameter.ParameterSelect"
	classParameterUniqueID = "net.sf.opendse.model.parameter.ParameterUniqueID"
)

// elementKind enumerates the concrete element kinds of the model.
type elementKind int

const (
	kindTask elementKind = iota
	kindCommunication
	kindResource
	kindLink
	kindDependency
	kindMapping
)

// classMap translates local element names to element kinds.
var classMap = map[string]elementKind{
	"task":          kindTask,
	"communication": kindCommunication,
	"resource":      kindResource,
	"link":          kindLink,
	"dependency":    kindDependency,
	"mapping":       kindMapping,
}

// kindByClass translates wire class names to element kinds.
var kindByClass = map[string]elementKind{
	classTask:          kindTask,
	classCommunication: kindCommunication,
	classResource:      kindResource,
	classLink:          kindLink,
	classDependency:    kindDependency,
	classMapping:       kindMapping,
}

func (k elementKind) class() string {
	switch k {
	case kindCommunication:
		return classCommunication
	case kindResource:
		return classResource
	case kindLink:
		return classLink
	case kindDependency:
		return classDependency
	case kindMapping:
		return classMapping
	default:
		return classTask
	}
}

// newOfKind constructs a fresh element of the given kind. Mappings
// cannot be constructed without endpoints and are handled separately.
func newOfKind(k elementKind, id string) (model.Element, error) {
	switch k {
	case kindTask:
		return model.NewProcess(id), nil
	case kindCommunication:
		return model.NewCommunication(id), nil
	case kindResource:
		return model.NewResource(id), nil
	case kindLink:
		return model.NewLink(id), nil
	case kindDependency:
		return model.NewDependency(id), nil
	default:
		return nil, errors.Errorf("cannot construct element %q without endpoints", id)
	}
}

// namespace selects one of the per-read element tables.
type namespace int

const (
	nsRoutings namespace = iota
	nsArchitecture
	nsApplication
	nsFunction
	nsAttributes
)

// isCollectionClass reports whether the class denotes a homogeneous
// collection whose entries are child attribute elements.
func isCollectionClass(class string) bool {
	switch class {
	case classArrayList, classLinkedList, classHashSet:
		return true
	}
	return false
}

// toInstance parses a scalar attribute text according to its declared
// class. Element classes resolve through the table of the namespace,
// constructing and registering the element on first sight.
func (st *readState) toInstance(value, class string, ns namespace) (interface{}, error) {
	switch class {
	case classInteger, "INT":
		i, err := strconv.Atoi(strings.TrimSpace(value))
		return i, errors.Wrapf(err, "parsing integer %q", value)
	case classDouble, "DOUBLE":
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return f, errors.Wrapf(err, "parsing double %q", value)
	case classBoolean, "BOOL":
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		return b, errors.Wrapf(err, "parsing boolean %q", value)
	case classString, "STRING":
		return value, nil
	case classSerializable:
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(value))
		return raw, errors.Wrapf(err, "decoding serialized value %q", value)
	}
	if kind, ok := kindByClass[class]; ok {
		id := strings.TrimSpace(value)
		if e, ok := st.tables[ns][id]; ok {
			return e, nil
		}
		e, err := newOfKind(kind, id)
		if err != nil {
			return nil, err
		}
		st.tables[ns][id] = e
		return e, nil
	}
	return nil, errors.Errorf("unknown attribute class %q", class)
}

var uidPattern = regexp.MustCompile(`(\w+) \[UID:(\w+)\]`)

// parseRange parses the RANGE parameter text form: four doubles
// separated by whitespace, commas, or parentheses.
func parseRange(value string) (*parameter.Range, error) {
	fields := splitParameter(value)
	if len(fields) != 4 {
		return nil, errors.Errorf("malformed range parameter %q", value)
	}
	nums := make([]float64, 4)
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed range parameter %q", value)
		}
		nums[i] = n
	}
	return parameter.NewRangeGranularity(nums[0], nums[1], nums[2], nums[3]), nil
}

// parseSelect parses the SELECT parameter text form:
// "default (choice, choice, ...) reference?", with brackets
// normalized to parentheses. Values parse according to class.
func (st *readState) parseSelect(class, value string, ns namespace) (*parameter.Select, error) {
	normalized := strings.NewReplacer("[", "(", "]", ")").Replace(value)
	parts := strings.FieldsFunc(normalized, func(r rune) bool { return r == '(' || r == ')' })
	if len(parts) < 2 {
		return nil, errors.Errorf("malformed select parameter %q", value)
	}
	def, err := st.toInstance(strings.TrimSpace(parts[0]), class, ns)
	if err != nil {
		return nil, err
	}
	var choices []interface{}
	for _, part := range strings.Split(parts[1], ",") {
		choice, err := st.toInstance(strings.TrimSpace(part), class, ns)
		if err != nil {
			return nil, err
		}
		choices = append(choices, choice)
	}
	reference := ""
	if len(parts) > 2 {
		reference = strings.TrimSpace(parts[2])
	}
	return parameter.NewSelectRef(def, choices, reference), nil
}

// parseUniqueID parses the UID parameter text form
// "default [UID:identifier]".
func parseUniqueID(value string) (*parameter.UniqueID, error) {
	match := uidPattern.FindStringSubmatch(value)
	if match == nil {
		return nil, errors.Errorf("malformed unique id parameter %q", value)
	}
	def, err := strconv.Atoi(match[1])
	if err != nil {
		return nil, errors.Wrapf(err, "malformed unique id parameter %q", value)
	}
	return parameter.NewUniqueID(def, match[2]), nil
}

func splitParameter(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', ',', '(', ')':
			return true
		}
		return false
	})
}
