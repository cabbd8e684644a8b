package specio

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

// Attribute names used by the TGFF import.
const (
	TGFFType     = "TGFF_TYPE"
	Period       = "PERIOD"
	MsgSize      = "MSG_SIZE"
	HardDeadline = "HARD_DEADLINE"
	SoftDeadline = "SOFT_DEADLINE"
)

const (
	tgffHyperperiod = "@HYPERPERIOD"
	tgffTaskGraph   = "@TASK_GRAPH"
	tgffCommunQuant = "@COMMUN_QUANT"
	tgffCore        = "@CORE"
	tgffClientPE    = "@CLIENT_PE"
	tgffServerPE    = "@SERVER_PE"
	tgffProc        = "@PROC"
	tgffWiring      = "@WIRING"

	tgffClosing = "}"
	tgffComment = "#"
	tgffHeader  = "#---------"
	tgffValid   = "valid"
	tgffTypeCol = "type"
)

// TypeBasedSpecification is the result of a TGFF import: an
// application, the database of resource types, the task-to-type
// mappings, and the link types.
type TypeBasedSpecification struct {
	Application   *model.Application
	ResourceTypes []*model.Resource
	Mappings      *model.Mappings
	LinkTypes     []*model.Link
	Hyperperiod   float64
}

// TGFFReader imports applications, resource types and mapping
// possibilities from files generated by Task Graphs For Free, as used
// by the E3S benchmark suite.
type TGFFReader struct {
	logger       logrus.FieldLogger
	messageSizes map[string]float64
	hyperperiod  float64
	typeMap      map[string][]model.Task
}

// TGFFOption configures a TGFFReader under construction.
type TGFFOption func(*TGFFReader)

// WithTGFFLogger sets the logger of the reader.
func WithTGFFLogger(logger logrus.FieldLogger) TGFFOption {
	return func(r *TGFFReader) {
		r.logger = logger
	}
}

// NewTGFFReader constructs a TGFFReader.
func NewTGFFReader(options ...TGFFOption) *TGFFReader {
	r := &TGFFReader{typeMap: map[string][]model.Task{}}
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

// ReadFile imports a tgff file.
func (r *TGFFReader) ReadFile(path string) (*TypeBasedSpecification, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening tgff file %q", path)
	}
	defer f.Close()
	return r.Read(f)
}

// Read imports a tgff document from an input stream.
func (r *TGFFReader) Read(in io.Reader) (*TypeBasedSpecification, error) {
	var lines []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading tgff input")
	}
	return r.toSpecification(lines)
}

func (r *TGFFReader) toSpecification(lines []string) (*TypeBasedSpecification, error) {
	application, err := r.toApplication(lines)
	if err != nil {
		return nil, err
	}
	resourceTypes, err := r.toResourceTypes(lines)
	if err != nil {
		return nil, err
	}
	mappings, err := r.toMappings(lines, resourceTypes)
	if err != nil {
		return nil, err
	}
	linkTypes := r.toLinkTypes(lines)

	r.logger.WithFields(logrus.Fields{
		"tasks":         application.VertexCount(),
		"resourceTypes": len(resourceTypes),
		"mappings":      mappings.Size(),
	}).Debug("tgff import complete")

	return &TypeBasedSpecification{
		Application:   application,
		ResourceTypes: resourceTypes,
		Mappings:      mappings,
		LinkTypes:     linkTypes,
		Hyperperiod:   r.hyperperiod,
	}, nil
}

func (r *TGFFReader) toApplication(lines []string) (*model.Application, error) {
	application := model.NewApplication()
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch {
		case strings.Contains(line, tgffHyperperiod):
			h, err := strconv.ParseFloat(strings.TrimSpace(strings.Replace(line, tgffHyperperiod, "", 1)), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "malformed hyperperiod line %q", line)
			}
			r.hyperperiod = h
		case strings.Contains(line, tgffCommunQuant):
			sizes, next, err := importMessageSizes(lines, i+1)
			if err != nil {
				return nil, err
			}
			r.messageSizes = sizes
			i = next
		case strings.Contains(line, tgffTaskGraph):
			next, err := r.importTaskGraph(line, lines, i+1, application)
			if err != nil {
				return nil, err
			}
			i = next
		}
	}
	return application, nil
}

func (r *TGFFReader) importTaskGraph(name string, lines []string, start int, application *model.Application) (int, error) {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return 0, errors.Errorf("malformed task graph header %q", name)
	}
	suffix := "_" + fields[1]
	period := -1.0

	i := start
	for ; i < len(lines); i++ {
		line := lines[i]
		if isClosing(line) {
			break
		}
		if isComment(line) {
			continue
		}
		switch {
		case strings.Contains(line, Period):
			p, err := strconv.ParseFloat(strings.TrimSpace(strings.Replace(line, Period, "", 1)), 64)
			if err != nil {
				return 0, errors.Wrapf(err, "malformed period line %q", line)
			}
			period = p
		case strings.Contains(line, "TASK"):
			if err := r.addTask(line, suffix, period, application); err != nil {
				return 0, err
			}
		case strings.Contains(line, "ARC"):
			if err := r.addCommunication(line, suffix, period, application); err != nil {
				return 0, err
			}
		case strings.Contains(line, HardDeadline):
			if err := addDeadline(line, suffix, application, HardDeadline); err != nil {
				return 0, err
			}
		case strings.Contains(line, SoftDeadline):
			if err := addDeadline(line, suffix, application, SoftDeadline); err != nil {
				return 0, err
			}
		}
	}
	return i, nil
}

func (r *TGFFReader) addTask(line, suffix string, period float64, application *model.Application) error {
	entries := strings.Fields(strings.TrimSpace(line))
	if len(entries) < 4 {
		return errors.Errorf("malformed TASK line %q", line)
	}
	id := entries[1] + suffix
	tgffType := entries[3]

	task := model.NewProcess(id)
	task.SetAttribute(Period, period)
	task.SetAttribute(TGFFType, tgffType)

	r.typeMap[tgffType] = append(r.typeMap[tgffType], task)
	application.AddVertex(task)
	return nil
}

func (r *TGFFReader) addCommunication(line, suffix string, period float64, application *model.Application) error {
	entries := strings.Fields(strings.TrimSpace(line))
	if len(entries) != 8 {
		return errors.Errorf("malformed ARC line %q", line)
	}
	id := entries[1]
	tgffType := entries[7]

	comm := model.NewCommunication(id)
	comm.SetAttribute(Period, period)
	comm.SetAttribute(TGFFType, tgffType)
	if size, ok := r.messageSizes[tgffType]; ok {
		comm.SetAttribute(MsgSize, size)
	}

	t1, ok := application.Vertex(entries[3] + suffix)
	if !ok {
		return errors.Errorf("unknown task %q in ARC line %q", entries[3]+suffix, line)
	}
	t2, ok := application.Vertex(entries[5] + suffix)
	if !ok {
		return errors.Errorf("unknown task %q in ARC line %q", entries[5]+suffix, line)
	}

	application.AddVertex(comm)
	application.AddDependency(model.NewDependency(id+"_0"), t1, comm)
	application.AddDependency(model.NewDependency(id+"_1"), comm, t2)
	return nil
}

func addDeadline(line, suffix string, application *model.Application, deadlineType string) error {
	entries := strings.Fields(strings.TrimSpace(line))
	if len(entries) != 6 {
		return errors.Errorf("malformed %s line %q", deadlineType, line)
	}
	task, ok := application.Vertex(entries[3] + suffix)
	if !ok {
		return errors.Errorf("unknown task %q in deadline line %q", entries[3]+suffix, line)
	}
	deadline, err := strconv.ParseFloat(entries[5], 64)
	if err != nil {
		return errors.Wrapf(err, "malformed deadline line %q", line)
	}
	task.SetAttribute(deadlineType, deadline)
	return nil
}

func (r *TGFFReader) toResourceTypes(lines []string) ([]*model.Resource, error) {
	var resourceTypes []*model.Resource
	for i := 0; i < len(lines); i++ {
		if !isResourceHeader(lines[i]) {
			continue
		}
		res, next, err := importCore(lines[i], lines, i+1)
		if err != nil {
			return nil, err
		}
		resourceTypes = append(resourceTypes, res)
		i = next
	}
	return resourceTypes, nil
}

// importCore reads one resource type: the header line names the type,
// the first following comment line lists attribute names, the next
// line the values.
func importCore(name string, lines []string, start int) (*model.Resource, int, error) {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return nil, 0, errors.Errorf("malformed resource header %q", name)
	}
	id := "r" + fields[1]
	res := model.NewResource(id)

	if start+1 >= len(lines) {
		return nil, 0, errors.Errorf("truncated resource block %q", name)
	}
	attributes := strings.Fields(strings.TrimSpace(strings.ReplaceAll(lines[start], tgffComment, "")))
	values := strings.Fields(strings.TrimSpace(lines[start+1]))
	if len(attributes) != len(values) {
		return nil, 0, errors.Errorf("resource block %q: %d attributes but %d values", name, len(attributes), len(values))
	}
	for i := range attributes {
		res.SetAttribute(attributes[i], values[i])
	}
	return res, start + 1, nil
}

func (r *TGFFReader) toMappings(lines []string, resourceTypes []*model.Resource) (*model.Mappings, error) {
	byID := map[string]*model.Resource{}
	for _, res := range resourceTypes {
		byID[res.ID()] = res
	}

	mappings := model.NewMappings()
	for i := 0; i < len(lines); i++ {
		if !isResourceHeader(lines[i]) {
			continue
		}
		fields := strings.Fields(lines[i])
		if len(fields) < 2 {
			return nil, errors.Errorf("malformed resource header %q", lines[i])
		}
		res, ok := byID["r"+fields[1]]
		if !ok {
			continue
		}
		next, err := r.importMappings(res, lines, i+1, mappings)
		if err != nil {
			return nil, err
		}
		i = next
	}
	return mappings, nil
}

// importMappings reads the task-type table of one resource type and
// creates a mapping for every task whose type row is marked valid.
func (r *TGFFReader) importMappings(res *model.Resource, lines []string, start int, mappings *model.Mappings) (int, error) {
	i := start
	// The type information up to the header separator was already
	// imported with the resource type.
	for ; i < len(lines); i++ {
		if strings.Contains(lines[i], tgffHeader) {
			i++
			break
		}
		if isClosing(lines[i]) {
			return i, nil
		}
	}

	var attributes []string
	for ; i < len(lines); i++ {
		line := lines[i]
		if isClosing(line) {
			break
		}
		if strings.Contains(line, tgffTypeCol) && isComment(line) {
			attributes = strings.Fields(strings.TrimSpace(strings.ReplaceAll(line, tgffComment, "")))
			continue
		}
		if isComment(line) || len(strings.TrimSpace(line)) == 0 {
			continue
		}

		values := strings.Fields(strings.TrimSpace(line))
		if len(values) != len(attributes) {
			return 0, errors.Errorf("mapping row %q: %d values but %d attributes", line, len(values), len(attributes))
		}

		tgffType := values[0]
		valid := false
		for col, attr := range attributes {
			if attr == tgffValid {
				valid = values[col] == "1"
			}
		}
		if !valid {
			continue
		}
		for _, task := range r.typeMap[tgffType] {
			mappingID := "m_" + task.ID() + "_" + res.ID()
			mapping := model.NewMapping(mappingID, task, res)
			for col, attr := range attributes {
				mapping.SetAttribute(attr, values[col])
			}
			mappings.Add(mapping)
		}
	}
	return i, nil
}

func (r *TGFFReader) toLinkTypes(lines []string) []*model.Link {
	var linkTypes []*model.Link
	for i := 0; i < len(lines); i++ {
		if !strings.Contains(lines[i], tgffWiring) {
			continue
		}
		link := model.NewLink(tgffWiring)
		property := ""
		for i++; i < len(lines); i++ {
			line := lines[i]
			if isClosing(line) {
				break
			}
			if isComment(line) {
				property = strings.TrimSpace(strings.ReplaceAll(line, tgffComment, ""))
			} else if property != "" {
				link.SetAttribute(property, line)
			}
		}
		linkTypes = append(linkTypes, link)
	}
	return linkTypes
}

func importMessageSizes(lines []string, start int) (map[string]float64, int, error) {
	sizes := map[string]float64{}
	i := start
	for ; i < len(lines); i++ {
		line := lines[i]
		if isClosing(line) {
			break
		}
		if isComment(line) || len(strings.TrimSpace(line)) == 0 {
			continue
		}
		entries := strings.Fields(strings.TrimSpace(line))
		if len(entries) < 2 {
			return nil, 0, errors.Errorf("malformed message size line %q", line)
		}
		size, err := strconv.ParseFloat(entries[1], 64)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "malformed message size line %q", line)
		}
		sizes[entries[0]] = size
	}
	return sizes, i, nil
}

func isResourceHeader(line string) bool {
	return strings.Contains(line, tgffCore) || strings.Contains(line, tgffProc) ||
		strings.Contains(line, tgffClientPE) || strings.Contains(line, tgffServerPE)
}

func isComment(line string) bool {
	return strings.HasPrefix(line, tgffComment)
}

func isClosing(line string) bool {
	return strings.Contains(line, tgffClosing) && !strings.Contains(line, tgffComment)
}
