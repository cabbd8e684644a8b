package generator

import (
	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

// MappingGenerator creates randomized mapping sets.
type MappingGenerator struct {
	generator
	mappingID *IDProvider
}

// NewMappingGenerator constructs a MappingGenerator with the given
// seed.
func NewMappingGenerator(seed int64) *MappingGenerator {
	return NewMappingGeneratorIDs(seed, NewIDProvider("m"))
}

// NewMappingGeneratorIDs constructs a MappingGenerator with an
// explicit id provider.
func NewMappingGeneratorIDs(seed int64, mappingID *IDProvider) *MappingGenerator {
	return &MappingGenerator{generator: newGenerator(seed), mappingID: mappingID}
}

// Create generates between min and max mappings for every process
// task of the application onto the architecture's resources.
func (g *MappingGenerator) Create(application *model.Application, architecture *model.Architecture, min, max int) *model.Mappings {
	return g.CreateOnto(application, architecture.Vertices(), min, max)
}

// CreateOnto generates between min and max mappings for every process
// task onto the given resource pool.
func (g *MappingGenerator) CreateOnto(application *model.Application, resources []*model.Resource, min, max int) *model.Mappings {
	mappings := model.NewMappings()
	if len(resources) == 0 {
		return mappings
	}

	for _, task := range model.FilterProcesses(application.Vertices()) {
		count := g.randRange(min, max)
		for i := 0; i < count; i++ {
			target := resources[g.random.Intn(len(resources))]
			mappings.Add(model.NewMapping(g.mappingID.Next(), task, target))
		}
	}
	return mappings
}

// AnnotateAttribute sets a random integer attribute in [min, max] on
// every mapping.
func (g *MappingGenerator) AnnotateAttribute(mappings *model.Mappings, attribute string, min, max int) {
	for _, mapping := range mappings.All() {
		mapping.SetAttribute(attribute, g.randRange(min, max))
	}
}
