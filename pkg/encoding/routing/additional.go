package routing

import (
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/constraints"
	"github.com/JoachimFalk/dse-opendse/pkg/encoding/variables"
	"github.com/JoachimFalk/dse-opendse/pkg/model"
)

// AdditionalConstraintsEncoderNone emits no extra constraints.
type AdditionalConstraintsEncoderNone struct{}

func (AdditionalConstraintsEncoderNone) ToConstraints(*variables.Store, *variables.T,
	[]*variables.CommunicationFlow, *model.Architecture) []*constraints.Constraint {
	return nil
}

// AdditionalConstraintsEncoderVerbatim passes a fixed constraint set
// through for every communication.
type AdditionalConstraintsEncoderVerbatim struct {
	Constraints []*constraints.Constraint
}

func (e AdditionalConstraintsEncoderVerbatim) ToConstraints(*variables.Store, *variables.T,
	[]*variables.CommunicationFlow, *model.Architecture) []*constraints.Constraint {
	return e.Constraints
}
