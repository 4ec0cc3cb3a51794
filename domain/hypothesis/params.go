package hypothesis

import (
	"fmt"

	"sensemaker/domain/core"
)

// ParameterSet is one sensemaking configuration. A batch of parameter
// sets is evaluated against the same hypothesis store; the stable
// integer ID keys the resulting solution lists.
type ParameterSet struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	VisualSimWeight    float64 `json:"visual_sim_weight"`
	VisualSimThresh    float64 `json:"visual_sim_thresh"`
	AttributeSimWeight float64 `json:"attribute_sim_weight"`
	AttributeSimThresh float64 `json:"attribute_sim_thresh"`
	CausalPathWeight   float64 `json:"causal_path_weight"`
	CausalPathThresh   float64 `json:"causal_path_thresh"`
	ContinuityWeight   float64 `json:"continuity_weight"`
	ContinuityThresh   float64 `json:"continuity_thresh"`
	AffectCurveWeight  float64 `json:"affect_curve_weight"`
	AffectCurveThresh  float64 `json:"affect_curve_thresh"`

	// AffectCurve is the target narrative-arc sentiment per image index.
	AffectCurve []float64 `json:"affect_curve,omitempty"`
}

// Validate checks the parameter set is usable.
func (p ParameterSet) Validate() error {
	if p.ID < 0 {
		return fmt.Errorf("%w: id must be non-negative, got %d", core.ErrInvalidParameterSet, p.ID)
	}
	return nil
}

// DefaultParameterSet returns a neutral configuration: unit weights,
// zero thresholds, no affect curve.
func DefaultParameterSet(id int, name string) ParameterSet {
	return ParameterSet{
		ID:                 id,
		Name:               name,
		VisualSimWeight:    1,
		AttributeSimWeight: 1,
		CausalPathWeight:   1,
		ContinuityWeight:   1,
		AffectCurveWeight:  1,
	}
}
