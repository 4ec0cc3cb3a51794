// Package score populates a run's ScoreModel: premise constraint terms
// and per-hypothesis-kind evidence scores. Contradiction penalties are
// layered on afterwards by internal/contradiction.
package score

import (
	"sensemaker/domain/hypothesis"
)

// DefaultOffset is the constraint offset applied to premise and
// contradiction terms. It must exceed the maximum possible magnitude of
// any legitimate combined evidence score so that violating a constraint
// is never net-profitable. That is a configuration invariant, not a
// runtime check.
const DefaultOffset = 1000.0

// PremiseBuilder turns "hypothesis h requires premises P" into score
// terms: h is docked one offset per premise and refunded through the
// paired term, so h only nets non-negative when every premise is
// accepted alongside it.
type PremiseBuilder struct {
	offset float64
}

// NewPremiseBuilder creates a builder with the given offset.
func NewPremiseBuilder(offset float64) *PremiseBuilder {
	if offset <= 0 {
		offset = DefaultOffset
	}
	return &PremiseBuilder{offset: offset}
}

// Apply adds premise constraint terms for every hypothesis in the store.
func (b *PremiseBuilder) Apply(store *hypothesis.Store, model *hypothesis.ScoreModel) {
	for _, h := range store.All() {
		for _, premise := range h.Premises {
			model.AddIndividual(h.ID, -b.offset)
			model.AddPaired(h.ID, premise, b.offset)
		}
	}
}
