package score

import (
	"sensemaker/domain/hypothesis"
)

// Aggregator computes the individual evidence score of each hypothesis
// under one parameter set. Kinds without a scoring rule contribute zero
// but are still registered as decision variables (they may be premises
// of scored hypotheses).
type Aggregator struct {
	params hypothesis.ParameterSet
}

// NewAggregator creates an aggregator for one parameter set.
func NewAggregator(params hypothesis.ParameterSet) *Aggregator {
	return &Aggregator{params: params}
}

// applyThreshold is the threshold/weight contract used for every scored
// evidence channel: values below the threshold are pushed further down
// by the shortfall, not clamped, then everything is weighted.
func applyThreshold(score, thresh, weight float64) float64 {
	if score < thresh {
		score -= thresh
	}
	return score * weight
}

// Score registers every hypothesis as a variable and accumulates the
// individual scores of the kinds with scoring rules.
func (a *Aggregator) Score(store *hypothesis.Store, model *hypothesis.ScoreModel) {
	for _, h := range store.All() {
		model.AddIndividual(h.ID, 0)
		switch h.Kind {
		case hypothesis.KindSameObject:
			if h.SameObject != nil {
				model.AddIndividual(h.ID, a.scoreSameObject(h.SameObject))
			}
		case hypothesis.KindCausalSequence:
			if h.Causal != nil {
				model.AddIndividual(h.ID, a.scoreCausalSequence(h.Causal))
				// Continuity evidence ties this hypothesis to the
				// same-object hypothesis carrying an object across its
				// images, so its score lands on the pair.
				for _, ev := range h.Causal.ContinuityEvs {
					model.AddPaired(h.ID, ev.JoiningHyp,
						applyThreshold(ev.Score, a.params.ContinuityThresh, a.params.ContinuityWeight))
				}
			}
		}
		// Other kinds carry no individual scoring rule; skip, never error.
	}
}

func (a *Aggregator) scoreSameObject(p *hypothesis.SameObjectPayload) float64 {
	return applyThreshold(p.VisualSimilarity, a.params.VisualSimThresh, a.params.VisualSimWeight) +
		applyThreshold(p.AttributeSimilarity, a.params.AttributeSimThresh, a.params.AttributeSimWeight)
}

func (a *Aggregator) scoreCausalSequence(p *hypothesis.CausalSequencePayload) float64 {
	total := 0.0

	// A hypothesis with no causal-path evidence contributes exactly 0
	// for the path channel. Running the threshold on an empty sum would
	// manufacture a penalty out of nothing.
	pathScore := 0.0
	evCount := 0
	for _, ev := range p.SingleHopEvs {
		pathScore += ev.Score
		evCount++
	}
	for _, ev := range p.MultiHopEvs {
		pathScore += ev.Score
		evCount++
	}
	if evCount > 0 {
		total += applyThreshold(pathScore, a.params.CausalPathThresh, a.params.CausalPathWeight)
	}

	if affect, ok := a.affectCurveScore(p); ok {
		total += applyThreshold(affect, a.params.AffectCurveThresh, a.params.AffectCurveWeight)
	}
	return total
}

// affectCurveScore rewards causal hypotheses that move the story's
// sentiment the way the target affect curve wants it moved. ok is false
// when no curve is configured or the hypothesis' images fall outside it.
func (a *Aggregator) affectCurveScore(p *hypothesis.CausalSequencePayload) (float64, bool) {
	curve := a.params.AffectCurve
	si := p.SourceAction.Image.Index
	ti := p.TargetAction.Image.Index
	if len(curve) == 0 || si < 0 || ti < 0 || si >= len(curve) || ti >= len(curve) {
		return 0, false
	}

	dSource := curve[ti] - curve[si]
	dAction := p.TargetAction.Sentiment - p.SourceAction.Sentiment

	score := 0.0
	correct := dSource*dAction > 0
	if correct {
		// Direction of change matches the arc.
		score += 0.25
		if p.SourceAction.Sentiment == curve[si] {
			score += 0.25
		}
		if p.TargetAction.Sentiment == curve[ti] {
			score += 0.25
		}
		if dSource == dAction {
			score += 0.25
		}
	}
	return score, true
}
