package qubo

import (
	"sensemaker/domain/hypothesis"
)

// Encode converts a score model into a minimization-oriented BQM. This
// is the single place the sign/scale convention lives: domain scores
// are "higher is better", solver energies are "lower is better", so the
// scale is -1/offset. Each unordered paired score is stored once at
// full weight, which is equivalent to splitting it across the two
// symmetric matrix cells.
func Encode(model *hypothesis.ScoreModel, offset float64) *BQM {
	scale := -1.0 / offset

	linear := make(map[hypothesis.HypID]float64, len(model.Individual))
	for id, score := range model.Individual {
		linear[id] = score * scale
	}
	quadratic := make(map[hypothesis.Pair]float64, len(model.Paired))
	for pair, score := range model.Paired {
		quadratic[pair] = score * scale
	}
	return NewBQM(linear, quadratic)
}
