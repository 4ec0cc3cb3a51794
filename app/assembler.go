package app

import (
	"sensemaker/domain/hypothesis"
	"sensemaker/internal/qubo"
)

// assembleSolutions turns raw anneal samples into solutions. Surrogate
// variables carry no meaning outside the energy model, so each accepted
// surrogate is expanded to the real hypothesis ids it stands for and the
// surrogate itself is dropped. Solution ids are positional: samples
// arrive sorted by energy, so id 0 is always the best solution.
func assembleSolutions(samples []qubo.Sample, model *hypothesis.ScoreModel, ps hypothesis.ParameterSet) []hypothesis.Solution {
	solutions := make([]hypothesis.Solution, 0, len(samples))
	for i, sm := range samples {
		accepted := make(map[hypothesis.HypID]struct{})
		for id, on := range sm.Assignment {
			if !on {
				continue
			}
			for _, member := range model.Expand(id) {
				accepted[member] = struct{}{}
			}
		}
		solutions = append(solutions, hypothesis.Solution{
			ID:         i,
			Parameters: ps,
			Accepted:   accepted,
			Energy:     sm.Energy,
		})
	}
	return solutions
}
