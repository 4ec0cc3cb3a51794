package qubo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sensemaker/domain/hypothesis"
)

func TestEncodeFlipsSignAndScales(t *testing.T) {
	model := hypothesis.NewScoreModel()
	model.AddIndividual(1, 1.5)
	model.AddIndividual(2, -999.6)
	model.AddPaired(1, 2, 1000)

	b := Encode(model, 1000)

	assert.InDelta(t, -0.0015, b.Linear[1], 1e-12)
	assert.InDelta(t, 0.9996, b.Linear[2], 1e-12)
	assert.InDelta(t, -1.0, b.Quadratic[hypothesis.PairOf(1, 2)], 1e-12)
}

func TestEncodeHigherScoreMeansLowerEnergy(t *testing.T) {
	model := hypothesis.NewScoreModel()
	model.AddIndividual(1, 2.0)
	model.AddIndividual(2, 0.5)

	b := Encode(model, 1000)

	e1 := b.Energy(map[hypothesis.HypID]bool{1: true})
	e2 := b.Energy(map[hypothesis.HypID]bool{2: true})
	assert.Less(t, e1, e2)
}

func TestEnergyCountsEachPairOnce(t *testing.T) {
	b := NewBQM(
		map[hypothesis.HypID]float64{1: 0.5, 2: 0.25},
		map[hypothesis.Pair]float64{hypothesis.PairOf(1, 2): -2},
	)

	assert.InDelta(t, -1.25, b.Energy(map[hypothesis.HypID]bool{1: true, 2: true}), 1e-12)
	assert.InDelta(t, 0.5, b.Energy(map[hypothesis.HypID]bool{1: true}), 1e-12)
	assert.InDelta(t, 0.0, b.Energy(map[hypothesis.HypID]bool{}), 1e-12)
}

func TestFlipDeltaMatchesEnergyDifference(t *testing.T) {
	b := NewBQM(
		map[hypothesis.HypID]float64{1: 0.3, 2: -0.7, 3: 1.1},
		map[hypothesis.Pair]float64{
			hypothesis.PairOf(1, 2): -0.4,
			hypothesis.PairOf(2, 3): 0.9,
			hypothesis.PairOf(1, 3): -1.2,
		},
	)

	// Every assignment, every flip.
	for mask := 0; mask < 8; mask++ {
		x := map[hypothesis.HypID]bool{
			1: mask&1 != 0,
			2: mask&2 != 0,
			3: mask&4 != 0,
		}
		for _, v := range b.Variables() {
			before := b.Energy(x)
			delta := b.FlipDelta(x, v)
			x[v] = !x[v]
			assert.InDelta(t, b.Energy(x)-before, delta, 1e-12)
			x[v] = !x[v]
		}
	}
}

func TestVariablesSorted(t *testing.T) {
	b := NewBQM(map[hypothesis.HypID]float64{3: 0, -1: 0, 1: 0}, nil)
	assert.Equal(t, []hypothesis.HypID{-1, 1, 3}, b.Variables())
}
