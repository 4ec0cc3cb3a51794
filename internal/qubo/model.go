// Package qubo holds the binary quadratic model, the score-to-energy
// conversion boundary, and the simulated-annealing solver. Domain
// scores are "higher is better"; everything inside this package is
// minimization-oriented energy.
package qubo

import (
	"sort"

	"sensemaker/domain/hypothesis"
)

// BQM is a binary quadratic model over hypothesis and surrogate
// variables. Energy of an assignment x in {0,1}^V is
//
//	E(x) = sum_v Linear[v]*x_v + sum_{u<v} Quadratic[{u,v}]*x_u*x_v
//
// with each unordered pair counted once.
type BQM struct {
	Linear    map[hypothesis.HypID]float64
	Quadratic map[hypothesis.Pair]float64

	vars []hypothesis.HypID
	adj  map[hypothesis.HypID][]biasTerm
}

type biasTerm struct {
	other  hypothesis.HypID
	weight float64
}

// NewBQM builds a model and its adjacency index from linear and
// quadratic biases.
func NewBQM(linear map[hypothesis.HypID]float64, quadratic map[hypothesis.Pair]float64) *BQM {
	b := &BQM{
		Linear:    linear,
		Quadratic: quadratic,
		adj:       make(map[hypothesis.HypID][]biasTerm),
	}
	for v := range linear {
		b.vars = append(b.vars, v)
	}
	sort.Slice(b.vars, func(i, j int) bool { return b.vars[i] < b.vars[j] })
	for pair, w := range quadratic {
		b.adj[pair.A] = append(b.adj[pair.A], biasTerm{other: pair.B, weight: w})
		b.adj[pair.B] = append(b.adj[pair.B], biasTerm{other: pair.A, weight: w})
	}
	return b
}

// Variables returns the variable set in ascending id order.
func (b *BQM) Variables() []hypothesis.HypID { return b.vars }

// Energy evaluates an assignment. Missing keys read as 0.
func (b *BQM) Energy(x map[hypothesis.HypID]bool) float64 {
	e := 0.0
	for v, w := range b.Linear {
		if x[v] {
			e += w
		}
	}
	for pair, w := range b.Quadratic {
		if x[pair.A] && x[pair.B] {
			e += w
		}
	}
	return e
}

// FlipDelta returns the energy change of flipping variable v in x.
func (b *BQM) FlipDelta(x map[hypothesis.HypID]bool, v hypothesis.HypID) float64 {
	delta := b.Linear[v]
	for _, t := range b.adj[v] {
		if x[t.other] {
			delta += t.weight
		}
	}
	if x[v] {
		return -delta
	}
	return delta
}
