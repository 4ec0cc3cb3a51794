package hypothesis

import (
	"fmt"
	"sort"

	"sensemaker/domain/core"
)

// Pair is an unordered pair of variable ids. Construct with PairOf so
// equal pairs compare equal regardless of argument order.
type Pair struct {
	A HypID `json:"a"`
	B HypID `json:"b"`
}

// PairOf returns the canonical Pair for two ids.
func PairOf(x, y HypID) Pair {
	if x > y {
		x, y = y, x
	}
	return Pair{A: x, B: y}
}

// Other returns the pair member that is not id.
func (p Pair) Other(id HypID) HypID {
	if p.A == id {
		return p.B
	}
	return p.A
}

// Contains reports whether id is one of the pair's members.
func (p Pair) Contains(id HypID) bool { return p.A == id || p.B == id }

// ScoreModel accumulates the individual and paired score contributions
// of one evaluation. Higher scores are better; the QUBO encoder flips
// the sign at the conversion boundary. All contributors (premise
// constraints, contradiction penalties, evidence scores) are additive.
//
// The model also owns surrogate ids: strictly negative variables that
// stand in for a group of real hypotheses. Surrogates live only as long
// as the model.
type ScoreModel struct {
	Individual map[HypID]float64
	Paired     map[Pair]float64

	surrogates    map[HypID][]HypID
	nextSurrogate HypID
}

// NewScoreModel returns an empty model.
func NewScoreModel() *ScoreModel {
	return &ScoreModel{
		Individual:    make(map[HypID]float64),
		Paired:        make(map[Pair]float64),
		surrogates:    make(map[HypID][]HypID),
		nextSurrogate: -1,
	}
}

// AddIndividual accumulates delta onto the individual score of id.
func (m *ScoreModel) AddIndividual(id HypID, delta float64) {
	m.Individual[id] += delta
}

// AddPaired accumulates delta onto the paired score of {x,y}.
func (m *ScoreModel) AddPaired(x, y HypID, delta float64) {
	m.Paired[PairOf(x, y)] += delta
}

// NewSurrogate mints a surrogate variable standing in for members and
// registers it as a decision variable with a zero individual score.
func (m *ScoreModel) NewSurrogate(members ...HypID) HypID {
	id := m.nextSurrogate
	m.nextSurrogate--
	m.surrogates[id] = append([]HypID(nil), members...)
	if _, exists := m.Individual[id]; !exists {
		m.Individual[id] = 0
	}
	return id
}

// Expand resolves id to the real hypothesis ids it represents. Real ids
// expand to themselves; surrogates expand recursively through any
// surrogate members.
func (m *ScoreModel) Expand(id HypID) []HypID {
	if !id.IsSurrogate() {
		return []HypID{id}
	}
	var out []HypID
	for _, member := range m.surrogates[id] {
		out = append(out, m.Expand(member)...)
	}
	return out
}

// SurrogateMembers returns the direct members of a surrogate.
func (m *ScoreModel) SurrogateMembers(id HypID) ([]HypID, bool) {
	members, ok := m.surrogates[id]
	return members, ok
}

// MirrorPairs copies every existing paired score involving member onto
// the equivalent pair involving surrogate, so the surrogate inherits the
// member's external relationships. Pairs between member and the
// surrogate itself are not mirrored.
func (m *ScoreModel) MirrorPairs(member, surrogate HypID) {
	type mirrored struct {
		other HypID
		score float64
	}
	var todo []mirrored
	for pair, score := range m.Paired {
		if !pair.Contains(member) {
			continue
		}
		other := pair.Other(member)
		if other == surrogate {
			continue
		}
		todo = append(todo, mirrored{other: other, score: score})
	}
	for _, t := range todo {
		m.AddPaired(surrogate, t.other, t.score)
	}
}

// Variables returns every decision variable id in ascending order.
func (m *ScoreModel) Variables() []HypID {
	vars := make([]HypID, 0, len(m.Individual))
	for id := range m.Individual {
		vars = append(vars, id)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	return vars
}

// Validate checks the paired keys only reference known variables.
func (m *ScoreModel) Validate() error {
	for pair := range m.Paired {
		for _, id := range []HypID{pair.A, pair.B} {
			if _, ok := m.Individual[id]; ok {
				continue
			}
			if _, ok := m.surrogates[id]; ok {
				continue
			}
			return fmt.Errorf("%w: pair %v references %d", core.ErrInvalidScoreModel, pair, id)
		}
	}
	return nil
}
