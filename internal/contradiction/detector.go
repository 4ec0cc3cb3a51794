package contradiction

import (
	"fmt"
	"sort"

	"sensemaker/domain/hypothesis"
	"sensemaker/domain/scene"
)

// Detector scans a hypothesis store for contradictions and merges the
// corresponding penalty terms into the score model. Run it after the
// premise builder and aggregator so transitive-triplet surrogates
// inherit the pair terms already in place.
type Detector struct {
	offset float64

	// andGates caches conjunction surrogates per unordered pair so the
	// same pair is never gadgeted twice within one run.
	andGates map[hypothesis.Pair]hypothesis.HypID
}

// NewDetector creates a detector with the given constraint offset.
func NewDetector(offset float64) *Detector {
	return &Detector{offset: offset}
}

// Detect finds every contradiction among the store's same-object and
// causal-sequence hypotheses (other kinds are not subject to these
// checks), applies penalties to the model, and returns the derived
// facts.
func (d *Detector) Detect(store *hypothesis.Store, model *hypothesis.ScoreModel) []Contradiction {
	d.andGates = make(map[hypothesis.Pair]hypothesis.HypID)

	var out []Contradiction
	out = append(out, d.duplicateIdentities(store, model)...)
	out = append(out, d.transitiveTriplets(store, model)...)
	out = append(out, d.causalCycles(store, model)...)
	out = append(out, d.causalFlowConflicts(store, model)...)
	out = append(out, d.chainFlowConflicts(store, model)...)
	return out
}

// duplicateIdentities penalizes pairs of same-object hypotheses that tie
// one shared object to two distinct objects in the same image.
func (d *Detector) duplicateIdentities(store *hypothesis.Store, model *hypothesis.ScoreModel) []Contradiction {
	var out []Contradiction
	sameObj := store.ByKind(hypothesis.KindSameObject)
	for i := 0; i < len(sameObj); i++ {
		for j := i + 1; j < len(sameObj); j++ {
			h1, h2 := sameObj[i], sameObj[j]
			if h1.SameObject == nil || h2.SameObject == nil {
				continue
			}
			a, b, ok := nonSharedEndpoints(h1.SameObject, h2.SameObject)
			if !ok {
				continue
			}
			if !scene.SameImage(a, b) {
				continue
			}
			model.AddPaired(h1.ID, h2.ID, -d.offset)
			out = append(out, Contradiction{
				Kind: KindDuplicateIdentity,
				Hyps: []hypothesis.HypID{h1.ID, h2.ID},
				Explanation: fmt.Sprintf(
					"hypotheses %d and %d equate one object with both %q and %q in image %s",
					h1.ID, h2.ID, a.Label, b.Label, a.Image.ID),
			})
		}
	}
	return out
}

// nonSharedEndpoints returns the two non-shared endpoints of two
// same-object payloads that share exactly one endpoint.
func nonSharedEndpoints(p1, p2 *hypothesis.SameObjectPayload) (scene.Instance, scene.Instance, bool) {
	var shared scene.Instance
	switch {
	case p2.HasObject(p1.Object1) && p2.HasObject(p1.Object2):
		// Same endpoint pair entirely; not a duplicate-identity case.
		return scene.Instance{}, scene.Instance{}, false
	case p2.HasObject(p1.Object1):
		shared = p1.Object1
	case p2.HasObject(p1.Object2):
		shared = p1.Object2
	default:
		return scene.Instance{}, scene.Instance{}, false
	}
	a, _ := p1.OtherObject(shared)
	b, _ := p2.OtherObject(shared)
	if a.ID == b.ID {
		return scene.Instance{}, scene.Instance{}, false
	}
	return a, b, true
}

// transitiveTriplets finds closed triangles of same-object hypotheses
// and encodes the transitive-closure constraint: of any triplet, a
// solution accepts zero members, one member, or (through the surrogate)
// effectively all three, never exactly two.
func (d *Detector) transitiveTriplets(store *hypothesis.Store, model *hypothesis.ScoreModel) []Contradiction {
	sameObj := store.ByKind(hypothesis.KindSameObject)
	seen := make(map[[3]hypothesis.HypID]bool)
	var triplets [][3]*hypothesis.Hypothesis

	for i := 0; i < len(sameObj); i++ {
		for j := i + 1; j < len(sameObj); j++ {
			h1, h2 := sameObj[i], sameObj[j]
			if h1.SameObject == nil || h2.SameObject == nil {
				continue
			}
			a, b, ok := nonSharedEndpoints(h1.SameObject, h2.SameObject)
			if !ok {
				continue
			}
			for k := 0; k < len(sameObj); k++ {
				if k == i || k == j {
					continue
				}
				h3 := sameObj[k]
				if h3.SameObject == nil {
					continue
				}
				if !h3.SameObject.HasObject(a) || !h3.SameObject.HasObject(b) {
					continue
				}
				key := sortedTriple(h1.ID, h2.ID, h3.ID)
				if seen[key] {
					continue
				}
				seen[key] = true
				triplets = append(triplets, [3]*hypothesis.Hypothesis{h1, h2, h3})
			}
		}
	}

	// Mint and mirror all surrogates before adding any triplet penalty
	// terms, so each surrogate inherits only the members' genuine
	// external relationships.
	surrogates := make([]hypothesis.HypID, len(triplets))
	for idx, triplet := range triplets {
		s := model.NewSurrogate(triplet[0].ID, triplet[1].ID, triplet[2].ID)
		for _, member := range triplet {
			// The surrogate stands in for accepting all three members at
			// once, so it absorbs their individual scores and external
			// paired relationships as they stand right now.
			model.AddIndividual(s, model.Individual[member.ID])
			model.MirrorPairs(member.ID, s)
		}
		surrogates[idx] = s
	}

	var out []Contradiction
	for idx, triplet := range triplets {
		s := surrogates[idx]
		for m := 0; m < 3; m++ {
			model.AddPaired(s, triplet[m].ID, -d.offset)
			for n := m + 1; n < 3; n++ {
				model.AddPaired(triplet[m].ID, triplet[n].ID, -d.offset)
			}
		}
		out = append(out, Contradiction{
			Kind: KindTransitiveTriplet,
			Hyps: []hypothesis.HypID{triplet[0].ID, triplet[1].ID, triplet[2].ID},
			Explanation: fmt.Sprintf(
				"hypotheses %d, %d, %d form a transitive identity triangle",
				triplet[0].ID, triplet[1].ID, triplet[2].ID),
		})
	}
	return out
}

func sortedTriple(a, b, c hypothesis.HypID) [3]hypothesis.HypID {
	ids := []hypothesis.HypID{a, b, c}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return [3]hypothesis.HypID{ids[0], ids[1], ids[2]}
}

// causalEdge is a causal hypothesis reduced to the directed image edge
// its resolved flow asserts.
type causalEdge struct {
	hyp  *hypothesis.Hypothesis
	from int
	to   int
}

func causalEdges(store *hypothesis.Store) []causalEdge {
	var edges []causalEdge
	for _, h := range store.ByKind(hypothesis.KindCausalSequence) {
		if h.Causal == nil {
			continue
		}
		from, to, ok := h.Causal.FlowEndpoints()
		if !ok || from == to {
			continue
		}
		edges = append(edges, causalEdge{hyp: h, from: from, to: to})
	}
	return edges
}

// causalCycles penalizes 2- and 3-hypothesis causal chains whose image
// sequence returns to its starting image. A 2-cycle makes the pair
// mutually exclusive. For a 3-cycle, each pair-of-2 forbids the third
// member, which blocks the full cycle while leaving every 2-element
// sub-path available.
func (d *Detector) causalCycles(store *hypothesis.Store, model *hypothesis.ScoreModel) []Contradiction {
	edges := causalEdges(store)
	var out []Contradiction

	for i := 0; i < len(edges); i++ {
		for j := i + 1; j < len(edges); j++ {
			e1, e2 := edges[i], edges[j]
			if e1.from == e2.to && e1.to == e2.from {
				model.AddPaired(e1.hyp.ID, e2.hyp.ID, -d.offset)
				out = append(out, Contradiction{
					Kind: KindCausalCycle,
					Hyps: []hypothesis.HypID{e1.hyp.ID, e2.hyp.ID},
					Explanation: fmt.Sprintf(
						"hypotheses %d and %d form a causal cycle over images %d and %d",
						e1.hyp.ID, e2.hyp.ID, e1.from, e1.to),
				})
			}
		}
	}

	for i := 0; i < len(edges); i++ {
		for j := i + 1; j < len(edges); j++ {
			for k := j + 1; k < len(edges); k++ {
				cycle, ok := orderAsCycle(edges[i], edges[j], edges[k])
				if !ok {
					continue
				}
				members := [3]hypothesis.HypID{cycle[0].hyp.ID, cycle[1].hyp.ID, cycle[2].hyp.ID}
				for m := 0; m < 3; m++ {
					pairA := members[m]
					pairB := members[(m+1)%3]
					excluded := members[(m+2)%3]
					gate := d.conjunction(model, pairA, pairB)
					model.AddPaired(gate, excluded, -d.offset)
				}
				out = append(out, Contradiction{
					Kind: KindCausalCycle,
					Hyps: []hypothesis.HypID{members[0], members[1], members[2]},
					Explanation: fmt.Sprintf(
						"hypotheses %d, %d, %d form a 3-image causal cycle",
						members[0], members[1], members[2]),
				})
			}
		}
	}
	return out
}

// orderAsCycle reorders three directed edges into a closed walk over
// three distinct images, if one exists.
func orderAsCycle(a, b, c causalEdge) ([3]causalEdge, bool) {
	perms := [][3]causalEdge{
		{a, b, c}, {a, c, b},
	}
	for _, p := range perms {
		if p[0].to == p[1].from && p[1].to == p[2].from && p[2].to == p[0].from &&
			p[0].from != p[1].from && p[1].from != p[2].from && p[0].from != p[2].from {
			return p, true
		}
	}
	return [3]causalEdge{}, false
}

// conjunction returns a surrogate that scores as accepted exactly when
// both inputs are accepted. The gadget nets zero for every consistent
// configuration and at least one offset penalty otherwise, so further
// penalties can hang off the surrogate.
func (d *Detector) conjunction(model *hypothesis.ScoreModel, x1, x2 hypothesis.HypID) hypothesis.HypID {
	key := hypothesis.PairOf(x1, x2)
	if gate, ok := d.andGates[key]; ok {
		return gate
	}
	s := model.NewSurrogate(x1, x2)
	model.AddIndividual(s, -3*d.offset)
	model.AddPaired(x1, x2, -d.offset)
	model.AddPaired(s, x1, 2*d.offset)
	model.AddPaired(s, x2, 2*d.offset)
	d.andGates[key] = s
	return s
}

// conjunctionChain folds conjunction over an ordered member list,
// yielding a surrogate accepted exactly when every member is.
func (d *Detector) conjunctionChain(model *hypothesis.ScoreModel, members []hypothesis.HypID) hypothesis.HypID {
	gate := members[0]
	for _, next := range members[1:] {
		gate = d.conjunction(model, gate, next)
	}
	return gate
}

// causalFlowConflicts penalizes pairs of causal hypotheses spanning the
// same unordered image pair with opposite resolved flow.
func (d *Detector) causalFlowConflicts(store *hypothesis.Store, model *hypothesis.ScoreModel) []Contradiction {
	edges := causalEdges(store)
	var out []Contradiction
	for i := 0; i < len(edges); i++ {
		for j := i + 1; j < len(edges); j++ {
			e1, e2 := edges[i], edges[j]
			if !(e1.from == e2.to && e1.to == e2.from) {
				continue
			}
			model.AddPaired(e1.hyp.ID, e2.hyp.ID, -d.offset)
			out = append(out, Contradiction{
				Kind: KindCausalFlowConflict,
				Hyps: []hypothesis.HypID{e1.hyp.ID, e2.hyp.ID},
				Explanation: fmt.Sprintf(
					"hypotheses %d and %d assert opposite causal flow between images %d and %d",
					e1.hyp.ID, e2.hyp.ID, e1.from, e1.to),
			})
		}
	}
	return out
}

// chainFlowConflicts makes two causal chains mutually exclusive as
// groups when they span the same endpoint image pair in opposite
// directions.
func (d *Detector) chainFlowConflicts(store *hypothesis.Store, model *hypothesis.ScoreModel) []Contradiction {
	chains := store.Chains()
	var out []Contradiction
	for i := 0; i < len(chains); i++ {
		for j := i + 1; j < len(chains); j++ {
			c1, c2 := chains[i], chains[j]
			low1, high1, dir1, ok1 := c1.Endpoints(store)
			low2, high2, dir2, ok2 := c2.Endpoints(store)
			if !ok1 || !ok2 {
				continue
			}
			if low1 != low2 || high1 != high2 || !dir1.Opposes(dir2) {
				continue
			}
			gate1 := d.conjunctionChain(model, c1.Members)
			gate2 := d.conjunctionChain(model, c2.Members)
			model.AddPaired(gate1, gate2, -d.offset)
			out = append(out, Contradiction{
				Kind:   KindCausalChainFlowConflict,
				Chain1: c1.Members,
				Chain2: c2.Members,
				Explanation: fmt.Sprintf(
					"chains %q and %q assert opposite causal flow between images %d and %d",
					c1.Name, c2.Name, low1, high1),
			})
		}
	}
	return out
}
