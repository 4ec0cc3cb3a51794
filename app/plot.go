package app

import (
	"sort"

	"sensemaker/domain/hypothesis"
)

// Plot is the narrative read of a solution set: for each adjacent image
// pair, the accepted causal sequence hypotheses with the highest
// realized score, plus the recurring objects those hypotheses carry
// across the pair. Maps are keyed by the lower image index of the pair.
type Plot struct {
	Steps     map[int][]hypothesis.HypID
	Recurring map[int][]hypothesis.HypID
}

// ExtractPlot builds the plot from a solution set's best solution. A
// causal hypothesis' realized score is its individual score plus the
// paired scores with each accepted continuity joining hypothesis. Ties
// keep every tied hypothesis. Returns false when the set has no
// solutions.
func ExtractPlot(store *hypothesis.Store, set *hypothesis.SolutionSet) (Plot, bool) {
	best, ok := set.Best()
	if !ok {
		return Plot{}, false
	}

	plot := Plot{
		Steps:     make(map[int][]hypothesis.HypID),
		Recurring: make(map[int][]hypothesis.HypID),
	}
	highest := make(map[int]float64)

	for _, h := range store.ByKind(hypothesis.KindCausalSequence) {
		if h.Causal == nil || !best.Contains(h.ID) {
			continue
		}
		lo, hi := h.Causal.ImagePair()
		if hi-lo != 1 {
			continue
		}

		s := set.Scores.Individual[h.ID]
		for _, ev := range h.Causal.ContinuityEvs {
			if best.Contains(ev.JoiningHyp) {
				s += set.Scores.Paired[hypothesis.PairOf(h.ID, ev.JoiningHyp)]
			}
		}

		prev, seen := highest[lo]
		switch {
		case !seen || s > prev:
			highest[lo] = s
			plot.Steps[lo] = []hypothesis.HypID{h.ID}
		case s == prev:
			plot.Steps[lo] = append(plot.Steps[lo], h.ID)
		}
	}

	for lo, ids := range plot.Steps {
		for _, id := range ids {
			h, ok := store.Get(id)
			if !ok {
				continue
			}
			for _, ev := range h.Causal.ContinuityEvs {
				if best.Contains(ev.JoiningHyp) && !containsID(plot.Recurring[lo], ev.JoiningHyp) {
					plot.Recurring[lo] = append(plot.Recurring[lo], ev.JoiningHyp)
				}
			}
		}
		sort.Slice(plot.Recurring[lo], func(i, j int) bool { return plot.Recurring[lo][i] < plot.Recurring[lo][j] })
	}
	return plot, true
}

func containsID(ids []hypothesis.HypID, id hypothesis.HypID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
