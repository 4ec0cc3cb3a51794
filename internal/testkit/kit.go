// Package testkit provides fixture builders for hypothesis engine tests.
package testkit

import (
	"fmt"

	"sensemaker/domain/hypothesis"
	"sensemaker/domain/scene"
)

// Img builds an image with a stable id derived from its index.
func Img(index int) scene.Image {
	return scene.Image{ID: fmt.Sprintf("img-%d", index), Index: index}
}

// Obj builds an object instance in the given image.
func Obj(id, label string, image scene.Image) scene.Instance {
	return scene.Instance{ID: id, Label: label, Image: image}
}

// Act builds an action instance with a sentiment.
func Act(id, label string, image scene.Image, sentiment float64) scene.Action {
	return scene.Action{
		Instance:  scene.Instance{ID: id, Label: label, Image: image},
		Sentiment: sentiment,
	}
}

// SameObjectHyp builds a same-object hypothesis between two instances.
func SameObjectHyp(id hypothesis.HypID, o1, o2 scene.Instance, visual, attribute float64) *hypothesis.Hypothesis {
	return &hypothesis.Hypothesis{
		ID:   id,
		Kind: hypothesis.KindSameObject,
		SameObject: &hypothesis.SameObjectPayload{
			Object1:             o1,
			Object2:             o2,
			VisualSimilarity:    visual,
			AttributeSimilarity: attribute,
		},
	}
}

// CausalHyp builds a causal sequence hypothesis with a single hop of
// path evidence carrying the given score and direction.
func CausalHyp(id hypothesis.HypID, src, dst scene.Action, dir hypothesis.Direction, evScore float64) *hypothesis.Hypothesis {
	return &hypothesis.Hypothesis{
		ID:   id,
		Kind: hypothesis.KindCausalSequence,
		Causal: &hypothesis.CausalSequencePayload{
			SourceAction: src,
			TargetAction: dst,
			Direction:    dir,
			SingleHopEvs: []hypothesis.Evidence{
				{ID: int(id)*100 + 1, Score: evScore, Direction: dir},
			},
		},
	}
}

// WithPremises sets premises on a hypothesis and returns it.
func WithPremises(h *hypothesis.Hypothesis, premises ...hypothesis.HypID) *hypothesis.Hypothesis {
	h.Premises = premises
	return h
}

// WithContinuity appends a continuity evidence tying a causal hypothesis
// to a joining same-object hypothesis and returns it.
func WithContinuity(h *hypothesis.Hypothesis, joining hypothesis.HypID, evScore float64) *hypothesis.Hypothesis {
	h.Causal.ContinuityEvs = append(h.Causal.ContinuityEvs, hypothesis.ContinuityEv{
		Evidence:   hypothesis.Evidence{ID: int(joining)*100 + 9, Score: evScore},
		JoiningHyp: joining,
	})
	return h
}

// StoreOf builds a store from hypotheses, failing the build on error.
func StoreOf(hyps ...*hypothesis.Hypothesis) *hypothesis.Store {
	store, err := hypothesis.NewStore(hyps, nil)
	if err != nil {
		panic(fmt.Sprintf("testkit: building store: %v", err))
	}
	return store
}

// StoreWithChains builds a store with chains, failing the build on error.
func StoreWithChains(chains []hypothesis.CausalHypChain, hyps ...*hypothesis.Hypothesis) *hypothesis.Store {
	store, err := hypothesis.NewStore(hyps, chains)
	if err != nil {
		panic(fmt.Sprintf("testkit: building store: %v", err))
	}
	return store
}

// Params returns a neutral parameter set for tests.
func Params(id int) hypothesis.ParameterSet {
	return hypothesis.DefaultParameterSet(id, fmt.Sprintf("test-%d", id))
}
