package hypothesis

import (
	"sensemaker/domain/scene"
)

// HypID identifies a hypothesis within one evaluation run. Real hypotheses
// carry non-negative ids assigned upstream; strictly negative ids are
// surrogate variables minted by the score model and never collide with
// real ids.
type HypID int

// IsSurrogate reports whether the id names a synthetic surrogate variable.
func (id HypID) IsSurrogate() bool { return id < 0 }

// Kind tags the variant of a hypothesis.
type Kind string

const (
	KindSameObject        Kind = "same_object"
	KindCausalSequence    Kind = "causal_sequence"
	KindConceptEdge       Kind = "concept_edge"
	KindNewObject         Kind = "new_object"
	KindObjectPersistence Kind = "object_persistence"
)

// Hypothesis is a candidate assertion about the observed image sequence.
// Exactly one payload field is set, matching Kind. Hypotheses are
// immutable for the duration of a run; the engine only reads them.
type Hypothesis struct {
	ID       HypID   `json:"id"`
	Kind     Kind    `json:"kind"`
	Name     string  `json:"name,omitempty"`
	Premises []HypID `json:"premises,omitempty"`

	SameObject  *SameObjectPayload        `json:"same_object,omitempty"`
	Causal      *CausalSequencePayload    `json:"causal_sequence,omitempty"`
	ConceptEdge *ConceptEdgePayload       `json:"concept_edge,omitempty"`
	NewObject   *NewObjectPayload         `json:"new_object,omitempty"`
	Persistence *ObjectPersistencePayload `json:"object_persistence,omitempty"`
}

// SameObjectPayload asserts two object instances in different images are
// the same object. Similarity evidence scores arrive precomputed.
type SameObjectPayload struct {
	Object1             scene.Instance `json:"object_1"`
	Object2             scene.Instance `json:"object_2"`
	VisualSimilarity    float64        `json:"visual_similarity"`
	AttributeSimilarity float64        `json:"attribute_similarity"`
}

// HasObject reports whether obj is one of the payload's two endpoints.
func (p *SameObjectPayload) HasObject(obj scene.Instance) bool {
	return p.Object1.ID == obj.ID || p.Object2.ID == obj.ID
}

// OtherObject returns the endpoint that is not obj. The second return is
// false when obj is neither endpoint.
func (p *SameObjectPayload) OtherObject(obj scene.Instance) (scene.Instance, bool) {
	switch obj.ID {
	case p.Object1.ID:
		return p.Object2, true
	case p.Object2.ID:
		return p.Object1, true
	}
	return scene.Instance{}, false
}

// CausalSequencePayload asserts the source action causally precedes (or
// follows, per Direction) the target action across images.
type CausalSequencePayload struct {
	SourceAction scene.Action `json:"source_action"`
	TargetAction scene.Action `json:"target_action"`
	// Direction is the resolved causal flow between source and target,
	// derived upstream from the flow of each path evidence edge.
	Direction Direction `json:"direction"`

	SingleHopEvs  []Evidence     `json:"single_hop_evs,omitempty"`
	MultiHopEvs   []Evidence     `json:"multi_hop_evs,omitempty"`
	ContinuityEvs []ContinuityEv `json:"continuity_evs,omitempty"`
}

// ImagePair returns the two image indices the sequence spans, low first.
func (p *CausalSequencePayload) ImagePair() (int, int) {
	a := p.SourceAction.Image.Index
	b := p.TargetAction.Image.Index
	if a <= b {
		return a, b
	}
	return b, a
}

// FlowEndpoints returns the image index causality flows from and the one
// it flows to, resolving Direction against the source/target order. The
// second return is false when the payload has no usable direction.
func (p *CausalSequencePayload) FlowEndpoints() (from, to int, ok bool) {
	src := p.SourceAction.Image.Index
	dst := p.TargetAction.Image.Index
	switch p.Direction {
	case DirectionForward:
		return src, dst, true
	case DirectionBackward:
		return dst, src, true
	}
	return 0, 0, false
}

// ConceptEdgePayload asserts a commonsense relationship between two
// instances' concepts holds between the instances themselves.
type ConceptEdgePayload struct {
	Source scene.Instance `json:"source"`
	Target scene.Instance `json:"target"`
	Edge   Evidence       `json:"edge"`
}

// NewObjectPayload asserts an unobserved object exists in a scene.
type NewObjectPayload struct {
	Object          scene.Instance `json:"object"`
	ConceptEdgeHyps []HypID        `json:"concept_edge_hyps,omitempty"`
}

// ObjectPersistencePayload asserts an object from one image persists
// off-screen into another, via a new-object and a same-object hypothesis.
type ObjectPersistencePayload struct {
	Object        scene.Instance `json:"object"`
	NewObjectHyp  HypID          `json:"new_object_hyp"`
	SameObjectHyp HypID          `json:"same_object_hyp"`
}
