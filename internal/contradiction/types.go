// Package contradiction finds logical incompatibilities between
// hypotheses and enforces them softly through large negative paired
// scores. Contradictions are derived facts: recomputed fresh on every
// evaluation, never persisted.
package contradiction

import (
	"sensemaker/domain/hypothesis"
)

// Kind tags the variant of a contradiction.
type Kind string

const (
	// KindDuplicateIdentity: two same-object hypotheses tie one object to
	// two different objects in the same image.
	KindDuplicateIdentity Kind = "duplicate_identity"
	// KindTransitiveTriplet: three same-object hypotheses close a
	// triangle, so accepting any two forces the third.
	KindTransitiveTriplet Kind = "transitive_triplet"
	// KindCausalCycle: a 2- or 3-hypothesis causal chain starts and ends
	// at the same image.
	KindCausalCycle Kind = "causal_cycle"
	// KindCausalFlowConflict: two causal hypotheses assert opposite flow
	// across the same image pair.
	KindCausalFlowConflict Kind = "causal_flow_conflict"
	// KindCausalChainFlowConflict: two causal chains assert opposite flow
	// across the same endpoint image pair.
	KindCausalChainFlowConflict Kind = "causal_chain_flow_conflict"
)

// Contradiction records one detected incompatibility. Hyps holds the
// involved hypothesis ids; for chain conflicts the two chains are kept
// separately.
type Contradiction struct {
	Kind        Kind               `json:"kind"`
	Hyps        []hypothesis.HypID `json:"hyps,omitempty"`
	Chain1      []hypothesis.HypID `json:"chain_1,omitempty"`
	Chain2      []hypothesis.HypID `json:"chain_2,omitempty"`
	Explanation string             `json:"explanation"`
}
