package hypothesis

// GroupSemantic states how the members of a hypothesis set may be
// accepted together.
type GroupSemantic string

const (
	// GroupIndependent members are scored and accepted individually.
	GroupIndependent GroupSemantic = "independent"
	// GroupAllOrExclusive members are accepted all together or at most
	// one of them.
	GroupAllOrExclusive GroupSemantic = "all_or_exclusive"
)

// HypothesisSet is a named group of hypothesis ids with a group semantic.
type HypothesisSet struct {
	Name     string        `json:"name"`
	Semantic GroupSemantic `json:"semantic"`
	Members  []HypID       `json:"members"`
}

// CausalHypChain is an ordered HypothesisSet of causal sequence
// hypotheses forming a path across images. Members are ordered along
// the path.
type CausalHypChain struct {
	HypothesisSet
}

// NewCausalHypChain builds a chain over the given causal hypothesis ids.
func NewCausalHypChain(name string, members []HypID) CausalHypChain {
	return CausalHypChain{HypothesisSet{
		Name:     name,
		Semantic: GroupAllOrExclusive,
		Members:  members,
	}}
}

// Endpoints resolves the unordered image pair the chain spans and the
// flow direction across it, by walking the member hypotheses in order.
// ok is false when a member is missing, is not a causal sequence, or has
// no usable direction.
func (c CausalHypChain) Endpoints(store *Store) (lowImage, highImage int, dir Direction, ok bool) {
	if len(c.Members) == 0 {
		return 0, 0, DirectionNone, false
	}
	first, okFirst := store.Get(c.Members[0])
	last, okLast := store.Get(c.Members[len(c.Members)-1])
	if !okFirst || !okLast || first.Causal == nil || last.Causal == nil {
		return 0, 0, DirectionNone, false
	}
	from, _, okFrom := first.Causal.FlowEndpoints()
	_, to, okTo := last.Causal.FlowEndpoints()
	if !okFrom || !okTo {
		return 0, 0, DirectionNone, false
	}
	if from <= to {
		return from, to, DirectionForward, true
	}
	return to, from, DirectionBackward, true
}
