package hypothesis

// Direction is the flow of causality a piece of causal evidence (or a
// causal hypothesis) asserts between its source and target.
type Direction string

const (
	// DirectionForward means causality flows source -> target.
	DirectionForward Direction = "forward"
	// DirectionBackward means causality flows target -> source.
	DirectionBackward Direction = "backward"
	// DirectionNeutral means the evidence mixes both flows.
	DirectionNeutral Direction = "neutral"
	// DirectionNone means no causal edge contributed a flow.
	DirectionNone Direction = "none"
)

// Reverse returns the opposite flow. Neutral and none have no opposite.
func (d Direction) Reverse() Direction {
	switch d {
	case DirectionForward:
		return DirectionBackward
	case DirectionBackward:
		return DirectionForward
	}
	return DirectionNone
}

// Opposes reports whether two directions assert opposite flows.
func (d Direction) Opposes(other Direction) bool {
	return (d == DirectionForward && other == DirectionBackward) ||
		(d == DirectionBackward && other == DirectionForward)
}

// Evidence is a precomputed numeric signal supporting a hypothesis. The
// engine only reads Score and Direction; how the score was computed
// (SSIM, attribute overlap, commonsense path weights) is upstream's
// business.
type Evidence struct {
	ID            int       `json:"id"`
	Score         float64   `json:"score"`
	Direction     Direction `json:"direction,omitempty"`
	PremiseHypIDs []HypID   `json:"premise_hyp_ids,omitempty"`
}

// ContinuityEv ties a causal sequence hypothesis to the same-object
// hypothesis that carries an object across its two images. Its score is
// realized through the joining hypothesis, not read directly.
type ContinuityEv struct {
	Evidence
	JoiningHyp HypID `json:"joining_hyp"`
}
