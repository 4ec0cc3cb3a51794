package hypothesis

import "sort"

// Solution is one accepted-hypothesis set for a parameter set. Solutions
// are immutable once assembled. Accepted holds real hypothesis ids only;
// surrogate variables are expanded away during assembly.
type Solution struct {
	ID         int                `json:"id"`
	Parameters ParameterSet       `json:"parameters"`
	Accepted   map[HypID]struct{} `json:"-"`
	Energy     float64            `json:"energy"`
}

// Contains reports whether the solution accepts id.
func (s Solution) Contains(id HypID) bool {
	_, ok := s.Accepted[id]
	return ok
}

// AcceptedIDs returns the accepted ids in ascending order.
func (s Solution) AcceptedIDs() []HypID {
	ids := make([]HypID, 0, len(s.Accepted))
	for id := range s.Accepted {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SolutionSet is the full result for one parameter set: the ranked
// solutions (ascending energy, best first) plus the score model that
// produced them, kept so downstream consumers can re-derive per-
// hypothesis scores without re-running the pipeline.
type SolutionSet struct {
	Parameters ParameterSet  `json:"parameters"`
	Solutions  []Solution    `json:"solutions"`
	Scores     *ScoreModel   `json:"-"`
	Summary    EnergySummary `json:"summary"`
}

// Best returns the lowest-energy solution.
func (ss *SolutionSet) Best() (Solution, bool) {
	if len(ss.Solutions) == 0 {
		return Solution{}, false
	}
	return ss.Solutions[0], true
}

// EnergySummary describes the energy distribution across a solution
// set's samples.
type EnergySummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}
