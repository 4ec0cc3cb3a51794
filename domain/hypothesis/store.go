package hypothesis

import (
	"fmt"
	"sort"

	"sensemaker/domain/core"
)

// Store is the immutable-for-a-run collection of hypotheses one
// evaluation consumes. It is built once from upstream input and shared
// read-only across concurrently evaluated parameter sets.
type Store struct {
	hyps   map[HypID]*Hypothesis
	ids    []HypID
	chains []CausalHypChain
}

// NewStore validates and indexes a set of hypotheses. Ids must be
// non-negative and unique; premises must reference known hypotheses.
// Premise cycles are not detected: the score encoding tolerates them,
// though joint incentives under cycles are undefined.
func NewStore(hyps []*Hypothesis, chains []CausalHypChain) (*Store, error) {
	s := &Store{
		hyps:   make(map[HypID]*Hypothesis, len(hyps)),
		chains: chains,
	}
	for _, h := range hyps {
		if h.ID < 0 {
			return nil, fmt.Errorf("%w: %d", core.ErrNegativeHypothesisID, h.ID)
		}
		if _, exists := s.hyps[h.ID]; exists {
			return nil, fmt.Errorf("%w: %d", core.ErrDuplicateHypothesisID, h.ID)
		}
		s.hyps[h.ID] = h
		s.ids = append(s.ids, h.ID)
	}
	for _, h := range hyps {
		for _, p := range h.Premises {
			if _, ok := s.hyps[p]; !ok {
				return nil, fmt.Errorf("%w: hypothesis %d premised on %d", core.ErrUnknownPremise, h.ID, p)
			}
		}
	}
	for _, c := range chains {
		for _, member := range c.Members {
			if _, ok := s.hyps[member]; !ok {
				return nil, fmt.Errorf("%w: chain %q member %d", core.ErrUnknownPremise, c.Name, member)
			}
		}
	}
	sort.Slice(s.ids, func(i, j int) bool { return s.ids[i] < s.ids[j] })
	return s, nil
}

// Get looks up a hypothesis by id.
func (s *Store) Get(id HypID) (*Hypothesis, bool) {
	h, ok := s.hyps[id]
	return h, ok
}

// Len returns the number of hypotheses.
func (s *Store) Len() int { return len(s.ids) }

// All returns every hypothesis in ascending id order. Iteration order is
// deterministic so evaluations are reproducible.
func (s *Store) All() []*Hypothesis {
	out := make([]*Hypothesis, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.hyps[id])
	}
	return out
}

// ByKind returns every hypothesis of the given kind in ascending id order.
func (s *Store) ByKind(kind Kind) []*Hypothesis {
	var out []*Hypothesis
	for _, id := range s.ids {
		if h := s.hyps[id]; h.Kind == kind {
			out = append(out, h)
		}
	}
	return out
}

// Chains returns the causal hypothesis chains declared for this run.
func (s *Store) Chains() []CausalHypChain { return s.chains }
