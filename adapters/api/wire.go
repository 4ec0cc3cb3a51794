package api

import (
	"sort"

	"sensemaker/app"
	"sensemaker/domain/core"
	"sensemaker/domain/hypothesis"
	"sensemaker/internal/contradiction"
)

// EvaluateRequest is the wire form of an evaluation call: the full
// hypothesis store plus the parameter sets to evaluate it under.
type EvaluateRequest struct {
	Hypotheses    []*hypothesis.Hypothesis  `json:"hypotheses"`
	Chains        []chainWire               `json:"chains,omitempty"`
	ParameterSets []hypothesis.ParameterSet `json:"parameter_sets"`
}

type chainWire struct {
	Name    string             `json:"name"`
	Members []hypothesis.HypID `json:"members"`
}

// Store builds the domain store from the request payload.
func (r EvaluateRequest) Store() (*hypothesis.Store, error) {
	chains := make([]hypothesis.CausalHypChain, 0, len(r.Chains))
	for _, c := range r.Chains {
		chains = append(chains, hypothesis.NewCausalHypChain(c.Name, c.Members))
	}
	return hypothesis.NewStore(r.Hypotheses, chains)
}

// EvaluateResponse is the wire form of an evaluation result.
type EvaluateResponse struct {
	RunID     string            `json:"run_id"`
	RuntimeMs int64             `json:"runtime_ms"`
	Sets      []solutionSetWire `json:"sets"`
}

type solutionSetWire struct {
	ParamSetID     int                      `json:"param_set_id"`
	Solutions      []solutionWire           `json:"solutions"`
	Summary        hypothesis.EnergySummary `json:"summary"`
	Contradictions []contradictionWire      `json:"contradictions,omitempty"`
	Plot           *plotWire                `json:"plot,omitempty"`
}

type solutionWire struct {
	ID       int                `json:"id"`
	Energy   float64            `json:"energy"`
	Accepted []hypothesis.HypID `json:"accepted"`
}

type contradictionWire struct {
	Kind        contradiction.Kind `json:"kind"`
	Hyps        []hypothesis.HypID `json:"hyps"`
	Explanation string             `json:"explanation,omitempty"`
}

type plotWire struct {
	Steps     map[int][]hypothesis.HypID `json:"steps"`
	Recurring map[int][]hypothesis.HypID `json:"recurring"`
}

// toResponse flattens an evaluation result into wire form. Sets are
// ordered by parameter set id.
func toResponse(store *hypothesis.Store, result *app.EvaluationResult, ids []int) EvaluateResponse {
	resp := EvaluateResponse{
		RunID:     result.RunID.String(),
		RuntimeMs: result.RuntimeMs,
		Sets:      make([]solutionSetWire, 0, len(ids)),
	}
	for _, id := range ids {
		set, ok := result.Sets[id]
		if !ok {
			continue
		}
		sw := solutionSetWire{
			ParamSetID: id,
			Solutions:  make([]solutionWire, 0, len(set.Solutions)),
			Summary:    set.Summary,
		}
		for _, sol := range set.Solutions {
			sw.Solutions = append(sw.Solutions, solutionWire{
				ID:       sol.ID,
				Energy:   sol.Energy,
				Accepted: sol.AcceptedIDs(),
			})
		}
		for _, c := range result.Contradictions[id] {
			sw.Contradictions = append(sw.Contradictions, contradictionWire{
				Kind:        c.Kind,
				Hyps:        c.Hyps,
				Explanation: c.Explanation,
			})
		}
		if plot, ok := app.ExtractPlot(store, set); ok {
			sw.Plot = &plotWire{Steps: plot.Steps, Recurring: plot.Recurring}
		}
		resp.Sets = append(resp.Sets, sw)
	}
	return resp
}

// RunResponse is the wire form of a stored run: every persisted
// solution grouped by parameter set, ordered by parameter set id.
type RunResponse struct {
	RunID string       `json:"run_id"`
	Sets  []runSetWire `json:"sets"`
}

type runSetWire struct {
	ParamSetID int            `json:"param_set_id"`
	Solutions  []solutionWire `json:"solutions"`
}

func toRunResponse(runID core.RunID, sets map[int][]hypothesis.Solution) RunResponse {
	ids := make([]int, 0, len(sets))
	for id := range sets {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	resp := RunResponse{RunID: runID.String(), Sets: make([]runSetWire, 0, len(ids))}
	for _, id := range ids {
		sw := runSetWire{ParamSetID: id, Solutions: make([]solutionWire, 0, len(sets[id]))}
		for _, sol := range sets[id] {
			sw.Solutions = append(sw.Solutions, solutionWire{
				ID:       sol.ID,
				Energy:   sol.Energy,
				Accepted: sol.AcceptedIDs(),
			})
		}
		resp.Sets = append(resp.Sets, sw)
	}
	return resp
}
