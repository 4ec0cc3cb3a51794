package app

import (
	"context"
	"fmt"
	"log"
	"time"

	montanaflynn "github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"sensemaker/domain/core"
	"sensemaker/domain/hypothesis"
	"sensemaker/internal/contradiction"
	"sensemaker/internal/qubo"
	"sensemaker/internal/score"
	"sensemaker/ports"
)

// EvaluatorService orchestrates the full evaluation pipeline: scoring,
// constraint encoding, annealing, and solution assembly, once per
// parameter set. The hypothesis store is read-only throughout, so
// parameter sets evaluate concurrently against the same store.
type EvaluatorService struct {
	sampler ports.Sampler
	repo    ports.SolutionRepository
	offset  float64
}

// NewEvaluatorService creates an evaluator. repo may be nil, in which
// case results are not persisted. offset <= 0 falls back to the stock
// constraint offset.
func NewEvaluatorService(sampler ports.Sampler, repo ports.SolutionRepository, offset float64) *EvaluatorService {
	if offset <= 0 {
		offset = score.DefaultOffset
	}
	return &EvaluatorService{sampler: sampler, repo: repo, offset: offset}
}

// EvaluationResult is the outcome of one evaluation run across all
// requested parameter sets, keyed by parameter set id.
type EvaluationResult struct {
	RunID          core.RunID
	Sets           map[int]*hypothesis.SolutionSet
	Contradictions map[int][]contradiction.Contradiction
	RuntimeMs      int64
}

// Evaluate runs the pipeline for every parameter set and returns the
// ranked solution sets. Parameter sets are independent and run
// concurrently; results are deterministic for a fixed store, parameter
// sets, and sampler seed regardless of scheduling.
func (s *EvaluatorService) Evaluate(ctx context.Context, store *hypothesis.Store, paramSets []hypothesis.ParameterSet) (*EvaluationResult, error) {
	start := time.Now()

	seen := make(map[int]bool, len(paramSets))
	for _, ps := range paramSets {
		if err := ps.Validate(); err != nil {
			return nil, fmt.Errorf("parameter set %d: %w", ps.ID, err)
		}
		if seen[ps.ID] {
			return nil, fmt.Errorf("%w: duplicate id %d", core.ErrInvalidParameterSet, ps.ID)
		}
		seen[ps.ID] = true
	}

	runID := core.NewRunID()
	log.Printf("[Evaluator] run %s: %d hypotheses, %d parameter sets", runID, store.Len(), len(paramSets))

	sets := make([]*hypothesis.SolutionSet, len(paramSets))
	contras := make([][]contradiction.Contradiction, len(paramSets))

	g, gctx := errgroup.WithContext(ctx)
	for i, ps := range paramSets {
		i, ps := i, ps
		g.Go(func() error {
			set, found, err := s.evaluateOne(gctx, store, ps)
			if err != nil {
				return fmt.Errorf("parameter set %d: %w", ps.ID, err)
			}
			sets[i] = set
			contras[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &EvaluationResult{
		RunID:          runID,
		Sets:           make(map[int]*hypothesis.SolutionSet, len(paramSets)),
		Contradictions: make(map[int][]contradiction.Contradiction, len(paramSets)),
	}
	for i, ps := range paramSets {
		result.Sets[ps.ID] = sets[i]
		result.Contradictions[ps.ID] = contras[i]
	}

	if s.repo != nil {
		for _, ps := range paramSets {
			if err := s.repo.SaveSolutionBatch(ctx, runID, ps.ID, result.Sets[ps.ID].Solutions); err != nil {
				return nil, fmt.Errorf("persisting solutions for parameter set %d: %w", ps.ID, err)
			}
		}
	}

	result.RuntimeMs = time.Since(start).Milliseconds()
	log.Printf("[Evaluator] run %s: completed in %dms", runID, result.RuntimeMs)
	return result, nil
}

// evaluateOne runs the pipeline for a single parameter set.
func (s *EvaluatorService) evaluateOne(ctx context.Context, store *hypothesis.Store, ps hypothesis.ParameterSet) (*hypothesis.SolutionSet, []contradiction.Contradiction, error) {
	model := hypothesis.NewScoreModel()

	score.NewAggregator(ps).Score(store, model)
	score.NewPremiseBuilder(s.offset).Apply(store, model)

	found := contradiction.NewDetector(s.offset).Detect(store, model)
	if len(found) > 0 {
		log.Printf("[Evaluator] parameter set %d: %d contradictions encoded", ps.ID, len(found))
	}

	if err := model.Validate(); err != nil {
		return nil, nil, err
	}

	samples, err := s.sampler.Sample(ctx, qubo.Encode(model, s.offset))
	if err != nil {
		return nil, nil, err
	}

	set := &hypothesis.SolutionSet{
		Parameters: ps,
		Solutions:  assembleSolutions(samples, model, ps),
		Scores:     model,
		Summary:    summarizeEnergies(samples),
	}
	return set, found, nil
}

// summarizeEnergies computes the energy distribution across samples.
// Samples arrive sorted ascending, so min and max read off the ends.
func summarizeEnergies(samples []qubo.Sample) hypothesis.EnergySummary {
	if len(samples) == 0 {
		return hypothesis.EnergySummary{}
	}
	energies := make([]float64, len(samples))
	for i, sm := range samples {
		energies[i] = sm.Energy
	}
	median, _ := montanaflynn.Median(energies)
	stddev := 0.0
	if len(energies) > 1 {
		stddev = stat.StdDev(energies, nil)
	}
	return hypothesis.EnergySummary{
		Mean:   stat.Mean(energies, nil),
		StdDev: stddev,
		Median: median,
		Min:    energies[0],
		Max:    energies[len(energies)-1],
	}
}
