package qubo

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"gonum.org/v1/gonum/floats"

	"sensemaker/domain/core"
	"sensemaker/domain/hypothesis"
)

// seedStride separates per-read RNG streams. Reads are seeded as
// Seed + read*seedStride so results are reproducible regardless of
// which goroutine runs which read.
const seedStride = 0x9E3779B9

// SolverConfig controls the simulated-annealing search.
type SolverConfig struct {
	// Reads is the number of independent anneal runs (K).
	Reads int
	// Sweeps is the number of full variable passes per read.
	Sweeps int
	// TempStart and TempEnd bound the geometric temperature schedule.
	TempStart float64
	TempEnd   float64
	// Seed makes runs reproducible for fixed Reads/Sweeps/schedule.
	Seed int64
	// Parallelism bounds concurrent reads; <=0 means serial.
	Parallelism int
}

// DefaultSolverConfig returns the stock configuration.
func DefaultSolverConfig() SolverConfig {
	// Encoded energies put constraint violations near 1.0 and evidence
	// differences near 1e-3, so the schedule starts above the former and
	// ends well below the latter.
	return SolverConfig{
		Reads:       10,
		Sweeps:      1000,
		TempStart:   5.0,
		TempEnd:     1e-5,
		Seed:        1,
		Parallelism: 4,
	}
}

// Sample is one anneal read: a binary assignment and its energy.
type Sample struct {
	Assignment map[hypothesis.HypID]bool
	Energy     float64
}

// Solver is a simulated-annealing sampler over a BQM.
type Solver struct {
	cfg SolverConfig
}

// NewSolver creates a solver with the given configuration.
func NewSolver(cfg SolverConfig) *Solver {
	if cfg.Reads <= 0 {
		cfg.Reads = DefaultSolverConfig().Reads
	}
	if cfg.Sweeps <= 0 {
		cfg.Sweeps = DefaultSolverConfig().Sweeps
	}
	if cfg.TempStart <= 0 || cfg.TempEnd <= 0 || cfg.TempEnd > cfg.TempStart {
		def := DefaultSolverConfig()
		cfg.TempStart, cfg.TempEnd = def.TempStart, def.TempEnd
	}
	return &Solver{cfg: cfg}
}

// Sample runs the configured number of independent reads and returns
// them sorted ascending by energy, best first. For an empty variable
// set it returns a single empty assignment with energy 0. Cancellation
// is polled between sweeps; on cancellation every partial result is
// discarded.
func (s *Solver) Sample(ctx context.Context, b *BQM) ([]Sample, error) {
	vars := b.Variables()
	if len(vars) == 0 {
		return []Sample{{Assignment: map[hypothesis.HypID]bool{}, Energy: 0}}, nil
	}

	// Geometric schedule: log-spaced temperatures from TempStart down
	// to TempEnd.
	temps := make([]float64, s.cfg.Sweeps)
	floats.LogSpan(temps, s.cfg.TempStart, s.cfg.TempEnd)

	samples := make([]Sample, s.cfg.Reads)
	parallelism := s.cfg.Parallelism
	if parallelism <= 0 {
		parallelism = 1
	}
	sem := semaphore.NewWeighted(int64(parallelism))

	g, gctx := errgroup.WithContext(ctx)
	for read := 0; read < s.cfg.Reads; read++ {
		read := read
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			sample, err := s.anneal(gctx, b, vars, temps, s.cfg.Seed+int64(read)*seedStride)
			if err != nil {
				return err
			}
			samples[read] = sample
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrSolverInterrupted, err)
	}

	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Energy < samples[j].Energy })
	return samples, nil
}

// anneal performs one read: random start, then Metropolis sweeps down
// the temperature schedule.
func (s *Solver) anneal(ctx context.Context, b *BQM, vars []hypothesis.HypID, temps []float64, seed int64) (Sample, error) {
	rng := rand.New(rand.NewSource(seed))

	x := make(map[hypothesis.HypID]bool, len(vars))
	for _, v := range vars {
		x[v] = rng.Intn(2) == 1
	}

	for _, temp := range temps {
		if err := ctx.Err(); err != nil {
			return Sample{}, err
		}
		for _, idx := range rng.Perm(len(vars)) {
			v := vars[idx]
			delta := b.FlipDelta(x, v)
			if delta <= 0 || rng.Float64() < math.Exp(-delta/temp) {
				x[v] = !x[v]
			}
		}
	}
	return Sample{Assignment: x, Energy: b.Energy(x)}, nil
}
