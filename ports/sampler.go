package ports

import (
	"context"

	"sensemaker/internal/qubo"
)

// Sampler draws low-energy assignments from a binary quadratic model.
type Sampler interface {
	// Sample returns samples sorted ascending by energy, best first.
	Sample(ctx context.Context, b *qubo.BQM) ([]qubo.Sample, error)
}
