package ports

import (
	"context"
	"time"

	"svw.info/mathtiles/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Attempts int
	Duration time.Duration
}

// Index exposes the precomputed solution corpus. Retrieval may be backed
// by disk or database I/O, hence the contexts; the index itself is
// read-only after construction.
type Index interface {
	TargetsFor(ctx context.Context, k int) ([]int, error)
	SolutionsFor(ctx context.Context, k, target int) ([]string, error)
}

// Generator produces solvable rounds from the corpus. The seed fully
// determines target choice, line choice, and shuffle order.
type Generator interface {
	Generate(ctx context.Context, seed int64, k int) (*domain.Round, Stats, error)
}

// Hinter reveals a known solution for a round.
type Hinter interface {
	Hint(ctx context.Context, r *domain.Round) (domain.Hint, bool, error)
}

// Storage persists and retrieves finished rounds as JSON.
type Storage interface {
	Save(ctx context.Context, r *domain.Round) error
	Load(ctx context.Context, id string) (*domain.Round, error)
	List(ctx context.Context) ([]domain.RoundMeta, error)
}
