package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"svw.info/mathtiles/internal/corpus"
	"svw.info/mathtiles/internal/domain"
	"svw.info/mathtiles/internal/evaluator"
	"svw.info/mathtiles/internal/ports"
)

// Generate samples a round of k tiles. The seed drives every random
// choice (target, line, shuffle), so a fixed seed reproduces the round
// apart from tile ids, which are always fresh.
func (g *CorpusGenerator) Generate(ctx context.Context, seed int64, k int) (*domain.Round, ports.Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))

	targets, err := g.Index.TargetsFor(ctx, k)
	if err != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, err
	}
	if len(targets) == 0 {
		// Retrying cannot help when the corpus has nothing for this k.
		return nil, ports.Stats{Duration: time.Since(start)},
			fmt.Errorf("%w: no targets for k=%d", corpus.ErrCorpusMissing, k)
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, ports.Stats{Attempts: attempt, Duration: time.Since(start)}, err
		}

		target := targets[rng.Intn(len(targets))]
		lines, err := g.Index.SolutionsFor(ctx, k, target)
		if err != nil {
			if errors.Is(err, corpus.ErrCorpusMissing) {
				continue // listed target with no usable entry: spend the attempt
			}
			return nil, ports.Stats{Attempts: attempt, Duration: time.Since(start)}, err
		}
		if len(lines) == 0 {
			continue
		}

		line := lines[rng.Intn(len(lines))]
		nums, err := evaluator.Literals(line, k)
		if err != nil {
			// Corrupted entry: swallow and retry within the shared budget.
			continue
		}

		shuffled := make([]int, len(nums))
		copy(shuffled, nums)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		tiles := make([]domain.NumberTile, len(shuffled))
		for i, v := range shuffled {
			tiles[i] = domain.NumberTile{ID: domain.TileID(uuid.NewString()), Value: v}
		}

		r := &domain.Round{
			ID:             uuid.NewString(),
			K:              k,
			Target:         target,
			Numbers:        tiles,
			SampleSolution: line,
			Seed:           seed,
			CreatedAt:      time.Now().UnixNano(),
		}
		return r, ports.Stats{Attempts: attempt, Duration: time.Since(start)}, nil
	}

	return nil, ports.Stats{Attempts: maxAttempts, Duration: time.Since(start)},
		fmt.Errorf("%w after %d attempts (k=%d)", ErrNoSolvableTarget, maxAttempts, k)
}
