// Package generator samples solvable rounds from the solution corpus.
// Solvability is guaranteed by construction: every round's number multiset
// comes from a corpus line already known to reach the target.
package generator

import (
	"errors"

	"svw.info/mathtiles/internal/ports"
)

// ErrNoSolvableTarget is returned when the attempt budget runs out without
// producing a usable round. Callers should offer a retry, not crash.
var ErrNoSolvableTarget = errors.New("generator: no solvable target found")

// maxAttempts bounds the retry loop. The budget is shared across every
// retryable failure kind (empty retrieval, malformed line).
const maxAttempts = 40

// CorpusGenerator draws rounds from a corpus index.
type CorpusGenerator struct {
	Index ports.Index
}

// NewCorpusGenerator wires a generator over the given index.
func NewCorpusGenerator(idx ports.Index) *CorpusGenerator {
	return &CorpusGenerator{Index: idx}
}
