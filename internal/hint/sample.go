// Package hint reveals known solutions for stuck players.
package hint

import (
	"context"

	"svw.info/mathtiles/internal/domain"
	"svw.info/mathtiles/internal/evaluator"
)

// SampleHinter reveals the round's stored sample solution: the corpus
// literals in their original order with the operators between them. Any
// other arrangement reaching the target still counts as a win; the sample
// only proves solvability.
type SampleHinter struct{}

func NewSample() *SampleHinter { return &SampleHinter{} }

func (h *SampleHinter) Hint(ctx context.Context, r *domain.Round) (domain.Hint, bool, error) {
	if r == nil || r.SampleSolution == "" {
		return domain.Hint{}, false, nil
	}
	nums, ops, err := evaluator.Tokenize(r.SampleSolution)
	if err != nil {
		return domain.Hint{}, false, err
	}
	return domain.Hint{Expression: r.SampleSolution, Numbers: nums, Ops: ops}, true, nil
}
