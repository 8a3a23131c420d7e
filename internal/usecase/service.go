package usecase

import (
	"context"
	"errors"

	"svw.info/mathtiles/internal/domain"
	"svw.info/mathtiles/internal/evaluator"
	"svw.info/mathtiles/internal/ports"
	"svw.info/mathtiles/internal/rational"
)

type Service struct {
	Index     ports.Index
	Generator ports.Generator
	Hinter    ports.Hinter
	Storage   ports.Storage
}

func NewService(idx ports.Index, g ports.Generator, h ports.Hinter, st ports.Storage) *Service {
	return &Service{Index: idx, Generator: g, Hinter: h, Storage: st}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Generate(ctx context.Context, seed int64, k int) (*domain.Round, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, k)
}

func (u *Service) Targets(ctx context.Context, k int) ([]int, error) {
	if u.Index == nil {
		return nil, errNotConfigured
	}
	return u.Index.TargetsFor(ctx, k)
}

// Check evaluates a complete structured attempt against target and
// returns the exact value rendered as "n" or "n/d". A zero divisor is a
// miss with an empty value, not an error: dividing by zero cannot reach
// an integer target.
func (u *Service) Check(ctx context.Context, nums []int, ops []domain.Op, target int) (bool, string, error) {
	f, err := evaluator.Evaluate(nums, ops)
	if err != nil {
		if errors.Is(err, rational.ErrDivisionByZero) {
			return false, "", nil
		}
		return false, "", err
	}
	return f.EqualsInt(target), f.String(), nil
}

func (u *Service) Hint(ctx context.Context, r *domain.Round) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	return u.Hinter.Hint(ctx, r)
}

// Persistence
func (u *Service) Save(ctx context.Context, r *domain.Round) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, r)
}
func (u *Service) Load(ctx context.Context, id string) (*domain.Round, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]domain.RoundMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
