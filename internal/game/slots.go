// Package game models the player-facing side of a round: the slot
// arrangement, the recycled operator pool, the win predicate, and the
// round lifecycle.
package game

import (
	"errors"
	"fmt"

	"svw.info/mathtiles/internal/domain"
	"svw.info/mathtiles/internal/evaluator"
	"svw.info/mathtiles/internal/rational"
)

// ErrUnknownTile is returned when an arrangement references a tile id the
// lookup does not know about.
var ErrUnknownTile = errors.New("game: unknown tile id")

// Arrangement is the player's current placement: k number slots and k-1
// operator slots, alternating. An empty arrangement is the normal
// mid-interaction state, not an error.
type Arrangement struct {
	k       int
	numbers []domain.TileID // "" marks an empty slot
	ops     []domain.Op     // 0 marks an empty slot
}

// NewArrangement creates an empty arrangement for k tiles.
func NewArrangement(k int) *Arrangement {
	return &Arrangement{
		k:       k,
		numbers: make([]domain.TileID, k),
		ops:     make([]domain.Op, max(k-1, 0)),
	}
}

// K returns the tile count.
func (a *Arrangement) K() int { return a.k }

// PlaceNumber puts tile id into number slot i (0-based). A tile may occupy
// at most one slot, so placing an id that already sits elsewhere moves it.
func (a *Arrangement) PlaceNumber(i int, id domain.TileID) error {
	if i < 0 || i >= a.k {
		return fmt.Errorf("game: number slot %d out of range [0,%d)", i, a.k)
	}
	if id == "" {
		return errors.New("game: empty tile id")
	}
	for j, cur := range a.numbers {
		if cur == id && j != i {
			a.numbers[j] = ""
		}
	}
	a.numbers[i] = id
	return nil
}

// RemoveNumber clears number slot i, returning the id that was there.
func (a *Arrangement) RemoveNumber(i int) (domain.TileID, error) {
	if i < 0 || i >= a.k {
		return "", fmt.Errorf("game: number slot %d out of range [0,%d)", i, a.k)
	}
	id := a.numbers[i]
	a.numbers[i] = ""
	return id, nil
}

// PlaceOperator puts op into operator slot i (0-based, between number
// slots i and i+1).
func (a *Arrangement) PlaceOperator(i int, op domain.Op) error {
	if i < 0 || i >= len(a.ops) {
		return fmt.Errorf("game: operator slot %d out of range [0,%d)", i, len(a.ops))
	}
	if !domain.IsOpByte(byte(op)) {
		return fmt.Errorf("game: invalid operator %q", op)
	}
	a.ops[i] = op
	return nil
}

// RemoveOperator clears operator slot i.
func (a *Arrangement) RemoveOperator(i int) error {
	if i < 0 || i >= len(a.ops) {
		return fmt.Errorf("game: operator slot %d out of range [0,%d)", i, len(a.ops))
	}
	a.ops[i] = 0
	return nil
}

// Complete reports whether all 2k-1 slots are filled.
func (a *Arrangement) Complete() bool {
	for _, id := range a.numbers {
		if id == "" {
			return false
		}
	}
	for _, op := range a.ops {
		if op == 0 {
			return false
		}
	}
	return true
}

// Evaluate resolves the arrangement to an exact fraction. An incomplete
// arrangement returns complete=false with no evaluation and no error.
// A zero divisor surfaces rational.ErrDivisionByZero; the caller treats it
// as "not a win", never as a fault.
func (a *Arrangement) Evaluate(lookup func(domain.TileID) (int, bool)) (rational.Fraction, bool, error) {
	if !a.Complete() {
		return rational.Fraction{}, false, nil
	}
	nums := make([]int, a.k)
	for i, id := range a.numbers {
		v, ok := lookup(id)
		if !ok {
			return rational.Fraction{}, false, fmt.Errorf("%w: %s", ErrUnknownTile, id)
		}
		nums[i] = v
	}
	f, err := evaluator.Evaluate(nums, a.ops)
	if err != nil {
		return rational.Fraction{}, true, err
	}
	return f, true, nil
}

// IsWin reports whether the filled arrangement reaches target exactly.
// Incomplete arrangements and zero-divisor attempts are not wins.
func (a *Arrangement) IsWin(lookup func(domain.TileID) (int, bool), target int) bool {
	f, complete, err := a.Evaluate(lookup)
	if !complete || err != nil {
		return false
	}
	return f.EqualsInt(target)
}
