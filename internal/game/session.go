package game

import (
	"context"
	"errors"
	"time"

	"svw.info/mathtiles/internal/domain"
	"svw.info/mathtiles/internal/ports"
)

// ErrRoundInFlight is returned when StartRound is called while a previous
// generation has not finished. The session ignores the new request; the
// stale result is discarded by the caller, not cancelled.
var ErrRoundInFlight = errors.New("game: round generation already in flight")

// ErrNoRound is returned for slot edits before any round is ready.
var ErrNoRound = errors.New("game: no active round")

// Session drives one puzzle at a time for one player. It owns the only
// mutable state in the system: the current round and arrangement. It is
// not safe for concurrent use; the caller serializes access (spec of the
// original: one player session, cooperative single-threaded driving).
type Session struct {
	gen ports.Generator

	state domain.RoundState
	round *domain.Round
	byID  map[domain.TileID]int
	arr   *Arrangement
	pool  *OperatorPool
}

// NewSession creates an idle session over the given generator.
func NewSession(gen ports.Generator) *Session {
	return &Session{gen: gen, state: domain.Ready}
}

// State returns the current lifecycle state.
func (s *Session) State() domain.RoundState { return s.state }

// Round returns the active round, or nil.
func (s *Session) Round() *domain.Round { return s.round }

// Arrangement returns the active slot arrangement, or nil.
func (s *Session) Arrangement() *Arrangement { return s.arr }

// Pool returns the operator source pool, or nil before the first round.
func (s *Session) Pool() *OperatorPool { return s.pool }

// StartRound generates and installs a new round, replacing any previous
// one wholesale. A zero seed picks a time-derived one. While a generation
// is in flight the session rejects further requests with ErrRoundInFlight.
func (s *Session) StartRound(ctx context.Context, seed int64, k int) (*domain.Round, error) {
	if s.state == domain.Generating {
		return nil, ErrRoundInFlight
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.state = domain.Generating
	r, _, err := s.gen.Generate(ctx, seed, k)
	if err != nil {
		// Back to Ready so the player can retry.
		s.state = domain.Ready
		return nil, err
	}
	s.round = r
	s.byID = make(map[domain.TileID]int, len(r.Numbers))
	for _, t := range r.Numbers {
		s.byID[t.ID] = t.Value
	}
	s.arr = NewArrangement(r.K)
	s.pool = NewOperatorPool()
	s.state = domain.Ready
	return r, nil
}

// PlaceNumber drops a number tile into slot i.
func (s *Session) PlaceNumber(i int, id domain.TileID) error {
	if s.arr == nil {
		return ErrNoRound
	}
	if s.state == domain.Solved {
		return nil // round is being torn down; edits are ignored
	}
	if _, ok := s.byID[id]; !ok {
		return ErrUnknownTile
	}
	return s.arr.PlaceNumber(i, id)
}

// PlaceOperator consumes operator tile id from the pool into slot i.
func (s *Session) PlaceOperator(i int, id domain.TileID) error {
	if s.arr == nil {
		return ErrNoRound
	}
	if s.state == domain.Solved {
		return nil
	}
	t, ok := s.pool.Take(id)
	if !ok {
		return ErrUnknownTile
	}
	return s.arr.PlaceOperator(i, t.Op)
}

// RemoveNumber clears number slot i.
func (s *Session) RemoveNumber(i int) error {
	if s.arr == nil {
		return ErrNoRound
	}
	if s.state == domain.Solved {
		return nil
	}
	_, err := s.arr.RemoveNumber(i)
	return err
}

// RemoveOperator clears operator slot i.
func (s *Session) RemoveOperator(i int) error {
	if s.arr == nil {
		return ErrNoRound
	}
	if s.state == domain.Solved {
		return nil
	}
	return s.arr.RemoveOperator(i)
}

// CheckWin evaluates the current arrangement against the round target.
// The first win transitions the round to Solved; the transition fires at
// most once, and later edits are no longer evaluated.
func (s *Session) CheckWin() bool {
	if s.arr == nil || s.round == nil {
		return false
	}
	if s.state == domain.Solved {
		return true
	}
	win := s.arr.IsWin(s.lookup, s.round.Target)
	if win {
		s.state = domain.Solved
	}
	return win
}

func (s *Session) lookup(id domain.TileID) (int, bool) {
	v, ok := s.byID[id]
	return v, ok
}
