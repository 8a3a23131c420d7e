package game

import (
	"context"
	"testing"

	"svw.info/mathtiles/internal/domain"
	"svw.info/mathtiles/internal/ports"
)

func fixedLookup(m map[domain.TileID]int) func(domain.TileID) (int, bool) {
	return func(id domain.TileID) (int, bool) {
		v, ok := m[id]
		return v, ok
	}
}

func TestArrangementIncomplete(t *testing.T) {
	a := NewArrangement(3)
	lookup := fixedLookup(map[domain.TileID]int{"a": 2, "b": 3, "c": 4})

	// Partially filled: incomplete, no evaluation, no error.
	if err := a.PlaceNumber(0, "a"); err != nil {
		t.Fatalf("PlaceNumber: %v", err)
	}
	if err := a.PlaceOperator(0, domain.OpAdd); err != nil {
		t.Fatalf("PlaceOperator: %v", err)
	}
	_, complete, err := a.Evaluate(lookup)
	if complete || err != nil {
		t.Fatalf("partial arrangement: complete=%v err=%v", complete, err)
	}
	if a.IsWin(lookup, 14) {
		t.Fatal("partial arrangement cannot win")
	}
}

func TestArrangementWin(t *testing.T) {
	a := NewArrangement(3)
	lookup := fixedLookup(map[domain.TileID]int{"a": 2, "b": 3, "c": 4})

	fill := func() {
		a.PlaceNumber(0, "a")
		a.PlaceNumber(1, "b")
		a.PlaceNumber(2, "c")
		a.PlaceOperator(0, domain.OpAdd)
		a.PlaceOperator(1, domain.OpMul)
	}
	fill()
	// 2+3*4 = 14 under standard precedence.
	f, complete, err := a.Evaluate(lookup)
	if err != nil || !complete {
		t.Fatalf("Evaluate: complete=%v err=%v", complete, err)
	}
	if !f.EqualsInt(14) {
		t.Fatalf("2+3*4 = %s, want 14", f)
	}
	if !a.IsWin(lookup, 14) || a.IsWin(lookup, 20) {
		t.Fatal("win predicate disagrees with evaluation")
	}
	// Re-evaluating the same filled arrangement is deterministic.
	if !a.IsWin(lookup, 14) {
		t.Fatal("win is not idempotent")
	}
}

func TestArrangementDivisionByZeroIsNotWin(t *testing.T) {
	a := NewArrangement(2)
	lookup := fixedLookup(map[domain.TileID]int{"a": 1, "z": 0})
	a.PlaceNumber(0, "a")
	a.PlaceNumber(1, "z")
	a.PlaceOperator(0, domain.OpDiv)

	_, complete, err := a.Evaluate(lookup)
	if !complete || err == nil {
		t.Fatalf("1/0: complete=%v err=%v, want complete with error", complete, err)
	}
	if a.IsWin(lookup, 1) {
		t.Fatal("1/0 must never win")
	}
}

func TestArrangementTileMovesNotDuplicates(t *testing.T) {
	a := NewArrangement(3)
	a.PlaceNumber(0, "a")
	// Same id dropped elsewhere vacates the old slot.
	if err := a.PlaceNumber(2, "a"); err != nil {
		t.Fatalf("PlaceNumber: %v", err)
	}
	id, _ := a.RemoveNumber(0)
	if id != "" {
		t.Fatalf("slot 0 still holds %q after move", id)
	}
	id, _ = a.RemoveNumber(2)
	if id != "a" {
		t.Fatalf("slot 2 holds %q, want a", id)
	}
}

func TestArrangementDuplicateValuesDistinctTiles(t *testing.T) {
	// Two tiles with the same value are distinct by id.
	a := NewArrangement(2)
	lookup := fixedLookup(map[domain.TileID]int{"x1": 5, "x2": 5})
	a.PlaceNumber(0, "x1")
	a.PlaceNumber(1, "x2")
	a.PlaceOperator(0, domain.OpAdd)
	if !a.IsWin(lookup, 10) {
		t.Fatal("5+5 should win 10")
	}
}

func TestOperatorPoolRecycles(t *testing.T) {
	p := NewOperatorPool()
	tiles := p.Tiles()
	if len(tiles) != 4 {
		t.Fatalf("pool has %d tiles, want 4", len(tiles))
	}

	var mul domain.OperatorTile
	for _, tile := range tiles {
		if tile.Op == domain.OpMul {
			mul = tile
		}
	}
	taken, ok := p.Take(mul.ID)
	if !ok || taken.Op != domain.OpMul {
		t.Fatalf("Take(%s) = %v, %v", mul.ID, taken, ok)
	}

	// The pool refills with the same operator under a fresh id.
	var refill domain.OperatorTile
	for _, tile := range p.Tiles() {
		if tile.Op == domain.OpMul {
			refill = tile
		}
	}
	if refill.ID == "" || refill.ID == mul.ID {
		t.Fatalf("pool did not mint a fresh × tile: %v", refill)
	}

	// The consumed id is gone.
	if _, ok := p.Take(mul.ID); ok {
		t.Fatal("consumed tile can be taken twice")
	}
}

// scriptedGen returns a fixed round, for session tests.
type scriptedGen struct {
	round *domain.Round
	calls int
}

func (g *scriptedGen) Generate(ctx context.Context, seed int64, k int) (*domain.Round, ports.Stats, error) {
	g.calls++
	return g.round, ports.Stats{Attempts: 1}, nil
}

func testRound() *domain.Round {
	return &domain.Round{
		ID:     "r1",
		K:      3,
		Target: 14,
		Numbers: []domain.NumberTile{
			{ID: "n1", Value: 4},
			{ID: "n2", Value: 2},
			{ID: "n3", Value: 3},
		},
		SampleSolution: "2+3*4",
	}
}

func TestSessionSolvesOnce(t *testing.T) {
	s := NewSession(&scriptedGen{round: testRound()})
	if _, err := s.StartRound(context.Background(), 1, 3); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if s.State() != domain.Ready {
		t.Fatalf("state = %v, want ready", s.State())
	}

	// 2+3*4 = 14 using the shuffled tiles by id.
	if err := s.PlaceNumber(0, "n2"); err != nil {
		t.Fatalf("PlaceNumber: %v", err)
	}
	s.PlaceNumber(1, "n3")
	s.PlaceNumber(2, "n1")
	pool := s.Pool().Tiles()
	for _, tile := range pool {
		switch tile.Op {
		case domain.OpAdd:
			if err := s.PlaceOperator(0, tile.ID); err != nil {
				t.Fatalf("PlaceOperator: %v", err)
			}
		case domain.OpMul:
			if err := s.PlaceOperator(1, tile.ID); err != nil {
				t.Fatalf("PlaceOperator: %v", err)
			}
		}
	}

	if s.CheckWin() != true {
		t.Fatal("expected win")
	}
	if s.State() != domain.Solved {
		t.Fatalf("state = %v, want solved", s.State())
	}

	// Solved is terminal: edits are ignored, CheckWin stays true.
	if err := s.RemoveNumber(0); err != nil {
		t.Fatalf("RemoveNumber after solve: %v", err)
	}
	if !s.CheckWin() {
		t.Fatal("solved round regressed")
	}
}

func TestSessionRejectsForeignTile(t *testing.T) {
	s := NewSession(&scriptedGen{round: testRound()})
	if _, err := s.StartRound(context.Background(), 1, 3); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if err := s.PlaceNumber(0, "intruder"); err != ErrUnknownTile {
		t.Fatalf("err = %v, want ErrUnknownTile", err)
	}
}

func TestSessionEditsBeforeRound(t *testing.T) {
	s := NewSession(&scriptedGen{round: testRound()})
	if err := s.PlaceNumber(0, "n1"); err != ErrNoRound {
		t.Fatalf("err = %v, want ErrNoRound", err)
	}
	if s.CheckWin() {
		t.Fatal("no round cannot win")
	}
}
