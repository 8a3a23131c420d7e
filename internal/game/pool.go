package game

import (
	"github.com/google/uuid"

	"svw.info/mathtiles/internal/domain"
)

// OperatorPool is the fixed working set of operator tiles, one per
// operator. Taking a tile mints a replacement with the same operator and a
// fresh id, so operators never run out while number tiles do.
type OperatorPool struct {
	tiles map[domain.TileID]domain.OperatorTile
}

// NewOperatorPool mints one tile per operator.
func NewOperatorPool() *OperatorPool {
	p := &OperatorPool{tiles: make(map[domain.TileID]domain.OperatorTile, len(domain.Ops))}
	for _, op := range domain.Ops {
		t := mint(op)
		p.tiles[t.ID] = t
	}
	return p
}

func mint(op domain.Op) domain.OperatorTile {
	return domain.OperatorTile{ID: domain.TileID(uuid.NewString()), Op: op}
}

// Take consumes the tile with the given id and refills the pool with a
// fresh tile carrying the same operator. The second return is false when
// the id is not currently in the pool.
func (p *OperatorPool) Take(id domain.TileID) (domain.OperatorTile, bool) {
	t, ok := p.tiles[id]
	if !ok {
		return domain.OperatorTile{}, false
	}
	delete(p.tiles, id)
	fresh := mint(t.Op)
	p.tiles[fresh.ID] = fresh
	return t, true
}

// Tiles returns the current pool contents in display order.
func (p *OperatorPool) Tiles() []domain.OperatorTile {
	out := make([]domain.OperatorTile, 0, len(p.tiles))
	for _, op := range domain.Ops {
		for _, t := range p.tiles {
			if t.Op == op {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
