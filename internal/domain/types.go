package domain

// TileID is an opaque tile identifier. Tiles are compared by id, never by
// value: duplicate values are legal within one round.
type TileID string

// NumberTile is a draggable integer tile minted for one round.
type NumberTile struct {
	ID    TileID `json:"id"`
	Value int    `json:"value"`
}

// OperatorTile is a tile from the recycled operator pool. Consuming one
// into a slot mints a replacement with a fresh id, so operators never
// run out while numbers do.
type OperatorTile struct {
	ID TileID `json:"id"`
	Op Op     `json:"op"`
}

// Round is one puzzle instance: reach Target using every number tile once.
// Numbers is a uniform shuffle of the literals of SampleSolution; the
// multiset of values always equals the multiset parsed from that line.
// Immutable once created.
type Round struct {
	ID             string       `json:"id,omitempty"`
	K              int          `json:"k"`
	Target         int          `json:"target"`
	Numbers        []NumberTile `json:"numbers"`
	SampleSolution string       `json:"sampleSolution"`
	Seed           int64        `json:"seed,omitempty"`
	CreatedAt      int64        `json:"createdAt,omitempty"`
}

// RoundMeta is a lightweight listing entry for stored rounds.
type RoundMeta struct {
	ID        string `json:"id"`
	K         int    `json:"k"`
	Target    int    `json:"target"`
	CreatedAt int64  `json:"createdAt"`
}

// Hint reveals one known solution for a round: the corpus literals in
// their original (unshuffled) order and the operators between them.
type Hint struct {
	Expression string `json:"expression"`
	Numbers    []int  `json:"numbers"`
	Ops        []Op   `json:"ops"`
}

// Values returns the tile values in display order.
func (r *Round) Values() []int {
	out := make([]int, len(r.Numbers))
	for i, t := range r.Numbers {
		out[i] = t.Value
	}
	return out
}
