package game

// Faction identifies one of the two sides. The empty string means unowned,
// which never occurs after grid init but keeps zero values harmless.
type Faction string

const (
	FactionRed  Faction = "red"
	FactionBlue Faction = "blue"
)

func ParseFaction(s string) (Faction, bool) {
	switch Faction(s) {
	case FactionRed:
		return FactionRed, true
	case FactionBlue:
		return FactionBlue, true
	}
	return "", false
}

func (f Faction) Enemy() Faction {
	if f == FactionRed {
		return FactionBlue
	}
	return FactionRed
}

// Cell is one grid location. ID and coordinates are fixed at init; only the
// owner ever changes, and only as the terminal effect of a completed move.
type Cell struct {
	ID    int
	Q     int
	R     int
	Owner Faction
}

// Grid is a W*H board stored flat, id = r*W + q, so lookup is one index op.
// Adjacency is the odd-r offset scheme: horizontal neighbors always, the
// diagonal pairs alternating with row parity, six candidates per cell.
type Grid struct {
	W     int
	H     int
	Cells []*Cell
}

// NewGrid builds the board and paints the initial ownership split: left
// half red, right half blue.
func NewGrid(w, h int) *Grid {
	g := &Grid{
		W:     w,
		H:     h,
		Cells: make([]*Cell, w*h),
	}
	for r := 0; r < h; r++ {
		for q := 0; q < w; q++ {
			owner := FactionRed
			if q >= w/2 {
				owner = FactionBlue
			}
			g.Cells[r*w+q] = &Cell{ID: r*w + q, Q: q, R: r, Owner: owner}
		}
	}
	return g
}

func (g *Grid) Contains(q, r int) bool {
	return q >= 0 && q < g.W && r >= 0 && r < g.H
}

// At returns the cell at (q, r), or nil when out of bounds.
func (g *Grid) At(q, r int) *Cell {
	if !g.Contains(q, r) {
		return nil
	}
	return g.Cells[r*g.W+q]
}

// ByID returns the cell with the given id, or nil for an invalid id.
func (g *Grid) ByID(id int) *Cell {
	if id < 0 || id >= len(g.Cells) {
		return nil
	}
	return g.Cells[id]
}

// evenROffsets and oddROffsets enumerate the six neighbor candidates in a
// fixed order: E, W, then the four parity-dependent diagonals.
var (
	evenROffsets = [6][2]int{{1, 0}, {-1, 0}, {0, -1}, {-1, -1}, {0, 1}, {-1, 1}}
	oddROffsets  = [6][2]int{{1, 0}, {-1, 0}, {1, -1}, {0, -1}, {1, 1}, {0, 1}}
)

// Neighbors appends the existing neighbors of (q, r) to dst and returns it.
// Callers reuse dst across calls to keep the per-tick allocation flat.
func (g *Grid) Neighbors(q, r int, dst []*Cell) []*Cell {
	offsets := &evenROffsets
	if r%2 != 0 {
		offsets = &oddROffsets
	}
	for _, o := range offsets {
		if c := g.At(q+o[0], r+o[1]); c != nil {
			dst = append(dst, c)
		}
	}
	return dst
}

// CountByOwner tallies cells per owning faction.
func (g *Grid) CountByOwner() map[Faction]int {
	counts := make(map[Faction]int)
	for _, c := range g.Cells {
		counts[c.Owner]++
	}
	return counts
}
