package game

import "testing"

func TestNewGridSplitsOwnershipByHalf(t *testing.T) {
	g := NewGrid(20, 12)

	for r := 0; r < g.H; r++ {
		for q := 0; q < g.W; q++ {
			c := g.At(q, r)
			if c == nil {
				t.Fatalf("At(%d,%d) = nil inside bounds", q, r)
			}
			if c.ID != r*g.W+q {
				t.Fatalf("cell (%d,%d) has id %d, want %d", q, r, c.ID, r*g.W+q)
			}
			want := FactionRed
			if q >= g.W/2 {
				want = FactionBlue
			}
			if c.Owner != want {
				t.Fatalf("cell (%d,%d) owned by %s, want %s", q, r, c.Owner, want)
			}
		}
	}

	counts := g.CountByOwner()
	if counts[FactionRed] != 120 || counts[FactionBlue] != 120 {
		t.Fatalf("ownership counts = %v, want 120 red / 120 blue", counts)
	}
}

func TestAtAndByIDOutOfBounds(t *testing.T) {
	g := NewGrid(8, 8)

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}} {
		if got := g.At(c[0], c[1]); got != nil {
			t.Fatalf("At(%d,%d) = cell %d, want nil", c[0], c[1], got.ID)
		}
	}
	if g.ByID(-1) != nil || g.ByID(64) != nil {
		t.Fatal("ByID outside range should return nil")
	}
	if c := g.ByID(63); c == nil || c.Q != 7 || c.R != 7 {
		t.Fatalf("ByID(63) = %+v, want cell (7,7)", c)
	}
}

func TestNeighborsRowParity(t *testing.T) {
	g := NewGrid(6, 6)

	tests := []struct {
		name string
		q, r int
		want [][2]int
	}{
		{"even row leans west", 2, 2, [][2]int{{3, 2}, {1, 2}, {2, 1}, {1, 1}, {2, 3}, {1, 3}}},
		{"odd row leans east", 2, 3, [][2]int{{3, 3}, {1, 3}, {3, 2}, {2, 2}, {3, 4}, {2, 4}}},
	}
	for _, tt := range tests {
		got := g.Neighbors(tt.q, tt.r, nil)
		if len(got) != len(tt.want) {
			t.Fatalf("%s: %d neighbors, want %d", tt.name, len(got), len(tt.want))
		}
		seen := make(map[[2]int]bool, len(got))
		for _, c := range got {
			seen[[2]int{c.Q, c.R}] = true
		}
		for _, w := range tt.want {
			if !seen[w] {
				t.Fatalf("%s: missing neighbor (%d,%d)", tt.name, w[0], w[1])
			}
		}
	}
}

func TestNeighborsClippedAtEdges(t *testing.T) {
	g := NewGrid(6, 6)

	got := g.Neighbors(0, 0, nil)
	if len(got) != 2 {
		t.Fatalf("corner (0,0) has %d neighbors, want 2", len(got))
	}
	for _, c := range got {
		if !g.Contains(c.Q, c.R) {
			t.Fatalf("neighbor (%d,%d) is off the board", c.Q, c.R)
		}
	}

	// Every cell's neighbors stay in bounds, no matter the parity.
	for _, c := range g.Cells {
		for _, n := range g.Neighbors(c.Q, c.R, nil) {
			if g.At(n.Q, n.R) != n {
				t.Fatalf("neighbor of (%d,%d) resolves to a different cell", c.Q, c.R)
			}
		}
	}
}

func TestNeighborsReusesDst(t *testing.T) {
	g := NewGrid(6, 6)

	scratch := make([]*Cell, 0, 6)
	first := g.Neighbors(2, 2, scratch[:0])
	second := g.Neighbors(3, 3, scratch[:0])
	if len(first) != 6 || len(second) != 6 {
		t.Fatalf("interior cells have %d/%d neighbors, want 6/6", len(first), len(second))
	}
}
