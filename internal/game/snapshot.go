package game

import "github.com/asd22jp/takenokowar/internal/types"

// Snapshot serializes the full world into the wire shape. Called by the
// broadcaster right after Step, on the same goroutine, so it reads state
// without locks. Every tick carries the full state, never a delta.
func (g *Game) Snapshot() types.StateUpdate {
	cells := make([]types.CellState, len(g.grid.Cells))
	for i, c := range g.grid.Cells {
		cells[i] = types.CellState{ID: c.ID, Q: c.Q, R: c.R, Owner: string(c.Owner)}
	}

	units := make([]types.UnitState, len(g.units))
	for i, u := range g.units {
		units[i] = types.UnitState{
			ID:       u.ID,
			Faction:  string(u.Faction),
			Type:     u.Type,
			HP:       u.HP,
			MaxHP:    u.Stats.HP,
			Q:        u.Q,
			R:        u.R,
			Division: u.Division,
			State:    u.State.String(),
			Progress: u.Progress,
		}
	}

	economies := make(map[string]types.EconomyState, len(g.economies))
	for f, e := range g.economies {
		economies[string(f)] = types.EconomyState{
			Political: e.Political,
			Manpower:  e.Manpower,
			Equipment: e.Equipment,
		}
	}

	return types.StateUpdate{
		Type:      "state",
		Tick:      g.tick,
		Over:      g.over,
		Winner:    g.winner,
		Cells:     cells,
		Units:     units,
		Economies: economies,
	}
}
