package game

// staffedDivisions collects, per faction, which divisions currently have a
// human in command. A Supreme staffs every division of its faction; a
// marshal staffs only its own. Production seats staff nothing.
func (g *Game) staffedDivisions() map[Faction][divisionCount + 1]bool {
	staffed := make(map[Faction][divisionCount + 1]bool, 2)
	for _, p := range g.players {
		set := staffed[p.Faction]
		if p.Role == RoleSupreme {
			for d := 1; d <= divisionCount; d++ {
				set[d] = true
			}
		} else if d := p.Role.Division(); d != 0 {
			set[d] = true
		}
		staffed[p.Faction] = set
	}
	return staffed
}

// runAIFallback gives idle units of unstaffed divisions a small per-tick
// chance to march somewhere on their own, biased into enemy ground, so a
// faction nobody is commanding still fights.
func (g *Game) runAIFallback() {
	staffed := g.staffedDivisions()

	for _, u := range g.units {
		if u.State != UnitIdle {
			continue
		}
		if set, ok := staffed[u.Faction]; ok && set[u.Division] {
			continue
		}
		if g.rng.Float64() >= g.cfg.AIMoveChance {
			continue
		}

		dest := g.randomObjective(u.Faction)
		if dest == nil {
			continue
		}
		start := g.grid.At(u.Q, u.R)
		path := g.grid.FindPath(start, dest, g.cfg.MaxPathLen)
		if len(path) == 0 {
			continue
		}
		u.SetPath(path)
	}
}

// randomObjective picks a destination cell, preferring enemy-held ground
// with probability AIEnemyBias and falling back to anywhere on the board.
func (g *Game) randomObjective(f Faction) *Cell {
	if g.rng.Float64() < g.cfg.AIEnemyBias {
		enemy := f.Enemy()
		// Bounded rejection sampling; the board is never empty of cells and
		// rarely empty of enemy ground, so a handful of draws is plenty.
		for i := 0; i < 8; i++ {
			c := g.grid.Cells[g.rng.Intn(len(g.grid.Cells))]
			if c.Owner == enemy {
				return c
			}
		}
	}
	return g.grid.Cells[g.rng.Intn(len(g.grid.Cells))]
}
