package game

// FindPath runs an unweighted breadth-first search from start to dest and
// returns the route as cells to enter, excluding start and including dest.
// It returns nil when dest is unreachable or further than maxLen hops away;
// the cap bounds worst-case work per order and longer routes silently fail.
// Neighbor order is fixed, so results are deterministic, but callers must
// only rely on the length: equally short routes may differ.
func (g *Grid) FindPath(start, dest *Cell, maxLen int) []*Cell {
	if start == nil || dest == nil {
		return nil
	}
	if start.ID == dest.ID {
		return []*Cell{}
	}

	cameFrom := make([]int, len(g.Cells))
	depth := make([]int, len(g.Cells))
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	cameFrom[start.ID] = start.ID

	// FIFO via an advancing head index, never a front splice.
	frontier := make([]int, 0, len(g.Cells))
	frontier = append(frontier, start.ID)
	scratch := make([]*Cell, 0, 6)

	for head := 0; head < len(frontier); head++ {
		id := frontier[head]
		if depth[id] >= maxLen {
			continue
		}
		cur := g.Cells[id]
		scratch = g.Neighbors(cur.Q, cur.R, scratch[:0])
		for _, n := range scratch {
			if cameFrom[n.ID] != -1 {
				continue
			}
			cameFrom[n.ID] = id
			depth[n.ID] = depth[id] + 1
			if n.ID == dest.ID {
				return g.rebuildPath(cameFrom, start.ID, dest.ID, depth[n.ID])
			}
			frontier = append(frontier, n.ID)
		}
	}

	return nil
}

func (g *Grid) rebuildPath(cameFrom []int, startID, destID, steps int) []*Cell {
	path := make([]*Cell, steps)
	id := destID
	for i := steps - 1; i >= 0; i-- {
		path[i] = g.Cells[id]
		id = cameFrom[id]
	}
	return path
}
