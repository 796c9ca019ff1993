package game

// Damage multipliers for an engagement. The mover hits harder than the cell
// holder; the asymmetry is inherited game balance, kept as-is until design
// says otherwise. Defense is carried in the stat block but takes no part in
// the formula today.
const (
	moverDamageMult  = 0.5
	holderDamageMult = 0.2
)

// resolveCombat applies one tick of mutual damage between a mover and the
// enemy holding its next cell. Nobody is removed here; the dead are swept
// once per tick at cleanup so a unit is never deleted mid-resolution.
func resolveCombat(mover, holder *Unit) {
	holder.HP -= mover.Stats.Attack * moverDamageMult
	mover.HP -= holder.Stats.Attack * holderDamageMult
}

// enemyAt returns the enemy holding the cell, lowest id first so the
// engagement target is deterministic when enemies stack. A unit killed
// earlier in the same tick still holds its cell here: the engagement
// continues until cleanup removes it, never mid-tick. Units are kept in
// spawn order, which is ascending id order.
func (g *Game) enemyAt(c *Cell, f Faction) *Unit {
	for _, u := range g.units {
		if u.Faction != f && u.Q == c.Q && u.R == c.R {
			return u
		}
	}
	return nil
}
