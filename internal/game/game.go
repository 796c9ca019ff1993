package game

import (
	"log"
	"math/rand"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/asd22jp/takenokowar/internal/types"
)

// WinRecorder persists match outcomes. The sim fires it from a goroutine
// and never waits on or depends on it; a nil recorder is fine.
type WinRecorder interface {
	RecordWin(faction string, ticks int64) error
}

// Ack is an addressed outbound message produced while commands apply,
// handed to the broadcaster for delivery after the step returns.
type Ack struct {
	SessionID string
	Payload   interface{}
}

// Game owns every piece of world state: grid, units, players, economies.
// All of it is mutated exclusively by Step, which the broadcaster run loop
// calls from a single goroutine. The only cross-goroutine entry points are
// Enqueue and the atomic gauges.
type Game struct {
	cfg   Config
	grid  *Grid
	rng   *rand.Rand
	stats WinRecorder

	units     []*Unit // spawn order, so ascending id order
	unitByID  map[int]*Unit
	players   map[string]*Player
	economies map[Faction]*Economy

	spawnCount int // every spawn this match, drives division round-robin
	nextUnitID int

	tick   int64
	over   bool
	winner string

	// gauges readable from other goroutines (/healthz)
	tickGauge   atomic.Int64
	playerGauge atomic.Int64

	queueMu          sync.Mutex
	queue            []Command
	queuedPerSession map[string]int
}

// New builds a game and seeds the opening match.
func New(cfg Config, recorder WinRecorder) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		cfg:              cfg,
		rng:              rand.New(rand.NewSource(seed)),
		stats:            recorder,
		players:          make(map[string]*Player),
		queuedPerSession: make(map[string]int),
	}
	g.reset()
	return g
}

// reset starts a fresh match. Connected players keep their seats; the
// board, units, economies and the division sequence all start over.
func (g *Game) reset() {
	g.grid = NewGrid(g.cfg.GridWidth, g.cfg.GridHeight)
	g.units = nil
	g.unitByID = make(map[int]*Unit)
	g.economies = map[Faction]*Economy{
		FactionRed: {
			Political: g.cfg.StartingPolitical,
			Manpower:  g.cfg.StartingManpower,
			Equipment: g.cfg.StartingEquipment,
		},
		FactionBlue: {
			Political: g.cfg.StartingPolitical,
			Manpower:  g.cfg.StartingManpower,
			Equipment: g.cfg.StartingEquipment,
		},
	}
	g.spawnCount = 0
	g.nextUnitID = 1
	g.tick = 0
	g.tickGauge.Store(0)
	g.over = false
	g.winner = ""

	for i := 0; i < g.cfg.StartingUnits; i++ {
		g.spawnUnit(FactionRed, g.cfg.DefaultUnitType)
	}
	for i := 0; i < g.cfg.StartingUnits; i++ {
		g.spawnUnit(FactionBlue, g.cfg.DefaultUnitType)
	}
}

// Step runs one tick: apply queued commands, accrue income, let the AI
// fallback act, move and fight every unit, sweep the dead, detect victory.
// Once the match is over only commands still apply (so reset works); the
// world itself is frozen.
func (g *Game) Step(now time.Time) []Ack {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC in Step: %v\nStack trace:\n%s", r, debug.Stack())
		}
	}()

	var acks []Ack
	for _, cmd := range g.drainCommands() {
		acks = g.applyCommand(cmd, acks)
	}

	if g.over {
		return acks
	}

	g.accrueEconomies()
	g.runAIFallback()
	g.advanceUnits()
	g.cleanup()

	g.tick++
	g.tickGauge.Store(g.tick)
	return acks
}

func (g *Game) applyCommand(cmd Command, acks []Ack) []Ack {
	// A finished match ignores everything except seat changes and reset.
	if g.over && (cmd.Type == CommandRecruit || cmd.Type == CommandMove || cmd.Type == CommandFrontline) {
		return acks
	}

	switch cmd.Type {
	case CommandJoin:
		return g.applyJoin(cmd, acks)
	case CommandLeave:
		if p, ok := g.players[cmd.SessionID]; ok {
			delete(g.players, cmd.SessionID)
			g.playerGauge.Store(int64(len(g.players)))
			log.Printf("Player %s (%s %s) left", p.Name, p.Faction, p.Role)
		}
	case CommandRecruit:
		g.applyRecruit(cmd)
	case CommandMove:
		g.applyMove(cmd)
	case CommandFrontline:
		g.applyFrontline(cmd)
	case CommandReset:
		g.applyReset(cmd)
	default:
		log.Printf("Unknown command type %q dropped", cmd.Type)
	}
	return acks
}

func (g *Game) applyJoin(cmd Command, acks []Ack) []Ack {
	if cmd.SessionID == "" || cmd.Name == "" {
		return acks
	}
	if _, ok := ParseFaction(string(cmd.Faction)); !ok {
		return acks
	}
	if cmd.Role < RoleSupreme || cmd.Role > RoleMarshal6 {
		return acks
	}

	p := &Player{ID: cmd.SessionID, Name: cmd.Name, Faction: cmd.Faction, Role: cmd.Role}
	g.players[cmd.SessionID] = p
	g.playerGauge.Store(int64(len(g.players)))
	log.Printf("Player %s joined as %s %s", p.Name, p.Faction, p.Role)

	return append(acks, Ack{
		SessionID: cmd.SessionID,
		Payload: types.GameStarted{
			Type:     "gameStarted",
			PlayerID: p.ID,
			Faction:  string(p.Faction),
			Role:     p.Role.String(),
			Tick:     g.tick,
		},
	})
}

func (g *Game) applyRecruit(cmd Command) {
	p := g.players[cmd.SessionID]
	if !p.CanRecruit() {
		return
	}
	key := cmd.UnitType
	if key == "" {
		key = g.cfg.DefaultUnitType
	}
	stats, ok := g.cfg.UnitTypes[key]
	if !ok {
		return
	}
	eco := g.economies[p.Faction]
	if !eco.CanAfford(g.cfg.RecruitManpowerCost, stats.Cost) {
		return
	}
	eco.Debit(g.cfg.RecruitManpowerCost, stats.Cost)
	u := g.spawnUnit(p.Faction, key)
	log.Printf("Recruited %s #%d for %s (division %d)", key, u.ID, p.Faction, u.Division)
}

func (g *Game) applyMove(cmd Command) {
	p := g.players[cmd.SessionID]
	if p == nil {
		return
	}
	dest := g.grid.At(cmd.TargetQ, cmd.TargetR)
	if dest == nil {
		return
	}
	for _, id := range cmd.UnitIDs {
		u := g.unitByID[id]
		if !p.CanCommand(u) {
			continue
		}
		path := g.grid.FindPath(g.grid.At(u.Q, u.R), dest, g.cfg.MaxPathLen)
		if path == nil {
			continue
		}
		u.SetPath(path)
	}
}

// applyFrontline spreads the given units round-robin across the target
// cells and paths each to its slot. Unauthorized units are skipped without
// consuming a slot; unreachable slots drop that unit's order only.
func (g *Game) applyFrontline(cmd Command) {
	p := g.players[cmd.SessionID]
	if p == nil {
		return
	}
	targets := make([]*Cell, 0, len(cmd.CellIDs))
	for _, id := range cmd.CellIDs {
		if c := g.grid.ByID(id); c != nil {
			targets = append(targets, c)
		}
	}
	if len(targets) == 0 {
		return
	}

	slot := 0
	for _, id := range cmd.UnitIDs {
		u := g.unitByID[id]
		if !p.CanCommand(u) {
			continue
		}
		dest := targets[slot%len(targets)]
		slot++
		path := g.grid.FindPath(g.grid.At(u.Q, u.R), dest, g.cfg.MaxPathLen)
		if path == nil {
			continue
		}
		u.SetPath(path)
	}
}

func (g *Game) applyReset(cmd Command) {
	p := g.players[cmd.SessionID]
	if p == nil || p.Role != RoleSupreme || !g.over {
		return
	}
	log.Printf("=== MATCH RESET by %s ===", p.Name)
	g.reset()
}

func (g *Game) accrueEconomies() {
	for _, e := range g.economies {
		e.Accrue(g.cfg.PoliticalPerTick, g.cfg.ManpowerPerTick, g.cfg.EquipmentPerTick)
	}
}

func (g *Game) advanceUnits() {
	for _, u := range g.units {
		if u.HP <= 0 {
			continue // killed earlier this tick, swept at cleanup
		}
		g.advanceUnit(u)
	}
}

// advanceUnit applies one tick of the movement state machine: fight the
// enemy in the next cell, or accumulate progress and commit at most one
// move. Conquest is the terminal effect of the commit, last mover wins.
func (g *Game) advanceUnit(u *Unit) {
	if len(u.Path) == 0 {
		u.State = UnitIdle
		u.Progress = 0
		return
	}

	next := u.Path[0]
	if enemy := g.enemyAt(next, u.Faction); enemy != nil {
		u.State = UnitFighting
		resolveCombat(u, enemy)
		return
	}

	u.State = UnitMoving
	u.Progress += u.Stats.Speed
	if u.Progress < 1 {
		return
	}

	// Commit exactly one move this tick. Surplus progress is discarded.
	u.Path = u.Path[1:]
	u.Progress = 0
	u.Q, u.R = next.Q, next.R
	next.Owner = u.Faction

	switch {
	case len(u.Path) == 0:
		u.State = UnitIdle
	case g.enemyAt(u.Path[0], u.Faction) != nil:
		u.State = UnitFighting
	default:
		u.State = UnitMoving
	}
}

// cleanup removes the dead, exactly once per tick after all movement and
// combat, then checks for victory.
func (g *Game) cleanup() {
	alive := g.units[:0]
	for _, u := range g.units {
		if u.HP > 0 {
			alive = append(alive, u)
			continue
		}
		delete(g.unitByID, u.ID)
		log.Printf("Unit #%d (%s %s) destroyed", u.ID, u.Faction, u.Type)
	}
	for i := len(alive); i < len(g.units); i++ {
		g.units[i] = nil
	}
	g.units = alive

	g.checkVictory()
}

func (g *Game) checkVictory() {
	if g.spawnCount == 0 {
		return // nothing has ever been fielded, nobody can be eliminated
	}
	counts := make(map[Faction]int, 2)
	for _, u := range g.units {
		counts[u.Faction]++
	}
	redAlive := counts[FactionRed] > 0
	blueAlive := counts[FactionBlue] > 0
	if redAlive && blueAlive {
		return
	}

	g.over = true
	switch {
	case redAlive:
		g.winner = string(FactionRed)
	case blueAlive:
		g.winner = string(FactionBlue)
	default:
		g.winner = "draw"
	}
	log.Printf("=== GAME OVER: %s (tick %d) ===", g.winner, g.tick)

	if g.stats != nil && g.winner != "draw" {
		winner, ticks := g.winner, g.tick
		go func() {
			if err := g.stats.RecordWin(winner, ticks); err != nil {
				log.Printf("Failed to record win: %v", err)
			}
		}()
	}
}

func (g *Game) spawnUnit(f Faction, typeKey string) *Unit {
	stats, ok := g.cfg.UnitTypes[typeKey]
	if !ok {
		typeKey = g.cfg.DefaultUnitType
		stats = g.cfg.UnitTypes[typeKey]
	}
	cell := g.spawnCell(f)
	u := &Unit{
		ID:       g.nextUnitID,
		Faction:  f,
		Type:     typeKey,
		Stats:    stats,
		HP:       stats.HP,
		Q:        cell.Q,
		R:        cell.R,
		State:    UnitIdle,
		Division: g.spawnCount%divisionCount + 1,
	}
	g.nextUnitID++
	g.spawnCount++
	g.units = append(g.units, u)
	g.unitByID[u.ID] = u
	return u
}

// spawnCell resolves where a faction's recruits arrive: the configured
// spawn point, or a random cell in the faction's home half when unset.
func (g *Game) spawnCell(f Faction) *Cell {
	if coord, ok := g.cfg.Spawns[f]; ok {
		if c := g.grid.At(coord.Q, coord.R); c != nil {
			return c
		}
	}
	half := g.grid.W / 2
	q := g.rng.Intn(half)
	if f == FactionBlue {
		q = half + g.rng.Intn(g.grid.W-half)
	}
	return g.grid.At(q, g.rng.Intn(g.grid.H))
}

// Tick reports the last completed tick. Safe from any goroutine.
func (g *Game) Tick() int64 {
	return g.tickGauge.Load()
}

// PlayerCount reports the connected seat count. Safe from any goroutine.
func (g *Game) PlayerCount() int {
	return int(g.playerGauge.Load())
}
