package game

import "log"

// CommandType discriminates queued commands.
type CommandType string

const (
	CommandJoin      CommandType = "join"
	CommandLeave     CommandType = "leave"
	CommandRecruit   CommandType = "recruit"
	CommandMove      CommandType = "move"
	CommandFrontline CommandType = "frontline"
	CommandReset     CommandType = "reset"
)

// Command is one world-mutating request from a session. Network handlers
// enqueue these; nothing applies them until the next tick boundary, so the
// tick body is the only writer of world state.
type Command struct {
	Type      CommandType
	SessionID string

	// join
	Name    string
	Faction Faction
	Role    Role

	// recruit
	UnitType string

	// move / frontline
	UnitIDs []int
	TargetQ int
	TargetR int
	CellIDs []int
}

// perSessionQueueLimit caps how many commands one session may stage between
// two ticks. Excess is dropped and logged, never an error to the client.
const perSessionQueueLimit = 64

// Enqueue stages a command for the next tick. Safe from any goroutine.
func (g *Game) Enqueue(cmd Command) bool {
	g.queueMu.Lock()
	defer g.queueMu.Unlock()

	if cmd.SessionID != "" {
		if g.queuedPerSession[cmd.SessionID] >= perSessionQueueLimit {
			log.Printf("Command queue limit hit for session %s, dropping %s", cmd.SessionID, cmd.Type)
			return false
		}
		g.queuedPerSession[cmd.SessionID]++
	}
	g.queue = append(g.queue, cmd)
	return true
}

// drainCommands empties the staged queue. Called only from the tick body.
func (g *Game) drainCommands() []Command {
	g.queueMu.Lock()
	defer g.queueMu.Unlock()

	cmds := g.queue
	g.queue = nil
	if len(g.queuedPerSession) > 0 {
		g.queuedPerSession = make(map[string]int)
	}
	return cmds
}

// Pending reports the staged command count. Used by tests and /healthz.
func (g *Game) Pending() int {
	g.queueMu.Lock()
	defer g.queueMu.Unlock()
	return len(g.queue)
}
