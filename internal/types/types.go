// Package types holds the wire protocol shared by the game core and the
// websocket server. Inbound messages carry an "action" discriminator,
// outbound messages a "type" discriminator. Everything is JSON text frames.
package types

// Coord addresses a cell by its axial-like grid coordinates.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// --- inbound actions ---

// BaseAction is unmarshalled first to pick the concrete action type.
type BaseAction struct {
	Action string `json:"action"`
}

type JoinAction struct {
	Action  string `json:"action"`
	Name    string `json:"name"`
	Faction string `json:"faction"`
	Role    string `json:"role"`
}

type ChatAction struct {
	Action string `json:"action"`
	Text   string `json:"text"`
}

type RecruitAction struct {
	Action   string `json:"action"`
	UnitType string `json:"unitType"`
}

type MoveOrderAction struct {
	Action  string `json:"action"`
	UnitIDs []int  `json:"unitIds"`
	Target  Coord  `json:"target"`
}

type FrontlineOrderAction struct {
	Action  string `json:"action"`
	UnitIDs []int  `json:"unitIds"`
	CellIDs []int  `json:"cellIds"`
}

type ResetAction struct {
	Action string `json:"action"`
}

// --- outbound messages ---

// InitStats is sent once right after a connection is established.
type InitStats struct {
	Type string           `json:"type"`
	Wins map[string]int64 `json:"wins"`
}

// GameStarted acknowledges a join after it has been applied at a tick
// boundary. Tick tells the client which state frame its player exists from.
type GameStarted struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Faction  string `json:"faction"`
	Role     string `json:"role"`
	Tick     int64  `json:"tick"`
}

// ChatMessage is relayed to every client. Chat never touches the sim.
type ChatMessage struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Faction string `json:"faction"`
	Text    string `json:"text"`
}

// StateUpdate is the full world snapshot broadcast every tick. No deltas.
type StateUpdate struct {
	Type      string                  `json:"type"`
	Tick      int64                   `json:"tick"`
	Over      bool                    `json:"over"`
	Winner    string                  `json:"winner,omitempty"`
	Cells     []CellState             `json:"cells"`
	Units     []UnitState             `json:"units"`
	Economies map[string]EconomyState `json:"economies"`
}

type CellState struct {
	ID    int    `json:"id"`
	Q     int    `json:"q"`
	R     int    `json:"r"`
	Owner string `json:"owner"`
}

type UnitState struct {
	ID       int     `json:"id"`
	Faction  string  `json:"faction"`
	Type     string  `json:"unitType"`
	HP       float64 `json:"hp"`
	MaxHP    float64 `json:"maxHp"`
	Q        int     `json:"q"`
	R        int     `json:"r"`
	Division int     `json:"division"`
	State    string  `json:"state"`
	Progress float64 `json:"progress"`
}

type EconomyState struct {
	Political float64 `json:"political"`
	Manpower  float64 `json:"manpower"`
	Equipment float64 `json:"equipment"`
}
