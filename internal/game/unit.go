package game

// UnitState tags where a unit is in its movement lifecycle.
type UnitState uint8

const (
	UnitIdle UnitState = iota
	UnitMoving
	UnitFighting
)

func (s UnitState) String() string {
	switch s {
	case UnitIdle:
		return "idle"
	case UnitMoving:
		return "moving"
	case UnitFighting:
		return "fighting"
	default:
		return "unknown"
	}
}

// UnitStats is the immutable stat block copied from the type table at spawn.
// Changing the table mid-match never touches units already on the board.
type UnitStats struct {
	HP      float64 `json:"hp"`
	Attack  float64 `json:"attack"`
	Defense float64 `json:"defense"`
	Speed   float64 `json:"speed"`
	Cost    float64 `json:"cost"` // equipment cost per recruit
}

// Unit is a single soldier group on the board.
//
// Path holds the cells still to be entered, front first. Progress is the
// fraction [0,1) accumulated toward entering Path[0]; it freezes while the
// unit is Fighting and resets to 0 on every committed move and every newly
// assigned path. Division is fixed at spawn and never changes.
type Unit struct {
	ID       int
	Faction  Faction
	Type     string
	Stats    UnitStats
	HP       float64
	Q        int
	R        int
	Path     []*Cell
	Progress float64
	State    UnitState
	Division int // 1..6, round-robin over the global spawn sequence
}

// SetPath replaces the unit's route unconditionally. A re-issued order never
// stacks paths; the old one is gone and progress restarts from zero.
func (u *Unit) SetPath(path []*Cell) {
	u.Path = path
	u.Progress = 0
	if len(path) == 0 {
		u.State = UnitIdle
	} else {
		u.State = UnitMoving
	}
}

// divisionCount is the number of marshal divisions units rotate through.
const divisionCount = 6
