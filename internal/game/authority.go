package game

import "fmt"

// Role is the closed set of command seats a player can hold. Checks are
// typed comparisons, never raw string equality against client input.
type Role uint8

const (
	RoleSupreme Role = iota + 1
	RoleProduction
	RoleMarshal1
	RoleMarshal2
	RoleMarshal3
	RoleMarshal4
	RoleMarshal5
	RoleMarshal6
)

func ParseRole(s string) (Role, bool) {
	switch s {
	case "Supreme":
		return RoleSupreme, true
	case "Production":
		return RoleProduction, true
	case "Marshal_1":
		return RoleMarshal1, true
	case "Marshal_2":
		return RoleMarshal2, true
	case "Marshal_3":
		return RoleMarshal3, true
	case "Marshal_4":
		return RoleMarshal4, true
	case "Marshal_5":
		return RoleMarshal5, true
	case "Marshal_6":
		return RoleMarshal6, true
	}
	return 0, false
}

func (r Role) String() string {
	switch r {
	case RoleSupreme:
		return "Supreme"
	case RoleProduction:
		return "Production"
	case RoleMarshal1, RoleMarshal2, RoleMarshal3, RoleMarshal4, RoleMarshal5, RoleMarshal6:
		return fmt.Sprintf("Marshal_%d", r.Division())
	default:
		return "unknown"
	}
}

// Division maps a marshal role to its division number, 0 for any other role.
func (r Role) Division() int {
	if r >= RoleMarshal1 && r <= RoleMarshal6 {
		return int(r-RoleMarshal1) + 1
	}
	return 0
}

// Player is one connected session's seat: a name, a side and a role.
// Multiple players may share a faction and even a role; nothing enforces
// single-holder seats.
type Player struct {
	ID      string // session id, assigned by the server on connect
	Name    string
	Faction Faction
	Role    Role
}

// CanCommand reports whether p may direct u: same faction, and either the
// Supreme seat or the marshal seat matching u's division. Batch orders call
// this per unit and silently skip denials.
func (p *Player) CanCommand(u *Unit) bool {
	if p == nil || u == nil || p.Faction != u.Faction {
		return false
	}
	return p.Role == RoleSupreme || p.Role.Division() == u.Division
}

// CanRecruit reports whether p may spend the faction economy.
func (p *Player) CanRecruit() bool {
	if p == nil {
		return false
	}
	return p.Role == RoleSupreme || p.Role == RoleProduction
}
