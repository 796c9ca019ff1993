package game

import "testing"

func TestParseRoleRoundTrip(t *testing.T) {
	names := []string{
		"Supreme", "Production",
		"Marshal_1", "Marshal_2", "Marshal_3", "Marshal_4", "Marshal_5", "Marshal_6",
	}
	for _, name := range names {
		role, ok := ParseRole(name)
		if !ok {
			t.Fatalf("ParseRole(%q) failed", name)
		}
		if role.String() != name {
			t.Fatalf("ParseRole(%q).String() = %q", name, role.String())
		}
	}

	if _, ok := ParseRole("Admiral"); ok {
		t.Fatal("unknown role must not parse")
	}
	if _, ok := ParseRole("marshal_1"); ok {
		t.Fatal("role names are case sensitive")
	}
	if _, ok := ParseRole(""); ok {
		t.Fatal("empty role must not parse")
	}
}

func TestRoleDivision(t *testing.T) {
	if d := RoleSupreme.Division(); d != 0 {
		t.Fatalf("supreme division %d, want 0", d)
	}
	if d := RoleProduction.Division(); d != 0 {
		t.Fatalf("production division %d, want 0", d)
	}
	marshals := []Role{RoleMarshal1, RoleMarshal2, RoleMarshal3, RoleMarshal4, RoleMarshal5, RoleMarshal6}
	for i, role := range marshals {
		if role.Division() != i+1 {
			t.Fatalf("%s division %d, want %d", role, role.Division(), i+1)
		}
	}
}

func TestCanCommand(t *testing.T) {
	unit := &Unit{ID: 1, Faction: FactionRed, Division: 3}

	tests := []struct {
		name   string
		player *Player
		want   bool
	}{
		{"supreme same faction", &Player{Faction: FactionRed, Role: RoleSupreme}, true},
		{"matching marshal", &Player{Faction: FactionRed, Role: RoleMarshal3}, true},
		{"wrong division marshal", &Player{Faction: FactionRed, Role: RoleMarshal2}, false},
		{"production seat", &Player{Faction: FactionRed, Role: RoleProduction}, false},
		{"enemy supreme", &Player{Faction: FactionBlue, Role: RoleSupreme}, false},
		{"enemy matching marshal", &Player{Faction: FactionBlue, Role: RoleMarshal3}, false},
		{"no seat", nil, false},
	}
	for _, tt := range tests {
		if got := tt.player.CanCommand(unit); got != tt.want {
			t.Errorf("%s: CanCommand = %v, want %v", tt.name, got, tt.want)
		}
	}

	sup := &Player{Faction: FactionRed, Role: RoleSupreme}
	if sup.CanCommand(nil) {
		t.Error("nil unit must not be commandable")
	}
}

func TestCanRecruit(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleSupreme, true},
		{RoleProduction, true},
		{RoleMarshal1, false},
		{RoleMarshal6, false},
	}
	for _, tt := range tests {
		p := &Player{Faction: FactionRed, Role: tt.role}
		if got := p.CanRecruit(); got != tt.want {
			t.Errorf("%s: CanRecruit = %v, want %v", tt.role, got, tt.want)
		}
	}

	var nobody *Player
	if nobody.CanRecruit() {
		t.Error("nil player must not recruit")
	}
}

func TestDeniedMoveOrderLeavesPathUnchanged(t *testing.T) {
	g := newTestGame(testConfig())
	u := placeUnit(g, FactionRed, "infantry", 2, 2) // division 1
	placeUnit(g, FactionBlue, "infantry", 17, 8)
	g.players["m2"] = &Player{ID: "m2", Name: "x", Faction: FactionRed, Role: RoleMarshal2}

	u.SetPath(g.grid.FindPath(g.grid.At(2, 2), g.grid.At(4, 2), 64))
	before := u.Path

	g.applyMove(Command{Type: CommandMove, SessionID: "m2", UnitIDs: []int{u.ID}, TargetQ: 8, TargetR: 8})

	if len(u.Path) != len(before) {
		t.Fatalf("denied order changed path length %d -> %d", len(before), len(u.Path))
	}
	for i := range before {
		if u.Path[i] != before[i] {
			t.Fatal("denied order rewrote the path")
		}
	}
	if u.Q != 2 || u.R != 2 || u.State != UnitMoving {
		t.Fatal("denied order must not disturb the unit")
	}
}

func TestBatchOrderAppliesPerUnitAuthority(t *testing.T) {
	g := newTestGame(testConfig())
	first := placeUnit(g, FactionRed, "infantry", 2, 2)  // division 1
	second := placeUnit(g, FactionRed, "infantry", 2, 3) // division 2
	placeUnit(g, FactionBlue, "infantry", 17, 8)
	g.players["m1"] = &Player{ID: "m1", Name: "x", Faction: FactionRed, Role: RoleMarshal1}

	g.applyMove(Command{
		Type:      CommandMove,
		SessionID: "m1",
		UnitIDs:   []int{first.ID, second.ID},
		TargetQ:   6,
		TargetR:   2,
	})

	if len(first.Path) == 0 {
		t.Fatal("marshal 1 should move its own division")
	}
	if len(second.Path) != 0 {
		t.Fatal("marshal 1 must not move division 2")
	}
}
