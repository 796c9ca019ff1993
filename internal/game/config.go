package game

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Coord is a (q, r) pair used for configured spawn points.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Config is the static tuning surface. It is read at boot and never mutated
// at runtime; the sim reads it without locks.
type Config struct {
	TickInterval time.Duration

	GridWidth  int
	GridHeight int

	// MaxPathLen bounds BFS depth per order. Routes beyond it silently fail,
	// capping worst-case pathfinding work rather than rejecting the order.
	MaxPathLen int

	// Spawns maps each faction to its recruit arrival cell. A faction with
	// no entry (or an out-of-bounds one) spawns on a random home-half cell.
	Spawns map[Faction]Coord

	StartingUnits     int // per faction, seeded at match start
	StartingPolitical float64
	StartingManpower  float64
	StartingEquipment float64

	PoliticalPerTick float64
	ManpowerPerTick  float64
	EquipmentPerTick float64

	// RecruitManpowerCost is the flat manpower price of any recruit; the
	// equipment price comes from the unit type's stat block.
	RecruitManpowerCost float64

	// AIMoveChance is the per-tick probability that an idle unit of an
	// unstaffed division picks a destination on its own. AIEnemyBias is the
	// probability that destination lands on enemy-held ground.
	AIMoveChance float64
	AIEnemyBias  float64

	// Seed fixes the RNG when nonzero. Zero means seed from the clock.
	Seed int64

	UnitTypes       map[string]UnitStats
	DefaultUnitType string
}

// DefaultConfig returns the compiled-in tuning.
func DefaultConfig() Config {
	return Config{
		TickInterval: 250 * time.Millisecond,
		GridWidth:    24,
		GridHeight:   16,
		MaxPathLen:   64,
		Spawns: map[Faction]Coord{
			FactionRed:  {Q: 2, R: 8},
			FactionBlue: {Q: 21, R: 8},
		},
		StartingUnits:       6,
		StartingPolitical:   0,
		StartingManpower:    40,
		StartingEquipment:   60,
		PoliticalPerTick:    0.5,
		ManpowerPerTick:     1.0,
		EquipmentPerTick:    0.8,
		RecruitManpowerCost: 10,
		AIMoveChance:        0.02,
		AIEnemyBias:         0.7,
		UnitTypes:           DefaultUnitTypes(),
		DefaultUnitType:     "infantry",
	}
}

// DefaultUnitTypes is the built-in stat table, used when config/units.json
// is missing or malformed so a bad config file can never stop the server.
func DefaultUnitTypes() map[string]UnitStats {
	return map[string]UnitStats{
		"infantry":  {HP: 100, Attack: 12, Defense: 4, Speed: 0.25, Cost: 20},
		"cavalry":   {HP: 80, Attack: 10, Defense: 2, Speed: 0.5, Cost: 35},
		"artillery": {HP: 60, Attack: 20, Defense: 1, Speed: 0.15, Cost: 50},
	}
}

// UnitsFile is the designer-authored stat table on disk. cmd/schema reflects
// this type into the JSON schema used to validate edits.
type UnitsFile struct {
	// Default names the type recruited when an order omits one and the type
	// AI-seeded units use. It must be a key of Types.
	Default string               `json:"default"`
	Types   map[string]UnitStats `json:"types"`
}

// LoadUnitTypes reads and validates a units file. Callers fall back to
// DefaultUnitTypes on error.
func LoadUnitTypes(path string) (*UnitsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read units file: %w", err)
	}

	var file UnitsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse units file: %w", err)
	}
	if len(file.Types) == 0 {
		return nil, fmt.Errorf("units file %s defines no types", path)
	}
	if _, ok := file.Types[file.Default]; !ok {
		return nil, fmt.Errorf("units file default %q is not a defined type", file.Default)
	}
	for key, stats := range file.Types {
		if stats.HP <= 0 || stats.Attack < 0 || stats.Speed <= 0 || stats.Cost < 0 {
			return nil, fmt.Errorf("units file type %q has invalid stats", key)
		}
	}

	return &file, nil
}
