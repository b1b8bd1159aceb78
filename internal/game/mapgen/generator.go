package mapgen

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
)

// MapConfig holds configuration for level generation
type MapConfig struct {
	Rows int
	Cols int

	MountainRatio  int // 1 mountain per N tiles
	MaxVeinLength  int
	Buildings      int
	BuildingHealth int

	Mechs   int
	Enemies int
	// MinSpawnSpacing is the minimum Manhattan distance between any mech
	// and any enemy at spawn
	MinSpawnSpacing int
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(rows, cols int) MapConfig {
	return MapConfig{
		Rows:            rows,
		Cols:            cols,
		MountainRatio:   10,
		MaxVeinLength:   3,
		Buildings:       (rows * cols) / 12,
		BuildingHealth:  3,
		Mechs:           2,
		Enemies:         2,
		MinSpawnSpacing: 3,
	}
}

// Validate reports configurations that cannot produce a playable level
func (c MapConfig) Validate() error {
	switch {
	case c.Rows < 2 || c.Cols < 2:
		return fmt.Errorf("board must be at least 2x2, got %dx%d", c.Rows, c.Cols)
	case c.MountainRatio < 1:
		return fmt.Errorf("mountain ratio must be positive, got %d", c.MountainRatio)
	case c.Buildings < 1:
		return fmt.Errorf("at least one building is required")
	case c.BuildingHealth < 1 || c.BuildingHealth > core.MaxBuildingHealth:
		return fmt.Errorf("building health must be in [1, %d], got %d", core.MaxBuildingHealth, c.BuildingHealth)
	case c.Mechs < 1 || c.Enemies < 1:
		return fmt.Errorf("at least one mech and one enemy are required")
	case c.Buildings+c.Mechs+c.Enemies > c.Rows*c.Cols:
		return fmt.Errorf("%d units and buildings do not fit on %d tiles",
			c.Buildings+c.Mechs+c.Enemies, c.Rows*c.Cols)
	}
	return nil
}

// Unit stats for generated levels: health, speed, strength
var (
	TankStats     = [3]int{3, 3, 2}
	HealStats     = [3]int{3, 3, 1}
	ScorpionStats = [3]int{3, 3, 1}
	FireflyStats  = [3]int{3, 2, 1}
)

// Generator handles level generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new level generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// Generate creates a board and its units in priority order: mechs first,
// then enemies. The same seed always yields the same level.
func (g *Generator) Generate() (*core.Board, []core.Entity, error) {
	if err := g.config.Validate(); err != nil {
		return nil, nil, err
	}

	board := core.NewGroundBoard(g.config.Rows, g.config.Cols)
	g.placeMountains(board)
	if err := g.placeBuildings(board); err != nil {
		return nil, nil, err
	}

	taken := make(map[core.Position]bool)
	mechs, err := g.placeMechs(board, taken)
	if err != nil {
		return nil, nil, err
	}
	enemies, err := g.placeEnemies(board, taken, mechs)
	if err != nil {
		return nil, nil, err
	}
	return board, append(mechs, enemies...), nil
}

// placeMountains grows short random veins until the mountain quota is met
func (g *Generator) placeMountains(b *core.Board) {
	want := (b.Rows * b.Cols) / g.config.MountainRatio
	placed := 0

	maxAttempts := want * 10
	for attempts := 0; placed < want && attempts < maxAttempts; attempts++ {
		p := g.randomPosition(b)
		length := 1 + g.rng.Intn(max(g.config.MaxVeinLength, 1))
		for i := 0; i < length && placed < want; i++ {
			if b.Tile(p).Kind() == core.TileGround {
				b.SetTile(p, core.Mountain{})
				placed++
			}
			next := p.Add(core.PlusOffsets[g.rng.Intn(len(core.PlusOffsets))])
			if !b.InBounds(next) {
				break
			}
			p = next
		}
	}
}

// placeBuildings samples ground cells for the building quota, then fills
// what is left in row-major order. A level without buildings is lost before
// it starts, so placing none is an error.
func (g *Generator) placeBuildings(b *core.Board) error {
	placed := 0
	build := func(p core.Position) {
		if b.Tile(p).Kind() == core.TileGround {
			b.SetTile(p, core.NewBuilding(g.config.BuildingHealth))
			placed++
		}
	}

	maxAttempts := g.config.Buildings * 20
	for attempts := 0; placed < g.config.Buildings && attempts < maxAttempts; attempts++ {
		build(g.randomPosition(b))
	}
	for idx := 0; placed < g.config.Buildings && idx < len(b.T); idx++ {
		build(core.FromIndex(idx, b.Cols))
	}

	if placed == 0 {
		return fmt.Errorf("no ground left for buildings on a %dx%d board", b.Rows, b.Cols)
	}
	return nil
}

// placeMechs drops mechs in the bottom half, alternating tanks and healers
func (g *Generator) placeMechs(b *core.Board, taken map[core.Position]bool) ([]core.Entity, error) {
	units := make([]core.Entity, 0, g.config.Mechs)
	for i := 0; i < g.config.Mechs; i++ {
		p, ok := g.findSpawn(b, taken, b.Rows/2, b.Rows, nil)
		if !ok {
			return nil, fmt.Errorf("no free cell for mech %d", i)
		}
		taken[p] = true
		if i%2 == 0 {
			units = append(units, core.NewTankMech(p, TankStats[0], TankStats[1], TankStats[2]))
		} else {
			units = append(units, core.NewHealMech(p, HealStats[0], HealStats[1], HealStats[2]))
		}
	}
	return units, nil
}

// placeEnemies drops enemies in the top half, away from every mech,
// alternating scorpions and fireflies
func (g *Generator) placeEnemies(b *core.Board, taken map[core.Position]bool, mechs []core.Entity) ([]core.Entity, error) {
	units := make([]core.Entity, 0, g.config.Enemies)
	for i := 0; i < g.config.Enemies; i++ {
		p, ok := g.findSpawn(b, taken, 0, (b.Rows+1)/2, mechs)
		if !ok {
			return nil, fmt.Errorf("no free cell for enemy %d", i)
		}
		taken[p] = true
		if i%2 == 0 {
			units = append(units, core.NewScorpion(p, ScorpionStats[0], ScorpionStats[1], ScorpionStats[2]))
		} else {
			units = append(units, core.NewFirefly(p, FireflyStats[0], FireflyStats[1], FireflyStats[2]))
		}
	}
	return units, nil
}

// findSpawn picks a free ground cell in rows [minRow, maxRow), respecting
// spawn spacing from avoid. Falls back to a scan when sampling fails.
func (g *Generator) findSpawn(b *core.Board, taken map[core.Position]bool, minRow, maxRow int, avoid []core.Entity) (core.Position, bool) {
	valid := func(p core.Position, spacing int) bool {
		if taken[p] || b.Tile(p).Kind() != core.TileGround {
			return false
		}
		for _, e := range avoid {
			if p.DistanceTo(e.Position()) < spacing {
				return false
			}
		}
		return true
	}

	maxAttempts := b.Rows * b.Cols
	for attempts := 0; attempts < maxAttempts; attempts++ {
		p := core.Position{Row: minRow + g.rng.Intn(maxRow-minRow), Col: g.rng.Intn(b.Cols)}
		if valid(p, g.config.MinSpawnSpacing) {
			return p, true
		}
	}

	// Fallback: anywhere on the board, spacing relaxed
	for idx := range b.T {
		p := core.FromIndex(idx, b.Cols)
		if valid(p, 1) {
			return p, true
		}
	}
	return core.Position{}, false
}

func (g *Generator) randomPosition(b *core.Board) core.Position {
	return core.Position{Row: g.rng.Intn(b.Rows), Col: g.rng.Intn(b.Cols)}
}
