package core

import "strconv"

// TileKind enumerates the closed set of terrain variants
type TileKind int

const (
	TileGround TileKind = iota
	TileMountain
	TileBuilding
)

func (k TileKind) String() string {
	switch k {
	case TileGround:
		return GroundName
	case TileMountain:
		return MountainName
	case TileBuilding:
		return BuildingName
	default:
		return "Tile(" + strconv.Itoa(int(k)) + ")"
	}
}

// Tile is a single terrain cell owned by the Board.
type Tile interface {
	Kind() TileKind
	Name() string
	IsBlocking() bool
	// Symbol is the character used for this tile in the board layout
	Symbol() rune
}

// Ground is walkable terrain with no special properties
type Ground struct{}

func (Ground) Kind() TileKind   { return TileGround }
func (Ground) Name() string     { return GroundName }
func (Ground) IsBlocking() bool { return false }
func (Ground) Symbol() rune     { return GroundSymbol }
func (Ground) String() string   { return "Ground()" }

// Mountain is impassable terrain
type Mountain struct{}

func (Mountain) Kind() TileKind   { return TileMountain }
func (Mountain) Name() string     { return MountainName }
func (Mountain) IsBlocking() bool { return true }
func (Mountain) Symbol() rune     { return MountainSymbol }
func (Mountain) String() string   { return "Mountain()" }

// Building is a tile the player must protect. Health is in [0, MaxBuildingHealth];
// a building with zero health is destroyed and stays destroyed.
type Building struct {
	health    int
	destroyed bool
}

// NewBuilding creates a building, clamping health into the valid range
func NewBuilding(health int) *Building {
	b := &Building{health: clampHealth(health)}
	b.destroyed = b.health == 0
	return b
}

func (b *Building) Kind() TileKind { return TileBuilding }
func (b *Building) Name() string   { return BuildingName }

// IsBlocking is true until the building is destroyed
func (b *Building) IsBlocking() bool { return !b.destroyed }

// Symbol is the health digit
func (b *Building) Symbol() rune { return rune('0' + b.health) }

// Health returns the current building health
func (b *Building) Health() int { return b.health }

// IsDestroyed reports whether the building has been reduced to zero health
func (b *Building) IsDestroyed() bool { return b.destroyed }

// Damage reduces health by amount; a negative amount repairs.
// Destroyed buildings ignore both.
func (b *Building) Damage(amount int) {
	if b.destroyed {
		return
	}
	b.health = clampHealth(b.health - amount)
	if b.health == 0 {
		b.destroyed = true
	}
}

func (b *Building) String() string {
	return "Building(" + strconv.Itoa(b.health) + ")"
}

func clampHealth(h int) int {
	if h < 0 {
		return 0
	}
	if h > MaxBuildingHealth {
		return MaxBuildingHealth
	}
	return h
}

// TileFromSymbol maps a layout character to a tile.
// ok is false for characters that do not describe a tile.
func TileFromSymbol(r rune) (Tile, bool) {
	switch {
	case r == GroundSymbol:
		return Ground{}, true
	case r == MountainSymbol:
		return Mountain{}, true
	case r >= '0' && r <= '9':
		return NewBuilding(int(r - '0')), true
	default:
		return nil, false
	}
}
