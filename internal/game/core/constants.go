package core

// Attack ranges and limits
const (
	TankRange     = 5
	ScorpionRange = 2
	FireflyRange  = 5

	MaxBuildingHealth = 9
)

// Tile symbols in the board layout
const (
	GroundSymbol   = ' '
	MountainSymbol = 'M'
)

// Unit symbols in entity records
const (
	TankSymbol     = 'T'
	HealSymbol     = 'H'
	ScorpionSymbol = 'S'
	FireflySymbol  = 'F'
	MechSymbol     = 'M'
	EnemySymbol    = 'N'
)

// Display names
const (
	GroundName   = "Ground"
	MountainName = "Mountain"
	BuildingName = "Building"

	MechName     = "Mech"
	EnemyName    = "Enemy"
	TankName     = "TankMech"
	HealName     = "HealMech"
	ScorpionName = "Scorpion"
	FireflyName  = "Firefly"
)
