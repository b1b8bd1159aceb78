package core

import (
	"fmt"
	"strconv"
)

// EntityKind enumerates the closed set of unit variants
type EntityKind int

const (
	KindMech EntityKind = iota
	KindTank
	KindHeal
	KindEnemy
	KindScorpion
	KindFirefly
)

func (k EntityKind) String() string {
	switch k {
	case KindMech:
		return MechName
	case KindTank:
		return TankName
	case KindHeal:
		return HealName
	case KindEnemy:
		return EnemyName
	case KindScorpion:
		return ScorpionName
	case KindFirefly:
		return FireflyName
	default:
		return "Entity(" + strconv.Itoa(int(k)) + ")"
	}
}

// Damageable is anything an attack can be applied to: units and buildings
type Damageable interface {
	Damage(amount int)
}

// Entity is a unit on the board. Friendly units also implement Friendly,
// hostile units also implement Hostile.
type Entity interface {
	Damageable

	Kind() EntityKind
	Name() string
	Symbol() rune

	Position() Position
	SetPosition(p Position)
	Health() int
	Speed() int
	// Strength is the amount applied by Attack; negative for healers
	Strength() int

	IsFriendly() bool
	IsAlive() bool

	// Targets returns the cells hit during the attack phase. The result
	// is not filtered by board bounds or occupancy.
	Targets() []Position
	// Attack applies this unit's effect to target
	Attack(target Damageable)

	// String is the snapshot record for this unit
	String() string
}

// Friendly is a player-controlled unit that can move once per turn
type Friendly interface {
	Entity
	IsActive() bool
	Enable()
	Disable()
}

// Hostile is an AI-controlled unit that walks towards an objective
type Hostile interface {
	Entity
	// Objective returns the current target position; ok is false when the
	// unit has no objective this turn.
	Objective() (pos Position, ok bool)
	// UpdateObjective recomputes the objective. entities is in priority order.
	UpdateObjective(entities []Entity, buildings map[Position]*Building)
}

// unit holds the state shared by every entity variant
type unit struct {
	pos      Position
	health   int
	speed    int
	strength int
}

func (u *unit) Position() Position     { return u.pos }
func (u *unit) SetPosition(p Position) { u.pos = p }
func (u *unit) Health() int            { return u.health }
func (u *unit) Speed() int             { return u.speed }
func (u *unit) Strength() int          { return u.strength }
func (u *unit) IsAlive() bool          { return u.health > 0 }

// Damage reduces health by amount, never below zero. A negative amount heals
// without a ceiling. Dead units ignore damage and healing.
func (u *unit) Damage(amount int) {
	if !u.IsAlive() {
		return
	}
	u.health -= amount
	if u.health < 0 {
		u.health = 0
	}
}

// Targets defaults to the four orthogonally adjacent cells
func (u *unit) Targets() []Position {
	return u.pos.Neighbors()
}

// Attack defaults to dealing strength damage
func (u *unit) Attack(target Damageable) {
	target.Damage(u.strength)
}

// lineTargets returns the cells at offsets 1..reach along the given axes
func lineTargets(origin Position, reach int, rows, cols bool) []Position {
	targets := make([]Position, 0, 4*reach)
	for d := -reach; d <= reach; d++ {
		if d == 0 {
			continue
		}
		if rows {
			targets = append(targets, Position{Row: origin.Row + d, Col: origin.Col})
		}
		if cols {
			targets = append(targets, Position{Row: origin.Row, Col: origin.Col + d})
		}
	}
	return targets
}

// Mech is the base friendly unit. It starts active, is disabled after moving
// and re-enabled at the end of the turn.
type Mech struct {
	unit
	active bool
}

// NewMech creates a generic mech
func NewMech(pos Position, health, speed, strength int) *Mech {
	return &Mech{
		unit:   unit{pos: pos, health: health, speed: speed, strength: strength},
		active: true,
	}
}

func (m *Mech) Kind() EntityKind { return KindMech }
func (m *Mech) Name() string     { return MechName }
func (m *Mech) Symbol() rune     { return MechSymbol }
func (m *Mech) IsFriendly() bool { return true }
func (m *Mech) IsActive() bool   { return m.active }
func (m *Mech) Enable()          { m.active = true }
func (m *Mech) Disable()         { m.active = false }
func (m *Mech) String() string   { return FormatRecord(m) }

// TankMech attacks along its row at long range
type TankMech struct {
	Mech
}

func NewTankMech(pos Position, health, speed, strength int) *TankMech {
	return &TankMech{Mech: *NewMech(pos, health, speed, strength)}
}

func (t *TankMech) Kind() EntityKind { return KindTank }
func (t *TankMech) Name() string     { return TankName }
func (t *TankMech) Symbol() rune     { return TankSymbol }
func (t *TankMech) String() string   { return FormatRecord(t) }

func (t *TankMech) Targets() []Position {
	return lineTargets(t.pos, TankRange, false, true)
}

// HealMech repairs friendly units and buildings in the four adjacent cells.
// Its strength is stored negated so that Damage heals.
type HealMech struct {
	Mech
}

// NewHealMech takes the heal amount as a positive strength
func NewHealMech(pos Position, health, speed, strength int) *HealMech {
	return &HealMech{Mech: *NewMech(pos, health, speed, -strength)}
}

func (h *HealMech) Kind() EntityKind { return KindHeal }
func (h *HealMech) Name() string     { return HealName }
func (h *HealMech) Symbol() rune     { return HealSymbol }
func (h *HealMech) String() string   { return FormatRecord(h) }

// Attack heals buildings and friendly units; hostile units are skipped
func (h *HealMech) Attack(target Damageable) {
	if e, ok := target.(Entity); ok && !e.IsFriendly() {
		return
	}
	target.Damage(h.strength)
}

// Enemy is the base hostile unit. Its objective starts at its spawn cell.
type Enemy struct {
	unit
	objective    Position
	hasObjective bool
}

func NewEnemy(pos Position, health, speed, strength int) *Enemy {
	return &Enemy{
		unit:         unit{pos: pos, health: health, speed: speed, strength: strength},
		objective:    pos,
		hasObjective: true,
	}
}

func (e *Enemy) Kind() EntityKind { return KindEnemy }
func (e *Enemy) Name() string     { return EnemyName }
func (e *Enemy) Symbol() rune     { return EnemySymbol }
func (e *Enemy) IsFriendly() bool { return false }
func (e *Enemy) String() string   { return FormatRecord(e) }

func (e *Enemy) Objective() (Position, bool) { return e.objective, e.hasObjective }

func (e *Enemy) setObjective(p Position) {
	e.objective = p
	e.hasObjective = true
}

func (e *Enemy) clearObjective() {
	e.objective = Position{}
	e.hasObjective = false
}

// UpdateObjective keeps a generic enemy where it stands
func (e *Enemy) UpdateObjective(entities []Entity, buildings map[Position]*Building) {
	e.setObjective(e.pos)
}

// Scorpion attacks in a cross at moderate range and hunts the healthiest mech
type Scorpion struct {
	Enemy
}

func NewScorpion(pos Position, health, speed, strength int) *Scorpion {
	return &Scorpion{Enemy: *NewEnemy(pos, health, speed, strength)}
}

func (s *Scorpion) Kind() EntityKind { return KindScorpion }
func (s *Scorpion) Name() string     { return ScorpionName }
func (s *Scorpion) Symbol() rune     { return ScorpionSymbol }
func (s *Scorpion) String() string   { return FormatRecord(s) }

func (s *Scorpion) Targets() []Position {
	return lineTargets(s.pos, ScorpionRange, true, true)
}

// UpdateObjective targets the friendly unit with the most health. Ties go
// to the unit with the highest priority. Without friendly units the
// scorpion has no objective.
func (s *Scorpion) UpdateObjective(entities []Entity, buildings map[Position]*Building) {
	found := false
	best := 0
	var target Position
	for _, e := range entities {
		if !e.IsFriendly() {
			continue
		}
		if !found || e.Health() > best {
			found = true
			best = e.Health()
			target = e.Position()
		}
	}
	if !found {
		s.clearObjective()
		return
	}
	s.setObjective(target)
}

// Firefly attacks along its column at long range and hunts the weakest building
type Firefly struct {
	Enemy
}

func NewFirefly(pos Position, health, speed, strength int) *Firefly {
	return &Firefly{Enemy: *NewEnemy(pos, health, speed, strength)}
}

func (f *Firefly) Kind() EntityKind { return KindFirefly }
func (f *Firefly) Name() string     { return FireflyName }
func (f *Firefly) Symbol() rune     { return FireflySymbol }
func (f *Firefly) String() string   { return FormatRecord(f) }

func (f *Firefly) Targets() []Position {
	return lineTargets(f.pos, FireflyRange, true, false)
}

// UpdateObjective targets the building with the lowest health, destroyed
// buildings included. Ties go to the bottom-most, then right-most building.
// Without buildings the firefly stays put.
func (f *Firefly) UpdateObjective(entities []Entity, buildings map[Position]*Building) {
	lowest := MaxBuildingHealth + 1
	var weakest []Position
	for p, b := range buildings {
		switch {
		case b.Health() < lowest:
			lowest = b.Health()
			weakest = append(weakest[:0], p)
		case b.Health() == lowest:
			weakest = append(weakest, p)
		}
	}
	if target, ok := MaxPosition(weakest); ok {
		f.setObjective(target)
		return
	}
	f.setObjective(f.pos)
}

// NewEntity creates a unit from its record symbol. For HealMech, strength
// is the positive heal amount.
func NewEntity(symbol rune, pos Position, health, speed, strength int) (Entity, error) {
	switch symbol {
	case TankSymbol:
		return NewTankMech(pos, health, speed, strength), nil
	case HealSymbol:
		return NewHealMech(pos, health, speed, strength), nil
	case ScorpionSymbol:
		return NewScorpion(pos, health, speed, strength), nil
	case FireflySymbol:
		return NewFirefly(pos, health, speed, strength), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, symbol)
	}
}

// RecordStrength is the strength as written in entity records; heal
// amounts are shown positive.
func RecordStrength(e Entity) int {
	if e.Kind() == KindHeal {
		return -e.Strength()
	}
	return e.Strength()
}

// FormatRecord renders symbol,row,col,health,speed,strength
func FormatRecord(e Entity) string {
	p := e.Position()
	return fmt.Sprintf("%c,%d,%d,%d,%d,%d",
		e.Symbol(), p.Row, p.Col, e.Health(), e.Speed(), RecordStrength(e))
}
