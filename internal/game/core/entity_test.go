package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntity(t *testing.T) {
	tests := []struct {
		symbol   rune
		kind     EntityKind
		name     string
		friendly bool
	}{
		{'T', KindTank, "TankMech", true},
		{'H', KindHeal, "HealMech", true},
		{'S', KindScorpion, "Scorpion", false},
		{'F', KindFirefly, "Firefly", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEntity(tt.symbol, Position{1, 2}, 5, 3, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, e.Kind())
			assert.Equal(t, tt.name, e.Name())
			assert.Equal(t, tt.symbol, e.Symbol())
			assert.Equal(t, tt.friendly, e.IsFriendly())
			assert.Equal(t, Position{1, 2}, e.Position())

			_, isFriendly := e.(Friendly)
			_, isHostile := e.(Hostile)
			assert.Equal(t, tt.friendly, isFriendly)
			assert.Equal(t, !tt.friendly, isHostile)
		})
	}

	_, err := NewEntity('Q', Position{}, 1, 1, 1)
	assert.True(t, errors.Is(err, ErrUnknownUnit))
}

func TestEntity_Damage(t *testing.T) {
	t.Run("floors at zero", func(t *testing.T) {
		e := NewTankMech(Position{}, 3, 2, 1)
		e.Damage(5)
		assert.Equal(t, 0, e.Health())
		assert.False(t, e.IsAlive())
	})

	t.Run("healing has no ceiling", func(t *testing.T) {
		e := NewTankMech(Position{}, 3, 2, 1)
		e.Damage(-4)
		assert.Equal(t, 7, e.Health())
	})

	t.Run("dead units stay dead", func(t *testing.T) {
		e := NewScorpion(Position{}, 1, 2, 1)
		e.Damage(1)
		require.False(t, e.IsAlive())
		e.Damage(-3)
		assert.Equal(t, 0, e.Health())
	})
}

func TestEntity_Targets(t *testing.T) {
	origin := Position{5, 5}

	t.Run("tank fires along its row", func(t *testing.T) {
		targets := NewTankMech(origin, 1, 1, 1).Targets()
		assert.Len(t, targets, 10)
		for _, p := range targets {
			assert.Equal(t, 5, p.Row)
			assert.NotEqual(t, 5, p.Col)
		}
		assert.Contains(t, targets, Position{5, 0})
		assert.Contains(t, targets, Position{5, 10})
	})

	t.Run("heal covers the adjacent cells", func(t *testing.T) {
		targets := NewHealMech(origin, 1, 1, 1).Targets()
		assert.ElementsMatch(t, []Position{{5, 6}, {5, 4}, {6, 5}, {4, 5}}, targets)
	})

	t.Run("scorpion strikes a short cross", func(t *testing.T) {
		targets := NewScorpion(origin, 1, 1, 1).Targets()
		assert.ElementsMatch(t, []Position{
			{3, 5}, {4, 5}, {6, 5}, {7, 5},
			{5, 3}, {5, 4}, {5, 6}, {5, 7},
		}, targets)
	})

	t.Run("firefly fires along its column", func(t *testing.T) {
		targets := NewFirefly(origin, 1, 1, 1).Targets()
		assert.Len(t, targets, 10)
		for _, p := range targets {
			assert.Equal(t, 5, p.Col)
		}
		assert.Contains(t, targets, Position{0, 5})
		assert.Contains(t, targets, Position{10, 5})
	})

	t.Run("targets are not clipped to the board", func(t *testing.T) {
		targets := NewTankMech(Position{0, 0}, 1, 1, 1).Targets()
		assert.Contains(t, targets, Position{0, -5})
	})
}

func TestHealMech_Attack(t *testing.T) {
	heal := NewHealMech(Position{1, 1}, 5, 2, 2)
	assert.Equal(t, -2, heal.Strength())

	t.Run("heals friendly units", func(t *testing.T) {
		tank := NewTankMech(Position{1, 2}, 3, 3, 3)
		heal.Attack(tank)
		assert.Equal(t, 5, tank.Health())
	})

	t.Run("ignores hostile units", func(t *testing.T) {
		scorpion := NewScorpion(Position{1, 0}, 3, 3, 3)
		heal.Attack(scorpion)
		assert.Equal(t, 3, scorpion.Health())
	})

	t.Run("repairs buildings", func(t *testing.T) {
		b := NewBuilding(4)
		heal.Attack(b)
		assert.Equal(t, 6, b.Health())
	})
}

func TestEntity_AttackDamages(t *testing.T) {
	tank := NewTankMech(Position{}, 5, 3, 3)
	scorpion := NewScorpion(Position{0, 2}, 4, 3, 2)
	b := NewBuilding(5)

	tank.Attack(scorpion)
	assert.Equal(t, 1, scorpion.Health())

	scorpion.Attack(tank)
	scorpion.Attack(b)
	assert.Equal(t, 3, tank.Health())
	assert.Equal(t, 3, b.Health())

	// friendly fire is not special cased
	other := NewTankMech(Position{0, 1}, 5, 3, 3)
	tank.Attack(other)
	assert.Equal(t, 2, other.Health())
}

func TestMech_Activation(t *testing.T) {
	m := NewTankMech(Position{}, 5, 3, 3)
	assert.True(t, m.IsActive(), "mechs start active")
	m.Disable()
	assert.False(t, m.IsActive())
	m.Enable()
	assert.True(t, m.IsActive())
}

func TestEnemy_InitialObjectiveIsSpawn(t *testing.T) {
	f := NewFirefly(Position{3, 4}, 2, 2, 2)
	obj, ok := f.Objective()
	require.True(t, ok)
	assert.Equal(t, Position{3, 4}, obj)
}

func TestScorpion_UpdateObjective(t *testing.T) {
	t.Run("targets the healthiest friendly", func(t *testing.T) {
		s := NewScorpion(Position{0, 0}, 3, 3, 2)
		entities := []Entity{
			NewTankMech(Position{1, 1}, 3, 3, 3),
			s,
			NewHealMech(Position{2, 2}, 7, 2, 1),
			NewFirefly(Position{3, 3}, 9, 2, 2),
		}
		s.UpdateObjective(entities, nil)
		obj, ok := s.Objective()
		require.True(t, ok)
		assert.Equal(t, Position{2, 2}, obj)
	})

	t.Run("ties go to the first in priority order", func(t *testing.T) {
		s := NewScorpion(Position{0, 0}, 3, 3, 2)
		entities := []Entity{
			NewTankMech(Position{4, 4}, 5, 3, 3),
			NewHealMech(Position{1, 1}, 5, 2, 1),
			s,
		}
		s.UpdateObjective(entities, nil)
		obj, _ := s.Objective()
		assert.Equal(t, Position{4, 4}, obj)
	})

	t.Run("no friendly units means no objective", func(t *testing.T) {
		s := NewScorpion(Position{0, 0}, 3, 3, 2)
		s.UpdateObjective([]Entity{s}, nil)
		_, ok := s.Objective()
		assert.False(t, ok)
	})
}

func TestFirefly_UpdateObjective(t *testing.T) {
	t.Run("lowest health, greatest position", func(t *testing.T) {
		f := NewFirefly(Position{4, 4}, 2, 2, 2)
		buildings := map[Position]*Building{
			{0, 0}: NewBuilding(3),
			{0, 1}: NewBuilding(3),
			{1, 0}: NewBuilding(5),
		}
		f.UpdateObjective(nil, buildings)
		obj, ok := f.Objective()
		require.True(t, ok)
		assert.Equal(t, Position{0, 1}, obj)
	})

	t.Run("destroyed buildings count", func(t *testing.T) {
		f := NewFirefly(Position{4, 4}, 2, 2, 2)
		buildings := map[Position]*Building{
			{0, 0}: NewBuilding(0),
			{3, 3}: NewBuilding(1),
		}
		f.UpdateObjective(nil, buildings)
		obj, _ := f.Objective()
		assert.Equal(t, Position{0, 0}, obj)
	})

	t.Run("no buildings keeps the firefly in place", func(t *testing.T) {
		f := NewFirefly(Position{4, 4}, 2, 2, 2)
		f.UpdateObjective(nil, map[Position]*Building{})
		obj, ok := f.Objective()
		require.True(t, ok)
		assert.Equal(t, Position{4, 4}, obj)
	})
}

func TestEntity_String(t *testing.T) {
	tests := []struct {
		entity   Entity
		expected string
	}{
		{NewTankMech(Position{1, 2}, 5, 3, 3), "T,1,2,5,3,3"},
		{NewHealMech(Position{0, 7}, 4, 2, 1), "H,0,7,4,2,1"},
		{NewScorpion(Position{6, 6}, 3, 3, 2), "S,6,6,3,3,2"},
		{NewFirefly(Position{7, 0}, 2, 2, 1), "F,7,0,2,2,1"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRecord(tt.entity))
			assert.Equal(t, tt.expected, tt.entity.String())
		})
	}
}
