package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTile_Basics(t *testing.T) {
	tests := []struct {
		tile     Tile
		kind     TileKind
		name     string
		blocking bool
		symbol   rune
	}{
		{Ground{}, TileGround, "Ground", false, ' '},
		{Mountain{}, TileMountain, "Mountain", true, 'M'},
		{NewBuilding(4), TileBuilding, "Building", true, '4'},
		{NewBuilding(0), TileBuilding, "Building", false, '0'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.tile.Kind())
			assert.Equal(t, tt.name, tt.tile.Name())
			assert.Equal(t, tt.blocking, tt.tile.IsBlocking())
			assert.Equal(t, tt.symbol, tt.tile.Symbol())
		})
	}
}

func TestTile_String(t *testing.T) {
	assert.Equal(t, "Ground()", Ground{}.String())
	assert.Equal(t, "Mountain()", Mountain{}.String())
	assert.Equal(t, "Building(7)", NewBuilding(7).String())
	assert.Equal(t, "Building", TileBuilding.String())
}

func TestBuilding_Damage(t *testing.T) {
	t.Run("damage reduces health", func(t *testing.T) {
		b := NewBuilding(5)
		b.Damage(2)
		assert.Equal(t, 3, b.Health())
		assert.False(t, b.IsDestroyed())
		assert.True(t, b.IsBlocking())
	})

	t.Run("damage floors at zero and destroys", func(t *testing.T) {
		b := NewBuilding(2)
		b.Damage(5)
		assert.Equal(t, 0, b.Health())
		assert.True(t, b.IsDestroyed())
		assert.False(t, b.IsBlocking())
		assert.Equal(t, '0', b.Symbol())
	})

	t.Run("repair is capped", func(t *testing.T) {
		b := NewBuilding(8)
		b.Damage(-3)
		assert.Equal(t, MaxBuildingHealth, b.Health())
	})

	t.Run("destroyed building cannot be repaired", func(t *testing.T) {
		b := NewBuilding(1)
		b.Damage(1)
		require.True(t, b.IsDestroyed())
		b.Damage(-4)
		assert.Equal(t, 0, b.Health())
		assert.True(t, b.IsDestroyed())
	})
}

func TestNewBuilding_ClampsHealth(t *testing.T) {
	assert.Equal(t, 0, NewBuilding(-3).Health())
	assert.Equal(t, 9, NewBuilding(42).Health())
	assert.True(t, NewBuilding(0).IsDestroyed())
}

func TestTileFromSymbol(t *testing.T) {
	tile, ok := TileFromSymbol(' ')
	require.True(t, ok)
	assert.Equal(t, TileGround, tile.Kind())

	tile, ok = TileFromSymbol('M')
	require.True(t, ok)
	assert.Equal(t, TileMountain, tile.Kind())

	tile, ok = TileFromSymbol('6')
	require.True(t, ok)
	b, isBuilding := tile.(*Building)
	require.True(t, isBuilding)
	assert.Equal(t, 6, b.Health())

	_, ok = TileFromSymbol('x')
	assert.False(t, ok)
}
