package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
	"github.com/mitchelldurbincs/bridgefront/internal/testutil"
)

func filterBoard() *core.Board {
	return testutil.HexBoard(3).
		Player("p1", "-3,0").
		Player("p2", "3,0").
		Hex("0,-1", core.TileMine).
		Force("f1", "p1", "-2,0").
		Champion("c1", "p1", "0,0", 3).
		Force("f2", "p2", "2,0").
		Build()
}

func TestMatchesOwner(t *testing.T) {
	b := filterBoard()
	v := view(b, "p1")

	assert.True(t, MatchesOwner(v, b.Hexes["-2,0"], OwnerSelf))
	assert.True(t, MatchesOwner(v, b.Hexes["-3,0"], OwnerSelf), "own capital counts as own")
	assert.False(t, MatchesOwner(v, b.Hexes["2,0"], OwnerSelf))
	assert.True(t, MatchesOwner(v, b.Hexes["2,0"], OwnerEnemy))
	assert.True(t, MatchesOwner(v, b.Hexes["3,0"], OwnerEnemy), "enemy capital counts as enemy")
	assert.False(t, MatchesOwner(v, b.Hexes["1,0"], OwnerEnemy))
	assert.True(t, MatchesOwner(v, b.Hexes["1,0"], OwnerAny))
	assert.True(t, MatchesOwner(v, b.Hexes["1,0"], ""))
}

func TestMatchingHexes(t *testing.T) {
	b := filterBoard()
	v := view(b, "p1")

	mines := MatchingHexes(v, HexFilter{Tiles: []core.TileKind{core.TileMine}})
	assert.Equal(t, []core.HexKey{"0,-1"}, mines.Sorted())

	occupied := MatchingHexes(v, HexFilter{Occupancy: OccupancyOccupied})
	assert.Equal(t, []core.HexKey{"-2,0", "0,0", "2,0"}, occupied.Sorted())

	emptyEnemy := MatchingHexes(v, HexFilter{Owner: OwnerEnemy, Occupancy: OccupancyEmpty})
	assert.Equal(t, []core.HexKey{"3,0"}, emptyEnemy.Sorted())

	all := MatchingHexes(v, HexFilter{})
	assert.Equal(t, len(b.Hexes), all.Len())
}

func TestWithinDistance(t *testing.T) {
	b := filterBoard()
	v := view(b, "p1")

	nearCapital := DistanceBounds{MaxFromCapital: testutil.Int(1)}
	assert.True(t, WithinDistance(v, "-3,0", nearCapital))
	assert.True(t, WithinDistance(v, "-2,0", nearCapital))
	assert.False(t, WithinDistance(v, "-1,0", nearCapital))

	nearChampion := DistanceBounds{MaxFromFriendlyChampion: testutil.Int(1)}
	assert.True(t, WithinDistance(v, "1,0", nearChampion))
	assert.False(t, WithinDistance(v, "2,0", nearChampion))

	nearForce := DistanceBounds{MaxFromFriendlyForce: testutil.Int(0)}
	assert.True(t, WithinDistance(v, "-2,0", nearForce))
	assert.False(t, WithinDistance(v, "-3,0", nearForce))

	both := DistanceBounds{MaxFromCapital: testutil.Int(3), MaxFromFriendlyChampion: testutil.Int(1)}
	assert.True(t, WithinDistance(v, "0,0", both))
	assert.False(t, WithinDistance(v, "1,0", both), "every bound must hold")

	p2 := view(b, "p2")
	assert.False(t, WithinDistance(p2, "2,0", nearChampion), "no friendly champion excludes everything")
	assert.False(t, WithinDistance(view(b, ""), "-3,0", nearCapital))
	assert.False(t, WithinDistance(v, "nope", nearCapital))
	assert.True(t, WithinDistance(v, "nope", DistanceBounds{}))
}

func TestDistanceBetween(t *testing.T) {
	d, ok := DistanceBetween("0,0", "2,-1")
	require.True(t, ok)
	assert.Equal(t, 2, d)

	_, ok = DistanceBetween("0,0", "x")
	assert.False(t, ok)
}
