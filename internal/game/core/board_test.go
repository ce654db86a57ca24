package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBoard() *Board {
	return &Board{
		Hexes: map[HexKey]Hex{
			"0,0": {Key: "0,0", Tile: TileCapital, Occupants: map[string][]string{"p1": {"f2", "f1", "c1"}}},
			"1,0": {Key: "1,0", Tile: TileNormal, Occupants: map[string][]string{"p2": {"f3"}, "p3": {}}},
			"0,1": {Key: "0,1", Tile: TileMine},
		},
		Bridges: map[EdgeKey]Bridge{
			NewEdgeKey("1,0", "0,0"): {Key: NewEdgeKey("0,0", "1,0")},
		},
		Units: map[string]Unit{
			"f1": {ID: "f1", Kind: UnitForce, Owner: "p1", Hex: "0,0"},
			"f2": {ID: "f2", Kind: UnitForce, Owner: "p1", Hex: "0,0"},
			"c1": {ID: "c1", Kind: UnitChampion, Owner: "p1", Hex: "0,0", HP: 3, MaxHP: 4},
			"f3": {ID: "f3", Kind: UnitForce, Owner: "p2", Hex: "1,0"},
		},
		Players: []Player{{ID: "p1", CapitalHex: "0,0"}, {ID: "p2", CapitalHex: "9,9"}},
	}
}

func TestHex_Occupancy(t *testing.T) {
	b := sampleBoard()

	h := b.Hexes["1,0"]
	assert.Equal(t, []string{"p2"}, h.OccupantOwners(), "players with empty unit lists do not count")
	assert.True(t, h.IsOccupied())
	assert.True(t, h.IsOccupiedBy("p2"))
	assert.False(t, h.IsOccupiedBy("p3"))
	assert.False(t, h.IsOccupiedBy(""))
	assert.True(t, h.HasOtherOccupant("p1"))
	assert.False(t, h.HasOtherOccupant("p2"))
	assert.True(t, h.Holds("p2", "f3"))
	assert.False(t, h.Holds("p3", "f3"))
	assert.False(t, h.Holds("p2", "f1"), "a unit listed on another hex is not held here")

	empty := b.Hexes["0,1"]
	assert.False(t, empty.IsOccupied())
	assert.Empty(t, empty.OccupantOwners())
}

func TestBoard_Lookups(t *testing.T) {
	b := sampleBoard()

	assert.Equal(t, []HexKey{"0,0", "0,1", "1,0"}, b.HexKeys())
	assert.True(t, b.HasBridge("0,0", "1,0"))
	assert.True(t, b.HasBridge("1,0", "0,0"))
	assert.False(t, b.HasBridge("0,0", "0,1"))

	capital, ok := b.Capital("p1")
	require.True(t, ok)
	assert.Equal(t, HexKey("0,0"), capital)

	_, ok = b.Capital("p2")
	assert.False(t, ok, "capital off the board is ignored")
	_, ok = b.Capital("nobody")
	assert.False(t, ok)

	forces := b.UnitsOn("0,0", "p1", UnitForce)
	require.Len(t, forces, 2)
	assert.Equal(t, "f1", forces[0].ID)
	assert.Equal(t, "f2", forces[1].ID)

	champions := b.UnitsOf("p1", UnitChampion)
	require.Len(t, champions, 1)
	assert.True(t, champions[0].IsChampion())
	assert.Nil(t, b.UnitsOn("5,5", "p1", UnitForce))
}

func TestBoard_NilSafe(t *testing.T) {
	var b *Board
	_, ok := b.Hex("0,0")
	assert.False(t, ok)
	assert.Nil(t, b.HexKeys())
	assert.False(t, b.HasBridge("0,0", "1,0"))
	_, ok = b.Capital("p1")
	assert.False(t, ok)
}

func TestDecodeBoard(t *testing.T) {
	data := []byte(`{
		"hexes": {"0,0": {"tile": "capital", "occupants": {"p1": ["u1"]}}, "1,0": {"tile": "normal"}},
		"bridges": {"0,0|1,0": {}},
		"units": {"u1": {"kind": "force", "ownerPlayerId": "p1", "hex": "0,0"}},
		"players": [{"id": "p1", "capitalHex": "0,0"}]
	}`)

	b, err := DecodeBoard(data)
	require.NoError(t, err)
	assert.Equal(t, HexKey("0,0"), b.Hexes["0,0"].Key)
	assert.Equal(t, TileCapital, b.Hexes["0,0"].Tile)
	assert.Equal(t, EdgeKey("0,0|1,0"), b.Bridges["0,0|1,0"].Key)
	assert.Equal(t, "u1", b.Units["u1"].ID)
	assert.True(t, b.HasBridge("1,0", "0,0"))

	_, err = DecodeBoard([]byte(`{"hexes": [}`))
	assert.Error(t, err)
}

func TestEdgeKey(t *testing.T) {
	assert.Equal(t, NewEdgeKey("0,0", "1,0"), NewEdgeKey("1,0", "0,0"))

	a, b, err := NewEdgeKey("1,0", "0,0").Endpoints()
	require.NoError(t, err)
	assert.Equal(t, HexKey("0,0"), a)
	assert.Equal(t, HexKey("1,0"), b)

	other, ok := NewEdgeKey("0,0", "1,0").Other("1,0")
	require.True(t, ok)
	assert.Equal(t, HexKey("0,0"), other)
	assert.False(t, NewEdgeKey("0,0", "1,0").Touches("2,0"))

	canonical, err := ParseEdgeKey("1,0|0,0")
	require.NoError(t, err)
	assert.Equal(t, EdgeKey("0,0|1,0"), canonical)

	for _, raw := range []string{"", "0,0", "0,0|", "0,0|0,0", "x|0,0", "0,0-1,0"} {
		_, err := ParseEdgeKey(raw)
		assert.ErrorIs(t, err, ErrMalformedEdgeKey, "raw %q", raw)
	}

	_, _, err = EdgeKey("garbage").Endpoints()
	assert.Error(t, err)
	assert.False(t, EdgeKey("garbage").Touches("0,0"))
}

func TestSet(t *testing.T) {
	s := NewSet[HexKey]("b", "a")
	s.Add("c")
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("z"))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []HexKey{"a", "b", "c"}, s.Sorted())

	clone := s.Clone()
	clone.Add("d")
	assert.False(t, s.Has("d"), "clone must not alias")

	u := s.Union(NewSet[HexKey]("x"))
	assert.Equal(t, 4, u.Len())

	var nilSet Set[HexKey]
	assert.False(t, nilSet.Has("a"))
	assert.NotNil(t, nilSet.Clone())
}

func TestModifier(t *testing.T) {
	link := Modifier{Kind: ModifierLink, Owner: "p1", Link: &HexLink{From: "0,0", To: "3,0"}}
	assert.True(t, link.AppliesTo("p1"))
	assert.False(t, link.AppliesTo("p2"))
	assert.True(t, link.Connects("0,0", "3,0"))
	assert.True(t, link.Connects("3,0", "0,0"))
	assert.False(t, link.Connects("0,0", "1,0"))

	global := Modifier{Kind: ModifierLink}
	assert.True(t, global.AppliesTo("anyone"))
	assert.False(t, global.Connects("0,0", "3,0"), "link without payload connects nothing")
}
