package testutil

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
)

// BoardBuilder assembles board snapshots for tests
type BoardBuilder struct {
	board *core.Board
}

// NewBoard starts an empty board
func NewBoard() *BoardBuilder {
	return &BoardBuilder{board: &core.Board{
		Hexes:   map[core.HexKey]core.Hex{},
		Bridges: map[core.EdgeKey]core.Bridge{},
		Units:   map[string]core.Unit{},
	}}
}

// HexBoard starts a board holding every normal hex within radius of the origin
func HexBoard(radius int) *BoardBuilder {
	b := NewBoard()
	for _, c := range core.HexesWithinRadius(core.NewCoordinate(0, 0), radius) {
		b.Hex(c.Key(), core.TileNormal)
	}
	return b
}

// Hex adds a hex or changes its tile
func (b *BoardBuilder) Hex(key core.HexKey, tile core.TileKind) *BoardBuilder {
	h, ok := b.board.Hexes[key]
	if !ok {
		h = core.Hex{Key: key, Occupants: map[string][]string{}}
	}
	h.Tile = tile
	b.board.Hexes[key] = h
	return b
}

// Bridge builds a bridge between a and c
func (b *BoardBuilder) Bridge(a, c core.HexKey) *BoardBuilder {
	key := core.NewEdgeKey(a, c)
	b.board.Bridges[key] = core.Bridge{Key: key}
	return b
}

// Player seats a player with an optional capital; the capital hex becomes a capital tile
func (b *BoardBuilder) Player(id string, capital core.HexKey) *BoardBuilder {
	b.board.Players = append(b.board.Players, core.Player{ID: id, Name: id, CapitalHex: capital})
	if capital != "" {
		b.Hex(capital, core.TileCapital)
	}
	return b
}

// Force places a force unit
func (b *BoardBuilder) Force(id, owner string, hex core.HexKey) *BoardBuilder {
	return b.unit(core.Unit{ID: id, Kind: core.UnitForce, Owner: owner, Hex: hex})
}

// Champion places a champion unit with full health
func (b *BoardBuilder) Champion(id, owner string, hex core.HexKey, hp int) *BoardBuilder {
	return b.unit(core.Unit{ID: id, Kind: core.UnitChampion, Owner: owner, Hex: hex, HP: hp, MaxHP: hp, CardDefID: "champion." + id})
}

func (b *BoardBuilder) unit(u core.Unit) *BoardBuilder {
	h, ok := b.board.Hexes[u.Hex]
	if !ok {
		b.Hex(u.Hex, core.TileNormal)
		h = b.board.Hexes[u.Hex]
	}
	if h.Occupants == nil {
		h.Occupants = map[string][]string{}
	}
	h.Occupants[u.Owner] = append(h.Occupants[u.Owner], u.ID)
	b.board.Hexes[u.Hex] = h
	b.board.Units[u.ID] = u
	return b
}

// Build returns the assembled board
func (b *BoardBuilder) Build() *core.Board {
	return b.board
}

// Int returns a pointer to v
func Int(v int) *int { return &v }

// Bool returns a pointer to v
func Bool(v bool) *bool { return &v }

// NewTestRNG seeds a generator so map generation is reproducible
func NewTestRNG(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }

func NopLogger() zerolog.Logger { return zerolog.Nop() }
