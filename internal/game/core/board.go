package core

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sort"
)

// TileKind is the terrain of a hex.
type TileKind string

const (
	TileNormal  TileKind = "normal"
	TileCapital TileKind = "capital"
	TileForge   TileKind = "forge"
	TileMine    TileKind = "mine"
	TileCenter  TileKind = "center"
)

// UnitKind distinguishes plain forces from champions.
type UnitKind string

const (
	UnitForce    UnitKind = "force"
	UnitChampion UnitKind = "champion"
)

// Hex is one cell of the board.
// Occupants maps a player id to the unit ids that player has on the hex.
type Hex struct {
	Key       HexKey              `json:"key"`
	Tile      TileKind            `json:"tile"`
	Occupants map[string][]string `json:"occupants,omitempty"`
}

// Bridge is a built connection across one physical edge.
type Bridge struct {
	Key   EdgeKey `json:"key"`
	Owner string  `json:"ownerPlayerId,omitempty"`
}

// Unit is a force or champion token.
// HP, MaxHP and CardDefID are only meaningful for champions.
type Unit struct {
	ID        string   `json:"id"`
	Kind      UnitKind `json:"kind"`
	Owner     string   `json:"ownerPlayerId"`
	Hex       HexKey   `json:"hex"`
	HP        int      `json:"hp,omitempty"`
	MaxHP     int      `json:"maxHp,omitempty"`
	CardDefID string   `json:"cardDefId,omitempty"`
}

func (u Unit) IsChampion() bool { return u.Kind == UnitChampion }
func (u Unit) IsForce() bool    { return u.Kind == UnitForce }

// Player is a seat in the game.
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	CapitalHex HexKey `json:"capitalHex,omitempty"`
}

// Board is an immutable snapshot of the game world at one revision.
// The authoritative engine replaces it wholesale; nothing here mutates it.
type Board struct {
	Hexes   map[HexKey]Hex     `json:"hexes"`
	Bridges map[EdgeKey]Bridge `json:"bridges"`
	Units   map[string]Unit    `json:"units"`
	Players []Player           `json:"players"`
}

// OccupantOwners returns the players with at least one unit on the hex, sorted
func (h Hex) OccupantOwners() []string {
	owners := make([]string, 0, len(h.Occupants))
	for owner, units := range h.Occupants {
		if len(units) > 0 {
			owners = append(owners, owner)
		}
	}
	sort.Strings(owners)
	return owners
}

func (h Hex) IsOccupied() bool {
	return len(h.OccupantOwners()) > 0
}

func (h Hex) IsOccupiedBy(playerID string) bool {
	return playerID != "" && len(h.Occupants[playerID]) > 0
}

// Holds reports whether unitID is listed among owner's units on the hex
func (h Hex) Holds(owner, unitID string) bool {
	return unitID != "" && slices.Contains(h.Occupants[owner], unitID)
}

// HasOtherOccupant reports whether anyone other than playerID has units here
func (h Hex) HasOtherOccupant(playerID string) bool {
	for owner, units := range h.Occupants {
		if owner != playerID && len(units) > 0 {
			return true
		}
	}
	return false
}

// Hex safely returns the hex for key
func (b *Board) Hex(key HexKey) (Hex, bool) {
	if b == nil {
		return Hex{}, false
	}
	h, ok := b.Hexes[key]
	return h, ok
}

// HexKeys returns every hex key on the board in sorted order
func (b *Board) HexKeys() []HexKey {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.Hexes))
}

// HasBridge checks if a bridge spans the edge between a and b
func (b *Board) HasBridge(a, c HexKey) bool {
	if b == nil {
		return false
	}
	_, ok := b.Bridges[NewEdgeKey(a, c)]
	return ok
}

// Player looks up a player by id
func (b *Board) Player(id string) (Player, bool) {
	if b == nil {
		return Player{}, false
	}
	for _, p := range b.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Capital returns the capital hex of a player if it is on the board
func (b *Board) Capital(playerID string) (HexKey, bool) {
	p, ok := b.Player(playerID)
	if !ok || p.CapitalHex == "" {
		return "", false
	}
	if _, ok := b.Hexes[p.CapitalHex]; !ok {
		return "", false
	}
	return p.CapitalHex, true
}

// UnitsOn returns the units of owner and kind on a hex, sorted by id.
// Ids listed as occupants but missing from Units are skipped.
func (b *Board) UnitsOn(key HexKey, owner string, kind UnitKind) []Unit {
	h, ok := b.Hex(key)
	if !ok {
		return nil
	}
	var out []Unit
	for _, id := range h.Occupants[owner] {
		u, ok := b.Units[id]
		if !ok || u.Kind != kind {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UnitsOf returns every unit of owner and kind on the board, sorted by id
func (b *Board) UnitsOf(owner string, kind UnitKind) []Unit {
	if b == nil {
		return nil
	}
	var out []Unit
	for _, u := range b.Units {
		if u.Owner == owner && u.Kind == kind {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DecodeBoard parses a board snapshot and fills keys omitted inside the map values
func DecodeBoard(data []byte) (*Board, error) {
	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	if b.Hexes == nil {
		b.Hexes = map[HexKey]Hex{}
	}
	if b.Bridges == nil {
		b.Bridges = map[EdgeKey]Bridge{}
	}
	if b.Units == nil {
		b.Units = map[string]Unit{}
	}
	for key, h := range b.Hexes {
		if h.Key == "" {
			h.Key = key
			b.Hexes[key] = h
		}
	}
	for key, br := range b.Bridges {
		if br.Key == "" {
			br.Key = key
			b.Bridges[key] = br
		}
	}
	for id, u := range b.Units {
		if u.ID == "" {
			u.ID = id
			b.Units[id] = u
		}
	}
	return &b, nil
}
