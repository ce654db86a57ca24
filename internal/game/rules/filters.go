package rules

import (
	"slices"

	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
)

// OwnerFilter restricts targets by who controls them.
type OwnerFilter string

const (
	OwnerAny   OwnerFilter = "any"
	OwnerSelf  OwnerFilter = "self"
	OwnerEnemy OwnerFilter = "enemy"
)

// OccupancyFilter restricts hexes by whether they hold units.
type OccupancyFilter string

const (
	OccupancyEither   OccupancyFilter = "either"
	OccupancyOccupied OccupancyFilter = "occupied"
	OccupancyEmpty    OccupancyFilter = "empty"
)

// DistanceBounds are optional upper bounds on hex distance, nil meaning unbounded.
type DistanceBounds struct {
	MaxFromCapital          *int `json:"maxDistanceFromCapital,omitempty"`
	MaxFromFriendlyChampion *int `json:"maxDistanceFromFriendlyChampion,omitempty"`
	MaxFromFriendlyForce    *int `json:"maxDistanceFromFriendlyForce,omitempty"`
}

func (d DistanceBounds) IsZero() bool {
	return d.MaxFromCapital == nil && d.MaxFromFriendlyChampion == nil && d.MaxFromFriendlyForce == nil
}

// HexFilter is the declarative hex eligibility test shared by the hex-based target kinds.
type HexFilter struct {
	Owner     OwnerFilter     `json:"owner,omitempty"`
	Tiles     []core.TileKind `json:"tiles,omitempty"`
	Occupancy OccupancyFilter `json:"occupancy,omitempty"`
	DistanceBounds
}

// MatchesOwner applies an owner filter to a hex. A hex belongs to a player when
// the player has units on it or it is the player's capital.
func MatchesOwner(v View, h core.Hex, owner OwnerFilter) bool {
	switch owner {
	case OwnerSelf:
		if h.IsOccupiedBy(v.PlayerID) {
			return true
		}
		capital, ok := v.Board.Capital(v.PlayerID)
		return ok && capital == h.Key
	case OwnerEnemy:
		if h.HasOtherOccupant(v.PlayerID) {
			return true
		}
		for _, p := range v.Board.Players {
			if p.ID != v.PlayerID && p.CapitalHex == h.Key {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// MatchesHex applies every part of a filter to one hex
func MatchesHex(v View, h core.Hex, f HexFilter) bool {
	if !MatchesOwner(v, h, f.Owner) {
		return false
	}
	if len(f.Tiles) > 0 && !slices.Contains(f.Tiles, h.Tile) {
		return false
	}
	switch f.Occupancy {
	case OccupancyOccupied:
		if !h.IsOccupied() {
			return false
		}
	case OccupancyEmpty:
		if h.IsOccupied() {
			return false
		}
	}
	return WithinDistance(v, h.Key, f.DistanceBounds)
}

// MatchingHexes returns every hex on the board passing the filter
func MatchingHexes(v View, f HexFilter) core.Set[core.HexKey] {
	out := core.NewSet[core.HexKey]()
	for _, key := range v.Board.HexKeys() {
		if MatchesHex(v, v.Board.Hexes[key], f) {
			out.Add(key)
		}
	}
	return out
}

// WithinDistance evaluates distance bounds for one hex. A bound referring to
// something the local player does not have (no capital, no champions) excludes the hex.
func WithinDistance(v View, hex core.HexKey, d DistanceBounds) bool {
	if d.IsZero() {
		return true
	}
	c, err := core.ParseHexKey(hex)
	if err != nil {
		return false
	}
	if d.MaxFromCapital != nil {
		capital, ok := v.Board.Capital(v.PlayerID)
		if !ok || !withinOf(c, []core.HexKey{capital}, *d.MaxFromCapital) {
			return false
		}
	}
	if d.MaxFromFriendlyChampion != nil {
		if !withinOf(c, unitHexes(v, core.UnitChampion), *d.MaxFromFriendlyChampion) {
			return false
		}
	}
	if d.MaxFromFriendlyForce != nil {
		if !withinOf(c, unitHexes(v, core.UnitForce), *d.MaxFromFriendlyForce) {
			return false
		}
	}
	return true
}

// DistanceBetween returns the hex distance between two keys, false if either is malformed
func DistanceBetween(a, b core.HexKey) (int, bool) {
	ca, err := core.ParseHexKey(a)
	if err != nil {
		return 0, false
	}
	cb, err := core.ParseHexKey(b)
	if err != nil {
		return 0, false
	}
	return ca.DistanceTo(cb), true
}

func withinOf(c core.Coordinate, anchors []core.HexKey, limit int) bool {
	for _, a := range anchors {
		ca, err := core.ParseHexKey(a)
		if err != nil {
			continue
		}
		if c.DistanceTo(ca) <= limit {
			return true
		}
	}
	return false
}

func unitHexes(v View, kind core.UnitKind) []core.HexKey {
	if v.PlayerID == "" {
		return nil
	}
	var out []core.HexKey
	for _, u := range v.Board.UnitsOf(v.PlayerID, kind) {
		if _, ok := v.Board.Hex(u.Hex); ok {
			out = append(out, u.Hex)
		}
	}
	return out
}
