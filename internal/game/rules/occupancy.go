package rules

import (
	"slices"

	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
)

// WithinOccupancyCap checks if playerID entering the hex keeps the number of
// distinct owners at or below limit. A player already present may always enter.
func WithinOccupancyCap(b *core.Board, hex core.HexKey, playerID string, limit int) bool {
	h, ok := b.Hex(hex)
	if !ok {
		return false
	}
	owners := h.OccupantOwners()
	if playerID != "" && slices.Contains(owners, playerID) {
		return true
	}
	return len(owners) < limit
}

func IsOccupied(b *core.Board, hex core.HexKey) bool {
	h, ok := b.Hex(hex)
	return ok && h.IsOccupied()
}

func IsOccupiedBy(b *core.Board, hex core.HexKey, playerID string) bool {
	h, ok := b.Hex(hex)
	return ok && h.IsOccupiedBy(playerID)
}

// HasEnemyUnits checks if anyone other than playerID has units on the hex
func HasEnemyUnits(b *core.Board, hex core.HexKey, playerID string) bool {
	h, ok := b.Hex(hex)
	return ok && h.HasOtherOccupant(playerID)
}

// OccupiedHexes returns the hexes holding units of playerID, sorted
func OccupiedHexes(b *core.Board, playerID string) []core.HexKey {
	var out []core.HexKey
	for _, key := range b.HexKeys() {
		if IsOccupiedBy(b, key, playerID) {
			out = append(out, key)
		}
	}
	return out
}
