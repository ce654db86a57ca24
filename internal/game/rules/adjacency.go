package rules

import "github.com/mitchelldurbincs/bridgefront/internal/game/core"

// IsAdjacent checks if b is one of the six physical neighbors of a.
// Malformed keys are never adjacent to anything.
func IsAdjacent(a, b core.HexKey) bool {
	ca, err := core.ParseHexKey(a)
	if err != nil {
		return false
	}
	cb, err := core.ParseHexKey(b)
	if err != nil {
		return false
	}
	return ca.IsAdjacentTo(cb)
}

// IsLinked checks if a link modifier usable by playerID connects a and b
func IsLinked(a, b core.HexKey, modifiers []core.Modifier, playerID string) bool {
	if a == b {
		return false
	}
	for _, m := range modifiers {
		if m.AppliesTo(playerID) && m.Connects(a, b) {
			return true
		}
	}
	return false
}

// Neighbors returns the on-board hexes reachable from hex in one step,
// physical neighbors and linked hexes together, sorted and without duplicates.
func Neighbors(v View, hex core.HexKey) []core.HexKey {
	if _, ok := v.Board.Hex(hex); !ok {
		return nil
	}
	out := core.NewSet[core.HexKey]()
	if c, err := core.ParseHexKey(hex); err == nil {
		for _, n := range c.Neighbors() {
			if _, ok := v.Board.Hex(n.Key()); ok {
				out.Add(n.Key())
			}
		}
	}
	for _, m := range v.Modifiers {
		if m.Kind != core.ModifierLink || m.Link == nil || !m.AppliesTo(v.PlayerID) {
			continue
		}
		var other core.HexKey
		switch hex {
		case m.Link.From:
			other = m.Link.To
		case m.Link.To:
			other = m.Link.From
		default:
			continue
		}
		if _, ok := v.Board.Hex(other); ok && other != hex {
			out.Add(other)
		}
	}
	return out.Sorted()
}
