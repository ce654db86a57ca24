package rules

import "github.com/mitchelldurbincs/bridgefront/internal/game/core"

// CanMoveBetween checks if the local player's units may step from one hex to another.
// The step must follow a physical edge or a usable link; a required bridge must exist
// on a physical edge unless it is being built by the same action or the stack can
// bypass bridges; and entering must not break the occupancy cap.
func CanMoveBetween(v View, from, to core.HexKey, req MoveRequirement) bool {
	if from == to {
		return false
	}
	if _, ok := v.Board.Hex(from); !ok {
		return false
	}
	if _, ok := v.Board.Hex(to); !ok {
		return false
	}

	physical := IsAdjacent(from, to)
	if !physical && !IsLinked(from, to, v.Modifiers, v.PlayerID) {
		return false
	}

	if req.RequiresBridge && !req.BypassBridge {
		if physical {
			building := req.BuildingEdge != "" && req.BuildingEdge == core.NewEdgeKey(from, to)
			if !v.Board.HasBridge(from, to) && !building {
				return false
			}
		} else if v.Options.LinksRequireBridge {
			return false
		}
	}

	return WithinOccupancyCap(v.Board, to, v.PlayerID, v.occupancyCap())
}

// CanBypassBridge checks if the stack the local player moves out of hex may cross
// un-bridged edges. Every local champion on the hex must hold a bypass modifier,
// champions must travel, and no forces may come along.
func CanBypassBridge(v View, hex core.HexKey, split MoveSplit) bool {
	if v.PlayerID == "" {
		return false
	}
	champions := v.Board.UnitsOn(hex, v.PlayerID, core.UnitChampion)
	if len(champions) == 0 {
		return false
	}

	include := v.Options.IncludeChampionsByDefault
	if split.IncludeChampions != nil {
		include = *split.IncludeChampions
	}
	if !include {
		return false
	}

	for _, c := range champions {
		if !HasBridgeBypass(v.Modifiers, c.ID, v.PlayerID) {
			return false
		}
	}

	if split.ForceCount != nil {
		return *split.ForceCount == 0
	}
	return len(v.Board.UnitsOn(hex, v.PlayerID, core.UnitForce)) == 0
}

// HasBridgeBypass checks if unitID holds a bypass modifier usable by playerID
func HasBridgeBypass(modifiers []core.Modifier, unitID, playerID string) bool {
	for _, m := range modifiers {
		if m.Kind != core.ModifierBridgeBypass || !m.AppliesTo(playerID) {
			continue
		}
		if m.UnitID == unitID {
			return true
		}
	}
	return false
}
