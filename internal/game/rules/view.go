package rules

import "github.com/mitchelldurbincs/bridgefront/internal/game/core"

// DefaultOccupancyCap is the number of distinct players that may share a hex
const DefaultOccupancyCap = 2

// Options carries the tunable rule constants. It is copied out of the
// configuration once per session and passed into every query.
type Options struct {
	OccupancyCap int
	// LinksRequireBridge makes linked (non-physical) moves unusable when a bridge is required
	LinksRequireBridge bool
	// IncludeChampionsByDefault is used when a move leaves includeChampions unspecified
	IncludeChampionsByDefault bool
}

// DefaultOptions returns the standard rule constants
func DefaultOptions() Options {
	return Options{
		OccupancyCap:              DefaultOccupancyCap,
		IncludeChampionsByDefault: true,
	}
}

// View bundles the read-only inputs of every rule query: the board snapshot,
// the active modifiers, and the local player. An empty PlayerID is a spectator.
type View struct {
	Board     *core.Board
	Modifiers []core.Modifier
	PlayerID  string
	Options   Options
}

func (v View) occupancyCap() int {
	if v.Options.OccupancyCap <= 0 {
		return DefaultOccupancyCap
	}
	return v.Options.OccupancyCap
}

// MoveSplit describes which units of a stack take part in a move.
// Nil fields are unspecified.
type MoveSplit struct {
	ForceCount       *int  `json:"forceCount,omitempty"`
	IncludeChampions *bool `json:"includeChampions,omitempty"`
}

// MoveRequirement parameterises CanMoveBetween
type MoveRequirement struct {
	RequiresBridge bool
	// BuildingEdge is a bridge placed by the same compound action; it counts as present
	BuildingEdge core.EdgeKey
	// BypassBridge is set when CanBypassBridge holds for the moving stack
	BypassBridge bool
}
