package targeting

import (
	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
	"github.com/mitchelldurbincs/bridgefront/internal/game/rules"
)

func moveRequirement(v rules.View, origin core.HexKey, requiresBridge bool, split rules.MoveSplit) rules.MoveRequirement {
	return rules.MoveRequirement{
		RequiresBridge: requiresBridge,
		BypassBridge:   requiresBridge && rules.CanBypassBridge(v, origin, split),
	}
}

// StackDestinations returns the hexes a local stack on origin may step into
func StackDestinations(v rules.View, origin core.HexKey, requiresBridge bool, split rules.MoveSplit) core.Set[core.HexKey] {
	out := core.NewSet[core.HexKey]()
	if !rules.IsOccupiedBy(v.Board, origin, v.PlayerID) {
		return out
	}
	req := moveRequirement(v, origin, requiresBridge, split)
	for _, n := range rules.Neighbors(v, origin) {
		if rules.CanMoveBetween(v, origin, n, req) {
			out.Add(n)
		}
	}
	return out
}

// StackOrigins returns the local-occupied hexes with at least one legal destination
func StackOrigins(v rules.View, requiresBridge bool) core.Set[core.HexKey] {
	out := core.NewSet[core.HexKey]()
	for _, key := range rules.OccupiedHexes(v.Board, v.PlayerID) {
		if StackDestinations(v, key, requiresBridge, rules.MoveSplit{}).Len() > 0 {
			out.Add(key)
		}
	}
	return out
}

func stackCandidates(v rules.View, spec StackSpec, p Pending) Candidates {
	start := StackOrigins(v, spec.RequiresBridge)
	if p.Anchor == "" {
		return Candidates{StartHexes: start, CandidateHexes: start.Clone(), CandidateEdges: core.NewSet[core.EdgeKey]()}
	}
	if !rules.IsOccupiedBy(v.Board, p.Anchor, v.PlayerID) {
		return Empty()
	}
	return Candidates{
		StartHexes:     start,
		CandidateHexes: StackDestinations(v, p.Anchor, spec.RequiresBridge, p.Split),
		CandidateEdges: core.NewSet[core.EdgeKey](),
	}
}

// blocksEntry reports whether a path step after the first may not enter hex.
// The same test stops a path from continuing out of hex.
func blocksEntry(v rules.View, spec PathSpec, hex core.HexKey) bool {
	if rules.HasEnemyUnits(v.Board, hex, v.PlayerID) {
		return true
	}
	return spec.StopOnOccupied && rules.IsOccupied(v.Board, hex)
}

// PathExtensions returns the hexes that legally extend path by one step
func PathExtensions(v rules.View, spec PathSpec, path []core.HexKey, split rules.MoveSplit) core.Set[core.HexKey] {
	out := core.NewSet[core.HexKey]()
	if len(path) == 0 || spec.MaxDistance < 1 {
		return out
	}
	steps := len(path) - 1
	if steps >= spec.MaxDistance {
		return out
	}
	last := path[len(path)-1]
	if steps >= 1 && blocksEntry(v, spec, last) {
		return out
	}

	visited := core.NewSet(path...)
	req := moveRequirement(v, path[0], spec.RequiresBridge, split)
	for _, n := range rules.Neighbors(v, last) {
		if visited.Has(n) || !rules.CanMoveBetween(v, last, n, req) {
			continue
		}
		if steps+1 >= 2 && blocksEntry(v, spec, n) {
			continue
		}
		out.Add(n)
	}
	return out
}

// ValidPath checks that path starts on a local stack and every step is legal
func ValidPath(v rules.View, spec PathSpec, path []core.HexKey, split rules.MoveSplit) bool {
	if len(path) == 0 || !rules.IsOccupiedBy(v.Board, path[0], v.PlayerID) {
		return false
	}
	for i := 1; i < len(path); i++ {
		if !PathExtensions(v, spec, path[:i], split).Has(path[i]) {
			return false
		}
	}
	return true
}

func pathCandidates(v rules.View, spec PathSpec, p Pending) Candidates {
	if spec.MaxDistance < 1 {
		return Empty()
	}
	start := StackOrigins(v, spec.RequiresBridge)
	if len(p.Path) == 0 {
		return Candidates{StartHexes: start, CandidateHexes: start.Clone(), CandidateEdges: core.NewSet[core.EdgeKey]()}
	}
	if !ValidPath(v, spec, p.Path, p.Split) {
		return Empty()
	}
	return Candidates{
		StartHexes:     start,
		CandidateHexes: PathExtensions(v, spec, p.Path, p.Split),
		CandidateEdges: core.NewSet[core.EdgeKey](),
	}
}

func multiPathCandidates(v rules.View, spec MultiPathSpec, p Pending) Candidates {
	return pathCandidates(v, spec.PathSpec, p)
}
