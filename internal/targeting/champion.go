package targeting

import (
	"sort"

	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
	"github.com/mitchelldurbincs/bridgefront/internal/game/rules"
)

func championOwnerMatches(v rules.View, u core.Unit, owner rules.OwnerFilter) bool {
	switch owner {
	case rules.OwnerSelf:
		return u.Owner == v.PlayerID
	case rules.OwnerEnemy:
		return u.Owner != v.PlayerID
	default:
		return true
	}
}

// EligibleChampions returns the champions on the board passing spec, sorted by unit id
func EligibleChampions(v rules.View, spec ChampionSpec) []core.Unit {
	if v.Board == nil || v.PlayerID == "" {
		return nil
	}
	var out []core.Unit
	for _, u := range v.Board.Units {
		if !u.IsChampion() || !championOwnerMatches(v, u, spec.Owner) {
			continue
		}
		h, ok := v.Board.Hex(u.Hex)
		if !ok || !h.Holds(u.Owner, u.ID) {
			continue
		}
		if !rules.WithinDistance(v, u.Hex, spec.DistanceBounds) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ChampionsOn returns the eligible champions on one hex in cycling order
func ChampionsOn(v rules.View, spec ChampionSpec, hex core.HexKey) []core.Unit {
	var out []core.Unit
	for _, u := range EligibleChampions(v, spec) {
		if u.Hex == hex {
			out = append(out, u)
		}
	}
	return out
}

// NextChampion cycles through the eligible champions on hex in sorted-id order.
// current is the champion picked last; when it is not on hex the cycle restarts.
func NextChampion(v rules.View, spec ChampionSpec, hex core.HexKey, current string) (core.Unit, bool) {
	champions := ChampionsOn(v, spec, hex)
	if len(champions) == 0 {
		return core.Unit{}, false
	}
	for i, u := range champions {
		if u.ID == current {
			return champions[(i+1)%len(champions)], true
		}
	}
	return champions[0], true
}

func championCandidates(v rules.View, spec ChampionSpec) Candidates {
	hexes := core.NewSet[core.HexKey]()
	for _, u := range EligibleChampions(v, spec) {
		hexes.Add(u.Hex)
	}
	return Candidates{StartHexes: hexes, CandidateHexes: hexes.Clone(), CandidateEdges: core.NewSet[core.EdgeKey]()}
}
