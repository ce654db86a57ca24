package targeting

import (
	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
	"github.com/mitchelldurbincs/bridgefront/internal/game/rules"
)

func hexCandidates(v rules.View, spec HexSpec) Candidates {
	hexes := rules.MatchingHexes(v, spec.HexFilter)
	return Candidates{StartHexes: hexes, CandidateHexes: hexes.Clone(), CandidateEdges: core.NewSet[core.EdgeKey]()}
}

func hexPairCandidates(v rules.View, spec HexPairSpec, p Pending) Candidates {
	hexes := rules.MatchingHexes(v, spec.HexFilter)
	if p.Anchor == "" {
		return Candidates{StartHexes: hexes, CandidateHexes: hexes.Clone(), CandidateEdges: core.NewSet[core.EdgeKey]()}
	}
	if !hexes.Has(p.Anchor) {
		return Empty()
	}
	second := hexes.Clone()
	if !spec.AllowSame {
		delete(second, p.Anchor)
	}
	return Candidates{StartHexes: hexes, CandidateHexes: second, CandidateEdges: core.NewSet[core.EdgeKey]()}
}

// ChoiceOptionHexes returns the hexes one choice option accepts
func ChoiceOptionHexes(v rules.View, opt ChoiceOption) core.Set[core.HexKey] {
	switch opt.Kind {
	case ChoiceCapital:
		if capital, ok := v.Board.Capital(v.PlayerID); ok {
			return core.NewSet(capital)
		}
	case ChoiceOccupiedHex:
		return core.NewSet(rules.OccupiedHexes(v.Board, v.PlayerID)...)
	}
	return core.NewSet[core.HexKey]()
}

// ResolveChoice returns the first option, in declaration order, accepting hex
func ResolveChoice(v rules.View, spec ChoiceSpec, hex core.HexKey) (ChoiceOption, bool) {
	for _, opt := range spec.Options {
		if ChoiceOptionHexes(v, opt).Has(hex) {
			return opt, true
		}
	}
	return ChoiceOption{}, false
}

func choiceCandidates(v rules.View, spec ChoiceSpec) Candidates {
	hexes := core.NewSet[core.HexKey]()
	for _, opt := range spec.Options {
		hexes = hexes.Union(ChoiceOptionHexes(v, opt))
	}
	return Candidates{StartHexes: hexes, CandidateHexes: hexes.Clone(), CandidateEdges: core.NewSet[core.EdgeKey]()}
}
