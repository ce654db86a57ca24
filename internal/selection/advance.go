package selection

import (
	"slices"

	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
	"github.com/mitchelldurbincs/bridgefront/internal/game/rules"
	"github.com/mitchelldurbincs/bridgefront/internal/targeting"
)

// The pick functions below mutate a State produced by clone(); they are only
// called from the exported transitions, which never mutate their receiver.

// pickEdgeHex handles the two-click edge pick: anchor hex, then an adjacent hex.
// multi is non-nil for multiEdge, where the completed edge toggles membership.
func (s *State) pickEdgeHex(v rules.View, multi *targeting.MultiEdgeSpec, hex core.HexKey) {
	c := targeting.Compute(v, s.spec, targeting.Pending{Anchor: s.pending.Anchor, Edges: s.pending.Edges})
	switch {
	case s.pending.Anchor == "":
		if c.StartHexes.Has(hex) {
			s.pending.Anchor = hex
			if multi == nil {
				s.pending.Edges = nil
			}
		}
	case hex == s.pending.Anchor:
		s.pending.Anchor = ""
	case c.CandidateHexes.Has(hex):
		edge := core.NewEdgeKey(s.pending.Anchor, hex)
		s.pending.Anchor = ""
		if multi != nil {
			s.toggleEdge(*multi, edge)
		} else {
			s.pending.Edges = []core.EdgeKey{edge}
		}
	case c.StartHexes.Has(hex):
		s.pending.Anchor = hex
		if multi == nil {
			s.pending.Edges = nil
		}
	}
}

// toggleEdge adds or removes edge; when the cap is exceeded the oldest edge goes first
func (s *State) toggleEdge(spec targeting.MultiEdgeSpec, edge core.EdgeKey) {
	if i := slices.Index(s.pending.Edges, edge); i >= 0 {
		s.pending.Edges = slices.Delete(s.pending.Edges, i, i+1)
		return
	}
	s.pending.Edges = append(s.pending.Edges, edge)
	if limit := spec.Limit(); limit > 0 && len(s.pending.Edges) > limit {
		s.pending.Edges = s.pending.Edges[len(s.pending.Edges)-limit:]
	}
}

// pickStackHex picks an origin, then a destination. The completed move is kept
// as a two-hex path; clicking another destination replaces it.
func (s *State) pickStackHex(v rules.View, spec targeting.StackSpec, hex core.HexKey) {
	origin := s.pending.Anchor
	if origin != "" {
		if hex == origin {
			s.pending.Anchor = ""
			s.pending.Path = nil
			return
		}
		if targeting.StackDestinations(v, origin, spec.RequiresBridge, s.pending.Split).Has(hex) {
			s.pending.Path = []core.HexKey{origin, hex}
			return
		}
	}
	if targeting.StackOrigins(v, spec.RequiresBridge).Has(hex) {
		s.pending.Anchor = hex
		s.pending.Path = nil
	}
}

// advancePath applies one click to path. It returns the new path and whether
// the click was used; unused clicks leave path unchanged.
func (s *State) advancePath(v rules.View, spec targeting.PathSpec, path []core.HexKey, hex core.HexKey) ([]core.HexKey, bool) {
	if len(path) == 0 {
		return path, false
	}
	if i := slices.Index(path, hex); i >= 0 {
		if !s.opts.PathBacktrack {
			return path, true
		}
		if i == 0 && len(path) == 1 {
			return nil, true
		}
		return slices.Clone(path[:i+1]), true
	}
	if targeting.PathExtensions(v, spec, path, s.pending.Split).Has(hex) {
		return append(slices.Clone(path), hex), true
	}
	return path, false
}

func (s *State) pickPathHex(v rules.View, spec targeting.PathSpec, hex core.HexKey) {
	if path, used := s.advancePath(v, spec, s.pending.Path, hex); used {
		s.pending.Path = path
		return
	}
	if targeting.StackOrigins(v, spec.RequiresBridge).Has(hex) {
		s.pending.Path = []core.HexKey{hex}
	}
}

// pickMultiPathHex extends the active path, or starts a new one. A completed
// active path is committed when a new one starts; an incomplete one is replaced.
// Committed paths are only evicted on commit, so shortening the active path
// never loses them.
func (s *State) pickMultiPathHex(v rules.View, spec targeting.MultiPathSpec, hex core.HexKey) {
	if path, used := s.advancePath(v, spec.PathSpec, s.pending.Path, hex); used {
		s.pending.Path = path
		return
	}
	if !targeting.StackOrigins(v, spec.RequiresBridge).Has(hex) {
		return
	}
	if len(s.pending.Path) >= 2 {
		s.pending.Paths = append(s.pending.Paths, s.pending.Path)
		s.pending.Paths = capPaths(spec, s.pending.Paths, 0)
	}
	s.pending.Path = []core.HexKey{hex}
}

// capPaths keeps the newest committed paths that fit the cap alongside extra
// active ones. It never modifies paths.
func capPaths(spec targeting.MultiPathSpec, paths [][]core.HexKey, extra int) [][]core.HexKey {
	limit := spec.Limit()
	if limit <= 0 {
		return paths
	}
	over := min(len(paths)+extra-limit, len(paths))
	if over <= 0 {
		return paths
	}
	return paths[over:]
}

func (s *State) pickSingleHex(v rules.View, spec targeting.HexSpec, hex core.HexKey) {
	if rules.MatchingHexes(v, spec.HexFilter).Has(hex) {
		s.pending.Anchor = hex
	}
}

// pickPairHex picks the first hex, then the second. Re-picking the first hex
// when the pair must be distinct cancels the pick.
func (s *State) pickPairHex(v rules.View, spec targeting.HexPairSpec, hex core.HexKey) {
	if s.pending.Anchor != "" && len(s.pending.Path) < 2 {
		if hex == s.pending.Anchor && !spec.AllowSame {
			s.pending.Anchor = ""
			return
		}
		if targeting.Compute(v, spec, targeting.Pending{Anchor: s.pending.Anchor}).CandidateHexes.Has(hex) {
			s.pending.Path = []core.HexKey{s.pending.Anchor, hex}
		}
		return
	}
	if rules.MatchingHexes(v, spec.HexFilter).Has(hex) {
		s.pending.Anchor = hex
		s.pending.Path = nil
	}
}

func (s *State) pickChampionHex(v rules.View, spec targeting.ChampionSpec, hex core.HexKey) {
	current := ""
	if s.pending.Anchor == hex {
		current = s.unitID
	}
	if u, ok := targeting.NextChampion(v, spec, hex, current); ok {
		s.pending.Anchor = hex
		s.unitID = u.ID
	}
}

func (s *State) pickChoiceHex(v rules.View, spec targeting.ChoiceSpec, hex core.HexKey) {
	if opt, ok := targeting.ResolveChoice(v, spec, hex); ok {
		s.pending.Anchor = hex
		s.choice = opt.Tag
	}
}

// derive builds the payload implied by the pending fields
func (s State) derive() targeting.Payload {
	var p targeting.Payload
	switch spec := s.spec.(type) {
	case targeting.EdgeSpec:
		if s.pending.Anchor == "" && len(s.pending.Edges) == 1 {
			p = targeting.EdgePayload{EdgeKey: s.pending.Edges[0]}
		}
	case targeting.MultiEdgeSpec:
		p, _ = targeting.CompleteMultiEdge(spec, s.pending.Edges)
	case targeting.StackSpec:
		if len(s.pending.Path) == 2 {
			p = targeting.StackPayload{
				From:             s.pending.Path[0],
				To:               s.pending.Path[1],
				ForceCount:       cloneInt(s.pending.Split.ForceCount),
				IncludeChampions: cloneBool(s.pending.Split.IncludeChampions),
			}
		}
	case targeting.PathSpec:
		p, _ = targeting.CompletePath(s.pending.Path)
	case targeting.MultiPathSpec:
		committed := s.pending.Paths
		if len(s.pending.Path) >= 2 {
			committed = capPaths(spec, committed, 1)
		}
		p, _ = targeting.CompleteMultiPath(spec, committed, s.pending.Path)
	case targeting.HexSpec:
		if s.pending.Anchor != "" {
			p = targeting.HexPayload{HexKey: s.pending.Anchor}
		}
	case targeting.HexPairSpec:
		if len(s.pending.Path) == 2 {
			p = targeting.HexPairPayload{HexKeys: [2]core.HexKey{s.pending.Path[0], s.pending.Path[1]}}
		}
	case targeting.ChampionSpec:
		if s.unitID != "" {
			p = targeting.ChampionPayload{UnitID: s.unitID}
		}
	case targeting.ChoiceSpec:
		p = s.choicePayload(spec)
	case targeting.PlayerSpec:
		if s.playerID != "" {
			p = targeting.PlayerPayload{PlayerID: s.playerID}
		}
	}
	p, _ = targeting.Finalize(p)
	return p
}

// choicePayload carries the hex only for options that select a hex of their own
func (s State) choicePayload(spec targeting.ChoiceSpec) targeting.Payload {
	if s.choice == "" {
		return nil
	}
	for _, opt := range spec.Options {
		if opt.Tag != s.choice {
			continue
		}
		if opt.Kind == targeting.ChoiceCapital {
			return targeting.ChoicePayload{Choice: opt.Tag}
		}
		return targeting.ChoicePayload{Choice: opt.Tag, HexKey: s.pending.Anchor}
	}
	return nil
}
