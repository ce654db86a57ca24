package targeting

import (
	"slices"

	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
	"github.com/mitchelldurbincs/bridgefront/internal/game/rules"
)

// Candidates is the highlight set for one recomputation
type Candidates struct {
	StartHexes     core.Set[core.HexKey]
	CandidateHexes core.Set[core.HexKey]
	CandidateEdges core.Set[core.EdgeKey]
}

// Empty returns the "nothing selectable" result
func Empty() Candidates {
	return Candidates{
		StartHexes:     core.NewSet[core.HexKey](),
		CandidateHexes: core.NewSet[core.HexKey](),
		CandidateEdges: core.NewSet[core.EdgeKey](),
	}
}

func (c Candidates) IsEmpty() bool {
	return c.StartHexes.Len() == 0 && c.CandidateHexes.Len() == 0 && c.CandidateEdges.Len() == 0
}

// Pending is the partial selection a rule function continues from.
// Which fields matter depends on the kind being picked.
type Pending struct {
	// Anchor is the edge anchor, the stack origin, or the first hex of a pair
	Anchor core.HexKey
	// Path is the path being extended (path and multiPath)
	Path []core.HexKey
	// Paths are completed multiPath paths, oldest first
	Paths [][]core.HexKey
	// Edges are accumulated multiEdge picks, oldest first
	Edges []core.EdgeKey
	// Split are the stack options chosen for stack and path moves
	Split rules.MoveSplit
}

// Clone deep-copies the slices so transitions never alias
func (p Pending) Clone() Pending {
	out := p
	out.Path = slices.Clone(p.Path)
	out.Edges = slices.Clone(p.Edges)
	if p.Paths != nil {
		out.Paths = make([][]core.HexKey, len(p.Paths))
		for i, path := range p.Paths {
			out.Paths[i] = slices.Clone(path)
		}
	}
	return out
}

func (p Pending) IsZero() bool {
	return p.Anchor == "" && len(p.Path) == 0 && len(p.Paths) == 0 && len(p.Edges) == 0 &&
		p.Split.ForceCount == nil && p.Split.IncludeChampions == nil
}

// Compute returns the selectable elements for spec given the partial selection.
// It is a pure function of its inputs; spectators and inconsistent input get Empty.
func Compute(v rules.View, spec Spec, p Pending) Candidates {
	if v.Board == nil || v.PlayerID == "" || spec == nil {
		return Empty()
	}
	switch s := spec.(type) {
	case EdgeSpec:
		return edgeCandidates(v, s, p)
	case MultiEdgeSpec:
		return multiEdgeCandidates(v, s, p)
	case StackSpec:
		return stackCandidates(v, s, p)
	case PathSpec:
		return pathCandidates(v, s, p)
	case MultiPathSpec:
		return multiPathCandidates(v, s, p)
	case HexSpec:
		return hexCandidates(v, s)
	case HexPairSpec:
		return hexPairCandidates(v, s, p)
	case ChampionSpec:
		return championCandidates(v, s)
	case ChoiceSpec:
		return choiceCandidates(v, s)
	default:
		// player, none and unknown kinds have no board interaction
		return Empty()
	}
}
