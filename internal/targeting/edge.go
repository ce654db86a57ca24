package targeting

import (
	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
	"github.com/mitchelldurbincs/bridgefront/internal/game/rules"
)

// EligibleEdges returns every physical edge between on-board hexes that passes
// the bridge and occupied-endpoint requirements of spec
func EligibleEdges(v rules.View, spec EdgeSpec) core.Set[core.EdgeKey] {
	edges := core.NewSet[core.EdgeKey]()
	seen := core.NewSet[core.EdgeKey]()
	for _, key := range v.Board.HexKeys() {
		c, err := core.ParseHexKey(key)
		if err != nil {
			continue
		}
		for _, n := range c.Neighbors() {
			other := n.Key()
			if _, ok := v.Board.Hex(other); !ok {
				continue
			}
			edge := core.NewEdgeKey(key, other)
			if seen.Has(edge) {
				continue
			}
			seen.Add(edge)
			if edgeEligible(v, spec, key, other) {
				edges.Add(edge)
			}
		}
	}
	return edges
}

func edgeEligible(v rules.View, spec EdgeSpec, a, b core.HexKey) bool {
	bridged := v.Board.HasBridge(a, b)
	switch spec.bridge() {
	case BridgePresent:
		if !bridged {
			return false
		}
	case BridgeAbsent:
		if bridged {
			return false
		}
	}
	if spec.Anywhere {
		return true
	}
	return rules.IsOccupiedBy(v.Board, a, v.PlayerID) || rules.IsOccupiedBy(v.Board, b, v.PlayerID)
}

func edgeEndpoints(edges core.Set[core.EdgeKey]) core.Set[core.HexKey] {
	out := core.NewSet[core.HexKey]()
	for edge := range edges {
		a, b, err := edge.Endpoints()
		if err != nil {
			continue
		}
		out.Add(a)
		out.Add(b)
	}
	return out
}

// edgesFrom narrows edges to those touching anchor and lists their far ends
func edgesFrom(edges core.Set[core.EdgeKey], anchor core.HexKey) (core.Set[core.HexKey], core.Set[core.EdgeKey]) {
	hexes := core.NewSet[core.HexKey]()
	touching := core.NewSet[core.EdgeKey]()
	for edge := range edges {
		if other, ok := edge.Other(anchor); ok {
			hexes.Add(other)
			touching.Add(edge)
		}
	}
	return hexes, touching
}

func edgeCandidates(v rules.View, spec EdgeSpec, p Pending) Candidates {
	edges := EligibleEdges(v, spec)
	start := edgeEndpoints(edges)
	if p.Anchor == "" {
		return Candidates{StartHexes: start, CandidateHexes: start.Clone(), CandidateEdges: edges}
	}
	if !start.Has(p.Anchor) {
		return Empty()
	}
	hexes, touching := edgesFrom(edges, p.Anchor)
	return Candidates{StartHexes: start, CandidateHexes: hexes, CandidateEdges: touching}
}

// multiEdgeCandidates keeps already picked edges selectable so they can be toggled off
func multiEdgeCandidates(v rules.View, spec MultiEdgeSpec, p Pending) Candidates {
	edges := EligibleEdges(v, spec.EdgeSpec)
	for _, e := range p.Edges {
		edges.Add(e)
	}
	start := edgeEndpoints(edges)
	if p.Anchor == "" {
		return Candidates{StartHexes: start, CandidateHexes: start.Clone(), CandidateEdges: edges}
	}
	if !start.Has(p.Anchor) {
		return Empty()
	}
	hexes, touching := edgesFrom(edges, p.Anchor)
	return Candidates{StartHexes: start, CandidateHexes: hexes, CandidateEdges: touching}
}
