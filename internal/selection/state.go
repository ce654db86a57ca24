package selection

import (
	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
	"github.com/mitchelldurbincs/bridgefront/internal/game/rules"
	"github.com/mitchelldurbincs/bridgefront/internal/targeting"
)

// Options tune how picks advance a selection
type Options struct {
	// PathBacktrack lets a click on a hex already on the pending path truncate the path to it
	PathBacktrack bool
}

func DefaultOptions() Options {
	return Options{PathBacktrack: true}
}

// State is the client-local record of a partially completed target pick.
// It is an immutable value: every transition returns a new State and never
// modifies the receiver, so a State may be kept as history or shared freely.
type State struct {
	opts    Options
	cardID  string
	spec    targeting.Spec
	pending targeting.Pending
	// unitID is the champion picked last (champion kind)
	unitID string
	// choice is the resolved option tag (choice kind)
	choice string
	// playerID is the picked player (player kind)
	playerID string
	payload  targeting.Payload
}

// New returns an idle state with no active kind
func New(opts Options) State {
	return State{opts: opts}
}

// Begin starts a selection for cardID, discarding any pending picks
func (s State) Begin(cardID string, spec targeting.Spec) State {
	return State{opts: s.opts, cardID: cardID, spec: spec}
}

// Cancel clears all pending fields and the payload without changing the active kind
func (s State) Cancel() State {
	return s.Begin(s.cardID, s.spec)
}

// Clear drops the active kind as well
func (s State) Clear() State {
	return New(s.opts)
}

// IsActive reports whether a card or action is being targeted
func (s State) IsActive() bool {
	return s.spec != nil
}

func (s State) CardID() string { return s.cardID }

func (s State) Spec() targeting.Spec { return s.spec }

// Kind returns the active kind, empty when idle
func (s State) Kind() targeting.Kind {
	if s.spec == nil {
		return ""
	}
	return s.spec.Kind()
}

// Pending returns a copy of the partial selection
func (s State) Pending() targeting.Pending {
	return s.pending.Clone()
}

// UnitID returns the champion currently picked
func (s State) UnitID() string { return s.unitID }

// Payload returns the finalized payload, if the selection is complete
func (s State) Payload() (targeting.Payload, bool) {
	return s.payload, s.payload != nil
}

// Ready reports whether the selection can be submitted. The none kind is
// ready as soon as it begins and carries no payload.
func (s State) Ready() bool {
	if _, ok := s.spec.(targeting.NoneSpec); ok {
		return true
	}
	return s.payload != nil
}

// Candidates computes the highlight sets for the current partial selection
func (s State) Candidates(v rules.View) targeting.Candidates {
	if s.spec == nil {
		return targeting.Empty()
	}
	return targeting.Compute(v, s.spec, s.pending)
}

// PickHex advances the selection with a click on hex. Clicks that do not fit
// the active kind leave the pending fields unchanged.
func (s State) PickHex(v rules.View, hex core.HexKey) State {
	if s.spec == nil || v.Board == nil || v.PlayerID == "" {
		return s
	}
	if _, err := core.ParseHexKey(hex); err != nil {
		return s
	}
	next := s.clone()
	switch spec := s.spec.(type) {
	case targeting.EdgeSpec:
		next.pickEdgeHex(v, nil, hex)
	case targeting.MultiEdgeSpec:
		next.pickEdgeHex(v, &spec, hex)
	case targeting.StackSpec:
		next.pickStackHex(v, spec, hex)
	case targeting.PathSpec:
		next.pickPathHex(v, spec, hex)
	case targeting.MultiPathSpec:
		next.pickMultiPathHex(v, spec, hex)
	case targeting.HexSpec:
		next.pickSingleHex(v, spec, hex)
	case targeting.HexPairSpec:
		next.pickPairHex(v, spec, hex)
	case targeting.ChampionSpec:
		next.pickChampionHex(v, spec, hex)
	case targeting.ChoiceSpec:
		next.pickChoiceHex(v, spec, hex)
	default:
		return s
	}
	next.payload = next.derive()
	return next
}

// PickEdge advances an edge or multiEdge selection with a click on an edge
func (s State) PickEdge(v rules.View, edge core.EdgeKey) State {
	if v.Board == nil || v.PlayerID == "" {
		return s
	}
	canonical, err := core.ParseEdgeKey(string(edge))
	if err != nil {
		return s
	}
	next := s.clone()
	switch spec := s.spec.(type) {
	case targeting.EdgeSpec:
		if !targeting.EligibleEdges(v, spec).Has(canonical) {
			return s
		}
		next.pending.Anchor = ""
		next.pending.Edges = []core.EdgeKey{canonical}
	case targeting.MultiEdgeSpec:
		picked := core.NewSet(s.pending.Edges...)
		if !picked.Has(canonical) && !targeting.EligibleEdges(v, spec.EdgeSpec).Has(canonical) {
			return s
		}
		next.pending.Anchor = ""
		next.toggleEdge(spec, canonical)
	default:
		return s
	}
	next.payload = next.derive()
	return next
}

// PickPlayer completes a player selection
func (s State) PickPlayer(v rules.View, playerID string) State {
	spec, ok := s.spec.(targeting.PlayerSpec)
	if !ok {
		return s
	}
	for _, id := range targeting.EligiblePlayers(v, spec) {
		if id == playerID {
			next := s.clone()
			next.playerID = playerID
			next.payload = next.derive()
			return next
		}
	}
	return s
}

// SetStackSplit changes which units of the stack travel. Picks that the new
// split makes illegal are dropped; a negative force count is ignored.
func (s State) SetStackSplit(v rules.View, split rules.MoveSplit) State {
	if split.ForceCount != nil && *split.ForceCount < 0 {
		return s
	}
	next := s.clone()
	next.pending.Split = rules.MoveSplit{
		ForceCount:       cloneInt(split.ForceCount),
		IncludeChampions: cloneBool(split.IncludeChampions),
	}
	switch spec := s.spec.(type) {
	case targeting.StackSpec:
		if len(next.pending.Path) == 2 {
			dests := targeting.StackDestinations(v, next.pending.Anchor, spec.RequiresBridge, next.pending.Split)
			if !dests.Has(next.pending.Path[1]) {
				next.pending.Path = nil
			}
		}
	case targeting.PathSpec:
		next.pending.Path = trimInvalid(v, spec, next.pending.Path, next.pending.Split)
	case targeting.MultiPathSpec:
		next.pending.Path = trimInvalid(v, spec.PathSpec, next.pending.Path, next.pending.Split)
		var kept [][]core.HexKey
		for _, path := range next.pending.Paths {
			if targeting.ValidPath(v, spec.PathSpec, path, next.pending.Split) {
				kept = append(kept, path)
			}
		}
		next.pending.Paths = kept
	default:
		return s
	}
	next.payload = next.derive()
	return next
}

func (s State) clone() State {
	out := s
	out.pending = s.pending.Clone()
	out.pending.Split = rules.MoveSplit{
		ForceCount:       cloneInt(s.pending.Split.ForceCount),
		IncludeChampions: cloneBool(s.pending.Split.IncludeChampions),
	}
	return out
}

// trimInvalid keeps the longest legal prefix of path; a path whose start is no
// longer a local stack is dropped entirely
func trimInvalid(v rules.View, spec targeting.PathSpec, path []core.HexKey, split rules.MoveSplit) []core.HexKey {
	for n := len(path); n > 0; n-- {
		if targeting.ValidPath(v, spec, path[:n], split) {
			return path[:n]
		}
	}
	return nil
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
