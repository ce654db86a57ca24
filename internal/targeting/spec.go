package targeting

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/bridgefront/internal/game/rules"
)

// Kind tags a target requirement
type Kind string

const (
	KindEdge      Kind = "edge"
	KindMultiEdge Kind = "multiEdge"
	KindStack     Kind = "stack"
	KindPath      Kind = "path"
	KindMultiPath Kind = "multiPath"
	KindHex       Kind = "hex"
	KindHexPair   Kind = "hexPair"
	KindChampion  Kind = "champion"
	KindChoice    Kind = "choice"
	KindPlayer    Kind = "player"
	KindNone      Kind = "none"
)

var ErrUnknownKind = errors.New("unknown target kind")

// Spec is the declarative target requirement of a card or basic action.
// Each variant carries only the fields meaningful to its kind.
type Spec interface {
	Kind() Kind
	isSpec()
}

// BridgeRequirement filters edges by whether a bridge already spans them.
type BridgeRequirement string

const (
	// BridgeAbsent selects edges without a bridge (building)
	BridgeAbsent BridgeRequirement = "absent"
	// BridgePresent selects bridged edges (destroying, fortifying)
	BridgePresent BridgeRequirement = "present"
	BridgeAny     BridgeRequirement = "any"
)

// EdgeSpec picks one edge between two adjacent hexes.
// Unless Anywhere is set, one endpoint must hold a local unit.
type EdgeSpec struct {
	Anywhere bool              `json:"anywhere,omitempty"`
	Bridge   BridgeRequirement `json:"bridge,omitempty"`
}

// MultiEdgeSpec accumulates between MinEdges and MaxEdges edges.
// A MaxEdges of zero leaves the count unbounded.
type MultiEdgeSpec struct {
	EdgeSpec
	MinEdges int `json:"minEdges,omitempty"`
	MaxEdges int `json:"maxEdges,omitempty"`
}

// StackSpec moves a local stack one step.
type StackSpec struct {
	RequiresBridge bool `json:"requiresBridge,omitempty"`
}

// PathSpec moves a local stack along up to MaxDistance steps.
type PathSpec struct {
	MaxDistance    int  `json:"maxDistance"`
	RequiresBridge bool `json:"requiresBridge,omitempty"`
	StopOnOccupied bool `json:"stopOnOccupied,omitempty"`
}

// MultiPathSpec collects between MinPaths and MaxPaths independent paths.
type MultiPathSpec struct {
	PathSpec
	MinPaths int `json:"minPaths,omitempty"`
	MaxPaths int `json:"maxPaths,omitempty"`
}

type HexSpec struct {
	rules.HexFilter
}

type HexPairSpec struct {
	rules.HexFilter
	AllowSame bool `json:"allowSame,omitempty"`
}

type ChampionSpec struct {
	Owner rules.OwnerFilter `json:"owner,omitempty"`
	rules.DistanceBounds
}

// ChoiceKind names one way a choice option selects hexes.
type ChoiceKind string

const (
	ChoiceCapital     ChoiceKind = "capital"
	ChoiceOccupiedHex ChoiceKind = "occupiedHex"
)

type ChoiceOption struct {
	Tag  string     `json:"tag"`
	Kind ChoiceKind `json:"kind"`
}

// ChoiceSpec lets the player pick between several hex-based options.
// Options are tried in declaration order when a hex matches more than one.
type ChoiceSpec struct {
	Options []ChoiceOption `json:"options"`
}

type PlayerSpec struct {
	Owner rules.OwnerFilter `json:"owner,omitempty"`
}

type NoneSpec struct{}

// UnknownSpec stands in for a kind this client does not understand; it never
// yields candidates and never completes.
type UnknownSpec struct {
	Raw Kind
}

func (EdgeSpec) Kind() Kind      { return KindEdge }
func (MultiEdgeSpec) Kind() Kind { return KindMultiEdge }
func (StackSpec) Kind() Kind     { return KindStack }
func (PathSpec) Kind() Kind      { return KindPath }
func (MultiPathSpec) Kind() Kind { return KindMultiPath }
func (HexSpec) Kind() Kind       { return KindHex }
func (HexPairSpec) Kind() Kind   { return KindHexPair }
func (ChampionSpec) Kind() Kind  { return KindChampion }
func (ChoiceSpec) Kind() Kind    { return KindChoice }
func (PlayerSpec) Kind() Kind    { return KindPlayer }
func (NoneSpec) Kind() Kind      { return KindNone }
func (s UnknownSpec) Kind() Kind { return s.Raw }

func (EdgeSpec) isSpec()      {}
func (MultiEdgeSpec) isSpec() {}
func (StackSpec) isSpec()     {}
func (PathSpec) isSpec()      {}
func (MultiPathSpec) isSpec() {}
func (HexSpec) isSpec()       {}
func (HexPairSpec) isSpec()   {}
func (ChampionSpec) isSpec()  {}
func (ChoiceSpec) isSpec()    {}
func (PlayerSpec) isSpec()    {}
func (NoneSpec) isSpec()      {}
func (UnknownSpec) isSpec()   {}

func (s EdgeSpec) bridge() BridgeRequirement {
	if s.Bridge == "" {
		return BridgeAbsent
	}
	return s.Bridge
}

// bounds returns the effective [min, max] of a cardinality pair; max 0 means unbounded
func bounds(minCount, maxCount int) (int, int) {
	if minCount < 1 {
		minCount = 1
	}
	if maxCount > 0 && maxCount < minCount {
		maxCount = minCount
	}
	return minCount, maxCount
}

// DecodeSpec parses a {"kind": ..., ...} document into its variant
func DecodeSpec(data []byte) (Spec, error) {
	var head struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode target spec: %w", err)
	}

	var spec Spec
	var err error
	switch head.Kind {
	case KindEdge:
		spec, err = decodeAs[EdgeSpec](data)
	case KindMultiEdge:
		spec, err = decodeAs[MultiEdgeSpec](data)
	case KindStack:
		spec, err = decodeAs[StackSpec](data)
	case KindPath:
		spec, err = decodeAs[PathSpec](data)
	case KindMultiPath:
		spec, err = decodeAs[MultiPathSpec](data)
	case KindHex:
		spec, err = decodeAs[HexSpec](data)
	case KindHexPair:
		spec, err = decodeAs[HexPairSpec](data)
	case KindChampion:
		spec, err = decodeAs[ChampionSpec](data)
	case KindChoice:
		spec, err = decodeAs[ChoiceSpec](data)
	case KindPlayer:
		spec, err = decodeAs[PlayerSpec](data)
	case KindNone, "":
		spec = NoneSpec{}
	default:
		return UnknownSpec{Raw: head.Kind}, fmt.Errorf("%w: %q", ErrUnknownKind, head.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s target spec: %w", head.Kind, err)
	}
	return spec, nil
}

func decodeAs[T Spec](data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}
