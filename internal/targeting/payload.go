package targeting

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
)

var (
	ErrMissingField = errors.New("payload field missing")
	ErrCardinality  = errors.New("payload cardinality out of bounds")
)

// Payload is the finalized target of a completed selection.
// Payloads are validated once, when produced, and sent verbatim afterwards.
type Payload interface {
	Kind() Kind
	Validate() error
	isPayload()
}

type EdgePayload struct {
	EdgeKey core.EdgeKey `json:"edgeKey"`
}

type MultiEdgePayload struct {
	EdgeKeys []core.EdgeKey `json:"edgeKeys"`
}

type StackPayload struct {
	From             core.HexKey `json:"from"`
	To               core.HexKey `json:"to"`
	ForceCount       *int        `json:"forceCount,omitempty"`
	IncludeChampions *bool       `json:"includeChampions,omitempty"`
}

type PathPayload struct {
	Path []core.HexKey `json:"path"`
}

type MultiPathPayload struct {
	Paths [][]core.HexKey `json:"paths"`
}

type HexPayload struct {
	HexKey core.HexKey `json:"hexKey"`
}

type HexPairPayload struct {
	HexKeys [2]core.HexKey `json:"hexKeys"`
}

type ChampionPayload struct {
	UnitID string `json:"unitId"`
}

type ChoicePayload struct {
	Choice string      `json:"choice"`
	HexKey core.HexKey `json:"hexKey,omitempty"`
}

type PlayerPayload struct {
	PlayerID string `json:"playerId"`
}

func (EdgePayload) Kind() Kind      { return KindEdge }
func (MultiEdgePayload) Kind() Kind { return KindMultiEdge }
func (StackPayload) Kind() Kind     { return KindStack }
func (PathPayload) Kind() Kind      { return KindPath }
func (MultiPathPayload) Kind() Kind { return KindMultiPath }
func (HexPayload) Kind() Kind       { return KindHex }
func (HexPairPayload) Kind() Kind   { return KindHexPair }
func (ChampionPayload) Kind() Kind  { return KindChampion }
func (ChoicePayload) Kind() Kind    { return KindChoice }
func (PlayerPayload) Kind() Kind    { return KindPlayer }

func (EdgePayload) isPayload()      {}
func (MultiEdgePayload) isPayload() {}
func (StackPayload) isPayload()     {}
func (PathPayload) isPayload()      {}
func (MultiPathPayload) isPayload() {}
func (HexPayload) isPayload()       {}
func (HexPairPayload) isPayload()   {}
func (ChampionPayload) isPayload()  {}
func (ChoicePayload) isPayload()    {}
func (PlayerPayload) isPayload()    {}

func validHex(field string, key core.HexKey) error {
	if key == "" {
		return fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	if _, err := core.ParseHexKey(key); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

func validEdge(field string, key core.EdgeKey) error {
	if key == "" {
		return fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	if _, err := core.ParseEdgeKey(string(key)); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

func validPathKeys(field string, path []core.HexKey) error {
	if len(path) < 2 {
		return fmt.Errorf("%w: %s needs at least 2 hexes", ErrCardinality, field)
	}
	for i, key := range path {
		if err := validHex(fmt.Sprintf("%s[%d]", field, i), key); err != nil {
			return err
		}
	}
	return nil
}

func (p EdgePayload) Validate() error {
	return validEdge("edgeKey", p.EdgeKey)
}

func (p MultiEdgePayload) Validate() error {
	if len(p.EdgeKeys) == 0 {
		return fmt.Errorf("%w: edgeKeys", ErrMissingField)
	}
	for i, e := range p.EdgeKeys {
		if err := validEdge(fmt.Sprintf("edgeKeys[%d]", i), e); err != nil {
			return err
		}
	}
	return nil
}

func (p StackPayload) Validate() error {
	if err := validHex("from", p.From); err != nil {
		return err
	}
	if err := validHex("to", p.To); err != nil {
		return err
	}
	if p.ForceCount != nil && *p.ForceCount < 0 {
		return fmt.Errorf("%w: forceCount must be non-negative", ErrCardinality)
	}
	return nil
}

func (p PathPayload) Validate() error {
	return validPathKeys("path", p.Path)
}

func (p MultiPathPayload) Validate() error {
	if len(p.Paths) == 0 {
		return fmt.Errorf("%w: paths", ErrMissingField)
	}
	for i, path := range p.Paths {
		if err := validPathKeys(fmt.Sprintf("paths[%d]", i), path); err != nil {
			return err
		}
	}
	return nil
}

func (p HexPayload) Validate() error {
	return validHex("hexKey", p.HexKey)
}

func (p HexPairPayload) Validate() error {
	if err := validHex("hexKeys[0]", p.HexKeys[0]); err != nil {
		return err
	}
	return validHex("hexKeys[1]", p.HexKeys[1])
}

func (p ChampionPayload) Validate() error {
	if p.UnitID == "" {
		return fmt.Errorf("%w: unitId", ErrMissingField)
	}
	return nil
}

func (p ChoicePayload) Validate() error {
	if p.Choice == "" {
		return fmt.Errorf("%w: choice", ErrMissingField)
	}
	if p.HexKey != "" {
		return validHex("hexKey", p.HexKey)
	}
	return nil
}

func (p PlayerPayload) Validate() error {
	if p.PlayerID == "" {
		return fmt.Errorf("%w: playerId", ErrMissingField)
	}
	return nil
}

// Finalize validates a freshly built payload. A payload that fails validation
// is reported as absent so the selection stays incomplete.
func Finalize(p Payload) (Payload, bool) {
	if p == nil || p.Validate() != nil {
		return nil, false
	}
	return p, true
}

// CompleteMultiEdge builds the multiEdge payload when the accumulated count is within bounds
func CompleteMultiEdge(spec MultiEdgeSpec, edges []core.EdgeKey) (Payload, bool) {
	minCount, maxCount := bounds(spec.MinEdges, spec.MaxEdges)
	if len(edges) < minCount || (maxCount > 0 && len(edges) > maxCount) {
		return nil, false
	}
	return Finalize(MultiEdgePayload{EdgeKeys: slices.Clone(edges)})
}

// CompletePath builds the path payload once the path has taken a step
func CompletePath(path []core.HexKey) (Payload, bool) {
	if len(path) < 2 {
		return nil, false
	}
	return Finalize(PathPayload{Path: slices.Clone(path)})
}

// CompleteMultiPath builds the multiPath payload from the committed paths plus
// the active one when it has taken a step
func CompleteMultiPath(spec MultiPathSpec, committed [][]core.HexKey, active []core.HexKey) (Payload, bool) {
	var paths [][]core.HexKey
	for _, p := range committed {
		paths = append(paths, slices.Clone(p))
	}
	if len(active) >= 2 {
		paths = append(paths, slices.Clone(active))
	}
	minCount, maxCount := bounds(spec.MinPaths, spec.MaxPaths)
	if len(paths) < minCount || (maxCount > 0 && len(paths) > maxCount) {
		return nil, false
	}
	return Finalize(MultiPathPayload{Paths: paths})
}

// Limit returns the effective multiEdge cap, 0 meaning unbounded
func (s MultiEdgeSpec) Limit() int {
	_, maxCount := bounds(s.MinEdges, s.MaxEdges)
	return maxCount
}

// Limit returns the effective multiPath cap, 0 meaning unbounded
func (s MultiPathSpec) Limit() int {
	_, maxCount := bounds(s.MinPaths, s.MaxPaths)
	return maxCount
}
