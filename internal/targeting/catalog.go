package targeting

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Basic action ids that exist independently of any card
const (
	ActionMove        = "basic.move"
	ActionBuildBridge = "basic.buildBridge"
	ActionMarch       = "basic.march"
)

// Catalog maps card-definition and action ids to their target requirement.
// One catalog is built per session snapshot and passed explicitly to callers.
type Catalog struct {
	specs map[string]Spec
}

// NewCatalog creates a catalog holding the basic actions
func NewCatalog() *Catalog {
	c := &Catalog{specs: make(map[string]Spec)}
	c.Register(ActionMove, StackSpec{RequiresBridge: true})
	c.Register(ActionBuildBridge, EdgeSpec{})
	c.Register(ActionMarch, PathSpec{MaxDistance: 2, RequiresBridge: true})
	return c
}

// Register adds or replaces the spec for id
func (c *Catalog) Register(id string, spec Spec) {
	c.specs[id] = spec
}

// Lookup returns the spec for id
func (c *Catalog) Lookup(id string) (Spec, bool) {
	if c == nil {
		return nil, false
	}
	spec, ok := c.specs[id]
	return spec, ok
}

// IDs returns the registered ids in sorted order
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.specs))
	for id := range c.specs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Catalog) Len() int { return len(c.specs) }

// DecodeCatalog parses {"cardDefId": {"kind": ...}, ...} on top of the basic actions.
// Entries with an unknown kind are kept as UnknownSpec and reported in the error.
func DecodeCatalog(data []byte) (*Catalog, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := NewCatalog()
	var firstErr error
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		spec, err := DecodeSpec(raw[id])
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("card %s: %w", id, err)
			}
			if spec == nil {
				continue
			}
		}
		c.Register(id, spec)
	}
	return c, firstErr
}
