package core

import (
	"fmt"
	"strings"
)

// EdgeKey is the order-independent encoding of the two hexes an edge connects.
// The endpoints are sorted so that "a|b" and "b|a" collapse to one key.
type EdgeKey string

const edgeSeparator = "|"

// NewEdgeKey builds the canonical key for the edge between a and b
func NewEdgeKey(a, b HexKey) EdgeKey {
	if b < a {
		a, b = b, a
	}
	return EdgeKey(string(a) + edgeSeparator + string(b))
}

// ParseEdgeKey validates an edge key and returns it in canonical form
func ParseEdgeKey(raw string) (EdgeKey, error) {
	as, bs, ok := strings.Cut(raw, edgeSeparator)
	if !ok || as == "" || bs == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedEdgeKey, raw)
	}
	a, b := HexKey(as), HexKey(bs)
	if _, err := ParseHexKey(a); err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedEdgeKey, raw)
	}
	if _, err := ParseHexKey(b); err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedEdgeKey, raw)
	}
	if a == b {
		return "", fmt.Errorf("%w: %q", ErrMalformedEdgeKey, raw)
	}
	return NewEdgeKey(a, b), nil
}

// Endpoints returns the two hexes of the edge in canonical order
func (e EdgeKey) Endpoints() (HexKey, HexKey, error) {
	canonical, err := ParseEdgeKey(string(e))
	if err != nil {
		return "", "", err
	}
	a, b, _ := strings.Cut(string(canonical), edgeSeparator)
	return HexKey(a), HexKey(b), nil
}

// Touches reports whether hex is one of the edge endpoints
func (e EdgeKey) Touches(hex HexKey) bool {
	_, ok := e.Other(hex)
	return ok
}

// Other returns the endpoint opposite to hex
func (e EdgeKey) Other(hex HexKey) (HexKey, bool) {
	a, b, err := e.Endpoints()
	if err != nil {
		return "", false
	}
	switch hex {
	case a:
		return b, true
	case b:
		return a, true
	}
	return "", false
}
