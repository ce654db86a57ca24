package core

import (
	"fmt"
	"strconv"
	"strings"
)

// HexKey is the canonical "q,r" string encoding of an axial coordinate
type HexKey string

// Coordinate represents an axial (q, r) position on the hex grid
type Coordinate struct {
	Q, R int
}

// NewCoordinate creates a new coordinate with the given q and r values
func NewCoordinate(q, r int) Coordinate {
	return Coordinate{Q: q, R: r}
}

// ParseHexKey decodes a "q,r" key into a coordinate
func ParseHexKey(key HexKey) (Coordinate, error) {
	qs, rs, ok := strings.Cut(string(key), ",")
	if !ok {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrMalformedHexKey, key)
	}
	q, err := strconv.Atoi(qs)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrMalformedHexKey, key)
	}
	r, err := strconv.Atoi(rs)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrMalformedHexKey, key)
	}
	return Coordinate{Q: q, R: r}, nil
}

// Key returns the canonical hex key of the coordinate
func (c Coordinate) Key() HexKey {
	return HexKey(strconv.Itoa(c.Q) + "," + strconv.Itoa(c.R))
}

// S returns the implicit third cube coordinate
func (c Coordinate) S() int {
	return -c.Q - c.R
}

// DistanceTo calculates the hex-grid distance to another coordinate
func (c Coordinate) DistanceTo(other Coordinate) int {
	dq := abs(c.Q - other.Q)
	dr := abs(c.R - other.R)
	ds := abs(c.S() - other.S())
	return (dq + dr + ds) / 2
}

// IsAdjacentTo checks if this coordinate shares an edge with another
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	return c.DistanceTo(other) == 1
}

// Neighbors returns the six physical neighbors in direction order
func (c Coordinate) Neighbors() []Coordinate {
	neighbors := make([]Coordinate, 0, len(directionOrder))
	for _, d := range directionOrder {
		neighbors = append(neighbors, c.Move(d))
	}
	return neighbors
}

// Add returns a new coordinate that is the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{Q: c.Q + other.Q, R: c.R + other.R}
}

// Sub returns a new coordinate that is the difference between this coordinate and another
func (c Coordinate) Sub(other Coordinate) Coordinate {
	return Coordinate{Q: c.Q - other.Q, R: c.R - other.R}
}

// Equal checks if two coordinates are equal
func (c Coordinate) Equal(other Coordinate) bool {
	return c.Q == other.Q && c.R == other.R
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Q, c.R)
}

// Direction represents one of the six hex directions
type Direction int

const (
	East Direction = iota
	NorthEast
	NorthWest
	West
	SouthWest
	SouthEast
)

var directionOrder = []Direction{East, NorthEast, NorthWest, West, SouthWest, SouthEast}

// DirectionVectors provides axial offsets for each direction
var DirectionVectors = map[Direction]Coordinate{
	East:      {Q: 1, R: 0},
	NorthEast: {Q: 1, R: -1},
	NorthWest: {Q: 0, R: -1},
	West:      {Q: -1, R: 0},
	SouthWest: {Q: -1, R: 1},
	SouthEast: {Q: 0, R: 1},
}

// Move returns a new coordinate moved one step in the given direction
func (c Coordinate) Move(direction Direction) Coordinate {
	if offset, ok := DirectionVectors[direction]; ok {
		return c.Add(offset)
	}
	return c
}

// DirectionTo returns the direction from this coordinate to an adjacent coordinate
// Returns -1 if the coordinates are not adjacent
func (c Coordinate) DirectionTo(other Coordinate) Direction {
	delta := other.Sub(c)
	for _, d := range directionOrder {
		if DirectionVectors[d].Equal(delta) {
			return d
		}
	}
	return -1
}

// HexesWithinRadius returns every coordinate at most radius steps from center
func HexesWithinRadius(center Coordinate, radius int) []Coordinate {
	if radius < 0 {
		return nil
	}
	var out []Coordinate
	for q := -radius; q <= radius; q++ {
		rMin := max(-radius, -q-radius)
		rMax := min(radius, -q+radius)
		for r := rMin; r <= rMax; r++ {
			out = append(out, center.Add(Coordinate{Q: q, R: r}))
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
