package mapgen

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
)

var ErrNoCapitalSite = errors.New("unable to place capital")

// MapConfig holds configuration for map generation
type MapConfig struct {
	Radius            int
	PlayerCount       int
	SpecialRatio      int // 1 forge or mine per N hexes
	BridgeRatio       int // 1 random bridge per N hexes
	StartForces       int
	ChampionHP        int // 0 places no champions
	MinCapitalSpacing int
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(radius, players int) MapConfig {
	return MapConfig{
		Radius:            radius,
		PlayerCount:       players,
		SpecialRatio:      12,
		BridgeRatio:       6,
		StartForces:       3,
		ChampionHP:        4,
		MinCapitalSpacing: radius,
	}
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
	hexes  []core.Coordinate
}

// NewGenerator creates a new map generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
		hexes:  core.HexesWithinRadius(core.NewCoordinate(0, 0), config.Radius),
	}
}

// PlayerID names the seat of the i-th generated player
func PlayerID(i int) string {
	return fmt.Sprintf("p%d", i+1)
}

// GenerateMap creates a hex board with a center tile, capitals, special
// tiles, bridges, and each player's starting stack on its capital
func (g *Generator) GenerateMap() (*core.Board, error) {
	if g.config.Radius < 1 {
		return nil, fmt.Errorf("radius must be at least 1, got %d", g.config.Radius)
	}
	if g.config.PlayerCount < 1 {
		return nil, fmt.Errorf("player count must be at least 1, got %d", g.config.PlayerCount)
	}

	board := &core.Board{
		Hexes:   make(map[core.HexKey]core.Hex, len(g.hexes)),
		Bridges: map[core.EdgeKey]core.Bridge{},
		Units:   map[string]core.Unit{},
	}
	for _, c := range g.hexes {
		board.Hexes[c.Key()] = core.Hex{Key: c.Key(), Tile: core.TileNormal, Occupants: map[string][]string{}}
	}
	g.setTile(board, core.NewCoordinate(0, 0), core.TileCenter)

	capitals, err := g.placeCapitals(board)
	if err != nil {
		return nil, err
	}
	g.placeSpecials(board)
	g.placeBridges(board, capitals)
	g.placeUnits(board, capitals)
	return board, nil
}

func (g *Generator) setTile(b *core.Board, c core.Coordinate, tile core.TileKind) {
	h := b.Hexes[c.Key()]
	h.Tile = tile
	b.Hexes[c.Key()] = h
}

func (g *Generator) onBoard(b *core.Board, c core.Coordinate) bool {
	_, ok := b.Hexes[c.Key()]
	return ok
}

// placeCapitals picks outer-ring hexes spaced at least MinCapitalSpacing apart
func (g *Generator) placeCapitals(b *core.Board) ([]core.Coordinate, error) {
	origin := core.NewCoordinate(0, 0)
	var ring []core.Coordinate
	for _, c := range g.hexes {
		if c.DistanceTo(origin) == g.config.Radius {
			ring = append(ring, c)
		}
	}

	capitals := make([]core.Coordinate, 0, g.config.PlayerCount)
	for i := 0; i < g.config.PlayerCount; i++ {
		site, ok := g.findCapitalSite(b, ring, capitals)
		if !ok {
			return nil, fmt.Errorf("%w for %s", ErrNoCapitalSite, PlayerID(i))
		}
		g.setTile(b, site, core.TileCapital)
		b.Players = append(b.Players, core.Player{ID: PlayerID(i), Name: fmt.Sprintf("Player %d", i+1), CapitalHex: site.Key()})
		capitals = append(capitals, site)
	}
	return capitals, nil
}

func (g *Generator) findCapitalSite(b *core.Board, ring, existing []core.Coordinate) (core.Coordinate, bool) {
	free := func(c core.Coordinate) bool {
		return b.Hexes[c.Key()].Tile == core.TileNormal
	}
	spaced := func(c core.Coordinate) bool {
		for _, other := range existing {
			if c.DistanceTo(other) < g.config.MinCapitalSpacing {
				return false
			}
		}
		return true
	}

	maxAttempts := len(ring) * 4
	for attempts := 0; attempts < maxAttempts; attempts++ {
		c := ring[g.rng.Intn(len(ring))]
		if free(c) && spaced(c) {
			return c, true
		}
	}

	// Fallback: the free hex farthest from every existing capital
	best, bestDist := core.Coordinate{}, -1
	for _, c := range g.hexes {
		if !free(c) {
			continue
		}
		d := len(g.hexes)
		for _, other := range existing {
			d = min(d, c.DistanceTo(other))
		}
		if d > bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist >= 0
}

func (g *Generator) placeSpecials(b *core.Board) {
	if g.config.SpecialRatio <= 0 {
		return
	}
	want := len(g.hexes) / g.config.SpecialRatio
	placed := 0

	// Use a maximum attempt counter to avoid infinite loops
	maxAttempts := want * 10
	for attempts := 0; placed < want && attempts < maxAttempts; attempts++ {
		c := g.hexes[g.rng.Intn(len(g.hexes))]
		if b.Hexes[c.Key()].Tile != core.TileNormal {
			continue
		}
		tile := core.TileForge
		if placed%2 == 1 {
			tile = core.TileMine
		}
		g.setTile(b, c, tile)
		placed++
	}
}

// placeBridges links every capital toward the center, then adds random bridges
func (g *Generator) placeBridges(b *core.Board, capitals []core.Coordinate) {
	origin := core.NewCoordinate(0, 0)
	for _, c := range capitals {
		if next, ok := stepToward(c, origin); ok && g.onBoard(b, next) {
			addBridge(b, c.Key(), next.Key())
		}
	}

	if g.config.BridgeRatio <= 0 {
		return
	}
	want := len(g.hexes) / g.config.BridgeRatio
	maxAttempts := want * 10
	for attempts := 0; len(b.Bridges) < want+len(capitals) && attempts < maxAttempts; attempts++ {
		c := g.hexes[g.rng.Intn(len(g.hexes))]
		neighbors := c.Neighbors()
		n := neighbors[g.rng.Intn(len(neighbors))]
		if g.onBoard(b, n) {
			addBridge(b, c.Key(), n.Key())
		}
	}
}

// stepToward returns the first neighbor of c, in direction order, closer to target
func stepToward(c, target core.Coordinate) (core.Coordinate, bool) {
	d := c.DistanceTo(target)
	for _, n := range c.Neighbors() {
		if n.DistanceTo(target) < d {
			return n, true
		}
	}
	return c, false
}

func addBridge(b *core.Board, a, c core.HexKey) {
	key := core.NewEdgeKey(a, c)
	b.Bridges[key] = core.Bridge{Key: key}
}

func (g *Generator) placeUnits(b *core.Board, capitals []core.Coordinate) {
	for i, c := range capitals {
		owner := PlayerID(i)
		for f := 0; f < g.config.StartForces; f++ {
			addUnit(b, core.Unit{ID: fmt.Sprintf("%s-f%d", owner, f+1), Kind: core.UnitForce, Owner: owner, Hex: c.Key()})
		}
		if g.config.ChampionHP > 0 {
			addUnit(b, core.Unit{
				ID:        fmt.Sprintf("%s-c1", owner),
				Kind:      core.UnitChampion,
				Owner:     owner,
				Hex:       c.Key(),
				HP:        g.config.ChampionHP,
				MaxHP:     g.config.ChampionHP,
				CardDefID: "champion.vanguard",
			})
		}
	}
}

func addUnit(b *core.Board, u core.Unit) {
	h := b.Hexes[u.Hex]
	h.Occupants[u.Owner] = append(h.Occupants[u.Owner], u.ID)
	b.Hexes[u.Hex] = h
	b.Units[u.ID] = u
}
