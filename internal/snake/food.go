package snake

import "snake-grid/internal/core"

// Food placement policy names.
const (
	PlacerRandom = "random"
	PlacerFree   = "free"
)

// RandomPlacer picks a uniformly random cell of the grid. The cell may lie on
// the snake; this is the classic behaviour and the default.
type RandomPlacer struct {
	rng *core.RNG
}

// NewRandomPlacer returns a RandomPlacer drawing from rng.
func NewRandomPlacer(rng *core.RNG) *RandomPlacer { return &RandomPlacer{rng: rng} }

// Name returns the policy identifier.
func (p *RandomPlacer) Name() string { return PlacerRandom }

// Place returns a uniformly random cell.
func (p *RandomPlacer) Place(g core.Grid, _ []core.Cell) core.Cell {
	return p.rng.Cell(g)
}

// FreePlacer picks a uniformly random cell not covered by the snake. When the
// snake fills the board it degrades to RandomPlacer behaviour.
type FreePlacer struct {
	rng  *core.RNG
	free []core.Cell
}

// NewFreePlacer returns a FreePlacer drawing from rng.
func NewFreePlacer(rng *core.RNG) *FreePlacer { return &FreePlacer{rng: rng} }

// Name returns the policy identifier.
func (p *FreePlacer) Name() string { return PlacerFree }

// Place returns a random unoccupied cell.
func (p *FreePlacer) Place(g core.Grid, occupied []core.Cell) core.Cell {
	taken := make([]bool, g.Area())
	for _, c := range occupied {
		if g.InBounds(c) {
			taken[g.Index(c)] = true
		}
	}
	p.free = p.free[:0]
	for i, t := range taken {
		if !t {
			p.free = append(p.free, g.At(i))
		}
	}
	if len(p.free) == 0 {
		return p.rng.Cell(g)
	}
	return p.free[p.rng.IntN(len(p.free))]
}

func init() {
	core.RegisterPlacer(PlacerRandom, func(rng *core.RNG) core.FoodPlacer { return NewRandomPlacer(rng) })
	core.RegisterPlacer(PlacerFree, func(rng *core.RNG) core.FoodPlacer { return NewFreePlacer(rng) })
}
