package snake

import "snake-grid/internal/core"

// Outcome classifies what a single tick did.
type Outcome uint8

const (
	// Idle means the game was already over and nothing changed.
	Idle Outcome = iota
	// Moved means the snake advanced one cell without eating.
	Moved
	// Ate means the head landed on the food and the snake grew.
	Ate
	// WallCollision means the next head left the grid; the game is over.
	WallCollision
	// SelfCollision means the next head hit the body; the game is over.
	SelfCollision
)

func (o Outcome) String() string {
	switch o {
	case Idle:
		return "idle"
	case Moved:
		return "moved"
	case Ate:
		return "ate"
	case WallCollision:
		return "wall collision"
	case SelfCollision:
		return "self collision"
	default:
		return "unknown"
	}
}

// Collided reports whether the outcome ended the game.
func (o Outcome) Collided() bool { return o == WallCollision || o == SelfCollision }

// Engine advances a State by one tick on a fixed grid.
type Engine struct {
	Grid core.Grid
	Food core.FoodPlacer
}

// NewEngine returns an engine for grid g placing food with p.
func NewEngine(g core.Grid, p core.FoodPlacer) *Engine {
	return &Engine{Grid: g, Food: p}
}

// Steer returns the direction a tick will apply: pending unless it reverses
// current.
func Steer(current, pending Direction) Direction {
	if !pending.Valid() || pending == current.Opposite() {
		return current
	}
	return pending
}

// Tick computes the state after one step. The input state is never mutated.
//
// The self-collision check runs against the pre-move body including the tail
// cell that a non-growing move would vacate, so moving into the current tail
// ends the game.
func (e *Engine) Tick(s State, pending Direction) (State, Outcome) {
	if s.GameOver {
		return s, Idle
	}

	dir := Steer(s.Direction, pending)
	dx, dy := dir.Delta()
	head := s.Head().Add(dx, dy)

	if !e.Grid.InBounds(head) {
		s.GameOver = true
		return s, WallCollision
	}
	for _, c := range s.Snake[1:] {
		if c == head {
			s.GameOver = true
			return s, SelfCollision
		}
	}

	body := make([]core.Cell, 0, len(s.Snake)+1)
	body = append(body, head)
	body = append(body, s.Snake...)

	next := State{Snake: body, Food: s.Food, Direction: dir, Score: s.Score}
	if head == s.Food {
		next.Score++
		next.Food = e.Food.Place(e.Grid, body)
		return next, Ate
	}
	next.Snake = body[:len(body)-1]
	return next, Moved
}
