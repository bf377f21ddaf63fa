package snake

import (
	"errors"
	"fmt"
	"slices"

	"snake-grid/internal/core"
)

// Direction is the snake's direction of travel.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{Up: "UP", Down: "DOWN", Left: "LEFT", Right: "RIGHT"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool { return d <= Right }

// Opposite returns the 180° reversal of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Delta returns the unit offset for one step in d. Screen coordinates grow
// downwards, so Up decrements y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

// MarshalText encodes d as its upper-case name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", d)
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes an upper-case direction name.
func (d *Direction) UnmarshalText(b []byte) error {
	for i, name := range directionNames {
		if name == string(b) {
			*d = Direction(i)
			return nil
		}
	}
	return fmt.Errorf("unknown direction %q", b)
}

// Configuration errors.
var (
	ErrGridSize           = errors.New("grid size must be positive")
	ErrEmptySnake         = errors.New("initial snake is empty")
	ErrSnakeOutOfBounds   = errors.New("initial snake leaves the grid")
	ErrSnakeOverlap       = errors.New("initial snake overlaps itself")
	ErrSnakeNotContiguous = errors.New("initial snake cells are not adjacent")
	ErrFoodOutOfBounds    = errors.New("initial food is outside the grid")
	ErrFoodOnSnake        = errors.New("initial food lies on the snake")
)

// Config fixes the board and the starting position of a game.
type Config struct {
	GridSize     int
	InitialSnake []core.Cell
	InitialFood  core.Cell
}

// DefaultConfig returns the standard 20×20 board with a single-segment snake.
func DefaultConfig() Config {
	return Config{
		GridSize:     20,
		InitialSnake: []core.Cell{{X: 10, Y: 10}},
		InitialFood:  core.Cell{X: 15, Y: 15},
	}
}

// Grid returns the board described by c.
func (c Config) Grid() core.Grid { return core.NewGrid(c.GridSize) }

// Validate checks that the initial state satisfies the data model invariants.
func (c Config) Validate() error {
	if c.GridSize <= 0 {
		return fmt.Errorf("%w: %d", ErrGridSize, c.GridSize)
	}
	if len(c.InitialSnake) == 0 {
		return ErrEmptySnake
	}
	g := c.Grid()
	seen := make(map[core.Cell]struct{}, len(c.InitialSnake))
	for i, cell := range c.InitialSnake {
		if !g.InBounds(cell) {
			return fmt.Errorf("%w: segment %d at %v", ErrSnakeOutOfBounds, i, cell)
		}
		if _, dup := seen[cell]; dup {
			return fmt.Errorf("%w: segment %d at %v", ErrSnakeOverlap, i, cell)
		}
		seen[cell] = struct{}{}
		if i > 0 && !cell.Adjacent(c.InitialSnake[i-1]) {
			return fmt.Errorf("%w: segments %d and %d", ErrSnakeNotContiguous, i-1, i)
		}
	}
	if !g.InBounds(c.InitialFood) {
		return fmt.Errorf("%w: %v", ErrFoodOutOfBounds, c.InitialFood)
	}
	if _, hit := seen[c.InitialFood]; hit {
		return fmt.Errorf("%w: %v", ErrFoodOnSnake, c.InitialFood)
	}
	return nil
}

// InitialDirection is the direction every game starts with.
const InitialDirection = Right

// State is the complete, serializable game state. The head is Snake[0].
type State struct {
	Snake     []core.Cell `json:"snake"`
	Food      core.Cell   `json:"food"`
	Direction Direction   `json:"direction"`
	Score     int         `json:"score"`
	GameOver  bool        `json:"gameOver"`
}

// NewState returns the initial state for c.
func NewState(c Config) State {
	return State{
		Snake:     slices.Clone(c.InitialSnake),
		Food:      c.InitialFood,
		Direction: InitialDirection,
	}
}

// Head returns the front cell of the snake.
func (s State) Head() core.Cell { return s.Snake[0] }

// Len returns the number of segments.
func (s State) Len() int { return len(s.Snake) }

// Occupies reports whether any segment lies on c.
func (s State) Occupies(c core.Cell) bool { return slices.Contains(s.Snake, c) }

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.Snake = slices.Clone(s.Snake)
	return s
}

// Equal reports whether s and o describe the same game position.
func (s State) Equal(o State) bool {
	return s.Food == o.Food && s.Direction == o.Direction && s.Score == o.Score &&
		s.GameOver == o.GameOver && slices.Equal(s.Snake, o.Snake)
}
