// Package session owns a running game: the state, the pending direction and
// the operations that may change them.
package session

import (
	"fmt"
	"io"
	"log"
	"time"

	"snake-grid/internal/core"
	"snake-grid/internal/snake"
	"snake-grid/internal/view"
)

// Options configures a Controller.
type Options struct {
	Game     snake.Config
	CellSize int
	Seed     int64
	Food     string
	Logger   *log.Logger
}

// Controller is the single owner of a game's state. Its methods are not safe
// for concurrent use; Runner serializes access for multi-goroutine frontends.
type Controller struct {
	cfg      snake.Config
	engine   *snake.Engine
	cellSize int
	logger   *log.Logger

	state   snake.State
	pending snake.Direction
	games   int
}

// NewController validates opts and returns a controller holding the initial state.
func NewController(opts Options) (*Controller, error) {
	if err := opts.Game.Validate(); err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	name := opts.Food
	if name == "" {
		name = snake.PlacerRandom
	}
	placer, err := core.NewPlacer(name, core.NewRNG(seed))
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	c := &Controller{
		cfg:      opts.Game,
		engine:   snake.NewEngine(opts.Game.Grid(), placer),
		cellSize: opts.CellSize,
		logger:   logger,
	}
	c.Reset()
	return c, nil
}

// Key records a directional key press. It returns false when the press was
// ignored: unknown key, reversal, or a finished game.
func (c *Controller) Key(k snake.Key) bool {
	if c.state.GameOver {
		return false
	}
	next, ok := snake.OnKey(k, c.state.Direction, c.pending)
	c.pending = next
	return ok
}

// Step advances the game by one tick using the pending direction.
func (c *Controller) Step() snake.Outcome {
	next, out := c.engine.Tick(c.state, c.pending)
	c.state = next
	if out.Collided() {
		c.logger.Printf("game %d over: %s at %v, score %d, length %d",
			c.games, out, c.state.Head(), c.state.Score, c.state.Len())
	}
	return out
}

// Reset restores the initial state in full.
func (c *Controller) Reset() {
	c.state = snake.NewState(c.cfg)
	c.pending = c.state.Direction
	c.games++
	c.logger.Printf("game %d started", c.games)
}

// State returns a copy of the current state.
func (c *Controller) State() snake.State { return c.state.Clone() }

// Pending returns the direction the next tick will try to apply.
func (c *Controller) Pending() snake.Direction { return c.pending }

// GameOver reports whether the current game has ended.
func (c *Controller) GameOver() bool { return c.state.GameOver }

// Games returns how many games have been started, including the current one.
func (c *Controller) Games() int { return c.games }

// Grid returns the board the controller plays on.
func (c *Controller) Grid() core.Grid { return c.engine.Grid }

// Frame projects the current state for rendering.
func (c *Controller) Frame() view.Frame {
	return view.Project(c.state, c.cfg.GridSize, c.cellSize)
}
