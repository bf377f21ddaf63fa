package session

import (
	"bytes"
	"context"
	"errors"
	"log"
	"slices"
	"strings"
	"testing"
	"time"

	"snake-grid/internal/core"
	"snake-grid/internal/snake"
	"snake-grid/internal/view"
)

func newController(t *testing.T, game snake.Config) *Controller {
	t.Helper()
	c, err := NewController(Options{Game: game, CellSize: 20, Seed: 5, Food: snake.PlacerRandom})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c
}

func TestNewControllerRejectsBadConfig(t *testing.T) {
	_, err := NewController(Options{Game: snake.Config{GridSize: 4}})
	if !errors.Is(err, snake.ErrEmptySnake) {
		t.Fatalf("expected ErrEmptySnake, got %v", err)
	}
	_, err = NewController(Options{Game: snake.DefaultConfig(), Food: "teleport"})
	if !errors.Is(err, core.ErrUnknownPlacer) {
		t.Fatalf("expected ErrUnknownPlacer, got %v", err)
	}
}

func TestControllerFirstTick(t *testing.T) {
	c := newController(t, snake.DefaultConfig())
	if out := c.Step(); out != snake.Moved {
		t.Fatalf("outcome=%v", out)
	}
	s := c.State()
	if !slices.Equal(s.Snake, []core.Cell{{X: 11, Y: 10}}) || s.Food != (core.Cell{X: 15, Y: 15}) || s.Score != 0 {
		t.Fatalf("state after one tick %+v", s)
	}
}

func TestControllerRejectsReversal(t *testing.T) {
	c := newController(t, snake.DefaultConfig())
	if c.Key(snake.KeyLeft) {
		t.Fatal("LEFT while moving RIGHT must be rejected")
	}
	c.Step()
	if s := c.State(); s.Direction != snake.Right || s.Head() != (core.Cell{X: 11, Y: 10}) {
		t.Fatalf("state %+v, expected RIGHT to (11,10)", s)
	}
}

func TestControllerIgnoresKeysAfterGameOver(t *testing.T) {
	cfg := snake.Config{GridSize: 3, InitialSnake: []core.Cell{{X: 2, Y: 1}}, InitialFood: core.Cell{}}
	c := newController(t, cfg)
	if out := c.Step(); out != snake.WallCollision {
		t.Fatalf("outcome=%v", out)
	}
	if c.Key(snake.KeyUp) {
		t.Fatal("key accepted after game over")
	}
	before := c.State()
	for i := 0; i < 3; i++ {
		if out := c.Step(); out != snake.Idle {
			t.Fatalf("outcome=%v after game over", out)
		}
	}
	if !c.State().Equal(before) {
		t.Fatal("ticks after game over changed state")
	}
}

func TestControllerResetIsTotal(t *testing.T) {
	cfg := snake.Config{GridSize: 6, InitialSnake: []core.Cell{{X: 1, Y: 1}}, InitialFood: core.Cell{X: 2, Y: 1}}
	c := newController(t, cfg)
	c.Step() // eats
	c.Key(snake.KeyDown)
	for !c.GameOver() {
		c.Step()
	}
	c.Reset()

	want := snake.NewState(cfg)
	if !c.State().Equal(want) {
		t.Fatalf("after reset %+v, expected %+v", c.State(), want)
	}
	if c.Pending() != snake.Right {
		t.Fatalf("pending=%v after reset", c.Pending())
	}
	if c.Games() != 2 {
		t.Fatalf("games=%d", c.Games())
	}
}

func TestControllerStateIsACopy(t *testing.T) {
	c := newController(t, snake.DefaultConfig())
	s := c.State()
	s.Snake[0] = core.Cell{}
	if c.State().Head() != (core.Cell{X: 10, Y: 10}) {
		t.Fatal("State exposed internal slice")
	}
}

func TestControllerLogsGameOver(t *testing.T) {
	var buf bytes.Buffer
	cfg := snake.Config{GridSize: 2, InitialSnake: []core.Cell{{X: 1, Y: 0}}, InitialFood: core.Cell{}}
	c, err := NewController(Options{Game: cfg, CellSize: 10, Seed: 1, Logger: log.New(&buf, "", 0)})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	c.Step()
	if !strings.Contains(buf.String(), "wall collision") {
		t.Fatalf("log %q lacks collision", buf.String())
	}
}

func TestControllerFrame(t *testing.T) {
	c := newController(t, snake.DefaultConfig())
	f := c.Frame()
	if f.Width != 400 || len(f.Segments) != 1 || f.Segments[0].X != 200 {
		t.Fatalf("frame %+v", f)
	}
}

type runHarness struct {
	runner *Runner
	sched  *core.ManualScheduler
	frames chan view.Frame
	errc   chan error
	cancel context.CancelFunc
	ctx    context.Context
}

func startRunner(t *testing.T, c *Controller) *runHarness {
	t.Helper()
	h := &runHarness{
		sched:  core.NewManualScheduler(),
		frames: make(chan view.Frame, 16),
		errc:   make(chan error, 1),
	}
	h.runner = NewRunner(c, h.sched, 150*time.Millisecond)
	h.ctx, h.cancel = context.WithCancel(context.Background())
	go func() {
		h.errc <- h.runner.Run(h.ctx, func(f view.Frame) { h.frames <- f })
	}()
	t.Cleanup(h.cancel)
	h.next(t)
	return h
}

func (h *runHarness) next(t *testing.T) view.Frame {
	t.Helper()
	select {
	case f := <-h.frames:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("no frame published")
		return view.Frame{}
	}
}

func TestRunnerAppliesKeyBeforeTick(t *testing.T) {
	h := startRunner(t, newController(t, snake.DefaultConfig()))
	if !h.sched.Running() || h.sched.Interval() != 150*time.Millisecond {
		t.Fatal("scheduler must be armed with the tick interval")
	}

	if err := h.runner.Key(h.ctx, snake.KeyDown); err != nil {
		t.Fatalf("Key: %v", err)
	}
	h.sched.Fire()
	f := h.next(t)

	if f.Segments[0].X != 200 || f.Segments[0].Y != 220 {
		t.Fatalf("head box %+v, expected (10,11)", f.Segments[0])
	}
}

func TestRunnerStopsSchedulerOnGameOverAndRestartsOnReset(t *testing.T) {
	cfg := snake.Config{GridSize: 3, InitialSnake: []core.Cell{{X: 2, Y: 1}}, InitialFood: core.Cell{}}
	h := startRunner(t, newController(t, cfg))

	h.sched.Fire()
	f := h.next(t)
	if !f.GameOver || f.Overlay == nil {
		t.Fatalf("expected game over frame, got %+v", f)
	}
	if h.sched.Running() {
		t.Fatal("scheduler still armed after game over")
	}

	if err := h.runner.Reset(h.ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	f = h.next(t)
	if f.GameOver || f.Score != 0 || f.Segments[0].X != 40 {
		t.Fatalf("frame after reset %+v", f)
	}
	if !h.sched.Running() || h.sched.Starts() != 2 {
		t.Fatalf("scheduler running=%v starts=%d after reset", h.sched.Running(), h.sched.Starts())
	}
}

func TestRunnerReleasesOnCancel(t *testing.T) {
	h := startRunner(t, newController(t, snake.DefaultConfig()))
	h.cancel()

	select {
	case err := <-h.errc:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if h.sched.Running() {
		t.Fatal("scheduler left armed after teardown")
	}
	if err := h.runner.Key(context.Background(), snake.KeyUp); !errors.Is(err, ErrStopped) {
		t.Fatalf("Key after stop = %v, expected ErrStopped", err)
	}
	if err := h.runner.Reset(context.Background()); !errors.Is(err, ErrStopped) {
		t.Fatalf("Reset after stop = %v, expected ErrStopped", err)
	}
}
