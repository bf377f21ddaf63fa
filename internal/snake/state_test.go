package snake

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"snake-grid/internal/core"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	s := NewState(cfg)
	if !slices.Equal(s.Snake, cells(10, 10)) || s.Food != (core.Cell{X: 15, Y: 15}) {
		t.Fatalf("initial state %+v", s)
	}
	if s.Direction != Right || s.Score != 0 || s.GameOver {
		t.Fatalf("initial state %+v", s)
	}
}

func TestNewStateCopiesInitialSnake(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(cfg)
	s.Snake[0] = core.Cell{X: 0, Y: 0}
	if cfg.InitialSnake[0] != (core.Cell{X: 10, Y: 10}) {
		t.Fatal("state shares backing array with config")
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"grid", Config{GridSize: 0, InitialSnake: cells(0, 0)}, ErrGridSize},
		{"empty", Config{GridSize: 5}, ErrEmptySnake},
		{"bounds", Config{GridSize: 5, InitialSnake: cells(5, 0)}, ErrSnakeOutOfBounds},
		{"overlap", Config{GridSize: 5, InitialSnake: cells(1, 1, 1, 2, 1, 1)}, ErrSnakeOverlap},
		{"gap", Config{GridSize: 5, InitialSnake: cells(1, 1, 3, 1)}, ErrSnakeNotContiguous},
		{"food bounds", Config{GridSize: 5, InitialSnake: cells(1, 1), InitialFood: core.Cell{X: -1}}, ErrFoodOutOfBounds},
		{"food on snake", Config{GridSize: 5, InitialSnake: cells(1, 1, 0, 1), InitialFood: core.Cell{X: 0, Y: 1}}, ErrFoodOnSnake},
	}
	for _, tc := range cases {
		if err := tc.cfg.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: Validate()=%v, expected %v", tc.name, err, tc.want)
		}
	}
}

func TestDirectionOpposite(t *testing.T) {
	pairs := map[Direction]Direction{Up: Down, Down: Up, Left: Right, Right: Left}
	for d, o := range pairs {
		if d.Opposite() != o {
			t.Fatalf("%v.Opposite()=%v, expected %v", d, d.Opposite(), o)
		}
		dx, dy := d.Delta()
		ox, oy := o.Delta()
		if dx+ox != 0 || dy+oy != 0 {
			t.Fatalf("deltas of %v and %v do not cancel", d, o)
		}
	}
}

func TestStateJSON(t *testing.T) {
	s := State{Snake: cells(3, 4, 2, 4), Food: core.Cell{X: 7, Y: 1}, Direction: Left, Score: 3}
	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"direction":"LEFT"`) || !strings.Contains(string(raw), `{"x":3,"y":4}`) {
		t.Fatalf("unexpected encoding %s", raw)
	}
	var back State
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(s) {
		t.Fatalf("round trip %+v != %+v", back, s)
	}
	if err := json.Unmarshal([]byte(`{"direction":"NORTH"}`), &back); err == nil {
		t.Fatal("expected error for unknown direction")
	}
}
