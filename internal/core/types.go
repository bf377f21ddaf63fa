package core

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPlacer is returned when a food placement policy name is not registered.
var ErrUnknownPlacer = errors.New("unknown food placer")

// FoodPlacer chooses the next food cell after the current one is eaten.
// occupied lists the snake cells at the moment of placement.
type FoodPlacer interface {
	Name() string
	Place(g Grid, occupied []Cell) Cell
}

// PlacerFactory constructs a FoodPlacer drawing from the given RNG.
type PlacerFactory func(rng *RNG) FoodPlacer

var placers = map[string]PlacerFactory{}

// RegisterPlacer adds a food placement policy under the provided name.
func RegisterPlacer(name string, f PlacerFactory) {
	if name == "" || f == nil {
		return
	}
	placers[name] = f
}

// NewPlacer builds the named policy.
func NewPlacer(name string, rng *RNG) (FoodPlacer, error) {
	f, ok := placers[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknownPlacer, name, Placers())
	}
	return f(rng), nil
}

// Placers lists the registered policy names in sorted order.
func Placers() []string {
	names := make([]string, 0, len(placers))
	for name := range placers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
