package app

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"snake-grid/internal/core"
	"snake-grid/internal/session"
	"snake-grid/internal/snake"

	"github.com/joho/godotenv"
)

// Configuration errors.
var (
	ErrCellSize     = errors.New("cell size must be positive")
	ErrTickInterval = errors.New("tick interval must be positive")
	ErrCellFormat   = errors.New("cell must be written as x,y")
)

// Config represents the command-line and environment parameters shared by
// every frontend.
type Config struct {
	GridSize     int
	CellSize     int
	Tick         time.Duration
	InitialSnake []core.Cell
	InitialFood  core.Cell
	Food         string
	Seed         int64
	Addr         string
	LogFile      string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	game := snake.DefaultConfig()
	return &Config{
		GridSize:     game.GridSize,
		CellSize:     20,
		Tick:         core.DefaultInterval,
		InitialSnake: game.InitialSnake,
		InitialFood:  game.InitialFood,
		Food:         snake.PlacerRandom,
		Addr:         ":8080",
		LogFile:      "-",
	}
}

// Bind attaches the configuration to the provided FlagSet. Values already in
// c, for example from LoadEnv, become the flag defaults.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.GridSize, "grid", c.GridSize, "board side length in cells")
	fs.IntVar(&c.CellSize, "cell", c.CellSize, "pixel size per cell")
	fs.DurationVar(&c.Tick, "tick", c.Tick, "update interval")
	fs.Var((*cellList)(&c.InitialSnake), "snake", "initial snake, head first, as x,y;x,y")
	fs.Var((*cellValue)(&c.InitialFood), "food-at", "initial food cell as x,y")
	fs.StringVar(&c.Food, "food", c.Food, "food placement policy ("+strings.Join(core.Placers(), ", ")+")")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for food placement (0 picks one from the clock)")
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen address for the web server")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "log destination: file path, - for stderr, empty to discard")
}

// FromMap returns the defaults overridden by flag-style key/value pairs. Bad
// values are skipped and reported in the returned error.
func FromMap(cfg map[string]string) (*Config, error) {
	c := NewConfig()
	return c, c.Apply(cfg)
}

// Apply overrides fields from key/value pairs. Every valid entry is applied
// even when others fail to parse.
func (c *Config) Apply(cfg map[string]string) error {
	var errs []error
	bad := func(key, v string, err error) {
		errs = append(errs, fmt.Errorf("%s=%q: %w", key, v, err))
	}
	if v, ok := cfg["grid_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.GridSize = parsed
		} else {
			bad("grid_size", v, snake.ErrGridSize)
		}
	}
	if v, ok := cfg["cell_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.CellSize = parsed
		} else {
			bad("cell_size", v, ErrCellSize)
		}
	}
	if v, ok := cfg["tick_ms"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Tick = time.Duration(parsed) * time.Millisecond
		} else {
			bad("tick_ms", v, ErrTickInterval)
		}
	}
	if v, ok := cfg["initial_snake"]; ok {
		if parsed, err := ParseCells(v); err == nil {
			c.InitialSnake = parsed
		} else {
			bad("initial_snake", v, err)
		}
	}
	if v, ok := cfg["initial_food"]; ok {
		if parsed, err := ParseCell(v); err == nil {
			c.InitialFood = parsed
		} else {
			bad("initial_food", v, err)
		}
	}
	if v, ok := cfg["food"]; ok && v != "" {
		c.Food = v
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		} else {
			bad("seed", v, err)
		}
	}
	if v, ok := cfg["addr"]; ok && v != "" {
		c.Addr = v
	}
	if v, ok := cfg["log"]; ok {
		c.LogFile = v
	}
	return errors.Join(errs...)
}

// envKeys maps environment variables onto Apply keys.
var envKeys = map[string]string{
	"SNAKE_GRID_SIZE":     "grid_size",
	"SNAKE_CELL_SIZE":     "cell_size",
	"SNAKE_TICK_MS":       "tick_ms",
	"SNAKE_INITIAL_SNAKE": "initial_snake",
	"SNAKE_INITIAL_FOOD":  "initial_food",
	"SNAKE_FOOD":          "food",
	"SNAKE_SEED":          "seed",
	"SNAKE_ADDR":          "addr",
	"SNAKE_LOG":           "log",
}

// LoadEnv applies SNAKE_* variables from the dotenv file at path (".env" when
// empty) and from the process environment, which takes precedence. A missing
// file is not an error.
func (c *Config) LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	file, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", path, err)
	}
	values := map[string]string{}
	for env, key := range envKeys {
		if v, ok := file[env]; ok {
			values[key] = v
		}
		if v, ok := os.LookupEnv(env); ok {
			values[key] = v
		}
	}
	return c.Apply(values)
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: %d", ErrCellSize, c.CellSize)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("%w: %v", ErrTickInterval, c.Tick)
	}
	if err := c.Game().Validate(); err != nil {
		return err
	}
	if _, err := core.NewPlacer(c.Food, core.NewRNG(0)); err != nil {
		return err
	}
	return nil
}

// Game returns the board and starting position.
func (c *Config) Game() snake.Config {
	return snake.Config{
		GridSize:     c.GridSize,
		InitialSnake: append([]core.Cell(nil), c.InitialSnake...),
		InitialFood:  c.InitialFood,
	}
}

// Session returns controller options for this configuration.
func (c *Config) Session() session.Options {
	return session.Options{
		Game:     c.Game(),
		CellSize: c.CellSize,
		Seed:     c.Seed,
		Food:     c.Food,
	}
}

// Parameters describes the effective configuration for display.
func (c *Config) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Board",
			Params: []core.Parameter{
				core.IntParam("grid_size", "Grid size", c.GridSize),
				core.IntParam("cell_size", "Cell size", c.CellSize),
				{Key: "tick_ms", Label: "Tick", Type: core.ParamTypeDuration, Value: c.Tick.String()},
			},
		},
		{
			Name: "Start",
			Params: []core.Parameter{
				core.StringParam("initial_snake", "Initial snake", FormatCells(c.InitialSnake)),
				core.StringParam("initial_food", "Initial food", FormatCells([]core.Cell{c.InitialFood})),
			},
		},
		{
			Name: "Food",
			Params: []core.Parameter{
				core.StringParam("food", "Placement", c.Food),
				core.Int64Param("seed", "Seed", c.Seed),
			},
		},
	}}
}

// ParseCell parses "x,y".
func ParseCell(s string) (core.Cell, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return core.Cell{}, fmt.Errorf("%w: %q", ErrCellFormat, s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return core.Cell{}, fmt.Errorf("%w: %q", ErrCellFormat, s)
	}
	return core.Cell{X: x, Y: y}, nil
}

// ParseCells parses "x,y;x,y;...".
func ParseCells(s string) ([]core.Cell, error) {
	var out []core.Cell
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := ParseCell(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// FormatCells is the inverse of ParseCells.
func FormatCells(cells []core.Cell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("%d,%d", c.X, c.Y)
	}
	return strings.Join(parts, ";")
}

type cellList []core.Cell

func (l *cellList) String() string { return FormatCells(*l) }

func (l *cellList) Set(value string) error {
	cells, err := ParseCells(value)
	if err != nil {
		return err
	}
	*l = cells
	return nil
}

type cellValue core.Cell

func (v *cellValue) String() string { return FormatCells([]core.Cell{core.Cell(*v)}) }

func (v *cellValue) Set(value string) error {
	c, err := ParseCell(value)
	if err != nil {
		return err
	}
	*v = cellValue(c)
	return nil
}
