package core

import "fmt"

// Cell addresses a single square of the board.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cell offset by (dx, dy).
func (c Cell) Add(dx, dy int) Cell { return Cell{X: c.X + dx, Y: c.Y + dy} }

// Adjacent reports whether c and o share an edge.
func (c Cell) Adjacent(o Cell) bool {
	dx := absInt(c.X - o.X)
	dy := absInt(c.Y - o.Y)
	return dx+dy == 1
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Grid is the bounded N×N coordinate space the game runs on.
type Grid struct {
	Size int
}

// NewGrid returns a grid with the given side length. Non-positive sizes are
// clamped to 1.
func NewGrid(size int) Grid {
	if size <= 0 {
		size = 1
	}
	return Grid{Size: size}
}

// InBounds reports whether both coordinates of c lie in [0, Size).
func (g Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Size && c.Y >= 0 && c.Y < g.Size
}

// Area returns the number of cells on the board.
func (g Grid) Area() int { return g.Size * g.Size }

// Index returns the row-major index for c. The caller must ensure c is in bounds.
func (g Grid) Index(c Cell) int { return c.Y*g.Size + c.X }

// At returns the cell for a row-major index.
func (g Grid) At(i int) Cell { return Cell{X: i % g.Size, Y: i / g.Size} }

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
