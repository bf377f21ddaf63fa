// Package view projects game state onto positioned boxes. It holds no game
// logic; every frontend draws from a Frame.
package view

import (
	"fmt"
	"image"

	"snake-grid/internal/snake"
)

// Kind tells a renderer how to paint a box.
type Kind string

const (
	KindHead Kind = "head"
	KindBody Kind = "body"
	KindFood Kind = "food"
)

// Box is a square in board pixel coordinates.
type Box struct {
	X    int  `json:"x"`
	Y    int  `json:"y"`
	W    int  `json:"w"`
	H    int  `json:"h"`
	Kind Kind `json:"kind"`
}

// Rect returns the box as an image.Rectangle.
func (b Box) Rect() image.Rectangle { return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H) }

// Overlay is the game-over panel with its restart control.
type Overlay struct {
	Title  string `json:"title"`
	Button Box    `json:"button"`
	Label  string `json:"label"`
}

// Frame is everything needed to draw one picture of the game.
type Frame struct {
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	CellSize  int      `json:"cellSize"`
	Segments  []Box    `json:"segments"`
	Food      Box      `json:"food"`
	Score     int      `json:"score"`
	ScoreText string   `json:"scoreText"`
	GameOver  bool     `json:"gameOver"`
	Overlay   *Overlay `json:"overlay,omitempty"`
}

// Overlay text and button geometry in board pixels.
const (
	GameOverTitle = "Game Over!"
	PlayAgain     = "Play Again"

	buttonWidth  = 120
	buttonHeight = 32
)

// Project maps s onto a board of gridSize×gridSize cells drawn at cellSize
// pixels each.
func Project(s snake.State, gridSize, cellSize int) Frame {
	if cellSize <= 0 {
		cellSize = 1
	}
	side := gridSize * cellSize
	f := Frame{
		Width:     side,
		Height:    side,
		CellSize:  cellSize,
		Segments:  make([]Box, 0, len(s.Snake)),
		Food:      cellBox(s.Food.X, s.Food.Y, cellSize, KindFood),
		Score:     s.Score,
		ScoreText: fmt.Sprintf("Score: %d", s.Score),
		GameOver:  s.GameOver,
	}
	for i, c := range s.Snake {
		kind := KindBody
		if i == 0 {
			kind = KindHead
		}
		f.Segments = append(f.Segments, cellBox(c.X, c.Y, cellSize, kind))
	}
	if s.GameOver {
		f.Overlay = &Overlay{
			Title:  GameOverTitle,
			Label:  PlayAgain,
			Button: centeredButton(side),
		}
	}
	return f
}

// HitRestart reports whether the board point (x, y) is on the restart button.
func (f Frame) HitRestart(x, y int) bool {
	if f.Overlay == nil {
		return false
	}
	return image.Pt(x, y).In(f.Overlay.Button.Rect())
}

func cellBox(x, y, size int, kind Kind) Box {
	return Box{X: x * size, Y: y * size, W: size, H: size, Kind: kind}
}

func centeredButton(side int) Box {
	w, h := buttonWidth, buttonHeight
	if w > side {
		w = side
	}
	if h > side {
		h = side
	}
	// sit below the centred title when the board has room for it
	drop := min(h, (side-h)/2)
	return Box{X: (side - w) / 2, Y: (side-h)/2 + drop, W: w, H: h}
}
