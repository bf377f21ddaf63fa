// Package ui draws the score strip and the game-over overlay around the
// board. Drawing needs the ebiten build tag; the layout helpers do not.
package ui

import "snake-grid/internal/view"

// HUDHeight is the height of the score strip above the board.
const HUDHeight = 28

// ScreenSize returns the logical screen size for f: the strip plus the board.
func ScreenSize(f view.Frame) (int, int) {
	return f.Width, f.Height + HUDHeight
}

// ToBoard converts screen coordinates into board coordinates.
func ToBoard(x, y int) (int, int) {
	return x, y - HUDHeight
}
