// Package term plays the game in a terminal through tcell. Each board cell is
// two columns wide so the board looks square in most fonts.
package term

import (
	"snake-grid/internal/view"

	"github.com/gdamore/tcell/v2"
)

const (
	boardTop  = 1
	boardLeft = 0
	cellCols  = 2
)

var (
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleHead   = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleBody   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFood   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleButton = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// BoardSize returns the number of cells per side of f.
func BoardSize(f view.Frame) int {
	if f.CellSize <= 0 {
		return 0
	}
	return f.Width / f.CellSize
}

// ScreenPos returns the terminal column and row of board cell (x, y).
func ScreenPos(x, y int) (int, int) {
	return boardLeft + 1 + x*cellCols, boardTop + 1 + y
}

// Draw renders f onto s and shows it.
func Draw(s tcell.Screen, f view.Frame) {
	s.Clear()
	n := BoardSize(f)
	putString(s, 0, 0, f.ScoreText, styleText)
	drawBorder(s, n)

	putBox(s, f, f.Food, '●', styleFood)
	for i, b := range f.Segments {
		st := styleBody
		if i == 0 {
			st = styleHead
		}
		putBox(s, f, b, '█', st)
	}

	if f.Overlay != nil {
		mid := boardTop + 1 + n/2
		width := n*cellCols + 2
		title := f.Overlay.Title
		putString(s, max(0, boardLeft+(width-len(title))/2), mid-1, title, styleText)
		label := "[ " + f.Overlay.Label + " ]"
		putString(s, max(0, boardLeft+(width-len(label))/2), mid+1, label, styleButton)
		putString(s, 0, boardTop+n+2, "enter/r restart, esc quit", styleDim)
	} else {
		putString(s, 0, boardTop+n+2, "arrows/wasd steer, esc quit", styleDim)
	}
	s.Show()
}

func putBox(s tcell.Screen, f view.Frame, b view.Box, r rune, st tcell.Style) {
	x, y := ScreenPos(b.X/f.CellSize, b.Y/f.CellSize)
	for i := 0; i < cellCols; i++ {
		s.SetContent(x+i, y, r, nil, st)
	}
}

func drawBorder(s tcell.Screen, n int) {
	right := boardLeft + 1 + n*cellCols
	bottom := boardTop + 1 + n
	for x := boardLeft + 1; x < right; x++ {
		s.SetContent(x, boardTop, '─', nil, styleBorder)
		s.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := boardTop + 1; y < bottom; y++ {
		s.SetContent(boardLeft, y, '│', nil, styleBorder)
		s.SetContent(right, y, '│', nil, styleBorder)
	}
	s.SetContent(boardLeft, boardTop, '┌', nil, styleBorder)
	s.SetContent(right, boardTop, '┐', nil, styleBorder)
	s.SetContent(boardLeft, bottom, '└', nil, styleBorder)
	s.SetContent(right, bottom, '┘', nil, styleBorder)
}

func putString(s tcell.Screen, x, y int, str string, st tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, st)
		x++
	}
}
