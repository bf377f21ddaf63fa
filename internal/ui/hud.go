//go:build ebiten

package ui

import (
	"image/color"

	"snake-grid/internal/view"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding   = 8
	headerBaseline = 18
	controlsHint   = "arrows: steer"
)

// HUD renders the score readout strip above the board.
type HUD struct {
	face font.Face
	bg   color.RGBA
	fg   color.RGBA
	dim  color.RGBA
}

// NewHUD constructs a HUD.
func NewHUD() *HUD {
	return &HUD{
		face: basicfont.Face7x13,
		bg:   color.RGBA{R: 16, G: 16, B: 20, A: 255},
		fg:   color.RGBA{R: 220, G: 220, B: 230, A: 255},
		dim:  color.RGBA{R: 120, G: 120, B: 130, A: 255},
	}
}

// Draw paints the strip across the top of the screen.
func (h *HUD) Draw(screen *ebiten.Image, f view.Frame) {
	if h == nil {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, float32(f.Width), HUDHeight, h.bg, false)
	text.Draw(screen, f.ScoreText, h.face, panelPadding, headerBaseline, h.fg)

	bounds := text.BoundString(h.face, controlsHint)
	x := f.Width - panelPadding - bounds.Dx()
	if x > panelPadding+text.BoundString(h.face, f.ScoreText).Dx()+panelPadding {
		text.Draw(screen, controlsHint, h.face, x, headerBaseline, h.dim)
	}
}
