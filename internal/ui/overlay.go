//go:build ebiten

package ui

import (
	"image/color"

	"snake-grid/internal/view"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the game-over panel and detects presses on its restart button.
type Overlay struct {
	face     font.Face
	touchIDs []ebiten.TouchID
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	return &Overlay{face: basicfont.Face7x13}
}

// RestartPressed reports whether the restart button of f was clicked or
// tapped this frame.
func (o *Overlay) RestartPressed(f view.Frame) bool {
	if f.Overlay == nil {
		return false
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if f.HitRestart(ToBoard(ebiten.CursorPosition())) {
			return true
		}
	}
	o.touchIDs = inpututil.AppendJustPressedTouchIDs(o.touchIDs[:0])
	for _, id := range o.touchIDs {
		if f.HitRestart(ToBoard(ebiten.TouchPosition(id))) {
			return true
		}
	}
	return false
}

// Draw renders the overlay when f is a finished game.
func (o *Overlay) Draw(screen *ebiten.Image, f view.Frame) {
	if f.Overlay == nil {
		return
	}
	top := float32(HUDHeight)
	vector.DrawFilledRect(screen, 0, top, float32(f.Width), float32(f.Height), color.RGBA{A: 170}, false)

	title := f.Overlay.Title
	tb := text.BoundString(o.face, title)
	btn := f.Overlay.Button
	titleY := HUDHeight + btn.Y - tb.Dy()
	text.Draw(screen, title, o.face, (f.Width-tb.Dx())/2, titleY, color.RGBA{R: 240, G: 240, B: 245, A: 255})

	vector.DrawFilledRect(screen, float32(btn.X), top+float32(btn.Y), float32(btn.W), float32(btn.H),
		color.RGBA{R: 54, G: 56, B: 64, A: 255}, false)
	lb := text.BoundString(o.face, f.Overlay.Label)
	lx := btn.X + (btn.W-lb.Dx())/2
	ly := HUDHeight + btn.Y + (btn.H-lb.Dy())/2 + lb.Dy()
	text.Draw(screen, f.Overlay.Label, o.face, lx, ly, color.RGBA{R: 230, G: 230, B: 240, A: 255})
}
