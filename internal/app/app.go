//go:build ebiten

package app

import (
	"image/color"
	"runtime"
	"time"

	"snake-grid/internal/core"
	"snake-grid/internal/render"
	"snake-grid/internal/session"
	"snake-grid/internal/snake"
	"snake-grid/internal/ui"
	"snake-grid/internal/view"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// steering lists the directional keys in the order they are applied when
// several are pressed in the same frame.
var steering = []struct {
	key ebiten.Key
	dir snake.Key
}{
	{ebiten.KeyArrowUp, snake.KeyUp},
	{ebiten.KeyW, snake.KeyUp},
	{ebiten.KeyArrowDown, snake.KeyDown},
	{ebiten.KeyS, snake.KeyDown},
	{ebiten.KeyArrowLeft, snake.KeyLeft},
	{ebiten.KeyA, snake.KeyLeft},
	{ebiten.KeyArrowRight, snake.KeyRight},
	{ebiten.KeyD, snake.KeyRight},
}

// Game adapts a session.Controller to the ebiten.Game interface. ebiten calls
// Update and Draw from one goroutine, so the controller needs no locking.
type Game struct {
	ctrl    *session.Controller
	step    *core.FixedStep
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	frame view.Frame
	bg    color.Color
}

// New constructs a Game ticking ctrl every tick.
func New(ctrl *session.Controller, tick time.Duration) *Game {
	return &Game{
		ctrl:    ctrl,
		step:    core.NewFixedStep(tick),
		painter: render.NewGridPainter(ctrl.Grid().Size),
		hud:     ui.NewHUD(),
		overlay: ui.NewOverlay(),
		frame:   ctrl.Frame(),
		bg:      color.RGBA{R: 24, G: 24, B: 28, A: 255},
	}
}

// Reset starts a fresh game and restarts the tick interval.
func (g *Game) Reset() {
	g.ctrl.Reset()
	g.step.Reset()
	g.frame = g.ctrl.Frame()
}

// Update handles per-frame input and advances the game on its fixed interval.
func (g *Game) Update() error {
	if runtime.GOOS != "js" {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			return ebiten.Termination
		}
	}

	if g.ctrl.GameOver() {
		if g.overlay.RestartPressed(g.frame) ||
			inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.Reset()
		}
		return nil
	}

	for _, s := range steering {
		if inpututil.IsKeyJustPressed(s.key) {
			g.ctrl.Key(s.dir)
		}
	}

	if g.step.ShouldStep() {
		g.ctrl.Step()
		g.frame = g.ctrl.Frame()
	}
	return nil
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)
	g.hud.Draw(screen, g.frame)
	g.painter.Blit(screen, g.frame, 0, ui.HUDHeight)
	g.overlay.Draw(screen, g.frame)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ui.ScreenSize(g.frame)
}
