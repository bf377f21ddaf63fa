//go:build ebiten

package render

import (
	"image/color"

	"snake-grid/internal/view"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a rasterized frame into a grid-sized image and draws it
// scaled up to the board size.
type GridPainter struct {
	side    int
	img     *ebiten.Image
	cells   []uint8
	buf     []byte
	palette []color.RGBA
}

// NewGridPainter allocates a painter for a side×side board.
func NewGridPainter(side int) *GridPainter {
	if side <= 0 {
		side = 1
	}
	return &GridPainter{
		side:    side,
		img:     ebiten.NewImage(side, side),
		cells:   make([]uint8, side*side),
		buf:     make([]byte, 4*side*side),
		palette: DefaultPalette,
	}
}

// Blit draws f onto dst with the board's top-left corner at (offsetX, offsetY).
func (gp *GridPainter) Blit(dst *ebiten.Image, f view.Frame, offsetX, offsetY int) {
	side, cells := Rasterize(f, gp.cells)
	if side != gp.side {
		return
	}
	gp.cells = cells
	fillPaletteRGBA(gp.buf, gp.cells, gp.palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(f.CellSize), float64(f.CellSize))
	op.GeoM.Translate(float64(offsetX), float64(offsetY))
	dst.DrawImage(gp.img, op)
}
