package render

import (
	"image/color"

	"snake-grid/internal/view"
)

// Palette indices used by Rasterize.
const (
	CellEmpty uint8 = iota
	CellBody
	CellHead
	CellFood
)

// DefaultPalette colours the board: dark background, green snake, red food.
var DefaultPalette = []color.RGBA{
	CellEmpty: {R: 24, G: 24, B: 28, A: 255},
	CellBody:  {R: 60, G: 180, B: 100, A: 255},
	CellHead:  {R: 80, G: 220, B: 120, A: 255},
	CellFood:  {R: 230, G: 70, B: 70, A: 255},
}

// Rasterize writes one palette index per grid cell of f into dst, reallocating
// when dst is too small, and returns the grid side length with the buffer.
// Food is painted before the snake so a segment covering the food wins.
func Rasterize(f view.Frame, dst []uint8) (int, []uint8) {
	if f.CellSize <= 0 {
		return 0, dst[:0]
	}
	side := f.Width / f.CellSize
	total := side * side
	if cap(dst) < total {
		dst = make([]uint8, total)
	}
	dst = dst[:total]
	for i := range dst {
		dst[i] = CellEmpty
	}
	put := func(b view.Box, v uint8) {
		x, y := b.X/f.CellSize, b.Y/f.CellSize
		if x < 0 || y < 0 || x >= side || y >= side {
			return
		}
		dst[y*side+x] = v
	}
	put(f.Food, CellFood)
	for i := len(f.Segments) - 1; i >= 0; i-- {
		seg := f.Segments[i]
		v := CellBody
		if seg.Kind == view.KindHead {
			v = CellHead
		}
		put(seg, v)
	}
	return side, dst
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
