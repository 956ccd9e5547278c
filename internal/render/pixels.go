package render

import "image/color"

// VitalityPalette returns 256 shades from dead to fully alive, indexed by the
// 0..255 value a sim exposes through Cells.
func VitalityPalette(dead, alive color.Color) []color.RGBA {
	r0, g0, b0, a0 := dead.RGBA()
	r1, g1, b1, a1 := alive.RGBA()
	lerp := func(from, to uint32, i int) uint8 {
		f, t := int(from>>8), int(to>>8)
		return uint8(f + (t-f)*i/255)
	}
	pal := make([]color.RGBA, 256)
	for i := range pal {
		pal[i] = color.RGBA{
			R: lerp(r0, r1, i),
			G: lerp(g0, g1, i),
			B: lerp(b0, b1, i),
			A: lerp(a0, a1, i),
		}
	}
	return pal
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
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
