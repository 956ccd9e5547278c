package render

import (
	"image/color"
	"testing"
)

func TestVitalityPaletteEndpoints(t *testing.T) {
	pal := VitalityPalette(color.Black, color.White)
	if len(pal) != 256 {
		t.Fatalf("palette has %d entries", len(pal))
	}
	if pal[0] != (color.RGBA{0, 0, 0, 255}) || pal[255] != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("endpoints %v %v", pal[0], pal[255])
	}
	for i := 1; i < len(pal); i++ {
		if pal[i].R < pal[i-1].R {
			t.Fatalf("palette not monotonic at %d", i)
		}
	}
}

func TestFillPaletteRGBA(t *testing.T) {
	pal := []color.RGBA{{0, 0, 0, 255}, {9, 8, 7, 6}}
	buf := make([]byte, 12)
	fillPaletteRGBA(buf, []uint8{0, 1, 200}, pal)
	want := []byte{0, 0, 0, 255, 9, 8, 7, 6, 9, 8, 7, 6}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf[%d]=%d want %d", i, buf[i], want[i])
		}
	}
	fillPaletteRGBA(buf, []uint8{1, 1, 1}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("empty palette should clear, buf[%d]=%d", i, b)
		}
	}
}
