package grayscott

import (
	"image/color"

	"fieldlab/internal/render"
)

// vRamp maps the V concentration onto a cold-to-hot ramp. Brightness is
// modulated by U so depleted regions read darker.
var vRamp = render.Ramp{
	{Pos: 0.0, C: color.RGBA{R: 8, G: 12, B: 40, A: 255}},
	{Pos: 0.25, C: color.RGBA{R: 20, G: 60, B: 120, A: 255}},
	{Pos: 0.5, C: color.RGBA{R: 30, G: 160, B: 160, A: 255}},
	{Pos: 0.75, C: color.RGBA{R: 240, G: 220, B: 90, A: 255}},
	{Pos: 1.0, C: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
}

// RGBA tone-maps the current field into buf, which must hold 4 bytes per cell.
func (s *Sim) RGBA(buf []byte) {
	f := s.pair.Current()
	if len(buf) != len(f.A)*4 {
		return
	}
	for i := range f.A {
		c := vRamp.At(f.B[i])
		m := 0.3 + 0.7*f.A[i]
		base := i * 4
		buf[base+0] = uint8(float32(c.R) * m)
		buf[base+1] = uint8(float32(c.G) * m)
		buf[base+2] = uint8(float32(c.B) * m)
		buf[base+3] = 255
	}
}
