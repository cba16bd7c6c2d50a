package wave

import (
	"image/color"

	"fieldlab/internal/render"
)

// ampGain amplifies the height before tone mapping so small ripples stay
// visible.
const ampGain = 5

// heightRamp spans [-1, 1] remapped to [0, 1]: troughs shade toward deep
// blue, the rest level is near black, crests toward white-cyan.
var heightRamp = render.Ramp{
	{Pos: 0.0, C: color.RGBA{R: 10, G: 40, B: 160, A: 255}},
	{Pos: 0.5, C: color.RGBA{R: 8, G: 10, B: 24, A: 255}},
	{Pos: 1.0, C: color.RGBA{R: 210, G: 240, B: 255, A: 255}},
}

// RGBA tone-maps the current field into buf, which must hold 4 bytes per cell.
func (s *Sim) RGBA(buf []byte) {
	f := s.pair.Current()
	if len(buf) != len(f.A)*4 {
		return
	}
	for i := range f.A {
		amp := f.A[i] * ampGain
		if amp > 1 {
			amp = 1
		} else if amp < -1 {
			amp = -1
		}
		c := heightRamp.At((amp + 1) * 0.5)
		base := i * 4
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = 255
	}
}
