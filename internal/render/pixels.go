package render

import "image/color"

// Stop anchors a color at a position along a [0, 1] ramp.
type Stop struct {
	Pos float32
	C   color.RGBA
}

// Ramp is a deterministic piecewise-linear color ramp. Stops must be sorted
// by ascending position.
type Ramp []Stop

// At evaluates the ramp at t, clamping t into the covered range.
func (r Ramp) At(t float32) color.RGBA {
	if len(r) == 0 {
		return color.RGBA{A: 255}
	}
	if t <= r[0].Pos {
		return r[0].C
	}
	if t >= r[len(r)-1].Pos {
		return r[len(r)-1].C
	}
	for i := 1; i < len(r); i++ {
		if t > r[i].Pos {
			continue
		}
		lo, hi := r[i-1], r[i]
		span := hi.Pos - lo.Pos
		if span <= 0 {
			return hi.C
		}
		return lerpRGBA(lo.C, hi.C, (t-lo.Pos)/span)
	}
	return r[len(r)-1].C
}

func lerpRGBA(a, b color.RGBA, t float32) color.RGBA {
	return color.RGBA{
		R: lerp8(a.R, b.R, t),
		G: lerp8(a.G, b.G, t),
		B: lerp8(a.B, b.B, t),
		A: lerp8(a.A, b.A, t),
	}
}

func lerp8(a, b uint8, t float32) uint8 {
	return uint8(float32(a) + (float32(b)-float32(a))*t + 0.5)
}
