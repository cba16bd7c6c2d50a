package core

// Field stores one W×H snapshot of a two-channel float32 grid. Channels are
// planar: A and B each hold W*H values in row-major order.
type Field struct {
	W, H int
	A    []float32
	B    []float32
}

// NewField allocates a field with the given dimensions.
func NewField(w, h int) *Field {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Field{W: w, H: h, A: make([]float32, w*h), B: make([]float32, w*h)}
}

// Index returns the linear slice index for coordinates (x, y).
func (f *Field) Index(x, y int) int { return y*f.W + x }

// Fill sets every cell of both channels to the given values.
func (f *Field) Fill(a, b float32) {
	for i := range f.A {
		f.A[i] = a
		f.B[i] = b
	}
}

// Stamp writes constant values into both channels over the square patch of
// the given radius centered at (cx, cy), clipped to the grid bounds.
func (f *Field) Stamp(cx, cy, radius int, a, b float32) {
	f.stamp(cx, cy, radius, a, b, true)
}

// StampA writes a constant value into channel A only, leaving channel B
// untouched. Used for wave impulses, where B carries the previous height.
func (f *Field) StampA(cx, cy, radius int, a float32) {
	f.stamp(cx, cy, radius, a, 0, false)
}

func (f *Field) stamp(cx, cy, radius int, a, b float32, writeB bool) {
	x0 := clampCoord(cx-radius, 0, f.W-1)
	x1 := clampCoord(cx+radius, 0, f.W-1)
	y0 := clampCoord(cy-radius, 0, f.H-1)
	y1 := clampCoord(cy+radius, 0, f.H-1)
	for y := y0; y <= y1; y++ {
		base := y * f.W
		for x := x0; x <= x1; x++ {
			f.A[base+x] = a
			if writeB {
				f.B[base+x] = b
			}
		}
	}
}

// CopyBorderFrom copies the outermost ring of cells from src into f for both
// channels. Stencil passes never write border cells, so carrying the ring
// forward keeps them at their last value across buffer swaps.
func (f *Field) CopyBorderFrom(src *Field) {
	if f.W != src.W || f.H != src.H {
		return
	}
	w, h := f.W, f.H
	top := 0
	bottom := (h - 1) * w
	for x := 0; x < w; x++ {
		f.A[top+x] = src.A[top+x]
		f.B[top+x] = src.B[top+x]
		f.A[bottom+x] = src.A[bottom+x]
		f.B[bottom+x] = src.B[bottom+x]
	}
	for y := 1; y < h-1; y++ {
		left := y * w
		right := left + w - 1
		f.A[left] = src.A[left]
		f.B[left] = src.B[left]
		f.A[right] = src.A[right]
		f.B[right] = src.B[right]
	}
}

func clampCoord(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
