//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"fieldlab/internal/core"
)

// GridPainter uploads a sim's tone-mapped frame into a single reused image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit tone-maps the sim's current field and draws it scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, sim core.Sim, scale int) {
	sim.RGBA(gp.buf)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
