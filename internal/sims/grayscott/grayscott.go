package grayscott

import (
	"log"

	"fieldlab/internal/core"
	"fieldlab/internal/engine"
	pcore "fieldlab/pkg/core"
)

// Pointer injections stamp a 5×5 patch of half-depleted U and saturated V,
// which is enough to kick the reaction off in a flat field.
const (
	patchRadius = 2
	patchA      = 0.5
	patchB      = 1.0
)

// Sim runs the Gray-Scott reaction-diffusion system over a double-buffered
// float field. Channel A holds the U concentration and channel B holds V.
type Sim struct {
	cfg    Config
	pair   *core.FieldPair
	disp   engine.Dispatcher
	solver *engine.Solver
}

// New constructs a simulation from the given configuration.
func New(cfg Config) *Sim {
	s := &Sim{cfg: cfg, pair: core.NewFieldPair(cfg.Width, cfg.Height)}
	if cfg.Engine == "opencl" {
		p := cfg.Params
		solver, err := engine.NewGrayScottSolver(cfg.Width, cfg.Height, p.Da, p.Db, p.F, p.K, p.Dt)
		if err != nil {
			log.Fatalf("OpenCL initialization failed: %v", err)
		}
		log.Printf("OpenCL solver enabled (device: %s)", solver.DeviceName())
		s.solver = solver
		s.disp = engine.Serial{}
		return s
	}
	disp, err := engine.NewDispatcher(cfg.Engine, cfg.Workers)
	if err != nil {
		log.Fatalf("engine selection failed: %v", err)
	}
	s.disp = disp
	return s
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "grayscott" }

// Size returns the grid dimensions.
func (s *Sim) Size() core.Size { return s.pair.Size() }

// Field exposes the current (authoritative) field.
func (s *Sim) Field() *core.Field { return s.pair.Current() }

// Reset fills both buffers with the uniform rest state (U=1, V=0) and stamps
// a few seeded V patches into the current buffer so patterns develop.
func (s *Sim) Reset(seed int64) {
	s.pair.Reset()
	s.pair.Current().Fill(1, 0)
	s.pair.Next().Fill(1, 0)
	rng := pcore.NewRNG(seed)
	for i := 0; i < s.cfg.Seeds; i++ {
		x := rng.IntN(s.cfg.Width)
		y := rng.IntN(s.cfg.Height)
		s.pair.Current().Stamp(x, y, patchRadius, patchA, patchB)
	}
	if s.solver != nil {
		s.solver.Reset()
	}
}

// Step advances the simulation by one tick: the current buffer is read, the
// next buffer is written, and the roles flip.
func (s *Sim) Step() {
	if s.solver != nil {
		err := s.solver.Step(s.pair, 1)
		if err == nil {
			return
		}
		log.Printf("OpenCL step failed, falling back to CPU: %v", err)
		s.solver.Close()
		s.solver = nil
	}
	cur, next := s.pair.Current(), s.pair.Next()
	p := s.cfg.Params
	w := cur.W
	s.disp.Run(1, cur.H-1, func(y int) {
		base := y * w
		for x := 1; x < w-1; x++ {
			i := base + x
			a := cur.A[i]
			b := cur.B[i]
			lapA := cur.A[i-1] + cur.A[i+1] + cur.A[i-w] + cur.A[i+w] - 4*a
			lapB := cur.B[i-1] + cur.B[i+1] + cur.B[i-w] + cur.B[i+w] - 4*b
			abb := a * b * b
			next.A[i] = clamp01(a + (p.Da*lapA-abb+p.F*(1-a))*p.Dt)
			next.B[i] = clamp01(b + (p.Db*lapB+abb-(p.F+p.K)*b)*p.Dt)
		}
	})
	next.CopyBorderFrom(cur)
	s.pair.Advance()
}

// Inject stamps a perturbation patch centered at (x, y) into the current
// buffer, the one the next step reads as its source.
func (s *Sim) Inject(x, y int) {
	s.pair.Current().Stamp(x, y, patchRadius, patchA, patchB)
	if s.solver != nil {
		s.solver.MarkDirty()
	}
}

// Close releases the dispatcher workers and any device resources.
func (s *Sim) Close() {
	s.disp.Close()
	if s.solver != nil {
		s.solver.Close()
		s.solver = nil
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func init() {
	core.Register("grayscott", func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}
