package wave

import (
	"log"

	"fieldlab/internal/core"
	"fieldlab/internal/engine"
)

// Pointer injections raise a 5×5 plateau of height 1 while leaving the
// previous-height channel untouched, so the impulse starts with velocity.
const (
	impulseRadius = 2
	impulseAmp    = 1.0
)

// Sim runs a damped finite-difference wave propagation over a double-buffered
// float field. Channel A holds the height and channel B the previous height,
// which stands in for velocity.
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
		solver, err := engine.NewWaveSolver(cfg.Width, cfg.Height, cfg.Params.Damping, cfg.Params.Strength)
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
func (s *Sim) Name() string { return "wave" }

// Size returns the grid dimensions.
func (s *Sim) Size() core.Size { return s.pair.Size() }

// Field exposes the current (authoritative) field.
func (s *Sim) Field() *core.Field { return s.pair.Current() }

// Reset restores the flat, silent field.
func (s *Sim) Reset(seed int64) {
	s.pair.Reset()
	if s.solver != nil {
		s.solver.Reset()
	}
}

// Step advances the simulation by one tick. There is no clamping: under
// extreme constants the field may diverge, which is accepted behavior.
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
	damping := s.cfg.Params.Damping
	strength := s.cfg.Params.Strength
	w := cur.W
	s.disp.Run(1, cur.H-1, func(y int) {
		base := y * w
		for x := 1; x < w-1; x++ {
			i := base + x
			a := cur.A[i]
			laplacian := cur.A[i-1] + cur.A[i+1] + cur.A[i-w] + cur.A[i+w] - 4*a
			next.A[i] = damping * (2*a - cur.B[i] + laplacian*strength)
			next.B[i] = a
		}
	})
	next.CopyBorderFrom(cur)
	s.pair.Advance()
}

// Inject stamps a height impulse centered at (x, y) into the current buffer,
// the one the next step reads as its source.
func (s *Sim) Inject(x, y int) {
	s.pair.Current().StampA(x, y, impulseRadius, impulseAmp)
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

func init() {
	core.Register("wave", func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}
