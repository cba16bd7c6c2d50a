//go:build !opencl

package engine

import (
	"errors"

	"fieldlab/internal/core"
)

// Solver is the placeholder used when OpenCL support is compiled out.
type Solver struct{}

var errNoOpenCL = errors.New("OpenCL support is not enabled; rebuild with -tags opencl")

// NewGrayScottSolver reports that OpenCL support is unavailable.
func NewGrayScottSolver(width, height int, da, db, f, k, dt float32) (*Solver, error) {
	return nil, errNoOpenCL
}

// NewWaveSolver reports that OpenCL support is unavailable.
func NewWaveSolver(width, height int, damping, strength float32) (*Solver, error) {
	return nil, errNoOpenCL
}

func (s *Solver) Step(pair *core.FieldPair, steps int) error { return errNoOpenCL }

func (s *Solver) MarkDirty() {}

func (s *Solver) Reset() {}

func (s *Solver) DeviceName() string { return "" }

func (s *Solver) Close() {}
