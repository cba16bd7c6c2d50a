package engine

import "fmt"

// RowFunc computes one row of a stencil pass. Rows are independent: a row's
// update reads only the source buffer, so invocation order never matters.
type RowFunc func(y int)

// Dispatcher maps a RowFunc over the half-open row range [y0, y1).
// Implementations may run rows in any order and on any number of goroutines,
// but Run must not return before every row has been processed.
type Dispatcher interface {
	Run(y0, y1 int, fn RowFunc)
	Close()
}

// Serial runs rows inline on the calling goroutine. It is the reference
// dispatcher used by tests.
type Serial struct{}

// Run invokes fn for each row in [y0, y1).
func (Serial) Run(y0, y1 int, fn RowFunc) {
	for y := y0; y < y1; y++ {
		fn(y)
	}
}

// Close is a no-op; Serial holds no resources.
func (Serial) Close() {}

// NewDispatcher constructs the named CPU dispatcher. The "opencl" engine is
// not a Dispatcher; sims wire it through a Solver instead.
func NewDispatcher(kind string, workers int) (Dispatcher, error) {
	switch kind {
	case "", "serial":
		return Serial{}, nil
	case "pool":
		return NewPool(workers), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", kind)
	}
}
