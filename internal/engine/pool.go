package engine

import (
	"runtime"
	"sync"
)

// Pool dispatches rows across persistent worker goroutines. A sync.Cond
// barrier wakes every worker once per pass and the caller blocks until all
// assigned rows have been processed, so a pass never overlaps the next one.
// Rows are interleaved round-robin across workers to balance load.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	workers int

	step    int
	pending int
	y0, y1  int
	fn      RowFunc
	closed  bool
}

// NewPool starts a pool with the given worker count. Non-positive counts use
// one worker per CPU.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &Pool{workers: workers}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < workers; i++ {
		go p.loop(i)
	}
	return p
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

func (p *Pool) loop(index int) {
	lastStep := 0
	p.mu.Lock()
	for {
		for p.step == lastStep && !p.closed {
			p.cond.Wait()
		}
		if p.closed {
			p.mu.Unlock()
			return
		}
		lastStep = p.step
		y0, y1, fn := p.y0, p.y1, p.fn
		p.mu.Unlock()

		for y := y0 + index; y < y1; y += p.workers {
			fn(y)
		}

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.cond.Broadcast()
		}
	}
}

// Run executes fn over [y0, y1) and blocks until every row is done. It must
// not be called after Close, nor concurrently with itself.
func (p *Pool) Run(y0, y1 int, fn RowFunc) {
	p.mu.Lock()
	p.y0, p.y1, p.fn = y0, y1, fn
	p.pending = p.workers
	p.step++
	p.cond.Broadcast()
	for p.pending > 0 {
		p.cond.Wait()
	}
	p.fn = nil
	p.mu.Unlock()
}

// Close stops the worker goroutines. Safe to call more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
}
