package engine

import (
	"sync/atomic"
	"testing"
)

func TestSerialCoversRange(t *testing.T) {
	var got []int
	Serial{}.Run(2, 7, func(y int) { got = append(got, y) })
	if len(got) != 5 {
		t.Fatalf("ran %d rows, want 5", len(got))
	}
	for i, y := range got {
		if y != i+2 {
			t.Fatalf("row %d out of order: got %d", i, y)
		}
	}
}

func TestPoolMatchesSerial(t *testing.T) {
	const rows, cols = 64, 33
	src := make([]float32, rows*cols)
	for i := range src {
		src[i] = float32(i%17) * 0.25
	}
	run := func(d Dispatcher) []float32 {
		dst := make([]float32, len(src))
		d.Run(1, rows-1, func(y int) {
			for x := 1; x < cols-1; x++ {
				i := y*cols + x
				dst[i] = src[i-1] + src[i+1] + src[i-cols] + src[i+cols] - 4*src[i]
			}
		})
		return dst
	}
	want := run(Serial{})

	for _, workers := range []int{1, 2, 3, 8, 100} {
		p := NewPool(workers)
		got := run(p)
		p.Close()
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("workers=%d cell %d: got %f want %f", workers, i, got[i], want[i])
			}
		}
	}
}

func TestPoolRunsEachRowOnce(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	counts := make([]int32, 50)
	p.Run(0, len(counts), func(y int) { atomic.AddInt32(&counts[y], 1) })
	for y, c := range counts {
		if c != 1 {
			t.Fatalf("row %d ran %d times", y, c)
		}
	}
}

func TestPoolReuse(t *testing.T) {
	p := NewPool(3)
	defer p.Close()

	var total int64
	for pass := 0; pass < 10; pass++ {
		p.Run(0, 20, func(y int) { atomic.AddInt64(&total, int64(y)) })
	}
	if total != 10*190 {
		t.Fatalf("total = %d, want %d", total, 10*190)
	}
}

func TestPoolEmptyRange(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	ran := int32(0)
	p.Run(5, 5, func(y int) { atomic.AddInt32(&ran, 1) })
	if ran != 0 {
		t.Fatalf("empty range ran %d rows", ran)
	}
}

func TestNewDispatcher(t *testing.T) {
	d, err := NewDispatcher("serial", 0)
	if err != nil {
		t.Fatalf("serial: %v", err)
	}
	if _, ok := d.(Serial); !ok {
		t.Fatalf("serial dispatcher has type %T", d)
	}

	d, err = NewDispatcher("pool", 2)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	p, ok := d.(*Pool)
	if !ok {
		t.Fatalf("pool dispatcher has type %T", d)
	}
	if p.Workers() != 2 {
		t.Fatalf("pool workers = %d, want 2", p.Workers())
	}
	p.Close()

	if _, err := NewDispatcher("quantum", 0); err == nil {
		t.Fatal("unknown engine did not error")
	}
}
