package wave

import "testing"

func testConfig(w, h int) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Engine = "serial"
	return cfg
}

func TestImpulsePropagation(t *testing.T) {
	cfg := testConfig(11, 11)
	s := New(cfg)
	defer s.Close()
	s.Reset(0)

	// Single-cell impulse: height 1, previous height untouched.
	s.Field().StampA(5, 5, 0, 1)
	s.Step()

	f := s.Field()
	center := f.Index(5, 5)

	// laplacian at the impulse is -4, so the height term cancels exactly:
	// damping * (2*1 - 0 + (-4)*0.5) = 0.
	if f.A[center] != 0 {
		t.Fatalf("center height = %f, want 0", f.A[center])
	}
	if f.B[center] != 1 {
		t.Fatalf("center previous height = %f, want 1", f.B[center])
	}

	want := cfg.Params.Damping * cfg.Params.Strength
	for _, xy := range [][2]int{{4, 5}, {6, 5}, {5, 4}, {5, 6}} {
		got := f.A[f.Index(xy[0], xy[1])]
		if got != want {
			t.Fatalf("neighbor (%d,%d) height = %f, want %f", xy[0], xy[1], got, want)
		}
	}

	// Cells two away see nothing yet; the stencil only reaches one cell.
	if v := f.A[f.Index(3, 5)]; v != 0 {
		t.Fatalf("cell two away moved already: %f", v)
	}
}

func TestCornerCellFrozen(t *testing.T) {
	s := New(testConfig(10, 10))
	defer s.Close()
	s.Reset(0)

	s.Field().StampA(0, 0, 0, 0.75)
	for i := 0; i < 4; i++ {
		s.Step()
	}

	f := s.Field()
	if f.A[f.Index(0, 0)] != 0.75 {
		t.Fatalf("corner height changed: %f", f.A[f.Index(0, 0)])
	}
}

func TestDampedRingDecays(t *testing.T) {
	s := New(testConfig(64, 64))
	defer s.Close()
	s.Reset(0)
	s.Inject(32, 32)

	for i := 0; i < 200; i++ {
		s.Step()
	}

	f := s.Field()
	maxAbs := float32(0)
	for _, v := range f.A {
		if v < 0 {
			v = -v
		}
		if v > maxAbs {
			maxAbs = v
		}
	}
	if maxAbs >= 0.5 {
		t.Fatalf("amplitude did not decay: max |height| = %f", maxAbs)
	}
	if maxAbs == 0 {
		t.Fatal("field went completely silent; the ring should still be ringing")
	}
}

func TestInjectLeavesPreviousHeight(t *testing.T) {
	s := New(testConfig(16, 16))
	defer s.Close()
	s.Reset(0)

	f := s.Field()
	f.Fill(0, 0.25)
	s.Inject(8, 8)

	i := f.Index(8, 8)
	if f.A[i] != impulseAmp {
		t.Fatalf("impulse height = %f", f.A[i])
	}
	if f.B[i] != 0.25 {
		t.Fatalf("previous height overwritten: %f", f.B[i])
	}
}

func TestSerialAndPoolAgree(t *testing.T) {
	serialCfg := testConfig(48, 48)
	poolCfg := serialCfg
	poolCfg.Engine = "pool"
	poolCfg.Workers = 4

	a := New(serialCfg)
	defer a.Close()
	b := New(poolCfg)
	defer b.Close()
	a.Reset(0)
	b.Reset(0)
	a.Inject(20, 11)
	b.Inject(20, 11)

	for i := 0; i < 25; i++ {
		a.Step()
		b.Step()
	}

	fa, fb := a.Field(), b.Field()
	for i := range fa.A {
		if fa.A[i] != fb.A[i] || fa.B[i] != fb.B[i] {
			t.Fatalf("cell %d differs between engines", i)
		}
	}
}
