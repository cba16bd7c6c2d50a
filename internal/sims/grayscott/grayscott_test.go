package grayscott

import "testing"

func testConfig(w, h int) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Seeds = 0
	cfg.Engine = "serial"
	return cfg
}

func TestFlatFieldIsFixedPoint(t *testing.T) {
	s := New(testConfig(10, 10))
	defer s.Close()
	s.Reset(1)

	s.Step()

	f := s.Field()
	for i := range f.A {
		if f.A[i] != 1 || f.B[i] != 0 {
			t.Fatalf("cell %d drifted from the rest state: A=%f B=%f", i, f.A[i], f.B[i])
		}
	}
}

func TestChannelsStayClamped(t *testing.T) {
	cfg := testConfig(32, 32)
	cfg.Seeds = 6
	cfg.Params.Dt = 1.4
	s := New(cfg)
	defer s.Close()
	s.Reset(7)

	for i := 0; i < 50; i++ {
		s.Step()
	}

	f := s.Field()
	for i := range f.A {
		if f.A[i] < 0 || f.A[i] > 1 || f.B[i] < 0 || f.B[i] > 1 {
			t.Fatalf("cell %d out of range: A=%f B=%f", i, f.A[i], f.B[i])
		}
	}
}

func TestInjectTargetsNextReadBuffer(t *testing.T) {
	s := New(testConfig(16, 16))
	defer s.Close()
	s.Reset(1)
	s.Step()

	s.Inject(8, 8)

	// The patch lands in the current field, the source of the next step.
	f := s.Field()
	i := f.Index(8, 8)
	if f.A[i] != patchA || f.B[i] != patchB {
		t.Fatalf("patch missing from the soon-to-be-read buffer: A=%f B=%f", f.A[i], f.B[i])
	}

	s.Step()

	// The reaction must have consumed the patch on the very next step: V was
	// saturated at the center, so it cannot have fallen back to zero.
	f = s.Field()
	if f.B[f.Index(8, 8)] == 0 {
		t.Fatal("injected patch did not feed the next step")
	}
}

func TestInjectedBorderCellsSurviveStep(t *testing.T) {
	s := New(testConfig(12, 12))
	defer s.Close()
	s.Reset(1)

	s.Inject(0, 0)
	s.Step()

	f := s.Field()
	for _, xy := range [][2]int{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {0, 2}} {
		i := f.Index(xy[0], xy[1])
		if f.A[i] != patchA || f.B[i] != patchB {
			t.Fatalf("border cell (%d,%d) lost its injected value: A=%f B=%f", xy[0], xy[1], f.A[i], f.B[i])
		}
	}
}

func TestBorderCellsFrozen(t *testing.T) {
	s := New(testConfig(10, 10))
	defer s.Close()
	s.Reset(1)

	s.Field().Stamp(0, 5, 0, 0.125, 0.5)

	for i := 0; i < 3; i++ {
		s.Step()
	}

	f := s.Field()
	i := f.Index(0, 5)
	if f.A[i] != 0.125 || f.B[i] != 0.5 {
		t.Fatalf("border cell changed: A=%f B=%f", f.A[i], f.B[i])
	}
}

func TestSerialAndPoolAgree(t *testing.T) {
	serialCfg := testConfig(32, 32)
	serialCfg.Seeds = 5
	poolCfg := serialCfg
	poolCfg.Engine = "pool"
	poolCfg.Workers = 3

	a := New(serialCfg)
	defer a.Close()
	b := New(poolCfg)
	defer b.Close()
	a.Reset(99)
	b.Reset(99)

	for i := 0; i < 10; i++ {
		a.Step()
		b.Step()
	}

	fa, fb := a.Field(), b.Field()
	for i := range fa.A {
		if fa.A[i] != fb.A[i] || fa.B[i] != fb.B[i] {
			t.Fatalf("cell %d differs between engines: serial A=%f B=%f, pool A=%f B=%f",
				i, fa.A[i], fa.B[i], fb.A[i], fb.B[i])
		}
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{
		"w":       "64",
		"h":       "48",
		"seeds":   "3",
		"engine":  "serial",
		"workers": "2",
		"f":       "0.03",
		"dt":      "1.2",
	})
	if c.Width != 64 || c.Height != 48 || c.Seeds != 3 {
		t.Fatalf("grid parsing: %+v", c)
	}
	if c.Engine != "serial" || c.Workers != 2 {
		t.Fatalf("engine parsing: %+v", c)
	}
	if c.Params.F != 0.03 || c.Params.Dt != 1.2 {
		t.Fatalf("param parsing: %+v", c.Params)
	}

	c = FromMap(map[string]string{"w": "bogus", "dt": "-1"})
	d := DefaultConfig()
	if c.Width != d.Width || c.Params.Dt != d.Params.Dt {
		t.Fatalf("invalid values should keep defaults: %+v", c)
	}
}
