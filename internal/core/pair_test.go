package core

import "testing"

func TestCurrentIndexAlternates(t *testing.T) {
	pair := NewFieldPair(4, 4)
	prev := -1
	for tick := 0; tick < 10; tick++ {
		if pair.Tick() != tick {
			t.Fatalf("tick %d: Tick() = %d", tick, pair.Tick())
		}
		idx := pair.CurrentIndex()
		if idx != tick%2 {
			t.Fatalf("tick %d: CurrentIndex() = %d, want %d", tick, idx, tick%2)
		}
		if idx == prev {
			t.Fatalf("tick %d: index %d repeated", tick, idx)
		}
		prev = idx
		pair.Advance()
	}
}

func TestCurrentAndNextAreDistinct(t *testing.T) {
	pair := NewFieldPair(4, 4)
	for tick := 0; tick < 4; tick++ {
		if pair.Current() == pair.Next() {
			t.Fatalf("tick %d: current and next point at the same field", tick)
		}
		pair.Advance()
	}
}

func TestSwapRoles(t *testing.T) {
	pair := NewFieldPair(4, 4)
	written := pair.Next()
	pair.Advance()
	if pair.Current() != written {
		t.Fatal("the field written by a step did not become current after the flip")
	}
}

func TestPairReset(t *testing.T) {
	pair := NewFieldPair(4, 4)
	pair.Current().Fill(1, 2)
	pair.Advance()
	pair.Advance()
	pair.Advance()

	pair.Reset()
	if pair.Tick() != 0 {
		t.Fatalf("Tick() = %d after reset", pair.Tick())
	}
	for _, f := range []*Field{pair.Current(), pair.Next()} {
		for i := range f.A {
			if f.A[i] != 0 || f.B[i] != 0 {
				t.Fatalf("cell %d not zeroed after reset: A=%f B=%f", i, f.A[i], f.B[i])
			}
		}
	}
}
