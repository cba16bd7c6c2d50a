package render

import (
	"image/color"
	"testing"
)

var testRamp = Ramp{
	{Pos: 0.0, C: color.RGBA{R: 0, G: 0, B: 100, A: 255}},
	{Pos: 0.5, C: color.RGBA{R: 100, G: 50, B: 0, A: 255}},
	{Pos: 1.0, C: color.RGBA{R: 200, G: 250, B: 200, A: 255}},
}

func TestRampEndpoints(t *testing.T) {
	if got := testRamp.At(0); got != testRamp[0].C {
		t.Fatalf("At(0) = %v", got)
	}
	if got := testRamp.At(1); got != testRamp[2].C {
		t.Fatalf("At(1) = %v", got)
	}
}

func TestRampClampsOutOfRange(t *testing.T) {
	if got := testRamp.At(-3); got != testRamp[0].C {
		t.Fatalf("At(-3) = %v", got)
	}
	if got := testRamp.At(7); got != testRamp[2].C {
		t.Fatalf("At(7) = %v", got)
	}
}

func TestRampMidpoints(t *testing.T) {
	got := testRamp.At(0.25)
	want := color.RGBA{R: 50, G: 25, B: 50, A: 255}
	if got != want {
		t.Fatalf("At(0.25) = %v, want %v", got, want)
	}

	got = testRamp.At(0.75)
	want = color.RGBA{R: 150, G: 150, B: 100, A: 255}
	if got != want {
		t.Fatalf("At(0.75) = %v, want %v", got, want)
	}
}

func TestRampStopsAreExact(t *testing.T) {
	if got := testRamp.At(0.5); got != testRamp[1].C {
		t.Fatalf("At(0.5) = %v, want %v", got, testRamp[1].C)
	}
}

func TestEmptyRamp(t *testing.T) {
	var r Ramp
	if got := r.At(0.5); got != (color.RGBA{A: 255}) {
		t.Fatalf("empty ramp At = %v", got)
	}
}
