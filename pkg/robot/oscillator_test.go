package robot

import (
	"math"
	"testing"
	"time"
)

func TestOscillator_Value(t *testing.T) {
	o := Oscillator{Amplitude: 20, Offset: 4, Phase: Deg(-90), Period: time.Second}

	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{0, -16},
		{250 * time.Millisecond, 4},
		{500 * time.Millisecond, 24},
		{750 * time.Millisecond, 4},
		{time.Second, -16},
	}

	for _, tt := range tests {
		got := o.Value(tt.elapsed)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Value(%v) = %f, want %f", tt.elapsed, got, tt.want)
		}
	}

	if got := o.Angle(500 * time.Millisecond); got != 114 {
		t.Errorf("Angle(500ms) = %d, want 114", got)
	}
}

func TestOscillator_ZeroPeriod(t *testing.T) {
	o := Oscillator{Amplitude: 10, Phase: Deg(90)}
	if got := o.Value(123 * time.Millisecond); math.Abs(got-10) > 1e-9 {
		t.Errorf("Value with zero period = %f, want 10", got)
	}
}

func TestGaitSpec_Split(t *testing.T) {
	tests := []struct {
		steps    float64
		cycles   int
		fraction float64
	}{
		{0, 0, 0},
		{1, 1, 0},
		{2.5, 2, 0.5},
		{0.25, 0, 0.25},
		{-1, 0, 0},
	}

	for _, tt := range tests {
		c, f := GaitSpec{Steps: tt.steps}.Split()
		if c != tt.cycles || math.Abs(f-tt.fraction) > 1e-9 {
			t.Errorf("Split(%v) = %d, %v; want %d, %v", tt.steps, c, f, tt.cycles, tt.fraction)
		}
	}
}

func TestFakeClock(t *testing.T) {
	c := NewFakeClock(0)
	if c.Now() != 0 || c.Now() != time.Millisecond {
		t.Error("zero step should default to one millisecond")
	}
	c.SleepUntil(time.Second)
	if c.Elapsed() != time.Second {
		t.Errorf("Elapsed() = %v, want 1s", c.Elapsed())
	}
	c.SleepUntil(time.Millisecond)
	if c.Elapsed() != time.Second {
		t.Error("SleepUntil must never move time backwards")
	}
}
