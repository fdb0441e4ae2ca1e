package robot

import (
	"math"
	"time"
)

// Oscillator produces a sinusoidal joint trajectory around the neutral angle.
type Oscillator struct {
	Amplitude float64       // degrees
	Offset    float64       // degrees, relative to CenterAngle
	Phase     float64       // radians
	Period    time.Duration // one full cycle
}

// Value returns offset + amplitude*sin(2*pi*elapsed/period + phase).
// A non-positive period freezes the oscillator at its initial phase.
func (o Oscillator) Value(elapsed time.Duration) float64 {
	arg := o.Phase
	if o.Period > 0 {
		arg += 2 * math.Pi * float64(elapsed) / float64(o.Period)
	}
	return o.Offset + o.Amplitude*math.Sin(arg)
}

// Angle returns the absolute joint angle at elapsed, rounded to a whole degree.
func (o Oscillator) Angle(elapsed time.Duration) int {
	return int(math.Round(CenterAngle + o.Value(elapsed)))
}

// GaitSpec holds the per-channel harmonic parameters of a periodic gait and
// the number of periods to play. Steps may be fractional.
type GaitSpec struct {
	Amplitude [NumJoints]float64
	Offset    [NumJoints]float64
	Phase     [NumJoints]float64 // radians
	Period    time.Duration
	Steps     float64
}

// Oscillators expands the spec into one oscillator per channel.
func (s GaitSpec) Oscillators() [NumJoints]Oscillator {
	var osc [NumJoints]Oscillator
	for i := range osc {
		osc[i] = Oscillator{
			Amplitude: s.Amplitude[i],
			Offset:    s.Offset[i],
			Phase:     s.Phase[i],
			Period:    s.Period,
		}
	}
	return osc
}

// Duration returns the total playing time, Period*Steps.
func (s GaitSpec) Duration() time.Duration {
	return time.Duration(float64(s.Period) * s.Steps)
}

// Split returns the number of full cycles and the leftover fraction of steps.
func (s GaitSpec) Split() (cycles int, fraction float64) {
	cycles = int(math.Floor(s.Steps))
	if cycles < 0 {
		cycles = 0
	}
	fraction = s.Steps - float64(cycles)
	if fraction < 0 {
		fraction = 0
	}
	return cycles, fraction
}

// Deg converts degrees to radians.
func Deg(deg float64) float64 {
	return deg * math.Pi / 180
}
