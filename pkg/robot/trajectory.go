package robot

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Tick is the update interval of linear interpolation.
const Tick = 10 * time.Millisecond

// Resolution is the granularity of the engine's time source. Oscillation
// refreshes at most once per Resolution.
const Resolution = time.Millisecond

// HomeDuration is how long Home takes to reach the neutral pose.
const HomeDuration = 500 * time.Millisecond

// MoveServos moves all channels from their current positions to target,
// in lock-step, over duration d. Durations up to one Tick jump straight to
// the target. Longer moves advance once per Tick on absolute deadlines, so
// ticks neither drift nor skip. On return every channel is exactly at target.
func (r *Robot) MoveServos(d time.Duration, target Pose) {
	r.Attach()

	start := r.Positions()
	r.log.WithFields(logrus.Fields{
		"from":     start,
		"to":       target,
		"duration": d,
	}).Debug("move")

	if d <= Tick {
		r.command(target, r.clock.Now())
		return
	}

	t0 := r.clock.Now()
	end := t0 + d
	var pose Pose
	for i := 1; ; i++ {
		now := r.clock.Now()
		if now >= end {
			break
		}
		// Fraction of the way to target after tick i, capped so durations
		// that are not a multiple of Tick never overshoot.
		frac := math.Min(float64(time.Duration(i)*Tick)/float64(d), 1)
		for j := range pose {
			delta := float64(target[j] - start[j])
			pose[j] = int(math.Round(float64(start[j]) + frac*delta))
		}
		r.command(pose, now)
		r.clock.SleepUntil(t0 + time.Duration(i)*Tick)
	}

	if r.Positions() != target {
		r.command(target, r.clock.Now())
	}
}

// Oscillate drives all channels from the spec's oscillators in a single
// continuous pass lasting Period*Steps. It does not split the pass into
// cycles.
func (r *Robot) Oscillate(spec GaitSpec) {
	r.Attach()
	r.oscillate(spec.Oscillators(), spec.Duration())
}

// Execute plays spec for Steps periods: floor(Steps) full-period passes
// followed by one pass covering the remaining fraction of a period. Each
// pass restarts at phase zero, so a fractional step count ends the motion
// at a chosen point of the cycle without distorting completed cycles.
func (r *Robot) Execute(spec GaitSpec) {
	r.Attach()

	osc := spec.Oscillators()
	cycles, fraction := spec.Split()
	r.log.WithFields(logrus.Fields{
		"period":   spec.Period,
		"cycles":   cycles,
		"fraction": fraction,
	}).Debug("execute")

	for i := 0; i < cycles; i++ {
		r.oscillate(osc, spec.Period)
	}
	r.oscillate(osc, time.Duration(float64(spec.Period)*fraction))
}

// oscillate refreshes every channel as fast as the clock resolution allows
// until duration has elapsed. A non-positive duration is a no-op.
func (r *Robot) oscillate(osc [NumJoints]Oscillator, duration time.Duration) {
	if duration <= 0 {
		return
	}

	ref := r.clock.Now()
	var pose Pose
	for now := ref; now <= ref+duration; now = r.clock.Now() {
		elapsed := now - ref
		for j := range pose {
			pose[j] = osc[j].Angle(elapsed)
		}
		r.command(pose, now)
		r.clock.SleepUntil(now + Resolution)
	}
}

// Pause holds the current pose for d.
func (r *Robot) Pause(d time.Duration) {
	if d <= 0 {
		return
	}
	r.clock.SleepUntil(r.clock.Now() + d)
}

// Home moves to the neutral pose in half a second and then releases the
// joints.
func (r *Robot) Home() {
	r.MoveServos(HomeDuration, Neutral)
	r.Detach()
}
