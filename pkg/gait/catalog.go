package gait

import (
	"time"

	"github.com/gwillem/biped/pkg/robot"
)

var deg = robot.Deg

func spec(a, o, ph [4]float64, period time.Duration, steps float64) robot.GaitSpec {
	return robot.GaitSpec{
		Amplitude: a,
		Offset:    o,
		Phase:     ph,
		Period:    period,
		Steps:     steps,
	}
}

// WalkSpec: hips in phase, feet in phase and 90 degrees behind (forward) or
// ahead (backward) of the hips. The feet are offset a little to tiptoe.
func WalkSpec(steps float64, period time.Duration, dir Direction) robot.GaitSpec {
	d := float64(dir)
	return spec(
		[4]float64{30, 30, 20, 20},
		[4]float64{0, 0, 4, -4},
		[4]float64{0, 0, deg(d * -90), deg(d * -90)},
		period, steps)
}

// TurnSpec coordinates like walking, but with unequal hip amplitudes so the
// longer stride on one side bends the path into an arc.
func TurnSpec(steps float64, period time.Duration, dir Direction) robot.GaitSpec {
	a := [4]float64{30, 30, 20, 20}
	if dir == Left {
		a[robot.LeftHip], a[robot.RightHip] = 30, 10
	} else {
		a[robot.LeftHip], a[robot.RightHip] = 10, 30
	}
	return spec(
		a,
		[4]float64{0, 0, 4, -4},
		[4]float64{0, 0, deg(-90), deg(-90)},
		period, steps)
}

// UpDownSpec bobs vertically: feet 180 degrees apart, starting at an extreme.
func UpDownSpec(steps float64, period time.Duration, h int) robot.GaitSpec {
	fh := float64(h)
	return spec(
		[4]float64{0, 0, fh, fh},
		[4]float64{0, 0, fh, -fh},
		[4]float64{0, 0, deg(-90), deg(90)},
		period, steps)
}

// MoonwalkerSpec sends a travelling wave through the feet. Two mirrored
// feet 120 degrees apart reduce to a 60 degree phase difference.
func MoonwalkerSpec(steps float64, period time.Duration, h int, dir Direction) robot.GaitSpec {
	fh := float64(h)
	off := float64(h/2 + 2)
	phi := float64(-dir * 90)
	return spec(
		[4]float64{0, 0, fh, fh},
		[4]float64{0, 0, off, -off},
		[4]float64{0, 0, deg(phi), deg(-60*float64(dir) + phi)},
		period, steps)
}

// SwingSpec sways side to side with the feet in phase.
func SwingSpec(steps float64, period time.Duration, h int) robot.GaitSpec {
	fh := float64(h)
	off := float64(h / 2)
	return spec(
		[4]float64{0, 0, fh, fh},
		[4]float64{0, 0, off, -off},
		[4]float64{0, 0, 0, 0},
		period, steps)
}

// TiptoeSwingSpec sways without the heels touching the floor.
func TiptoeSwingSpec(steps float64, period time.Duration, h int) robot.GaitSpec {
	fh := float64(h)
	return spec(
		[4]float64{0, 0, fh, fh},
		[4]float64{0, 0, fh, -fh},
		[4]float64{0, 0, 0, 0},
		period, steps)
}

// CrusaitoSpec is a mixture of walk and moonwalker.
func CrusaitoSpec(steps float64, period time.Duration, h int, dir Direction) robot.GaitSpec {
	fh := float64(h)
	off := float64(h/2 + 4)
	return spec(
		[4]float64{25, 25, fh, fh},
		[4]float64{0, 0, off, -off},
		[4]float64{deg(90), deg(90), 0, deg(-60 * float64(dir))},
		period, steps)
}

// FlappingSpec moves the hips in opposition like flapping arms.
func FlappingSpec(steps float64, period time.Duration, h int, dir Direction) robot.GaitSpec {
	fh := float64(h)
	d := float64(dir)
	return spec(
		[4]float64{12, 12, fh, fh},
		[4]float64{0, 0, fh - 10, -fh + 10},
		[4]float64{0, deg(180), deg(-90 * d), deg(90 * d)},
		period, steps)
}

// MaxAscendingTurnHeight keeps the feet from hitting each other.
const MaxAscendingTurnHeight = 15

// AscendingTurnSpec jitters the hips while the feet climb up and down.
func AscendingTurnSpec(steps float64, period time.Duration, h int) robot.GaitSpec {
	h = min(h, MaxAscendingTurnHeight)
	fh := float64(h)
	return spec(
		[4]float64{fh, fh, fh, fh},
		[4]float64{0, 0, fh + 4, -fh + 4},
		[4]float64{deg(-90), deg(90), deg(-90), deg(90)},
		period, steps)
}

// MaxJitterHeight keeps the feet from hitting each other.
const MaxJitterHeight = 25

// JitterSpec shakes the hips in opposition. It is meant to be played as a
// single continuous pass.
func JitterSpec(steps float64, period time.Duration, h int) robot.GaitSpec {
	h = min(h, MaxJitterHeight)
	fh := float64(h)
	return spec(
		[4]float64{fh, fh, 0, 0},
		[4]float64{0, 0, 0, 0},
		[4]float64{deg(-90), deg(90), 0, 0},
		period, steps)
}

// Catalog drives a Mover through the named gaits. Every call blocks until
// the motion has finished.
type Catalog struct {
	m Mover
}

// New returns a catalog bound to m.
func New(m Mover) *Catalog {
	return &Catalog{m: m}
}

func (c *Catalog) Walk(steps float64, period time.Duration, dir Direction) {
	c.m.Execute(WalkSpec(steps, period, dir))
}

func (c *Catalog) Turn(steps float64, period time.Duration, dir Direction) {
	c.m.Execute(TurnSpec(steps, period, dir))
}

func (c *Catalog) UpDown(steps float64, period time.Duration, h int) {
	c.m.Execute(UpDownSpec(steps, period, h))
}

func (c *Catalog) Moonwalker(steps float64, period time.Duration, h int, dir Direction) {
	c.m.Execute(MoonwalkerSpec(steps, period, h, dir))
}

func (c *Catalog) Swing(steps float64, period time.Duration, h int) {
	c.m.Execute(SwingSpec(steps, period, h))
}

func (c *Catalog) TiptoeSwing(steps float64, period time.Duration, h int) {
	c.m.Execute(TiptoeSwingSpec(steps, period, h))
}

func (c *Catalog) Crusaito(steps float64, period time.Duration, h int, dir Direction) {
	c.m.Execute(CrusaitoSpec(steps, period, h, dir))
}

func (c *Catalog) Flapping(steps float64, period time.Duration, h int, dir Direction) {
	c.m.Execute(FlappingSpec(steps, period, h, dir))
}

func (c *Catalog) AscendingTurn(steps float64, period time.Duration, h int) {
	c.m.Execute(AscendingTurnSpec(steps, period, h))
}

// Jitter bypasses the cycle split and oscillates in one pass.
func (c *Catalog) Jitter(steps float64, period time.Duration, h int) {
	c.m.Oscillate(JitterSpec(steps, period, h))
}

func (c *Catalog) Jump(steps float64, period time.Duration) {
	JumpProgram(steps, period).Run(c.m)
}

func (c *Catalog) ShakeLeg(steps int, period time.Duration, dir Direction) {
	ShakeLegProgram(steps, period, dir).Run(c.m)
}

func (c *Catalog) Bend(steps int, period time.Duration, dir Direction) {
	BendProgram(steps, period, dir).Run(c.m)
}

// Home returns to the neutral pose and releases the joints.
func (c *Catalog) Home() {
	c.m.Home()
}
