// Package gait is the catalog of named biped motions.
//
// Every gait maps a handful of human-meaningful parameters (step count,
// period, height, direction) onto either a robot.GaitSpec for the
// oscillator engine or a short sequence of linear moves between fixed
// poses. Channels 0 and 1 are the hips, 2 and 3 the feet.
package gait

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gwillem/biped/pkg/robot"
)

// Direction selects the mirrored variant of a gait. Forward and Left share
// the positive sign, Backward and Right the negative one.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
	Left     Direction = 1
	Right    Direction = -1
)

// ErrUnknownDirection is returned by ParseDirection.
var ErrUnknownDirection = errors.New("unknown direction")

// ParseDirection accepts forward, backward, left and right.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward", "fwd":
		return Forward, nil
	case "backward", "back", "bwd":
		return Backward, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Standard heights, in degrees.
const (
	Small  = 5
	Medium = 15
	Big    = 30
)

// Params are the inputs every gait is built from. Gaits ignore the fields
// they have no use for.
type Params struct {
	Steps  float64       `json:"steps" yaml:"steps"`
	Period time.Duration `json:"period" yaml:"period"`
	Height int           `json:"height" yaml:"height"`
	Dir    Direction     `json:"dir" yaml:"dir"`
	// Set marks the fields that keep their value even when zero.
	Set Field `json:"set,omitempty" yaml:"-"`
}

// Field flags a Params field that was given explicitly. Period and Dir
// have no meaningful zero and always fall back to the default.
type Field uint8

const (
	FieldSteps Field = 1 << iota
	FieldHeight
)

// SetSteps sets the step count, zero included.
func (p *Params) SetSteps(n float64) {
	p.Steps = n
	p.Set |= FieldSteps
}

// SetHeight sets the height, zero included.
func (p *Params) SetHeight(h int) {
	p.Height = h
	p.Set |= FieldHeight
}

// Mover is the part of the motion engine the gaits drive.
// *robot.Robot implements it.
type Mover interface {
	MoveServos(d time.Duration, target robot.Pose)
	Execute(spec robot.GaitSpec)
	Oscillate(spec robot.GaitSpec)
	Pause(d time.Duration)
	Home()
}

var _ Mover = (*robot.Robot)(nil)

// Step is one stage of a Program.
type Step interface {
	Run(m Mover)
	Duration() time.Duration
}

// Oscillation plays a gait spec. Unless Continuous is set the step count is
// split into whole cycles plus a final partial cycle.
type Oscillation struct {
	Spec       robot.GaitSpec
	Continuous bool
}

func (o Oscillation) Run(m Mover) {
	if o.Continuous {
		m.Oscillate(o.Spec)
		return
	}
	m.Execute(o.Spec)
}

func (o Oscillation) Duration() time.Duration {
	return o.Spec.Duration()
}

// Move is a linear move to Target taking Time.
type Move struct {
	Time   time.Duration
	Target robot.Pose
}

func (s Move) Run(m Mover) {
	m.MoveServos(s.Time, s.Target)
}

func (s Move) Duration() time.Duration {
	return s.Time
}

// Hold keeps the current pose for Time.
type Hold struct {
	Time time.Duration
}

func (s Hold) Run(m Mover) {
	m.Pause(s.Time)
}

func (s Hold) Duration() time.Duration {
	return s.Time
}

// Program is an ordered list of steps.
type Program []Step

// Run executes every step in order, blocking until the last one finishes.
func (p Program) Run(m Mover) {
	for _, s := range p {
		s.Run(m)
	}
}

// Duration is the nominal playing time of the whole program.
func (p Program) Duration() time.Duration {
	var d time.Duration
	for _, s := range p {
		d += s.Duration()
	}
	return d
}
