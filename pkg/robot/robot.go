package robot

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gwillem/biped/internal/log"
)

// Sample is one synchronized update of all channels.
type Sample struct {
	At   time.Duration
	Pose Pose
}

// Robot owns the four channels of one biped and drives them as a group.
// It is not safe for concurrent use: motion calls block until the motion
// has finished and must not overlap.
type Robot struct {
	channels [NumJoints]*Channel
	flusher  Flusher
	clock    Clock
	observer func(Sample)

	store     TrimStore
	loadTrims bool

	writeErrors atomic.Uint64
	log         *logrus.Entry
}

// Option configures a Robot.
type Option func(*Robot)

// WithClock sets the time source. The default is a SystemClock.
func WithClock(c Clock) Option {
	return func(r *Robot) { r.clock = c }
}

// WithObserver registers a callback that receives every commanded pose.
func WithObserver(fn func(Sample)) Option {
	return func(r *Robot) { r.observer = fn }
}

// WithFlusher registers a backend that must be flushed after each tick.
func WithFlusher(f Flusher) Option {
	return func(r *Robot) { r.flusher = f }
}

// WithTrimStore sets the calibration store. When load is true, Init reads
// the trims from the store.
func WithTrimStore(s TrimStore, load bool) Option {
	return func(r *Robot) {
		r.store = s
		r.loadTrims = load
	}
}

// New creates a robot over the given actuators, indexed by Joint.
func New(actuators [NumJoints]Actuator, opts ...Option) *Robot {
	r := &Robot{
		log: log.With(log.Fields{"component": "robot"}),
	}
	for i, a := range actuators {
		r.channels[i] = NewChannel(a)
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.clock == nil {
		r.clock = NewSystemClock()
	}
	return r
}

// Init attaches all channels, loads the trims if requested and resets the
// recorded positions to neutral. The joints are not moved.
func (r *Robot) Init() error {
	r.Attach()

	if r.store != nil && r.loadTrims {
		trims, err := LoadTrims(r.store)
		if err != nil {
			return fmt.Errorf("load trims: %w", err)
		}
		r.SetTrims(trims)
		r.log.WithField("trims", trims).Debug("trims loaded")
	}

	for _, c := range r.channels {
		c.position = CenterAngle
	}
	return nil
}

// Clock returns the robot's time source.
func (r *Robot) Clock() Clock {
	return r.clock
}

// Channel returns the channel for a joint.
func (r *Robot) Channel(j Joint) *Channel {
	return r.channels[j]
}

// Attach engages drive power on all channels.
func (r *Robot) Attach() {
	for j, c := range r.channels {
		if err := c.Attach(); err != nil {
			r.actuatorError("attach", Joint(j), err)
		}
	}
}

// Detach releases drive power on all channels.
func (r *Robot) Detach() {
	for j, c := range r.channels {
		if err := c.Detach(); err != nil {
			r.actuatorError("detach", Joint(j), err)
		}
	}
}

// Attached reports whether every channel is holding position.
func (r *Robot) Attached() bool {
	for _, c := range r.channels {
		if !c.Attached() {
			return false
		}
	}
	return true
}

// SetTrims sets the calibration offset of every channel without moving it.
func (r *Robot) SetTrims(t Trims) {
	for j, c := range r.channels {
		c.SetTrim(t[j])
	}
}

// Trims returns the calibration offsets of all channels.
func (r *Robot) Trims() Trims {
	var t Trims
	for j, c := range r.channels {
		t[j] = c.Trim()
	}
	return t
}

// SaveTrims writes the current trims to the calibration store.
func (r *Robot) SaveTrims() error {
	if r.store == nil {
		return errors.New("no trim store configured")
	}
	return SaveTrims(r.store, r.Trims())
}

// Positions returns the last commanded angle of every channel.
func (r *Robot) Positions() Pose {
	var p Pose
	for j, c := range r.channels {
		p[j] = c.Position()
	}
	return p
}

// WriteErrors returns how many actuator operations have failed so far.
func (r *Robot) WriteErrors() uint64 {
	return r.writeErrors.Load()
}

// command writes a full pose in one step and notifies the observer.
func (r *Robot) command(p Pose, at time.Duration) {
	for j, c := range r.channels {
		if err := c.Command(p[j]); err != nil {
			r.actuatorError("write", Joint(j), err)
		}
	}
	if r.flusher != nil {
		if err := r.flusher.Flush(); err != nil {
			r.actuatorError("flush", -1, err)
		}
	}
	if r.observer != nil {
		r.observer(Sample{At: at, Pose: p})
	}
}

// actuatorError records a hardware failure. Motion carries on regardless;
// only the first failure and every 100th after it are logged.
func (r *Robot) actuatorError(op string, j Joint, err error) {
	n := r.writeErrors.Add(1)
	if n%100 == 1 {
		r.log.WithFields(logrus.Fields{
			"op":     op,
			"joint":  j.String(),
			"errors": n,
		}).WithError(err).Warn("actuator error")
	}
}
