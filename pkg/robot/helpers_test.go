package robot

import (
	"errors"
	"time"
)

// recorder is an Actuator that remembers every angle written to it.
type recorder struct {
	attached bool
	writes   []int
	fail     bool
}

func (r *recorder) Attach() error {
	r.attached = true
	return nil
}

func (r *recorder) Detach() error {
	r.attached = false
	return nil
}

func (r *recorder) Write(angle int) error {
	if r.fail {
		return errors.New("bus timeout")
	}
	r.writes = append(r.writes, angle)
	return nil
}

func newTestRobot(opts ...Option) (*Robot, [NumJoints]*recorder, *[]Sample) {
	var recs [NumJoints]*recorder
	var acts [NumJoints]Actuator
	for i := range recs {
		recs[i] = &recorder{}
		acts[i] = recs[i]
	}
	samples := &[]Sample{}
	opts = append([]Option{
		WithClock(NewFakeClock(time.Millisecond)),
		WithObserver(func(s Sample) { *samples = append(*samples, s) }),
	}, opts...)
	return New(acts, opts...), recs, samples
}
