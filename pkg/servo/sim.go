package servo

import (
	"sync"
	"sync/atomic"

	"github.com/gwillem/biped/pkg/robot"
)

// Sim is an in-memory backend. It remembers the last angle written to each
// joint and counts flushes, which is enough to run every motion without
// hardware.
type Sim struct {
	joints  [robot.NumJoints]*SimJoint
	flushes atomic.Uint64
}

func NewSim() *Sim {
	s := &Sim{}
	for j := range s.joints {
		s.joints[j] = &SimJoint{angle: robot.CenterAngle}
	}
	return s
}

func (s *Sim) Actuators() [robot.NumJoints]robot.Actuator {
	var a [robot.NumJoints]robot.Actuator
	for j := range s.joints {
		a[j] = s.joints[j]
	}
	return a
}

func (s *Sim) Joint(j robot.Joint) *SimJoint {
	return s.joints[j]
}

// Pose returns the last angle written to every joint, trims included.
func (s *Sim) Pose() robot.Pose {
	var p robot.Pose
	for j, sj := range s.joints {
		p[j] = sj.Angle()
	}
	return p
}

func (s *Sim) Flush() error {
	s.flushes.Add(1)
	return nil
}

func (s *Sim) Flushes() uint64 {
	return s.flushes.Load()
}

func (s *Sim) Close() error {
	for _, sj := range s.joints {
		sj.Detach()
	}
	return nil
}

// SimJoint is one simulated servo.
type SimJoint struct {
	mu       sync.Mutex
	angle    int
	attached bool
	writes   int
}

func (j *SimJoint) Attach() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.attached = true
	return nil
}

func (j *SimJoint) Detach() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.attached = false
	return nil
}

// Write moves the servo. A detached servo ignores the command like an
// unpowered one would.
func (j *SimJoint) Write(angle int) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.attached {
		return nil
	}
	j.angle = angle
	j.writes++
	return nil
}

func (j *SimJoint) Angle() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.angle
}

func (j *SimJoint) Attached() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.attached
}

func (j *SimJoint) Writes() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.writes
}
