// Package choreo queues and runs motion jobs on one biped, one at a time.
package choreo

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/gwillem/biped/pkg/gait"
	"github.com/gwillem/biped/pkg/gesture"
	"github.com/gwillem/biped/pkg/robot"
)

// Kind is the type of a job.
type Kind string

const (
	KindGait    Kind = "gait"
	KindGesture Kind = "gesture"
	KindHome    Kind = "home"
	KindPose    Kind = "pose"
	KindPause   Kind = "pause"
)

var ErrInvalidJob = errors.New("invalid job")

// Job is one motion request.
type Job struct {
	ID     string      `json:"id"`
	Kind   Kind        `json:"kind"`
	Name   string      `json:"name,omitempty"`
	Params gait.Params `json:"params,omitzero"`
	// Pose and Duration are used by pose and pause jobs.
	Pose     robot.Pose    `json:"pose,omitzero"`
	Duration time.Duration `json:"duration,omitempty"`
}

func (j Job) String() string {
	switch j.Kind {
	case KindGait, KindGesture:
		return fmt.Sprintf("%s %s", j.Kind, j.Name)
	case KindPose:
		return fmt.Sprintf("pose %v in %v", j.Pose, j.Duration)
	case KindPause:
		return fmt.Sprintf("pause %v", j.Duration)
	}
	return string(j.Kind)
}

// Validate rejects jobs that name unknown gaits or gestures, or poses
// outside the servo range.
func (j Job) Validate() error {
	switch j.Kind {
	case KindGait:
		if _, err := gait.Lookup(j.Name); err != nil {
			return err
		}
	case KindGesture:
		if !slices.Contains(gesture.Names(), gesture.Name(j.Name)) {
			return fmt.Errorf("%w: %q", gesture.ErrUnknownGesture, j.Name)
		}
	case KindHome:
	case KindPose:
		for i, a := range j.Pose {
			if a < robot.MinAngle || a > robot.MaxAngle {
				return fmt.Errorf("%w: %s angle %d out of range", ErrInvalidJob, robot.Joint(i), a)
			}
		}
	case KindPause:
		if j.Duration < 0 {
			return fmt.Errorf("%w: negative pause", ErrInvalidJob)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidJob, j.Kind)
	}
	return nil
}

// GaitJob returns a job that plays a catalog gait.
func GaitJob(name string, p gait.Params) Job {
	return Job{Kind: KindGait, Name: name, Params: p}
}

// GestureJob returns a job that plays a gesture.
func GestureJob(name string) Job {
	return Job{Kind: KindGesture, Name: name}
}

// HomeJob returns a job that rests the robot.
func HomeJob() Job {
	return Job{Kind: KindHome}
}

// PoseJob returns a job that moves linearly to p over d.
func PoseJob(p robot.Pose, d time.Duration) Job {
	return Job{Kind: KindPose, Pose: p, Duration: d}
}
