// Package robot provides the motion engine for a four-servo biped.
package robot

// Joint identifies one of the four actuated channels.
type Joint int

// Joints of the biped, in channel order.
const (
	LeftHip Joint = iota
	RightHip
	LeftFoot
	RightFoot
)

// NumJoints is the number of actuated channels.
const NumJoints = 4

// AllJoints returns all joints in channel order.
func AllJoints() []Joint {
	return []Joint{
		LeftHip,
		RightHip,
		LeftFoot,
		RightFoot,
	}
}

func (j Joint) String() string {
	switch j {
	case LeftHip:
		return "left_hip"
	case RightHip:
		return "right_hip"
	case LeftFoot:
		return "left_foot"
	case RightFoot:
		return "right_foot"
	default:
		return "unknown"
	}
}

// IsFoot reports whether the joint is one of the foot/knee channels.
func (j Joint) IsFoot() bool {
	return j == LeftFoot || j == RightFoot
}

// Angle limits for every channel, in degrees.
const (
	MinAngle    = 0
	MaxAngle    = 180
	CenterAngle = 90
)

// Pose is a target angle per channel, indexed by Joint.
type Pose [NumJoints]int

// Neutral is the rest pose with every joint centered.
var Neutral = Pose{CenterAngle, CenterAngle, CenterAngle, CenterAngle}

func clampAngle(angle int) int {
	if angle < MinAngle {
		return MinAngle
	}
	if angle > MaxAngle {
		return MaxAngle
	}
	return angle
}
