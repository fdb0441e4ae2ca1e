package gait

import (
	"time"

	"github.com/gwillem/biped/pkg/robot"
)

// Mirror reflects a pose across the sagittal plane: left and right swap
// and every angle is reflected around 90 degrees.
func Mirror(p robot.Pose) robot.Pose {
	return robot.Pose{
		robot.MaxAngle - p[robot.RightHip],
		robot.MaxAngle - p[robot.LeftHip],
		robot.MaxAngle - p[robot.RightFoot],
		robot.MaxAngle - p[robot.LeftFoot],
	}
}

// jumpUp raises the body on tiptoe.
var jumpUp = robot.Pose{90, 90, 150, 30}

// JumpProgram rises on tiptoe and comes back down. One jump is made
// regardless of steps.
func JumpProgram(_ float64, period time.Duration) Program {
	return Program{
		Move{period, jumpUp},
		Move{period, robot.Neutral},
	}
}

const (
	shakeLegBendTime = 1000 * time.Millisecond
	shakeLegMoves    = 2
	// shorter periods make the servos skip
	minShakeTime = 200 * time.Millisecond * shakeLegMoves
)

// Right leg shake poses. Left is obtained by mirroring.
var (
	shakeLegLift  = robot.Pose{90, 90, 58, 35}
	shakeLegOut   = robot.Pose{90, 90, 58, 120}
	shakeLegSwing = robot.Pose{90, 90, 58, 60}
)

// ShakeLegProgram balances on one foot and shakes the other leg. The first
// second of period goes to bending the leg up; the rest paces the shaking
// and is never shorter than minShakeTime.
func ShakeLegProgram(steps int, period time.Duration, dir Direction) Program {
	t := max(period-shakeLegBendTime, minShakeTime)
	lift, out, swing := shakeLegLift, shakeLegOut, shakeLegSwing
	if dir == Left {
		lift, out, swing = Mirror(lift), Mirror(out), Mirror(swing)
	}

	var p Program
	for range max(steps, 0) {
		p = append(p,
			Move{shakeLegBendTime / 2, lift},
			Move{shakeLegBendTime / 2, out},
		)
		for range shakeLegMoves {
			p = append(p,
				Move{t / (2 * shakeLegMoves), swing},
				Move{t / (2 * shakeLegMoves), out},
			)
		}
		p = append(p, Move{robot.HomeDuration, robot.Neutral})
	}
	return append(p, Hold{t})
}

// MinBendPeriod is the fastest a bend can be made safely.
const MinBendPeriod = 600 * time.Millisecond

// Left bend poses. Right is obtained by mirroring.
var (
	bendLean = robot.Pose{90, 90, 58, 35}
	bendDown = robot.Pose{90, 90, 58, 105}
)

// BendProgram leans the body to one side and holds.
func BendProgram(steps int, period time.Duration, dir Direction) Program {
	t := max(period, MinBendPeriod)
	lean, down := bendLean, bendDown
	if dir == Right {
		lean, down = Mirror(lean), Mirror(down)
	}

	var p Program
	for range max(steps, 0) {
		p = append(p,
			Move{t / 4, lean},
			Move{t / 10, down},
			Hold{t * 3 / 4},
			Move{robot.HomeDuration, robot.Neutral},
		)
	}
	return p
}
