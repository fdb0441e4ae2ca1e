// Package servo provides the actuator backends for the biped: a Feetech
// STS serial bus for real hardware and an in-memory simulator.
package servo

import (
	"errors"
	"fmt"
	"math"

	"github.com/gwillem/biped/pkg/robot"
)

// Backend owns the four actuators of a biped.
type Backend interface {
	Actuators() [robot.NumJoints]robot.Actuator
	robot.Flusher
	Close() error
}

// Feetech STS servos have 4096 steps per turn with the center at 2048.
const (
	StepsPerTurn = 4096
	CenterRaw    = StepsPerTurn / 2
)

// ToRaw converts an engine angle to a Feetech position. 90 degrees is the
// servo's center.
func ToRaw(deg int) int {
	return int(math.Round(CenterRaw + float64(deg-robot.CenterAngle)*StepsPerTurn/360))
}

// ToDegrees converts a Feetech position back to an engine angle.
func ToDegrees(raw int) int {
	return int(math.Round(robot.CenterAngle + float64(raw-CenterRaw)*360/StepsPerTurn))
}

var ErrNotConfigured = errors.New("biped not configured")

// Open returns the backend selected by cfg.
func Open(cfg *robot.Config) (Backend, error) {
	switch cfg.Backend {
	case robot.BackendSim, "":
		return NewSim(), nil
	case robot.BackendFeetech:
		if cfg.Port == "" {
			return nil, fmt.Errorf("%w: no serial port, run setup first", ErrNotConfigured)
		}
		return OpenFeetech(cfg.Port, cfg.IDs)
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
