//go:build tinygo

// Command firmware runs the biped on an RP2040 board with four hobby
// servos on GP2..GP5 and reads commands from the USB serial console.
package main

import (
	"context"
	"errors"
	"machine"
	"time"

	"tinygo.org/x/drivers/servo"

	"github.com/gwillem/biped/internal/command"
	"github.com/gwillem/biped/pkg/choreo"
	"github.com/gwillem/biped/pkg/robot"
)

// trims measured on the assembled robot, indexed by joint.
var trims = fixedTrims{0, 0, 0, 0}

type pinConfig struct {
	PWM servo.PWM
	Pin machine.Pin
}

var pins = [robot.NumJoints]pinConfig{
	robot.LeftHip:   {machine.PWM1, machine.GP2},
	robot.RightHip:  {machine.PWM1, machine.GP3},
	robot.LeftFoot:  {machine.PWM2, machine.GP4},
	robot.RightFoot: {machine.PWM2, machine.GP5},
}

func main() {
	var actuators [robot.NumJoints]robot.Actuator
	for j, p := range pins {
		s, err := servo.New(p.PWM, p.Pin)
		if err != nil {
			panic(err)
		}
		actuators[j] = &pwmJoint{servo: s}
	}

	ctrl := choreo.NewController(choreo.Config{
		Actuators: actuators,
		Trims:     trims,
		QueueSize: 1,
	})
	ctx := context.Background()
	go ctrl.Start(ctx)
	go drain(ctrl)

	readLines(func(line string) {
		job, err := command.Parse(line)
		if err != nil {
			println("error:", err.Error())
			return
		}
		if job.Kind == "" {
			return
		}
		if err := ctrl.Submit(ctx, job); err != nil {
			println("error:", err.Error())
			return
		}
		println("ok")
	})
}

// drain keeps the controller's state and log channels moving.
func drain(ctrl *choreo.Controller) {
	states, logs := ctrl.States(), ctrl.Logs()
	for {
		select {
		case <-states:
		case msg := <-logs:
			println(msg)
		}
	}
}

func readLines(handle func(string)) {
	buf := make([]byte, 0, 64)
	for {
		b, err := machine.Serial.ReadByte()
		if err != nil {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		switch b {
		case '\r', '\n':
			if len(buf) > 0 {
				handle(string(buf))
				buf = buf[:0]
			}
		default:
			if len(buf) < cap(buf) {
				buf = append(buf, b)
			}
		}
	}
}

// pwmJoint drives one hobby servo. Detaching stops the pulse train so the
// servo goes limp.
type pwmJoint struct {
	servo    servo.Servo
	attached bool
}

func (p *pwmJoint) Attach() error {
	p.attached = true
	return nil
}

func (p *pwmJoint) Detach() error {
	p.attached = false
	p.servo.SetMicroseconds(0)
	return nil
}

func (p *pwmJoint) Write(angle int) error {
	if !p.attached {
		return nil
	}
	return p.servo.SetAngle(angle)
}

type fixedTrims robot.Trims

func (t fixedTrims) ReadTrim(addr int) (int8, error) {
	if addr < 0 || addr >= robot.NumJoints {
		return 0, errors.New("trim address out of range")
	}
	return t[addr], nil
}

func (fixedTrims) WriteTrim(int, int8) error {
	return errors.New("trims are compiled into the firmware")
}
