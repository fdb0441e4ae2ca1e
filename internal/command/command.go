// Package command parses the line protocol spoken over the firmware's
// serial console.
//
//	gait walk steps=4 period=1000 dir=forward
//	gesture happy
//	pose 90 90 150 30 500
//	pause 250
//	home
//
// Periods and durations are milliseconds.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gwillem/biped/pkg/choreo"
	"github.com/gwillem/biped/pkg/gait"
	"github.com/gwillem/biped/pkg/robot"
)

var ErrSyntax = errors.New("syntax error")

// Parse turns one line into a validated job. Blank lines and lines
// starting with # return a zero job and no error.
func Parse(line string) (choreo.Job, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return choreo.Job{}, nil
	}

	var (
		job choreo.Job
		err error
	)
	switch verb, args := strings.ToLower(fields[0]), fields[1:]; verb {
	case "gait", "g":
		job, err = parseGait(args)
	case "gesture", "e":
		if len(args) != 1 {
			return choreo.Job{}, fmt.Errorf("%w: gesture NAME", ErrSyntax)
		}
		job = choreo.GestureJob(args[0])
	case "home", "h":
		job = choreo.HomeJob()
	case "pose", "p":
		job, err = parsePose(args)
	case "pause":
		if len(args) != 1 {
			return choreo.Job{}, fmt.Errorf("%w: pause MS", ErrSyntax)
		}
		var d time.Duration
		d, err = millis(args[0])
		job = choreo.Job{Kind: choreo.KindPause, Duration: d}
	default:
		return choreo.Job{}, fmt.Errorf("%w: unknown command %q", ErrSyntax, verb)
	}
	if err != nil {
		return choreo.Job{}, err
	}
	if err := job.Validate(); err != nil {
		return choreo.Job{}, err
	}
	return job, nil
}

func parseGait(args []string) (choreo.Job, error) {
	if len(args) == 0 {
		return choreo.Job{}, fmt.Errorf("%w: gait NAME [key=value...]", ErrSyntax)
	}

	var p gait.Params
	for _, kv := range args[1:] {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return choreo.Job{}, fmt.Errorf("%w: expected key=value, got %q", ErrSyntax, kv)
		}
		var err error
		switch key {
		case "steps":
			var n float64
			n, err = strconv.ParseFloat(value, 64)
			p.SetSteps(n)
		case "period":
			p.Period, err = millis(value)
		case "height":
			var h int
			h, err = strconv.Atoi(value)
			p.SetHeight(h)
		case "dir":
			p.Dir, err = gait.ParseDirection(value)
		default:
			err = fmt.Errorf("%w: unknown parameter %q", ErrSyntax, key)
		}
		if err != nil {
			return choreo.Job{}, err
		}
	}
	return choreo.GaitJob(args[0], p), nil
}

func parsePose(args []string) (choreo.Job, error) {
	if len(args) != robot.NumJoints+1 {
		return choreo.Job{}, fmt.Errorf("%w: pose A0 A1 A2 A3 MS", ErrSyntax)
	}
	var p robot.Pose
	for i := range p {
		a, err := strconv.Atoi(args[i])
		if err != nil {
			return choreo.Job{}, fmt.Errorf("%w: angle %q", ErrSyntax, args[i])
		}
		p[i] = a
	}
	d, err := millis(args[robot.NumJoints])
	if err != nil {
		return choreo.Job{}, err
	}
	return choreo.PoseJob(p, d), nil
}

func millis(s string) (time.Duration, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: milliseconds %q", ErrSyntax, s)
	}
	return time.Duration(n) * time.Millisecond, nil
}
