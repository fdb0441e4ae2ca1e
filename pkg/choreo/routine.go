package choreo

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gwillem/biped/pkg/gait"
	"github.com/gwillem/biped/pkg/robot"
)

// Routine is a scripted list of jobs, loaded from YAML:
//
//	name: demo
//	repeat: 2
//	steps:
//	  - gait: walk
//	    steps: 4
//	    period: 1s
//	    dir: forward
//	  - gesture: happy
//	  - pose: [90, 90, 150, 30]
//	    duration: 500ms
//	  - pause: 1s
//	  - home: true
type Routine struct {
	Name   string
	Repeat int
	Jobs   []Job
}

type routineFile struct {
	Name   string        `yaml:"name"`
	Repeat int           `yaml:"repeat"`
	Steps  []routineStep `yaml:"steps"`
}

type routineStep struct {
	Gait    string `yaml:"gait"`
	Gesture string `yaml:"gesture"`
	Home    bool   `yaml:"home"`
	Pose    []int  `yaml:"pose"`
	// unset means "use the gait default"
	Steps    *float64      `yaml:"steps"`
	Period   time.Duration `yaml:"period"`
	Height   *int          `yaml:"height"`
	Dir      string        `yaml:"dir"`
	Duration time.Duration `yaml:"duration"`
	Pause    time.Duration `yaml:"pause"`
}

var ErrInvalidRoutine = errors.New("invalid routine")

// LoadRoutine reads a routine from a YAML file.
func LoadRoutine(path string) (*Routine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routine: %w", err)
	}
	return ParseRoutine(data)
}

// ParseRoutine decodes and validates a YAML routine.
func ParseRoutine(data []byte) (*Routine, error) {
	var f routineFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse routine: %w", err)
	}

	r := &Routine{Name: f.Name, Repeat: max(f.Repeat, 1)}
	for i, s := range f.Steps {
		j, err := s.job()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if err := j.Validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		r.Jobs = append(r.Jobs, j)
	}
	if len(r.Jobs) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidRoutine)
	}
	return r, nil
}

func (s routineStep) job() (Job, error) {
	set := 0
	for _, b := range []bool{s.Gait != "", s.Gesture != "", s.Home, s.Pose != nil, s.Pause != 0} {
		if b {
			set++
		}
	}
	if set != 1 {
		return Job{}, fmt.Errorf("%w: a step needs exactly one of gait, gesture, home, pose or pause", ErrInvalidRoutine)
	}

	switch {
	case s.Gait != "":
		p := gait.Params{Period: s.Period}
		if s.Steps != nil {
			p.SetSteps(*s.Steps)
		}
		if s.Height != nil {
			p.SetHeight(*s.Height)
		}
		if s.Dir != "" {
			d, err := gait.ParseDirection(s.Dir)
			if err != nil {
				return Job{}, err
			}
			p.Dir = d
		}
		return GaitJob(s.Gait, p), nil
	case s.Gesture != "":
		return GestureJob(s.Gesture), nil
	case s.Home:
		return HomeJob(), nil
	case s.Pose != nil:
		if len(s.Pose) != robot.NumJoints {
			return Job{}, fmt.Errorf("%w: pose needs %d angles, got %d", ErrInvalidRoutine, robot.NumJoints, len(s.Pose))
		}
		var p robot.Pose
		copy(p[:], s.Pose)
		return PoseJob(p, s.Duration), nil
	}
	return Job{Kind: KindPause, Duration: s.Pause}, nil
}

// Duration estimates the playing time of the routine. Gestures count as
// zero since their length depends on sound.
func (r *Routine) Duration() time.Duration {
	var d time.Duration
	for _, j := range r.Jobs {
		switch j.Kind {
		case KindGait:
			e, err := gait.Lookup(j.Name)
			if err == nil {
				d += e.Program(j.Params).Duration()
			}
		case KindHome:
			d += robot.HomeDuration
		case KindPose, KindPause:
			d += j.Duration
		}
	}
	return d * time.Duration(r.Repeat)
}
