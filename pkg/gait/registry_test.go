package gait

import (
	"errors"
	"testing"
	"time"

	"github.com/gwillem/biped/pkg/robot"
)

type nopActuator struct{}

func (nopActuator) Attach() error   { return nil }
func (nopActuator) Detach() error   { return nil }
func (nopActuator) Write(int) error { return nil }

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		e, err := Lookup(string(name))
		if err != nil {
			t.Fatalf("Lookup(%s): %v", name, err)
		}
		if e.Name != name {
			t.Errorf("Lookup(%s).Name = %s", name, e.Name)
		}
		if e.Defaults.Period <= 0 {
			t.Errorf("%s: default period %v", name, e.Defaults.Period)
		}
	}

	if _, err := Lookup("cartwheel"); !errors.Is(err, ErrUnknownGait) {
		t.Errorf("Lookup(cartwheel) error = %v, want ErrUnknownGait", err)
	}
}

func TestNames_Count(t *testing.T) {
	if got := len(Names()); got != 13 {
		t.Errorf("len(Names()) = %d, want 13", got)
	}
}

func TestEntry_Fill(t *testing.T) {
	e, _ := Lookup("walk")
	got := e.Fill(Params{Steps: 2, Dir: Backward})
	want := Params{Steps: 2, Period: time.Second, Dir: Backward}
	if got != want {
		t.Errorf("Fill = %+v, want %+v", got, want)
	}

	var zero Params
	zero.SetSteps(0)
	zero.SetHeight(0)
	swing, _ := Lookup("swing")
	got = swing.Fill(zero)
	if got.Steps != 0 || got.Height != 0 || got.Period != swing.Defaults.Period {
		t.Errorf("Fill with explicit zeros = %+v", got)
	}
}

func TestRun_ExplicitZeroSteps(t *testing.T) {
	f := &fakeMover{}
	var p Params
	p.SetSteps(0)
	if err := Run(f, "walk", p); err != nil {
		t.Fatal(err)
	}
	if len(f.calls) != 1 || f.calls[0].op != "execute" || f.calls[0].spec.Steps != 0 {
		t.Errorf("calls = %+v, want one execute with zero steps", f.calls)
	}
}

func TestRun_Unknown(t *testing.T) {
	f := &fakeMover{}
	if err := Run(f, "cartwheel", Params{}); !errors.Is(err, ErrUnknownGait) {
		t.Errorf("err = %v, want ErrUnknownGait", err)
	}
	if len(f.calls) != 0 {
		t.Errorf("unknown gait moved the robot: %+v", f.calls)
	}
}

func TestRun_WalkOnRobot(t *testing.T) {
	var samples []robot.Sample
	clock := robot.NewFakeClock(time.Millisecond)
	r := robot.New(
		[robot.NumJoints]robot.Actuator{nopActuator{}, nopActuator{}, nopActuator{}, nopActuator{}},
		robot.WithClock(clock),
		robot.WithObserver(func(s robot.Sample) { samples = append(samples, s) }),
	)

	err := Run(r, "walk", Params{Steps: 2, Period: time.Second, Dir: Forward})
	if err != nil {
		t.Fatal(err)
	}

	// at t=0 hips are centered and both feet are at the bottom of their swing
	want := robot.Pose{90, 90, 74, 66}
	if samples[0].Pose != want {
		t.Errorf("first pose = %v, want %v", samples[0].Pose, want)
	}
	if clock.Elapsed() < 2*time.Second {
		t.Errorf("elapsed = %v, want at least 2s", clock.Elapsed())
	}
	for _, s := range samples {
		for j, a := range s.Pose {
			if a < 56 || a > 124 {
				t.Fatalf("joint %d out of walking range at %v: %d", j, s.At, a)
			}
		}
	}
}

func TestRun_ZeroStepsFallsBackToDefault(t *testing.T) {
	f := &fakeMover{}
	if err := Run(f, "swing", Params{Period: 500 * time.Millisecond}); err != nil {
		t.Fatal(err)
	}
	if len(f.calls) != 1 || f.calls[0].spec.Steps != 4 {
		t.Errorf("calls = %+v", f.calls)
	}
}
