package gesture

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gwillem/biped/pkg/robot"
)

// script records every motion, mouth and voice event in order.
type script struct {
	events []string
	tones  []float64
}

func (s *script) add(format string, args ...any) {
	s.events = append(s.events, fmt.Sprintf(format, args...))
}

func (s *script) MoveServos(d time.Duration, target robot.Pose) {
	s.add("move %v %v", d, target)
}

func (s *script) Execute(spec robot.GaitSpec) {
	s.add("execute %v x%v", spec.Period, spec.Steps)
}

func (s *script) Oscillate(spec robot.GaitSpec) {
	s.add("oscillate %v x%v", spec.Period, spec.Steps)
}

func (s *script) Pause(d time.Duration) { s.add("pause %v", d) }
func (s *script) Home()                 { s.add("home") }

func (s *script) Show(sh Shape)                  { s.add("mouth %s", sh) }
func (s *script) Animate(a Animation, frame int) { s.add("animate %s %d", a, frame) }
func (s *script) Clear()                         { s.add("clear") }

func (s *script) Tone(freq float64, note, silence time.Duration) {
	s.tones = append(s.tones, freq)
}

// motions filters the recorded events down to robot motion.
func (s *script) motions() []string {
	var out []string
	for _, e := range s.events {
		if !strings.HasPrefix(e, "mouth") && !strings.HasPrefix(e, "animate") && e != "clear" {
			out = append(out, e)
		}
	}
	return out
}

func perform(t *testing.T, name Name) *script {
	t.Helper()
	s := &script{}
	p := NewPerformer(s, robot.NewFakeClock(time.Millisecond), s, s)
	if err := p.Play(string(name)); err != nil {
		t.Fatalf("Play(%s): %v", name, err)
	}
	return s
}

func TestBendTones(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		ratio    float64
		want     []float64
	}{
		{"rising", 100, 130, 1.04, []float64{100, 104, 108, 112, 116, 120, 124, 128}},
		{"falling", 880, 795, 1.02, []float64{880, 862, 845, 828, 811}},
		{"empty", 500, 500, 1.02, nil},
		{"ratio not above one", 100, 200, 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &script{}
			BendTones(s, tt.from, tt.to, tt.ratio, 10*time.Millisecond, 0)
			if !slices.Equal(s.tones, tt.want) {
				t.Errorf("tones = %v, want %v", s.tones, tt.want)
			}
		})
	}
}

func TestSing_EverySongMakesSound(t *testing.T) {
	for _, song := range Songs {
		s := &script{}
		Sing(s, song)
		if len(s.tones) == 0 {
			t.Errorf("%s: no tones", song)
		}
	}
}

func TestLogVoice_TakesToneTime(t *testing.T) {
	clock := robot.NewFakeClock(time.Millisecond)
	v := NewLogVoice(clock)

	v.Tone(NoteA5, 50*time.Millisecond, 30*time.Millisecond)

	if got := clock.Elapsed(); got < 80*time.Millisecond {
		t.Errorf("elapsed = %v, want at least 80ms", got)
	}
}

func TestPlay_Unknown(t *testing.T) {
	s := &script{}
	p := NewPerformer(s, robot.NewFakeClock(0), s, s)
	if err := p.Play("moonwalk"); !errors.Is(err, ErrUnknownGesture) {
		t.Errorf("err = %v, want ErrUnknownGesture", err)
	}
	if len(s.events) != 0 {
		t.Errorf("events = %v, want none", s.events)
	}
}

func TestPlay_AllGesturesEndHappy(t *testing.T) {
	for _, name := range Names() {
		t.Run(string(name), func(t *testing.T) {
			s := perform(t, name)
			var last string
			for _, e := range s.events {
				if strings.HasPrefix(e, "mouth") {
					last = e
				}
			}
			if last != "mouth happy_open" {
				t.Errorf("last expression = %q, want happy_open", last)
			}
		})
	}
}

func TestHappy(t *testing.T) {
	s := perform(t, Happy)
	want := []string{"execute 800ms x1", "home"}
	if got := s.motions(); !slices.Equal(got, want) {
		t.Errorf("motions = %v, want %v", got, want)
	}
	if s.events[0] != "mouth smile" {
		t.Errorf("first event = %q, want smile", s.events[0])
	}
}

func TestSuperHappy_SwingsTwice(t *testing.T) {
	s := perform(t, SuperHappy)
	want := []string{"execute 500ms x1", "execute 500ms x1", "home"}
	if got := s.motions(); !slices.Equal(got, want) {
		t.Errorf("motions = %v, want %v", got, want)
	}
}

func TestLove_Crusaito(t *testing.T) {
	s := perform(t, Love)
	want := []string{"execute 1.5s x2", "home"}
	if got := s.motions(); !slices.Equal(got, want) {
		t.Errorf("motions = %v, want %v", got, want)
	}
}

func TestFretful(t *testing.T) {
	s := perform(t, Fretful)

	var moves, homes int
	for _, e := range s.motions() {
		switch {
		case e == "move 100ms [90 90 90 110]":
			moves++
		case e == "home":
			homes++
		}
	}
	if moves != 4 || homes != 5 {
		t.Errorf("moves/homes = %d/%d, want 4/5", moves, homes)
	}
}

func TestSad_StartsInSadPose(t *testing.T) {
	s := perform(t, Sad)
	if got := s.motions()[0]; got != "move 700ms [110 70 20 160]" {
		t.Errorf("first motion = %q", got)
	}
	if s.tones[0] != 880 {
		t.Errorf("first tone = %v, want 880", s.tones[0])
	}
}

func TestPlay_OnRobot(t *testing.T) {
	clock := robot.NewFakeClock(time.Millisecond)
	r := robot.New([robot.NumJoints]robot.Actuator{nopJoint{}, nopJoint{}, nopJoint{}, nopJoint{}}, robot.WithClock(clock))

	if err := Play(r, clock, string(Confused)); err != nil {
		t.Fatal(err)
	}
	if r.Attached() {
		t.Error("robot still attached after gesture")
	}
	if r.Positions() != robot.Neutral {
		t.Errorf("final pose = %v, want neutral", r.Positions())
	}
}

type nopJoint struct{}

func (nopJoint) Attach() error   { return nil }
func (nopJoint) Detach() error   { return nil }
func (nopJoint) Write(int) error { return nil }

func TestVictoryAndFail_OnlyResetMouth(t *testing.T) {
	for _, name := range []Name{Victory, Fail} {
		t.Run(string(name), func(t *testing.T) {
			s := perform(t, name)
			want := []string{"clear", "mouth happy_open"}
			if !slices.Equal(s.events, want) {
				t.Errorf("events = %v, want %v", s.events, want)
			}
			if len(s.tones) != 0 {
				t.Errorf("tones = %v, want none", s.tones)
			}
		})
	}
}
