package choreo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gwillem/biped/pkg/gait"
	"github.com/gwillem/biped/pkg/gesture"
	"github.com/gwillem/biped/pkg/robot"
	"github.com/gwillem/biped/pkg/servo"
)

func newTestController(t *testing.T, queue int) (*Controller, *servo.Sim) {
	t.Helper()
	sim := servo.NewSim()
	c := NewController(Config{
		Actuators: sim.Actuators(),
		Flusher:   sim,
		Clock:     robot.NewFakeClock(time.Millisecond),
		QueueSize: queue,
	})
	return c, sim
}

func start(t *testing.T, c *Controller) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Start(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestJob_Validate(t *testing.T) {
	tests := []struct {
		name    string
		job     Job
		wantErr error
	}{
		{"gait", GaitJob("walk", gait.Params{}), nil},
		{"unknown gait", GaitJob("cartwheel", gait.Params{}), gait.ErrUnknownGait},
		{"gesture", GestureJob("happy"), nil},
		{"unknown gesture", GestureJob("grumpy"), gesture.ErrUnknownGesture},
		{"home", HomeJob(), nil},
		{"pose", PoseJob(robot.Pose{0, 180, 90, 90}, time.Second), nil},
		{"pose out of range", PoseJob(robot.Pose{90, 90, 181, 90}, time.Second), ErrInvalidJob},
		{"negative pause", Job{Kind: KindPause, Duration: -time.Second}, ErrInvalidJob},
		{"unknown kind", Job{Kind: "dance"}, ErrInvalidJob},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Validate() = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

const demoRoutine = `
name: demo
repeat: 2
steps:
  - gait: walk
    steps: 2
    period: 1s
    dir: backward
  - gesture: happy
  - pose: [90, 90, 150, 30]
    duration: 500ms
  - pause: 250ms
  - home: true
`

func TestParseRoutine(t *testing.T) {
	r, err := ParseRoutine([]byte(demoRoutine))
	if err != nil {
		t.Fatal(err)
	}
	if r.Name != "demo" || r.Repeat != 2 || len(r.Jobs) != 5 {
		t.Fatalf("routine = %+v", r)
	}

	walk := r.Jobs[0]
	if walk.Kind != KindGait || walk.Params.Dir != gait.Backward || walk.Params.Period != time.Second {
		t.Errorf("walk job = %+v", walk)
	}
	if pose := r.Jobs[2]; pose.Pose != (robot.Pose{90, 90, 150, 30}) || pose.Duration != 500*time.Millisecond {
		t.Errorf("pose job = %+v", pose)
	}
	if r.Jobs[3].Kind != KindPause || r.Jobs[4].Kind != KindHome {
		t.Errorf("jobs = %+v", r.Jobs[3:])
	}

	// 2s walk + 500ms pose + 250ms pause + 500ms home, twice
	if got := r.Duration(); got != 6500*time.Millisecond {
		t.Errorf("Duration() = %v, want 6.5s", got)
	}
}

func TestParseRoutine_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{"no steps", "name: empty\n", ErrInvalidRoutine},
		{"two actions", "steps:\n  - gait: walk\n    gesture: happy\n", ErrInvalidRoutine},
		{"unknown gait", "steps:\n  - gait: cartwheel\n", gait.ErrUnknownGait},
		{"bad direction", "steps:\n  - gait: walk\n    dir: up\n", gait.ErrUnknownDirection},
		{"short pose", "steps:\n  - pose: [90, 90]\n", ErrInvalidRoutine},
		{"unknown gesture", "steps:\n  - gesture: grumpy\n", gesture.ErrUnknownGesture},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRoutine([]byte(tt.yaml))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestController_Submit(t *testing.T) {
	c, sim := newTestController(t, 4)
	start(t, c)
	ctx := context.Background()

	target := robot.Pose{90, 90, 150, 30}
	if err := c.Submit(ctx, PoseJob(target, 500*time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	if got := sim.Pose(); got != target {
		t.Errorf("sim pose = %v, want %v", got, target)
	}

	if err := c.Submit(ctx, GaitJob("walk", gait.Params{Steps: 1})); err != nil {
		t.Fatal(err)
	}
	if err := c.Submit(ctx, HomeJob()); err != nil {
		t.Fatal(err)
	}

	st := c.Snapshot()
	if !st.Running || st.Completed != 3 || st.Current != nil {
		t.Errorf("status = %+v", st)
	}
	if st.Pose != robot.Neutral {
		t.Errorf("status pose = %v, want neutral", st.Pose)
	}
}

func TestController_StatesCarryJobID(t *testing.T) {
	c, _ := newTestController(t, 4)
	start(t, c)

	job := PoseJob(robot.Pose{100, 80, 90, 90}, 100*time.Millisecond)
	job.ID = "fixed-id"
	if err := c.Submit(context.Background(), job); err != nil {
		t.Fatal(err)
	}

	select {
	case st := <-c.States():
		if st.JobID != "fixed-id" {
			t.Errorf("state job id = %q", st.JobID)
		}
	case <-time.After(time.Second):
		t.Fatal("no state published")
	}
}

func TestController_Enqueue(t *testing.T) {
	c, _ := newTestController(t, 1)

	id, err := c.Enqueue(HomeJob())
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Error("empty job id")
	}
	if _, err := c.Enqueue(HomeJob()); !errors.Is(err, ErrBusy) {
		t.Errorf("second Enqueue err = %v, want ErrBusy", err)
	}
	if _, err := c.Enqueue(GaitJob("cartwheel", gait.Params{})); !errors.Is(err, gait.ErrUnknownGait) {
		t.Errorf("invalid Enqueue err = %v, want ErrUnknownGait", err)
	}
}

func TestController_StopRejectsJobs(t *testing.T) {
	c, sim := newTestController(t, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Start() = %v, want context.Canceled", err)
	}

	if _, err := c.Enqueue(HomeJob()); !errors.Is(err, ErrStopped) {
		t.Errorf("Enqueue after stop = %v, want ErrStopped", err)
	}
	if sim.Joint(robot.LeftHip).Attached() {
		t.Error("joints still attached after shutdown")
	}
}

func TestController_RunRoutine(t *testing.T) {
	c, sim := newTestController(t, 4)
	start(t, c)

	r, err := ParseRoutine([]byte("repeat: 3\nsteps:\n  - pose: [100, 80, 90, 90]\n    duration: 100ms\n  - home: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.RunRoutine(context.Background(), r); err != nil {
		t.Fatal(err)
	}

	if got := c.Snapshot().Completed; got != 6 {
		t.Errorf("completed = %d, want 6", got)
	}
	if sim.Pose() != robot.Neutral {
		t.Errorf("final pose = %v", sim.Pose())
	}
}

func TestParseRoutine_ExplicitZero(t *testing.T) {
	r, err := ParseRoutine([]byte("steps:\n  - gait: swing\n    steps: 0\n    height: 0\n  - gait: swing\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := r.Jobs[0].Params, (gait.Params{Set: gait.FieldSteps | gait.FieldHeight}); got != want {
		t.Errorf("explicit zeros = %+v, want %+v", got, want)
	}
	if got := r.Jobs[1].Params; got != (gait.Params{}) {
		t.Errorf("unset params = %+v, want zero", got)
	}
}
