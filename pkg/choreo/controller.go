package choreo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gwillem/biped/internal/log"
	"github.com/gwillem/biped/pkg/gait"
	"github.com/gwillem/biped/pkg/gesture"
	"github.com/gwillem/biped/pkg/robot"
)

var (
	// ErrBusy is returned when the job queue is full.
	ErrBusy = errors.New("job queue full")
	// ErrStopped is returned once the controller has shut down.
	ErrStopped = errors.New("controller stopped")
)

// State is published after every commanded pose and whenever a job
// starts or finishes.
type State struct {
	Pose      robot.Pose    `json:"pose"`
	At        time.Duration `json:"at"`
	JobID     string        `json:"job_id,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Error     string        `json:"error,omitempty"`
}

// Status is a point-in-time summary of the controller.
type Status struct {
	Running     bool       `json:"running"`
	Current     *Job       `json:"current,omitempty"`
	Queued      int        `json:"queued"`
	Completed   uint64     `json:"completed"`
	Pose        robot.Pose `json:"pose"`
	WriteErrors uint64     `json:"write_errors"`
}

// Config holds the parts the controller assembles a robot from.
type Config struct {
	Actuators [robot.NumJoints]robot.Actuator
	Flusher   robot.Flusher
	Clock     robot.Clock
	Trims     robot.TrimStore
	Mouth     gesture.Mouth
	Voice     gesture.Voice
	QueueSize int
}

type request struct {
	job  Job
	done chan error
}

// Controller owns a robot and runs submitted jobs strictly one after the
// other on a single worker, so two motions never overlap.
type Controller struct {
	robot     *robot.Robot
	performer *gesture.Performer

	mu        sync.RWMutex
	running   bool
	stopped   bool
	current   *Job
	pose      robot.Pose
	completed uint64

	queue   chan request
	stateCh chan State
	logCh   chan string
	log     *logrus.Entry
}

// NewController builds the robot and the job queue. The robot is not
// touched until Start.
func NewController(cfg Config) *Controller {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}
	if cfg.Clock == nil {
		cfg.Clock = robot.NewSystemClock()
	}

	c := &Controller{
		pose:    robot.Neutral,
		queue:   make(chan request, cfg.QueueSize),
		stateCh: make(chan State, 1),
		logCh:   make(chan string, 10),
		log:     log.With(log.Fields{"component": "choreo"}),
	}

	opts := []robot.Option{
		robot.WithClock(cfg.Clock),
		robot.WithObserver(c.observe),
	}
	if cfg.Flusher != nil {
		opts = append(opts, robot.WithFlusher(cfg.Flusher))
	}
	if cfg.Trims != nil {
		opts = append(opts, robot.WithTrimStore(cfg.Trims, true))
	}
	c.robot = robot.New(cfg.Actuators, opts...)
	c.performer = gesture.NewPerformer(c.robot, cfg.Clock, cfg.Mouth, cfg.Voice)
	return c
}

// States returns a channel that receives state updates. Only the newest
// state is kept for slow readers.
func (c *Controller) States() <-chan State {
	return c.stateCh
}

// Logs returns a channel that receives log messages.
func (c *Controller) Logs() <-chan string {
	return c.logCh
}

func (c *Controller) logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.log.Info(msg)
	select {
	case c.logCh <- fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg):
	default:
		// Drop if channel full
	}
}

// Enqueue validates job and adds it to the queue without waiting for it to
// run. It returns the job ID.
func (c *Controller) Enqueue(job Job) (string, error) {
	job, err := c.prepare(job)
	if err != nil {
		return "", err
	}
	if err := c.push(request{job: job}); err != nil {
		return "", err
	}
	return job.ID, nil
}

// Submit enqueues job and waits until it has run. Cancelling ctx stops the
// wait but not a motion that has already started.
func (c *Controller) Submit(ctx context.Context, job Job) error {
	job, err := c.prepare(job)
	if err != nil {
		return err
	}
	req := request{job: job, done: make(chan error, 1)}
	if err := c.push(req); err != nil {
		return err
	}
	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunRoutine plays every job of r in order, Repeat times, stopping at the
// first error.
func (c *Controller) RunRoutine(ctx context.Context, r *Routine) error {
	c.logf("Routine %q started (%d steps x%d)", r.Name, len(r.Jobs), r.Repeat)
	for range r.Repeat {
		for _, j := range r.Jobs {
			if err := c.Submit(ctx, j); err != nil {
				return fmt.Errorf("%s: %w", j, err)
			}
		}
	}
	c.logf("Routine %q finished", r.Name)
	return nil
}

func (c *Controller) prepare(job Job) (Job, error) {
	if err := job.Validate(); err != nil {
		return Job{}, err
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	return job, nil
}

func (c *Controller) push(req request) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.stopped {
		return ErrStopped
	}
	select {
	case c.queue <- req:
		return nil
	default:
		return ErrBusy
	}
}

// Start initializes the robot and runs jobs until ctx is cancelled. The
// job in progress is allowed to finish, then the robot is sent home.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running || c.stopped {
		c.mu.Unlock()
		return fmt.Errorf("already running")
	}
	c.running = true
	c.mu.Unlock()

	if err := c.robot.Init(); err != nil {
		c.logf("Warning: failed to load trims: %v", err)
	}
	c.logf("Controller started")

	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return ctx.Err()
		case req := <-c.queue:
			err := c.run(req.job)
			if req.done != nil {
				req.done <- err
			}
		}
	}
}

func (c *Controller) run(job Job) (err error) {
	c.mu.Lock()
	c.current = &job
	c.mu.Unlock()
	c.logf("Running %s", job)

	defer func() {
		c.mu.Lock()
		c.current = nil
		c.completed++
		c.mu.Unlock()

		st := State{Pose: c.lastPose(), JobID: job.ID, Timestamp: time.Now()}
		if err != nil {
			st.Error = err.Error()
			c.logf("Failed %s: %v", job, err)
		}
		c.sendState(st)
	}()

	switch job.Kind {
	case KindGait:
		return gait.Run(c.robot, job.Name, job.Params)
	case KindGesture:
		return c.performer.Play(job.Name)
	case KindHome:
		c.robot.Home()
	case KindPose:
		c.robot.MoveServos(job.Duration, job.Pose)
	case KindPause:
		c.robot.Pause(job.Duration)
	}
	return nil
}

// observe runs on the worker for every commanded pose.
func (c *Controller) observe(s robot.Sample) {
	c.mu.Lock()
	c.pose = s.Pose
	var id string
	if c.current != nil {
		id = c.current.ID
	}
	c.mu.Unlock()

	c.sendState(State{
		Pose:      s.Pose,
		At:        s.At,
		JobID:     id,
		Timestamp: time.Now(),
	})
}

func (c *Controller) sendState(s State) {
	select {
	case c.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-c.stateCh:
		default:
		}
		select {
		case c.stateCh <- s:
		default:
		}
	}
}

func (c *Controller) lastPose() robot.Pose {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pose
}

// Snapshot reports what the controller is doing.
func (c *Controller) Snapshot() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st := Status{
		Running:     c.running,
		Queued:      len(c.queue),
		Completed:   c.completed,
		Pose:        c.pose,
		WriteErrors: c.robot.WriteErrors(),
	}
	if c.current != nil {
		job := *c.current
		st.Current = &job
	}
	return st
}

func (c *Controller) shutdown() {
	c.mu.Lock()
	c.running = false
	c.stopped = true
	c.mu.Unlock()

	// fail whatever is still waiting
	for {
		select {
		case req := <-c.queue:
			if req.done != nil {
				req.done <- ErrStopped
			}
			continue
		default:
		}
		break
	}

	c.robot.Home()
	c.logf("Controller stopped")
}
