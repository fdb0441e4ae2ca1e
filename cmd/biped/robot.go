package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/gwillem/biped/pkg/choreo"
	"github.com/gwillem/biped/pkg/robot"
	"github.com/gwillem/biped/pkg/servo"
)

// loadConfig reads the configuration file named by --config. A missing
// file yields the defaults, which use the simulator.
func loadConfig() (*robot.Config, error) {
	cfg, err := robot.LoadConfigFrom(opts.Config)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = robot.DefaultConfig()
		cfg.SetPath(opts.Config)
		err = nil
	}
	if err != nil {
		return nil, err
	}
	if opts.Sim {
		cfg.Override("", robot.BackendSim)
	}
	return cfg, nil
}

// session is a running controller over the configured backend.
type session struct {
	cfg     *robot.Config
	backend servo.Backend
	ctrl    *choreo.Controller
	cancel  context.CancelFunc
	done    chan error
}

// startSession opens the backend and starts a controller worker. Trims are
// loaded from the configuration.
func startSession(cfg *robot.Config) (*session, error) {
	if !cfg.IsConfigured() {
		return nil, fmt.Errorf("no servo port configured, run 'biped setup' or pass --sim")
	}
	backend, err := servo.Open(cfg)
	if err != nil {
		return nil, err
	}

	ctrl := choreo.NewController(choreo.Config{
		Actuators: backend.Actuators(),
		Flusher:   backend,
		Trims:     robot.ConfigStore{Config: cfg},
	})

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		cfg:     cfg,
		backend: backend,
		ctrl:    ctrl,
		cancel:  cancel,
		done:    make(chan error, 1),
	}
	go func() {
		s.done <- ctrl.Start(ctx)
	}()
	return s, nil
}

// Close stops the controller, which rests the robot, and closes the
// backend.
func (s *session) Close() error {
	s.cancel()
	if err := <-s.done; err != nil && !errors.Is(err, context.Canceled) {
		s.backend.Close()
		return err
	}
	return s.backend.Close()
}
