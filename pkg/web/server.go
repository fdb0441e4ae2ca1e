// Package web serves an HTTP API for driving the biped and a websocket
// stream of its joint positions.
package web

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	"github.com/gwillem/biped/internal/log"
	"github.com/gwillem/biped/pkg/choreo"
)

// Controller is the part of choreo.Controller the server uses.
type Controller interface {
	Enqueue(job choreo.Job) (string, error)
	Snapshot() choreo.Status
}

// PositionRate is how often position updates are pushed to websocket
// clients.
const PositionRate = 50 // Hz

// Server is the HTTP front end of one robot.
type Server struct {
	app       *fiber.App
	ctrl      Controller
	positions *hub
	log       *logrus.Entry
}

// NewServer creates the server and registers its routes.
func NewServer(ctrl Controller) *Server {
	s := &Server{
		ctrl: ctrl,
		log:  log.With(log.Fields{"component": "web"}),
	}
	s.positions = newHub("positions", s.log)

	app := fiber.New(fiber.Config{
		AppName:               "biped",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/gaits", s.handleListGaits)
	api.Post("/gaits/:name", s.handleGait)
	api.Get("/gestures", s.handleListGestures)
	api.Post("/gestures/:name", s.handleGesture)
	api.Post("/home", s.handleHome)
	api.Post("/pose", s.handlePose)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/positions", websocket.New(s.positions.serve))

	s.app = app
	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, addr string) error {
	go func() {
		<-ctx.Done()
		if err := s.app.ShutdownWithTimeout(2 * time.Second); err != nil {
			s.log.WithError(err).Warn("shutdown")
		}
	}()

	s.log.WithField("addr", addr).Info("listening")
	return s.app.Listen(addr)
}

// StreamStates forwards controller states to websocket clients at no more
// than PositionRate, always sending the newest one. It returns when ctx is
// cancelled or states is closed.
func (s *Server) StreamStates(ctx context.Context, states <-chan choreo.State) {
	ticker := time.NewTicker(time.Second / PositionRate)
	defer ticker.Stop()

	var latest choreo.State
	pending := false
	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-states:
			if !ok {
				return
			}
			latest, pending = st, true
		case <-ticker.C:
			if !pending {
				continue
			}
			if err := s.positions.broadcastJSON(latest); err != nil {
				s.log.WithError(err).Warn("broadcast")
			}
			pending = false
		}
	}
}
