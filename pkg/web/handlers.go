package web

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gwillem/biped/pkg/choreo"
	"github.com/gwillem/biped/pkg/gait"
	"github.com/gwillem/biped/pkg/gesture"
	"github.com/gwillem/biped/pkg/robot"
)

// GaitRequest is the optional body of POST /api/gaits/:name. Missing
// fields, and a zero period, fall back to the gait's defaults.
type GaitRequest struct {
	Steps    *float64 `json:"steps"`
	PeriodMS int      `json:"period_ms"`
	Height   *int     `json:"height"`
	Dir      string   `json:"dir"`
}

// PoseRequest is the body of POST /api/pose.
type PoseRequest struct {
	Pose       []int `json:"pose"`
	DurationMS int   `json:"duration_ms"`
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"controller": s.ctrl.Snapshot(),
		"clients":    s.positions.count(),
	})
}

func (s *Server) handleListGaits(c *fiber.Ctx) error {
	return c.JSON(gait.Entries())
}

func (s *Server) handleListGestures(c *fiber.Ctx) error {
	return c.JSON(gesture.Names())
}

func (s *Server) handleGait(c *fiber.Ctx) error {
	var req GaitRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	p := gait.Params{Period: time.Duration(req.PeriodMS) * time.Millisecond}
	if req.Steps != nil {
		p.SetSteps(*req.Steps)
	}
	if req.Height != nil {
		p.SetHeight(*req.Height)
	}
	if req.Dir != "" {
		d, err := gait.ParseDirection(req.Dir)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		p.Dir = d
	}
	return s.enqueue(c, choreo.GaitJob(c.Params("name"), p))
}

func (s *Server) handleGesture(c *fiber.Ctx) error {
	return s.enqueue(c, choreo.GestureJob(c.Params("name")))
}

func (s *Server) handleHome(c *fiber.Ctx) error {
	return s.enqueue(c, choreo.HomeJob())
}

func (s *Server) handlePose(c *fiber.Ctx) error {
	var req PoseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if len(req.Pose) != robot.NumJoints {
		return fiber.NewError(fiber.StatusBadRequest, "pose needs 4 angles")
	}

	var p robot.Pose
	copy(p[:], req.Pose)
	return s.enqueue(c, choreo.PoseJob(p, time.Duration(req.DurationMS)*time.Millisecond))
}

// enqueue hands job to the controller and maps its errors to HTTP status
// codes.
func (s *Server) enqueue(c *fiber.Ctx, job choreo.Job) error {
	id, err := s.ctrl.Enqueue(job)
	switch {
	case err == nil:
		s.log.WithField("job", job.String()).Info("queued")
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"id": id})
	case errors.Is(err, gait.ErrUnknownGait), errors.Is(err, gesture.ErrUnknownGesture):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, choreo.ErrInvalidJob):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, choreo.ErrBusy), errors.Is(err, choreo.ErrStopped):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
