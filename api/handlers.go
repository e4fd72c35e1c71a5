package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/CristiGvl/picoSensingKit/internal/sensor"
)

// errorStatus maps kit errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, sensor.ErrUnknownKind):
		return fiber.StatusBadRequest
	case errors.Is(err, sensor.ErrNotRegistered):
		return fiber.StatusNotFound
	case errors.Is(err, sensor.ErrAlreadyRegistered):
		return fiber.StatusConflict
	case errors.Is(err, sensor.ErrUnsupportedKind):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, sensor.ErrRegistrationFailed):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
}

// withKind parses the :kind route parameter before calling next.
func withKind(c *fiber.Ctx, next func(sensor.Kind) error) error {
	kind, err := sensor.ParseKind(c.Params("kind"))
	if err != nil {
		return sendError(c, err)
	}
	return next(kind)
}

// Sensor list endpoint
func (s *Server) getSensors(c *fiber.Ctx) error {
	return c.JSON(s.kit.Statuses())
}

// Sensor status endpoint
func (s *Server) getSensor(c *fiber.Ctx) error {
	return withKind(c, func(kind sensor.Kind) error {
		status, err := s.kit.Status(kind)
		if err != nil {
			return sendError(c, err)
		}
		return c.JSON(status)
	})
}

func (s *Server) registerSensor(c *fiber.Ctx) error {
	return withKind(c, func(kind sensor.Kind) error {
		if err := s.Register(kind); err != nil {
			return sendError(c, err)
		}
		status, _ := s.kit.Status(kind)
		return c.Status(fiber.StatusCreated).JSON(status)
	})
}

func (s *Server) deregisterSensor(c *fiber.Ctx) error {
	return withKind(c, func(kind sensor.Kind) error {
		if err := s.kit.Deregister(kind); err != nil {
			return sendError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func (s *Server) startSensor(c *fiber.Ctx) error {
	return withKind(c, func(kind sensor.Kind) error {
		if err := s.kit.StartSensing(kind); err != nil {
			return sendError(c, err)
		}
		status, _ := s.kit.Status(kind)
		return c.JSON(status)
	})
}

func (s *Server) stopSensor(c *fiber.Ctx) error {
	return withKind(c, func(kind sensor.Kind) error {
		if err := s.kit.StopSensing(kind); err != nil {
			return sendError(c, err)
		}
		status, _ := s.kit.Status(kind)
		return c.JSON(status)
	})
}

// Latest reading endpoint
func (s *Server) getLatest(c *fiber.Ctx) error {
	return withKind(c, func(kind sensor.Kind) error {
		reading, ok := s.latest.Get(kind)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no reading for " + kind.String()})
		}
		return c.JSON(fiber.Map{
			"kind":    kind,
			"reading": reading,
		})
	})
}
