package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/CristiGvl/picoSensingKit/internal/platform"
	"github.com/CristiGvl/picoSensingKit/internal/sensor"
	"github.com/CristiGvl/picoSensingKit/internal/sink"
)

// Options configures the API server
type Options struct {
	Kit    *sensor.Kit
	Latest *sink.Latest
	// Sinks are subscribed, after Latest, to every module registered
	// through the server.
	Sinks    []sensor.Listener
	Gatherer prometheus.Gatherer
	Backend  string
	// AccessLog enables the per-request log line.
	AccessLog bool
}

// Server represents the API server
type Server struct {
	app      *fiber.App
	kit      *sensor.Kit
	latest   *sink.Latest
	sinks    []sensor.Listener
	gatherer prometheus.Gatherer
	backend  string
}

// NewServer creates a new API server
func NewServer(opts Options) *Server {
	if opts.Latest == nil {
		opts.Latest = sink.NewLatest()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		ServerHeader:          "picoSensingKit",
		AppName:               "picoSensingKit v1.0",
		DisableStartupMessage: true,
	})

	// Middleware
	if opts.AccessLog {
		app.Use(fiberlogger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,DELETE,OPTIONS",
		AllowHeaders:  "*",
		ExposeHeaders: "Content-Length,Content-Type",
		MaxAge:        86400, // 24 hours
	}))

	server := &Server{
		app:      app,
		kit:      opts.Kit,
		latest:   opts.Latest,
		sinks:    opts.Sinks,
		gatherer: opts.Gatherer,
		backend:  opts.Backend,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.app.Group("/api")

	// Sensor endpoints
	api.Get("/sensors", s.getSensors)
	api.Get("/sensors/:kind", s.getSensor)
	api.Post("/sensors/:kind/register", s.registerSensor)
	api.Delete("/sensors/:kind", s.deregisterSensor)
	api.Post("/sensors/:kind/start", s.startSensor)
	api.Post("/sensors/:kind/stop", s.stopSensor)
	api.Get("/sensors/:kind/latest", s.getLatest)

	// Health check
	api.Get("/health", s.healthCheck)

	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
}

// Register registers kind with the kit and subscribes the latest-reading
// cache and every sink to it.
func (s *Server) Register(kind sensor.Kind) error {
	if err := s.kit.Register(kind); err != nil {
		return err
	}
	if _, err := s.kit.Subscribe(kind, s.latest); err != nil {
		return err
	}
	for _, l := range s.sinks {
		if _, err := s.kit.Subscribe(kind, l); err != nil {
			return err
		}
	}
	return nil
}

// Start starts the API server
func (s *Server) Start(address string) error {
	return s.app.Listen(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Health check endpoint
func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"platform":  platform.GetOS(),
		"backend":   s.backend,
		"api_level": s.kit.Manager().APILevel(),
		"timestamp": time.Now().Unix(),
	})
}
