// Package router provides HTTP routing, middleware configuration, and server setup for the admin gateway
package router

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alfurqan/academy-admin/app/dto"
	"github.com/alfurqan/academy-admin/app/handlers"
	"github.com/alfurqan/academy-admin/app/middleware"
	"github.com/alfurqan/academy-admin/utils"
)

// Config carries the router's deployment knobs. Zero values fall back to
// the defaults below.
type Config struct {
	AppName            string
	AllowOrigins       []string
	EnableMetrics      bool
	MetricsPath        string
	RateLimitPerMinute int
	BodyLimit          int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
}

func (c Config) bodyLimit() int {
	if c.BodyLimit > 0 {
		return c.BodyLimit
	}
	return int(utils.MultipartMemoryLimit)
}

func (c Config) metricsPath() string {
	if c.MetricsPath != "" {
		return c.MetricsPath
	}
	return "/metrics"
}

func durationOr(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	ShutdownWithContext(ctx context.Context) error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app               *fiber.App
	cfg               Config
	tutorHandler      handlers.TutorHandlerInterface
	courseHandler     handlers.CourseHandlerInterface
	userHandler       handlers.UserHandlerInterface
	workspaceHandler  handlers.WorkspaceHandlerInterface
	statisticsHandler handlers.StatisticsHandlerInterface
	sessionMiddleware *middleware.SessionMiddleware
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	cfg Config,
	tutorHandler handlers.TutorHandlerInterface,
	courseHandler handlers.CourseHandlerInterface,
	userHandler handlers.UserHandlerInterface,
	workspaceHandler handlers.WorkspaceHandlerInterface,
	statisticsHandler handlers.StatisticsHandlerInterface,
	sessionMiddleware *middleware.SessionMiddleware,
) Router {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: "academy-admin",
		ErrorHandler: errorHandler,
		BodyLimit:    cfg.bodyLimit(),
		ReadTimeout:  durationOr(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: durationOr(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:  durationOr(cfg.IdleTimeout, 60*time.Second),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:               app,
		cfg:               cfg,
		tutorHandler:      tutorHandler,
		courseHandler:     courseHandler,
		userHandler:       userHandler,
		workspaceHandler:  workspaceHandler,
		statisticsHandler: statisticsHandler,
		sessionMiddleware: sessionMiddleware,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	api := r.app.Group("/api/v1")

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)

	if r.cfg.EnableMetrics {
		r.app.Get(r.cfg.metricsPath(), adaptor.HTTPHandler(promhttp.Handler()))
	}

	api.Use(limiter.New(limiter.Config{
		Max:        r.rateLimit(),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	admin := api.Group("/admin")

	// Session bootstrap is the only admin endpoint reachable without a
	// session token.
	admin.Post("/session", r.workspaceHandler.OpenSession)

	protected := admin.Group("", r.sessionMiddleware.RequireSession())

	// Statistics routes are registered before the entity routes so
	// /statistics/:entity never collides with /:entity/:id.
	protected.Get("/statistics/dashboard", r.statisticsHandler.DashboardStatistics)
	protected.Get("/statistics/:entity", r.statisticsHandler.EntityStatistics)

	// Client-derived stats also precede the entity groups; Fiber dispatches
	// to the first registered match, so /tutors/stats would otherwise hit
	// /tutors/:id with id="stats".
	protected.Get("/:entity/stats", r.statisticsHandler.DerivedStatistics)

	protected.Get("/preferences", r.workspaceHandler.GetPreferences)
	protected.Put("/preferences", r.workspaceHandler.UpdatePreferences)

	// Tutor table
	tutors := protected.Group("/tutors")
	tutors.Get("/", r.tutorHandler.ListTutors)
	tutors.Post("/", r.tutorHandler.CreateTutor)
	tutors.Post("/reload", r.tutorHandler.ReloadTutors)
	tutors.Post("/bulk/status", r.tutorHandler.BulkToggleTutorStatus)
	tutors.Post("/bulk/delete", r.tutorHandler.BulkDeleteTutors)
	tutors.Get("/:id", r.tutorHandler.GetTutor)
	tutors.Put("/:id", r.tutorHandler.UpdateTutor)
	tutors.Patch("/:id/toggle-status", r.tutorHandler.ToggleTutorStatus)
	tutors.Delete("/:id", r.tutorHandler.DeleteTutor)

	// Course table
	courses := protected.Group("/courses")
	courses.Get("/", r.courseHandler.ListCourses)
	courses.Post("/", r.courseHandler.CreateCourse)
	courses.Post("/reload", r.courseHandler.ReloadCourses)
	courses.Post("/bulk/status", r.courseHandler.BulkToggleCourseStatus)
	courses.Post("/bulk/delete", r.courseHandler.BulkDeleteCourses)
	courses.Get("/:id", r.courseHandler.GetCourse)
	courses.Put("/:id", r.courseHandler.UpdateCourse)
	courses.Patch("/:id/toggle-status", r.courseHandler.ToggleCourseStatus)
	courses.Delete("/:id", r.courseHandler.DeleteCourse)

	// User table
	users := protected.Group("/users")
	users.Get("/", r.userHandler.ListUsers)
	users.Post("/", r.userHandler.CreateUser)
	users.Post("/reload", r.userHandler.ReloadUsers)
	users.Post("/bulk/status", r.userHandler.BulkToggleUserStatus)
	users.Post("/bulk/delete", r.userHandler.BulkDeleteUsers)
	users.Get("/:id", r.userHandler.GetUser)
	users.Put("/:id", r.userHandler.UpdateUser)
	users.Patch("/:id/toggle-status", r.userHandler.ToggleUserStatus)
	users.Delete("/:id", r.userHandler.DeleteUser)

	// Workspace mutations shared by every entity table
	protected.Post("/:entity/selection/toggle", r.workspaceHandler.ToggleSelection)
	protected.Post("/:entity/selection/toggle-page", r.workspaceHandler.ToggleSelectPage)
	protected.Post("/:entity/selection/clear", r.workspaceHandler.ClearSelection)
	protected.Post("/:entity/modal/open", r.workspaceHandler.OpenModal)
	protected.Post("/:entity/modal/close", r.workspaceHandler.CloseModal)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

func (r *FiberRouter) rateLimit() int {
	if r.cfg.RateLimitPerMinute > 0 {
		return r.cfg.RateLimitPerMinute
	}
	return 2000
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'; frame-ancestors 'none';",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.allowOrigins(),
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Requested-With",
			"X-Request-ID",
			"X-Workspace-Token",
			"Cache-Control",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           utils.CORSMaxAge,
	}))

	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	r.app.Use(middleware.Metrics())

	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","protocol":"${protocol}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent}}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

func (r *FiberRouter) allowOrigins() []string {
	if len(r.cfg.AllowOrigins) > 0 {
		return r.cfg.AllowOrigins
	}
	return []string{"http://localhost:3000"}
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// ShutdownWithContext gracefully stops the HTTP server, giving in-flight
// requests until the context deadline to finish.
func (r *FiberRouter) ShutdownWithContext(ctx context.Context) error {
	return r.app.ShutdownWithContext(ctx)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"version":   "1.0.0",
			"service":   "academy-admin",
		},
	})
}

// Not found handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	requestID := c.Locals("requestid")

	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestID,
			},
		},
	})
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error %d: %v", code, err)

	requestID := c.Locals("requestid")

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: "An internal server error occurred",
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestID,
			},
		},
	})
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
