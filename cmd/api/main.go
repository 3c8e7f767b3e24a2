package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codeelevater/alumni-connect/config"
	"github.com/codeelevater/alumni-connect/internal/cache"
	"github.com/codeelevater/alumni-connect/internal/handlers"
	"github.com/codeelevater/alumni-connect/internal/middleware"
	"github.com/codeelevater/alumni-connect/internal/repository"
	"github.com/codeelevater/alumni-connect/internal/services"
	"github.com/codeelevater/alumni-connect/internal/storage"
	"github.com/codeelevater/alumni-connect/internal/views"
	"github.com/codeelevater/alumni-connect/pkg/httpclient"
	"github.com/codeelevater/alumni-connect/pkg/logger"
	"github.com/codeelevater/alumni-connect/pkg/metrics"
	"github.com/codeelevater/alumni-connect/pkg/profiling"
	"github.com/codeelevater/alumni-connect/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

type routeHandlers struct {
	health      *handlers.HealthHandler
	students    *handlers.StudentHandler
	alumni      *handlers.AlumniHandler
	events      *handlers.EventHandler
	mentorships *handlers.MentorshipHandler
	dashboard   *handlers.DashboardHandler
	export      *handlers.ExportHandler
}

type rateLimiters struct {
	general    *middleware.RateLimiter
	mutation   *middleware.RateLimiter
	mentorship *middleware.RateLimiter
}

func (r rateLimiters) stop() {
	r.general.Stop()
	r.mutation.Stop()
	r.mentorship.Stop()
}

// registerAPIRoutes registers the JSON API under /api
func registerAPIRoutes(router *gin.Engine, cfg *config.Config, limiters rateLimiters, h routeHandlers) {
	api := router.Group("/api")
	// Utility endpoints (not versioned - operational endpoints)
	api.GET("/healthcheck", limiters.general.Middleware(), h.health.Healthcheck)
	api.GET("/metrics", limiters.general.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	v1.Use(limiters.general.Middleware(), middleware.BodySizeLimitMiddleware(middleware.DefaultMaxBodySize))

	v1.GET("/students", h.students.ListStudents)
	v1.GET("/students/:id", h.students.GetStudent)
	v1.GET("/alumni", h.alumni.ListAlumni)
	v1.GET("/alumni/notable", h.alumni.ListNotableAlumni)
	v1.GET("/alumni/:id", h.alumni.GetAlumni)
	v1.PATCH("/alumni/:id", limiters.mutation.Middleware(), h.alumni.UpdateAlumniProfile)
	v1.GET("/events", h.events.ListEvents)
	v1.POST("/mentorships", limiters.mentorship.Middleware(), h.mentorships.RequestMentorship)
	v1.GET("/mentorships", h.mentorships.ListMentorships)
	v1.GET("/dashboard", h.dashboard.GetDashboard)

	admin := v1.Group("", middleware.AdminTokenMiddleware(cfg.Auth.AdminAPIToken))
	admin.DELETE("/students/:id", limiters.mutation.Middleware(), h.students.DeleteStudent)
	admin.DELETE("/alumni/:id", limiters.mutation.Middleware(), h.alumni.DeleteAlumni)
	admin.POST("/events", limiters.mutation.Middleware(), h.events.CreateEvent)
	admin.DELETE("/events/:id", limiters.mutation.Middleware(), h.events.DeleteEvent)
	admin.GET("/admin/export", h.export.ExportWorkbook)
}

// registerPageRoutes registers the server-rendered dashboard
func registerPageRoutes(router *gin.Engine, limiters rateLimiters, h routeHandlers) {
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})
	router.GET("/dashboard", limiters.general.Middleware(), h.dashboard.RenderDashboard)
	router.POST("/dashboard/mentorships",
		limiters.mentorship.Middleware(),
		middleware.BodySizeLimitMiddleware(middleware.DefaultMaxBodySize),
		h.dashboard.RequestMentorship)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Alumni Connect",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.String("storage_backend", cfg.Storage.Backend),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.Init(tracing.Config{
		ServiceName:      cfg.Observability.ServiceName,
		ServiceNamespace: cfg.Observability.ServiceNamespace,
		ServiceVersion:   cfg.Observability.ServiceVersion,
		InstanceID:       cfg.Observability.ServiceInstanceID,
		Environment:      cfg.Server.AppEnv,
		Endpoint:         cfg.Observability.ExporterEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.Start(cfg.Profiling, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer stopProfiler()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Snapshot storage and the in-memory store on top of it
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	kv, closeStorage, err := storage.New(startupCtx, cfg)
	if err != nil {
		cancelStartup()
		logger.Fatal("Failed to initialize snapshot storage", zap.Error(err))
	}
	defer closeStorage()

	store := repository.New(kv)

	// Load synchronously so the healthcheck only turns green with data in place
	if err := store.Load(startupCtx); err != nil {
		cancelStartup()
		logger.Fatal("Failed to load collections", zap.Error(err))
	}
	cancelStartup()

	requestedCache := cache.NewRequestedCache(time.Duration(cfg.Session.RequestedSetTTLMinutes) * time.Minute)

	// Initialize HTTP client for external API calls
	httpClient := httpclient.NewStandardClient()

	// Initialize services
	directoryService := services.NewDirectoryService(store, requestedCache)
	mentorshipService := services.NewMentorshipService(store, requestedCache, cfg, httpClient)
	adminService := services.NewAdminService(store)
	exportService := services.NewExportService(store)

	// Initialize handlers
	h := routeHandlers{
		health:      handlers.NewHealthHandler(directoryService.IsReady),
		students:    handlers.NewStudentHandler(directoryService, adminService),
		alumni:      handlers.NewAlumniHandler(directoryService, adminService),
		events:      handlers.NewEventHandler(directoryService, adminService),
		mentorships: handlers.NewMentorshipHandler(mentorshipService),
		dashboard:   handlers.NewDashboardHandler(directoryService, mentorshipService),
		export:      handlers.NewExportHandler(exportService),
	}

	templates, err := views.Templates()
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.SetHTMLTemplate(templates)

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.AdminTokenHeader, middleware.RequestIDHeader, "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	// Different limits for different endpoint types
	limiters := rateLimiters{
		general:    middleware.NewRateLimiter(100, 200), // 100 req/sec, burst of 200
		mutation:   middleware.NewRateLimiter(10, 20),   // 10 req/sec, burst of 20
		mentorship: middleware.NewRateLimiter(1, 5),     // 1 req/sec, burst of 5
	}
	defer limiters.stop()

	registerAPIRoutes(router, cfg, limiters, h)
	registerPageRoutes(router, limiters, h)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
