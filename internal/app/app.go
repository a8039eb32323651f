package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/task-manager/docs"
	"github.com/prperemyshlev/task-manager/internal/config"
	"github.com/prperemyshlev/task-manager/internal/email"
	"github.com/prperemyshlev/task-manager/internal/handler"
	"github.com/prperemyshlev/task-manager/internal/repository"
	"github.com/prperemyshlev/task-manager/internal/service"
	"github.com/prperemyshlev/task-manager/internal/utils"
	"github.com/prperemyshlev/task-manager/pkg/observability"
	"github.com/swaggo/swag"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra     Infrastructure
	config    *config.Config
	router    *gin.Engine
	server    *http.Server
	scheduler *Scheduler
}

type handlers struct {
	auth    *handler.AuthHandler
	project *handler.ProjectHandler
	task    *handler.TaskHandler
	health  *HealthChecker
}

func NewApp(infra Infrastructure, cfg *config.Config) (*App, error) {
	logger := infra.Logger()

	if err := utils.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	repos := repository.NewRepositories(infra.Postgres())

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
	)

	denylist := service.NewRedisTokenDenylist(infra.Redis())
	rateLimiter := service.NewRateLimiter(infra.Redis())

	var mailer email.Sender = email.NewLogSender(logger)
	if cfg.SMTP.Enabled() {
		mailer = email.NewSMTPSender(cfg.SMTP)
	}

	authService := service.NewAuthService(
		repos.User,
		repos.FailedAttempt,
		repos.Token,
		jwtManager,
		mailer,
		denylist,
		logger,
		service.AuthOptions{
			BCryptCost: cfg.Security.BCryptCost,
			Lockout: service.LockoutPolicy{
				Threshold: cfg.Security.LockoutThreshold,
				Window:    cfg.Security.LockoutWindow.Duration,
			},
			RotateRefreshTokens: cfg.Security.RotateRefreshTokens,
			APIURL:              cfg.App.APIURL,
		},
	)
	projectService := service.NewProjectService(repos.Project)
	taskService := service.NewTaskService(repos.Task, repos.Project, logger)

	h := handlers{
		auth: handler.NewAuthHandler(authService, handler.CookieOptions{
			MaxAge: cfg.JWT.RefreshTokenExpiry.Duration,
			Secure: cfg.Security.CookieSecure,
		}, cfg.App.ClientURL),
		project: handler.NewProjectHandler(projectService),
		task:    handler.NewTaskHandler(taskService),
		health: NewHealthChecker(map[string]pinger{
			"postgres": infra.Postgres(),
			"redis":    infra.Redis(),
		}),
	}

	scheduler := NewScheduler(logger)
	cleanup := expiredSessionCleanup(repos.Token, cfg.JWT.RefreshTokenExpiry.Duration, time.Now, logger)
	if err := scheduler.Register("token-cleanup", cfg.Jobs.TokenCleanupSchedule, cleanup); err != nil {
		return nil, err
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(handler.LoggerMiddleware(logger))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, h, authService, rateLimiter, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:     infra,
		config:    cfg,
		router:    router,
		server:    srv,
		scheduler: scheduler,
	}, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	h handlers,
	authService service.AuthService,
	rateLimiter handler.Limiter,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", h.health.Handler)
	router.GET("/swagger/doc.json", swaggerDoc)

	throttle := handler.RateLimitMiddleware(
		rateLimiter,
		cfg.Security.RateLimitRequests,
		cfg.Security.RateLimitWindow.Duration,
		handler.IPBasedKey,
	)
	requireAuth := handler.AuthMiddleware(authService)

	api := router.Group("/api/v1")
	{
		user := api.Group("/user")
		{
			user.POST("/registration", throttle, h.auth.Registration)
			user.POST("/login", throttle, h.auth.Login)
			user.POST("/logout", h.auth.Logout)
			user.GET("/activate/:link", h.auth.Activate)
			user.POST("/refresh", h.auth.Refresh)
			user.GET("/me", requireAuth, h.auth.GetMe)
		}

		project := api.Group("/project", requireAuth)
		{
			project.POST("/create", h.project.Create)
			project.GET("", h.project.List)
			project.GET("/:id", h.project.Get)
			project.DELETE("/delete/:id", h.project.Delete)
		}

		task := api.Group("/task", requireAuth)
		{
			task.POST("", h.task.Create)
			task.GET("", h.task.List)
			task.GET("/:id", h.task.Get)
			task.PUT("/:id", h.task.Update)
			task.DELETE("/:id", h.task.Delete)
		}
	}
}

func swaggerDoc(c *gin.Context) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "api documentation unavailable"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	a.scheduler.Start()

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

// Shutdown stops the HTTP server and background jobs, then releases the infrastructure
func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.scheduler.Stop(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if infraErr := a.infra.Shutdown(ctx); infraErr != nil {
		err = errors.Join(err, infraErr)
	}
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
