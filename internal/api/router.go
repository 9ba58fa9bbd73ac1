package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/careerhub/resume-api/internal/api/handler"
	"github.com/careerhub/resume-api/internal/api/middleware"
	"github.com/careerhub/resume-api/internal/core/domain"
	"github.com/careerhub/resume-api/internal/core/service"
	mongodb "github.com/careerhub/resume-api/internal/infrastructure/db/mongo"
	redisdb "github.com/careerhub/resume-api/internal/infrastructure/db/redis"
	"github.com/careerhub/resume-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The dispatcher is owned by the caller so its workers share the process
// lifecycle, not the router's.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	dispatcher handler.NoticeDispatcher,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("resume_api"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	credStore := mongodb.NewCredentialStore(db)
	resumeRepo := mongodb.NewResumeRepository(db)
	issuer := service.NewTokenIssuer(
		cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret,
		cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL,
	)
	limiter := redisdb.NewAttemptLimiter(rdb)

	authService := service.NewAuthService(userRepo, credStore, issuer, limiter, log)
	resumeService := service.NewResumeService(resumeRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	resumeHandler := handler.NewResumeHandler(resumeService, dispatcher)

	authGuard := middleware.Auth(authService)
	refreshGuard := middleware.RefreshGuard(authService)
	recruiterOnly := middleware.RBAC(domain.RoleRecruiter)

	// --- Auth routes ---
	e.POST("/auth/sign-up", authHandler.SignUp)
	e.POST("/auth/sign-in", authHandler.SignIn)
	e.POST("/auth/token", authHandler.Refresh)
	e.POST("/auth/sign-out", authHandler.SignOut, refreshGuard)

	// --- User routes ---
	e.GET("/users/me", authHandler.Me, authGuard)

	// --- Resume routes ---
	resumes := e.Group("/resumes", authGuard)
	resumes.POST("", resumeHandler.Create)
	resumes.GET("", resumeHandler.List)
	resumes.GET("/:id", resumeHandler.Get)
	resumes.PATCH("/:id", resumeHandler.Update)
	resumes.DELETE("/:id", resumeHandler.Delete)
	resumes.PATCH("/:id/status", resumeHandler.UpdateStatus, recruiterOnly)
	resumes.GET("/:id/logs", resumeHandler.History, recruiterOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
