package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/mka-platform/lms-api/internal/api/handler"
	"github.com/mka-platform/lms-api/internal/api/middleware"
	"github.com/mka-platform/lms-api/internal/core/service"
	"github.com/mka-platform/lms-api/internal/infrastructure/config"
	"github.com/mka-platform/lms-api/internal/infrastructure/db/memory"
	"github.com/mka-platform/lms-api/internal/infrastructure/db/postgres"
	redisdb "github.com/mka-platform/lms-api/internal/infrastructure/db/redis"
	"github.com/mka-platform/lms-api/internal/infrastructure/mail"
)

// NewRouter builds the Echo instance with every dependency wired and all
// routes registered. The route table matches what the admin front-end
// already calls (user management lives under /auth, profile pages under
// /users).
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("lms"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	fallback := memory.NewFallbackStore()
	tokens := redisdb.NewTokenStore(rdb)
	mailer := mail.NewSendGridMailer(mail.Config{
		APIKey:      cfg.SendGrid.APIKey,
		FromName:    cfg.SendGrid.FromName,
		FromEmail:   cfg.SendGrid.FromEmail,
		FrontendURL: cfg.FrontendURL,
	})

	userService := service.NewUserService(userRepo, fallback, mailer, log)
	authService := service.NewAuthService(userRepo, tokens, mailer, cfg.JWTSecret, cfg.TokenTTL, log)

	authHandler := handler.NewAuthHandler(userService, authService)
	userHandler := handler.NewUserHandler(userService, cfg.UploadDir)

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC("Admin")

	// --- Auth + account management (legacy /auth prefix kept for the UI) ---
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.POST("/send-code", authHandler.SendVerificationCode)
	auth.POST("/verify-code", authHandler.VerifyCode)

	auth.POST("/register", authHandler.Register, authRequired, adminOnly)
	auth.GET("", userHandler.List, authRequired)
	auth.GET("/:id", userHandler.GetByID, authRequired)
	auth.PATCH("/:id", userHandler.Update, authRequired)
	auth.DELETE("/users/:id", userHandler.Delete, authRequired, adminOnly)

	// --- Profile routes ---
	users := e.Group("/users", authRequired)
	users.GET("/:email", userHandler.GetByEmail)
	users.PATCH("/:email", userHandler.UpdateByEmail)

	// --- Uploaded profile pictures ---
	e.Static("/uploads", cfg.UploadDir)

	// --- Health probes / observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
