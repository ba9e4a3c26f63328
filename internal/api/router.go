package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SextoAndar/sexto-andar-auth/internal/api/handler"
	"github.com/SextoAndar/sexto-andar-auth/internal/api/middleware"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/ports"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/service"
	"github.com/SextoAndar/sexto-andar-auth/internal/infrastructure/config"
	mongodb "github.com/SextoAndar/sexto-andar-auth/internal/infrastructure/db/mongo"
	redisdb "github.com/SextoAndar/sexto-andar-auth/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, events ports.EventPublisher, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("sextoandar_auth"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Throttle.MaxFailures, time.Duration(cfg.Throttle.WindowMinutes)*time.Minute)

	hasher := service.NewPasswordHasher(cfg.Password.BcryptCost)
	tokens := service.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLMinutes)*time.Minute)
	authService := service.NewAuthService(accountRepo, hasher, tokens, throttle, log)
	adminService := service.NewAdminService(accountRepo, auditRepo, hasher, events, log)
	accountService := service.NewAccountService(accountRepo, log)

	authHandler := handler.NewAuthHandler(authService, accountService, tokens.TTL())
	adminHandler := handler.NewAdminHandler(adminService)
	profileHandler := handler.NewProfileHandler(accountService)

	requireAuth := middleware.Auth(tokens)
	requireAdmin := middleware.RBAC(domain.RoleAdmin)

	root := e.Group(cfg.BasePath)

	// --- Auth routes ---
	auth := root.Group("/auth")
	auth.POST("/register/user", authHandler.RegisterUser)
	auth.POST("/register/property-owner", authHandler.RegisterPropertyOwner)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.POST("/introspect", authHandler.Introspect)

	// --- Admin routes (ADMIN role only) ---
	admin := auth.Group("/admin", requireAuth, requireAdmin)
	admin.POST("/create-admin", adminHandler.CreateAdmin)
	admin.DELETE("/delete-admin/:id", adminHandler.DeleteAdmin)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// --- Profile picture routes ---
	profile := auth.Group("/profile")
	profile.POST("/picture", profileHandler.UploadPicture, requireAuth)
	profile.DELETE("/picture", profileHandler.DeletePicture, requireAuth)
	profile.GET("/picture/:id", profileHandler.GetPicture)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
