package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mickeyAlem27/Super-backend/internal/infra/config"
	"github.com/mickeyAlem27/Super-backend/internal/transport/http/handlers"
	"github.com/mickeyAlem27/Super-backend/internal/transport/http/middleware"
	"github.com/mickeyAlem27/Super-backend/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Accounts      *usecase.AccountService
	PasswordReset *usecase.PasswordResetService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config   *config.AppConfig
	Logger   *zap.Logger
	Services ServiceSet
	Verifier middleware.TokenVerifier
	Metrics  *middleware.HTTPMetrics
	Database DatabaseChecker
	Cache    CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.App.CORSOrigins))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	authMiddleware := middleware.RequireAuth(deps.Verifier)

	checks := make(map[string]handlers.ReadinessCheck, 2)
	if deps.Database != nil {
		checks["database"] = deps.Database.Ping
	}
	if deps.Cache != nil {
		checks["redis"] = deps.Cache.HealthCheck
	}

	healthHandler := handlers.NewHealthHandler(checks)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	accountHandler := handlers.NewAccountHandler(deps.Services.Accounts)
	profileHandler := handlers.NewProfileHandler(deps.Services.Accounts)
	passwordHandler := handlers.NewPasswordHandler(deps.Services.Accounts, deps.Services.PasswordReset)

	account := r.Group("/account")
	{
		account.POST("/register", accountHandler.Register)
		account.POST("/login", accountHandler.Login)
		account.POST("/password/forgot", passwordHandler.Forgot)

		account.GET("/profile", authMiddleware, profileHandler.Get)
		account.PUT("/profile", authMiddleware, profileHandler.Update)
		account.PUT("/password/change", authMiddleware, passwordHandler.Change)
		account.POST("/logout", authMiddleware, accountHandler.Logout)
		account.DELETE("/delete", authMiddleware, accountHandler.SoftDelete)
		account.DELETE("/delete/:id", authMiddleware, accountHandler.HardDelete)
	}

	return r
}
