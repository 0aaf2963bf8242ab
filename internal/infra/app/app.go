package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mickeyAlem27/Super-backend/internal/core/port"
	"github.com/mickeyAlem27/Super-backend/internal/infra/config"
	"github.com/mickeyAlem27/Super-backend/internal/infra/database"
	kafkainfra "github.com/mickeyAlem27/Super-backend/internal/infra/kafka"
	"github.com/mickeyAlem27/Super-backend/internal/infra/logger"
	"github.com/mickeyAlem27/Super-backend/internal/infra/notification"
	redisinfra "github.com/mickeyAlem27/Super-backend/internal/infra/redis"
	"github.com/mickeyAlem27/Super-backend/internal/infra/security"
	"github.com/mickeyAlem27/Super-backend/internal/infra/telemetry"
	postgresrepo "github.com/mickeyAlem27/Super-backend/internal/repository/postgres"
	redisrepo "github.com/mickeyAlem27/Super-backend/internal/repository/redis"
	"github.com/mickeyAlem27/Super-backend/internal/transport/http/middleware"
	"github.com/mickeyAlem27/Super-backend/internal/transport/http/routes"
	"github.com/mickeyAlem27/Super-backend/internal/usecase"
)

// shutdownStack releases acquired resources in reverse acquisition order.
type shutdownStack struct {
	fns []func()
}

func (s *shutdownStack) push(fn func()) {
	s.fns = append(s.fns, fn)
}

func (s *shutdownStack) close() {
	for i := len(s.fns) - 1; i >= 0; i-- {
		s.fns[i]()
	}
	s.fns = nil
}

// Application bundles the wired service and its infrastructure handles.
type Application struct {
	cfg      *config.AppConfig
	engine   *gin.Engine
	logger   *zap.Logger
	shutdown *shutdownStack
}

// New wires configuration into a runnable application. Resources acquired
// before a wiring failure are released before the error returns.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	shutdown := &shutdownStack{}
	fail := func(err error) (*Application, error) {
		shutdown.close()
		return nil, err
	}

	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	shutdown.push(func() { _ = log.Sync() })

	if cfg.Telemetry.Enabled {
		tracer, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
		if err != nil {
			return fail(fmt.Errorf("init telemetry: %w", err))
		}
		shutdown.push(func() { _ = tracer.Shutdown(context.Background()) })
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return fail(fmt.Errorf("init postgres: %w", err))
	}
	shutdown.push(pool.Close)

	argonCfg := security.Argon2Config{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	}
	if err := security.ConfigureArgon2(argonCfg); err != nil {
		return fail(fmt.Errorf("configure argon2: %w", err))
	}

	tokenService, err := security.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TokenTTL)
	if err != nil {
		return fail(fmt.Errorf("init token service: %w", err))
	}

	redisClient, err := redisinfra.NewClient(cfg.Redis, log)
	if err != nil {
		return fail(fmt.Errorf("init redis: %w", err))
	}
	shutdown.push(func() { _ = redisClient.Close() })

	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			shutdown.push(func() { _ = producer.Close() })
			eventPublisher = kafkainfra.NewEventPublisher(producer, cfg.App, log)
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	accounts := postgresrepo.NewAccountRepository(pool)
	resetTokens := redisrepo.NewResetTokenStore(redisClient.Client(), cfg.Redis.ResetTokenPrefix)
	resetNotifier := notification.NewLoggingResetNotifier(log)

	accountService := usecase.NewAccountService(accounts, security.Hasher{}, tokenService, eventPublisher, log)
	passwordResetService := usecase.NewPasswordResetService(accounts, resetTokens, resetNotifier, eventPublisher, log, cfg.Reset.TokenTTL)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		return fail(fmt.Errorf("init http metrics: %w", err))
	}

	engine := routes.Register(routes.Dependencies{
		Config:   cfg,
		Logger:   log,
		Verifier: tokenService,
		Metrics:  metrics,
		Database: pool,
		Cache:    redisClient,
		Services: routes.ServiceSet{
			Accounts:      accountService,
			PasswordReset: passwordResetService,
		},
	})

	return &Application{
		cfg:      cfg,
		engine:   engine,
		logger:   log,
		shutdown: shutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is cancelled or the
// server fails.
func (a *Application) Run(ctx context.Context) error {
	defer a.shutdown.close()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting account API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
