package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bikram73/Netflix-Clone/internal/core/port"
	"github.com/bikram73/Netflix-Clone/internal/infra/config"
	"github.com/bikram73/Netflix-Clone/internal/infra/database"
	kafkainfra "github.com/bikram73/Netflix-Clone/internal/infra/kafka"
	"github.com/bikram73/Netflix-Clone/internal/infra/logger"
	"github.com/bikram73/Netflix-Clone/internal/infra/omdb"
	"github.com/bikram73/Netflix-Clone/internal/infra/security"
	"github.com/bikram73/Netflix-Clone/internal/infra/telemetry"
	postgresrepo "github.com/bikram73/Netflix-Clone/internal/repository/postgres"
	"github.com/bikram73/Netflix-Clone/internal/transport/http/middleware"
	"github.com/bikram73/Netflix-Clone/internal/transport/http/routes"
	"github.com/bikram73/Netflix-Clone/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

type Application struct {
	cfg      *config.AppConfig
	engine   *gin.Engine
	logger   *zap.Logger
	releaser *releaser
}

func New(ctx context.Context, cfg *config.AppConfig) (_ *Application, err error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	// Everything acquired below is released if a later step fails.
	rel := &releaser{logger: log}
	defer func() {
		if err != nil {
			rel.run(context.Background())
		}
	}()

	hasher, err := security.NewPasswordHasher(security.Argon2Config{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	})
	if err != nil {
		return nil, fmt.Errorf("configure argon2: %w", err)
	}

	tel, err := telemetry.Attach(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	rel.add("telemetry", func(ctx context.Context) error {
		flushCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		return tel.Shutdown(flushCtx)
	})

	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, perr := kafkainfra.NewProducer(cfg.Kafka, log)
		if perr != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(perr))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			rel.add("kafka producer", func(context.Context) error { return producer.Close() })
			eventPublisher = kafkainfra.NewEventPublisher(producer, cfg.App, log)
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	rel.add("postgres pool", func(context.Context) error {
		pool.Close()
		return nil
	})

	if cfg.Postgres.AutoMigrate {
		if err := database.Migrate(ctx, pool, log); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	repos := postgresrepo.NewRepositories(pool)

	if !cfg.Metadata.KeyConfigured() {
		log.Warn("metadata api key not configured, upstream lookups will be rejected by the provider")
	}
	metadataClient := omdb.NewClient(cfg.Metadata, log, omdb.WithRecorder(tel))

	authService := usecase.NewAuthService(repos.Users, hasher, eventPublisher, log).
		WithMetrics(tel)
	catalogService := usecase.NewCatalogService(metadataClient)

	httpMetrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{
		Registerer: tel.Registry(),
		Namespace:  "netflix",
	})
	if err != nil {
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	engine := routes.Register(routes.Dependencies{
		Config:   cfg,
		Logger:   log,
		Database: pool,
		Metrics:  httpMetrics,
		Gatherer: tel.Registry(),
		Services: routes.ServiceSet{
			Auth:    authService,
			Catalog: catalogService,
		},
	})

	return &Application{
		cfg:      cfg,
		engine:   engine,
		logger:   log,
		releaser: rel,
	}, nil
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer a.releaser.run(context.Background())

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting movie API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
		zap.Bool("metadata_key_configured", a.cfg.Metadata.KeyConfigured()),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down movie API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
