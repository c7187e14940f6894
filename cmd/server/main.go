package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/cedarcrest/ccis-admin-api/api/swagger"
	"github.com/cedarcrest/ccis-admin-api/internal/handler"
	"github.com/cedarcrest/ccis-admin-api/internal/middleware"
	"github.com/cedarcrest/ccis-admin-api/internal/service"
	"github.com/cedarcrest/ccis-admin-api/internal/storage"
	"github.com/cedarcrest/ccis-admin-api/internal/store"
	"github.com/cedarcrest/ccis-admin-api/pkg/cache"
	"github.com/cedarcrest/ccis-admin-api/pkg/config"
	"github.com/cedarcrest/ccis-admin-api/pkg/database"
	"github.com/cedarcrest/ccis-admin-api/pkg/drafting"
	"github.com/cedarcrest/ccis-admin-api/pkg/logger"
	"github.com/cedarcrest/ccis-admin-api/pkg/mailer"
	corsmiddleware "github.com/cedarcrest/ccis-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/cedarcrest/ccis-admin-api/pkg/middleware/requestid"
)

// @title CCIS Admin API
// @version 1.0.0
// @description School administration API for Cedar Crest International School
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx := context.Background()

	backend, err := newBackend(ctx, cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init storage backend", "driver", cfg.Storage.Driver, "error", err)
	}

	metrics := service.NewMetricsService()

	st, err := store.New(ctx, backend,
		store.WithLogger(logr),
		store.WithStatusWindow(cfg.Storage.SaveStatusWindow),
		store.WithSaveObserver(metrics.RecordSnapshotSave),
	)
	if err != nil {
		logr.Sugar().Fatalw("failed to init store", "error", err)
	}
	defer st.Close()

	var generator drafting.Generator
	if cfg.Drafting.URL != "" {
		generator = drafting.NewHTTPGenerator(cfg.Drafting.URL, cfg.Drafting.Timeout)
	}
	drafter := drafting.NewService(generator, cfg.School.Name, logr)
	relay := mailer.NewSimulatedRelay(cfg.Relay.Latency, cfg.Relay.FailureRate, logr)

	h := handler.Handlers{
		Students:      handler.NewStudentHandler(service.NewStudentService(st, nil, logr)),
		Teachers:      handler.NewTeacherHandler(service.NewTeacherService(st, nil, logr)),
		Grades:        handler.NewGradeHandler(service.NewGradeService(st, nil, logr), store.Subjects),
		Events:        handler.NewEventHandler(service.NewEventService(st, drafter, nil, logr)),
		Notifications: handler.NewNotificationHandler(service.NewNotificationService(st, relay, metrics, nil, logr)),
		Reports:       handler.NewReportHandler(service.NewReportService(st, drafter, cfg.School.Name, logr)),
		Settings:      handler.NewSettingsHandler(service.NewSettingsService(st, nil, logr)),
		Dashboard:     handler.NewDashboardHandler(service.NewDashboardService(st, logr)),
		Exports:       handler.NewExportHandler(service.NewExportService(st, logr)),
		Metrics:       handler.NewMetricsHandler(metrics, st),
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", h.Metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, h)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "storage", cfg.Storage.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// newBackend selects the snapshot backend from configuration.
func newBackend(ctx context.Context, cfg *config.Config) (store.Backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return storage.NewMemory(), nil
	case config.DriverFile:
		return storage.NewFile(cfg.Storage.FileDir)
	case config.DriverRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return storage.NewRedis(client, "ccis"), nil
	case config.DriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		pg := storage.NewPostgres(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
