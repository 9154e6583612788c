// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/nutriplan/v2/internal/application/planner"
	"github.com/nutriplan/v2/internal/infrastructure/catalog"
	"github.com/nutriplan/v2/internal/infrastructure/config"
	"github.com/nutriplan/v2/internal/infrastructure/enrichment"
	"github.com/nutriplan/v2/internal/infrastructure/http/server"
	"github.com/nutriplan/v2/internal/infrastructure/monitoring"
	gormRepo "github.com/nutriplan/v2/internal/infrastructure/persistence/gorm"
	"github.com/nutriplan/v2/internal/infrastructure/persistence/memory"
	redisRepo "github.com/nutriplan/v2/internal/infrastructure/persistence/redis"
	"github.com/nutriplan/v2/internal/infrastructure/persistence/sqlite"
	"github.com/nutriplan/v2/internal/ports/outbound"
	"github.com/nutriplan/v2/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	CatalogModule,
	RepositoryModule,
	ServiceModule,
	MonitoringModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the SQLite database with GORM
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		logLevel := gormLogger.Silent
		if cfg.Database.LogQueries || cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(cfg.Database.Path, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		if cfg.Database.SeedCatalog {
			if err := sqlite.SeedCatalog(db); err != nil {
				log.Warn("Failed to seed food catalog", zap.Error(err))
			}
		}

		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
			zap.Bool("in_memory", cfg.Database.Path == ""),
		)

		return db, nil
	},
)

// CacheModule provides the plan cache backend selected by configuration
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if cfg.Cache.Backend == "redis" {
			client, err := redisRepo.NewClient(cfg)
			if err != nil {
				return nil, fmt.Errorf("failed to connect to Redis: %w", err)
			}
			log.Info("Using Redis plan cache", zap.String("addr", cfg.RedisAddr()))
			return redisRepo.NewCacheRepository(client, log), nil
		}

		log.Info("Using in-memory plan cache")
		return memory.NewCacheRepository(), nil
	},
)

// CatalogModule provides the food catalog selected by configuration
var CatalogModule = fx.Provide(
	func(cfg *config.Config, db *gorm.DB, log *zap.Logger) (outbound.FoodCatalog, error) {
		if cfg.Catalog.Source == "file" {
			fileCatalog, err := catalog.LoadFileCatalog(cfg.Catalog.FilePath)
			if err != nil {
				return nil, fmt.Errorf("failed to load catalog file: %w", err)
			}
			log.Info("Using file food catalog", zap.String("path", cfg.Catalog.FilePath))
			return fileCatalog, nil
		}

		log.Info("Using database food catalog")
		return gormRepo.NewFoodCatalog(db), nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewPlanRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	enrichment.NewGuidelineEnricher,
	planner.NewPlannerService,
)

// MonitoringModule provides metrics collection
var MonitoringModule = fx.Provide(
	monitoring.NewMetricsCollector,
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	server *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting NutriPlan application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down NutriPlan application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
