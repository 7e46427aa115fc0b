package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/allwaveav/boq-backend/internal/api"
	boqapi "github.com/allwaveav/boq-backend/internal/api/boq"
	productapi "github.com/allwaveav/boq-backend/internal/api/product"
	"github.com/allwaveav/boq-backend/internal/catalog"
	"github.com/allwaveav/boq-backend/internal/config"
	"github.com/allwaveav/boq-backend/internal/contextcache"
	"github.com/allwaveav/boq-backend/internal/integration/gemini"
	"github.com/allwaveav/boq-backend/internal/pkg/validator"
	"github.com/allwaveav/boq-backend/internal/repository"
	boquc "github.com/allwaveav/boq-backend/internal/usecase/boq"
	productuc "github.com/allwaveav/boq-backend/internal/usecase/product"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// geminiConnector is the full surface the wiring needs from a connector,
// real or mock.
type geminiConnector interface {
	boquc.GeminiConnector
	productuc.GroundedConnector
	contextcache.Creator
}

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Load the reference product catalog
	cat, err := catalog.Load(cfg.CatalogPath, logger)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	// Setup the durable store for the context-cache record. Postgres when
	// configured, otherwise process memory.
	var db *pgxpool.Pool
	var cacheStore contextcache.Store
	if cfg.DatabaseURL != "" {
		db, err = setupDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("setup database: %w", err)
		}

		logger.Info("Running database migrations")
		if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
			db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		cacheStore = repository.NewCacheStatePostgres(db)
	} else {
		logger.Info("No DATABASE_URL configured, cache state is in-memory only")
		cacheStore = contextcache.NewMemoryStore()
	}

	// Initialize the Gemini connector (with mock support)
	var geminiConn geminiConnector
	if cfg.EnableMocks {
		logger.Info("Using mock Gemini connector")
		geminiConn = gemini.NewMockConnector(logger)
	} else {
		geminiConn, err = gemini.NewConnector(ctx, cfg.GeminiCfg, logger)
		if err != nil {
			if db != nil {
				db.Close()
			}
			return nil, fmt.Errorf("setup gemini connector: %w", err)
		}
	}

	// Initialize the context cache manager
	cacheManager, err := contextcache.NewManager(cacheStore, geminiConn, cat, contextcache.Config{
		ServerTTL:   cfg.CacheCfg.ServerTTL,
		LocalWindow: cfg.CacheCfg.LocalWindow,
	}, logger)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("setup context cache manager: %w", err)
	}

	// Initialize use cases
	boqUC := boquc.NewUsecase(geminiConn, cacheManager, cat, cfg.GeminiCfg, logger)
	productUC := productuc.NewUsecase(geminiConn, cfg.GeminiCfg.DetailsModel, cfg.ProductCacheTTL, logger)
	logger.Info("Use cases initialized")

	// Setup API handlers
	v := validator.New()
	boqHandler := boqapi.NewHandler(boqUC, v, cfg.RetryCfg)
	productHandler := productapi.NewHandler(productUC, cat, v)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(boqHandler, productHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}
