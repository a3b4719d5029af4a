package app

import (
	"context"
	"time"

	"gigmatch/internal/config"
	"gigmatch/internal/database"
	dbpostgres "gigmatch/internal/database/postgres"
	"gigmatch/internal/domain/matching"
	"gigmatch/internal/infrastructure/cache"
	"gigmatch/internal/pkg/jwt"
	"gigmatch/internal/repository"
	"gigmatch/internal/scheduler"
	"gigmatch/internal/usecase"
	jobuc "gigmatch/internal/usecase/job"

	"go.uber.org/zap"
)

const expiryLockTTL = 2 * time.Minute

// Container owns every long-lived dependency of the server process.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	JWT    jwt.Service

	Matching    usecase.MatchingUsecase
	Preferences usecase.PreferenceUsecase
	Expiry      *jobuc.ExpiryService
	Scheduler   *scheduler.Scheduler
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return newContainerWithDB(cfg, logger, db, cache.NewRedis(cfg.Redis, logger.Named("cache")))
}

func newContainerWithDB(cfg config.Config, logger *zap.Logger, db database.DB, rc *cache.Redis) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	engine, err := matching.NewEngine(cfg.Matching.Policy, matching.DefaultCatalog())
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	candidates := repository.NewPostgresCandidateRepository(db)
	preferences := repository.NewPostgresPreferenceRepository(db)
	jobs := repository.NewPostgresJobRepository(db)

	matchingUC := usecase.NewMatchingUsecase(engine, candidates, preferences, jobs, rc, usecase.MatchingConfig{
		LookbackDays:   cfg.Matching.LookbackDays,
		MaxJobsPerCall: cfg.Matching.MaxJobsPerCall,
		CacheTTL:       cfg.Matching.CacheTTL,
	}, logger.Named("matching"))
	preferenceUC := usecase.NewPreferenceUsecase(preferences, rc, logger.Named("preferences"))

	expiry := jobuc.NewExpiryService(jobs, rc, logger.Named("expiry"), expiryLockTTL)

	logger.Info("matching engine ready",
		zap.String("weights_version", engine.Policy().Weights.Version),
		zap.Int("saturation", engine.Policy().Saturation),
		zap.Duration("cache_ttl", cfg.Matching.CacheTTL),
	)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		Cache:       rc,
		JWT:         jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn),
		Matching:    matchingUC,
		Preferences: preferenceUC,
		Expiry:      expiry,
		Scheduler:   scheduler.New(expiry, cfg.App.ExpirySweep, logger),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Warn("redis close failed", zap.Error(err))
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
