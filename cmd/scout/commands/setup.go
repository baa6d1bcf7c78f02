package commands

import (
	"fmt"

	"github.com/tverano/solarscout/internal/collect"
	"github.com/tverano/solarscout/internal/enrichment"
	"github.com/tverano/solarscout/internal/scoringconfig"
	"github.com/tverano/solarscout/internal/service"
	"github.com/tverano/solarscout/internal/store"
	"github.com/tverano/solarscout/pkg/config"
	"github.com/tverano/solarscout/pkg/httputil"
	"github.com/tverano/solarscout/pkg/logger"
	"github.com/tverano/solarscout/pkg/redis"
)

// setup loads config and builds the logger. Every command starts here.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	if scoringConfigPath != "" {
		cfg.ScoringConfigPath = scoringConfigPath
	}

	log := logger.New(cfg)
	return cfg, log, nil
}

// loadScoringConfig loads the optional scoring config file. Returns nil
// when no file is configured, which means engine defaults.
func loadScoringConfig(cfg *config.Config, log *logger.Logger) (*scoringconfig.Config, error) {
	if cfg.ScoringConfigPath == "" {
		return nil, nil
	}

	sc, _, err := scoringconfig.Load(cfg.ScoringConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load scoring config: %w", err)
	}

	hash, err := scoringconfig.Hash(sc)
	if err != nil {
		return nil, fmt.Errorf("hash scoring config: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"path":      cfg.ScoringConfigPath,
		"config_id": sc.Meta.ConfigID,
		"hash":      hash[:12],
	}).Info("Loaded scoring config")

	return sc, nil
}

// buildService builds the scoring service from config.
func buildService(cfg *config.Config, log *logger.Logger) (*service.Service, error) {
	sc, err := loadScoringConfig(cfg, log)
	if err != nil {
		return nil, err
	}
	return service.New(sc, log), nil
}

// buildPipeline wires the collectors and scoring service into the
// enrichment pipeline. st may be nil for offline runs.
func buildPipeline(cfg *config.Config, log *logger.Logger, scorer *service.Service, st *store.Store) (*enrichment.Pipeline, *redis.Client, error) {
	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(redisClient, "solarscout")

	httpClient := httputil.New(log, cfg.Assessor.RatePerSec)

	properties := collect.NewPropertyCollector(httpClient, cache, cfg.Assessor.BaseURL, log)
	utilities := collect.NewUtilityCollector(cache, log)
	roofs := collect.NewRoofCollector(log)
	tracer := collect.NewSkipTracer(log)

	pipeline := enrichment.New(properties, utilities, roofs, tracer, scorer, st, log)
	return pipeline, redisClient, nil
}
