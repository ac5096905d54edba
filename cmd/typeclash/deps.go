package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ersonp/typeclash/internal/application/handlers"
	"github.com/ersonp/typeclash/internal/domain/ports"
	"github.com/ersonp/typeclash/internal/domain/services"
	"github.com/ersonp/typeclash/internal/infrastructure/config"
	"github.com/ersonp/typeclash/internal/infrastructure/logging"
	"github.com/ersonp/typeclash/internal/infrastructure/parsers"
	"github.com/ersonp/typeclash/internal/infrastructure/pokeapi"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and sources are internal.
type Deps struct {
	Config         *config.Config
	Logger         *zap.Logger
	CompareHandler *handlers.CompareHandler
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	basePath, err := configBasePath()
	if err != nil {
		return err
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if globalLogLevel != "" {
		cfg.Log.Level = globalLogLevel
	}

	logger, err := logging.New(cfg.Log.Level, os.Stderr)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	source, err := newCreatureSource(cfg, logger)
	if err != nil {
		return err
	}

	weights := services.Weights{
		DoubleDamageTo: cfg.Weights.DoubleDamageTo,
		HalfDamageFrom: cfg.Weights.HalfDamageFrom,
		NoDamageFrom:   cfg.Weights.NoDamageFrom,
	}
	if err := weights.Validate(); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}

	rosterService := services.NewRosterService(source, cfg.PokeAPI.Concurrency, logger.Named("roster"))
	advantageService := services.NewAdvantageService(weights, logger.Named("advantage"))

	return fn(&Deps{
		Config:         cfg,
		Logger:         logger,
		CompareHandler: handlers.NewCompareHandler(rosterService, advantageService, logger.Named("compare")),
	})
}

// newCreatureSource picks the roster file when one is given, PokeAPI otherwise.
func newCreatureSource(cfg *config.Config, logger *zap.Logger) (ports.CreatureSource, error) {
	if globalRoster != "" {
		src, err := parsers.LoadRosterFile(globalRoster)
		if err != nil {
			return nil, fmt.Errorf("loading roster: %w", err)
		}
		logger.Debug("using roster file", zap.String("path", globalRoster))
		return src, nil
	}

	client, err := pokeapi.NewClient(cfg.PokeAPI, cfg.Breaker, "typeclash/"+version, logger.Named("pokeapi"))
	if err != nil {
		return nil, fmt.Errorf("creating pokeapi client: %w", err)
	}
	return client, nil
}

func configBasePath() (string, error) {
	if globalConfigDir != "" {
		return globalConfigDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}
