// Package handlers contains application use case handlers.
package handlers

import (
	"fmt"

	"github.com/ersonp/typeclash/internal/infrastructure/config"
)

// InitHandler handles configuration initialization.
type InitHandler struct{}

// NewInitHandler creates a new init handler.
func NewInitHandler() *InitHandler {
	return &InitHandler{}
}

// InitOptions customizes the written configuration.
type InitOptions struct {
	// PokeAPIURL replaces the default PokeAPI endpoint when set.
	PokeAPIURL string
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath string
	PokeAPIURL string
}

// Handle writes the configuration under basePath. Without options the
// commented default file is written; otherwise the defaults with the given
// overrides.
func (h *InitHandler) Handle(basePath string, opts InitOptions) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("typeclash already initialized in %s", basePath)
	}

	if opts.PokeAPIURL == "" {
		if err := config.WriteDefault(basePath); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}
	} else {
		cfg := config.Default()
		cfg.PokeAPI.BaseURL = opts.PokeAPIURL
		if err := config.Write(basePath, cfg); err != nil {
			return nil, fmt.Errorf("writing config: %w", err)
		}
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &InitResult{
		ConfigPath: config.ConfigFilePath(basePath),
		PokeAPIURL: cfg.PokeAPI.BaseURL,
	}, nil
}
