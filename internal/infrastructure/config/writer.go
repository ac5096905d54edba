package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# typeclash configuration

pokeapi:
  base_url: https://pokeapi.co/api/v2
  timeout: 10s
  requests_per_second: 10
  burst: 5
  concurrency: 4

breaker:
  max_failures: 3
  open_timeout: 30s

# Advantage points per matching type.
weights:
  double_damage_to: 2
  half_damage_from: 1
  no_damage_from: 2

log:
  level: warn # debug, info, warn, error (or set TYPECLASH_LOG_LEVEL)
`

// WriteDefault creates the .typeclash directory and writes the commented
// default config file. An existing file is left untouched.
func WriteDefault(basePath string) error {
	return writeFile(basePath, []byte(DefaultConfigYAML))
}

// Write validates cfg and writes it as the config file under basePath.
// Unlike WriteDefault it replaces an existing file.
func Write(basePath string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	configFile := ConfigFilePath(basePath)
	if err := os.MkdirAll(ConfigDir(basePath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configFile, append([]byte(writtenHeader), data...), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

const writtenHeader = "# typeclash configuration (written by typeclash init)\n\n"

func writeFile(basePath string, data []byte) error {
	if err := os.MkdirAll(ConfigDir(basePath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configFile := ConfigFilePath(basePath)
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
