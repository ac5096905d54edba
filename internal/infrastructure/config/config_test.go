package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, DefaultConfigDir)
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, DefaultConfigFile), []byte(content), 0600))
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TYPECLASH_POKEAPI_URL", "")
	t.Setenv("TYPECLASH_LOG_LEVEL", "")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, Exists(tmpDir))
}

func TestLoad_OverridesDefaults(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `pokeapi:
  base_url: http://localhost:8080/api/v2
  timeout: 2s
weights:
  double_damage_to: 3
  half_damage_from: 1
  no_damage_from: 4
log:
  level: debug
`)

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.True(t, Exists(tmpDir))

	assert.Equal(t, "http://localhost:8080/api/v2", cfg.PokeAPI.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.PokeAPI.Timeout)
	// Untouched keys keep their defaults
	assert.Equal(t, 5, cfg.PokeAPI.Burst)
	assert.Equal(t, uint32(3), cfg.Breaker.MaxFailures)
	assert.Equal(t, WeightsConfig{DoubleDamageTo: 3, HalfDamageFrom: 1, NoDamageFrom: 4}, cfg.Weights)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TYPECLASH_POKEAPI_URL", "http://127.0.0.1:9999")
	t.Setenv("TYPECLASH_LOG_LEVEL", "error")

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.PokeAPI.BaseURL)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_EnvLogLevelAlias(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TYPECLASH_POKEAPI_URL", "")
	t.Setenv("TYPECLASH_LOG_LEVEL", "WARNING")

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "WARNING", cfg.Log.Level)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "pokeapi: [not, a, map")

	_, err := Load(tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:   "relative base url",
			mutate: func(c *Config) { c.PokeAPI.BaseURL = "pokeapi.co" },
			errMsg: "base_url",
		},
		{
			name:   "zero timeout",
			mutate: func(c *Config) { c.PokeAPI.Timeout = 0 },
			errMsg: "timeout",
		},
		{
			name:   "zero rate",
			mutate: func(c *Config) { c.PokeAPI.RequestsPerSecond = 0 },
			errMsg: "requests_per_second",
		},
		{
			name:   "zero concurrency",
			mutate: func(c *Config) { c.PokeAPI.Concurrency = 0 },
			errMsg: "concurrency",
		},
		{
			name:   "zero breaker failures",
			mutate: func(c *Config) { c.Breaker.MaxFailures = 0 },
			errMsg: "max_failures",
		},
		{
			name:   "unknown log level",
			mutate: func(c *Config) { c.Log.Level = "verbose" },
			errMsg: "log.level",
		},
		{
			name:   "warning log level",
			mutate: func(c *Config) { c.Log.Level = "warning" },
		},
		{
			name:   "empty log level",
			mutate: func(c *Config) { c.Log.Level = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()

	require.NoError(t, WriteDefault(tmpDir))
	assert.True(t, Exists(tmpDir))

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	err = WriteDefault(tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestWrite_RoundTrip(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	cfg := Default()
	cfg.PokeAPI.Concurrency = 9
	cfg.Breaker.OpenTimeout = time.Minute

	require.NoError(t, Write(tmpDir, cfg))

	loaded, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWrite_Invalid(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := Default()
	cfg.PokeAPI.BaseURL = "pokeapi.co"

	err := Write(tmpDir, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
	assert.False(t, Exists(tmpDir))
}

func TestWrite_ReplacesExisting(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	require.NoError(t, WriteDefault(tmpDir))

	cfg := Default()
	cfg.Log.Level = "debug"
	require.NoError(t, Write(tmpDir, cfg))

	data, err := os.ReadFile(ConfigFilePath(tmpDir))
	require.NoError(t, err)
	assert.Contains(t, string(data), "written by typeclash init")

	loaded, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "debug", loaded.Log.Level)
}

func TestConfigPaths(t *testing.T) {
	base := filepath.Join("srv", "team")
	assert.Equal(t, filepath.Join(base, ".typeclash"), ConfigDir(base))
	assert.Equal(t, filepath.Join(ConfigDir(base), "config.yaml"), ConfigFilePath(base))
}
