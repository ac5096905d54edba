package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/typeclash/internal/infrastructure/config"
)

const starterRoster = `creatures:
  - {name: bulbasaur, id: 1, types: [grass, poison], stats: {hp: 45, attack: 49, defense: 49, special-attack: 65, special-defense: 65, speed: 45}}
  - {name: charmander, id: 4, types: [fire], stats: {hp: 39, attack: 52, defense: 43, special-attack: 60, special-defense: 50, speed: 65}}
  - {name: rattata, id: 19, types: [normal], stats: {hp: 30, attack: 56}}
  - {name: pidgey, id: 16, types: [normal, flying], stats: {hp: 40, attack: 45}}
types:
  fire:
    double_damage_to: [bug, steel, grass, ice]
    half_damage_from: [bug, steel, fire, grass, ice, fairy]
  grass:
    double_damage_to: [ground, rock, water]
    half_damage_from: [ground, water, grass, electric]
`

// execute runs the CLI in an isolated directory and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TYPECLASH_LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func writeRoster(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "starters.yaml")
	require.NoError(t, os.WriteFile(path, []byte(starterRoster), 0600))
	return dir, path
}

func TestCompare_NoArguments(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "--config-dir", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, errInputFormat)
	assert.Empty(t, out)
}

func TestCompare_Roster(t *testing.T) {
	dir, roster := writeRoster(t)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "type advantage", args: []string{"bulbasaur", "charmander"}, expected: "charmander\n"},
		{name: "ids and case", args: []string{"1", "CHARMANDER"}, expected: "charmander\n"},
		{name: "single creature", args: []string{"rattata"}, expected: "rattata\n"},
		{name: "stat tiebreak", args: []string{"rattata", "pidgey"}, expected: "rattata\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config-dir", dir, "--roster", roster}, tt.args...)
			out, err := execute(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestCompare_UnknownCreature(t *testing.T) {
	dir, roster := writeRoster(t)

	out, err := execute(t, "--config-dir", dir, "--roster", roster, "bulbasaur", "agumon")
	require.Error(t, err)
	assert.ErrorIs(t, err, errInvalidData)
	assert.Empty(t, out)
}

func TestCompare_PokeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pokemon/squirtle":
			_, _ = w.Write([]byte(`{"forms": [{"name": "squirtle"}],
				"types": [{"slot": 1, "type": {"name": "water"}}],
				"stats": [{"base_stat": 44, "stat": {"name": "hp"}}]}`))
		case "/pokemon/4":
			_, _ = w.Write([]byte(`{"forms": [{"name": "charmander"}],
				"types": [{"slot": 1, "type": {"name": "fire"}}],
				"stats": [{"base_stat": 39, "stat": {"name": "hp"}}]}`))
		case "/type/water":
			_, _ = w.Write([]byte(`{"name": "water", "damage_relations": {
				"double_damage_to": [{"name": "ground"}, {"name": "rock"}, {"name": "fire"}],
				"half_damage_from": [{"name": "steel"}, {"name": "fire"}, {"name": "water"}, {"name": "ice"}]}}`))
		case "/type/fire":
			_, _ = w.Write([]byte(`{"name": "fire", "damage_relations": {
				"double_damage_to": [{"name": "grass"}]}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	t.Setenv("TYPECLASH_POKEAPI_URL", srv.URL)

	dir := t.TempDir()
	out, err := execute(t, "--config-dir", dir, "4", "Squirtle")
	require.NoError(t, err)
	assert.Equal(t, "squirtle\n", out)

	out, err = execute(t, "--config-dir", dir, "squirtle", "missingno")
	assert.ErrorIs(t, err, errInvalidData)
	assert.Empty(t, out)
}

func TestScores(t *testing.T) {
	dir, roster := writeRoster(t)

	out, err := execute(t, "--config-dir", dir, "--roster", roster, "scores", "bulbasaur", "charmander")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "grass/poison")
	assert.Contains(t, out, "318")
	assert.Contains(t, out, "Winner: charmander\n")
	assert.NotContains(t, out, "tiebreak")
}

func TestScores_Tiebreak(t *testing.T) {
	dir, roster := writeRoster(t)

	out, err := execute(t, "--config-dir", dir, "--roster", roster, "scores", "rattata", "pidgey")
	require.NoError(t, err)
	assert.Contains(t, out, "Winner: rattata (base stat tiebreak)")
}

func TestScores_NoArguments(t *testing.T) {
	_, err := execute(t, "--config-dir", t.TempDir(), "scores")
	assert.ErrorIs(t, err, errInputFormat)
}

func TestInit(t *testing.T) {
	t.Setenv("TYPECLASH_POKEAPI_URL", "")
	dir := t.TempDir()

	out, err := execute(t, "--config-dir", dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, config.ConfigFilePath(dir))
	assert.True(t, config.Exists(dir))

	_, err = execute(t, "--config-dir", dir, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}

func TestCompare_ConfigWeights(t *testing.T) {
	dir, roster := writeRoster(t)
	configDir := filepath.Join(dir, config.DefaultConfigDir)
	require.NoError(t, os.MkdirAll(configDir, 0755))
	// With every weight at zero the base stat totals decide.
	require.NoError(t, os.WriteFile(filepath.Join(configDir, config.DefaultConfigFile), []byte(`weights:
  double_damage_to: 0
  half_damage_from: 0
  no_damage_from: 0
`), 0600))

	out, err := execute(t, "--config-dir", dir, "--roster", roster, "bulbasaur", "charmander")
	require.NoError(t, err)
	assert.Equal(t, "bulbasaur\n", out)
}

func TestInit_PokeAPIURL(t *testing.T) {
	t.Setenv("TYPECLASH_POKEAPI_URL", "")
	dir := t.TempDir()

	out, err := execute(t, "--config-dir", dir, "init", "--pokeapi-url", "http://127.0.0.1:8000/api/v2")
	require.NoError(t, err)
	assert.Contains(t, out, "Using PokeAPI at http://127.0.0.1:8000/api/v2")

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000/api/v2", cfg.PokeAPI.BaseURL)
}

func TestCompare_NegativeWeights(t *testing.T) {
	dir, roster := writeRoster(t)
	configDir := filepath.Join(dir, config.DefaultConfigDir)
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, config.DefaultConfigFile), []byte(`weights:
  double_damage_to: 2
  half_damage_from: -1
  no_damage_from: -2
`), 0600))

	out, err := execute(t, "--config-dir", dir, "--roster", roster, "bulbasaur", "charmander")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid weights: negative weight for half_damage_from")
	assert.Empty(t, out)
}
