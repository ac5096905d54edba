// Package pokeapi provides a CreatureSource implementation backed by PokeAPI v2.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ersonp/typeclash/internal/domain/entities"
	"github.com/ersonp/typeclash/internal/domain/ports"
	"github.com/ersonp/typeclash/internal/infrastructure/config"
)

// ErrCircuitOpen is returned when recent failures have tripped the breaker
// and requests are rejected without reaching PokeAPI.
var ErrCircuitOpen = errors.New("pokeapi circuit breaker is open")

// maxBodyBytes caps the response size read from PokeAPI.
const maxBodyBytes = 4 << 20

var _ ports.CreatureSource = (*Client)(nil)

// Client implements ports.CreatureSource using the PokeAPI REST endpoints.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewClient creates a new PokeAPI client.
func NewClient(cfg config.PokeAPIConfig, breakerCfg config.BreakerConfig, userAgent string, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("pokeapi base URL is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	maxFailures := breakerCfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 1
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "pokeapi",
		MaxRequests: 1,
		Timeout:     breakerCfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// A missing creature is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ports.ErrCreatureNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})

	return c, nil
}

// pokemonResponse is the subset of /pokemon/{id} used by typeclash.
type pokemonResponse struct {
	Forms []namedResource `json:"forms"`
	Types []struct {
		Slot int           `json:"slot"`
		Type namedResource `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
}

// typeResponse is the subset of /type/{name} used by typeclash.
type typeResponse struct {
	Name            string                     `json:"name"`
	DamageRelations map[string][]namedResource `json:"damage_relations"`
}

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// FetchCreature retrieves a pokemon by name or national dex number.
func (c *Client) FetchCreature(ctx context.Context, nameOrID string) (*ports.CreatureRecord, error) {
	var resp pokemonResponse
	if err := c.get(ctx, "pokemon/"+url.PathEscape(entities.NormalizeName(nameOrID)), &resp); err != nil {
		return nil, err
	}
	return toCreatureRecord(&resp)
}

// FetchTypeRelations retrieves the damage relations of one type.
func (c *Client) FetchTypeRelations(ctx context.Context, typeName string) (entities.DamageRelations, error) {
	var resp typeResponse
	err := c.get(ctx, "type/"+url.PathEscape(typeName), &resp)
	if errors.Is(err, ports.ErrCreatureNotFound) {
		return nil, fmt.Errorf("unknown type %q", typeName)
	}
	if err != nil {
		return nil, err
	}
	return toDamageRelations(&resp), nil
}

// State returns the circuit breaker state ("closed", "open" or "half-open").
func (c *Client) State() string {
	return c.breaker.State().String()
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doReq(ctx, path)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrCircuitOpen
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func (c *Client) doReq(ctx context.Context, path string) ([]byte, error) {
	endpoint := c.baseURL + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("pokeapi request", zap.String("url", endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, ports.ErrCreatureNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("pokeapi GET %s: %d %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// toCreatureRecord reshapes a pokemon payload. The name comes from the first
// form; a payload without one is treated as not found.
func toCreatureRecord(resp *pokemonResponse) (*ports.CreatureRecord, error) {
	if len(resp.Forms) == 0 || resp.Forms[0].Name == "" {
		return nil, ports.ErrCreatureNotFound
	}

	rec := &ports.CreatureRecord{
		Name:      resp.Forms[0].Name,
		Types:     make([]string, 0, len(resp.Types)),
		BaseStats: make([]entities.BaseStat, 0, len(resp.Stats)),
	}
	for _, t := range resp.Types {
		rec.Types = append(rec.Types, t.Type.Name)
	}
	for _, s := range resp.Stats {
		rec.BaseStats = append(rec.BaseStats, entities.BaseStat{Name: s.Stat.Name, Value: s.BaseStat})
	}
	return rec, nil
}

// toDamageRelations keeps every relation kind it recognizes and drops the rest.
func toDamageRelations(resp *typeResponse) entities.DamageRelations {
	rel := make(entities.DamageRelations, len(resp.DamageRelations))
	for key, types := range resp.DamageRelations {
		kind, ok := entities.ParseRelationKind(key)
		if !ok {
			continue
		}
		names := make([]string, 0, len(types))
		for _, t := range types {
			names = append(names, t.Name)
		}
		rel[kind] = names
	}
	return rel
}
