package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ersonp/typeclash/internal/domain/entities"
	"github.com/ersonp/typeclash/internal/domain/ports"
)

// DefaultConcurrency bounds parallel lookups when none is configured.
const DefaultConcurrency = 4

// RosterService builds fully populated creatures from a CreatureSource.
type RosterService struct {
	source      ports.CreatureSource
	concurrency int
	logger      *zap.Logger
}

// NewRosterService creates a new RosterService.
func NewRosterService(source ports.CreatureSource, concurrency int, logger *zap.Logger) *RosterService {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{
		source:      source,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Load fetches every identifier and returns the creatures in argument order.
// Relations are fetched once per distinct type across the whole roster.
// The first failed lookup aborts the load.
func (s *RosterService) Load(ctx context.Context, ids []string) ([]*entities.Creature, error) {
	records, err := s.fetchRecords(ctx, ids)
	if err != nil {
		return nil, err
	}

	relations, err := s.fetchRelations(ctx, distinctTypes(records))
	if err != nil {
		return nil, err
	}

	creatures := make([]*entities.Creature, len(records))
	for i, rec := range records {
		rels := make([]entities.DamageRelations, len(rec.Types))
		for j, typeName := range rec.Types {
			rels[j] = relations[typeName]
		}
		creatures[i] = entities.NewCreature(rec.Name, rec.Types, rels, rec.BaseStats)
	}

	s.logger.Debug("loaded roster",
		zap.Int("creatures", len(creatures)),
		zap.Int("types", len(relations)),
	)
	return creatures, nil
}

func (s *RosterService) fetchRecords(ctx context.Context, ids []string) ([]*ports.CreatureRecord, error) {
	records := make([]*ports.CreatureRecord, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			id = entities.NormalizeName(id)
			rec, err := s.source.FetchCreature(gctx, id)
			if err != nil {
				return fmt.Errorf("fetching creature %q: %w", id, err)
			}
			records[i] = rec
			s.logger.Debug("fetched creature", zap.String("id", id), zap.String("name", rec.Name))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *RosterService) fetchRelations(ctx context.Context, types []string) (map[string]entities.DamageRelations, error) {
	results := make([]entities.DamageRelations, len(types))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, typeName := range types {
		g.Go(func() error {
			rel, err := s.source.FetchTypeRelations(gctx, typeName)
			if err != nil {
				return fmt.Errorf("fetching type %q: %w", typeName, err)
			}
			results[i] = rel
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	relations := make(map[string]entities.DamageRelations, len(types))
	for i, typeName := range types {
		relations[typeName] = results[i]
	}
	return relations, nil
}

// distinctTypes returns each type tag once, in first-seen order.
func distinctTypes(records []*ports.CreatureRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range records {
		for _, t := range rec.Types {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}
