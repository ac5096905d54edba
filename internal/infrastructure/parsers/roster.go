package parsers

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/ersonp/typeclash/internal/domain/entities"
	"github.com/ersonp/typeclash/internal/domain/ports"
)

var _ ports.CreatureSource = (*RosterSource)(nil)

// RosterSource serves creatures from a parsed roster file.
type RosterSource struct {
	byName    map[string]*RawCreature
	byID      map[int]*RawCreature
	relations map[string]entities.DamageRelations
}

// NewRosterSource indexes a roster by normalized name and id. Type tags are
// normalized the same way so that they match the relation lists.
// Relation keys that are not known relation kinds are ignored.
func NewRosterSource(roster *RawRoster) *RosterSource {
	src := &RosterSource{
		byName:    make(map[string]*RawCreature, len(roster.Creatures)),
		byID:      make(map[int]*RawCreature, len(roster.Creatures)),
		relations: make(map[string]entities.DamageRelations, len(roster.Types)),
	}

	for i := range roster.Creatures {
		c := &roster.Creatures[i]
		c.Types = normalizeTags(c.Types)
		src.byName[entities.NormalizeName(c.Name)] = c
		if c.ID > 0 {
			src.byID[c.ID] = c
		}
	}

	for typeName, kinds := range roster.Types {
		rel := make(entities.DamageRelations, len(kinds))
		for key, tags := range kinds {
			if kind, ok := entities.ParseRelationKind(key); ok {
				rel[kind] = normalizeTags(tags)
			}
		}
		src.relations[entities.NormalizeName(typeName)] = rel
	}

	return src
}

func normalizeTags(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = entities.NormalizeName(t)
	}
	return out
}

// LoadRosterFile parses a JSON or YAML roster file.
func LoadRosterFile(path string) (*RosterSource, error) {
	parser := ForFile(path)
	if parser == nil {
		return nil, fmt.Errorf("unsupported roster format: %s (use .json, .yaml or .yml)", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster file: %w", err)
	}
	defer f.Close()

	roster, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	return NewRosterSource(roster), nil
}

// FetchCreature looks a creature up by name, then by numeric id.
func (s *RosterSource) FetchCreature(_ context.Context, nameOrID string) (*ports.CreatureRecord, error) {
	key := entities.NormalizeName(nameOrID)
	c, ok := s.byName[key]
	if !ok {
		if id, err := strconv.Atoi(key); err == nil {
			c, ok = s.byID[id]
		}
	}
	if !ok {
		return nil, ports.ErrCreatureNotFound
	}

	return &ports.CreatureRecord{
		Name:      entities.NormalizeName(c.Name),
		Types:     append([]string(nil), c.Types...),
		BaseStats: append([]entities.BaseStat(nil), c.Stats...),
	}, nil
}

// FetchTypeRelations returns the relations listed for the type. A type the
// roster does not describe has no relations.
func (s *RosterSource) FetchTypeRelations(_ context.Context, typeName string) (entities.DamageRelations, error) {
	rel, ok := s.relations[entities.NormalizeName(typeName)]
	if !ok {
		return entities.DamageRelations{}, nil
	}
	return rel, nil
}
