// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/ersonp/typeclash/internal/domain/entities"
	"github.com/ersonp/typeclash/internal/domain/ports"
)

// CreatureSource is a mock implementation of ports.CreatureSource.
type CreatureSource struct {
	Creatures map[string]*ports.CreatureRecord
	Relations map[string]entities.DamageRelations

	// Errors returned instead of data when set.
	CreatureErr error
	TypeErr     error

	mu         sync.Mutex
	TypeCalls  map[string]int
	FetchCalls []string
}

// NewCreatureSource creates a new mock CreatureSource.
func NewCreatureSource() *CreatureSource {
	return &CreatureSource{
		Creatures: make(map[string]*ports.CreatureRecord),
		Relations: make(map[string]entities.DamageRelations),
		TypeCalls: make(map[string]int),
	}
}

// AddCreature registers a creature under its name.
func (m *CreatureSource) AddCreature(name string, types []string, stats ...entities.BaseStat) {
	m.Creatures[name] = &ports.CreatureRecord{
		Name:      name,
		Types:     types,
		BaseStats: stats,
	}
}

// FetchCreature returns the registered creature or ports.ErrCreatureNotFound.
func (m *CreatureSource) FetchCreature(_ context.Context, nameOrID string) (*ports.CreatureRecord, error) {
	m.mu.Lock()
	m.FetchCalls = append(m.FetchCalls, nameOrID)
	m.mu.Unlock()

	if m.CreatureErr != nil {
		return nil, m.CreatureErr
	}
	rec, ok := m.Creatures[nameOrID]
	if !ok {
		return nil, ports.ErrCreatureNotFound
	}
	return rec, nil
}

// FetchTypeRelations returns the registered relations, or empty relations for
// unknown types.
func (m *CreatureSource) FetchTypeRelations(_ context.Context, typeName string) (entities.DamageRelations, error) {
	m.mu.Lock()
	m.TypeCalls[typeName]++
	m.mu.Unlock()

	if m.TypeErr != nil {
		return nil, m.TypeErr
	}
	if rel, ok := m.Relations[typeName]; ok {
		return rel, nil
	}
	return entities.DamageRelations{}, nil
}
