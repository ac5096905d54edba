// Package ports defines interfaces for external service communication.
package ports

import (
	"context"
	"errors"

	"github.com/ersonp/typeclash/internal/domain/entities"
)

// ErrCreatureNotFound is returned when a lookup yields no recognizable creature.
var ErrCreatureNotFound = errors.New("creature not found")

// CreatureRecord is a creature as read from a data source, before its type
// relations are attached.
type CreatureRecord struct {
	Name      string
	Types     []string
	BaseStats []entities.BaseStat
}

// CreatureSource defines the interface for retrieving creature data.
type CreatureSource interface {
	// FetchCreature looks up a creature by name or numeric identifier.
	// Returns ErrCreatureNotFound if the source has no such creature.
	FetchCreature(ctx context.Context, nameOrID string) (*CreatureRecord, error)

	// FetchTypeRelations returns the damage relations of a single type.
	FetchTypeRelations(ctx context.Context, typeName string) (entities.DamageRelations, error)
}
