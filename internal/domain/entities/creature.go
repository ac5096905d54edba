// Package entities holds the domain records compared by typeclash.
package entities

import (
	"fmt"
	"strings"
)

// RelationKind identifies one directional damage relation of a type.
type RelationKind int

// Relation kinds as published by PokeAPI type resources.
const (
	DoubleDamageTo RelationKind = iota
	DoubleDamageFrom
	HalfDamageTo
	HalfDamageFrom
	NoDamageTo
	NoDamageFrom
)

var relationKindNames = map[RelationKind]string{
	DoubleDamageTo:   "double_damage_to",
	DoubleDamageFrom: "double_damage_from",
	HalfDamageTo:     "half_damage_to",
	HalfDamageFrom:   "half_damage_from",
	NoDamageTo:       "no_damage_to",
	NoDamageFrom:     "no_damage_from",
}

// String returns the snake_case key used in source data.
func (k RelationKind) String() string {
	if name, ok := relationKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("relation_kind(%d)", int(k))
}

// ParseRelationKind maps a source data key to its RelationKind.
func ParseRelationKind(key string) (RelationKind, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for kind, name := range relationKindNames {
		if name == key {
			return kind, true
		}
	}
	return 0, false
}

// DamageRelations maps each relation kind of a single type to the type tags
// it applies to.
type DamageRelations map[RelationKind][]string

// BaseStat is a named innate attribute of a creature.
type BaseStat struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

// Creature is an immutable record of one creature under comparison.
// relations holds one entry per type, paired by position.
type Creature struct {
	name      string
	types     []string
	relations []DamageRelations
	baseStats []BaseStat
}

// NewCreature creates a Creature. Slices are copied; no validation is done.
func NewCreature(name string, types []string, relations []DamageRelations, baseStats []BaseStat) *Creature {
	return &Creature{
		name:      name,
		types:     append([]string(nil), types...),
		relations: copyRelations(relations),
		baseStats: append([]BaseStat(nil), baseStats...),
	}
}

// Name returns the creature name.
func (c *Creature) Name() string {
	return c.name
}

// Types returns the creature's type tags in their original order.
func (c *Creature) Types() []string {
	return append([]string(nil), c.types...)
}

// DamageRelations returns the per-type relation records.
func (c *Creature) DamageRelations() []DamageRelations {
	return copyRelations(c.relations)
}

// BaseStats returns the creature's base stats in their original order.
func (c *Creature) BaseStats() []BaseStat {
	return append([]BaseStat(nil), c.baseStats...)
}

// HasType reports whether tag is one of the creature's types.
func (c *Creature) HasType(tag string) bool {
	for _, t := range c.types {
		if t == tag {
			return true
		}
	}
	return false
}

// TypesForRelation concatenates the tags listed under kind across every
// relation entry, in entry order. Duplicates are kept: a tag granted by two
// of the creature's types appears twice.
func (c *Creature) TypesForRelation(kind RelationKind) []string {
	var out []string
	for _, rel := range c.relations {
		out = append(out, rel[kind]...)
	}
	return out
}

// DoubleDamageToTypes returns the types this creature deals double damage to.
func (c *Creature) DoubleDamageToTypes() []string {
	return c.TypesForRelation(DoubleDamageTo)
}

// HalfDamageFromTypes returns the types this creature takes half damage from.
func (c *Creature) HalfDamageFromTypes() []string {
	return c.TypesForRelation(HalfDamageFrom)
}

// NoDamageFromTypes returns the types this creature takes no damage from.
func (c *Creature) NoDamageFromTypes() []string {
	return c.TypesForRelation(NoDamageFrom)
}

// TotalBaseStats sums the values of every base stat.
func (c *Creature) TotalBaseStats() int {
	total := 0
	for _, s := range c.baseStats {
		total += s.Value
	}
	return total
}

// NormalizeName converts an identifier to lowercase for lookups.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func copyRelations(in []DamageRelations) []DamageRelations {
	if in == nil {
		return nil
	}
	out := make([]DamageRelations, len(in))
	for i, rel := range in {
		if rel == nil {
			continue
		}
		cp := make(DamageRelations, len(rel))
		for kind, tags := range rel {
			cp[kind] = append([]string(nil), tags...)
		}
		out[i] = cp
	}
	return out
}
