// Package parsers reads creature rosters from local files.
package parsers

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ersonp/typeclash/internal/domain/entities"
)

// RawRoster is a roster parsed from a file before it is served as a source.
type RawRoster struct {
	Creatures []RawCreature `json:"creatures" yaml:"creatures"`
	// Types maps a type name to its relation lists keyed like PokeAPI
	// (double_damage_to, half_damage_from, ...).
	Types map[string]map[string][]string `json:"types" yaml:"types"`
}

// RawCreature is one creature entry of a roster file.
type RawCreature struct {
	ID    int      `json:"id,omitempty" yaml:"id,omitempty"`
	Name  string   `json:"name" yaml:"name"`
	Types []string `json:"types" yaml:"types"`
	Stats StatList `json:"stats" yaml:"stats"`
	// LineNum is the 1-indexed position in the creatures list (set by parser).
	LineNum int `json:"-" yaml:"-"`
}

// StatList holds base stats written either as a list of {name, value}
// entries, which keeps their order, or as a name to value mapping, which is
// sorted by name.
type StatList []entities.BaseStat

func statsFromMap(m map[string]int) StatList {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(StatList, len(names))
	for i, name := range names {
		out[i] = entities.BaseStat{Name: name, Value: m[name]}
	}
	return out
}

// Parser defines the interface for parsing rosters from various formats.
type Parser interface {
	Parse(r io.Reader) (*RawRoster, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "yaml".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "yaml", "yml":
		return &YAMLParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	return ForFormat(strings.TrimPrefix(filepath.Ext(filename), "."))
}

func finish(roster *RawRoster) (*RawRoster, error) {
	seen := make(map[string]*RawCreature, len(roster.Creatures))
	for i := range roster.Creatures {
		c := &roster.Creatures[i]
		c.LineNum = i + 1
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("creature %d: name is required", c.LineNum)
		}
		key := entities.NormalizeName(c.Name)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("creature %d: duplicate name %q (first at creature %d)", c.LineNum, c.Name, prev.LineNum)
		}
		seen[key] = c
	}
	return roster, nil
}
