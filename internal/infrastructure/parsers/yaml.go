package parsers

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/typeclash/internal/domain/entities"
)

// YAMLParser parses rosters from YAML format.
type YAMLParser struct{}

// Parse reads YAML from the reader and returns the parsed roster.
func (p *YAMLParser) Parse(r io.Reader) (*RawRoster, error) {
	var roster RawRoster

	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&roster); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return finish(&roster)
}

// UnmarshalYAML accepts stats as a sequence or as a mapping.
func (s *StatList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []entities.BaseStat
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
	case yaml.MappingNode:
		var m map[string]int
		if err := node.Decode(&m); err != nil {
			return err
		}
		*s = statsFromMap(m)
	default:
		return fmt.Errorf("line %d: stats must be a list or a mapping", node.Line)
	}
	return nil
}
