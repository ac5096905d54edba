package parsers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ersonp/typeclash/internal/domain/entities"
)

// JSONParser parses rosters from JSON format.
type JSONParser struct{}

// Parse reads JSON from the reader and returns the parsed roster.
func (p *JSONParser) Parse(r io.Reader) (*RawRoster, error) {
	var roster RawRoster

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&roster); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	return finish(&roster)
}

// UnmarshalJSON accepts stats as a list or as a mapping.
func (s *StatList) UnmarshalJSON(data []byte) error {
	var list []entities.BaseStat
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}

	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("stats must be a list or a mapping: %w", err)
	}
	*s = statsFromMap(m)
	return nil
}
