package services

import (
	"go.uber.org/zap"

	"github.com/ersonp/typeclash/internal/domain/entities"
)

// CreatureRank captures the scoring output for a single creature.
type CreatureRank struct {
	Creature  *entities.Creature
	Score     int
	StatTotal int
	Favoured  bool
}

// Ranking is the full result of ranking a list of creatures.
type Ranking struct {
	// Ranks are in input order.
	Ranks    []CreatureRank
	Favoured []*entities.Creature
	Winner   *entities.Creature
}

// AdvantageService decides which creature holds the competitive advantage.
// It never mutates its input and is safe for concurrent use.
type AdvantageService struct {
	weights Weights
	logger  *zap.Logger
}

// NewAdvantageService creates a new AdvantageService.
func NewAdvantageService(weights Weights, logger *zap.Logger) *AdvantageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvantageService{
		weights: weights,
		logger:  logger,
	}
}

// Weights returns the point distribution used for scoring.
func (s *AdvantageService) Weights() Weights {
	return s.weights
}

// Scores returns the type advantage total of every creature, in input order.
// Each creature is compared against every other creature; self pairs are skipped.
func (s *AdvantageService) Scores(creatures []*entities.Creature) []int {
	scores := make([]int, len(creatures))
	for i, attacker := range creatures {
		doubleTo := attacker.DoubleDamageToTypes()
		halfFrom := attacker.HalfDamageFromTypes()
		noFrom := attacker.NoDamageFromTypes()

		for j, defender := range creatures {
			if i == j {
				continue
			}
			scores[i] += matchPoints(doubleTo, defender, s.weights.DoubleDamageTo)
			scores[i] += matchPoints(halfFrom, defender, s.weights.HalfDamageFrom)
			scores[i] += matchPoints(noFrom, defender, s.weights.NoDamageFrom)
		}
	}
	return scores
}

// FavouredByType returns every creature tied for the highest advantage score,
// in input order. No stat tiebreak is applied.
func (s *AdvantageService) FavouredByType(creatures []*entities.Creature) []*entities.Creature {
	return favoured(creatures, s.Scores(creatures))
}

// FavouredByStats returns the first creature with the highest base stat total,
// or nil for an empty list.
func (s *AdvantageService) FavouredByStats(creatures []*entities.Creature) *entities.Creature {
	var best *entities.Creature
	bestTotal := 0
	for _, c := range creatures {
		total := c.TotalBaseStats()
		if best == nil || total > bestTotal {
			best = c
			bestTotal = total
		}
	}
	return best
}

// Resolve returns the creature with the best type advantage, falling back to
// base stats when several creatures share the top score. Returns nil for an
// empty list; callers must supply at least one creature.
func (s *AdvantageService) Resolve(creatures []*entities.Creature) *entities.Creature {
	return s.Rank(creatures).Winner
}

// Rank scores every creature and resolves the winner, keeping the
// intermediate values for reporting.
func (s *AdvantageService) Rank(creatures []*entities.Creature) Ranking {
	scores := s.Scores(creatures)
	fav := favoured(creatures, scores)

	var winner *entities.Creature
	switch len(fav) {
	case 0:
	case 1:
		winner = fav[0]
	default:
		winner = s.FavouredByStats(fav)
	}

	ranks := make([]CreatureRank, len(creatures))
	for i, c := range creatures {
		ranks[i] = CreatureRank{
			Creature:  c,
			Score:     scores[i],
			StatTotal: c.TotalBaseStats(),
			Favoured:  contains(fav, c),
		}
	}

	if winner != nil {
		s.logger.Debug("resolved advantage",
			zap.Int("creatures", len(creatures)),
			zap.Ints("scores", scores),
			zap.Int("favoured", len(fav)),
			zap.Bool("stat_tiebreak", len(fav) > 1),
			zap.String("winner", winner.Name()),
		)
	}

	return Ranking{
		Ranks:    ranks,
		Favoured: fav,
		Winner:   winner,
	}
}

// matchPoints awards points once per occurrence in tags that the defender
// carries, so duplicated tags count more than once.
func matchPoints(tags []string, defender *entities.Creature, points int) int {
	total := 0
	for _, tag := range tags {
		if defender.HasType(tag) {
			total += points
		}
	}
	return total
}

func favoured(creatures []*entities.Creature, scores []int) []*entities.Creature {
	if len(creatures) == 0 {
		return nil
	}
	best := scores[0]
	for _, score := range scores[1:] {
		if score > best {
			best = score
		}
	}
	var out []*entities.Creature
	for i, c := range creatures {
		if scores[i] == best {
			out = append(out, c)
		}
	}
	return out
}

func contains(list []*entities.Creature, c *entities.Creature) bool {
	for _, item := range list {
		if item == c {
			return true
		}
	}
	return false
}
