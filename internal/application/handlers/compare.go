package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ersonp/typeclash/internal/domain/entities"
	"github.com/ersonp/typeclash/internal/domain/services"
)

// ErrNoCreatures is returned when a comparison is requested without any
// creature identifiers.
var ErrNoCreatures = errors.New("at least one creature is required")

// CompareHandler handles creature comparisons.
type CompareHandler struct {
	rosterService    *services.RosterService
	advantageService *services.AdvantageService
	logger           *zap.Logger
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(rosterService *services.RosterService, advantageService *services.AdvantageService, logger *zap.Logger) *CompareHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompareHandler{
		rosterService:    rosterService,
		advantageService: advantageService,
		logger:           logger,
	}
}

// CompareResult contains the outcome of a comparison.
type CompareResult struct {
	RunID     string
	Winner    *entities.Creature
	Creatures []*entities.Creature
}

// ScoresResult contains the full ranking of a comparison.
type ScoresResult struct {
	RunID   string
	Ranking services.Ranking
}

// Handle loads the creatures and returns the one holding the advantage.
func (h *CompareHandler) Handle(ctx context.Context, ids []string) (*CompareResult, error) {
	runID, creatures, err := h.load(ctx, ids)
	if err != nil {
		return nil, err
	}

	winner := h.advantageService.Resolve(creatures)
	h.logger.Info("comparison complete",
		zap.String("run_id", runID),
		zap.Strings("ids", ids),
		zap.String("winner", winner.Name()),
	)

	return &CompareResult{
		RunID:     runID,
		Winner:    winner,
		Creatures: creatures,
	}, nil
}

// HandleScores loads the creatures and returns every score along with the
// creatures favoured by type before any stat tiebreak.
func (h *CompareHandler) HandleScores(ctx context.Context, ids []string) (*ScoresResult, error) {
	runID, creatures, err := h.load(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &ScoresResult{
		RunID:   runID,
		Ranking: h.advantageService.Rank(creatures),
	}, nil
}

func (h *CompareHandler) load(ctx context.Context, ids []string) (string, []*entities.Creature, error) {
	if len(ids) == 0 {
		return "", nil, ErrNoCreatures
	}

	runID := uuid.New().String()
	h.logger.Debug("loading creatures", zap.String("run_id", runID), zap.Strings("ids", ids))

	creatures, err := h.rosterService.Load(ctx, ids)
	if err != nil {
		return "", nil, fmt.Errorf("loading creatures: %w", err)
	}
	return runID, creatures, nil
}
