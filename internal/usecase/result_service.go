package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pedalnorte/championship-api/internal/domain/event"
	"github.com/pedalnorte/championship-api/internal/domain/points"
	"github.com/pedalnorte/championship-api/internal/domain/result"
	"github.com/pedalnorte/championship-api/internal/domain/rider"
	idgen "github.com/pedalnorte/championship-api/internal/platform/id"
	"github.com/pedalnorte/championship-api/internal/platform/logging"
)

type ResultService struct {
	resultRepo result.Repository
	riderRepo  rider.Repository
	eventRepo  event.Repository
	rankings   *RankingService
	categories CategorySet
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewResultService(
	resultRepo result.Repository,
	riderRepo rider.Repository,
	eventRepo event.Repository,
	rankings *RankingService,
	categories CategorySet,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ResultService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ResultService{
		resultRepo: resultRepo,
		riderRepo:  riderRepo,
		eventRepo:  eventRepo,
		rankings:   rankings,
		categories: categories,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

type UpsertResultInput struct {
	EventID        string
	RiderID        string
	CategoryPlayed string
	Position       int
	// Points overrides the scoring table when set; nil derives points from
	// the finishing position.
	Points   *int
	RaceTime string
	AvgSpeed *float64
}

// Upsert records one rider's finish at one event. Re-submitting the same
// (event, rider) pair replaces every stored field in a single atomic write,
// so corrections are idempotent and never double-count.
func (s *ResultService) Upsert(ctx context.Context, input UpsertResultInput) (result.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Upsert")
	defer span.End()

	eventID := strings.TrimSpace(input.EventID)
	riderID := strings.TrimSpace(input.RiderID)
	if eventID == "" || riderID == "" {
		return result.Result{}, fmt.Errorf("%w: event id and rider id are required", ErrInvalidInput)
	}

	if _, exists, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return result.Result{}, fmt.Errorf("get event: %w", err)
	} else if !exists {
		return result.Result{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}
	if _, exists, err := s.riderRepo.GetByID(ctx, riderID); err != nil {
		return result.Result{}, fmt.Errorf("get rider: %w", err)
	} else if !exists {
		return result.Result{}, fmt.Errorf("%w: rider=%s", ErrNotFound, riderID)
	}

	category := strings.TrimSpace(input.CategoryPlayed)
	if !s.categories.Has(category) {
		return result.Result{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}

	pts, err := s.resolvePoints(input)
	if err != nil {
		return result.Result{}, err
	}

	resultID, err := s.idGen.NewID()
	if err != nil {
		return result.Result{}, fmt.Errorf("generate result id: %w", err)
	}

	now := s.now().UTC()
	item := result.Result{
		ID:             resultID,
		EventID:        eventID,
		RiderID:        riderID,
		CategoryPlayed: category,
		Position:       input.Position,
		Points:         pts,
		RaceTime:       strings.TrimSpace(input.RaceTime),
		AvgSpeed:       input.AvgSpeed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	saved, err := s.resultRepo.Upsert(ctx, item)
	if err != nil {
		return result.Result{}, fmt.Errorf("upsert result: %w", err)
	}

	if s.rankings != nil {
		s.rankings.RefreshAfterResultChange(ctx, saved.EventID)
	}

	return saved, nil
}

// Delete removes a stored result and invalidates dependent rankings.
func (s *ResultService) Delete(ctx context.Context, resultID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Delete")
	defer span.End()

	resultID = strings.TrimSpace(resultID)
	if resultID == "" {
		return fmt.Errorf("%w: result id is required", ErrInvalidInput)
	}

	item, exists, err := s.resultRepo.GetByID(ctx, resultID)
	if err != nil {
		return fmt.Errorf("get result: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: result=%s", ErrNotFound, resultID)
	}

	deleted, err := s.resultRepo.Delete(ctx, resultID)
	if err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: result=%s", ErrNotFound, resultID)
	}

	if s.rankings != nil {
		s.rankings.RefreshAfterResultChange(ctx, item.EventID)
	}

	return nil
}

// SuggestPoints exposes the scoring table for result-entry tooling.
func (s *ResultService) SuggestPoints(position int) (int, error) {
	pts, err := points.ForPosition(position)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return pts, nil
}

func (s *ResultService) resolvePoints(input UpsertResultInput) (int, error) {
	if input.Position <= 0 {
		return 0, fmt.Errorf("%w: position must be >= 1", ErrInvalidInput)
	}
	if input.Points != nil {
		if *input.Points < 0 {
			return 0, fmt.Errorf("%w: points cannot be negative", ErrInvalidInput)
		}
		return *input.Points, nil
	}

	pts, err := points.ForPosition(input.Position)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return pts, nil
}
