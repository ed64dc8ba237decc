package usecase

import (
	"context"
	"fmt"

	"github.com/pedalnorte/championship-api/internal/domain/event"
)

type EventService struct {
	eventRepo event.Repository
}

func NewEventService(eventRepo event.Repository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

type EventWithRound struct {
	event.Event
	Round int
}

// ListEvents returns the season calendar in date order. The round number is
// derived from that order, not stored, so inserting an earlier event
// renumbers later rounds automatically.
func (s *EventService) ListEvents(ctx context.Context) ([]EventWithRound, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.ListEvents")
	defer span.End()

	items, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]EventWithRound, 0, len(items))
	for i, item := range items {
		out = append(out, EventWithRound{Event: item, Round: i + 1})
	}
	return out, nil
}
