package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pedalnorte/championship-api/internal/domain/event"
)

type EventRepository struct {
	mu   sync.RWMutex
	byID map[string]event.Event
}

func NewEventRepository(events []event.Event) *EventRepository {
	byID := make(map[string]event.Event, len(events))
	for _, item := range events {
		byID[item.ID] = item
	}

	return &EventRepository{byID: byID}
}

func (r *EventRepository) List(_ context.Context) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *EventRepository) GetByID(_ context.Context, eventID string) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[eventID]
	return item, ok, nil
}
