package memory

import (
	"context"
	"sync"

	"github.com/pedalnorte/championship-api/internal/domain/result"
)

type ResultRepository struct {
	mu   sync.RWMutex
	byID map[string]result.Result
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{
		byID: make(map[string]result.Result),
	}
}

func (r *ResultRepository) Upsert(_ context.Context, item result.Result) (result.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.EventID == item.EventID && existing.RiderID == item.RiderID {
			item.ID = existing.ID
			item.CreatedAt = existing.CreatedAt
			break
		}
	}

	r.byID[item.ID] = item
	return item, nil
}

func (r *ResultRepository) GetByID(_ context.Context, resultID string) (result.Result, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[resultID]
	return item, ok, nil
}

func (r *ResultRepository) ListByEvent(_ context.Context, eventID string) ([]result.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.Result, 0)
	for _, item := range r.byID {
		if item.EventID == eventID {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *ResultRepository) ListByCategoryPlayed(_ context.Context, category string) ([]result.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.Result, 0)
	for _, item := range r.byID {
		if item.CategoryPlayed == category {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *ResultRepository) Delete(_ context.Context, resultID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[resultID]; !ok {
		return false, nil
	}

	delete(r.byID, resultID)
	return true, nil
}
