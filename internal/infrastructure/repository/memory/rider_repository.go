package memory

import (
	"context"
	"sync"

	"github.com/pedalnorte/championship-api/internal/domain/rider"
)

type RiderRepository struct {
	mu             sync.RWMutex
	byID           map[string]rider.Rider
	idByNationalID map[string]string
}

func NewRiderRepository(riders []rider.Rider) *RiderRepository {
	byID := make(map[string]rider.Rider, len(riders))
	idByNationalID := make(map[string]string, len(riders))
	for _, item := range riders {
		byID[item.ID] = item
		idByNationalID[item.NationalID] = item.ID
	}

	return &RiderRepository{
		byID:           byID,
		idByNationalID: idByNationalID,
	}
}

func (r *RiderRepository) Upsert(_ context.Context, item rider.Rider) (rider.Rider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existingID, ok := r.idByNationalID[item.NationalID]; ok {
		existing := r.byID[existingID]
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
	}

	r.byID[item.ID] = item
	r.idByNationalID[item.NationalID] = item.ID

	return item, nil
}

func (r *RiderRepository) GetByID(_ context.Context, riderID string) (rider.Rider, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[riderID]
	return item, ok, nil
}

func (r *RiderRepository) GetByNationalID(_ context.Context, nationalID string) (rider.Rider, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	riderID, ok := r.idByNationalID[nationalID]
	if !ok {
		return rider.Rider{}, false, nil
	}
	item, ok := r.byID[riderID]
	return item, ok, nil
}

func (r *RiderRepository) List(_ context.Context) ([]rider.Rider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rider.Rider, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item)
	}

	return out, nil
}

func (r *RiderRepository) ListByCategory(_ context.Context, category string) ([]rider.Rider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rider.Rider, 0)
	for _, item := range r.byID {
		if item.Category == category {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *RiderRepository) Delete(_ context.Context, riderID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byID[riderID]
	if !ok {
		return false, nil
	}

	delete(r.byID, riderID)
	delete(r.idByNationalID, item.NationalID)

	return true, nil
}
