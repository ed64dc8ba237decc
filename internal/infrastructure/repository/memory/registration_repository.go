package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pedalnorte/championship-api/internal/domain/registration"
)

type RegistrationRepository struct {
	mu   sync.RWMutex
	byID map[string]registration.Request
}

func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{
		byID: make(map[string]registration.Request),
	}
}

func (r *RegistrationRepository) Create(_ context.Context, item registration.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.NationalID == item.NationalID {
			return registration.ErrDuplicateNationalID
		}
	}

	r.byID[item.ID] = item
	return nil
}

func (r *RegistrationRepository) GetByID(_ context.Context, requestID string) (registration.Request, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[requestID]
	return item, ok, nil
}

func (r *RegistrationRepository) GetByNationalID(_ context.Context, nationalID string) (registration.Request, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.byID {
		if item.NationalID == nationalID {
			return item, true, nil
		}
	}

	return registration.Request{}, false, nil
}

func (r *RegistrationRepository) ListPending(_ context.Context) ([]registration.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]registration.Request, 0, len(r.byID))
	for _, item := range r.byID {
		if item.Status == registration.StatusPending {
			out = append(out, item)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *RegistrationRepository) Delete(_ context.Context, requestID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[requestID]; !ok {
		return false, nil
	}

	delete(r.byID, requestID)
	return true, nil
}
