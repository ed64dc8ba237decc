package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pedalnorte/championship-api/internal/domain/club"
)

type ClubRepository struct {
	mu     sync.RWMutex
	byName map[string]club.Club
}

func NewClubRepository(clubs []club.Club) *ClubRepository {
	byName := make(map[string]club.Club, len(clubs))
	for _, item := range clubs {
		byName[item.Name] = item
	}

	return &ClubRepository{byName: byName}
}

func (r *ClubRepository) Register(_ context.Context, item club.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[item.Name]; ok {
		return nil
	}

	r.byName[item.Name] = item
	return nil
}

func (r *ClubRepository) List(_ context.Context) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0, len(r.byName))
	for _, item := range r.byName {
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}
