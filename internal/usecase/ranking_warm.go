package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
)

const rankingWarmTimeout = 30 * time.Second

type WarmSummary struct {
	CategoryCount int
	SuccessCount  int
	FailedCount   int
	WorkerCount   int
}

// RefreshAfterResultChange drops every cached ranking touched by a result
// mutation and rebuilds the per-category snapshots in the background. The
// caller's request returns immediately; readers either hit the refreshed
// cache or recompute on demand.
func (s *RankingService) RefreshAfterResultChange(ctx context.Context, eventID string) {
	if s.store == nil {
		return
	}

	s.store.DeletePrefix(ctx, "ranking:")

	go func() {
		warmCtx, cancel := context.WithTimeout(context.Background(), rankingWarmTimeout)
		defer cancel()

		summary, err := s.WarmGlobalRankings(warmCtx)
		if err != nil {
			s.logger.Warn("ranking warm failed", "event_id", eventID, "error", err)
			return
		}
		if summary.FailedCount > 0 {
			s.logger.Warn("ranking warm finished with failures",
				"event_id", eventID,
				"categories", summary.CategoryCount,
				"failed", summary.FailedCount,
			)
			return
		}
		s.logger.Debug("ranking warm finished",
			"event_id", eventID,
			"categories", summary.CategoryCount,
			"workers", summary.WorkerCount,
		)
	}()
}

// WarmGlobalRankings precomputes the global ranking of every configured
// category through a bounded worker pool and primes the cache with the
// snapshots.
func (s *RankingService) WarmGlobalRankings(ctx context.Context) (WarmSummary, error) {
	categories := s.categories.List()
	summary := WarmSummary{CategoryCount: len(categories)}
	if len(categories) == 0 || s.store == nil {
		return summary, nil
	}

	workerCount := s.warmWorkers
	if workerCount > len(categories) {
		workerCount = len(categories)
	}
	summary.WorkerCount = workerCount

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return summary, fmt.Errorf("create warm worker pool: %w", err)
	}
	defer pool.Release()

	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, category := range categories {
		category := category
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			rows, err := s.computeGlobalRanking(ctx, category)
			if err != nil {
				failedCount.Add(1)
				s.logger.Warn("warm global ranking failed", "category", category, "error", err)
				return
			}
			s.store.Set(ctx, globalRankingCacheKey(category), rows)
			successCount.Add(1)
		}); err != nil {
			workers.Done()
			return summary, fmt.Errorf("submit warm task: %w", err)
		}
	}

	workers.Wait()

	summary.SuccessCount = int(successCount.Load())
	summary.FailedCount = int(failedCount.Load())
	return summary, nil
}
