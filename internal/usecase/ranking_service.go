package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sourcegraph/conc"

	"github.com/pedalnorte/championship-api/internal/domain/event"
	"github.com/pedalnorte/championship-api/internal/domain/result"
	"github.com/pedalnorte/championship-api/internal/domain/rider"
	"github.com/pedalnorte/championship-api/internal/platform/cache"
	"github.com/pedalnorte/championship-api/internal/platform/logging"
)

type RankingService struct {
	eventRepo   event.Repository
	riderRepo   rider.Repository
	resultRepo  result.Repository
	store       *cache.Store
	categories  CategorySet
	warmWorkers int
	logger      *logging.Logger
}

func NewRankingService(
	eventRepo event.Repository,
	riderRepo rider.Repository,
	resultRepo result.Repository,
	store *cache.Store,
	categories CategorySet,
	warmWorkers int,
	logger *logging.Logger,
) *RankingService {
	if logger == nil {
		logger = logging.Default()
	}
	if warmWorkers < 1 {
		warmWorkers = 1
	}

	return &RankingService{
		eventRepo:   eventRepo,
		riderRepo:   riderRepo,
		resultRepo:  resultRepo,
		store:       store,
		categories:  categories,
		warmWorkers: warmWorkers,
		logger:      logger,
	}
}

type EventRankingRow struct {
	Rank           int
	RiderID        string
	FullName       string
	Club           string
	CategoryPlayed string
	Position       int
	Points         int
	RaceTime       string
	AvgSpeed       *float64
}

type GlobalRankingRow struct {
	Rank        int
	RiderID     string
	FullName    string
	Club        string
	Category    string
	TotalPoints int
	EventCount  int
}

// EventRanking orders one event's results by points. An optional category
// narrows rows to results raced in that category.
func (s *RankingService) EventRanking(ctx context.Context, eventID, category string) ([]EventRankingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.EventRanking")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	category = strings.TrimSpace(category)
	if category != "" && !s.categories.Has(category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}

	loader := func(ctx context.Context) (any, error) {
		return s.computeEventRanking(ctx, eventID, category)
	}

	if s.store == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]EventRankingRow), nil
	}

	value, err := s.store.GetOrLoad(ctx, eventRankingCacheKey(eventID, category), loader)
	if err != nil {
		return nil, err
	}
	return value.([]EventRankingRow), nil
}

// GlobalRanking totals season points per rider. A result only counts while
// category_played still matches the rider's current category, so a category
// change forfeits earlier points for ranking purposes without touching the
// stored results. An empty category returns the all-categories view: every
// rider, each scored against their own current category, in one ordered list.
func (s *RankingService) GlobalRanking(ctx context.Context, category string) ([]GlobalRankingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.GlobalRanking")
	defer span.End()

	category = strings.TrimSpace(category)
	if category != "" && !s.categories.Has(category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}

	loader := func(ctx context.Context) (any, error) {
		if category == "" {
			return s.computeGlobalRankingAll(ctx)
		}
		return s.computeGlobalRanking(ctx, category)
	}

	if s.store == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]GlobalRankingRow), nil
	}

	value, err := s.store.GetOrLoad(ctx, globalRankingCacheKey(category), loader)
	if err != nil {
		return nil, err
	}
	return value.([]GlobalRankingRow), nil
}

func (s *RankingService) computeEventRanking(ctx context.Context, eventID, category string) ([]EventRankingRow, error) {
	if _, exists, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	var (
		results    []result.Result
		resultsErr error
		riders     []rider.Rider
		ridersErr  error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		results, resultsErr = s.resultRepo.ListByEvent(ctx, eventID)
	})
	wg.Go(func() {
		riders, ridersErr = s.riderRepo.List(ctx)
	})
	wg.Wait()

	if resultsErr != nil {
		return nil, fmt.Errorf("list event results: %w", resultsErr)
	}
	if ridersErr != nil {
		return nil, fmt.Errorf("list riders: %w", ridersErr)
	}

	riderByID := make(map[string]rider.Rider, len(riders))
	for _, item := range riders {
		riderByID[item.ID] = item
	}

	rows := make([]EventRankingRow, 0, len(results))
	for _, item := range results {
		if category != "" && item.CategoryPlayed != category {
			continue
		}
		member, ok := riderByID[item.RiderID]
		if !ok {
			// Rider removed since the result was stored; nothing to rank.
			continue
		}
		rows = append(rows, EventRankingRow{
			RiderID:        member.ID,
			FullName:       member.FullName,
			Club:           member.Club,
			CategoryPlayed: item.CategoryPlayed,
			Position:       item.Position,
			Points:         item.Points,
			RaceTime:       item.RaceTime,
			AvgSpeed:       item.AvgSpeed,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].Position != rows[j].Position {
			return rows[i].Position < rows[j].Position
		}
		return rows[i].RiderID < rows[j].RiderID
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows, nil
}

func (s *RankingService) computeGlobalRanking(ctx context.Context, category string) ([]GlobalRankingRow, error) {
	var (
		riders    []rider.Rider
		ridersErr error
		results   []result.Result
		resErr    error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		riders, ridersErr = s.riderRepo.ListByCategory(ctx, category)
	})
	wg.Go(func() {
		results, resErr = s.resultRepo.ListByCategoryPlayed(ctx, category)
	})
	wg.Wait()

	if ridersErr != nil {
		return nil, fmt.Errorf("list riders by category: %w", ridersErr)
	}
	if resErr != nil {
		return nil, fmt.Errorf("list results by category: %w", resErr)
	}

	riderByID := make(map[string]rider.Rider, len(riders))
	for _, item := range riders {
		riderByID[item.ID] = item
	}

	totals := make(map[string]*GlobalRankingRow, len(riders))
	for _, item := range results {
		member, counts := riderByID[item.RiderID]
		if !counts {
			// Raced this category but currently registered in another one.
			continue
		}
		row, ok := totals[member.ID]
		if !ok {
			row = &GlobalRankingRow{
				RiderID:  member.ID,
				FullName: member.FullName,
				Club:     member.Club,
				Category: category,
			}
			totals[member.ID] = row
		}
		row.TotalPoints += item.Points
		row.EventCount++
	}

	rows := make([]GlobalRankingRow, 0, len(totals))
	for _, row := range totals {
		rows = append(rows, *row)
	}

	rankGlobalRows(rows)

	return rows, nil
}

// computeGlobalRankingAll builds the season-wide table across every
// configured category. Riders never mix categories here: each one's total
// comes from the per-category computation, and the merged list is simply
// re-ranked as a whole.
func (s *RankingService) computeGlobalRankingAll(ctx context.Context) ([]GlobalRankingRow, error) {
	categories := s.categories.List()
	perCategory := make([][]GlobalRankingRow, len(categories))
	errs := make([]error, len(categories))

	var wg conc.WaitGroup
	for i, category := range categories {
		i, category := i, category
		wg.Go(func() {
			perCategory[i], errs[i] = s.computeGlobalRanking(ctx, category)
		})
	}
	wg.Wait()

	var rows []GlobalRankingRow
	for i := range categories {
		if errs[i] != nil {
			return nil, errs[i]
		}
		rows = append(rows, perCategory[i]...)
	}

	rankGlobalRows(rows)

	return rows, nil
}

func rankGlobalRows(rows []GlobalRankingRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		if rows[i].EventCount != rows[j].EventCount {
			return rows[i].EventCount > rows[j].EventCount
		}
		if rows[i].FullName != rows[j].FullName {
			return rows[i].FullName < rows[j].FullName
		}
		return rows[i].RiderID < rows[j].RiderID
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
}

func eventRankingCacheKey(eventID, category string) string {
	return "ranking:event:" + eventID + ":" + category
}

func globalRankingCacheKey(category string) string {
	return "ranking:global:" + category
}
