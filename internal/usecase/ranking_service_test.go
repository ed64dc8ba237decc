package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/pedalnorte/championship-api/internal/domain/result"
	"github.com/pedalnorte/championship-api/internal/domain/rider"
	"github.com/pedalnorte/championship-api/internal/infrastructure/repository/memory"
	"github.com/pedalnorte/championship-api/internal/platform/cache"
)

func newRankingFixture(t *testing.T, riders []rider.Rider, results []result.Result, store *cache.Store) *RankingService {
	t.Helper()

	resultRepo := memory.NewResultRepository()
	for _, item := range results {
		if _, err := resultRepo.Upsert(t.Context(), item); err != nil {
			t.Fatalf("seed result: %v", err)
		}
	}

	return NewRankingService(
		memory.NewEventRepository(memory.SeedEvents()),
		memory.NewRiderRepository(riders),
		resultRepo,
		store,
		testCategories(),
		2,
		nil,
	)
}

func seedResult(id, eventID, riderID, category string, position, points int) result.Result {
	created := time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC)
	return result.Result{
		ID:             id,
		EventID:        eventID,
		RiderID:        riderID,
		CategoryPlayed: category,
		Position:       position,
		Points:         points,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

func TestRankingService_EventRanking_OrdersByPoints(t *testing.T) {
	riders := []rider.Rider{
		testRider("rider-1", "123456785", "JUAN PEREZ", "Elite Open"),
		testRider("rider-2", "111111111", "MARIA ROJAS", "Elite Open"),
		testRider("rider-3", "98765433", "PEDRO SILVA", "Master A"),
	}
	results := []result.Result{
		seedResult("res-1", memory.EventIDFecha1, "rider-1", "Elite Open", 2, 90),
		seedResult("res-2", memory.EventIDFecha1, "rider-2", "Elite Open", 1, 100),
		seedResult("res-3", memory.EventIDFecha1, "rider-3", "Master A", 1, 100),
	}
	service := newRankingFixture(t, riders, results, nil)

	rows, err := service.EventRanking(t.Context(), memory.EventIDFecha1, "")
	if err != nil {
		t.Fatalf("event ranking failed: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("unexpected row count: %d", len(rows))
	}
	// Equal points fall back to finishing position, then rider id.
	if rows[0].RiderID != "rider-2" || rows[1].RiderID != "rider-3" || rows[2].RiderID != "rider-1" {
		t.Fatalf("unexpected order: %s, %s, %s", rows[0].RiderID, rows[1].RiderID, rows[2].RiderID)
	}
	for i, row := range rows {
		if row.Rank != i+1 {
			t.Fatalf("unexpected rank at %d: %d", i, row.Rank)
		}
	}
}

func TestRankingService_EventRanking_CategoryFilter(t *testing.T) {
	riders := []rider.Rider{
		testRider("rider-1", "123456785", "JUAN PEREZ", "Elite Open"),
		testRider("rider-3", "98765433", "PEDRO SILVA", "Master A"),
	}
	results := []result.Result{
		seedResult("res-1", memory.EventIDFecha1, "rider-1", "Elite Open", 1, 100),
		seedResult("res-3", memory.EventIDFecha1, "rider-3", "Master A", 1, 100),
	}
	service := newRankingFixture(t, riders, results, nil)

	rows, err := service.EventRanking(t.Context(), memory.EventIDFecha1, "Master A")
	if err != nil {
		t.Fatalf("event ranking failed: %v", err)
	}
	if len(rows) != 1 || rows[0].RiderID != "rider-3" {
		t.Fatalf("unexpected filtered rows: %+v", rows)
	}

	if _, err := service.EventRanking(t.Context(), memory.EventIDFecha1, "No Existe"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown category, got %v", err)
	}
	if _, err := service.EventRanking(t.Context(), "missing", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown event, got %v", err)
	}
}

func TestRankingService_GlobalRanking_TotalsAndTieBreaks(t *testing.T) {
	riders := []rider.Rider{
		testRider("rider-1", "123456785", "JUAN PEREZ", "Elite Open"),
		testRider("rider-2", "111111111", "MARIA ROJAS", "Elite Open"),
		testRider("rider-3", "98765433", "PEDRO SILVA", "Elite Open"),
	}
	results := []result.Result{
		// rider-1: 150 points over two rounds.
		seedResult("res-1", memory.EventIDFecha1, "rider-1", "Elite Open", 3, 80),
		seedResult("res-2", memory.EventIDFecha2, "rider-1", "Elite Open", 4, 70),
		// rider-2: 150 points in a single round; fewer events ranks lower.
		seedResult("res-3", memory.EventIDFecha1, "rider-2", "Elite Open", 1, 150),
		// rider-3: fewer points.
		seedResult("res-4", memory.EventIDFecha1, "rider-3", "Elite Open", 5, 60),
	}
	service := newRankingFixture(t, riders, results, nil)

	rows, err := service.GlobalRanking(t.Context(), "Elite Open")
	if err != nil {
		t.Fatalf("global ranking failed: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("unexpected row count: %d", len(rows))
	}
	if rows[0].RiderID != "rider-1" || rows[0].TotalPoints != 150 || rows[0].EventCount != 2 {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	if rows[1].RiderID != "rider-2" || rows[2].RiderID != "rider-3" {
		t.Fatalf("unexpected order: %s, %s", rows[1].RiderID, rows[2].RiderID)
	}
}

func TestRankingService_GlobalRanking_ExcludesCategoryChanges(t *testing.T) {
	riders := []rider.Rider{
		// Raced Elite Open early season, now registered in Master A.
		testRider("rider-1", "123456785", "JUAN PEREZ", "Master A"),
		testRider("rider-2", "111111111", "MARIA ROJAS", "Elite Open"),
	}
	results := []result.Result{
		seedResult("res-1", memory.EventIDFecha1, "rider-1", "Elite Open", 1, 100),
		seedResult("res-2", memory.EventIDFecha1, "rider-2", "Elite Open", 2, 90),
	}
	service := newRankingFixture(t, riders, results, nil)

	rows, err := service.GlobalRanking(t.Context(), "Elite Open")
	if err != nil {
		t.Fatalf("global ranking failed: %v", err)
	}
	if len(rows) != 1 || rows[0].RiderID != "rider-2" {
		t.Fatalf("expected only current-category riders, got %+v", rows)
	}

	// The forfeited points do not follow the rider into the new category.
	rows, err = service.GlobalRanking(t.Context(), "Master A")
	if err != nil {
		t.Fatalf("global ranking failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty ranking for Master A, got %+v", rows)
	}
}

func TestRankingService_GlobalRanking_AllCategories(t *testing.T) {
	riders := []rider.Rider{
		testRider("rider-1", "123456785", "JUAN PEREZ", "Elite Open"),
		testRider("rider-2", "111111111", "MARIA ROJAS", "Master A"),
		// Raced Novicios Open early season, now in Damas Master A.
		testRider("rider-3", "98765433", "PAULA SOTO", "Damas Master A"),
	}
	results := []result.Result{
		seedResult("res-1", memory.EventIDFecha1, "rider-1", "Elite Open", 2, 90),
		seedResult("res-2", memory.EventIDFecha1, "rider-2", "Master A", 1, 100),
		seedResult("res-3", memory.EventIDFecha1, "rider-3", "Novicios Open", 1, 100),
	}
	service := newRankingFixture(t, riders, results, nil)

	// Empty category means the season-wide view across every category.
	rows, err := service.GlobalRanking(t.Context(), "")
	if err != nil {
		t.Fatalf("global ranking failed: %v", err)
	}

	// rider-3's points stayed behind in the old category, so only two rows.
	if len(rows) != 2 {
		t.Fatalf("unexpected row count: %d (%+v)", len(rows), rows)
	}
	if rows[0].RiderID != "rider-2" || rows[0].Category != "Master A" || rows[0].TotalPoints != 100 {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	if rows[1].RiderID != "rider-1" || rows[1].Category != "Elite Open" || rows[1].Rank != 2 {
		t.Fatalf("unexpected runner-up: %+v", rows[1])
	}
}

func TestRankingService_GlobalRanking_RejectsUnknownCategory(t *testing.T) {
	service := newRankingFixture(t, nil, nil, nil)

	if _, err := service.GlobalRanking(t.Context(), "No Existe"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown category, got %v", err)
	}
}

func TestRankingService_EventRanking_ServesFromCache(t *testing.T) {
	riders := []rider.Rider{
		testRider("rider-1", "123456785", "JUAN PEREZ", "Elite Open"),
	}
	results := []result.Result{
		seedResult("res-1", memory.EventIDFecha1, "rider-1", "Elite Open", 1, 100),
	}
	store := cache.NewStore(time.Minute)
	service := newRankingFixture(t, riders, results, store)

	first, err := service.EventRanking(t.Context(), memory.EventIDFecha1, "")
	if err != nil {
		t.Fatalf("first ranking failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("unexpected first rows: %+v", first)
	}

	// A stale snapshot keeps serving until something invalidates it.
	if _, err := service.resultRepo.Upsert(t.Context(), seedResult("res-2", memory.EventIDFecha1, "rider-1", "Elite Open", 2, 90)); err != nil {
		t.Fatalf("seed second result: %v", err)
	}
	second, err := service.EventRanking(t.Context(), memory.EventIDFecha1, "")
	if err != nil {
		t.Fatalf("second ranking failed: %v", err)
	}
	if len(second) != 1 || second[0].Points != 100 {
		t.Fatalf("expected cached snapshot, got %+v", second)
	}
}

func TestRankingService_RefreshAfterResultChange_InvalidatesAndWarms(t *testing.T) {
	riders := []rider.Rider{
		testRider("rider-1", "123456785", "JUAN PEREZ", "Elite Open"),
	}
	results := []result.Result{
		seedResult("res-1", memory.EventIDFecha1, "rider-1", "Elite Open", 1, 100),
	}
	store := cache.NewStore(time.Minute)
	service := newRankingFixture(t, riders, results, store)

	if _, err := service.EventRanking(t.Context(), memory.EventIDFecha1, ""); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	service.RefreshAfterResultChange(t.Context(), memory.EventIDFecha1)

	if _, ok := store.Get(t.Context(), eventRankingCacheKey(memory.EventIDFecha1, "")); ok {
		t.Fatalf("expected event ranking cache to be invalidated")
	}

	// The background pass repopulates the per-category global snapshots.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := store.Get(t.Context(), globalRankingCacheKey("Elite Open")); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected warmed global ranking cache")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRankingService_WarmGlobalRankings(t *testing.T) {
	riders := []rider.Rider{
		testRider("rider-1", "123456785", "JUAN PEREZ", "Elite Open"),
	}
	results := []result.Result{
		seedResult("res-1", memory.EventIDFecha1, "rider-1", "Elite Open", 1, 100),
	}
	store := cache.NewStore(time.Minute)
	service := newRankingFixture(t, riders, results, store)

	summary, err := service.WarmGlobalRankings(t.Context())
	if err != nil {
		t.Fatalf("warm failed: %v", err)
	}
	if summary.CategoryCount != 4 || summary.SuccessCount != 4 || summary.FailedCount != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	value, ok := store.Get(t.Context(), globalRankingCacheKey("Elite Open"))
	if !ok {
		t.Fatalf("expected warmed cache entry")
	}
	rows := value.([]GlobalRankingRow)
	if len(rows) != 1 || rows[0].TotalPoints != 100 {
		t.Fatalf("unexpected warmed rows: %+v", rows)
	}
}
