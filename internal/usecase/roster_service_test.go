package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/pedalnorte/championship-api/internal/domain/registration"
	"github.com/pedalnorte/championship-api/internal/domain/rider"
	"github.com/pedalnorte/championship-api/internal/infrastructure/repository/memory"
)

func newRosterFixture(t *testing.T, riders []rider.Rider) (*RosterService, *memory.RegistrationRepository, *memory.RiderRepository, *memory.ClubRepository) {
	t.Helper()

	requestRepo := memory.NewRegistrationRepository()
	riderRepo := memory.NewRiderRepository(riders)
	clubRepo := memory.NewClubRepository(nil)
	service := NewRosterService(
		requestRepo,
		riderRepo,
		clubRepo,
		testCategories(),
		"Independiente / Libre",
		"Iquique",
		&seqIDGenerator{prefix: "gen"},
		nil,
	)

	return service, requestRepo, riderRepo, clubRepo
}

func pendingRequest(id, nationalID string) registration.Request {
	return registration.Request{
		ID:            id,
		NationalID:    nationalID,
		FullName:      "JUAN PEREZ SOTO",
		Email:         "juan@mail.com",
		Category:      "Elite Open",
		Club:          "TARAPACA RIDERS",
		City:          "IQUIQUE",
		TermsAccepted: true,
		Status:        registration.StatusPending,
		CreatedAt:     time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestRosterService_Approve_CreatesRiderAndCleansRequest(t *testing.T) {
	service, requestRepo, riderRepo, clubRepo := newRosterFixture(t, nil)
	if err := requestRepo.Create(t.Context(), pendingRequest("req-1", "123456785")); err != nil {
		t.Fatalf("seed request: %v", err)
	}

	outcome, err := service.Approve(t.Context(), "req-1", ApproveOverrides{})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if !outcome.Success || outcome.Message != "registration approved" {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	saved, exists, _ := riderRepo.GetByNationalID(t.Context(), "123456785")
	if !exists {
		t.Fatalf("expected rider on roster")
	}
	if saved.FullName != "JUAN PEREZ SOTO" || saved.Category != "Elite Open" {
		t.Fatalf("unexpected rider: %+v", saved)
	}

	if _, exists, _ := requestRepo.GetByID(t.Context(), "req-1"); exists {
		t.Fatalf("expected request to be deleted after approval")
	}

	clubs, _ := clubRepo.List(t.Context())
	if len(clubs) != 1 || clubs[0].Name != "TARAPACA RIDERS" {
		t.Fatalf("expected club to be registered, got %+v", clubs)
	}
}

func TestRosterService_Approve_OverridesWinAndDefaultsApply(t *testing.T) {
	service, requestRepo, _, clubRepo := newRosterFixture(t, nil)
	request := pendingRequest("req-1", "123456785")
	request.Club = ""
	request.City = ""
	if err := requestRepo.Create(t.Context(), request); err != nil {
		t.Fatalf("seed request: %v", err)
	}

	outcome, err := service.Approve(t.Context(), "req-1", ApproveOverrides{
		FullName: "juan p. soto",
		Category: "Master A",
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if outcome.Rider.FullName != "JUAN P. SOTO" {
		t.Fatalf("unexpected full name: %s", outcome.Rider.FullName)
	}
	if outcome.Rider.Category != "Master A" {
		t.Fatalf("unexpected category: %s", outcome.Rider.Category)
	}
	if outcome.Rider.Club != "INDEPENDIENTE / LIBRE" || outcome.Rider.City != "IQUIQUE" {
		t.Fatalf("expected defaults, got %s/%s", outcome.Rider.Club, outcome.Rider.City)
	}

	// The fallback club is not a real club and must stay out of the dictionary.
	clubs, _ := clubRepo.List(t.Context())
	if len(clubs) != 0 {
		t.Fatalf("expected no club registration, got %+v", clubs)
	}
}

func TestRosterService_Approve_NationalIDOverride(t *testing.T) {
	service, requestRepo, riderRepo, _ := newRosterFixture(t, nil)
	if err := requestRepo.Create(t.Context(), pendingRequest("req-1", "123456785")); err != nil {
		t.Fatalf("seed request: %v", err)
	}

	// The operator corrects a mistyped id at approval time.
	outcome, err := service.Approve(t.Context(), "req-1", ApproveOverrides{
		NationalID: "11.111.111-1",
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if outcome.Rider.NationalID != "111111111" {
		t.Fatalf("unexpected national id: %s", outcome.Rider.NationalID)
	}

	if _, exists, _ := riderRepo.GetByNationalID(t.Context(), "123456785"); exists {
		t.Fatalf("expected no rider under the submitted id")
	}
	if _, exists, _ := riderRepo.GetByNationalID(t.Context(), "111111111"); !exists {
		t.Fatalf("expected rider under the corrected id")
	}
}

func TestRosterService_Approve_RejectsInvalidNationalIDOverride(t *testing.T) {
	service, requestRepo, riderRepo, _ := newRosterFixture(t, nil)
	if err := requestRepo.Create(t.Context(), pendingRequest("req-1", "123456785")); err != nil {
		t.Fatalf("seed request: %v", err)
	}

	_, err := service.Approve(t.Context(), "req-1", ApproveOverrides{
		NationalID: "11.111.111-2",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for bad check digit, got %v", err)
	}

	// A failed approval leaves both the request and the roster untouched.
	if _, exists, _ := requestRepo.GetByID(t.Context(), "req-1"); !exists {
		t.Fatalf("expected request to survive a failed approval")
	}
	riders, _ := riderRepo.List(t.Context())
	if len(riders) != 0 {
		t.Fatalf("expected empty roster, got %+v", riders)
	}
}

func TestRosterService_Approve_ReplacesExistingRider(t *testing.T) {
	existing := testRider("rider-1", "123456785", "JUAN VIEJO", "Novicios Open")
	service, requestRepo, riderRepo, _ := newRosterFixture(t, []rider.Rider{existing})
	if err := requestRepo.Create(t.Context(), pendingRequest("req-1", "123456785")); err != nil {
		t.Fatalf("seed request: %v", err)
	}

	outcome, err := service.Approve(t.Context(), "req-1", ApproveOverrides{})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if outcome.Rider.ID != existing.ID {
		t.Fatalf("expected rider id to be preserved, got %s", outcome.Rider.ID)
	}
	if !outcome.Rider.CreatedAt.Equal(existing.CreatedAt) {
		t.Fatalf("expected created_at to be preserved")
	}

	saved, _, _ := riderRepo.GetByID(t.Context(), existing.ID)
	if saved.FullName != "JUAN PEREZ SOTO" || saved.Category != "Elite Open" {
		t.Fatalf("expected full replacement, got %+v", saved)
	}
}

func TestRosterService_Approve_UnknownRequest(t *testing.T) {
	service, _, _, _ := newRosterFixture(t, nil)

	_, err := service.Approve(t.Context(), "missing", ApproveOverrides{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRosterService_Reject(t *testing.T) {
	service, requestRepo, riderRepo, _ := newRosterFixture(t, nil)
	if err := requestRepo.Create(t.Context(), pendingRequest("req-1", "123456785")); err != nil {
		t.Fatalf("seed request: %v", err)
	}

	outcome, err := service.Reject(t.Context(), "req-1")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if !outcome.Success || outcome.Message != "registration rejected" {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	if _, exists, _ := requestRepo.GetByID(t.Context(), "req-1"); exists {
		t.Fatalf("expected request to be deleted")
	}
	riders, _ := riderRepo.List(t.Context())
	if len(riders) != 0 {
		t.Fatalf("reject must not touch the roster")
	}

	if _, err := service.Reject(t.Context(), "req-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second reject, got %v", err)
	}
}

func TestRosterService_FindDuplicates(t *testing.T) {
	existing := testRider("rider-1", "123456785", "JUAN VIEJO", "Novicios Open")
	service, requestRepo, _, _ := newRosterFixture(t, []rider.Rider{existing})
	if err := requestRepo.Create(t.Context(), pendingRequest("req-1", "123456785")); err != nil {
		t.Fatalf("seed request: %v", err)
	}

	matches, err := service.FindDuplicates(t.Context(), "req-1")
	if err != nil {
		t.Fatalf("find duplicates failed: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != "rider-1" {
		t.Fatalf("unexpected duplicates: %+v", matches)
	}
}

func TestRosterService_SaveRider_NationalIDConflict(t *testing.T) {
	riders := []rider.Rider{
		testRider("rider-1", "123456785", "JUAN PEREZ", "Elite Open"),
		testRider("rider-2", "111111111", "MARIA ROJAS", "Damas Master A"),
	}
	service, _, _, _ := newRosterFixture(t, riders)

	_, err := service.SaveRider(t.Context(), "rider-2", SaveRiderInput{
		FullName:   "Maria Rojas",
		NationalID: "12.345.678-5",
		Category:   "Damas Master A",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestRosterService_SaveRider_UpdatesFields(t *testing.T) {
	existing := testRider("rider-1", "123456785", "JUAN PEREZ", "Elite Open")
	service, _, riderRepo, _ := newRosterFixture(t, []rider.Rider{existing})

	saved, err := service.SaveRider(t.Context(), "rider-1", SaveRiderInput{
		FullName:   "juan perez soto",
		NationalID: "12345678-5",
		Category:   "Master A",
		Club:       "dragones del norte",
		Email:      "Juan@Mail.com",
	})
	if err != nil {
		t.Fatalf("save rider failed: %v", err)
	}

	if saved.FullName != "JUAN PEREZ SOTO" || saved.Category != "Master A" {
		t.Fatalf("unexpected rider: %+v", saved)
	}
	if saved.Club != "DRAGONES DEL NORTE" || saved.Email != "juan@mail.com" {
		t.Fatalf("unexpected normalization: %+v", saved)
	}
	if !saved.CreatedAt.Equal(existing.CreatedAt) {
		t.Fatalf("expected created_at to be preserved")
	}

	stored, _, _ := riderRepo.GetByID(t.Context(), "rider-1")
	if stored.Category != "Master A" {
		t.Fatalf("expected stored rider to be updated")
	}
}

func TestRosterService_DeleteRider(t *testing.T) {
	service, _, _, _ := newRosterFixture(t, []rider.Rider{
		testRider("rider-1", "123456785", "JUAN PEREZ", "Elite Open"),
	})

	if err := service.DeleteRider(t.Context(), "rider-1"); err != nil {
		t.Fatalf("delete rider failed: %v", err)
	}
	if err := service.DeleteRider(t.Context(), "rider-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
