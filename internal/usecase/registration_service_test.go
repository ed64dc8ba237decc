package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pedalnorte/championship-api/internal/domain/registration"
	"github.com/pedalnorte/championship-api/internal/domain/rider"
	"github.com/pedalnorte/championship-api/internal/infrastructure/repository/memory"
)

type recordingNotifier struct {
	received chan registration.Request
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{received: make(chan registration.Request, 1)}
}

func (n *recordingNotifier) NotifyNewRegistration(_ context.Context, item registration.Request) error {
	n.received <- item
	return nil
}

func TestRegistrationService_Submit_NormalizesAndStores(t *testing.T) {
	requestRepo := memory.NewRegistrationRepository()
	riderRepo := memory.NewRiderRepository(nil)
	notifier := newRecordingNotifier()
	service := NewRegistrationService(requestRepo, riderRepo, testCategories(), &seqIDGenerator{prefix: "req"}, notifier, nil)

	saved, err := service.Submit(t.Context(), SubmitRegistrationInput{
		FullName:      "  juan perez soto ",
		NationalID:    "12.345.678-5",
		Email:         "Juan.Perez@Mail.COM",
		Club:          "tarapaca riders",
		City:          "iquique",
		Category:      "Elite Open",
		TermsAccepted: true,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if saved.NationalID != "123456785" {
		t.Fatalf("unexpected normalized national id: %s", saved.NationalID)
	}
	if saved.FullName != "JUAN PEREZ SOTO" {
		t.Fatalf("unexpected full name: %s", saved.FullName)
	}
	if saved.Email != "juan.perez@mail.com" {
		t.Fatalf("unexpected email: %s", saved.Email)
	}
	if saved.Club != "TARAPACA RIDERS" || saved.City != "IQUIQUE" {
		t.Fatalf("unexpected club/city: %s/%s", saved.Club, saved.City)
	}
	if saved.Status != registration.StatusPending {
		t.Fatalf("unexpected status: %s", saved.Status)
	}

	if _, exists, _ := requestRepo.GetByNationalID(t.Context(), "123456785"); !exists {
		t.Fatalf("expected request to be stored")
	}

	select {
	case notified := <-notifier.received:
		if notified.ID != saved.ID {
			t.Fatalf("notified wrong request: %s", notified.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected notification to be dispatched")
	}
}

func TestRegistrationService_Submit_RejectsInvalidNationalID(t *testing.T) {
	service := NewRegistrationService(
		memory.NewRegistrationRepository(),
		memory.NewRiderRepository(nil),
		testCategories(),
		&seqIDGenerator{prefix: "req"},
		nil,
		nil,
	)

	_, err := service.Submit(t.Context(), SubmitRegistrationInput{
		FullName:      "Juan Perez",
		NationalID:    "12.345.678-9",
		Email:         "juan@mail.com",
		Category:      "Elite Open",
		TermsAccepted: true,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestRegistrationService_Submit_RejectsUnacceptedTerms(t *testing.T) {
	service := NewRegistrationService(
		memory.NewRegistrationRepository(),
		memory.NewRiderRepository(nil),
		testCategories(),
		&seqIDGenerator{prefix: "req"},
		nil,
		nil,
	)

	_, err := service.Submit(t.Context(), SubmitRegistrationInput{
		FullName:      "Juan Perez",
		NationalID:    "12345678-5",
		Email:         "juan@mail.com",
		Category:      "Elite Open",
		TermsAccepted: false,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestRegistrationService_Submit_RejectsPendingDuplicate(t *testing.T) {
	service := NewRegistrationService(
		memory.NewRegistrationRepository(),
		memory.NewRiderRepository(nil),
		testCategories(),
		&seqIDGenerator{prefix: "req"},
		nil,
		nil,
	)

	input := SubmitRegistrationInput{
		FullName:      "Juan Perez",
		NationalID:    "12345678-5",
		Email:         "juan@mail.com",
		Category:      "Elite Open",
		TermsAccepted: true,
	}
	if _, err := service.Submit(t.Context(), input); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	// Same identifier in a different written form still collides.
	input.NationalID = "12.345.678-5"
	_, err := service.Submit(t.Context(), input)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestRegistrationService_Submit_RejectsRosterMember(t *testing.T) {
	riderRepo := memory.NewRiderRepository([]rider.Rider{
		testRider("rider-1", "123456785", "JUAN PEREZ", "Elite Open"),
	})
	service := NewRegistrationService(
		memory.NewRegistrationRepository(),
		riderRepo,
		testCategories(),
		&seqIDGenerator{prefix: "req"},
		nil,
		nil,
	)

	_, err := service.Submit(t.Context(), SubmitRegistrationInput{
		FullName:      "Juan Perez",
		NationalID:    "12345678-5",
		Email:         "juan@mail.com",
		Category:      "Elite Open",
		TermsAccepted: true,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestRegistrationService_ListPending(t *testing.T) {
	requestRepo := memory.NewRegistrationRepository()
	service := NewRegistrationService(
		requestRepo,
		memory.NewRiderRepository(nil),
		testCategories(),
		&seqIDGenerator{prefix: "req"},
		nil,
		nil,
	)

	for _, in := range []SubmitRegistrationInput{
		{FullName: "Juan Perez", NationalID: "12345678-5", Email: "juan@mail.com", Category: "Elite Open", TermsAccepted: true},
		{FullName: "Maria Rojas", NationalID: "11111111-1", Email: "maria@mail.com", Category: "Damas Master A", TermsAccepted: true},
	} {
		if _, err := service.Submit(t.Context(), in); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	pending, err := service.ListPending(t.Context())
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("unexpected pending count: %d", len(pending))
	}
}
