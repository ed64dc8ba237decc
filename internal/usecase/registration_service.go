package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pedalnorte/championship-api/internal/domain/registration"
	"github.com/pedalnorte/championship-api/internal/domain/rider"
	"github.com/pedalnorte/championship-api/internal/domain/rut"
	idgen "github.com/pedalnorte/championship-api/internal/platform/id"
	"github.com/pedalnorte/championship-api/internal/platform/logging"
)

// RegistrationNotifier pushes a newly submitted request to an external
// channel. Delivery is best-effort: intake never fails on notifier errors.
type RegistrationNotifier interface {
	NotifyNewRegistration(ctx context.Context, item registration.Request) error
}

type RegistrationService struct {
	requestRepo   registration.Repository
	riderRepo     rider.Repository
	categories    CategorySet
	idGen         idgen.Generator
	notifier      RegistrationNotifier
	notifyTimeout time.Duration
	logger        *logging.Logger
	now           func() time.Time
}

func NewRegistrationService(
	requestRepo registration.Repository,
	riderRepo rider.Repository,
	categories CategorySet,
	idGen idgen.Generator,
	notifier RegistrationNotifier,
	logger *logging.Logger,
) *RegistrationService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RegistrationService{
		requestRepo:   requestRepo,
		riderRepo:     riderRepo,
		categories:    categories,
		idGen:         idGen,
		notifier:      notifier,
		notifyTimeout: 15 * time.Second,
		logger:        logger,
		now:           time.Now,
	}
}

type SubmitRegistrationInput struct {
	FullName      string
	NationalID    string
	Email         string
	Phone         string
	Club          string
	City          string
	Category      string
	BirthDate     string
	Instagram     string
	TermsAccepted bool
}

// Submit validates a self-service sign-up and stores it as a pending request.
// The same identifier cannot be pending twice or already on the roster.
func (s *RegistrationService) Submit(ctx context.Context, input SubmitRegistrationInput) (registration.Request, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.Submit")
	defer span.End()

	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return registration.Request{}, fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	if err := rut.Check(input.NationalID); err != nil {
		return registration.Request{}, fmt.Errorf("%w: national id: %v", ErrInvalidInput, err)
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return registration.Request{}, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	category := strings.TrimSpace(input.Category)
	if !s.categories.Has(category) {
		return registration.Request{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	if !input.TermsAccepted {
		return registration.Request{}, fmt.Errorf("%w: terms must be accepted", ErrInvalidInput)
	}

	nationalID := rut.Normalize(input.NationalID)

	if _, exists, err := s.requestRepo.GetByNationalID(ctx, nationalID); err != nil {
		return registration.Request{}, fmt.Errorf("check pending registration: %w", err)
	} else if exists {
		return registration.Request{}, fmt.Errorf("%w: a registration for %s is already pending", ErrConflict, rut.Format(nationalID))
	}
	if _, exists, err := s.riderRepo.GetByNationalID(ctx, nationalID); err != nil {
		return registration.Request{}, fmt.Errorf("check roster: %w", err)
	} else if exists {
		return registration.Request{}, fmt.Errorf("%w: rider %s is already on the roster", ErrConflict, rut.Format(nationalID))
	}

	requestID, err := s.idGen.NewID()
	if err != nil {
		return registration.Request{}, fmt.Errorf("generate request id: %w", err)
	}

	item := registration.Request{
		ID:            requestID,
		NationalID:    nationalID,
		FullName:      strings.ToUpper(fullName),
		Email:         email,
		Phone:         strings.TrimSpace(input.Phone),
		Club:          strings.ToUpper(strings.TrimSpace(input.Club)),
		City:          strings.ToUpper(strings.TrimSpace(input.City)),
		Category:      category,
		BirthDate:     strings.TrimSpace(input.BirthDate),
		Instagram:     strings.TrimSpace(input.Instagram),
		TermsAccepted: true,
		Status:        registration.StatusPending,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.requestRepo.Create(ctx, item); err != nil {
		if errors.Is(err, registration.ErrDuplicateNationalID) {
			return registration.Request{}, fmt.Errorf("%w: a registration for %s is already pending", ErrConflict, rut.Format(nationalID))
		}
		return registration.Request{}, fmt.Errorf("create registration request: %w", err)
	}

	s.dispatchNotification(item)

	return item, nil
}

// ListPending returns requests awaiting operator review.
func (s *RegistrationService) ListPending(ctx context.Context) ([]registration.Request, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.ListPending")
	defer span.End()

	items, err := s.requestRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending registrations: %w", err)
	}
	return items, nil
}

func (s *RegistrationService) dispatchNotification(item registration.Request) {
	if s.notifier == nil {
		return
	}

	// Detached from the request lifecycle on purpose: a slow or down
	// notifier must not delay or fail intake.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()

		if err := s.notifier.NotifyNewRegistration(ctx, item); err != nil {
			s.logger.Warn("registration notification failed",
				"request_id", item.ID,
				"category", item.Category,
				"error", err,
			)
			return
		}
		s.logger.Debug("registration notification sent", "request_id", item.ID)
	}()
}
