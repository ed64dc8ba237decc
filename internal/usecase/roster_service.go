package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pedalnorte/championship-api/internal/domain/club"
	"github.com/pedalnorte/championship-api/internal/domain/registration"
	"github.com/pedalnorte/championship-api/internal/domain/rider"
	"github.com/pedalnorte/championship-api/internal/domain/rut"
	idgen "github.com/pedalnorte/championship-api/internal/platform/id"
	"github.com/pedalnorte/championship-api/internal/platform/logging"
)

// Outcome is the structured result of a reconciliation decision. Success
// reports whether the decision itself was applied; Message carries any
// tolerated partial failure, such as a request row that survived cleanup.
type Outcome struct {
	Success bool
	Message string
	Rider   rider.Rider
}

// ApproveOverrides lets the operator correct submitted fields at approval
// time, including a mistyped national id. Empty fields keep the submitted
// value.
type ApproveOverrides struct {
	NationalID string
	FullName   string
	Category   string
	Club       string
	City       string
	Email      string
	Phone      string
	Instagram  string
	BirthDate  string
}

type RosterService struct {
	requestRepo registration.Repository
	riderRepo   rider.Repository
	clubRepo    club.Repository
	categories  CategorySet
	defaultClub string
	defaultCity string
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewRosterService(
	requestRepo registration.Repository,
	riderRepo rider.Repository,
	clubRepo club.Repository,
	categories CategorySet,
	defaultClub string,
	defaultCity string,
	idGen idgen.Generator,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		requestRepo: requestRepo,
		riderRepo:   riderRepo,
		clubRepo:    clubRepo,
		categories:  categories,
		defaultClub: strings.ToUpper(strings.TrimSpace(defaultClub)),
		defaultCity: strings.ToUpper(strings.TrimSpace(defaultCity)),
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// Approve merges a pending request into the roster. Operator overrides win
// over submitted values, the rider row is fully replaced keyed on the
// national id, and the request is deleted afterwards. A failed deletion or
// club registration does not undo the approval; it is reported in the
// outcome message instead.
func (s *RosterService) Approve(ctx context.Context, requestID string, overrides ApproveOverrides) (Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Approve")
	defer span.End()

	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return Outcome{}, fmt.Errorf("%w: request id is required", ErrInvalidInput)
	}

	request, exists, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return Outcome{}, fmt.Errorf("get registration request: %w", err)
	}
	if !exists {
		return Outcome{}, fmt.Errorf("%w: registration request=%s", ErrNotFound, requestID)
	}

	resolved, err := s.resolveRiderFields(request, overrides)
	if err != nil {
		return Outcome{}, err
	}

	saved, err := s.upsertRider(ctx, resolved)
	if err != nil {
		return Outcome{}, err
	}

	var notes []string
	if saved.Club != s.defaultClub {
		if err := s.registerClub(ctx, saved.Club); err != nil {
			s.logger.WarnContext(ctx, "club registration failed after approval",
				"request_id", requestID,
				"club", saved.Club,
				"error", err,
			)
			notes = append(notes, "club dictionary update failed")
		}
	}

	if _, err := s.requestRepo.Delete(ctx, requestID); err != nil {
		s.logger.WarnContext(ctx, "request cleanup failed after approval",
			"request_id", requestID,
			"rider_id", saved.ID,
			"error", err,
		)
		notes = append(notes, "request cleanup pending")
	}

	message := "registration approved"
	if len(notes) > 0 {
		message = message + " (" + strings.Join(notes, "; ") + ")"
	}

	return Outcome{Success: true, Message: message, Rider: saved}, nil
}

// Reject discards a pending request without touching the roster.
func (s *RosterService) Reject(ctx context.Context, requestID string) (Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Reject")
	defer span.End()

	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return Outcome{}, fmt.Errorf("%w: request id is required", ErrInvalidInput)
	}

	deleted, err := s.requestRepo.Delete(ctx, requestID)
	if err != nil {
		return Outcome{}, fmt.Errorf("delete registration request: %w", err)
	}
	if !deleted {
		return Outcome{}, fmt.Errorf("%w: registration request=%s", ErrNotFound, requestID)
	}

	return Outcome{Success: true, Message: "registration rejected"}, nil
}

// FindDuplicates reports roster members already holding the request's
// national id. It is advisory only; Approve resolves the collision by
// replacing the existing rider.
func (s *RosterService) FindDuplicates(ctx context.Context, requestID string) ([]rider.Rider, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.FindDuplicates")
	defer span.End()

	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return nil, fmt.Errorf("%w: request id is required", ErrInvalidInput)
	}

	request, exists, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get registration request: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: registration request=%s", ErrNotFound, requestID)
	}

	match, exists, err := s.riderRepo.GetByNationalID(ctx, request.NationalID)
	if err != nil {
		return nil, fmt.Errorf("find roster duplicates: %w", err)
	}
	if !exists {
		return []rider.Rider{}, nil
	}

	return []rider.Rider{match}, nil
}

type SaveRiderInput struct {
	FullName   string
	NationalID string
	Category   string
	Club       string
	City       string
	Email      string
	Phone      string
	Instagram  string
	BirthDate  string
}

// SaveRider updates an existing roster member directly. The national id may
// be corrected, but not to one held by a different rider.
func (s *RosterService) SaveRider(ctx context.Context, riderID string, input SaveRiderInput) (rider.Rider, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SaveRider")
	defer span.End()

	riderID = strings.TrimSpace(riderID)
	if riderID == "" {
		return rider.Rider{}, fmt.Errorf("%w: rider id is required", ErrInvalidInput)
	}

	existing, exists, err := s.riderRepo.GetByID(ctx, riderID)
	if err != nil {
		return rider.Rider{}, fmt.Errorf("get rider: %w", err)
	}
	if !exists {
		return rider.Rider{}, fmt.Errorf("%w: rider=%s", ErrNotFound, riderID)
	}

	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return rider.Rider{}, fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	if err := rut.Check(input.NationalID); err != nil {
		return rider.Rider{}, fmt.Errorf("%w: national id: %v", ErrInvalidInput, err)
	}
	if !s.categories.Has(input.Category) {
		return rider.Rider{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input.Category)
	}

	nationalID := rut.Normalize(input.NationalID)
	if holder, exists, err := s.riderRepo.GetByNationalID(ctx, nationalID); err != nil {
		return rider.Rider{}, fmt.Errorf("check national id holder: %w", err)
	} else if exists && holder.ID != existing.ID {
		return rider.Rider{}, fmt.Errorf("%w: national id %s belongs to another rider", ErrConflict, rut.Format(nationalID))
	}

	item := rider.Rider{
		ID:         existing.ID,
		NationalID: nationalID,
		FullName:   strings.ToUpper(fullName),
		Category:   input.Category,
		Club:       s.normalizeClub(input.Club),
		City:       s.normalizeCity(input.City),
		Email:      strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:      strings.TrimSpace(input.Phone),
		Instagram:  strings.TrimSpace(input.Instagram),
		BirthDate:  strings.TrimSpace(input.BirthDate),
		CreatedAt:  existing.CreatedAt,
		UpdatedAt:  s.now().UTC(),
	}

	saved, err := s.riderRepo.Upsert(ctx, item)
	if err != nil {
		return rider.Rider{}, fmt.Errorf("save rider: %w", err)
	}

	if saved.Club != s.defaultClub {
		if err := s.registerClub(ctx, saved.Club); err != nil {
			s.logger.WarnContext(ctx, "club registration failed on rider save",
				"rider_id", saved.ID,
				"club", saved.Club,
				"error", err,
			)
		}
	}

	return saved, nil
}

func (s *RosterService) GetRider(ctx context.Context, riderID string) (rider.Rider, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetRider")
	defer span.End()

	riderID = strings.TrimSpace(riderID)
	if riderID == "" {
		return rider.Rider{}, fmt.Errorf("%w: rider id is required", ErrInvalidInput)
	}

	item, exists, err := s.riderRepo.GetByID(ctx, riderID)
	if err != nil {
		return rider.Rider{}, fmt.Errorf("get rider: %w", err)
	}
	if !exists {
		return rider.Rider{}, fmt.Errorf("%w: rider=%s", ErrNotFound, riderID)
	}

	return item, nil
}

func (s *RosterService) ListRiders(ctx context.Context) ([]rider.Rider, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListRiders")
	defer span.End()

	items, err := s.riderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	return items, nil
}

func (s *RosterService) DeleteRider(ctx context.Context, riderID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.DeleteRider")
	defer span.End()

	riderID = strings.TrimSpace(riderID)
	if riderID == "" {
		return fmt.Errorf("%w: rider id is required", ErrInvalidInput)
	}

	deleted, err := s.riderRepo.Delete(ctx, riderID)
	if err != nil {
		return fmt.Errorf("delete rider: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: rider=%s", ErrNotFound, riderID)
	}

	return nil
}

func (s *RosterService) ListClubs(ctx context.Context) ([]club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListClubs")
	defer span.End()

	items, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	return items, nil
}

func (s *RosterService) resolveRiderFields(request registration.Request, overrides ApproveOverrides) (rider.Rider, error) {
	pick := func(override, submitted string) string {
		if v := strings.TrimSpace(override); v != "" {
			return v
		}
		return strings.TrimSpace(submitted)
	}

	fullName := pick(overrides.FullName, request.FullName)
	if fullName == "" {
		return rider.Rider{}, fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	category := pick(overrides.Category, request.Category)
	if !s.categories.Has(category) {
		return rider.Rider{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	nationalID := pick(overrides.NationalID, request.NationalID)
	if err := rut.Check(nationalID); err != nil {
		return rider.Rider{}, fmt.Errorf("%w: national id: %v", ErrInvalidInput, err)
	}

	return rider.Rider{
		NationalID: rut.Normalize(nationalID),
		FullName:   strings.ToUpper(fullName),
		Category:   category,
		Club:       s.normalizeClub(pick(overrides.Club, request.Club)),
		City:       s.normalizeCity(pick(overrides.City, request.City)),
		Email:      strings.ToLower(pick(overrides.Email, request.Email)),
		Phone:      pick(overrides.Phone, request.Phone),
		Instagram:  pick(overrides.Instagram, request.Instagram),
		BirthDate:  pick(overrides.BirthDate, request.BirthDate),
	}, nil
}

func (s *RosterService) upsertRider(ctx context.Context, resolved rider.Rider) (rider.Rider, error) {
	existing, exists, err := s.riderRepo.GetByNationalID(ctx, resolved.NationalID)
	if err != nil {
		return rider.Rider{}, fmt.Errorf("get rider by national id: %w", err)
	}

	if exists {
		resolved.ID = existing.ID
		resolved.CreatedAt = existing.CreatedAt
	} else {
		riderID, err := s.idGen.NewID()
		if err != nil {
			return rider.Rider{}, fmt.Errorf("generate rider id: %w", err)
		}
		resolved.ID = riderID
		resolved.CreatedAt = s.now().UTC()
	}
	resolved.UpdatedAt = s.now().UTC()

	saved, err := s.riderRepo.Upsert(ctx, resolved)
	if err != nil {
		return rider.Rider{}, fmt.Errorf("upsert rider: %w", err)
	}
	return saved, nil
}

func (s *RosterService) registerClub(ctx context.Context, name string) error {
	if s.clubRepo == nil || strings.TrimSpace(name) == "" {
		return nil
	}

	clubID, err := s.idGen.NewID()
	if err != nil {
		return fmt.Errorf("generate club id: %w", err)
	}
	return s.clubRepo.Register(ctx, club.Club{ID: clubID, Name: name})
}

func (s *RosterService) normalizeClub(v string) string {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" {
		return s.defaultClub
	}
	return v
}

func (s *RosterService) normalizeCity(v string) string {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" {
		return s.defaultCity
	}
	return v
}
