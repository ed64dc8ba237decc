package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pedalnorte/championship-api/internal/domain/registration"
	qb "github.com/pedalnorte/championship-api/internal/platform/querybuilder"
)

type RegistrationRepository struct {
	db *sqlx.DB
}

var registrationRequestSelectColumns = []string{
	"id",
	"national_id",
	"full_name",
	"email",
	"phone",
	"club",
	"city",
	"category",
	"birth_date",
	"instagram",
	"terms_accepted",
	"status",
	"created_at",
}

func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) Create(ctx context.Context, item registration.Request) error {
	query, args, err := qb.InsertModel("registration_requests", registrationRequestToTableModel(item), "")
	if err != nil {
		return fmt.Errorf("build insert registration request query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return registration.ErrDuplicateNationalID
		}
		return fmt.Errorf("insert registration request: %w", err)
	}

	return nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, requestID string) (registration.Request, bool, error) {
	query, args, err := qb.Select(registrationRequestSelectColumns...).From("registration_requests").
		Where(qb.Eq("id", requestID)).
		ToSQL()
	if err != nil {
		return registration.Request{}, false, fmt.Errorf("build select registration request by id query: %w", err)
	}

	var row registrationRequestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return registration.Request{}, false, nil
		}
		return registration.Request{}, false, fmt.Errorf("select registration request by id: %w", err)
	}

	return registrationRequestFromTableModel(row), true, nil
}

func (r *RegistrationRepository) GetByNationalID(ctx context.Context, nationalID string) (registration.Request, bool, error) {
	query, args, err := qb.Select(registrationRequestSelectColumns...).From("registration_requests").
		Where(qb.Eq("national_id", nationalID)).
		ToSQL()
	if err != nil {
		return registration.Request{}, false, fmt.Errorf("build select registration request by national id query: %w", err)
	}

	var row registrationRequestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return registration.Request{}, false, nil
		}
		return registration.Request{}, false, fmt.Errorf("select registration request by national id: %w", err)
	}

	return registrationRequestFromTableModel(row), true, nil
}

func (r *RegistrationRepository) ListPending(ctx context.Context) ([]registration.Request, error) {
	query, args, err := qb.Select(registrationRequestSelectColumns...).From("registration_requests").
		Where(qb.Eq("status", registration.StatusPending)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select pending registration requests query: %w", err)
	}

	var rows []registrationRequestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select pending registration requests: %w", err)
	}

	out := make([]registration.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, registrationRequestFromTableModel(row))
	}

	return out, nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, requestID string) (bool, error) {
	query, args, err := qb.DeleteFrom("registration_requests").
		Where(qb.Eq("id", requestID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete registration request query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete registration request: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete registration request rows affected: %w", err)
	}

	return affected > 0, nil
}
