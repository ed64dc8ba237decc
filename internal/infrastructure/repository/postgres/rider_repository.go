package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pedalnorte/championship-api/internal/domain/rider"
	qb "github.com/pedalnorte/championship-api/internal/platform/querybuilder"
)

type RiderRepository struct {
	db *sqlx.DB
}

var riderSelectColumns = []string{
	"id",
	"national_id",
	"full_name",
	"category",
	"club",
	"city",
	"email",
	"phone",
	"instagram",
	"birth_date",
	"created_at",
	"updated_at",
}

func NewRiderRepository(db *sqlx.DB) *RiderRepository {
	return &RiderRepository{db: db}
}

// Upsert keys the write on national_id: a conflicting row is fully replaced
// while the database-side RETURNING preserves its original id and created_at.
func (r *RiderRepository) Upsert(ctx context.Context, item rider.Rider) (rider.Rider, error) {
	query, args, err := qb.InsertModel("riders", riderToTableModel(item), `
		ON CONFLICT (national_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			category = EXCLUDED.category,
			club = EXCLUDED.club,
			city = EXCLUDED.city,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			instagram = EXCLUDED.instagram,
			birth_date = EXCLUDED.birth_date,
			updated_at = EXCLUDED.updated_at
		RETURNING id, national_id, full_name, category, club, city, email, phone, instagram, birth_date, created_at, updated_at`)
	if err != nil {
		return rider.Rider{}, fmt.Errorf("build upsert rider query: %w", err)
	}

	var row riderTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return rider.Rider{}, fmt.Errorf("upsert rider: %w", err)
	}

	return riderFromTableModel(row), nil
}

func (r *RiderRepository) GetByID(ctx context.Context, riderID string) (rider.Rider, bool, error) {
	query, args, err := qb.Select(riderSelectColumns...).From("riders").
		Where(qb.Eq("id", riderID)).
		ToSQL()
	if err != nil {
		return rider.Rider{}, false, fmt.Errorf("build select rider by id query: %w", err)
	}

	var row riderTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rider.Rider{}, false, nil
		}
		return rider.Rider{}, false, fmt.Errorf("select rider by id: %w", err)
	}

	return riderFromTableModel(row), true, nil
}

func (r *RiderRepository) GetByNationalID(ctx context.Context, nationalID string) (rider.Rider, bool, error) {
	query, args, err := qb.Select(riderSelectColumns...).From("riders").
		Where(qb.Eq("national_id", nationalID)).
		ToSQL()
	if err != nil {
		return rider.Rider{}, false, fmt.Errorf("build select rider by national id query: %w", err)
	}

	var row riderTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rider.Rider{}, false, nil
		}
		return rider.Rider{}, false, fmt.Errorf("select rider by national id: %w", err)
	}

	return riderFromTableModel(row), true, nil
}

func (r *RiderRepository) List(ctx context.Context) ([]rider.Rider, error) {
	query, args, err := qb.Select(riderSelectColumns...).From("riders").
		OrderBy("full_name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select riders query: %w", err)
	}

	var rows []riderTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select riders: %w", err)
	}

	out := make([]rider.Rider, 0, len(rows))
	for _, row := range rows {
		out = append(out, riderFromTableModel(row))
	}

	return out, nil
}

func (r *RiderRepository) ListByCategory(ctx context.Context, category string) ([]rider.Rider, error) {
	query, args, err := qb.Select(riderSelectColumns...).From("riders").
		Where(qb.Eq("category", category)).
		OrderBy("full_name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select riders by category query: %w", err)
	}

	var rows []riderTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select riders by category: %w", err)
	}

	out := make([]rider.Rider, 0, len(rows))
	for _, row := range rows {
		out = append(out, riderFromTableModel(row))
	}

	return out, nil
}

func (r *RiderRepository) Delete(ctx context.Context, riderID string) (bool, error) {
	query, args, err := qb.DeleteFrom("riders").
		Where(qb.Eq("id", riderID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete rider query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete rider: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete rider rows affected: %w", err)
	}

	return affected > 0, nil
}
