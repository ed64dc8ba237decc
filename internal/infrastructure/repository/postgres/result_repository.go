package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pedalnorte/championship-api/internal/domain/result"
	qb "github.com/pedalnorte/championship-api/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

var resultSelectColumns = []string{
	"id",
	"event_id",
	"rider_id",
	"category_played",
	"position",
	"points",
	"race_time",
	"avg_speed",
	"created_at",
	"updated_at",
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Upsert keys the write on (event_id, rider_id): a conflicting row is fully
// replaced while RETURNING preserves its original id and created_at.
func (r *ResultRepository) Upsert(ctx context.Context, item result.Result) (result.Result, error) {
	query, args, err := qb.InsertModel("results", resultToTableModel(item), `
		ON CONFLICT (event_id, rider_id) DO UPDATE SET
			category_played = EXCLUDED.category_played,
			position = EXCLUDED.position,
			points = EXCLUDED.points,
			race_time = EXCLUDED.race_time,
			avg_speed = EXCLUDED.avg_speed,
			updated_at = EXCLUDED.updated_at
		RETURNING id, event_id, rider_id, category_played, position, points, race_time, avg_speed, created_at, updated_at`)
	if err != nil {
		return result.Result{}, fmt.Errorf("build upsert result query: %w", err)
	}

	var row resultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return result.Result{}, fmt.Errorf("upsert result: %w", err)
	}

	return resultFromTableModel(row), nil
}

func (r *ResultRepository) GetByID(ctx context.Context, resultID string) (result.Result, bool, error) {
	query, args, err := qb.Select(resultSelectColumns...).From("results").
		Where(qb.Eq("id", resultID)).
		ToSQL()
	if err != nil {
		return result.Result{}, false, fmt.Errorf("build select result by id query: %w", err)
	}

	var row resultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.Result{}, false, nil
		}
		return result.Result{}, false, fmt.Errorf("select result by id: %w", err)
	}

	return resultFromTableModel(row), true, nil
}

func (r *ResultRepository) ListByEvent(ctx context.Context, eventID string) ([]result.Result, error) {
	query, args, err := qb.Select(resultSelectColumns...).From("results").
		Where(qb.Eq("event_id", eventID)).
		OrderBy("points DESC", "position", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select results by event query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select results by event: %w", err)
	}

	out := make([]result.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultFromTableModel(row))
	}

	return out, nil
}

func (r *ResultRepository) ListByCategoryPlayed(ctx context.Context, category string) ([]result.Result, error) {
	query, args, err := qb.Select(resultSelectColumns...).From("results").
		Where(qb.Eq("category_played", category)).
		OrderBy("event_id", "position", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select results by category query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select results by category: %w", err)
	}

	out := make([]result.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultFromTableModel(row))
	}

	return out, nil
}

func (r *ResultRepository) Delete(ctx context.Context, resultID string) (bool, error) {
	query, args, err := qb.DeleteFrom("results").
		Where(qb.Eq("id", resultID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete result query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete result: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete result rows affected: %w", err)
	}

	return affected > 0, nil
}
