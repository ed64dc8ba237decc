package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pedalnorte/championship-api/internal/domain/event"
	qb "github.com/pedalnorte/championship-api/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

var eventSelectColumns = []string{
	"id",
	"name",
	"event_date",
	"status",
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	query, args, err := qb.Select(eventSelectColumns...).From("events").
		OrderBy("event_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select events query: %w", err)
	}

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromTableModel(row))
	}

	return out, nil
}

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (event.Event, bool, error) {
	query, args, err := qb.Select(eventSelectColumns...).From("events").
		Where(qb.Eq("id", eventID)).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build select event by id query: %w", err)
	}

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("select event by id: %w", err)
	}

	return eventFromTableModel(row), true, nil
}
