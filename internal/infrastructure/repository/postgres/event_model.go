package postgres

import (
	"time"

	"github.com/pedalnorte/championship-api/internal/domain/event"
)

type eventTableModel struct {
	ID     string    `db:"id"`
	Name   string    `db:"name"`
	Date   time.Time `db:"event_date"`
	Status string    `db:"status"`
}

func eventFromTableModel(row eventTableModel) event.Event {
	return event.Event{
		ID:     row.ID,
		Name:   row.Name,
		Date:   row.Date,
		Status: row.Status,
	}
}
