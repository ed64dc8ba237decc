package postgres

import (
	"database/sql"
	"time"

	"github.com/pedalnorte/championship-api/internal/domain/result"
)

type resultTableModel struct {
	ID             string          `db:"id"`
	EventID        string          `db:"event_id"`
	RiderID        string          `db:"rider_id"`
	CategoryPlayed string          `db:"category_played"`
	Position       int             `db:"position"`
	Points         int             `db:"points"`
	RaceTime       string          `db:"race_time"`
	AvgSpeed       sql.NullFloat64 `db:"avg_speed"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func resultFromTableModel(row resultTableModel) result.Result {
	item := result.Result{
		ID:             row.ID,
		EventID:        row.EventID,
		RiderID:        row.RiderID,
		CategoryPlayed: row.CategoryPlayed,
		Position:       row.Position,
		Points:         row.Points,
		RaceTime:       row.RaceTime,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if row.AvgSpeed.Valid {
		speed := row.AvgSpeed.Float64
		item.AvgSpeed = &speed
	}
	return item
}

func resultToTableModel(item result.Result) resultTableModel {
	row := resultTableModel{
		ID:             item.ID,
		EventID:        item.EventID,
		RiderID:        item.RiderID,
		CategoryPlayed: item.CategoryPlayed,
		Position:       item.Position,
		Points:         item.Points,
		RaceTime:       item.RaceTime,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
	if item.AvgSpeed != nil {
		row.AvgSpeed = sql.NullFloat64{Float64: *item.AvgSpeed, Valid: true}
	}
	return row
}
