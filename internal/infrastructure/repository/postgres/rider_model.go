package postgres

import (
	"time"

	"github.com/pedalnorte/championship-api/internal/domain/rider"
)

type riderTableModel struct {
	ID         string    `db:"id"`
	NationalID string    `db:"national_id"`
	FullName   string    `db:"full_name"`
	Category   string    `db:"category"`
	Club       string    `db:"club"`
	City       string    `db:"city"`
	Email      string    `db:"email"`
	Phone      string    `db:"phone"`
	Instagram  string    `db:"instagram"`
	BirthDate  string    `db:"birth_date"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func riderFromTableModel(row riderTableModel) rider.Rider {
	return rider.Rider{
		ID:         row.ID,
		NationalID: row.NationalID,
		FullName:   row.FullName,
		Category:   row.Category,
		Club:       row.Club,
		City:       row.City,
		Email:      row.Email,
		Phone:      row.Phone,
		Instagram:  row.Instagram,
		BirthDate:  row.BirthDate,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func riderToTableModel(item rider.Rider) riderTableModel {
	return riderTableModel{
		ID:         item.ID,
		NationalID: item.NationalID,
		FullName:   item.FullName,
		Category:   item.Category,
		Club:       item.Club,
		City:       item.City,
		Email:      item.Email,
		Phone:      item.Phone,
		Instagram:  item.Instagram,
		BirthDate:  item.BirthDate,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}
