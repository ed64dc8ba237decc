package postgres

import "github.com/pedalnorte/championship-api/internal/domain/club"

type clubTableModel struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

func clubFromTableModel(row clubTableModel) club.Club {
	return club.Club{
		ID:   row.ID,
		Name: row.Name,
	}
}
