package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pedalnorte/championship-api/internal/domain/club"
	qb "github.com/pedalnorte/championship-api/internal/platform/querybuilder"
)

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) Register(ctx context.Context, item club.Club) error {
	query, args, err := qb.InsertModel("clubs", clubTableModel{ID: item.ID, Name: item.Name},
		"ON CONFLICT (name) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert club query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert club: %w", err)
	}

	return nil
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	query, args, err := qb.Select("id", "name").From("clubs").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubFromTableModel(row))
	}

	return out, nil
}
