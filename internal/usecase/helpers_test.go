package usecase

import (
	"fmt"
	"time"

	"github.com/pedalnorte/championship-api/internal/domain/rider"
)

type seqIDGenerator struct {
	prefix string
	n      int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n), nil
}

func testCategories() CategorySet {
	return NewCategorySet([]string{
		"Novicios Open",
		"Elite Open",
		"Master A",
		"Damas Master A",
	})
}

func testRider(id, nationalID, name, category string) rider.Rider {
	created := time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)
	return rider.Rider{
		ID:         id,
		NationalID: nationalID,
		FullName:   name,
		Category:   category,
		Club:       "TARAPACA RIDERS",
		City:       "IQUIQUE",
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}
