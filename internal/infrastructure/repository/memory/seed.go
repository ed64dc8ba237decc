package memory

import (
	"time"

	"github.com/pedalnorte/championship-api/internal/domain/club"
	"github.com/pedalnorte/championship-api/internal/domain/event"
)

const (
	EventIDFecha1 = "fecha-1-huayquique"
	EventIDFecha2 = "fecha-2-alto-hospicio"
	EventIDFecha3 = "fecha-3-pintados"
)

// SeedEvents is the season calendar used when the service boots without a
// database. Dates fix the round order.
func SeedEvents() []event.Event {
	return []event.Event{
		{
			ID:     EventIDFecha1,
			Name:   "Fecha 1 - Circuito Huayquique",
			Date:   time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
			Status: event.StatusScheduled,
		},
		{
			ID:     EventIDFecha2,
			Name:   "Fecha 2 - Subida Alto Hospicio",
			Date:   time.Date(2026, time.April, 19, 0, 0, 0, 0, time.UTC),
			Status: event.StatusScheduled,
		},
		{
			ID:     EventIDFecha3,
			Name:   "Fecha 3 - Travesia Pintados",
			Date:   time.Date(2026, time.May, 24, 0, 0, 0, 0, time.UTC),
			Status: event.StatusScheduled,
		},
	}
}

func SeedClubs() []club.Club {
	return []club.Club{
		{ID: "club-tarapaca-riders", Name: "TARAPACA RIDERS"},
		{ID: "club-dragones-del-norte", Name: "DRAGONES DEL NORTE"},
		{ID: "club-pedal-iquique", Name: "PEDAL IQUIQUE"},
	}
}
