package usecase

import (
	"testing"

	"github.com/pedalnorte/championship-api/internal/infrastructure/repository/memory"
)

func TestEventService_ListEvents_AssignsRounds(t *testing.T) {
	service := NewEventService(memory.NewEventRepository(memory.SeedEvents()))

	events, err := service.ListEvents(t.Context())
	if err != nil {
		t.Fatalf("list events failed: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("unexpected event count: %d", len(events))
	}
	for i, item := range events {
		if item.Round != i+1 {
			t.Fatalf("unexpected round at %d: %d", i, item.Round)
		}
		if i > 0 && events[i-1].Date.After(item.Date) {
			t.Fatalf("events must be date ordered")
		}
	}
	if events[0].ID != memory.EventIDFecha1 {
		t.Fatalf("unexpected first round: %s", events[0].ID)
	}
}
