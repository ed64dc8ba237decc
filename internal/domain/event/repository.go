package event

import "context"

type Repository interface {
	// List returns events in ascending date order; the championship round
	// number of an event is its 1-based position in this listing.
	List(ctx context.Context) ([]Event, error)
	GetByID(ctx context.Context, eventID string) (Event, bool, error)
}
