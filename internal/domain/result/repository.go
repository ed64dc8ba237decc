package result

import "context"

type Repository interface {
	// Upsert inserts the result or fully replaces the existing row for the
	// same (event, rider) pair in a single atomic write. The stored row is
	// returned; on replace it keeps the original result ID and creation time.
	Upsert(ctx context.Context, item Result) (Result, error)
	GetByID(ctx context.Context, resultID string) (Result, bool, error)
	ListByEvent(ctx context.Context, eventID string) ([]Result, error)
	ListByCategoryPlayed(ctx context.Context, category string) ([]Result, error)
	Delete(ctx context.Context, resultID string) (bool, error)
}
