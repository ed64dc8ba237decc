package rider

import "context"

type Repository interface {
	// Upsert inserts the rider or fully replaces the existing row with the
	// same national id in a single atomic write. The stored row is returned;
	// on replace it keeps the original rider ID and creation time.
	Upsert(ctx context.Context, item Rider) (Rider, error)
	GetByID(ctx context.Context, riderID string) (Rider, bool, error)
	GetByNationalID(ctx context.Context, nationalID string) (Rider, bool, error)
	List(ctx context.Context) ([]Rider, error)
	ListByCategory(ctx context.Context, category string) ([]Rider, error)
	Delete(ctx context.Context, riderID string) (bool, error)
}
