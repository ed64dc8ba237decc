package club

import "context"

type Repository interface {
	// Register adds a club name to the dictionary on first use. Registering
	// an existing name is a no-op.
	Register(ctx context.Context, item Club) error
	List(ctx context.Context) ([]Club, error)
}
