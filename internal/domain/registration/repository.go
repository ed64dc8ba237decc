package registration

import (
	"context"
	"errors"
)

// ErrDuplicateNationalID reports a create racing with an existing pending
// request for the same identifier.
var ErrDuplicateNationalID = errors.New("duplicate national id")

type Repository interface {
	Create(ctx context.Context, item Request) error
	GetByID(ctx context.Context, requestID string) (Request, bool, error)
	GetByNationalID(ctx context.Context, nationalID string) (Request, bool, error)
	ListPending(ctx context.Context) ([]Request, error)
	Delete(ctx context.Context, requestID string) (bool, error)
}
