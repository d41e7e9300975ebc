package inventory

import "context"

// Repository describes inventory reads needed by use cases.
type Repository interface {
	Owns(ctx context.Context, userID, playerID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]Item, error)
}
