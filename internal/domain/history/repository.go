package history

import "context"

type Repository interface {
	// Update loads the user's ledger, applies fn and stores the result.
	// Calls for the same user are serialized; ErrNotFound if the user does not exist.
	Update(ctx context.Context, userID string, fn func(*Ledger) error) error
	List(ctx context.Context, userID string) ([]Record, error)
}
