package meals

import "context"

// Repository stores one meal document per (account, meal id) pair.
type Repository interface {
	// Upsert creates or replaces a meal document.
	Upsert(ctx context.Context, accountID, id string, ts int64, doc []byte) error

	// GetAll returns the account's meal documents ordered by creation
	// timestamp, newest first.
	GetAll(ctx context.Context, accountID string) ([][]byte, error)

	// DeleteByID removes one meal. Unknown ids are a no-op.
	DeleteByID(ctx context.Context, accountID, id string) error
}
