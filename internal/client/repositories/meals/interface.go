package meals

import "context"

// Repository stores serialized meal entries in the local snapshot, one row
// per meal, ordered by creation timestamp descending on read.
type Repository interface {
	// Upsert stores the document for a meal id. Meals are immutable once
	// created, so a repeated upsert with the same id only happens when a
	// remote pull re-adopts a meal already present locally.
	Upsert(ctx context.Context, id string, ts int64, doc []byte) error

	// GetAll returns all stored documents, newest first.
	GetAll(ctx context.Context) ([][]byte, error)

	// DeleteByID removes a meal by id. Deleting an absent id is idempotent.
	DeleteByID(ctx context.Context, id string) error

	// Clear removes every stored meal.
	Clear(ctx context.Context) error
}
