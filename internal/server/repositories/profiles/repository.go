package profiles

import "context"

// Repository stores one profile document per account.
type Repository interface {
	// Get returns the stored document, or common.ErrorNotFound.
	Get(ctx context.Context, accountID string) ([]byte, error)

	// Save replaces (or creates) the account's document.
	Save(ctx context.Context, accountID string, doc []byte) error
}
