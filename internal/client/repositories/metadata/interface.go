package metadata

import "context"

// Keys used by the client.
const (
	KeySessionToken = "session_token"
	KeyAccountID    = "account_id"
)

// Repository is a small key/value store for client session metadata (the
// remote session token and account id survive restarts here).
type Repository interface {
	// Get returns the value for key, or common.ErrorNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
