package profile

import "context"

// Repository stores the single serialized profile document. The local
// snapshot is authoritative for the active session, so writes must settle
// before callers treat in-memory state as saved.
type Repository interface {
	// Save durably replaces the profile document.
	Save(ctx context.Context, doc []byte) error

	// Get returns the stored document, or common.ErrorNotFound when none
	// exists.
	Get(ctx context.Context) ([]byte, error)

	// Clear removes the stored document. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
