// Package remote is the client side of the account store contract: a narrow
// keyed-document interface over the account server. The sync coordinator
// treats every call here as best-effort; failures are logged and local state
// stands.
package remote

import (
	"context"

	"github.com/drfoodie/nutritrack/internal/client/models"
)

// Session identifies an authenticated remote session.
type Session struct {
	Token     string
	AccountID string
}

// Snapshot is the account-scoped state held remotely.
type Snapshot struct {
	Profile *models.Profile    `json:"profile"`
	Meals   []models.MealEntry `json:"meals"`
}

// Client is the account store collaborator: one profile document per
// account, merged field-by-field on push, plus a meals collection keyed by
// meal id so concurrent meal pushes never contend on one document.
type Client interface {
	// Register creates an account and returns its session.
	Register(ctx context.Context, email, password string) (Session, error)

	// Login authenticates and returns a session.
	Login(ctx context.Context, email, password string) (Session, error)

	// Resume re-attaches a previously stored session without a round trip.
	Resume(s Session)

	// Authenticated reports whether a session is attached.
	Authenticated() bool

	// Pull fetches the account snapshot: profile plus meals ordered by
	// creation timestamp descending. Returns common.ErrorNotFound when the
	// account has no profile yet.
	Pull(ctx context.Context) (*Snapshot, error)

	// PushProfile uploads the profile. The server merges fields into the
	// stored document rather than replacing it; last writer wins per field.
	PushProfile(ctx context.Context, p models.Profile) error

	// PushMeal uploads one meal entry keyed by its own identifier.
	PushMeal(ctx context.Context, e models.MealEntry) error

	// DeleteMeal removes a meal by id. Double-delete is idempotent.
	DeleteMeal(ctx context.Context, id string) error

	// SignOut drops the session on both ends. Best-effort server side.
	SignOut(ctx context.Context) error
}
