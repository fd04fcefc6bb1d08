package accounts

import (
	"context"

	"github.com/drfoodie/nutritrack/internal/server/models"
)

// Repository stores registered accounts.
type Repository interface {
	// Create inserts a new account and fills in its generated id. A
	// duplicate email returns common.ErrorAlreadyExists.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetByEmail returns the account for an email, or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}
