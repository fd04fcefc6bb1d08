// Package services implements the account store's application logic:
// registration and login with bcrypt-hashed credentials, and the per-account
// snapshot of profile and meal documents.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/drfoodie/nutritrack/internal/common"
	"github.com/drfoodie/nutritrack/internal/server/auth"
	"github.com/drfoodie/nutritrack/internal/server/config"
	"github.com/drfoodie/nutritrack/internal/server/models"
	"github.com/drfoodie/nutritrack/internal/server/repositories/accounts"
)

// AccountService handles registration and authentication.
type AccountService struct {
	repo                  accounts.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewAccountService(repo accounts.Repository, cfg *config.Config) *AccountService {
	return &AccountService{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates an account and returns a signed session token plus the
// account id. A duplicate email returns common.ErrorAlreadyExists.
func (s *AccountService) Register(ctx context.Context, email, password string) (string, string, error) {
	if email == "" || password == "" {
		return "", "", common.ErrorInvalidLoginPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("error hashing password: %w", err)
	}

	account, err := s.repo.Create(ctx, &models.Account{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", "", err
		}
		return "", "", fmt.Errorf("error creating account: %w", err)
	}

	return s.issueToken(account)
}

// Login verifies the credentials and returns a signed session token plus the
// account id. Wrong email and wrong password are indistinguishable to the
// caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, string, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", "", common.ErrorInvalidLoginPassword
		}
		return "", "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)) != nil {
		return "", "", common.ErrorInvalidLoginPassword
	}

	return s.issueToken(account)
}

// VerifyToken parses a session token and returns the account id it belongs to.
func (s *AccountService) VerifyToken(tokenString string) (string, error) {
	accountID, err := auth.GetAccountIDFromToken(tokenString, s.jwtSecret)
	if err != nil {
		return "", common.ErrInvalidToken
	}
	return accountID, nil
}

func (s *AccountService) issueToken(account *models.Account) (string, string, error) {
	token, err := auth.GenerateToken(account.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", "", fmt.Errorf("error signing token: %w", err)
	}
	return token, account.ID, nil
}
