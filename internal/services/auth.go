package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrWeakPassword       = errors.New("weak_password")
)

// MinPasswordLength applies when the admin account is bootstrapped.
const MinPasswordLength = 6

// AccountCreatedFunc runs right after the admin account is bootstrapped. If it
// fails the account is removed again, so it must tolerate being retried.
type AccountCreatedFunc func(ctx context.Context, acct *models.Account) error

// AuthService signs the single admin in, creating the account on the very
// first login attempt.
type AuthService struct {
	accounts   store.Collection[models.Account]
	adminEmail string
	onCreate   AccountCreatedFunc
}

// NewAuthService returns the login service. When adminEmail is set, only that
// address may bootstrap the account.
func NewAuthService(accounts store.Collection[models.Account], adminEmail string, onCreate AccountCreatedFunc) *AuthService {
	return &AuthService{accounts: accounts, adminEmail: normalizeEmail(adminEmail), onCreate: onCreate}
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Login checks the credentials. The second result reports whether the
// account was created by this call.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Account, bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, false, ErrInvalidCredentials
	}

	found, err := s.accounts.List(ctx, "", store.Query{Where: []store.Filter{{Field: "email", Value: email}}, Limit: 1})
	if err != nil {
		return nil, false, fmt.Errorf("find account: %w", err)
	}
	if len(found) == 1 {
		acct := &found[0]
		if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
			return nil, false, ErrInvalidCredentials
		}
		return acct, false, nil
	}

	acct, err := s.bootstrap(ctx, email, password)
	if err != nil {
		return nil, false, err
	}
	return acct, true, nil
}

func (s *AuthService) bootstrap(ctx context.Context, email, password string) (*models.Account, error) {
	existing, err := s.accounts.List(ctx, "", store.Query{Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrInvalidCredentials
	}
	if s.adminEmail != "" && email != s.adminEmail {
		return nil, ErrInvalidCredentials
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	acct := &models.Account{Email: email, PasswordHash: string(hash)}
	if err := s.accounts.Save(ctx, "", acct); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	if s.onCreate != nil {
		if err := s.onCreate(ctx, acct); err != nil {
			// drop the account so the next login bootstraps and initializes again
			if derr := s.accounts.Delete(ctx, "", acct.ID); derr != nil {
				return nil, fmt.Errorf("initialize account: %w (rollback: %v)", err, derr)
			}
			return nil, fmt.Errorf("initialize account: %w", err)
		}
	}
	return acct, nil
}

// Exists reports whether the account behind a session is still present.
func (s *AuthService) Exists(ctx context.Context, id string) bool {
	_, err := s.accounts.Get(ctx, "", id)
	return err == nil
}

// Owner returns the admin account, or store.ErrNotFound before bootstrap.
// The public site renders this owner's content.
func (s *AuthService) Owner(ctx context.Context) (*models.Account, error) {
	accts, err := s.accounts.List(ctx, "", store.Query{OrderBy: "created_at", Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(accts) == 0 {
		return nil, store.ErrNotFound
	}
	return &accts[0], nil
}
