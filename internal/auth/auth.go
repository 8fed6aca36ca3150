// Package auth implements account signup, login and bearer-token
// verification for the marketplace.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/config"
	"jobboard/pkg/domain"
	"jobboard/pkg/serrors"
	"jobboard/pkg/storage"

	"golang.org/x/crypto/bcrypt"
)

// Options configure token issuance.
type Options struct {
	// Secret is the HS256 signing key.
	Secret string
	// TokenTTL is how long issued tokens stay valid.
	TokenTTL time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Secret:   cfg.JWT.Secret,
		TokenTTL: cfg.JWT.TTL,
	}
}

// auth is the concrete implementation of the Auth interface.
type auth struct {
	options Options
	storage storage.Storage
}

// Signup creates a new account. Job-seeker accounts get an empty profile in
// the same transaction so the account and its profile appear together.
func (a auth) Signup(ctx context.Context, params SignupParams) (*domain.User, string, error) {
	username := strings.TrimSpace(params.Username)
	if username == "" || params.Password == "" {
		return nil, "", serrors.With(serrors.ErrBadRequest, "username and password are required")
	}
	if params.AccountType != domain.AccountTypeJobSeeker && params.AccountType != domain.AccountTypeRecruiter {
		return nil, "", serrors.With(serrors.ErrBadRequest, "unknown account type %q", params.AccountType)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("could not hash password: %w", err)
	}

	var user *domain.User
	if err := a.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		stored, err := tx.StoreUser(ctx, domain.User{
			Username:     username,
			Email:        strings.TrimSpace(params.Email),
			FirstName:    strings.TrimSpace(params.FirstName),
			LastName:     strings.TrimSpace(params.LastName),
			PasswordHash: string(hash),
			AccountType:  params.AccountType,
		})
		if err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return serrors.With(serrors.ErrConflict, "username %q is taken", username)
			}

			return fmt.Errorf("could not store user: %w", err)
		}
		user = stored

		if user.IsJobSeeker() {
			if _, err := tx.EnsureProfile(ctx, user.ID); err != nil {
				return fmt.Errorf("could not create profile: %w", err)
			}
		}

		return nil
	}); err != nil {
		return nil, "", err
	}

	token, err := IssueToken(a.options.Secret, user.ID, a.options.TokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies the credentials and returns the account with a fresh token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (a auth) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := a.storage.UserByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, "", serrors.With(serrors.ErrUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", serrors.With(serrors.ErrUnauthorized, "invalid credentials")
	}

	token, err := IssueToken(a.options.Secret, user.ID, a.options.TokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// UserFromToken verifies a bearer token and loads the account it names.
func (a auth) UserFromToken(ctx context.Context, token string) (*domain.User, error) {
	userID, err := ParseToken(a.options.Secret, token)
	if err != nil {
		return nil, err
	}

	user, err := a.storage.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrUnauthorized, "unknown user")
	}

	return user, nil
}

// New creates a new Auth instance backed by the provided storage.
func New(storage storage.Storage, options Options) Auth {
	return &auth{
		options: options,
		storage: storage,
	}
}
