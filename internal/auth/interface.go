package auth

import (
	"context"

	"jobboard/pkg/domain"
)

// SignupParams carries the fields of a new account request.
type SignupParams struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Password    string
	AccountType domain.AccountType
}

//go:generate mockgen -package mockauth -source=interface.go -destination=mock/mockauth.go *
type Auth interface {
	// Signup creates an account, provisions an empty profile for job seekers
	// and returns the account with a signed token.
	Signup(ctx context.Context, params SignupParams) (*domain.User, string, error)
	// Login verifies credentials and returns the account with a signed token.
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	// UserFromToken verifies a bearer token and loads the account it names.
	UserFromToken(ctx context.Context, token string) (*domain.User, error)
}
