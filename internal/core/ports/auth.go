package ports

import (
	"context"

	"github.com/motorpool/vehicle-registry/internal/core/domain"
)

// CredentialDirectory is the read-only source of truth for authentication.
type CredentialDirectory interface {
	Lookup(username string) (*domain.User, bool)
}

// TokenClaims is the identity extracted from a validated token.
type TokenClaims struct {
	Subject string
	Role    string
}

// TokenService issues and validates signed, time-bounded bearer tokens.
type TokenService interface {
	Issue(subject, role string) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token    string
	Username string
	Role     string
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
