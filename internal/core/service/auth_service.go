package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/motorpool/vehicle-registry/internal/api/metrics"
	"github.com/motorpool/vehicle-registry/internal/core/domain"
	"github.com/motorpool/vehicle-registry/internal/core/ports"
)

// LoginThrottle abstracts the failed-attempt limiter (Redis).
type LoginThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// dummyHash keeps bcrypt work roughly constant when the username is unknown,
// so response timing does not reveal whether the account exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("vehicle-registry"), bcrypt.DefaultCost)

// AuthService verifies credentials against the directory and issues tokens.
type AuthService struct {
	directory ports.CredentialDirectory
	tokens    ports.TokenService
	throttle  LoginThrottle
	logger    zerolog.Logger
}

// NewAuthService builds an AuthService. throttle may be nil, in which case no
// attempt limiting is applied.
func NewAuthService(directory ports.CredentialDirectory, tokens ports.TokenService, throttle LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{directory: directory, tokens: tokens, throttle: throttle, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, username)
		if err != nil {
			// Fail open: auth availability beats throttling.
			s.logger.Warn().Err(err).Str("username", username).Msg("throttle check failed, allowing attempt")
		} else if !ok {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, found := s.directory.Lookup(username)
	if !found {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, s.failed(ctx, username)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, s.failed(ctx, username)
	}

	token, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("throttle reset failed")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("login succeeded")

	return &ports.LoginResult{Token: token, Username: user.Username, Role: user.Role}, nil
}

func (s *AuthService) failed(ctx context.Context, username string) error {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("throttle record failed")
		}
	}
	metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
	return domain.ErrInvalidCredentials
}
