package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweet-shop/sweet-shop-api/internal/core/domain"
	"github.com/sweet-shop/sweet-shop-api/internal/core/ports"
	"github.com/sweet-shop/sweet-shop-api/internal/core/token"
)

// AuthService implements registration and login on top of the credential
// store and the token service.
type AuthService struct {
	repo     ports.AuthRepository
	tokens   *token.Service
	tokenTTL time.Duration
	logger   zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, tokens *token.Service, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, tokens: tokens, tokenTTL: tokenTTL, logger: logger}
}

// Register creates the account and returns a token. The role claim is taken
// from the stored record, never from the raw request. No write happens on
// any failure path.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return "", domain.ErrInvalidRole
	}

	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if exists {
		return "", domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("username", created.Username).Str("role", created.Role).Msg("user registered")

	return s.tokens.Issue(created.Username, created.Role, s.tokenTTL)
}

// Login verifies the credentials and returns a token. Unknown usernames and
// wrong passwords collapse into the same error so the response never reveals
// which one was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	s.logger.Info().Str("username", user.Username).Msg("user logged in")

	return s.tokens.Issue(user.Username, user.Role, s.tokenTTL)
}
