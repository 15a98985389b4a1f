package ports

import (
	"context"

	"github.com/sweet-shop/sweet-shop-api/internal/core/domain"
)

// AuthRepository defines the credential-store contract used by the auth
// workflow. Create must fail with domain.ErrUserExists when the username is
// already taken.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
