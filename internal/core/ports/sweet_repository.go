package ports

import (
	"context"

	"github.com/sweet-shop/sweet-shop-api/internal/core/domain"
)

// SweetRepository defines the persistence contract for catalog items.
type SweetRepository interface {
	Create(ctx context.Context, sweet *domain.Sweet) (*domain.Sweet, error)
	FindAll(ctx context.Context) ([]domain.Sweet, error)
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	Update(ctx context.Context, sweet *domain.Sweet) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter domain.SweetFilter) ([]domain.Sweet, error)

	// AdjustQuantity atomically applies delta to the stock level and returns
	// the updated item. A negative delta that would drive the stock below
	// zero fails with domain.ErrInsufficientStock.
	AdjustQuantity(ctx context.Context, id string, delta int) (*domain.Sweet, error)
}
