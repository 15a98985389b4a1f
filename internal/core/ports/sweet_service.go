package ports

import (
	"context"

	"github.com/sweet-shop/sweet-shop-api/internal/core/domain"
)

// CreateSweetInput carries the fields for a new catalog item.
type CreateSweetInput struct {
	Name     string
	Category string
	Price    float64
	Quantity int
}

// UpdateSweetInput carries a partial update; nil fields are left unchanged.
type UpdateSweetInput struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int
}

// SweetService exposes the inventory operations.
type SweetService interface {
	Create(ctx context.Context, input CreateSweetInput) (*domain.Sweet, error)
	List(ctx context.Context) ([]domain.Sweet, error)
	Get(ctx context.Context, id string) (*domain.Sweet, error)
	Update(ctx context.Context, id string, input UpdateSweetInput) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter domain.SweetFilter) ([]domain.Sweet, error)
	Purchase(ctx context.Context, id string, amount int) (*domain.Sweet, error)
	Restock(ctx context.Context, id string, amount int) (*domain.Sweet, error)
}
