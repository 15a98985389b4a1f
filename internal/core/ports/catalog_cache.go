package ports

import (
	"context"

	"github.com/sweet-shop/sweet-shop-api/internal/core/domain"
)

// CatalogCache is a best-effort cache of the full catalog listing. A broken
// cache must degrade to a miss, never to an error surfaced to the caller.
type CatalogCache interface {
	GetList(ctx context.Context) ([]domain.Sweet, bool)
	SetList(ctx context.Context, sweets []domain.Sweet)
	Invalidate(ctx context.Context)
}
