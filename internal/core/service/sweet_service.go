package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sweet-shop/sweet-shop-api/internal/core/domain"
	"github.com/sweet-shop/sweet-shop-api/internal/core/ports"
)

// SweetService implements the inventory operations. The full listing is
// served through a best-effort cache that every mutation invalidates.
type SweetService struct {
	repo   ports.SweetRepository
	cache  ports.CatalogCache
	logger zerolog.Logger
}

func NewSweetService(repo ports.SweetRepository, cache ports.CatalogCache, logger zerolog.Logger) *SweetService {
	return &SweetService{repo: repo, cache: cache, logger: logger}
}

func (s *SweetService) Create(ctx context.Context, input ports.CreateSweetInput) (*domain.Sweet, error) {
	created, err := s.repo.Create(ctx, &domain.Sweet{
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
		Quantity: input.Quantity,
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("sweet_id", created.ID).Str("name", created.Name).Msg("sweet created")
	return created, nil
}

func (s *SweetService) List(ctx context.Context) ([]domain.Sweet, error) {
	if s.cache != nil {
		if sweets, ok := s.cache.GetList(ctx); ok {
			return sweets, nil
		}
	}

	sweets, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetList(ctx, sweets)
	}
	return sweets, nil
}

func (s *SweetService) Get(ctx context.Context, id string) (*domain.Sweet, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update; nil fields keep their stored value.
func (s *SweetService) Update(ctx context.Context, id string, input ports.UpdateSweetInput) (*domain.Sweet, error) {
	sweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		sweet.Name = *input.Name
	}
	if input.Category != nil {
		sweet.Category = *input.Category
	}
	if input.Price != nil {
		sweet.Price = *input.Price
	}
	if input.Quantity != nil {
		sweet.Quantity = *input.Quantity
	}

	updated, err := s.repo.Update(ctx, sweet)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

func (s *SweetService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("sweet_id", id).Msg("sweet deleted")
	return nil
}

func (s *SweetService) Search(ctx context.Context, filter domain.SweetFilter) ([]domain.Sweet, error) {
	if filter.Empty() {
		return s.List(ctx)
	}
	return s.repo.Search(ctx, filter)
}

// Purchase decrements stock by amount. The decrement is atomic at the
// repository, so concurrent purchases can never oversell.
func (s *SweetService) Purchase(ctx context.Context, id string, amount int) (*domain.Sweet, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	sweet, err := s.repo.AdjustQuantity(ctx, id, -amount)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("sweet_id", id).Int("amount", amount).Int("remaining", sweet.Quantity).Msg("sweet purchased")
	return sweet, nil
}

// Restock increments stock by amount.
func (s *SweetService) Restock(ctx context.Context, id string, amount int) (*domain.Sweet, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	sweet, err := s.repo.AdjustQuantity(ctx, id, amount)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("sweet_id", id).Int("amount", amount).Int("quantity", sweet.Quantity).Msg("sweet restocked")
	return sweet, nil
}

func (s *SweetService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
