package service

import (
	"context"
	"log/slog"

	"github.com/pako24/pako24-backend/internal/entities"
	"github.com/pako24/pako24-backend/pkg/trm"

	"github.com/google/uuid"
)

type CatalogRepo interface {
	SaveShop(ctx context.Context, s entities.Shop) error
	UpdateShop(ctx context.Context, s entities.Shop) error
	DeleteShop(ctx context.Context, shopID uuid.UUID) error
	GetShopByID(ctx context.Context, shopID uuid.UUID) (entities.Shop, error)
	ListShops(ctx context.Context) ([]entities.Shop, error)

	SaveCategory(ctx context.Context, c entities.ShopCategory) error
	UpdateCategory(ctx context.Context, c entities.ShopCategory) error
	UpdateCategoryOrder(ctx context.Context, categoryID uuid.UUID, displayOrder int) error
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
	ListCategories(ctx context.Context) ([]entities.ShopCategory, error)
}

type catalogService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      CatalogRepo
}

func NewCatalogService(logger *slog.Logger, txManager trm.Manager, repo CatalogRepo) *catalogService {
	return &catalogService{
		logger:    logger.With(slog.String("service", "catalog")),
		txManager: txManager,
		repo:      repo,
	}
}

type ShopInput struct {
	Name       string
	URL        string
	LogoURL    string
	CategoryID *uuid.UUID
}

func (s *catalogService) CreateShop(ctx context.Context, input ShopInput) (entities.Shop, error) {
	shop := entities.Shop{
		ID:         uuid.New(),
		Name:       input.Name,
		URL:        input.URL,
		LogoURL:    input.LogoURL,
		CategoryID: input.CategoryID,
	}
	if err := s.repo.SaveShop(ctx, shop); err != nil {
		return entities.Shop{}, err
	}
	return shop, nil
}

func (s *catalogService) UpdateShop(ctx context.Context, shopID uuid.UUID, input ShopInput) (entities.Shop, error) {
	shop, err := s.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return entities.Shop{}, err
	}

	shop.Name = input.Name
	shop.URL = input.URL
	shop.LogoURL = input.LogoURL
	shop.CategoryID = input.CategoryID

	if err := s.repo.UpdateShop(ctx, shop); err != nil {
		return entities.Shop{}, err
	}
	return shop, nil
}

func (s *catalogService) DeleteShop(ctx context.Context, shopID uuid.UUID) error {
	return s.repo.DeleteShop(ctx, shopID)
}

func (s *catalogService) ListShops(ctx context.Context) ([]entities.Shop, error) {
	return s.repo.ListShops(ctx)
}

func (s *catalogService) CreateCategory(ctx context.Context, name string, displayOrder int) (entities.ShopCategory, error) {
	category := entities.ShopCategory{
		ID:           uuid.New(),
		Name:         name,
		DisplayOrder: displayOrder,
	}
	if err := s.repo.SaveCategory(ctx, category); err != nil {
		return entities.ShopCategory{}, err
	}
	return category, nil
}

func (s *catalogService) RenameCategory(ctx context.Context, categoryID uuid.UUID, name string) (entities.ShopCategory, error) {
	category := entities.ShopCategory{ID: categoryID, Name: name}
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return entities.ShopCategory{}, err
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	return s.repo.DeleteCategory(ctx, categoryID)
}

func (s *catalogService) ListCategories(ctx context.Context) ([]entities.ShopCategory, error) {
	return s.repo.ListCategories(ctx)
}

type CategoryOrder struct {
	CategoryID   uuid.UUID
	DisplayOrder int
}

// ReorderCategories массовое обновление порядка показа, всё или ничего.
func (s *catalogService) ReorderCategories(ctx context.Context, updates []CategoryOrder) error {
	return s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, u := range updates {
			if err := s.repo.UpdateCategoryOrder(ctx, u.CategoryID, u.DisplayOrder); err != nil {
				return err
			}
		}
		return nil
	})
}
