package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pako24/pako24-backend/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var shopColumns = []string{
	"shop_id", "name", "url", "logo_url", "category_id", "created_at", "updated_at",
}

var categoryColumns = []string{
	"category_id", "name", "display_order", "created_at", "updated_at",
}

func (r *postgresRepo) SaveShop(ctx context.Context, s entities.Shop) error {
	query, args := r.qb.Insert("shops").
		Columns("shop_id", "name", "url", "logo_url", "category_id").
		Values(s.ID, s.Name, s.URL, nullString(s.LogoURL), nullUUID(s.CategoryID)).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save shop: %w", err)
	}
	return nil
}

func (r *postgresRepo) UpdateShop(ctx context.Context, s entities.Shop) error {
	query, args := r.qb.Update("shops").
		Set("name", s.Name).
		Set("url", s.URL).
		Set("logo_url", nullString(s.LogoURL)).
		Set("category_id", nullUUID(s.CategoryID)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"shop_id": s.ID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update shop: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrShopNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteShop(ctx context.Context, shopID uuid.UUID) error {
	query, args := r.qb.Delete("shops").
		Where(sq.Eq{"shop_id": shopID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete shop: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrShopNotFound
	}
	return nil
}

func (r *postgresRepo) GetShopByID(ctx context.Context, shopID uuid.UUID) (entities.Shop, error) {
	query, args := r.qb.Select(shopColumns...).
		From("shops").
		Where(sq.Eq{"shop_id": shopID}).
		MustSql()

	var shop Shop
	err := r.getContext(ctx, &shop, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Shop{}, entities.ErrShopNotFound
	}
	if err != nil {
		return entities.Shop{}, fmt.Errorf("failed to get shop: %w", err)
	}
	return ShopToEntity(shop), nil
}

func (r *postgresRepo) ListShops(ctx context.Context) ([]entities.Shop, error) {
	query, args := r.qb.Select(shopColumns...).
		From("shops").
		OrderBy("name ASC").
		MustSql()

	var shops []Shop
	if err := r.selectContext(ctx, &shops, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select shops: %w", err)
	}

	result := make([]entities.Shop, 0, len(shops))
	for _, s := range shops {
		result = append(result, ShopToEntity(s))
	}
	return result, nil
}

func (r *postgresRepo) SaveCategory(ctx context.Context, c entities.ShopCategory) error {
	query, args := r.qb.Insert("shop_categories").
		Columns("category_id", "name", "display_order").
		Values(c.ID, c.Name, c.DisplayOrder).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if uniqueViolation(err) == "shop_categories_name_key" {
		return entities.ErrCategoryNameTaken
	}
	if err != nil {
		return fmt.Errorf("failed to save shop category: %w", err)
	}
	return nil
}

func (r *postgresRepo) UpdateCategory(ctx context.Context, c entities.ShopCategory) error {
	query, args := r.qb.Update("shop_categories").
		Set("name", c.Name).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"category_id": c.ID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if uniqueViolation(err) == "shop_categories_name_key" {
		return entities.ErrCategoryNameTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update shop category: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepo) UpdateCategoryOrder(ctx context.Context, categoryID uuid.UUID, displayOrder int) error {
	query, args := r.qb.Update("shop_categories").
		Set("display_order", displayOrder).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"category_id": categoryID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update category order: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	query, args := r.qb.Delete("shop_categories").
		Where(sq.Eq{"category_id": categoryID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete shop category: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepo) ListCategories(ctx context.Context) ([]entities.ShopCategory, error) {
	query, args := r.qb.Select(categoryColumns...).
		From("shop_categories").
		OrderBy("display_order ASC", "name ASC").
		MustSql()

	var categories []ShopCategory
	if err := r.selectContext(ctx, &categories, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select shop categories: %w", err)
	}

	result := make([]entities.ShopCategory, 0, len(categories))
	for _, c := range categories {
		result = append(result, ShopCategoryToEntity(c))
	}
	return result, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
