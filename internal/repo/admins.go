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

var adminColumns = []string{
	"admin_id", "email", "password", "role", "created_at", "updated_at",
}

func (r *postgresRepo) SaveAdmin(ctx context.Context, a entities.Admin) error {
	query, args := r.qb.Insert("admins").
		Columns("admin_id", "email", "password", "role").
		Values(a.ID, a.Email, a.PasswordHash, string(a.Role)).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if uniqueViolation(err) == "admins_email_key" {
		return entities.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to save admin: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetAdminByID(ctx context.Context, adminID uuid.UUID) (entities.Admin, error) {
	query, args := r.qb.Select(adminColumns...).
		From("admins").
		Where(sq.Eq{"admin_id": adminID}).
		MustSql()

	var admin Admin
	err := r.getContext(ctx, &admin, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Admin{}, entities.ErrAdminNotFound
	}
	if err != nil {
		return entities.Admin{}, fmt.Errorf("failed to get admin: %w", err)
	}
	return AdminToEntity(admin), nil
}

func (r *postgresRepo) GetAdminByEmail(ctx context.Context, email string) (entities.Admin, error) {
	query, args := r.qb.Select(adminColumns...).
		From("admins").
		Where(sq.Eq{"email": email}).
		MustSql()

	var admin Admin
	err := r.getContext(ctx, &admin, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Admin{}, entities.ErrAdminNotFound
	}
	if err != nil {
		return entities.Admin{}, fmt.Errorf("failed to get admin by email: %w", err)
	}
	return AdminToEntity(admin), nil
}

func (r *postgresRepo) ListAdmins(ctx context.Context) ([]entities.Admin, error) {
	query, args := r.qb.Select(adminColumns...).
		From("admins").
		OrderBy("created_at ASC").
		MustSql()

	var admins []Admin
	if err := r.selectContext(ctx, &admins, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select admins: %w", err)
	}

	result := make([]entities.Admin, 0, len(admins))
	for _, a := range admins {
		result = append(result, AdminToEntity(a))
	}
	return result, nil
}

func (r *postgresRepo) DeleteAdmin(ctx context.Context, adminID uuid.UUID) error {
	query, args := r.qb.Delete("admins").
		Where(sq.Eq{"admin_id": adminID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrAdminNotFound
	}
	return nil
}

func (r *postgresRepo) CountAdmins(ctx context.Context) (int, error) {
	query, args := r.qb.Select("COUNT(*)").From("admins").MustSql()

	var count int
	if err := r.getContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}
