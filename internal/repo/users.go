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

var userColumns = []string{
	"user_id", "email", "phone_number", "password", "location", "is_blocked",
	"created_at", "updated_at",
}

func (r *postgresRepo) SaveUser(ctx context.Context, u entities.User) error {
	query, args := r.qb.Insert("users").
		Columns("user_id", "email", "phone_number", "password", "location").
		Values(u.ID, u.Email, u.PhoneNumber, u.PasswordHash, nullString(u.Location)).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	switch uniqueViolation(err) {
	case "users_email_key":
		return entities.ErrEmailTaken
	case "users_phone_number_key":
		return entities.ErrPhoneTaken
	}
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (entities.User, error) {
	query, args := r.qb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"user_id": userID}).
		MustSql()

	var user User
	err := r.getContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.User{}, entities.ErrUserNotFound
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return UserToEntity(user), nil
}

func (r *postgresRepo) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	query, args := r.qb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"email": email}).
		MustSql()

	var user User
	err := r.getContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.User{}, entities.ErrUserNotFound
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return UserToEntity(user), nil
}

func (r *postgresRepo) ListUsers(ctx context.Context) ([]entities.User, error) {
	query, args := r.qb.Select(userColumns...).
		From("users").
		OrderBy("created_at DESC").
		MustSql()

	var users []User
	if err := r.selectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}

	result := make([]entities.User, 0, len(users))
	for _, u := range users {
		result = append(result, UserToEntity(u))
	}
	return result, nil
}

func (r *postgresRepo) SetUserBlocked(ctx context.Context, userID uuid.UUID, blocked bool) error {
	query, args := r.qb.Update("users").
		Set("is_blocked", blocked).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"user_id": userID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user block flag: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrUserNotFound
	}
	return nil
}
