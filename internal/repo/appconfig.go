package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pako24/pako24-backend/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

var appConfigColumns = []string{
	"key", "value", "description", "created_at", "updated_at",
}

func (r *postgresRepo) GetConfig(ctx context.Context, key string) (entities.AppConfig, error) {
	query, args := r.qb.Select(appConfigColumns...).
		From("app_configs").
		Where(sq.Eq{"key": key}).
		MustSql()

	var conf AppConfig
	err := r.getContext(ctx, &conf, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.AppConfig{}, entities.ErrConfigNotFound
	}
	if err != nil {
		return entities.AppConfig{}, fmt.Errorf("failed to get config: %w", err)
	}
	return AppConfigToEntity(conf), nil
}

func (r *postgresRepo) ListConfigs(ctx context.Context) ([]entities.AppConfig, error) {
	query, args := r.qb.Select(appConfigColumns...).
		From("app_configs").
		OrderBy("key ASC").
		MustSql()

	var configs []AppConfig
	if err := r.selectContext(ctx, &configs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select configs: %w", err)
	}

	result := make([]entities.AppConfig, 0, len(configs))
	for _, c := range configs {
		result = append(result, AppConfigToEntity(c))
	}
	return result, nil
}

func (r *postgresRepo) UpsertConfig(ctx context.Context, c entities.AppConfig) error {
	query, args := r.qb.Insert("app_configs").
		Columns("key", "value", "description").
		Values(c.Key, c.Value, nullString(c.Description)).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, description = EXCLUDED.description, updated_at = now()").
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert config: %w", err)
	}
	return nil
}
