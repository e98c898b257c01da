package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pako24/pako24-backend/internal/entities"

	"github.com/shopspring/decimal"
)

// exchange rate key consumed by the order pricing path
const RateKeyGBPEUR = "gbp_eur_rate"

type ConfigRepo interface {
	GetConfig(ctx context.Context, key string) (entities.AppConfig, error)
	ListConfigs(ctx context.Context) ([]entities.AppConfig, error)
	UpsertConfig(ctx context.Context, c entities.AppConfig) error
}

type ConfigCache interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Invalidate(key string)
}

type configService struct {
	logger *slog.Logger
	repo   ConfigRepo
	cache  ConfigCache
}

func NewConfigService(logger *slog.Logger, repo ConfigRepo, cache ConfigCache) *configService {
	return &configService{
		logger: logger.With(slog.String("service", "config")),
		repo:   repo,
		cache:  cache,
	}
}

// Value читает значение ключа через кэш.
func (s *configService) Value(ctx context.Context, key string) (string, error) {
	if value, ok := s.cache.Get(key); ok {
		return value, nil
	}

	conf, err := s.repo.GetConfig(ctx, key)
	if err != nil {
		return "", err
	}

	s.cache.Set(key, conf.Value)
	return conf.Value, nil
}

func (s *configService) List(ctx context.Context) ([]entities.AppConfig, error) {
	return s.repo.ListConfigs(ctx)
}

func (s *configService) Set(ctx context.Context, key, value, description string) (entities.AppConfig, error) {
	conf := entities.AppConfig{
		Key:         key,
		Value:       value,
		Description: description,
	}
	if err := s.repo.UpsertConfig(ctx, conf); err != nil {
		return entities.AppConfig{}, err
	}

	s.cache.Invalidate(key)
	return conf, nil
}

// GBPEURRate курс для пересчёта фунтовых цен в евро.
func (s *configService) GBPEURRate(ctx context.Context) (decimal.Decimal, error) {
	value, err := s.Value(ctx, RateKeyGBPEUR)
	if err != nil {
		return decimal.Zero, err
	}

	rate, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed %s value %q: %w", RateKeyGBPEUR, value, err)
	}
	return rate, nil
}
