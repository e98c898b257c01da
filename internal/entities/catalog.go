package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Shop struct {
	ID         uuid.UUID
	Name       string
	URL        string
	LogoURL    string
	CategoryID *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ShopCategory struct {
	ID           uuid.UUID
	Name         string
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AppConfig бизнес-константа вида ключ/значение (курсы валют, тарифы).
type AppConfig struct {
	Key         string
	Value       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var (
	ErrShopNotFound      = errors.New("shop not found")
	ErrCategoryNotFound  = errors.New("shop category not found")
	ErrCategoryNameTaken = errors.New("shop category name already exists")
	ErrConfigNotFound    = errors.New("config key not found")
)
