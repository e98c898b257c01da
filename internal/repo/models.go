package repo

import (
	"database/sql"
	"time"

	"github.com/pako24/pako24-backend/internal/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	OrderID           uuid.UUID       `db:"order_id"`
	UserID            uuid.UUID       `db:"user_id"`
	Status            string          `db:"status"`
	TotalPriceGBP     decimal.Decimal `db:"total_price_gbp"`
	TotalPriceEUR     decimal.Decimal `db:"total_price_eur"`
	TotalCustomsFee   decimal.Decimal `db:"total_customs_fee"`
	TotalTransportFee decimal.Decimal `db:"total_transport_fee"`
	AdditionalInfo    sql.NullString  `db:"additional_info"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

type ProductLink struct {
	ProductLinkID uuid.UUID       `db:"product_link_id"`
	OrderID       uuid.UUID       `db:"order_id"`
	URL           string          `db:"url"`
	Quantity      int             `db:"quantity"`
	Size          sql.NullString  `db:"size"`
	Color         sql.NullString  `db:"color"`
	PriceGBP      decimal.Decimal `db:"price_gbp"`
	PriceEUR      decimal.Decimal `db:"price_eur"`
	CustomsFee    decimal.Decimal `db:"customs_fee"`
	TransportFee  decimal.Decimal `db:"transport_fee"`
}

type User struct {
	UserID      uuid.UUID      `db:"user_id"`
	Email       string         `db:"email"`
	PhoneNumber string         `db:"phone_number"`
	Password    string         `db:"password"`
	Location    sql.NullString `db:"location"`
	IsBlocked   bool           `db:"is_blocked"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type Admin struct {
	AdminID   uuid.UUID `db:"admin_id"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Shop struct {
	ShopID     uuid.UUID      `db:"shop_id"`
	Name       string         `db:"name"`
	URL        string         `db:"url"`
	LogoURL    sql.NullString `db:"logo_url"`
	CategoryID uuid.NullUUID  `db:"category_id"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type ShopCategory struct {
	CategoryID   uuid.UUID `db:"category_id"`
	Name         string    `db:"name"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type AppConfig struct {
	Key         string         `db:"key"`
	Value       string         `db:"value"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type statusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

func OrderToEntity(o Order, links []ProductLink) entities.Order {
	order := entities.Order{
		ID:                o.OrderID,
		UserID:            o.UserID,
		Status:            entities.OrderStatus(o.Status),
		TotalPriceGBP:     o.TotalPriceGBP,
		TotalPriceEUR:     o.TotalPriceEUR,
		TotalCustomsFee:   o.TotalCustomsFee,
		TotalTransportFee: o.TotalTransportFee,
		AdditionalInfo:    nullStringToString(o.AdditionalInfo),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}

	if len(links) > 0 {
		order.ProductLinks = make([]entities.ProductLink, 0, len(links))
		for _, l := range links {
			order.ProductLinks = append(order.ProductLinks, ProductLinkToEntity(l))
		}
	}

	return order
}

func ProductLinkToEntity(l ProductLink) entities.ProductLink {
	return entities.ProductLink{
		ID:           l.ProductLinkID,
		OrderID:      l.OrderID,
		URL:          l.URL,
		Quantity:     l.Quantity,
		Size:         nullStringToString(l.Size),
		Color:        nullStringToString(l.Color),
		PriceGBP:     l.PriceGBP,
		PriceEUR:     l.PriceEUR,
		CustomsFee:   l.CustomsFee,
		TransportFee: l.TransportFee,
	}
}

func UserToEntity(u User) entities.User {
	return entities.User{
		ID:           u.UserID,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		PasswordHash: u.Password,
		Location:     nullStringToString(u.Location),
		IsBlocked:    u.IsBlocked,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func AdminToEntity(a Admin) entities.Admin {
	return entities.Admin{
		ID:           a.AdminID,
		Email:        a.Email,
		PasswordHash: a.Password,
		Role:         entities.AdminRole(a.Role),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func ShopToEntity(s Shop) entities.Shop {
	shop := entities.Shop{
		ID:        s.ShopID,
		Name:      s.Name,
		URL:       s.URL,
		LogoURL:   nullStringToString(s.LogoURL),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.CategoryID.Valid {
		id := s.CategoryID.UUID
		shop.CategoryID = &id
	}
	return shop
}

func ShopCategoryToEntity(c ShopCategory) entities.ShopCategory {
	return entities.ShopCategory{
		ID:           c.CategoryID,
		Name:         c.Name,
		DisplayOrder: c.DisplayOrder,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func AppConfigToEntity(c AppConfig) entities.AppConfig {
	return entities.AppConfig{
		Key:         c.Key,
		Value:       c.Value,
		Description: nullStringToString(c.Description),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
