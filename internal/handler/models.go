package handler

import (
	"time"

	"github.com/pako24/pako24-backend/internal/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order представляет заказ
type Order struct {
	ID                uuid.UUID       `json:"id"`
	UserID            uuid.UUID       `json:"user_id"`
	Status            string          `json:"status"`
	TotalPriceGBP     decimal.Decimal `json:"total_price_gbp"`
	TotalPriceEUR     decimal.Decimal `json:"total_price_eur"`
	TotalCustomsFee   decimal.Decimal `json:"total_customs_fee"`
	TotalTransportFee decimal.Decimal `json:"total_transport_fee"`
	AdditionalInfo    string          `json:"additional_info,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	ProductLinks      []ProductLink   `json:"product_links"`
}

// ProductLink позиция заказа
type ProductLink struct {
	ID           uuid.UUID       `json:"id"`
	URL          string          `json:"url"`
	Quantity     int             `json:"quantity"`
	Size         string          `json:"size,omitempty"`
	Color        string          `json:"color,omitempty"`
	PriceGBP     decimal.Decimal `json:"price_gbp"`
	PriceEUR     decimal.Decimal `json:"price_eur"`
	CustomsFee   decimal.Decimal `json:"customs_fee"`
	TransportFee decimal.Decimal `json:"transport_fee"`
}

type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Location    string    `json:"location,omitempty"`
	IsBlocked   bool      `json:"is_blocked"`
	CreatedAt   time.Time `json:"created_at"`
}

type Admin struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Shop struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	URL        string     `json:"url"`
	LogoURL    string     `json:"logo_url,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}

type ShopCategory struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
}

type AppConfig struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

type DailyOrders struct {
	Date    string          `json:"date"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type TopProduct struct {
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// AnalyticsReport ответ /admin/analytics
type AnalyticsReport struct {
	TotalOrders       int             `json:"total_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	StatusCounts      map[string]int  `json:"status_counts"`
	DailyOrders       []DailyOrders   `json:"daily_orders"`
	TopProducts       []TopProduct    `json:"top_products"`
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
	Password    string `json:"password" validate:"required,min=8"`
	Location    string `json:"location"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SubmitOrderRequest struct {
	Items []SubmitOrderItem `json:"items" validate:"required,min=1,dive"`
}

type SubmitOrderItem struct {
	URL      string `json:"url" validate:"required,url"`
	Quantity int    `json:"quantity" validate:"gte=0"`
	Size     string `json:"size"`
	Color    string `json:"color"`
}

type UpdateOrderRequest struct {
	Status         *string `json:"status"`
	AdditionalInfo *string `json:"additional_info"`
}

type AddProductRequest struct {
	URL          string          `json:"url" validate:"required,url"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	Size         string          `json:"size"`
	Color        string          `json:"color"`
	PriceGBP     decimal.Decimal `json:"price_gbp"`
	PriceEUR     decimal.Decimal `json:"price_eur"`
	CustomsFee   decimal.Decimal `json:"customs_fee"`
	TransportFee decimal.Decimal `json:"transport_fee"`
}

type UpdateProductRequest struct {
	URL          *string          `json:"url"`
	Quantity     *int             `json:"quantity"`
	Size         *string          `json:"size"`
	Color        *string          `json:"color"`
	PriceGBP     *decimal.Decimal `json:"price_gbp"`
	PriceEUR     *decimal.Decimal `json:"price_eur"`
	CustomsFee   *decimal.Decimal `json:"customs_fee"`
	TransportFee *decimal.Decimal `json:"transport_fee"`
}

type CreateAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=MANAGER ADMIN SUPER_ADMIN"`
}

type ShopRequest struct {
	Name       string     `json:"name" validate:"required"`
	URL        string     `json:"url" validate:"required,url"`
	LogoURL    string     `json:"logo_url"`
	CategoryID *uuid.UUID `json:"category_id"`
}

type CategoryRequest struct {
	Name         string `json:"name" validate:"required"`
	DisplayOrder int    `json:"display_order"`
}

type ReorderRequest struct {
	Items []ReorderItem `json:"items" validate:"required,min=1,dive"`
}

type ReorderItem struct {
	CategoryID   uuid.UUID `json:"category_id" validate:"required"`
	DisplayOrder int       `json:"display_order"`
}

type ConfigRequest struct {
	Value       string `json:"value" validate:"required"`
	Description string `json:"description"`
}

type BlockRequest struct {
	Blocked bool `json:"blocked"`
}

func OrderEntityToJSON(o entities.Order) Order {
	links := make([]ProductLink, 0, len(o.ProductLinks))
	for _, l := range o.ProductLinks {
		links = append(links, ProductLinkEntityToJSON(l))
	}

	return Order{
		ID:                o.ID,
		UserID:            o.UserID,
		Status:            string(o.Status),
		TotalPriceGBP:     o.TotalPriceGBP,
		TotalPriceEUR:     o.TotalPriceEUR,
		TotalCustomsFee:   o.TotalCustomsFee,
		TotalTransportFee: o.TotalTransportFee,
		AdditionalInfo:    o.AdditionalInfo,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		ProductLinks:      links,
	}
}

func OrdersEntityToJSON(orders []entities.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderEntityToJSON(o))
	}
	return result
}

func ProductLinkEntityToJSON(l entities.ProductLink) ProductLink {
	return ProductLink{
		ID:           l.ID,
		URL:          l.URL,
		Quantity:     l.Quantity,
		Size:         l.Size,
		Color:        l.Color,
		PriceGBP:     l.PriceGBP,
		PriceEUR:     l.PriceEUR,
		CustomsFee:   l.CustomsFee,
		TransportFee: l.TransportFee,
	}
}

func UserEntityToJSON(u entities.User) User {
	return User{
		ID:          u.ID,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Location:    u.Location,
		IsBlocked:   u.IsBlocked,
		CreatedAt:   u.CreatedAt,
	}
}

func AdminEntityToJSON(a entities.Admin) Admin {
	return Admin{
		ID:        a.ID,
		Email:     a.Email,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
	}
}

func ShopEntityToJSON(s entities.Shop) Shop {
	return Shop{
		ID:         s.ID,
		Name:       s.Name,
		URL:        s.URL,
		LogoURL:    s.LogoURL,
		CategoryID: s.CategoryID,
	}
}

func CategoryEntityToJSON(c entities.ShopCategory) ShopCategory {
	return ShopCategory{
		ID:           c.ID,
		Name:         c.Name,
		DisplayOrder: c.DisplayOrder,
	}
}

func ConfigEntityToJSON(c entities.AppConfig) AppConfig {
	return AppConfig{
		Key:         c.Key,
		Value:       c.Value,
		Description: c.Description,
	}
}

func ReportEntityToJSON(r entities.AnalyticsReport) AnalyticsReport {
	counts := make(map[string]int, len(r.StatusCounts))
	for status, n := range r.StatusCounts {
		counts[string(status)] = n
	}

	daily := make([]DailyOrders, 0, len(r.DailyOrders))
	for _, d := range r.DailyOrders {
		daily = append(daily, DailyOrders{Date: d.Date, Count: d.Count, Revenue: d.Revenue})
	}

	top := make([]TopProduct, 0, len(r.TopProducts))
	for _, p := range r.TopProducts {
		top = append(top, TopProduct{URL: p.URL, Count: p.Count})
	}

	return AnalyticsReport{
		TotalOrders:       r.TotalOrders,
		TotalRevenue:      r.TotalRevenue,
		AverageOrderValue: r.AverageOrderValue,
		StatusCounts:      counts,
		DailyOrders:       daily,
		TopProducts:       top,
	}
}
