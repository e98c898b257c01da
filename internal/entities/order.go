package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Status            OrderStatus
	TotalPriceGBP     decimal.Decimal
	TotalPriceEUR     decimal.Decimal
	TotalCustomsFee   decimal.Decimal
	TotalTransportFee decimal.Decimal
	AdditionalInfo    string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	ProductLinks []ProductLink

	// Заполняется только там, где нужны контакты владельца (отчёты).
	User *User
}

// OrderTotals четыре агрегатных поля заказа, всегда результат пересчёта.
type OrderTotals struct {
	PriceGBP     decimal.Decimal
	PriceEUR     decimal.Decimal
	CustomsFee   decimal.Decimal
	TransportFee decimal.Decimal
}

// ProductLink одна позиция заказа. Все денежные поля за единицу товара.
type ProductLink struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	URL          string
	Quantity     int
	Size         string
	Color        string
	PriceGBP     decimal.Decimal
	PriceEUR     decimal.Decimal
	CustomsFee   decimal.Decimal
	TransportFee decimal.Decimal
}

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrProductLinkNotFound = errors.New("product link not found")
	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")
	ErrInvalidStatus       = errors.New("invalid order status")
)
