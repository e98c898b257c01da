package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pako24/pako24-backend/internal/entities"
	"github.com/pako24/pako24-backend/pkg/trm"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderRepo interface {
	SaveOrder(ctx context.Context, o entities.Order) error
	SaveProductLinks(ctx context.Context, links []entities.ProductLink) error
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (entities.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]entities.Order, error)
	ListOrders(ctx context.Context, status *entities.OrderStatus) ([]entities.Order, error)
	UpdateOrderTotals(ctx context.Context, orderID uuid.UUID, totals entities.OrderTotals) error
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entities.OrderStatus) error
	UpdateOrderInfo(ctx context.Context, orderID uuid.UUID, info string) error
	GetProductLink(ctx context.Context, linkID uuid.UUID) (entities.ProductLink, error)
	UpdateProductLink(ctx context.Context, l entities.ProductLink) error
	DeleteProductLink(ctx context.Context, linkID uuid.UUID) error
}

// RateSource отдаёт курс GBP->EUR из конфигурации приложения.
type RateSource interface {
	GBPEURRate(ctx context.Context) (decimal.Decimal, error)
}

type OrderEvents interface {
	OrderCreated(ctx context.Context, o entities.Order) error
	OrderStatusChanged(ctx context.Context, o entities.Order, from entities.OrderStatus) error
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	rates     RateSource
	events    OrderEvents
}

func NewOrderService(logger *slog.Logger, txManager trm.Manager, repo OrderRepo, rates RateSource, events OrderEvents) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		rates:     rates,
		events:    events,
	}
}

// NewProductLink входные данные одной позиции. Цены заполняет админ,
// при пользовательской подаче заявки они остаются нулевыми.
type NewProductLink struct {
	URL          string
	Quantity     int
	Size         string
	Color        string
	PriceGBP     decimal.Decimal
	PriceEUR     decimal.Decimal
	CustomsFee   decimal.Decimal
	TransportFee decimal.Decimal
}

// ProductLinkPatch частичное обновление позиции, nil поля не трогаются.
type ProductLinkPatch struct {
	URL          *string
	Quantity     *int
	Size         *string
	Color        *string
	PriceGBP     *decimal.Decimal
	PriceEUR     *decimal.Decimal
	CustomsFee   *decimal.Decimal
	TransportFee *decimal.Decimal
}

// CalculateTotals суммирует позиции в четыре агрегата заказа.
// Все денежные поля позиции за единицу, поэтому каждое умножается
// на количество. Результат округлён до двух знаков.
func CalculateTotals(links []entities.ProductLink) entities.OrderTotals {
	var totals entities.OrderTotals
	for _, l := range links {
		qty := decimal.NewFromInt(int64(l.Quantity))
		totals.PriceGBP = totals.PriceGBP.Add(l.PriceGBP.Mul(qty))
		totals.PriceEUR = totals.PriceEUR.Add(l.PriceEUR.Mul(qty))
		totals.CustomsFee = totals.CustomsFee.Add(l.CustomsFee.Mul(qty))
		totals.TransportFee = totals.TransportFee.Add(l.TransportFee.Mul(qty))
	}
	totals.PriceGBP = totals.PriceGBP.Round(2)
	totals.PriceEUR = totals.PriceEUR.Round(2)
	totals.CustomsFee = totals.CustomsFee.Round(2)
	totals.TransportFee = totals.TransportFee.Round(2)
	return totals
}

func (s *orderService) SubmitOrder(ctx context.Context, userID uuid.UUID, items []NewProductLink) (entities.Order, error) {
	now := time.Now()
	order := entities.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    entities.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	links := make([]entities.ProductLink, 0, len(items))
	for _, item := range items {
		links = append(links, s.buildLink(ctx, order.ID, item))
	}

	var created entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.SaveOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}
		if err := s.repo.SaveProductLinks(ctx, links); err != nil {
			return fmt.Errorf("failed to save product links: %w", err)
		}

		var err error
		created, err = s.Recalculate(ctx, order.ID)
		return err
	})
	if err != nil {
		return entities.Order{}, err
	}

	s.publish(ctx, func() error { return s.events.OrderCreated(ctx, created) })

	s.logger.Debug("order submitted", slog.String("order_id", created.ID.String()))
	return created, nil
}

// Recalculate перечитывает позиции заказа и записывает четыре агрегата.
// Единственное место, где тоталы заказа меняются.
func (s *orderService) Recalculate(ctx context.Context, orderID uuid.UUID) (entities.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	totals := CalculateTotals(order.ProductLinks)
	if err := s.repo.UpdateOrderTotals(ctx, orderID, totals); err != nil {
		return entities.Order{}, err
	}

	order.TotalPriceGBP = totals.PriceGBP
	order.TotalPriceEUR = totals.PriceEUR
	order.TotalCustomsFee = totals.CustomsFee
	order.TotalTransportFee = totals.TransportFee
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (entities.Order, error) {
	return s.repo.GetOrderByID(ctx, orderID)
}

// GetUserOrder не раскрывает чужие заказы: для не-владельца отвечает как для несуществующего.
func (s *orderService) GetUserOrder(ctx context.Context, userID, orderID uuid.UUID) (entities.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if order.UserID != userID {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]entities.Order, error) {
	return s.repo.ListOrdersByUser(ctx, userID)
}

func (s *orderService) ListOrders(ctx context.Context, status *entities.OrderStatus) ([]entities.Order, error) {
	if status != nil && !status.Valid() {
		return nil, entities.ErrInvalidStatus
	}
	return s.repo.ListOrders(ctx, status)
}

// CancelOrder пользовательская отмена, разрешена только из PENDING.
func (s *orderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (entities.Order, error) {
	var cancelled entities.Order
	var from entities.OrderStatus

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.GetUserOrder(ctx, userID, orderID)
		if err != nil {
			return err
		}
		if order.Status != entities.StatusPending {
			return entities.ErrOrderNotCancellable
		}

		if err := s.repo.UpdateOrderStatus(ctx, orderID, entities.StatusCancelled); err != nil {
			return err
		}

		from = order.Status
		order.Status = entities.StatusCancelled
		cancelled = order
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}

	s.publish(ctx, func() error { return s.events.OrderStatusChanged(ctx, cancelled, from) })
	return cancelled, nil
}

// UpdateOrder админское обновление: статус меняется свободно между любыми значениями.
func (s *orderService) UpdateOrder(ctx context.Context, orderID uuid.UUID, status *entities.OrderStatus, info *string) (entities.Order, error) {
	if status != nil && !status.Valid() {
		return entities.Order{}, entities.ErrInvalidStatus
	}

	var updated entities.Order
	var from entities.OrderStatus
	statusChanged := false

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.repo.GetOrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		from = order.Status

		if status != nil && *status != order.Status {
			if err := s.repo.UpdateOrderStatus(ctx, orderID, *status); err != nil {
				return err
			}
			order.Status = *status
			statusChanged = true
		}
		if info != nil {
			if err := s.repo.UpdateOrderInfo(ctx, orderID, *info); err != nil {
				return err
			}
			order.AdditionalInfo = *info
		}

		updated = order
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}

	if statusChanged {
		s.publish(ctx, func() error { return s.events.OrderStatusChanged(ctx, updated, from) })
	}
	return updated, nil
}

func (s *orderService) AddProductLink(ctx context.Context, orderID uuid.UUID, item NewProductLink) (entities.Order, error) {
	link := s.buildLink(ctx, orderID, item)

	var updated entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetOrderByID(ctx, orderID); err != nil {
			return err
		}
		if err := s.repo.SaveProductLinks(ctx, []entities.ProductLink{link}); err != nil {
			return err
		}

		var err error
		updated, err = s.Recalculate(ctx, orderID)
		return err
	})
	return updated, err
}

func (s *orderService) UpdateProductLink(ctx context.Context, orderID, linkID uuid.UUID, patch ProductLinkPatch) (entities.Order, error) {
	var updated entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		link, err := s.repo.GetProductLink(ctx, linkID)
		if err != nil {
			return err
		}
		if link.OrderID != orderID {
			return entities.ErrProductLinkNotFound
		}

		applyPatch(&link, patch)
		s.backfillEUR(ctx, &link)

		if err := s.repo.UpdateProductLink(ctx, link); err != nil {
			return err
		}

		updated, err = s.Recalculate(ctx, orderID)
		return err
	})
	return updated, err
}

func (s *orderService) RemoveProductLink(ctx context.Context, orderID, linkID uuid.UUID) (entities.Order, error) {
	var updated entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		link, err := s.repo.GetProductLink(ctx, linkID)
		if err != nil {
			return err
		}
		if link.OrderID != orderID {
			return entities.ErrProductLinkNotFound
		}

		if err := s.repo.DeleteProductLink(ctx, linkID); err != nil {
			return err
		}

		updated, err = s.Recalculate(ctx, orderID)
		return err
	})
	return updated, err
}

// applyPatch переносит заполненные поля патча в позицию.
// Количество ниже единицы поднимается до единицы.
func applyPatch(link *entities.ProductLink, patch ProductLinkPatch) {
	if patch.URL != nil {
		link.URL = *patch.URL
	}
	if patch.Quantity != nil {
		link.Quantity = *patch.Quantity
		if link.Quantity < 1 {
			link.Quantity = 1
		}
	}
	if patch.Size != nil {
		link.Size = *patch.Size
	}
	if patch.Color != nil {
		link.Color = *patch.Color
	}
	if patch.PriceGBP != nil {
		link.PriceGBP = *patch.PriceGBP
	}
	if patch.PriceEUR != nil {
		link.PriceEUR = *patch.PriceEUR
	}
	if patch.CustomsFee != nil {
		link.CustomsFee = *patch.CustomsFee
	}
	if patch.TransportFee != nil {
		link.TransportFee = *patch.TransportFee
	}
}

func (s *orderService) buildLink(ctx context.Context, orderID uuid.UUID, item NewProductLink) entities.ProductLink {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	link := entities.ProductLink{
		ID:           uuid.New(),
		OrderID:      orderID,
		URL:          item.URL,
		Quantity:     item.Quantity,
		Size:         item.Size,
		Color:        item.Color,
		PriceGBP:     item.PriceGBP,
		PriceEUR:     item.PriceEUR,
		CustomsFee:   item.CustomsFee,
		TransportFee: item.TransportFee,
	}
	s.backfillEUR(ctx, &link)
	return link
}

// backfillEUR выводит цену в евро из фунтовой по курсу из конфигурации,
// когда админ указал только фунты. Без курса цена остаётся нулевой.
func (s *orderService) backfillEUR(ctx context.Context, link *entities.ProductLink) {
	if !link.PriceEUR.IsZero() || link.PriceGBP.IsZero() {
		return
	}

	rate, err := s.rates.GBPEURRate(ctx)
	if err != nil {
		if !errors.Is(err, entities.ErrConfigNotFound) {
			s.logger.Warn("failed to get exchange rate", slog.Any("error", err))
		}
		return
	}
	link.PriceEUR = link.PriceGBP.Mul(rate).Round(2)
}

// События публикуются после коммита, отказ брокера не валит запрос.
func (s *orderService) publish(ctx context.Context, fn func() error) {
	if s.events == nil {
		return
	}
	if err := fn(); err != nil {
		s.logger.Error("failed to publish order event", slog.Any("error", err))
	}
}
