package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pako24/pako24-backend/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var orderColumns = []string{
	"order_id", "user_id", "status",
	"total_price_gbp", "total_price_eur", "total_customs_fee", "total_transport_fee",
	"additional_info", "created_at", "updated_at",
}

var productLinkColumns = []string{
	"product_link_id", "order_id", "url", "quantity", "size", "color",
	"price_gbp", "price_eur", "customs_fee", "transport_fee",
}

func (r *postgresRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns("order_id", "user_id", "status", "additional_info", "created_at", "updated_at").
		Values(o.ID, o.UserID, string(o.Status), nullString(o.AdditionalInfo), o.CreatedAt, o.UpdatedAt).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *postgresRepo) SaveProductLinks(ctx context.Context, links []entities.ProductLink) error {
	if len(links) == 0 {
		return nil
	}

	q := r.qb.Insert("product_links").Columns(productLinkColumns...)
	for _, l := range links {
		q = q.Values(
			l.ID, l.OrderID, l.URL, l.Quantity,
			nullString(l.Size), nullString(l.Color),
			l.PriceGBP, l.PriceEUR, l.CustomsFee, l.TransportFee,
		)
	}

	query, args := q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save product links: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, orderID uuid.UUID) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	links, err := r.linksByOrders(ctx, []uuid.UUID{orderID})
	if err != nil {
		return entities.Order{}, err
	}

	return OrderToEntity(order, links[orderID]), nil
}

func (r *postgresRepo) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		MustSql()

	return r.hydrateOrders(ctx, query, args)
}

func (r *postgresRepo) ListOrders(ctx context.Context, status *entities.OrderStatus) ([]entities.Order, error) {
	q := r.qb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC")
	if status != nil {
		q = q.Where(sq.Eq{"status": string(*status)})
	}
	query, args := q.MustSql()

	return r.hydrateOrders(ctx, query, args)
}

// ListOrdersInRange возвращает заказы за период по возрастанию даты,
// вместе с позициями и контактами владельцев (нужны для отчётов).
func (r *postgresRepo) ListOrdersInRange(ctx context.Context, from, to time.Time) ([]entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.And{
			sq.GtOrEq{"created_at": from},
			sq.LtOrEq{"created_at": to},
		}).
		OrderBy("created_at ASC").
		MustSql()

	orders, err := r.hydrateOrders(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	userIDs := make([]uuid.UUID, 0, len(orders))
	seen := make(map[uuid.UUID]struct{}, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.UserID]; !ok {
			seen[o.UserID] = struct{}{}
			userIDs = append(userIDs, o.UserID)
		}
	}

	query, args = r.qb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"user_id": userIDs}).
		MustSql()

	var users []User
	if err := r.selectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select order owners: %w", err)
	}
	userMap := make(map[uuid.UUID]entities.User, len(users))
	for _, u := range users {
		userMap[u.UserID] = UserToEntity(u)
	}

	for i := range orders {
		if u, ok := userMap[orders[i].UserID]; ok {
			owner := u
			orders[i].User = &owner
		}
	}

	return orders, nil
}

func (r *postgresRepo) CountOrdersByStatus(ctx context.Context, from, to time.Time) (map[entities.OrderStatus]int, error) {
	query, args := r.qb.Select("status", "COUNT(*) AS count").
		From("orders").
		Where(sq.And{
			sq.GtOrEq{"created_at": from},
			sq.LtOrEq{"created_at": to},
		}).
		GroupBy("status").
		MustSql()

	var rows []statusCount
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	counts := make(map[entities.OrderStatus]int, len(rows))
	for _, row := range rows {
		counts[entities.OrderStatus(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *postgresRepo) UpdateOrderTotals(ctx context.Context, orderID uuid.UUID, totals entities.OrderTotals) error {
	query, args := r.qb.Update("orders").
		Set("total_price_gbp", totals.PriceGBP).
		Set("total_price_eur", totals.PriceEUR).
		Set("total_customs_fee", totals.CustomsFee).
		Set("total_transport_fee", totals.TransportFee).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	return r.execExpectingOrder(ctx, query, args, "failed to update order totals")
}

func (r *postgresRepo) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entities.OrderStatus) error {
	query, args := r.qb.Update("orders").
		Set("status", string(status)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	return r.execExpectingOrder(ctx, query, args, "failed to update order status")
}

func (r *postgresRepo) UpdateOrderInfo(ctx context.Context, orderID uuid.UUID, info string) error {
	query, args := r.qb.Update("orders").
		Set("additional_info", nullString(info)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	return r.execExpectingOrder(ctx, query, args, "failed to update order info")
}

func (r *postgresRepo) GetProductLink(ctx context.Context, linkID uuid.UUID) (entities.ProductLink, error) {
	query, args := r.qb.Select(productLinkColumns...).
		From("product_links").
		Where(sq.Eq{"product_link_id": linkID}).
		MustSql()

	var link ProductLink
	err := r.getContext(ctx, &link, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.ProductLink{}, entities.ErrProductLinkNotFound
	}
	if err != nil {
		return entities.ProductLink{}, fmt.Errorf("failed to get product link: %w", err)
	}
	return ProductLinkToEntity(link), nil
}

func (r *postgresRepo) UpdateProductLink(ctx context.Context, l entities.ProductLink) error {
	query, args := r.qb.Update("product_links").
		Set("url", l.URL).
		Set("quantity", l.Quantity).
		Set("size", nullString(l.Size)).
		Set("color", nullString(l.Color)).
		Set("price_gbp", l.PriceGBP).
		Set("price_eur", l.PriceEUR).
		Set("customs_fee", l.CustomsFee).
		Set("transport_fee", l.TransportFee).
		Where(sq.Eq{"product_link_id": l.ID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update product link: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrProductLinkNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteProductLink(ctx context.Context, linkID uuid.UUID) error {
	query, args := r.qb.Delete("product_links").
		Where(sq.Eq{"product_link_id": linkID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete product link: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrProductLinkNotFound
	}
	return nil
}

func (r *postgresRepo) hydrateOrders(ctx context.Context, query string, args []any) ([]entities.Order, error) {
	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.OrderID
	}

	links, err := r.linksByOrders(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o, links[o.OrderID]))
	}
	return result, nil
}

func (r *postgresRepo) linksByOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]ProductLink, error) {
	query, args := r.qb.Select(productLinkColumns...).
		From("product_links").
		Where(sq.Eq{"order_id": orderIDs}).
		MustSql()

	var links []ProductLink
	if err := r.selectContext(ctx, &links, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select product links: %w", err)
	}

	linkMap := make(map[uuid.UUID][]ProductLink, len(orderIDs))
	for _, l := range links {
		linkMap[l.OrderID] = append(linkMap[l.OrderID], l)
	}
	return linkMap, nil
}

func (r *postgresRepo) execExpectingOrder(ctx context.Context, query string, args []any, msg string) error {
	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", msg, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrOrderNotFound
	}
	return nil
}
