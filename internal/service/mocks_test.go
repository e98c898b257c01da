package service_test

import (
	"context"
	"time"

	"github.com/pako24/pako24-backend/internal/entities"
	"github.com/pako24/pako24-backend/pkg/trm"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTxManager прогоняет колбэк без настоящей транзакции.
type fakeTxManager struct{}

func (fakeTxManager) BeginTx(ctx context.Context) (context.Context, trm.Transaction, error) {
	return ctx, nopTx{}, nil
}

func (fakeTxManager) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	return callback(ctx)
}

type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderRepo) SaveProductLinks(ctx context.Context, links []entities.ProductLink) error {
	return m.Called(ctx, links).Error(0)
}

func (m *mockOrderRepo) GetOrderByID(ctx context.Context, orderID uuid.UUID) (entities.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderRepo) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]entities.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entities.Order), args.Error(1)
}

func (m *mockOrderRepo) ListOrders(ctx context.Context, status *entities.OrderStatus) ([]entities.Order, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]entities.Order), args.Error(1)
}

func (m *mockOrderRepo) UpdateOrderTotals(ctx context.Context, orderID uuid.UUID, totals entities.OrderTotals) error {
	return m.Called(ctx, orderID, totals).Error(0)
}

func (m *mockOrderRepo) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entities.OrderStatus) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *mockOrderRepo) UpdateOrderInfo(ctx context.Context, orderID uuid.UUID, info string) error {
	return m.Called(ctx, orderID, info).Error(0)
}

func (m *mockOrderRepo) GetProductLink(ctx context.Context, linkID uuid.UUID) (entities.ProductLink, error) {
	args := m.Called(ctx, linkID)
	return args.Get(0).(entities.ProductLink), args.Error(1)
}

func (m *mockOrderRepo) UpdateProductLink(ctx context.Context, l entities.ProductLink) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockOrderRepo) DeleteProductLink(ctx context.Context, linkID uuid.UUID) error {
	return m.Called(ctx, linkID).Error(0)
}

type mockRateSource struct {
	mock.Mock
}

func (m *mockRateSource) GBPEURRate(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockOrderEvents struct {
	mock.Mock
}

func (m *mockOrderEvents) OrderCreated(ctx context.Context, o entities.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderEvents) OrderStatusChanged(ctx context.Context, o entities.Order, from entities.OrderStatus) error {
	return m.Called(ctx, o, from).Error(0)
}

type mockAnalyticsRepo struct {
	mock.Mock
}

func (m *mockAnalyticsRepo) ListOrdersInRange(ctx context.Context, from, to time.Time) ([]entities.Order, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]entities.Order), args.Error(1)
}

func (m *mockAnalyticsRepo) CountOrdersByStatus(ctx context.Context, from, to time.Time) (map[entities.OrderStatus]int, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(map[entities.OrderStatus]int), args.Error(1)
}

type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) SaveUser(ctx context.Context, u entities.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockAccountRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (entities.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(entities.User), args.Error(1)
}

func (m *mockAccountRepo) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(entities.User), args.Error(1)
}

func (m *mockAccountRepo) ListUsers(ctx context.Context) ([]entities.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *mockAccountRepo) SetUserBlocked(ctx context.Context, userID uuid.UUID, blocked bool) error {
	return m.Called(ctx, userID, blocked).Error(0)
}

func (m *mockAccountRepo) SaveAdmin(ctx context.Context, a entities.Admin) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAccountRepo) GetAdminByID(ctx context.Context, adminID uuid.UUID) (entities.Admin, error) {
	args := m.Called(ctx, adminID)
	return args.Get(0).(entities.Admin), args.Error(1)
}

func (m *mockAccountRepo) GetAdminByEmail(ctx context.Context, email string) (entities.Admin, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(entities.Admin), args.Error(1)
}

func (m *mockAccountRepo) ListAdmins(ctx context.Context) ([]entities.Admin, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Admin), args.Error(1)
}

func (m *mockAccountRepo) DeleteAdmin(ctx context.Context, adminID uuid.UUID) error {
	return m.Called(ctx, adminID).Error(0)
}

func (m *mockAccountRepo) CountAdmins(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
