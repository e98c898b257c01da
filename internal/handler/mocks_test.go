package handler_test

import (
	"context"
	"time"

	"github.com/pako24/pako24-backend/internal/entities"
	"github.com/pako24/pako24-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) SubmitOrder(ctx context.Context, userID uuid.UUID, items []service.NewProductLink) (entities.Order, error) {
	args := m.Called(ctx, userID, items)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderService) GetUserOrder(ctx context.Context, userID, orderID uuid.UUID) (entities.Order, error) {
	args := m.Called(ctx, userID, orderID)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]entities.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]entities.Order), args.Error(1)
}

func (m *mockOrderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (entities.Order, error) {
	args := m.Called(ctx, userID, orderID)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderService) ListOrders(ctx context.Context, status *entities.OrderStatus) ([]entities.Order, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]entities.Order), args.Error(1)
}

func (m *mockOrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (entities.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderService) UpdateOrder(ctx context.Context, orderID uuid.UUID, status *entities.OrderStatus, info *string) (entities.Order, error) {
	args := m.Called(ctx, orderID, status, info)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderService) AddProductLink(ctx context.Context, orderID uuid.UUID, item service.NewProductLink) (entities.Order, error) {
	args := m.Called(ctx, orderID, item)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderService) UpdateProductLink(ctx context.Context, orderID, linkID uuid.UUID, patch service.ProductLinkPatch) (entities.Order, error) {
	args := m.Called(ctx, orderID, linkID, patch)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderService) RemoveProductLink(ctx context.Context, orderID, linkID uuid.UUID) (entities.Order, error) {
	args := m.Called(ctx, orderID, linkID)
	return args.Get(0).(entities.Order), args.Error(1)
}

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) GetUser(ctx context.Context, userID uuid.UUID) (entities.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(entities.User), args.Error(1)
}

func (m *mockAccountService) GetAdmin(ctx context.Context, adminID uuid.UUID) (entities.Admin, error) {
	args := m.Called(ctx, adminID)
	return args.Get(0).(entities.Admin), args.Error(1)
}

func (m *mockAccountService) RegisterUser(ctx context.Context, input service.RegisterInput) (entities.User, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(entities.User), args.Error(1)
}

func (m *mockAccountService) LoginUser(ctx context.Context, email, password string) (entities.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(entities.User), args.Error(1)
}

func (m *mockAccountService) LoginAdmin(ctx context.Context, email, password string) (entities.Admin, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(entities.Admin), args.Error(1)
}

func (m *mockAccountService) ListUsers(ctx context.Context) ([]entities.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *mockAccountService) SetUserBlocked(ctx context.Context, userID uuid.UUID, blocked bool) error {
	return m.Called(ctx, userID, blocked).Error(0)
}

func (m *mockAccountService) CreateAdmin(ctx context.Context, email, password string, role entities.AdminRole) (entities.Admin, error) {
	args := m.Called(ctx, email, password, role)
	return args.Get(0).(entities.Admin), args.Error(1)
}

func (m *mockAccountService) ListAdmins(ctx context.Context) ([]entities.Admin, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Admin), args.Error(1)
}

func (m *mockAccountService) DeleteAdmin(ctx context.Context, adminID uuid.UUID) error {
	return m.Called(ctx, adminID).Error(0)
}

type mockCatalogService struct {
	mock.Mock
}

func (m *mockCatalogService) ListShops(ctx context.Context) ([]entities.Shop, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Shop), args.Error(1)
}

func (m *mockCatalogService) ListCategories(ctx context.Context) ([]entities.ShopCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.ShopCategory), args.Error(1)
}

func (m *mockCatalogService) CreateShop(ctx context.Context, input service.ShopInput) (entities.Shop, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(entities.Shop), args.Error(1)
}

func (m *mockCatalogService) UpdateShop(ctx context.Context, shopID uuid.UUID, input service.ShopInput) (entities.Shop, error) {
	args := m.Called(ctx, shopID, input)
	return args.Get(0).(entities.Shop), args.Error(1)
}

func (m *mockCatalogService) DeleteShop(ctx context.Context, shopID uuid.UUID) error {
	return m.Called(ctx, shopID).Error(0)
}

func (m *mockCatalogService) CreateCategory(ctx context.Context, name string, displayOrder int) (entities.ShopCategory, error) {
	args := m.Called(ctx, name, displayOrder)
	return args.Get(0).(entities.ShopCategory), args.Error(1)
}

func (m *mockCatalogService) RenameCategory(ctx context.Context, categoryID uuid.UUID, name string) (entities.ShopCategory, error) {
	args := m.Called(ctx, categoryID, name)
	return args.Get(0).(entities.ShopCategory), args.Error(1)
}

func (m *mockCatalogService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	return m.Called(ctx, categoryID).Error(0)
}

func (m *mockCatalogService) ReorderCategories(ctx context.Context, updates []service.CategoryOrder) error {
	return m.Called(ctx, updates).Error(0)
}

type mockConfigService struct {
	mock.Mock
}

func (m *mockConfigService) List(ctx context.Context) ([]entities.AppConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.AppConfig), args.Error(1)
}

func (m *mockConfigService) Set(ctx context.Context, key, value, description string) (entities.AppConfig, error) {
	args := m.Called(ctx, key, value, description)
	return args.Get(0).(entities.AppConfig), args.Error(1)
}

type mockAnalyticsService struct {
	mock.Mock
}

func (m *mockAnalyticsService) Aggregate(ctx context.Context, from, to time.Time) (entities.AnalyticsReport, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(entities.AnalyticsReport), args.Error(1)
}

func (m *mockAnalyticsService) OrdersInRange(ctx context.Context, from, to time.Time) ([]entities.Order, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]entities.Order), args.Error(1)
}
