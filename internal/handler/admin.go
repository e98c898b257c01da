package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/pako24/pako24-backend/internal/entities"
	"github.com/pako24/pako24-backend/internal/service"
	"github.com/pako24/pako24-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type AdminOrderService interface {
	ListOrders(ctx context.Context, status *entities.OrderStatus) ([]entities.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (entities.Order, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, status *entities.OrderStatus, info *string) (entities.Order, error)
	AddProductLink(ctx context.Context, orderID uuid.UUID, item service.NewProductLink) (entities.Order, error)
	UpdateProductLink(ctx context.Context, orderID, linkID uuid.UUID, patch service.ProductLinkPatch) (entities.Order, error)
	RemoveProductLink(ctx context.Context, orderID, linkID uuid.UUID) (entities.Order, error)
}

type AdminAccountService interface {
	SessionStore
	LoginAdmin(ctx context.Context, email, password string) (entities.Admin, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
	SetUserBlocked(ctx context.Context, userID uuid.UUID, blocked bool) error
	CreateAdmin(ctx context.Context, email, password string, role entities.AdminRole) (entities.Admin, error)
	ListAdmins(ctx context.Context) ([]entities.Admin, error)
	DeleteAdmin(ctx context.Context, adminID uuid.UUID) error
}

type AdminCatalogService interface {
	CreateShop(ctx context.Context, input service.ShopInput) (entities.Shop, error)
	UpdateShop(ctx context.Context, shopID uuid.UUID, input service.ShopInput) (entities.Shop, error)
	DeleteShop(ctx context.Context, shopID uuid.UUID) error
	CreateCategory(ctx context.Context, name string, displayOrder int) (entities.ShopCategory, error)
	RenameCategory(ctx context.Context, categoryID uuid.UUID, name string) (entities.ShopCategory, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
	ReorderCategories(ctx context.Context, updates []service.CategoryOrder) error
}

type AdminConfigService interface {
	List(ctx context.Context) ([]entities.AppConfig, error)
	Set(ctx context.Context, key, value, description string) (entities.AppConfig, error)
}

type AnalyticsService interface {
	Aggregate(ctx context.Context, from, to time.Time) (entities.AnalyticsReport, error)
	OrdersInRange(ctx context.Context, from, to time.Time) ([]entities.Order, error)
}

type AdminHandler struct {
	logger    *slog.Logger
	validate  *validator.Validate
	orders    AdminOrderService
	accounts  AdminAccountService
	catalog   AdminCatalogService
	config    AdminConfigService
	analytics AnalyticsService
}

func NewAdminHandler(
	logger *slog.Logger,
	orders AdminOrderService,
	accounts AdminAccountService,
	catalog AdminCatalogService,
	config AdminConfigService,
	analytics AnalyticsService,
) *AdminHandler {
	return &AdminHandler{
		logger:    logger.With(slog.String("handler", "admin")),
		validate:  validator.New(),
		orders:    orders,
		accounts:  accounts,
		catalog:   catalog,
		config:    config,
		analytics: analytics,
	}
}

func (h *AdminHandler) Init(r chi.Router) {
	r.Post("/admin/auth/login", h.Login)
	r.Post("/admin/auth/logout", h.Logout)

	// Менеджер и выше: работа с заказами и отчётами
	r.Group(func(r chi.Router) {
		r.Use(AdminAuth(h.accounts, entities.RoleManager))

		r.Get("/admin/auth/me", h.Me)

		r.Get("/admin/orders", h.ListOrders)
		r.Get("/admin/orders/{order_id}", h.GetOrder)
		r.Patch("/admin/orders/{order_id}", h.UpdateOrder)

		r.Post("/orders/{order_id}/products", h.AddProduct)
		r.Patch("/orders/{order_id}/products/{product_id}", h.UpdateProduct)
		r.Delete("/orders/{order_id}/products/{product_id}", h.DeleteProduct)

		r.Get("/admin/analytics", h.Analytics)
		r.Get("/admin/analytics/download", h.DownloadReport)
	})

	// Админ и выше: пользователи и каталог
	r.Group(func(r chi.Router) {
		r.Use(AdminAuth(h.accounts, entities.RoleAdmin))

		r.Get("/admin/users", h.ListUsers)
		r.Patch("/admin/users/{user_id}/block", h.BlockUser)

		r.Post("/admin/shops", h.CreateShop)
		r.Patch("/admin/shops/{shop_id}", h.UpdateShop)
		r.Delete("/admin/shops/{shop_id}", h.DeleteShop)

		r.Post("/admin/shop-categories", h.CreateCategory)
		r.Patch("/admin/shop-categories/order", h.ReorderCategories)
		r.Patch("/admin/shop-categories/{category_id}", h.RenameCategory)
		r.Delete("/admin/shop-categories/{category_id}", h.DeleteCategory)
	})

	// Только SUPER_ADMIN: админские учётки и конфигурация
	r.Group(func(r chi.Router) {
		r.Use(AdminAuth(h.accounts, entities.RoleSuperAdmin))

		r.Get("/admin/admins", h.ListAdmins)
		r.Post("/admin/admins", h.CreateAdmin)
		r.Delete("/admin/admins/{admin_id}", h.DeleteAdmin)

		r.Get("/admin/config", h.ListConfigs)
		r.Put("/admin/config/{key}", h.SetConfig)
	})
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	admin, err := h.accounts.LoginAdmin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	setSessionCookie(w, adminCookie, admin.ID)
	utils.WriteJSON(w, AdminEntityToJSON(admin), http.StatusOK)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, adminCookie)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin, _ := AdminFromContext(r.Context())
	utils.WriteJSON(w, AdminEntityToJSON(admin), http.StatusOK)
}

// ListOrders список заказов, опционально по статусу.
// @Summary  Список заказов
// @Tags     admin-orders
// @Param    status  query  string  false  "Фильтр по статусу"
// @Success  200  {array}  Order
// @Router   /admin/orders [get]
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var status *entities.OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := entities.OrderStatus(raw)
		status = &s
	}

	orders, err := h.orders.ListOrders(r.Context(), status)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.WriteJSON(w, OrdersEntityToJSON(orders), http.StatusOK)
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		utils.WriteError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// UpdateOrder смена статуса и/или комментария заказа.
// @Summary  Обновить заказ
// @Tags     admin-orders
// @Param    order_id  path  string  true  "ID заказа"
// @Param    body  body  UpdateOrderRequest  true  "Изменяемые поля"
// @Success  200  {object}  Order
// @Router   /admin/orders/{order_id} [patch]
func (h *AdminHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		utils.WriteError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req UpdateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var status *entities.OrderStatus
	if req.Status != nil {
		s := entities.OrderStatus(*req.Status)
		status = &s
	}

	order, err := h.orders.UpdateOrder(r.Context(), orderID, status, req.AdditionalInfo)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if status != nil {
		statusChanges.WithLabelValues(string(*status)).Inc()
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// AddProduct добавляет позицию и возвращает пересчитанный заказ.
// @Summary  Добавить позицию заказа
// @Tags     admin-orders
// @Success  200  {object}  Order
// @Router   /orders/{order_id}/products [post]
func (h *AdminHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		utils.WriteError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req AddProductRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.AddProductLink(r.Context(), orderID, service.NewProductLink{
		URL:          req.URL,
		Quantity:     req.Quantity,
		Size:         req.Size,
		Color:        req.Color,
		PriceGBP:     req.PriceGBP,
		PriceEUR:     req.PriceEUR,
		CustomsFee:   req.CustomsFee,
		TransportFee: req.TransportFee,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// UpdateProduct меняет поля позиции и возвращает пересчитанный заказ.
// @Summary  Обновить позицию заказа
// @Tags     admin-orders
// @Success  200  {object}  Order
// @Router   /orders/{order_id}/products/{product_id} [patch]
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		utils.WriteError(w, "invalid order id", http.StatusBadRequest)
		return
	}
	productID, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		utils.WriteError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req UpdateProductRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.orders.UpdateProductLink(r.Context(), orderID, productID, service.ProductLinkPatch{
		URL:          req.URL,
		Quantity:     req.Quantity,
		Size:         req.Size,
		Color:        req.Color,
		PriceGBP:     req.PriceGBP,
		PriceEUR:     req.PriceEUR,
		CustomsFee:   req.CustomsFee,
		TransportFee: req.TransportFee,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// DeleteProduct удаляет позицию и возвращает пересчитанный заказ.
// @Summary  Удалить позицию заказа
// @Tags     admin-orders
// @Success  200  {object}  Order
// @Router   /orders/{order_id}/products/{product_id} [delete]
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		utils.WriteError(w, "invalid order id", http.StatusBadRequest)
		return
	}
	productID, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		utils.WriteError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	order, err := h.orders.RemoveProductLink(r.Context(), orderID, productID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.ListUsers(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	result := make([]User, 0, len(users))
	for _, u := range users {
		result = append(result, UserEntityToJSON(u))
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *AdminHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		utils.WriteError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req BlockRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.accounts.SetUserBlocked(r.Context(), userID, req.Blocked); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.accounts.ListAdmins(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	result := make([]Admin, 0, len(admins))
	for _, a := range admins {
		result = append(result, AdminEntityToJSON(a))
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req CreateAdminRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	admin, err := h.accounts.CreateAdmin(r.Context(), req.Email, req.Password, entities.AdminRole(req.Role))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.WriteJSON(w, AdminEntityToJSON(admin), http.StatusCreated)
}

func (h *AdminHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuid.Parse(chi.URLParam(r, "admin_id"))
	if err != nil {
		utils.WriteError(w, "invalid admin id", http.StatusBadRequest)
		return
	}

	if err := h.accounts.DeleteAdmin(r.Context(), adminID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) CreateShop(w http.ResponseWriter, r *http.Request) {
	var req ShopRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	shop, err := h.catalog.CreateShop(r.Context(), service.ShopInput{
		Name:       req.Name,
		URL:        req.URL,
		LogoURL:    req.LogoURL,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.WriteJSON(w, ShopEntityToJSON(shop), http.StatusCreated)
}

func (h *AdminHandler) UpdateShop(w http.ResponseWriter, r *http.Request) {
	shopID, err := uuid.Parse(chi.URLParam(r, "shop_id"))
	if err != nil {
		utils.WriteError(w, "invalid shop id", http.StatusBadRequest)
		return
	}

	var req ShopRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	shop, err := h.catalog.UpdateShop(r.Context(), shopID, service.ShopInput{
		Name:       req.Name,
		URL:        req.URL,
		LogoURL:    req.LogoURL,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.WriteJSON(w, ShopEntityToJSON(shop), http.StatusOK)
}

func (h *AdminHandler) DeleteShop(w http.ResponseWriter, r *http.Request) {
	shopID, err := uuid.Parse(chi.URLParam(r, "shop_id"))
	if err != nil {
		utils.WriteError(w, "invalid shop id", http.StatusBadRequest)
		return
	}

	if err := h.catalog.DeleteShop(r.Context(), shopID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), req.Name, req.DisplayOrder)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.WriteJSON(w, CategoryEntityToJSON(category), http.StatusCreated)
}

func (h *AdminHandler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "category_id"))
	if err != nil {
		utils.WriteError(w, "invalid category id", http.StatusBadRequest)
		return
	}

	var req CategoryRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	category, err := h.catalog.RenameCategory(r.Context(), categoryID, req.Name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.WriteJSON(w, CategoryEntityToJSON(category), http.StatusOK)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "category_id"))
	if err != nil {
		utils.WriteError(w, "invalid category id", http.StatusBadRequest)
		return
	}

	if err := h.catalog.DeleteCategory(r.Context(), categoryID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReorderCategories массовое обновление порядка, всё или ничего.
// @Summary  Переупорядочить категории
// @Tags     admin-catalog
// @Param    body  body  ReorderRequest  true  "Новый порядок"
// @Success  204
// @Router   /admin/shop-categories/order [patch]
func (h *AdminHandler) ReorderCategories(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	updates := make([]service.CategoryOrder, 0, len(req.Items))
	for _, item := range req.Items {
		updates = append(updates, service.CategoryOrder{
			CategoryID:   item.CategoryID,
			DisplayOrder: item.DisplayOrder,
		})
	}

	if err := h.catalog.ReorderCategories(r.Context(), updates); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.config.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	result := make([]AppConfig, 0, len(configs))
	for _, c := range configs {
		result = append(result, ConfigEntityToJSON(c))
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *AdminHandler) SetConfig(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req ConfigRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	conf, err := h.config.Set(r.Context(), key, req.Value, req.Description)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.WriteJSON(w, ConfigEntityToJSON(conf), http.StatusOK)
}
