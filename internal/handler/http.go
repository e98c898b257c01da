package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pako24/pako24-backend/internal/entities"
	"github.com/pako24/pako24-backend/internal/service"
	"github.com/pako24/pako24-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type UserOrderService interface {
	SubmitOrder(ctx context.Context, userID uuid.UUID, items []service.NewProductLink) (entities.Order, error)
	GetUserOrder(ctx context.Context, userID, orderID uuid.UUID) (entities.Order, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]entities.Order, error)
	CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (entities.Order, error)
}

type UserAccountService interface {
	SessionStore
	RegisterUser(ctx context.Context, input service.RegisterInput) (entities.User, error)
	LoginUser(ctx context.Context, email, password string) (entities.User, error)
}

type PublicCatalogService interface {
	ListShops(ctx context.Context) ([]entities.Shop, error)
	ListCategories(ctx context.Context) ([]entities.ShopCategory, error)
}

type PublicHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	orders   UserOrderService
	accounts UserAccountService
	catalog  PublicCatalogService
}

func NewPublicHandler(logger *slog.Logger, orders UserOrderService, accounts UserAccountService, catalog PublicCatalogService) *PublicHandler {
	return &PublicHandler{
		logger:   logger.With(slog.String("handler", "public")),
		validate: validator.New(),
		orders:   orders,
		accounts: accounts,
		catalog:  catalog,
	}
}

func (h *PublicHandler) Init(r chi.Router) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)

	r.Get("/shops", h.ListShops)
	r.Get("/shop-categories", h.ListCategories)

	r.Group(func(r chi.Router) {
		r.Use(UserAuth(h.accounts))

		r.Get("/auth/me", h.Me)
		r.Post("/orders", h.SubmitOrder)
		r.Get("/orders", h.ListOrders)
		r.Get("/orders/{order_id}", h.GetOrder)
		r.Post("/orders/{order_id}/cancel", h.CancelOrder)
	})
}

// Register регистрирует пользователя.
// @Summary  Регистрация пользователя
// @Tags     auth
// @Param    body  body  RegisterRequest  true  "Данные регистрации"
// @Success  201  {object}  User
// @Failure  409  {object}  utils.ErrorResponse "Email или телефон заняты"
// @Router   /auth/register [post]
func (h *PublicHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	user, err := h.accounts.RegisterUser(r.Context(), service.RegisterInput{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Location:    req.Location,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	setSessionCookie(w, userCookie, user.ID)
	utils.WriteJSON(w, UserEntityToJSON(user), http.StatusCreated)
}

// Login вход пользователя.
// @Summary  Вход пользователя
// @Tags     auth
// @Param    body  body  LoginRequest  true  "Учётные данные"
// @Success  200  {object}  User
// @Failure  401  {object}  utils.ErrorResponse
// @Router   /auth/login [post]
func (h *PublicHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	user, err := h.accounts.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	setSessionCookie(w, userCookie, user.ID)
	utils.WriteJSON(w, UserEntityToJSON(user), http.StatusOK)
}

func (h *PublicHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, userCookie)
	w.WriteHeader(http.StatusNoContent)
}

func (h *PublicHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	utils.WriteJSON(w, UserEntityToJSON(user), http.StatusOK)
}

// SubmitOrder заявка на выкуп: список ссылок с количеством и вариантами.
// @Summary  Подать заказ
// @Tags     orders
// @Param    body  body  SubmitOrderRequest  true  "Позиции заказа"
// @Success  201  {object}  Order
// @Router   /orders [post]
func (h *PublicHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	var req SubmitOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	items := make([]service.NewProductLink, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.NewProductLink{
			URL:      item.URL,
			Quantity: item.Quantity,
			Size:     item.Size,
			Color:    item.Color,
		})
	}

	order, err := h.orders.SubmitOrder(r.Context(), user.ID, items)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	ordersSubmitted.Inc()
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

func (h *PublicHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	orders, err := h.orders.ListUserOrders(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.WriteJSON(w, OrdersEntityToJSON(orders), http.StatusOK)
}

func (h *PublicHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		utils.WriteError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	order, err := h.orders.GetUserOrder(r.Context(), user.ID, orderID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// CancelOrder отмена собственного заказа, только из статуса PENDING.
// @Summary  Отменить заказ
// @Tags     orders
// @Param    order_id  path  string  true  "ID заказа"
// @Success  200  {object}  Order
// @Failure  409  {object}  utils.ErrorResponse "Заказ уже в работе"
// @Router   /orders/{order_id}/cancel [post]
func (h *PublicHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		utils.WriteError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	order, err := h.orders.CancelOrder(r.Context(), user.ID, orderID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	statusChanges.WithLabelValues(string(entities.StatusCancelled)).Inc()
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

func (h *PublicHandler) ListShops(w http.ResponseWriter, r *http.Request) {
	shops, err := h.catalog.ListShops(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	result := make([]Shop, 0, len(shops))
	for _, s := range shops {
		result = append(result, ShopEntityToJSON(s))
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *PublicHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	result := make([]ShopCategory, 0, len(categories))
	for _, c := range categories {
		result = append(result, CategoryEntityToJSON(c))
	}
	utils.WriteJSON(w, result, http.StatusOK)
}
