package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pako24/pako24-backend/internal/entities"
	"github.com/pako24/pako24-backend/pkg/utils"
)

var errorStatuses = map[error]int{
	entities.ErrOrderNotFound:       http.StatusNotFound,
	entities.ErrProductLinkNotFound: http.StatusNotFound,
	entities.ErrUserNotFound:        http.StatusNotFound,
	entities.ErrAdminNotFound:       http.StatusNotFound,
	entities.ErrShopNotFound:        http.StatusNotFound,
	entities.ErrCategoryNotFound:    http.StatusNotFound,
	entities.ErrConfigNotFound:      http.StatusNotFound,
	entities.ErrEmailTaken:          http.StatusConflict,
	entities.ErrPhoneTaken:          http.StatusConflict,
	entities.ErrCategoryNameTaken:   http.StatusConflict,
	entities.ErrOrderNotCancellable: http.StatusConflict,
	entities.ErrInvalidCredentials:  http.StatusUnauthorized,
	entities.ErrUserBlocked:         http.StatusForbidden,
	entities.ErrForbidden:           http.StatusForbidden,
	entities.ErrInvalidStatus:       http.StatusBadRequest,
}

// writeError переводит доменные ошибки в HTTP-статусы,
// всё неожиданное логируется и прячется за 500.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	for sentinel, code := range errorStatuses {
		if errors.Is(err, sentinel) {
			utils.WriteError(w, sentinel.Error(), code)
			return
		}
	}

	logger.Error("request failed", slog.Any("error", err))
	utils.WriteError(w, "internal server error", http.StatusInternalServerError)
}
