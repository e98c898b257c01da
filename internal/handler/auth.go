package handler

import (
	"context"
	"net/http"

	"github.com/pako24/pako24-backend/internal/entities"
	"github.com/pako24/pako24-backend/pkg/utils"

	"github.com/google/uuid"
)

const (
	userCookie  = "pako24_user"
	adminCookie = "pako24_admin"
)

type userKey struct{}
type adminKey struct{}

// SessionStore проверяет сессионные куки прямым поиском по ID.
type SessionStore interface {
	GetUser(ctx context.Context, userID uuid.UUID) (entities.User, error)
	GetAdmin(ctx context.Context, adminID uuid.UUID) (entities.Admin, error)
}

func UserFromContext(ctx context.Context) (entities.User, bool) {
	u, ok := ctx.Value(userKey{}).(entities.User)
	return u, ok
}

func AdminFromContext(ctx context.Context) (entities.Admin, bool) {
	a, ok := ctx.Value(adminKey{}).(entities.Admin)
	return a, ok
}

// UserAuth пускает только авторизованных и не заблокированных пользователей.
func UserAuth(store SessionStore) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := sessionID(r, userCookie)
			if !ok {
				utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := store.GetUser(r.Context(), userID)
			if err != nil {
				utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if user.IsBlocked {
				utils.WriteError(w, "user is blocked", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminAuth пускает админов с ролью не ниже floor.
func AdminAuth(store SessionStore, floor entities.AdminRole) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			adminID, ok := sessionID(r, adminCookie)
			if !ok {
				utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			admin, err := store.GetAdmin(r.Context(), adminID)
			if err != nil {
				utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !admin.Role.AtLeast(floor) {
				utils.WriteError(w, "forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), adminKey{}, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionID(r *http.Request, name string) (uuid.UUID, bool) {
	cookie, err := r.Cookie(name)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func setSessionCookie(w http.ResponseWriter, name string, id uuid.UUID) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
