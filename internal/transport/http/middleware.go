package http

import (
	"context"
	"net/http"

	"github.com/cwrk-planet/forum-service/internal/domain"
)

type ctxKey string

const ctxKeyUser ctxKey = "current_user"

// SessionMiddleware резолвит cookie в пользователя и кладет его в контекст.
// Отсутствующая или протухшая сессия — не ошибка: запрос идет дальше
// анонимным, решение принимает RequireAuth на защищенных маршрутах.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(h.cookieName)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		u, err := h.auth.UserFromSessionToken(r.Context(), c.Value)
		if err != nil {
			h.clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), u)))
	})
}

// RequireAuth — аноним уходит на /login, как login_required.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

// UserFromContext — текущий пользователь, если сессия валидна.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(*domain.User)
	return u, ok
}

// mustUser — только после RequireAuth.
func mustUser(r *http.Request) *domain.User {
	u, _ := UserFromContext(r.Context())
	return u
}
