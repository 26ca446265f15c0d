package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cwrk-planet/forum-service/internal/domain"
	"github.com/cwrk-planet/forum-service/internal/repository"
	"github.com/cwrk-planet/forum-service/internal/service"
	"github.com/cwrk-planet/forum-service/pkg/httputil"
)

type Handler struct {
	auth     *service.AuthService
	rooms    *service.RoomService
	messages *service.MessageService
	users    *service.UserService

	cookieName   string
	cookieSecure bool
}

func NewHandler(
	auth *service.AuthService,
	rooms *service.RoomService,
	messages *service.MessageService,
	users *service.UserService,
	cookieName string,
	cookieSecure bool,
) *Handler {
	return &Handler{
		auth:         auth,
		rooms:        rooms,
		messages:     messages,
		users:        users,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func idParam[T ~int64](r *http.Request) (T, error) {
	raw := chi.URLParam(r, "id")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid id")
	}
	return T(n), nil
}

// respondError переводит доменные ошибки в HTTP-статусы. Единственное
// место, где сервисные ошибки становятся кодами ответов.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrMessageNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTopicNotFound):
		httputil.Error(w, http.StatusNotFound, err.Error(), nil)

	case errors.Is(err, domain.ErrNotRoomHost),
		errors.Is(err, domain.ErrNotMessageAuthor):
		httputil.Error(w, http.StatusForbidden, err.Error(), nil)

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrSessionExpired):
		httputil.Error(w, http.StatusUnauthorized, err.Error(), nil)

	case errors.Is(err, domain.ErrEmptyRoomName),
		errors.Is(err, domain.ErrEmptyTopicName),
		errors.Is(err, domain.ErrEmptyMessageBody),
		errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordMismatch):
		httputil.Error(w, http.StatusBadRequest, err.Error(), nil)

	case errors.Is(err, repository.ErrAlreadyExists):
		httputil.Error(w, http.StatusConflict, "already exists", nil)

	case errors.Is(err, repository.ErrNotFound):
		httputil.Error(w, http.StatusNotFound, "not found", nil)

	default:
		httputil.Error(w, http.StatusInternalServerError, "internal error", nil)
	}
}
