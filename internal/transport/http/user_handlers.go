package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cwrk-planet/forum-service/internal/domain"
	"github.com/cwrk-planet/forum-service/pkg/httputil"
)

// Profile — GET /user/{id}: публичная страница пользователя.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := idParam[domain.UserID](r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}

	page, err := h.users.Profile(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.OK(w, map[string]any{
		"user":     toUserItem(page.User),
		"rooms":    toRoomItems(page.Rooms),
		"messages": toMessageItems(page.Messages),
		"topics":   toTopicItems(page.Topics),
	})
}

// UpdateProfileForm — GET /user/update: префилл своего профиля.
func (h *Handler) UpdateProfileForm(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]any{"user": toUserItem(mustUser(r))})
}

// UpdateProfile — POST /user/update: меняет только пользователя сессии,
// id из формы игнорируется.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid form", nil)
		return
	}

	var email *string
	if v := r.PostFormValue("email"); v != "" {
		email = &v
	}

	u := mustUser(r)
	updated, err := h.users.UpdateProfile(r.Context(), u.ID, r.PostFormValue("username"), email)
	if err != nil {
		slog.Error("handler.updateProfile:", slog.Any("err", err))
		respondError(w, err)
		return
	}

	http.Redirect(w, r, "/user/"+strconv.FormatInt(int64(updated.ID), 10), http.StatusSeeOther)
}
