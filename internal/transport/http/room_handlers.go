package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cwrk-planet/forum-service/internal/domain"
	"github.com/cwrk-planet/forum-service/pkg/httputil"
)

// Home — GET /?q=...
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	page, err := h.rooms.Search(r.Context(), q)
	if err != nil {
		slog.Error("handler.home:", slog.Any("err", err))
		respondError(w, err)
		return
	}

	httputil.OK(w, map[string]any{
		"rooms":     toRoomItems(page.Rooms),
		"roomCount": len(page.Rooms),
		"topics":    toTopicItems(page.Topics),
		"feed":      toMessageItems(page.Feed),
	})
}

// RoomPage — GET /room/{id}
func (h *Handler) RoomPage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam[domain.RoomID](r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid room id", nil)
		return
	}

	page, err := h.rooms.GetRoomPage(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.OK(w, map[string]any{
		"room":         toRoomItem(page.Room),
		"messages":     toMessageItems(page.Messages),
		"participants": toParticipantItems(page.Participants),
	})
}

// PostMessage — POST /room/{id}: форма с полем body; автор попадает
// в участники.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam[domain.RoomID](r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid room id", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid form", nil)
		return
	}

	u := mustUser(r)
	if _, err := h.messages.Post(r.Context(), u.ID, id, r.PostFormValue("body")); err != nil {
		slog.Error("handler.postMessage:", slog.Any("err", err))
		respondError(w, err)
		return
	}

	http.Redirect(w, r, "/room/"+strconv.FormatInt(int64(id), 10), http.StatusSeeOther)
}

// CreateRoomForm — GET /room/create: топики для формы.
func (h *Handler) CreateRoomForm(w http.ResponseWriter, r *http.Request) {
	topics, err := h.rooms.ListTopics(r.Context(), "")
	if err != nil {
		slog.Error("handler.createRoomForm:", slog.Any("err", err))
		respondError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"topics": toTopicItems(topics)})
}

// CreateRoom — POST /room/create: topic/name/description.
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid form", nil)
		return
	}

	u := mustUser(r)
	_, err := h.rooms.CreateRoom(r.Context(), u.ID,
		r.PostFormValue("topic"), r.PostFormValue("name"), r.PostFormValue("description"))
	if err != nil {
		slog.Error("handler.createRoom:", slog.Any("err", err))
		respondError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// UpdateRoomForm — GET /room/update/{id}: префилл только для хоста.
func (h *Handler) UpdateRoomForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam[domain.RoomID](r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid room id", nil)
		return
	}

	room, err := h.rooms.GetRoom(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if !room.IsHostedBy(mustUser(r).ID) {
		respondError(w, domain.ErrNotRoomHost)
		return
	}

	topics, err := h.rooms.ListTopics(r.Context(), "")
	if err != nil {
		slog.Error("handler.updateRoomForm:", slog.Any("err", err))
		respondError(w, err)
		return
	}

	httputil.OK(w, map[string]any{
		"room":   toRoomItem(room),
		"topics": toTopicItems(topics),
	})
}

// UpdateRoom — POST /room/update/{id}: только хост.
func (h *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := idParam[domain.RoomID](r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid room id", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid form", nil)
		return
	}

	u := mustUser(r)
	_, err = h.rooms.UpdateRoom(r.Context(), u.ID, id,
		r.PostFormValue("topic"), r.PostFormValue("name"), r.PostFormValue("description"))
	if err != nil {
		slog.Error("handler.updateRoom:", slog.Any("err", err))
		respondError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteRoomForm — GET /room/delete/{id}: данные для подтверждения.
func (h *Handler) DeleteRoomForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam[domain.RoomID](r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid room id", nil)
		return
	}

	room, err := h.rooms.GetRoom(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.OK(w, map[string]any{"room": toRoomItem(room)})
}

// DeleteRoom — POST /room/delete/{id}: только хост, каскад по FK.
func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := idParam[domain.RoomID](r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid room id", nil)
		return
	}

	u := mustUser(r)
	if err := h.rooms.DeleteRoom(r.Context(), u.ID, id); err != nil {
		slog.Error("handler.deleteRoom:", slog.Any("err", err))
		respondError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteMessage — POST /room/delete-message/{id}: только автор.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam[domain.MessageID](r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid message id", nil)
		return
	}

	u := mustUser(r)
	if _, err := h.messages.Delete(r.Context(), u.ID, id); err != nil {
		slog.Error("handler.deleteMessage:", slog.Any("err", err))
		respondError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Topics — GET /topics?q=...
func (h *Handler) Topics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.rooms.ListTopics(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		slog.Error("handler.topics:", slog.Any("err", err))
		respondError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"topics": toTopicItems(topics)})
}

// Activity — GET /activity: все сообщения, новые сверху.
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	feed, err := h.messages.Activity(r.Context())
	if err != nil {
		slog.Error("handler.activity:", slog.Any("err", err))
		respondError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"messages": toMessageItems(feed)})
}
