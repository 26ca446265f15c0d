package http

import (
	"log/slog"
	"net/http"

	"github.com/cwrk-planet/forum-service/internal/domain"
	"github.com/cwrk-planet/forum-service/pkg/httputil"
)

// APIRoutes — GET /api: список доступных маршрутов.
func (h *Handler) APIRoutes(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]any{
		"routes": []string{
			"GET /api",
			"GET /api/rooms",
			"GET /api/room/{id}",
		},
	})
}

// APIRooms — GET /api/rooms: все комнаты, тот же RoomItem, что у страниц.
func (h *Handler) APIRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.rooms.ListRooms(r.Context())
	if err != nil {
		slog.Error("handler.apiRooms:", slog.Any("err", err))
		respondError(w, err)
		return
	}
	httputil.OK(w, toRoomItems(rooms))
}

// APIRoom — GET /api/room/{id}.
func (h *Handler) APIRoom(w http.ResponseWriter, r *http.Request) {
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
	httputil.OK(w, toRoomItem(room))
}
