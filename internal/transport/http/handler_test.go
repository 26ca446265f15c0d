package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cwrk-planet/forum-service/internal/repository/memory"
	"github.com/cwrk-planet/forum-service/internal/security"
	"github.com/cwrk-planet/forum-service/internal/service"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	st := memory.NewStore()
	clock := time.Now

	auth := service.NewAuthService(st.Users(), st.Sessions(), time.Hour,
		security.BcryptConfig{Cost: 4, MinLength: 6}, clock)
	rooms := service.NewRoomService(st.Rooms(), st.Topics(), st.Participants(), st.Messages(), clock)
	msgs := service.NewMessageService(st.Messages(), st.Rooms(), st.Participants(), clock)
	users := service.NewUserService(st.Users(), st.Rooms(), st.Topics(), st.Messages(), clock)

	h := NewHandler(auth, rooms, msgs, users, "forum_session", false)
	return NewRouter(Deps{Handler: h})
}

func postForm(t *testing.T, router http.Handler, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, router http.Handler, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// register регистрирует пользователя и возвращает его сессионную cookie.
func register(t *testing.T, router http.Handler, username string) *http.Cookie {
	t.Helper()
	rec := postForm(t, router, "/register", url.Values{
		"username":  {username},
		"password1": {"sekret123"},
		"password2": {"sekret123"},
	}, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("register %s: status %d, body %s", username, rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "forum_session" && c.Value != "" {
			return c
		}
	}
	t.Fatalf("register %s: no session cookie set", username)
	return nil
}

func createRoom(t *testing.T, router http.Handler, cookie *http.Cookie, topic, name, desc string) {
	t.Helper()
	rec := postForm(t, router, "/room/create", url.Values{
		"topic":       {topic},
		"name":        {name},
		"description": {desc},
	}, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create room %s: status %d, body %s", name, rec.Code, rec.Body.String())
	}
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return payload.Data
}

func TestRegisterLoginFlow(t *testing.T) {
	router := newTestRouter(t)

	cookie := register(t, router, "Alice")

	// username сохранён в нижнем регистре
	rec := get(t, router, "/user/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: status %d", rec.Code)
	}
	data := decodeData(t, rec)
	user := data["user"].(map[string]any)
	if user["username"] != "alice" {
		t.Fatalf("username = %v, want alice", user["username"])
	}

	// cookie открывает защищенные маршруты
	rec = get(t, router, "/room/create", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("create form with cookie: status %d", rec.Code)
	}

	// неверный пароль и неизвестный пользователь дают одинаковый 401
	recWrong := postForm(t, router, "/login", url.Values{
		"username": {"alice"}, "password": {"wrongpass"},
	}, nil)
	recUnknown := postForm(t, router, "/login", url.Values{
		"username": {"ghost"}, "password": {"sekret123"},
	}, nil)
	if recWrong.Code != http.StatusUnauthorized || recUnknown.Code != http.StatusUnauthorized {
		t.Fatalf("login failures: %d и %d, want 401 both", recWrong.Code, recUnknown.Code)
	}
	if recWrong.Body.String() != recUnknown.Body.String() {
		t.Fatal("login failure responses differ, username existence leaks")
	}
}

func TestRequireAuth_RedirectsToLogin(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/room/create", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("location = %q, want /login", loc)
	}
}

func TestLogout_ExpiresCookieAndSession(t *testing.T) {
	router := newTestRouter(t)
	cookie := register(t, router, "bob")

	rec := get(t, router, "/logout", cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("logout: status %d", rec.Code)
	}
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "forum_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("logout did not expire the cookie")
	}

	// старый токен больше не работает
	rec = get(t, router, "/room/create", cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("after logout: status %d, want redirect to /login", rec.Code)
	}
}

func TestPostMessage_AddsParticipant(t *testing.T) {
	router := newTestRouter(t)
	host := register(t, router, "host")
	guest := register(t, router, "guest")
	createRoom(t, router, host, "Go", "chat", "")

	rec := postForm(t, router, "/room/1", url.Values{"body": {"hello"}}, guest)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("post message: status %d, body %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/room/1" {
		t.Fatalf("location = %q, want /room/1", loc)
	}

	data := decodeData(t, get(t, router, "/room/1", nil))
	parts := data["participants"].([]any)
	if len(parts) != 1 {
		t.Fatalf("got %d participants, want 1", len(parts))
	}
	msgs := data["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
}

func TestUpdateRoom_ForbiddenForStranger(t *testing.T) {
	router := newTestRouter(t)
	host := register(t, router, "host")
	other := register(t, router, "other")
	createRoom(t, router, host, "Go", "mine", "")

	// не-хост получает 403 уже на GET формы
	if rec := get(t, router, "/room/update/1", other); rec.Code != http.StatusForbidden {
		t.Fatalf("stranger form: status %d, want 403", rec.Code)
	}
	rec := postForm(t, router, "/room/update/1", url.Values{
		"topic": {"Go"}, "name": {"hacked"},
	}, other)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("stranger update: status %d, want 403", rec.Code)
	}

	rec = postForm(t, router, "/room/update/1", url.Values{
		"topic": {"Golang"}, "name": {"renamed"},
	}, host)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("host update: status %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteRoom_CascadeVisibleViaAPI(t *testing.T) {
	router := newTestRouter(t)
	host := register(t, router, "host")
	createRoom(t, router, host, "Go", "doomed", "")
	postForm(t, router, "/room/1", url.Values{"body": {"bye"}}, host)

	rec := postForm(t, router, "/room/delete/1", nil, host)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("delete: status %d, body %s", rec.Code, rec.Body.String())
	}

	if rec := get(t, router, "/api/room/1", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("api after delete: status %d, want 404", rec.Code)
	}
	data := decodeData(t, get(t, router, "/activity", nil))
	if msgs := data["messages"].([]any); len(msgs) != 0 {
		t.Fatalf("messages survived room delete: %d", len(msgs))
	}
}

func TestHome_SearchFilters(t *testing.T) {
	router := newTestRouter(t)
	host := register(t, router, "host")
	createRoom(t, router, host, "Python", "snakes", "")
	createRoom(t, router, host, "Go", "gophers", "")

	data := decodeData(t, get(t, router, "/?q=pyth", nil))
	rooms := data["rooms"].([]any)
	if len(rooms) != 1 {
		t.Fatalf("got %d rooms, want 1", len(rooms))
	}
	if name := rooms[0].(map[string]any)["name"]; name != "snakes" {
		t.Fatalf("room = %v, want snakes", name)
	}

	data = decodeData(t, get(t, router, "/", nil))
	if rooms := data["rooms"].([]any); len(rooms) != 2 {
		t.Fatalf("unfiltered: got %d rooms, want 2", len(rooms))
	}
}

func TestAPI_RoomsList(t *testing.T) {
	router := newTestRouter(t)
	host := register(t, router, "host")
	createRoom(t, router, host, "Go", "one", "")
	createRoom(t, router, host, "Go", "two", "")

	rec := get(t, router, "/api/rooms", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("api rooms: status %d", rec.Code)
	}
	var payload struct {
		Data []RoomItem `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Data) != 2 {
		t.Fatalf("got %d rooms, want 2", len(payload.Data))
	}
	if payload.Data[0].HostName != "host" || payload.Data[0].TopicName != "Go" {
		t.Fatalf("room item not decorated: %+v", payload.Data[0])
	}
}

func TestUpdateProfile_ChangesOnlySessionUser(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "victim")
	attacker := register(t, router, "attacker")

	// id в форме игнорируется: меняется только пользователь сессии
	rec := postForm(t, router, "/user/update", url.Values{
		"id": {"1"}, "username": {"Renamed"},
	}, attacker)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("update: status %d, body %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/user/2" {
		t.Fatalf("location = %q, want /user/2", loc)
	}

	victim := decodeData(t, get(t, router, "/user/1", nil))["user"].(map[string]any)
	if victim["username"] != "victim" {
		t.Fatalf("victim renamed to %v", victim["username"])
	}
	renamed := decodeData(t, get(t, router, "/user/2", nil))["user"].(map[string]any)
	if renamed["username"] != "renamed" {
		t.Fatalf("attacker username = %v, want renamed", renamed["username"])
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: status %d", rec.Code)
	}
}
