package http

import (
	"log/slog"
	"net/http"
	"net/netip"

	"github.com/cwrk-planet/forum-service/internal/service"
	"github.com/cwrk-planet/forum-service/pkg/httputil"
)

// LoginForm — GET /login. Залогиненного сразу уводим на главную.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := UserFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	httputil.OK(w, map[string]any{"fields": []string{"username", "password"}})
}

// Login — POST /login: форма username+password.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid form", nil)
		return
	}

	res, err := h.auth.Login(r.Context(),
		r.PostFormValue("username"), r.PostFormValue("password"), loginMeta(r))
	if err != nil {
		respondError(w, err)
		return
	}

	h.setSessionCookie(w, res.SessionToken, h.auth.SessionTTL())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout — GET /logout: сессия удаляется, cookie гасится безусловно.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(h.cookieName); err == nil && c.Value != "" {
		if err := h.auth.Logout(r.Context(), c.Value); err != nil {
			slog.Error("handler.logout:", slog.Any("err", err))
		}
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// RegisterForm — GET /register.
func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := UserFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	httputil.OK(w, map[string]any{"fields": []string{"username", "password1", "password2"}})
}

// Register — POST /register: username + password1/password2.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid form", nil)
		return
	}

	res, err := h.auth.Register(r.Context(),
		r.PostFormValue("username"),
		r.PostFormValue("password1"),
		r.PostFormValue("password2"),
		loginMeta(r))
	if err != nil {
		respondError(w, err)
		return
	}

	h.setSessionCookie(w, res.SessionToken, h.auth.SessionTTL())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// loginMeta собирает user-agent и IP для записи сессии.
// RemoteAddr уже переписан middleware.RealIP.
func loginMeta(r *http.Request) *service.LoginMeta {
	meta := &service.LoginMeta{}
	if ua := r.UserAgent(); ua != "" {
		meta.UserAgent = &ua
	}
	if ap, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
		addr := ap.Addr()
		meta.IP = &addr
	} else if addr, err := netip.ParseAddr(r.RemoteAddr); err == nil {
		meta.IP = &addr
	}
	return meta
}
