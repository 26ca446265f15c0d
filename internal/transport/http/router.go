package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cwrk-planet/forum-service/pkg/httputil"
)

// Pinger — health-проверка хранилища (pgxpool.Pool подходит как есть).
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Handler *Handler
	DB      Pinger
}

func NewRouter(d Deps) http.Handler {
	h := d.Handler

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(httputil.MiddlewareRequestID)
	r.Use(httputil.MiddlewareLogging)
	r.Use(h.SessionMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if d.DB != nil {
			if err := d.DB.Ping(r.Context()); err != nil {
				httputil.Error(w, http.StatusServiceUnavailable, "db unreachable", nil)
				return
			}
		}
		httputil.OK(w, map[string]string{"status": "ok"})
	})

	r.Get("/", h.Home)
	r.Get("/topics", h.Topics)
	r.Get("/activity", h.Activity)

	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)
	r.Get("/register", h.RegisterForm)
	r.Post("/register", h.Register)

	r.Get("/user/{id}", h.Profile)

	r.Route("/room", func(rt chi.Router) {
		rt.Get("/{id}", h.RoomPage)

		rt.Group(func(rt chi.Router) {
			rt.Use(h.RequireAuth)

			rt.Post("/{id}", h.PostMessage)
			rt.Get("/create", h.CreateRoomForm)
			rt.Post("/create", h.CreateRoom)
			rt.Get("/update/{id}", h.UpdateRoomForm)
			rt.Post("/update/{id}", h.UpdateRoom)
			rt.Get("/delete/{id}", h.DeleteRoomForm)
			rt.Post("/delete/{id}", h.DeleteRoom)
			rt.Post("/delete-message/{id}", h.DeleteMessage)
		})
	})

	r.Group(func(rt chi.Router) {
		rt.Use(h.RequireAuth)

		rt.Get("/user/update", h.UpdateProfileForm)
		rt.Post("/user/update", h.UpdateProfile)
	})

	// Read-only JSON API под отдельной CORS-политикой.
	r.Route("/api", func(rt chi.Router) {
		rt.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))

		rt.Get("/", h.APIRoutes)
		rt.Get("/rooms", h.APIRooms)
		rt.Get("/room/{id}", h.APIRoom)
	})

	return r
}
