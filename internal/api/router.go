package api

import (
	"log/slog"
	"net/http"
	"time"

	"djazair-backend/internal/appointments"
	"djazair-backend/internal/auth"
	"djazair-backend/internal/gallery"
	"djazair-backend/internal/handlers"
	"djazair-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

type Deps struct {
	Log          *slog.Logger
	CORSOrigins  []string
	TrustProxy   bool
	Limiter      middleware.Limiter
	Tokens       *auth.Manager
	Session      *handlers.Server
	Gallery      *gallery.Handler
	Appointments *appointments.Handler
}

// NewRouter mounts every endpoint. Reads of the gallery and booking
// submissions are public; everything that changes or lists private data
// sits behind the session cookie. Client addresses come from the socket
// unless TrustProxy is set, in which case X-Forwarded-For / X-Real-IP win;
// only enable it behind a proxy that overwrites those headers.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	if d.TrustProxy {
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Log))
	r.Use(middleware.CORS(d.CORSOrigins))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	r.Get("/healthz", d.Session.Health)

	r.Route("/api", func(api chi.Router) {
		if d.Limiter != nil {
			api.Use(middleware.RateLimit(d.Limiter, d.Log))
		}
		api.Use(middleware.BodyLimit(middleware.MaxJSONBodyBytes, middleware.MaxMultipartBodyBytes))

		api.Post("/login", d.Session.Login)
		api.Post("/logout", d.Session.Logout)
		api.Get("/me", d.Session.Me)

		api.Get("/gallery", d.Gallery.PublicList)
		api.Get("/image/{id}", d.Gallery.Image)
		api.Post("/appointments", d.Appointments.PublicCreate)

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.AdminAuth(d.Tokens))
			protected.Post("/gallery", d.Gallery.AdminUpload)
			protected.Patch("/gallery", d.Gallery.AdminUpdate)
			protected.Delete("/gallery", d.Gallery.AdminDelete)

			protected.Get("/appointments", d.Appointments.AdminList)
			protected.Get("/appointments/export", d.Appointments.AdminExport)
			protected.Patch("/appointments/{id}", d.Appointments.AdminUpdateStatus)
		})
	})

	return r
}
