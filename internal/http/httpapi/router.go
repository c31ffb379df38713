package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"animalrescue/internal/http/handlers"
	"animalrescue/internal/middleware"
)

// Options tune the router middleware.
type Options struct {
	RateLimitPerMin int
	SecureCookies   bool
}

func NewRouter(app *handlers.App, logger zerolog.Logger, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Visitor(opts.SecureCookies),
		middleware.Logger(logger),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/media/*", app.Media)

	r.Get("/", app.Home)
	r.Post("/nav/toggle", app.NavToggle)

	r.Route("/donate", func(r chi.Router) {
		r.Get("/state", app.DonateState)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
			r.Post("/open", app.DonateOpen)
			r.Post("/amount", app.DonateAmount)
			r.Post("/submit", app.DonateSubmit)
			r.Post("/retry", app.DonateRetry)
			r.Post("/close", app.DonateClose)
		})
	})

	return r
}
