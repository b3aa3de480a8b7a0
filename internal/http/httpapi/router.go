package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"markova/internal/http/handlers"
	"markova/internal/i18n"
	"markova/internal/metrics"
	"markova/internal/middleware"
)

// NewRouter wires every route. lookup may be nil when no GeoIP database is configured.
func NewRouter(app *handlers.App, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Recover(app.Logger),
		middleware.Logger(app.Logger),
		middleware.Metrics,
		middleware.CORS(app.Config.CORSAllowedOrigins),
		middleware.I18N(i18n.English, lookup),
	)

	r.Get("/v1/healthz", app.Health)
	r.Handle("/metrics", metrics.Handler())
	if app.Config.StoragePath != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(app.Config.StoragePath))))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(app.Config.JWTSecret))

		r.Get("/v1/me", app.Me)

		r.Route("/v1/brand-kits", func(r chi.Router) {
			r.Get("/", app.ListBrandKits)
			r.Post("/", app.CreateBrandKit)
			r.Get("/{id}", app.GetBrandKit)
			r.Put("/{id}", app.UpdateBrandKit)
			r.Delete("/{id}", app.DeleteBrandKit)
		})

		r.Route("/v1/campaigns", func(r chi.Router) {
			r.Post("/generate", app.GenerateCampaign)
			r.Get("/", app.ListCampaigns)
			r.Get("/{id}", app.GetCampaign)
			r.Put("/{id}", app.UpdateCampaign)
			r.Delete("/{id}", app.DeleteCampaign)
			r.Put("/{id}/posts/{post_id}", app.UpdateCampaignPost)
			r.Get("/{id}/export", app.ExportCampaign)
		})

		r.Post("/v1/images/generate", app.GenerateImage)

		r.Route("/v1/videos", func(r chi.Router) {
			r.Post("/", app.StartVideo)
			r.Get("/", app.ListVideos)
			r.Get("/{job_id}", app.VideoStatus)
			r.Delete("/{job_id}", app.CancelVideo)
		})

		r.Route("/v1/strategies", func(r chi.Router) {
			r.Post("/", app.GenerateStrategy)
			r.Get("/", app.ListStrategies)
			r.Get("/{id}", app.GetStrategy)
			r.Delete("/{id}", app.DeleteStrategy)
		})

		r.Route("/v1/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(app.UserRole))
			r.Get("/users", app.AdminListUsers)
			r.Post("/users", app.AdminCreateUser)
			r.Put("/users/{id}", app.AdminUpdateUser)
			r.Delete("/users/{id}", app.AdminDeleteUser)
			r.Get("/plans", app.AdminListPlans)
			r.Post("/plans", app.AdminCreatePlan)
			r.Put("/plans/{id}", app.AdminUpdatePlan)
			r.Delete("/plans/{id}", app.AdminDeletePlan)
		})
	})

	return r
}
