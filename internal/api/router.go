package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/starwars-blog/api/internal/api/handlers"
	mw "github.com/starwars-blog/api/internal/api/middleware"
	"github.com/starwars-blog/api/internal/models"

	// registers the generated OpenAPI document served under /docs
	_ "github.com/starwars-blog/api/docs"
)

type Dependencies struct {
	UsersHandler     *handlers.UsersHandler
	PeopleHandler    *handlers.CatalogHandler[models.People]
	PlanetsHandler   *handlers.CatalogHandler[models.Planet]
	FavoritesHandler *handlers.FavoritesHandler
	HealthHandler    *handlers.HealthHandler

	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	TrustedProxies []string
	MetricsEnabled bool
}

// {id} only matches digits; anything else falls through to NotFound.
const idParam = "/{id:[0-9]+}"

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	if dep.MetricsEnabled {
		r.Use(mw.Metrics)
	}
	r.Use(mw.CORS(dep.AllowedOrigins))
	r.Use(mw.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst, dep.TrustedProxies))
	r.Use(chimid.StripSlashes)
	r.Use(chimid.Compress(5))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	hh := dep.HealthHandler
	if hh == nil {
		hh = handlers.NewHealthHandler(nil)
	}
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	if dep.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/user", func(ur chi.Router) {
		ur.Get("/", dep.UsersHandler.List)
		ur.Post("/", dep.UsersHandler.Create)
		ur.Get("/favorites", dep.UsersHandler.Favorites)
		ur.Get(idParam, dep.UsersHandler.Get)
		ur.Delete(idParam, dep.UsersHandler.Delete)
	})

	r.Route("/people", func(pr chi.Router) {
		pr.Get("/", dep.PeopleHandler.List)
		pr.Post("/", dep.PeopleHandler.Create)
		pr.Get(idParam, dep.PeopleHandler.Get)
		pr.Delete(idParam, dep.PeopleHandler.Delete)
	})

	r.Route("/planets", func(pr chi.Router) {
		pr.Get("/", dep.PlanetsHandler.List)
		pr.Post("/", dep.PlanetsHandler.Create)
		pr.Get(idParam, dep.PlanetsHandler.Get)
		pr.Delete(idParam, dep.PlanetsHandler.Delete)
	})

	r.Route("/favorites", func(fr chi.Router) {
		fr.Get("/", dep.FavoritesHandler.List)
		fr.Post("/", dep.FavoritesHandler.Create)
	})

	r.Get("/", handlers.Sitemap(r))

	return r
}
