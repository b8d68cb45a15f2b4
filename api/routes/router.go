package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/angelmondragon/crmgraphql-backend/api/controllers"
	"github.com/angelmondragon/crmgraphql-backend/api/middleware"
	"github.com/angelmondragon/crmgraphql-backend/pkg/config"
	"github.com/angelmondragon/crmgraphql-backend/pkg/db"
	"github.com/angelmondragon/crmgraphql-backend/pkg/logger"
)

// NewRouter assembles the HTTP surface: health probes plus the GraphQL
// endpoint behind the middleware stack.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	schema *graphql.Schema,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Post("/graphql", (&relay.Handler{Schema: schema}).ServeHTTP)
	})

	return r
}
