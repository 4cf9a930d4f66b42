package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/graphauth/graphauth/internal/metrics"
	"github.com/graphauth/graphauth/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health  HealthHandler
	GraphQL http.Handler

	CORSOrigin string
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.GraphQL == nil {
		return nil, fmt.Errorf("nil GraphQL handler")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(deps.CORSOrigin))

	r.Get("/healthz", deps.Health.Healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Method(http.MethodPost, "/graphql", deps.GraphQL)

	return r, nil
}
