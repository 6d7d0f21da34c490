package api

import (
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"

	"github.com/pokeagent/pokeagent/internal/api/handler"
	"github.com/pokeagent/pokeagent/internal/api/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DBPinger       handler.DBPinger
	PokeAPIChecker handler.PokeAPIChecker
	Tools          handler.ToolExecutor
	Version        string
	OpenAPISpec    []byte
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.PokeAPIChecker, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	if len(deps.OpenAPISpec) > 0 {
		openapiHandler := handler.NewOpenAPIHandler(deps.OpenAPISpec)
		r.Get("/openapi.json", openapiHandler.JSON)
		r.Get("/openapi.yaml", openapiHandler.YAML)
	}

	if deps.Tools != nil {
		toolHandler := handler.NewToolHandler(deps.Tools)
		r.Route("/tools", func(r chi.Router) {
			r.Get("/", toolHandler.List)
			r.Get("/{name}", toolHandler.Get)
			r.Post("/{name}", toolHandler.Call)
		})
	}

	return r
}
