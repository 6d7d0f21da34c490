// Package container wires the pokeagent services using go.uber.org/dig.
package container

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.uber.org/dig"

	specpkg "github.com/pokeagent/pokeagent/api"
	"github.com/pokeagent/pokeagent/internal/api"
	"github.com/pokeagent/pokeagent/internal/auth"
	"github.com/pokeagent/pokeagent/internal/cache"
	"github.com/pokeagent/pokeagent/internal/config"
	"github.com/pokeagent/pokeagent/internal/database"
	"github.com/pokeagent/pokeagent/internal/pokeapi"
	"github.com/pokeagent/pokeagent/internal/roster"
	"github.com/pokeagent/pokeagent/internal/store"
	"github.com/pokeagent/pokeagent/internal/tools"
)

// connectTimeout bounds database and Redis connection attempts at startup.
const connectTimeout = 10 * time.Second

// redisKeyPrefix namespaces cached upstream payloads.
const redisKeyPrefix = "pokeagent:"

// Container holds the resolved service singletons.
// Callers use the typed getters; they never need to import dig directly.
type Container struct {
	db       *database.DB
	cache    cache.Cache
	pokeapi  *pokeapi.Client
	roster   *roster.Service
	registry *tools.Registry
	router   http.Handler
}

func (c *Container) DB() *database.DB          { return c.db }
func (c *Container) PokeAPI() *pokeapi.Client  { return c.pokeapi }
func (c *Container) Roster() *roster.Service   { return c.roster }
func (c *Container) Registry() *tools.Registry { return c.registry }
func (c *Container) Router() http.Handler      { return c.router }

// New builds and wires every service from cfg. A failure to reach the
// database aborts construction.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	providers := []any{
		func() *config.Config { return cfg },
		newDatabase,
		newCache,
		newPokeAPIClient,
		newRepository,
		newConfirmer,
		newRosterService,
		newRegistry,
		newRouter,
	}
	for _, p := range providers {
		if err := d.Provide(p); err != nil {
			return nil, err
		}
	}

	var result *Container
	err := d.Invoke(func(
		db *database.DB,
		c cache.Cache,
		client *pokeapi.Client,
		svc *roster.Service,
		registry *tools.Registry,
		router http.Handler,
	) {
		result = &Container{
			db:       db,
			cache:    c,
			pokeapi:  client,
			roster:   svc,
			registry: registry,
			router:   router,
		}
	})
	if err != nil {
		return nil, fmt.Errorf("wiring services: %w", dig.RootCause(err))
	}
	return result, nil
}

// StartJanitor evicts expired entries of the in-memory cache until ctx is
// cancelled. It is a no-op for other caches.
func (c *Container) StartJanitor(ctx context.Context, interval time.Duration) {
	m, ok := c.cache.(*cache.Memory)
	if !ok {
		return
	}
	go m.Start(ctx, interval)
}

// Close releases the database pool and the cache connection.
func (c *Container) Close() {
	if closer, ok := c.cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("failed to close cache", "error", err)
		}
	}
	if c.db != nil {
		c.db.Close()
	}
}

// NewToolRegistry registers every tool. Nil services are allowed when the
// registry is only used to describe the tools.
func NewToolRegistry(loc *time.Location, svc tools.Roster, dex tools.Pokedex) (*tools.Registry, error) {
	r := tools.NewRegistry()
	if err := tools.RegisterRoster(r, svc); err != nil {
		return nil, fmt.Errorf("registering roster tools: %w", err)
	}
	if err := tools.RegisterPokedex(r, dex); err != nil {
		return nil, fmt.Errorf("registering pokedex tools: %w", err)
	}
	if err := tools.RegisterClock(r, loc, time.Now); err != nil {
		return nil, fmt.Errorf("registering clock tools: %w", err)
	}
	return r, nil
}

func newDatabase(cfg *config.Config) (*database.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating database: %w", err)
		}
		slog.Info("database schema applied")
	}
	return db, nil
}

func newCache(cfg *config.Config) (cache.Cache, error) {
	if cfg.RedisURL == "" {
		return cache.NewMemory(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	r, err := cache.DialRedis(ctx, cfg.RedisURL, redisKeyPrefix)
	if err != nil {
		return nil, err
	}
	slog.Info("using redis response cache")
	return r, nil
}

func newPokeAPIClient(cfg *config.Config, c cache.Cache) *pokeapi.Client {
	opts := []pokeapi.ClientOption{
		pokeapi.WithBaseURL(cfg.PokeAPIBaseURL),
		pokeapi.WithHTTPClient(&http.Client{Timeout: cfg.PokeAPITimeout}),
	}
	if cfg.PokeAPICacheTTL > 0 {
		opts = append(opts, pokeapi.WithCache(c, cfg.PokeAPICacheTTL))
	}
	return pokeapi.NewClient(opts...)
}

func newRepository(db *database.DB) store.Repository {
	return store.NewRepository(db.Pool())
}

func newConfirmer(cfg *config.Config) *auth.Confirmer {
	return auth.NewConfirmer(cfg.AdminPassword, cfg.AdminPasswordHash)
}

func newRosterService(repo store.Repository, client *pokeapi.Client, confirmer *auth.Confirmer) *roster.Service {
	return roster.NewService(repo, client, confirmer)
}

func newRegistry(cfg *config.Config, svc *roster.Service, client *pokeapi.Client) (*tools.Registry, error) {
	return NewToolRegistry(cfg.Location(), svc, client)
}

func newRouter(cfg *config.Config, db *database.DB, client *pokeapi.Client, registry *tools.Registry) http.Handler {
	return api.NewRouter(api.RouterDeps{
		DBPinger:       db,
		PokeAPIChecker: client,
		Tools:          registry,
		Version:        cfg.Version,
		OpenAPISpec:    specpkg.OpenAPISpec,
	})
}
