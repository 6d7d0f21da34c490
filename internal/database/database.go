// Package database owns the Postgres connection pool of the roster store and
// the schema it runs against.
package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// applicationName tags pokeagent sessions in pg_stat_activity.
const applicationName = "pokeagent"

//go:embed schema.sql
var schemaSQL string

// DB holds the pool shared by the trainer and team member queries.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to databaseURL and pings once, so an unreachable or
// misconfigured database fails startup instead of the first tool call.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}
	if _, ok := poolCfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Schema returns the DDL applied by Migrate.
func Schema() string {
	return schemaSQL
}

// Migrate creates the trainers and team_members tables and their indexes.
// Every statement is idempotent, so it runs on each startup when AUTO_MIGRATE is set.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	slog.Info("roster schema is up to date")
	return nil
}

// Ping reports whether the roster database answers. Used by /health.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Pool returns the pool for the store's repository.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// Close closes the pool.
func (db *DB) Close() {
	db.pool.Close()
}
