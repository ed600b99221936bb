package db

import (
	"context"
	"fmt"
)

// Schema statements are idempotent so the service can be pointed at an empty
// database. Geometry is stored in a single GEOMETRY column fixed to SRID 4326;
// child rows are removed with their parent (network owns maps, map owns
// features).
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS postgis`,

	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      VARCHAR(32) NOT NULL UNIQUE,
		password_hash VARCHAR(192) NOT NULL,
		is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS networks (
		id             BIGSERIAL PRIMARY KEY,
		name           VARCHAR(128) NOT NULL UNIQUE,
		owner_id       BIGINT NOT NULL REFERENCES users(id),
		latest_version INTEGER NOT NULL DEFAULT 1,
		public         BOOLEAN NOT NULL DEFAULT FALSE,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS maps (
		id         BIGSERIAL PRIMARY KEY,
		network_id BIGINT NOT NULL REFERENCES networks(id) ON DELETE CASCADE,
		version    INTEGER NOT NULL DEFAULT 1,
		type       VARCHAR(32) NOT NULL DEFAULT '',
		name       VARCHAR(128) NOT NULL DEFAULT '',
		crs        JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (network_id, version)
	)`,

	`CREATE TABLE IF NOT EXISTS features (
		id     BIGSERIAL PRIMARY KEY,
		map_id BIGINT NOT NULL REFERENCES maps(id) ON DELETE CASCADE,
		type   VARCHAR(32) NOT NULL DEFAULT '',
		props  JSONB NOT NULL DEFAULT '{}'::jsonb,
		geom   geometry(Geometry, 4326) NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS features_map_id_idx ON features (map_id)`,

	`CREATE INDEX IF NOT EXISTS maps_network_id_idx ON maps (network_id)`,
}

// EnsureSchema creates the tables and indexes the service needs. Safe to run
// on every startup.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}

	db.log.Info("database schema ensured")
	return nil
}
