package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gridworks/roadnet/common/apperr"
	"github.com/gridworks/roadnet/common/db"
	"github.com/gridworks/roadnet/common/geo"
	"github.com/gridworks/roadnet/common/models"
)

// NetworkRepository owns the network/map/feature entity graph. A network is
// the aggregate root: maps and features are only ever written through it,
// and every write runs in a single transaction.
type NetworkRepository struct {
	db *db.DB
}

// NewNetworkRepository creates a new network repository
func NewNetworkRepository(db *db.DB) *NetworkRepository {
	return &NetworkRepository{db: db}
}

const pgUniqueViolation = "23505"

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraint
}

// Create inserts a network at version 1 together with its first map and all
// of its features, atomically. A name collision — including one that loses a
// race past the pre-check — surfaces as a duplicate-name error.
func (r *NetworkRepository) Create(ctx context.Context, name string, ownerID int64, public bool, snap *geo.Snapshot) (*models.Network, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer tx.Rollback(ctx)

	network := &models.Network{
		Name:          name,
		OwnerID:       ownerID,
		LatestVersion: 1,
		Public:        public,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO networks (name, owner_id, latest_version, public)
		VALUES ($1, $2, 1, $3)
		RETURNING id, created_at, updated_at
	`, name, ownerID, public).Scan(&network.ID, &network.CreatedAt, &network.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "networks_name_key") {
			return nil, apperr.DuplicateName("network '%s' already exists", name)
		}
		return nil, apperr.Storage(err)
	}

	if _, err := insertMap(ctx, tx, network.ID, 1, snap); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Storage(err)
	}

	return network, nil
}

// AppendVersion bumps the network's latest version by exactly one and
// inserts the new map with its features, all in one transaction. The row
// lock on the network serializes concurrent appends: two racing appends can
// never both observe the same latest version.
func (r *NetworkRepository) AppendVersion(ctx context.Context, networkID int64, snap *geo.Snapshot) (*models.Network, *models.Map, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, apperr.Storage(err)
	}
	defer tx.Rollback(ctx)

	network := &models.Network{ID: networkID}

	err = tx.QueryRow(ctx, `
		SELECT name, owner_id, latest_version, public, created_at
		FROM networks
		WHERE id = $1
		FOR UPDATE
	`, networkID).Scan(&network.Name, &network.OwnerID, &network.LatestVersion, &network.Public, &network.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, apperr.NotFound("network id=%d not found", networkID)
	}
	if err != nil {
		return nil, nil, apperr.Storage(err)
	}

	next := network.LatestVersion + 1

	err = tx.QueryRow(ctx, `
		UPDATE networks
		SET latest_version = $2, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, networkID, next).Scan(&network.UpdatedAt)
	if err != nil {
		return nil, nil, apperr.Storage(err)
	}

	m, err := insertMap(ctx, tx, networkID, next, snap)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, apperr.Storage(err)
	}

	network.LatestVersion = next
	return network, m, nil
}

// insertMap inserts one map row and bulk-inserts its features inside the
// caller's transaction. Feature insertion order preserves snapshot order;
// stored order is the feature id order.
func insertMap(ctx context.Context, tx pgx.Tx, networkID int64, version int, snap *geo.Snapshot) (*models.Map, error) {
	m := &models.Map{
		NetworkID: networkID,
		Version:   version,
		Type:      snap.Type,
		Name:      snap.Name,
		CRS:       snap.CRS,
	}

	err := tx.QueryRow(ctx, `
		INSERT INTO maps (network_id, version, type, name, crs)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, networkID, version, snap.Type, snap.Name, snap.CRS).Scan(&m.ID, &m.CreatedAt)

	if err != nil {
		if isUniqueViolation(err, "maps_network_id_version_key") {
			return nil, apperr.Conflict("version %d already exists for network id=%d", version, networkID)
		}
		return nil, apperr.Storage(err)
	}

	if len(snap.Features) == 0 {
		return m, nil
	}

	batch := &pgx.Batch{}
	for _, f := range snap.Features {
		batch.Queue(`
			INSERT INTO features (map_id, type, props, geom)
			VALUES ($1, $2, $3, ST_GeomFromEWKB($4))
		`, m.ID, f.Type, f.Properties, f.Geometry)
	}

	results := tx.SendBatch(ctx, batch)
	for range snap.Features {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return nil, apperr.Storage(err)
		}
	}
	if err := results.Close(); err != nil {
		return nil, apperr.Storage(err)
	}

	return m, nil
}

// FindByID retrieves a network by id.
func (r *NetworkRepository) FindByID(ctx context.Context, id int64) (*models.Network, error) {
	return r.findNetwork(ctx, `WHERE id = $1`, id)
}

// FindByName retrieves a network by its unique name.
func (r *NetworkRepository) FindByName(ctx context.Context, name string) (*models.Network, error) {
	return r.findNetwork(ctx, `WHERE name = $1`, name)
}

func (r *NetworkRepository) findNetwork(ctx context.Context, where string, arg any) (*models.Network, error) {
	network := &models.Network{}

	err := r.db.QueryRow(ctx, `
		SELECT id, name, owner_id, latest_version, public, created_at, updated_at
		FROM networks
	`+where, arg).Scan(
		&network.ID,
		&network.Name,
		&network.OwnerID,
		&network.LatestVersion,
		&network.Public,
		&network.CreatedAt,
		&network.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("network %v not found", arg)
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}

	return network, nil
}

// NameExists checks if a network name is already taken.
func (r *NetworkRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM networks WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, apperr.Storage(err)
	}
	return exists, nil
}

// Versions returns the version -> map id index for a network, queried live
// in ascending version order.
func (r *NetworkRepository) Versions(ctx context.Context, networkID int64) (map[int]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT version, id
		FROM maps
		WHERE network_id = $1
		ORDER BY version ASC
	`, networkID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	versions := make(map[int]int64)
	for rows.Next() {
		var version int
		var mapID int64
		if err := rows.Scan(&version, &mapID); err != nil {
			return nil, apperr.Storage(err)
		}
		versions[version] = mapID
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(err)
	}

	return versions, nil
}

// MapByID retrieves one map snapshot's metadata.
func (r *NetworkRepository) MapByID(ctx context.Context, mapID int64) (*models.Map, error) {
	m := &models.Map{}

	err := r.db.QueryRow(ctx, `
		SELECT id, network_id, version, type, name, crs, created_at
		FROM maps
		WHERE id = $1
	`, mapID).Scan(&m.ID, &m.NetworkID, &m.Version, &m.Type, &m.Name, &m.CRS, &m.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("map id=%d not found", mapID)
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}

	return m, nil
}

// FeaturesByMap returns a map's features in stored (snapshot import) order,
// with geometry in the storage-native EWKB encoding.
func (r *NetworkRepository) FeaturesByMap(ctx context.Context, mapID int64) ([]models.Feature, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, map_id, type, props, ST_AsEWKB(geom)
		FROM features
		WHERE map_id = $1
		ORDER BY id ASC
	`, mapID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	var features []models.Feature
	for rows.Next() {
		var f models.Feature
		if err := rows.Scan(&f.ID, &f.MapID, &f.Type, &f.Props, &f.Geom); err != nil {
			return nil, apperr.Storage(err)
		}
		features = append(features, f)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(err)
	}

	return features, nil
}

// FeatureCount returns the number of features in a map, counted on demand.
func (r *NetworkRepository) FeatureCount(ctx context.Context, mapID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM features WHERE map_id = $1`, mapID).Scan(&count)
	if err != nil {
		return 0, apperr.Storage(err)
	}
	return count, nil
}
