package models

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

// Network is a named, owned collection of map snapshots. LatestVersion always
// equals the highest version among its maps; it is advanced only in the same
// transaction that inserts the corresponding map row.
// Maps to: networks table
type Network struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	OwnerID       int64     `db:"owner_id" json:"owner_id"`
	LatestVersion int       `db:"latest_version" json:"latest_version"`
	Public        bool      `db:"public" json:"public"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Map is one immutable snapshot of a network at a specific version. Type,
// Name and CRS are copied verbatim from the uploaded document; CRS is stored
// opaque and never interpreted.
// Maps to: maps table
type Map struct {
	ID        int64          `db:"id" json:"id"`
	NetworkID int64          `db:"network_id" json:"network_id"`
	Version   int            `db:"version" json:"version"`
	Type      string         `db:"type" json:"type"`
	Name      string         `db:"name" json:"name"`
	CRS       map[string]any `db:"crs" json:"crs"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// Feature is one geometry record within a map. Geom holds the storage-native
// encoding (EWKB, SRID 4326); Props is an opaque property bag preserved
// exactly as uploaded.
// Maps to: features table
type Feature struct {
	ID    int64          `db:"id" json:"id"`
	MapID int64          `db:"map_id" json:"map_id"`
	Type  string         `db:"type" json:"type"`
	Props map[string]any `db:"props" json:"props"`
	Geom  []byte         `db:"geom" json:"-"`
}

// NetworkProjection is the caller-facing shape of a network, including the
// live version index and the owner's handle.
type NetworkProjection struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	OwnerID       int64         `json:"owner_id"`
	Owner         string        `json:"owner"`
	Versions      map[int]int64 `json:"versions"`
	LatestVersion int           `json:"latest_version"`
	Public        bool          `json:"public"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Edge is one decoded geometry in a map projection.
type Edge struct {
	Geometry *geojson.Geometry `json:"geometry"`
}

// MapProjection is the caller-facing shape of a map snapshot. Edges preserve
// snapshot import order.
type MapProjection struct {
	MapID        int64  `json:"map_id"`
	NetworkID    int64  `json:"network_id"`
	Network      string `json:"network"`
	Version      int    `json:"version"`
	FeatureCount int    `json:"feature_count"`
	Edges        []Edge `json:"edges"`
}
