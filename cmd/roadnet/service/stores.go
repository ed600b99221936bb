package service

import (
	"context"

	"github.com/gridworks/roadnet/common/geo"
	"github.com/gridworks/roadnet/common/models"
)

// NetworkStore is the storage capability the network service depends on.
// All writes are atomic: on failure nothing is persisted.
type NetworkStore interface {
	Create(ctx context.Context, name string, ownerID int64, public bool, snap *geo.Snapshot) (*models.Network, error)
	AppendVersion(ctx context.Context, networkID int64, snap *geo.Snapshot) (*models.Network, *models.Map, error)
	FindByID(ctx context.Context, id int64) (*models.Network, error)
	FindByName(ctx context.Context, name string) (*models.Network, error)
	NameExists(ctx context.Context, name string) (bool, error)
	Versions(ctx context.Context, networkID int64) (map[int]int64, error)
	MapByID(ctx context.Context, mapID int64) (*models.Map, error)
	FeaturesByMap(ctx context.Context, mapID int64) ([]models.Feature, error)
	FeatureCount(ctx context.Context, mapID int64) (int, error)
}

// UserStore is the storage capability for user accounts.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// SessionStore maps session tokens to resolved identities. Get returns
// (nil, nil) for an unknown or expired token.
type SessionStore interface {
	Put(ctx context.Context, token string, identity *models.Identity) error
	Get(ctx context.Context, token string) (*models.Identity, error)
	Delete(ctx context.Context, token string) error
}
