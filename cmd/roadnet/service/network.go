package service

import (
	"context"

	"github.com/gridworks/roadnet/common/apperr"
	"github.com/gridworks/roadnet/common/geo"
	"github.com/gridworks/roadnet/common/logger"
	"github.com/gridworks/roadnet/common/models"
)

// NetworkRef identifies a network by id or by unique name. When both are
// set, id takes precedence. The zero value is invalid.
type NetworkRef struct {
	ID   int64
	Name string
}

// NetworkService orchestrates the importer, the access policy and the
// network store. It is the core's public surface: inbound request handlers
// call exactly these four operations.
type NetworkService struct {
	networks NetworkStore
	users    UserStore
	log      *logger.Logger
}

// NewNetworkService creates a new network service
func NewNetworkService(networks NetworkStore, users UserStore, log *logger.Logger) *NetworkService {
	return &NetworkService{
		networks: networks,
		users:    users,
		log:      log,
	}
}

// CreateNetwork imports the uploaded document and creates a network at
// version 1, owned by the caller. The import runs before any storage write,
// so a malformed document persists nothing.
func (s *NetworkService) CreateNetwork(ctx context.Context, caller *models.Identity, name string, public bool, doc map[string]any) (*models.NetworkProjection, error) {
	if caller == nil {
		return nil, apperr.AccessDenied("authentication required")
	}
	if name == "" {
		return nil, apperr.Validation("network name required")
	}

	exists, err := s.networks.NameExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.DuplicateName("network '%s' already exists", name)
	}

	snap, err := geo.Import(doc)
	if err != nil {
		return nil, err
	}

	network, err := s.networks.Create(ctx, name, caller.ID, public, snap)
	if err != nil {
		return nil, err
	}

	s.log.Info("created network",
		"network_id", network.ID,
		"name", network.Name,
		"owner_id", caller.ID,
		"public", public,
		"features", len(snap.Features),
	)

	return s.projection(ctx, network)
}

// AppendVersion imports the uploaded document and appends it as the next
// version of the referenced network. Only the owner may append. A failed
// append never advances the version.
func (s *NetworkService) AppendVersion(ctx context.Context, caller *models.Identity, ref NetworkRef, doc map[string]any) (*models.NetworkProjection, error) {
	network, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	if !CanWrite(network, caller) {
		return nil, apperr.AccessDenied("write access to network '%s' denied", network.Name)
	}

	snap, err := geo.Import(doc)
	if err != nil {
		return nil, err
	}

	network, m, err := s.networks.AppendVersion(ctx, network.ID, snap)
	if err != nil {
		return nil, err
	}

	s.log.Info("appended network version",
		"network_id", network.ID,
		"name", network.Name,
		"version", m.Version,
		"features", len(snap.Features),
	)

	return s.projection(ctx, network)
}

// GetNetwork returns a network's metadata projection, including the live
// version index and the owner's handle.
func (s *NetworkService) GetNetwork(ctx context.Context, caller *models.Identity, ref NetworkRef) (*models.NetworkProjection, error) {
	network, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	if !CanRead(network, caller) {
		return nil, apperr.AccessDenied("read access to network '%s' denied", network.Name)
	}

	return s.projection(ctx, network)
}

// GetMapFeatures returns one snapshot's metadata and its decoded geometries
// in stored order. version 0 selects the network's latest version. A version
// with no map row is reported as not found rather than assumed impossible.
func (s *NetworkService) GetMapFeatures(ctx context.Context, caller *models.Identity, ref NetworkRef, version int) (*models.MapProjection, error) {
	network, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	if !CanRead(network, caller) {
		return nil, apperr.AccessDenied("read access to network '%s' denied", network.Name)
	}

	if version == 0 {
		version = network.LatestVersion
	}

	versions, err := s.networks.Versions(ctx, network.ID)
	if err != nil {
		return nil, err
	}

	mapID, ok := versions[version]
	if !ok {
		return nil, apperr.NotFound("network '%s' version %d not found", network.Name, version)
	}

	m, err := s.networks.MapByID(ctx, mapID)
	if err != nil {
		return nil, err
	}

	features, err := s.networks.FeaturesByMap(ctx, mapID)
	if err != nil {
		return nil, err
	}

	count, err := s.networks.FeatureCount(ctx, mapID)
	if err != nil {
		return nil, err
	}

	edges := make([]models.Edge, 0, len(features))
	for _, f := range features {
		g, err := geo.Decode(f.Geom)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		edges = append(edges, models.Edge{Geometry: g})
	}

	return &models.MapProjection{
		MapID:        m.ID,
		NetworkID:    m.NetworkID,
		Network:      network.Name,
		Version:      m.Version,
		FeatureCount: count,
		Edges:        edges,
	}, nil
}

// resolve looks a network up by ref. id takes precedence over name; a ref
// with neither is a caller error.
func (s *NetworkService) resolve(ctx context.Context, ref NetworkRef) (*models.Network, error) {
	if ref.ID != 0 {
		return s.networks.FindByID(ctx, ref.ID)
	}
	if ref.Name != "" {
		return s.networks.FindByName(ctx, ref.Name)
	}
	return nil, apperr.Validation("network name or network id required")
}

func (s *NetworkService) projection(ctx context.Context, network *models.Network) (*models.NetworkProjection, error) {
	owner, err := s.users.FindByID(ctx, network.OwnerID)
	if err != nil {
		return nil, err
	}

	versions, err := s.networks.Versions(ctx, network.ID)
	if err != nil {
		return nil, err
	}

	return &models.NetworkProjection{
		ID:            network.ID,
		Name:          network.Name,
		OwnerID:       network.OwnerID,
		Owner:         owner.Username,
		Versions:      versions,
		LatestVersion: network.LatestVersion,
		Public:        network.Public,
		CreatedAt:     network.CreatedAt,
	}, nil
}
