package service

import (
	"context"
	"time"

	"github.com/gridworks/roadnet/common/apperr"
	"github.com/gridworks/roadnet/common/geo"
	"github.com/gridworks/roadnet/common/logger"
	"github.com/gridworks/roadnet/common/models"
)

func testLogger() *logger.Logger {
	return logger.New("error", "json")
}

// fakeNetworkStore mimics the repository's semantics in memory: atomic
// writes, not-found errors, version bump together with map insert.
type fakeNetworkStore struct {
	networks map[int64]*models.Network
	byName   map[string]int64
	maps     map[int64]*models.Map
	features map[int64][]models.Feature

	nextNetworkID int64
	nextMapID     int64
	nextFeatureID int64

	createCalls int
	appendCalls int
}

func newFakeNetworkStore() *fakeNetworkStore {
	return &fakeNetworkStore{
		networks: make(map[int64]*models.Network),
		byName:   make(map[string]int64),
		maps:     make(map[int64]*models.Map),
		features: make(map[int64][]models.Feature),
	}
}

func (f *fakeNetworkStore) insertMap(networkID int64, version int, snap *geo.Snapshot) *models.Map {
	f.nextMapID++
	m := &models.Map{
		ID:        f.nextMapID,
		NetworkID: networkID,
		Version:   version,
		Type:      snap.Type,
		Name:      snap.Name,
		CRS:       snap.CRS,
		CreatedAt: time.Now(),
	}
	f.maps[m.ID] = m

	rows := make([]models.Feature, 0, len(snap.Features))
	for _, sf := range snap.Features {
		f.nextFeatureID++
		rows = append(rows, models.Feature{
			ID:    f.nextFeatureID,
			MapID: m.ID,
			Type:  sf.Type,
			Props: sf.Properties,
			Geom:  sf.Geometry,
		})
	}
	f.features[m.ID] = rows

	return m
}

func (f *fakeNetworkStore) Create(ctx context.Context, name string, ownerID int64, public bool, snap *geo.Snapshot) (*models.Network, error) {
	f.createCalls++

	if _, taken := f.byName[name]; taken {
		return nil, apperr.DuplicateName("network '%s' already exists", name)
	}

	f.nextNetworkID++
	n := &models.Network{
		ID:            f.nextNetworkID,
		Name:          name,
		OwnerID:       ownerID,
		LatestVersion: 1,
		Public:        public,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	f.networks[n.ID] = n
	f.byName[name] = n.ID
	f.insertMap(n.ID, 1, snap)

	return n, nil
}

func (f *fakeNetworkStore) AppendVersion(ctx context.Context, networkID int64, snap *geo.Snapshot) (*models.Network, *models.Map, error) {
	f.appendCalls++

	n, ok := f.networks[networkID]
	if !ok {
		return nil, nil, apperr.NotFound("network id=%d not found", networkID)
	}

	n.LatestVersion++
	n.UpdatedAt = time.Now()
	m := f.insertMap(networkID, n.LatestVersion, snap)

	copied := *n
	return &copied, m, nil
}

func (f *fakeNetworkStore) FindByID(ctx context.Context, id int64) (*models.Network, error) {
	n, ok := f.networks[id]
	if !ok {
		return nil, apperr.NotFound("network %d not found", id)
	}
	copied := *n
	return &copied, nil
}

func (f *fakeNetworkStore) FindByName(ctx context.Context, name string) (*models.Network, error) {
	id, ok := f.byName[name]
	if !ok {
		return nil, apperr.NotFound("network %s not found", name)
	}
	return f.FindByID(ctx, id)
}

func (f *fakeNetworkStore) NameExists(ctx context.Context, name string) (bool, error) {
	_, taken := f.byName[name]
	return taken, nil
}

func (f *fakeNetworkStore) Versions(ctx context.Context, networkID int64) (map[int]int64, error) {
	versions := make(map[int]int64)
	for _, m := range f.maps {
		if m.NetworkID == networkID {
			versions[m.Version] = m.ID
		}
	}
	return versions, nil
}

func (f *fakeNetworkStore) MapByID(ctx context.Context, mapID int64) (*models.Map, error) {
	m, ok := f.maps[mapID]
	if !ok {
		return nil, apperr.NotFound("map id=%d not found", mapID)
	}
	copied := *m
	return &copied, nil
}

func (f *fakeNetworkStore) FeaturesByMap(ctx context.Context, mapID int64) ([]models.Feature, error) {
	return f.features[mapID], nil
}

func (f *fakeNetworkStore) FeatureCount(ctx context.Context, mapID int64) (int, error) {
	return len(f.features[mapID]), nil
}

// fakeUserStore keeps users in memory.
type fakeUserStore struct {
	users  map[int64]*models.User
	byName map[string]int64
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:  make(map[int64]*models.User),
		byName: make(map[string]int64),
	}
}

func (f *fakeUserStore) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	if _, taken := f.byName[username]; taken {
		return nil, apperr.DuplicateName("user '%s' already exists", username)
	}

	f.nextID++
	u := &models.User{
		ID:           f.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.users[u.ID] = u
	f.byName[username] = u.ID
	return u, nil
}

func (f *fakeUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	id, ok := f.byName[username]
	if !ok {
		return nil, apperr.NotFound("user %s not found", username)
	}
	return f.FindByID(ctx, id)
}

func (f *fakeUserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user %d not found", id)
	}
	copied := *u
	return &copied, nil
}

// addUser registers a user directly, bypassing credential hashing.
func (f *fakeUserStore) addUser(username string) *models.Identity {
	u, _ := f.Create(context.Background(), username, "x")
	return u.Identity()
}

// fakeSessionStore keeps sessions in memory.
type fakeSessionStore struct {
	sessions map[string]*models.Identity
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*models.Identity)}
}

func (f *fakeSessionStore) Put(ctx context.Context, token string, identity *models.Identity) error {
	f.sessions[token] = identity
	return nil
}

func (f *fakeSessionStore) Get(ctx context.Context, token string) (*models.Identity, error) {
	return f.sessions[token], nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}
