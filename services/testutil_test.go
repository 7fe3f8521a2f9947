package services

import (
	"testing"

	"github.com/bako110/Sonaby/config"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:           "test-access-secret",
		RefreshTokenSecret:     "test-refresh-secret",
		AccessTokenTTLHours:    1,
		RefreshTokenTTLDays:    1,
		AutoBlacklistThreshold: 3,
		UploadDir:              "uploads",
		MaxUploadSizeMB:        10,
	}
}

// fixture seeds one visitor, one site with a checkpoint, and one
// organizational service, which is what most operations need.
type fixture struct {
	store      *store.MemoryStore
	visitor    *models.Visitor
	site       *models.Site
	checkpoint *models.Checkpoint
	service    *models.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := store.NewMemoryStore()

	visitor := &models.Visitor{Firstname: "Awa", Lastname: "Diallo", Company: "Orange"}
	require.NoError(t, s.Visitors().Create(visitor))

	site := &models.Site{Name: "Siege", Location: "Niamey"}
	require.NoError(t, s.Sites().Create(site))

	checkpoint := &models.Checkpoint{Name: "Entree principale", SiteID: site.ID, SOSIdentifier: "CP-MAIN"}
	require.NoError(t, s.Checkpoints().Create(checkpoint))

	service := &models.Service{Name: "Comptabilite"}
	require.NoError(t, s.Services().Create(service))

	return &fixture{
		store:      s,
		visitor:    visitor,
		site:       site,
		checkpoint: checkpoint,
		service:    service,
	}
}

func (f *fixture) addVisitor(t *testing.T, first, last string) *models.Visitor {
	t.Helper()
	v := &models.Visitor{Firstname: first, Lastname: last}
	require.NoError(t, f.store.Visitors().Create(v))
	return v
}

// stubNotifier records dispatches and can be told to fail
type stubNotifier struct {
	calls int
	err   error
}

func (n *stubNotifier) NotifySOS(alert *models.SOSAlert, checkpoint *models.Checkpoint) error {
	n.calls++
	return n.err
}

func (n *stubNotifier) Connect() error { return nil }
func (n *stubNotifier) Disconnect()    {}
