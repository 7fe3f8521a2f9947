package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bako110/Sonaby/config"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/services/container"
	"github.com/bako110/Sonaby/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) (*gin.Engine, *store.MemoryStore, services.InterfaceJWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecretKey:           "test-access-secret",
		RefreshTokenSecret:     "test-refresh-secret",
		AccessTokenTTLHours:    1,
		RefreshTokenTTLDays:    1,
		AutoBlacklistThreshold: 3,
		MaxUploadSizeMB:        10,
		UploadDir:              t.TempDir(),
	}
	s := store.NewMemoryStore()
	c := container.NewServiceContainer(s, cfg, nil, nil)
	return SetupRouter(c), s, services.NewJWTService(cfg)
}

func tokenFor(t *testing.T, jwt services.InterfaceJWTService, role string) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(1, "staff@sonaby.ne", role)
	require.NoError(t, err)
	return token
}

func doRequest(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPingIsPublic(t *testing.T) {
	r, _, _ := testRouter(t)

	w := doRequest(r, http.MethodGet, "/api/ping", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _, _ := testRouter(t)

	w := doRequest(r, http.MethodGet, "/api/visitors", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/api/visitors", "garbage-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGate(t *testing.T) {
	r, _, jwt := testRouter(t)

	chef := tokenFor(t, jwt, models.RoleChefService)
	admin := tokenFor(t, jwt, models.RoleAdmin)

	// CHEF_SERVICE can read but not write visitors
	w := doRequest(r, http.MethodGet, "/api/visitors", chef, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/api/visitors", chef, `{"firstname":"Awa","lastname":"Diallo"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodPost, "/api/visitors", admin, `{"firstname":"Awa","lastname":"Diallo"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	// user management is admin only
	w = doRequest(r, http.MethodGet, "/api/users", chef, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStatusMapping(t *testing.T) {
	r, s, jwt := testRouter(t)
	admin := tokenFor(t, jwt, models.RoleAdmin)

	// missing entity by id is a 404
	w := doRequest(r, http.MethodGet, "/api/visitors/999", admin, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// malformed id is a 400
	w = doRequest(r, http.MethodGet, "/api/visitors/abc", admin, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// a duplicate active visit maps to 400, not 500
	visitor := &models.Visitor{Firstname: "Awa", Lastname: "Diallo"}
	require.NoError(t, s.Visitors().Create(visitor))
	site := &models.Site{Name: "Siege"}
	require.NoError(t, s.Sites().Create(site))
	checkpoint := &models.Checkpoint{Name: "Entree", SiteID: site.ID, SOSIdentifier: "CP-1"}
	require.NoError(t, s.Checkpoints().Create(checkpoint))
	service := &models.Service{Name: "Comptabilite"}
	require.NoError(t, s.Services().Create(service))

	body := `{"visitor_id":1,"checkpoint_id":1,"service_id":1}`
	w = doRequest(r, http.MethodPost, "/api/visits/checkin", admin, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodPost, "/api/visits/checkin", admin, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// blacklisted visitor is rejected at check-in
	w = doRequest(r, http.MethodPut, "/api/visits/1/checkout", admin, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, s.NonDesirables().Create(&models.NonDesirable{VisitorID: visitor.ID, Reason: "theft"}))

	w = doRequest(r, http.MethodPost, "/api/visits/checkin", admin, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckOutAcceptsExplicitEndTime(t *testing.T) {
	r, s, jwt := testRouter(t)
	admin := tokenFor(t, jwt, models.RoleAdmin)

	require.NoError(t, s.Visitors().Create(&models.Visitor{Firstname: "Awa", Lastname: "Diallo"}))
	site := &models.Site{Name: "Siege"}
	require.NoError(t, s.Sites().Create(site))
	require.NoError(t, s.Checkpoints().Create(&models.Checkpoint{Name: "Entree", SiteID: site.ID, SOSIdentifier: "CP-1"}))
	require.NoError(t, s.Services().Create(&models.Service{Name: "Comptabilite"}))

	w := doRequest(r, http.MethodPost, "/api/visits/checkin", admin, `{"visitor_id":1,"checkpoint_id":1,"service_id":1}`)
	require.Equal(t, http.StatusCreated, w.Code)

	end := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	body := fmt.Sprintf(`{"end_at":%q}`, end.Format(time.RFC3339))
	w = doRequest(r, http.MethodPut, "/api/visits/1/checkout", admin, body)
	require.Equal(t, http.StatusOK, w.Code)

	visit, err := s.Visits().GetByID(1)
	require.NoError(t, err)
	require.NotNil(t, visit.EndAt)
	assert.True(t, visit.EndAt.Equal(end))

	// garbage end_at is rejected before the service runs
	w = doRequest(r, http.MethodPut, "/api/visits/1/checkout", admin, `{"end_at":"yesterday"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
