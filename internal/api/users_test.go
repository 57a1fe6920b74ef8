package api

import (
	"net/http"
	"testing"
	"time"

	"vocab_system/internal/domain"
	"vocab_system/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/users/register", "", gin.H{"name": "An", "email": "an@example.com", "password": "learner-password", "role": "admin"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[authResponse](t, w)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, domain.RoleUser, resp.User.Role)
	assert.NotContains(t, w.Body.String(), "password\":")

	w = s.do(http.MethodPost, "/api/users/register", "", gin.H{"name": "An", "email": "an@example.com", "password": "learner-password"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email already registered", message(t, w))

	w = s.do(http.MethodPost, "/api/users/register", "", gin.H{"name": "Bad", "email": "not-an-email", "password": "learner-password"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/users/login", "", gin.H{"email": "an@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := s.login("an@example.com", "learner-password")
	w = s.do(http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "an@example.com", decode[domain.User](t, w).Email)
}

func TestAccessControl(t *testing.T) {
	s := newTestServer(t)
	_, learner := s.register("Learner", "learner@example.com")

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/categories", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/vocab", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/vocab", "garbage", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/categories", "", gin.H{"name": "x", "backgroundImage": "y"}).Code)

	w := s.do(http.MethodPost, "/api/categories", learner, gin.H{"name": "x", "backgroundImage": "y"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin access required", message(t, w))

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/admin/stats", learner, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/admin/users", learner, nil).Code)
}

func TestAdminUserManagement(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken()
	learnerID, learner := s.register("Learner", "learner@example.com")
	cat := createVocab(t, s, admin, "cat")
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/saved", learner, gin.H{"vocabId": cat.ID}).Code)

	w := s.do(http.MethodPut, "/api/users/"+learnerID, admin, gin.H{"role": "owner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/users/"+learnerID, admin, gin.H{"name": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Renamed", decode[domain.User](t, w).Name)

	w = s.do(http.MethodPut, "/api/users/missing", admin, gin.H{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, "/api/users/"+learnerID, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The deleted user's token no longer authenticates
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/saved", learner, nil).Code)

	w = s.do(http.MethodDelete, "/api/users/"+learnerID, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminStats(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken()
	_, learner := s.register("Learner", "learner@example.com")
	s.register("Other", "other@example.com")

	w := s.do(http.MethodPost, "/api/categories", admin, gin.H{"name": "Animals", "backgroundImage": "img://a"})
	require.Equal(t, http.StatusCreated, w.Code)
	cat := createVocab(t, s, admin, "cat")
	createVocab(t, s, admin, "dog")
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/saved", learner, gin.H{"vocabId": cat.ID}).Code)

	now := time.Now().UTC()
	w = s.do(http.MethodGet, "/api/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stats := decode[domain.AdminStats](t, w)
	assert.Equal(t, int64(1), stats.TotalCategories)
	assert.Equal(t, int64(2), stats.TotalVocab)
	assert.Equal(t, int64(1), stats.TotalSavedWords)
	assert.Equal(t, now.Format("2006-01"), stats.CurrentMonth)

	var registered int64
	for _, day := range stats.UserStats {
		registered += day.Count
	}
	assert.Equal(t, int64(3), registered) // Admin plus two learners
	assert.True(t, s.redis.Exists(utils.CacheKeyAdminStats))

	// Saving a word drops the cached totals
	bird := createVocab(t, s, admin, "bird")
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/admin/stats", admin, nil).Code)
	require.True(t, s.redis.Exists(utils.CacheKeyAdminStats))
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/saved", learner, gin.H{"vocabId": bird.ID}).Code)
	assert.False(t, s.redis.Exists(utils.CacheKeyAdminStats))

	w = s.do(http.MethodGet, "/api/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), decode[domain.AdminStats](t, w).TotalSavedWords)
}

func TestAdminListUsers(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken()
	s.register("Learner", "learner@example.com")

	type page struct {
		Users      []domain.User `json:"users"`
		Page       int           `json:"page"`
		PageSize   int           `json:"page_size"`
		Total      int64         `json:"total"`
		TotalPages int           `json:"total_pages"`
		Cached     bool          `json:"cached"`
	}

	w := s.do(http.MethodGet, "/api/admin/users?page=1&page_size=1", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := decode[page](t, w)
	assert.False(t, first.Cached)
	assert.Equal(t, int64(2), first.Total)
	assert.Equal(t, 2, first.TotalPages)
	assert.Len(t, first.Users, 1)

	w = s.do(http.MethodGet, "/api/admin/users?page=1&page_size=1", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	second := decode[page](t, w)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Users[0].ID, second.Users[0].ID)

	// A new registration invalidates cached pages
	s.register("Third", "third@example.com")
	w = s.do(http.MethodGet, "/api/admin/users?page=1&page_size=1", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	third := decode[page](t, w)
	assert.False(t, third.Cached)
	assert.Equal(t, int64(3), third.Total)
}

func TestHealthAndStorageFailure(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, w)["status"])

	sqlDB, err := s.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w = s.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// Nothing cached yet, so the list reaches the closed database
	w = s.do(http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", message(t, w))
}
