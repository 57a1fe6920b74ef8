package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vocab_system/internal/db"
	"vocab_system/internal/service"
	"vocab_system/internal/store"
	"vocab_system/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	testSecret    = "api-test-secret"
	adminEmail    = "admin@example.com"
	adminPassword = "admin-password"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	redis  *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := testutil.NewTestDB(t)
	require.NoError(t, db.SeedAdmin(gdb, "Admin", adminEmail, adminPassword, bcrypt.MinCost))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	router := NewRouter(newDeps(gdb, rdb))
	return &testServer{t: t, router: router, db: gdb, redis: mr}
}

func newDeps(gdb *gorm.DB, rdb *redis.Client) Deps {
	catalogStore := store.NewCatalogStore(gdb)
	ledgerStore := store.NewLedgerStore(gdb)
	userStore := store.NewUserStore(gdb)
	return Deps{
		DB:       gdb,
		Redis:    rdb,
		CacheTTL: time.Minute,
		Catalog:  service.NewCatalogService(catalogStore),
		Study:    service.NewStudyService(ledgerStore, catalogStore),
		Users:    service.NewUserService(userStore, testSecret, time.Hour, bcrypt.MinCost),
		Stats:    service.NewStatsService(catalogStore, ledgerStore, userStore),
	}
}

// do sends a JSON request and returns the recorded response
func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals a response body
func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/users/login", "", gin.H{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return decode[authResponse](s.t, w).Token
}

func (s *testServer) adminToken() string {
	return s.login(adminEmail, adminPassword)
}

func (s *testServer) register(name, email string) (string, string) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/users/register", "", gin.H{"name": name, "email": email, "password": "learner-password"})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[authResponse](s.t, w)
	return resp.User.ID, resp.Token
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, w)["message"].(string)
}
