package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/infrastructure/auth"
	"github.com/wims/backend/internal/infrastructure/config"
)

func newTestJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-that-is-long-enough",
		AccessTokenExpiration: expiration,
		Issuer:                "wims-test",
	})
}

func newProtectedRouter(service *auth.JWTService, skipPaths ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(JWTAuth(JWTConfig{
		Service:   service,
		Logger:    zap.NewNop(),
		SkipPaths: skipPaths,
	}))
	engine.GET("/protected", func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		role, _ := GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "role": role})
	})
	engine.GET("/open", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestJWTAuthValidToken(t *testing.T) {
	service := newTestJWTService(time.Hour)
	router := newProtectedRouter(service)

	userID := uuid.New()
	token, _, err := service.GenerateToken(userID, "alice", "staff")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), "staff")
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router := newProtectedRouter(newTestJWTService(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestJWTAuthWrongScheme(t *testing.T) {
	router := newProtectedRouter(newTestJWTService(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	service := newTestJWTService(-time.Minute)
	router := newProtectedRouter(service)

	token, _, err := service.GenerateToken(uuid.New(), "alice", "staff")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthTamperedToken(t *testing.T) {
	service := newTestJWTService(time.Hour)
	other := auth.NewJWTService(config.JWTConfig{
		Secret:                "a-different-secret-entirely",
		AccessTokenExpiration: time.Hour,
		Issuer:                "wims-test",
	})
	router := newProtectedRouter(service)

	token, _, err := other.GenerateToken(uuid.New(), "mallory", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthSkipPath(t *testing.T) {
	router := newProtectedRouter(newTestJWTService(time.Hour), "/open")

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := newTestJWTService(time.Hour)

	engine := gin.New()
	engine.Use(JWTAuth(JWTConfig{Service: service, Logger: zap.NewNop()}))
	engine.GET("/admin-only", RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("allowed role", func(t *testing.T) {
		token, _, err := service.GenerateToken(uuid.New(), "root", "admin")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forbidden role", func(t *testing.T) {
		token, _, err := service.GenerateToken(uuid.New(), "bob", "user")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})
}
