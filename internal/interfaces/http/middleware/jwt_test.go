package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stokku/backend/internal/infrastructure/auth"
	"github.com/stokku/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-at-least-32-characters!!",
		AccessTokenExpiration: time.Hour,
		Issuer:                "stokku-test",
	})

	engine := gin.New()
	engine.GET("/protected", JWTAuth(jwtService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"tenant_id": GetTenantID(c),
			"user_id":   GetUserID(c),
		})
	})

	return engine, jwtService
}

func TestJWTAuth(t *testing.T) {
	t.Run("accepts valid bearer token and exposes identity", func(t *testing.T) {
		engine, jwtService := newAuthTestRouter(t)
		tenantID := uuid.New()
		userID := uuid.New()

		token, _, err := jwtService.GenerateToken(tenantID, userID, "Budi")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), tenantID.String())
		assert.Contains(t, rec.Body.String(), userID.String())
	})

	t.Run("rejects missing header", func(t *testing.T) {
		engine, _ := newAuthTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects malformed header", func(t *testing.T) {
		engine, _ := newAuthTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, "Basic abc123")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		engine, _ := newAuthTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not.a.token")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
