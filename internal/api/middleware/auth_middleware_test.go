package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netslayer67/mws-backend/pkg/config"
	"github.com/netslayer67/mws-backend/pkg/security/auth"
)

func newTestRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(jwtService), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	router.GET("/staff-only", NewAuthMiddleware(jwtService), RequireStaff(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(&config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret",
			JWTExpiryHours: 1,
			JWTIssuer:      "mws-backend",
		},
	})
}

func TestAuthMiddleware(t *testing.T) {
	svc := testJWTService()
	router := newTestRouter(svc)

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), "student@school.test", "student", "Grade 7")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireStaff(t *testing.T) {
	svc := testJWTService()
	router := newTestRouter(svc)

	t.Run("student denied", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), "student@school.test", "student", "Grade 7")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/staff-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("staff allowed", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), "counselor@school.test", "staff", "")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/staff-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
