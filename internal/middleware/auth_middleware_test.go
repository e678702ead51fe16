package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekoc/schoolforum/internal/app/models"
	"github.com/emrekoc/schoolforum/internal/middleware"
	"github.com/emrekoc/schoolforum/internal/pkg/auth"
)

func setupRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authMw := middleware.NewAuthMiddleware(jwtService)
	router.GET("/protected", authMw.JWTAuth(), func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		role, _ := middleware.CurrentUserRole(c)
		c.JSON(http.StatusOK, gin.H{"userID": userID, "role": string(role)})
	})

	return router
}

func newJWTService(exp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret-key",
		AccessTokenExp: exp,
		TokenIssuer:    "test-issuer",
	})
}

func TestJWTAuth(t *testing.T) {
	jwtService := newJWTService(time.Hour)
	router := setupRouter(jwtService)

	t.Run("valid token passes and exposes identity", func(t *testing.T) {
		token, _, err := jwtService.GenerateToken(42, "jdoe", string(models.RoleTeacher))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userID":42`)
		assert.Contains(t, w.Body.String(), `"role":"TEACHER"`)
	})

	t.Run("missing header gets a uniform 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())
	})

	t.Run("malformed header gets the same 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())
	})

	t.Run("expired token gets the same 401", func(t *testing.T) {
		expired := newJWTService(-time.Minute)
		token, _, err := expired.GenerateToken(42, "jdoe", "STUDENT")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())
	})

	t.Run("token signed with another key gets the same 401", func(t *testing.T) {
		other := auth.NewJWTService(auth.JWTConfig{
			SecretKey:      "another-key",
			AccessTokenExp: time.Hour,
			TokenIssuer:    "test-issuer",
		})
		token, _, err := other.GenerateToken(42, "jdoe", "STUDENT")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
