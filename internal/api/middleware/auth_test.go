package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foodie-app/foodie-backend/internal/cms"
	"github.com/foodie-app/foodie-backend/internal/config"
	"github.com/foodie-app/foodie-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(cfg *config.Config, verifier IdentityVerifier) *gin.Engine {
	router := gin.New()
	router.GET("/whoami", AuthMiddleware(cfg, verifier), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetUint("user_id"),
			"role":    c.GetString("user_role"),
		})
	})
	return router
}

func whoami(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsLocalJWT(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	router := newAuthRouter(cfg, nil)

	token, _, err := utils.GenerateAccessToken(42, "user@example.com", "customer", cfg.JWTSecret)
	require.NoError(t, err)

	w := whoami(router, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["user_id"])
	assert.Equal(t, "customer", body["role"])
}

func TestAuthMiddlewareRejectsMissingAndMalformedHeaders(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	router := newAuthRouter(cfg, nil)

	assert.Equal(t, http.StatusUnauthorized, whoami(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, whoami(router, "Basic abc123").Code)
	assert.Equal(t, http.StatusUnauthorized, whoami(router, "Bearer not-a-jwt").Code)
}

func TestAuthMiddlewareFallsBackToCMSIdentity(t *testing.T) {
	var gotAuth string
	cmsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/me", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(cms.User{ID: 99, Username: "ana", Email: "ana@example.com"})
	}))
	defer cmsServer.Close()

	cfg := &config.Config{JWTSecret: "test-secret"}
	router := newAuthRouter(cfg, cms.NewClient(cmsServer.URL, "service-key"))

	w := whoami(router, "Bearer cms-user-token")
	require.Equal(t, http.StatusOK, w.Code)

	// The user's own token travels to the CMS, never the service key.
	assert.Equal(t, "Bearer cms-user-token", gotAuth)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(99), body["user_id"])
	assert.Equal(t, "customer", body["role"])
}

func TestAuthMiddlewareRejectsTokenTheCMSRefuses(t *testing.T) {
	cmsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer cmsServer.Close()

	cfg := &config.Config{JWTSecret: "test-secret"}
	router := newAuthRouter(cfg, cms.NewClient(cmsServer.URL, "service-key"))

	assert.Equal(t, http.StatusUnauthorized, whoami(router, "Bearer expired-token").Code)
}
