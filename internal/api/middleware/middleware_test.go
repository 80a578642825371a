package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/simtrack/internal/config"
	"github.com/linskybing/simtrack/internal/domain/user"
	"github.com/linskybing/simtrack/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func routerAs(claims *types.Claims, mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set("claims", claims)
		}
		c.Next()
	})
	handlers := append(mw, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/users/:id", handlers...)
	return r
}

func TestRequireRole(t *testing.T) {
	auth := NewAuth(nil)

	cases := []struct {
		name   string
		role   user.Role
		mw     gin.HandlerFunc
		status int
	}{
		{"admin passes admin", user.RoleAdmin, auth.Admin(), http.StatusOK},
		{"manager blocked from admin", user.RoleManager, auth.Admin(), http.StatusForbidden},
		{"admin passes manager", user.RoleAdmin, auth.Manager(), http.StatusOK},
		{"engineer blocked from manager", user.RoleEngineer, auth.Manager(), http.StatusForbidden},
		{"engineer passes staff", user.RoleEngineer, auth.Staff(), http.StatusOK},
		{"requester blocked from staff", user.RoleRequester, auth.Staff(), http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := routerAs(&types.Claims{UserID: 9, Role: tc.role}, tc.mw)
			assert.Equal(t, tc.status, serve(r, http.MethodGet, "/users/1", nil).Code)
		})
	}

	t.Run("no claims", func(t *testing.T) {
		r := routerAs(nil, auth.Manager())
		assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/users/1", nil).Code)
	})
}

func TestUserOrAdmin(t *testing.T) {
	auth := NewAuth(nil)

	self := routerAs(&types.Claims{UserID: 4, Role: user.RoleRequester}, auth.UserOrAdmin())
	assert.Equal(t, http.StatusOK, serve(self, http.MethodGet, "/users/4", nil).Code)
	assert.Equal(t, http.StatusForbidden, serve(self, http.MethodGet, "/users/5", nil).Code)
	assert.Equal(t, http.StatusBadRequest, serve(self, http.MethodGet, "/users/abc", nil).Code)

	admin := routerAs(&types.Claims{UserID: 1, Role: user.RoleAdmin}, auth.UserOrAdmin())
	assert.Equal(t, http.StatusOK, serve(admin, http.MethodGet, "/users/5", nil).Code)
}

func TestJWTAuthMiddleware(t *testing.T) {
	config.JwtSecret = "test-secret"
	config.Issuer = "simtrack-test"
	Init()

	r := gin.New()
	r.Use(JWTAuthMiddleware())
	r.GET("/me", func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		require.True(t, ok)
		c.String(http.StatusOK, string(claims.Role))
	})
	r.GET("/ws/notifications", func(c *gin.Context) { c.Status(http.StatusOK) })

	token, err := GenerateToken(7, "eng", user.RoleEngineer, time.Hour)
	require.NoError(t, err)

	w := serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "engineer", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", map[string]string{"Authorization": token}).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer garbage"}).Code)

	// Query tokens are only honoured on websocket routes.
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ws/notifications?token="+token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me?token="+token, nil).Code)

	expired, err := GenerateToken(7, "eng", user.RoleEngineer, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + expired}).Code)
}
