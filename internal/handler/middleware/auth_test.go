//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slotbooker/internal/domain/actor"
	"slotbooker/internal/handler/middleware"
	"slotbooker/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T, minRole actor.Role) (*gin.Engine, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := jwt.NewService("test-secret", time.Hour)
	mw := middleware.NewAuthMiddleware(svc)

	router := gin.New()
	handlers := []gin.HandlerFunc{mw.RequireAuth()}
	if minRole != "" {
		handlers = append(handlers, mw.RequireRole(minRole))
	}
	handlers = append(handlers, func(c *gin.Context) {
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"role": role.String()})
	})
	router.GET("/protected", handlers...)

	return router, svc
}

func performAuth(router *gin.Engine, header, cookieValue string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: cookieValue})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	t.Run("bearer header", func(t *testing.T) {
		router, svc := newAuthRouter(t, "")
		token, err := svc.GenerateToken(uuid.New(), actor.RoleCustomer)
		require.NoError(t, err)

		w := performAuth(router, "Bearer "+token, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("cookie token", func(t *testing.T) {
		router, svc := newAuthRouter(t, "")
		token, err := svc.GenerateToken(uuid.New(), actor.RoleCustomer)
		require.NoError(t, err)

		w := performAuth(router, "", token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		router, _ := newAuthRouter(t, "")
		w := performAuth(router, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		router, _ := newAuthRouter(t, "")
		w := performAuth(router, "Bearer not.a.jwt", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		router, _ := newAuthRouter(t, "")
		other := jwt.NewService("different-secret", time.Hour)
		token, err := other.GenerateToken(uuid.New(), actor.RoleCustomer)
		require.NoError(t, err)

		w := performAuth(router, "Bearer "+token, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name       string
		tokenRole  actor.Role
		minRole    actor.Role
		expectCode int
	}{
		{name: "admin passes admin gate", tokenRole: actor.RoleAdmin, minRole: actor.RoleAdmin, expectCode: http.StatusOK},
		{name: "admin passes staff gate", tokenRole: actor.RoleAdmin, minRole: actor.RoleStaff, expectCode: http.StatusOK},
		{name: "staff passes staff gate", tokenRole: actor.RoleStaff, minRole: actor.RoleStaff, expectCode: http.StatusOK},
		{name: "staff blocked from admin gate", tokenRole: actor.RoleStaff, minRole: actor.RoleAdmin, expectCode: http.StatusForbidden},
		{name: "customer blocked from staff gate", tokenRole: actor.RoleCustomer, minRole: actor.RoleStaff, expectCode: http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, svc := newAuthRouter(t, tc.minRole)
			token, err := svc.GenerateToken(uuid.New(), tc.tokenRole)
			require.NoError(t, err)

			w := performAuth(router, "Bearer "+token, "")
			assert.Equal(t, tc.expectCode, w.Code)
		})
	}
}
