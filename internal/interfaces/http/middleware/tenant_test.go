package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequireTenant(t *testing.T) {
	newRouter := func(tenant, user string) (*gin.Engine, *uuid.UUID, *uuid.UUID) {
		var gotTenant, gotActor uuid.UUID
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if tenant != "" {
				c.Set(JWTTenantIDKey, tenant)
			}
			if user != "" {
				c.Set(JWTUserIDKey, user)
			}
			c.Next()
		})
		router.Use(RequireTenant())
		router.GET("/test", func(c *gin.Context) {
			gotTenant, gotActor = TenantID(c), ActorID(c)
			c.Status(http.StatusOK)
		})
		return router, &gotTenant, &gotActor
	}

	t.Run("tenant and actor are parsed", func(t *testing.T) {
		tenantID, userID := uuid.New(), uuid.New()
		router, gotTenant, gotActor := newRouter(tenantID.String(), userID.String())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, tenantID, *gotTenant)
		assert.Equal(t, userID, *gotActor)
	})

	t.Run("actor is optional", func(t *testing.T) {
		router, _, gotActor := newRouter(uuid.NewString(), "")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uuid.Nil, *gotActor)
	})

	t.Run("missing tenant is unauthorized", func(t *testing.T) {
		router, _, _ := newRouter("", "")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestTenantID_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uuid.Nil, TenantID(c))
	assert.Equal(t, uuid.Nil, ActorID(c))
}
