package middleware

import (
	"net/http"

	"github.com/bizcore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Parsed caller identity keys
const (
	TenantIDKey = "tenant_id"
	ActorIDKey  = "actor_id"
)

// RequireTenant parses the authenticated tenant into a uuid.UUID for the
// handlers. It runs after the JWT middleware and rejects requests that
// carry no tenant. The actor id is optional and stays uuid.Nil when absent.
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, err := uuid.Parse(GetJWTTenantID(c))
		if err != nil || tenantID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Tenant could not be identified", c.GetString(RequestIDKey)))
			return
		}
		c.Set(TenantIDKey, tenantID)

		actorID := uuid.Nil
		if raw := GetJWTUserID(c); raw != "" {
			if parsed, err := uuid.Parse(raw); err == nil {
				actorID = parsed
			}
		}
		c.Set(ActorIDKey, actorID)
		c.Next()
	}
}

// TenantID returns the tenant stored by RequireTenant
func TenantID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(TenantIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// ActorID returns the acting user stored by RequireTenant, or uuid.Nil
func ActorID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(ActorIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
