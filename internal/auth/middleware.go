package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edhub-platform/school-service/internal/models"
)

const (
	ContextUserID   = "auth_user_id"
	ContextUserRole = "auth_user_role"
	ContextSchoolID = "auth_school_id"
)

// Middleware authenticates the request from the Authorization bearer
// token and stores the claims in the gin context.
func Middleware(manager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrNoToken.Error()})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be a bearer token"})
			return
		}

		claims, err := manager.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextSchoolID, claims.SchoolID)
		c.Next()
	}
}

// RequireRoles rejects requests whose authenticated role is not in the
// allowed set. Must run after Middleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role, ok := c.Get(ContextUserRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrNoToken.Error()})
			return
		}
		if _, ok := allowed[role.(models.UserRole)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// RequireAdmin restricts the route to platform administrators.
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}

// RequireSchoolAdmin restricts the route to school or platform
// administrators.
func RequireSchoolAdmin() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin, models.RoleSchoolAdmin)
}

// UserID returns the authenticated user id, or empty when the route is
// public.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ContextUserID); ok {
		return v.(string)
	}
	return ""
}

// Role returns the authenticated role, defaulting to student for public
// routes.
func Role(c *gin.Context) models.UserRole {
	if v, ok := c.Get(ContextUserRole); ok {
		return v.(models.UserRole)
	}
	return models.RoleStudent
}
