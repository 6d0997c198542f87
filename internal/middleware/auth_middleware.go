package middleware

import (
	"net/http"
	"strings"

	"fleetdesk/internal/models"
	"fleetdesk/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthRequired validates the bearer token and sets user context for the
// handlers: user_id (ObjectID), user_role and can_approve.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("user_role", claims.Role)
		c.Set("can_approve", claims.Role.CanApprove())

		c.Next()
	}
}

func roleFromContext(c *gin.Context) (models.Role, bool) {
	value, exists := c.Get("user_role")
	if !exists {
		return "", false
	}
	role, ok := value.(models.Role)
	return role, ok
}

// ApproverRequired gates approval endpoints. Must run after AuthRequired.
func ApproverRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := roleFromContext(c)
		if !ok || !role.CanApprove() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Approver access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired gates fleet administration endpoints.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := roleFromContext(c)
		if !ok || role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// MaintenanceRequired gates the workshop endpoints; admins pass too.
func MaintenanceRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := roleFromContext(c)
		if !ok || (role != models.RoleMaintenance && role != models.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Maintenance access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
