package handlers

import (
	"fleetdesk/internal/models"
	"fleetdesk/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUser pulls the authenticated identity set by the auth middleware.
func currentUser(c *gin.Context) (primitive.ObjectID, models.Role, bool) {
	idValue, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, "", false
	}
	userID, ok := idValue.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, "", false
	}

	roleValue, _ := c.Get("user_role")
	role, _ := roleValue.(models.Role)

	return userID, role, true
}

func validationDetails(errs validators.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, err := range errs {
		details[err.Field] = err.Message
	}
	return details
}
