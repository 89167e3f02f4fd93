package handlers

import (
	"rideway/internal/utils"
	"rideway/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, false
	}
	userID, ok := value.(primitive.ObjectID)
	return userID, ok
}

func currentUserType(c *gin.Context) string {
	return c.GetString("user_type")
}

func toAPIErrors(errs validators.ValidationErrors) []utils.APIError {
	apiErrors := make([]utils.APIError, 0, len(errs))
	for _, err := range errs {
		apiErrors = append(apiErrors, utils.APIError{
			Field:   err.Field,
			Message: err.Message,
		})
	}
	return apiErrors
}
