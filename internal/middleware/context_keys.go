package middleware

import "github.com/gin-gonic/gin"

// contextKey is a private type for request context keys to prevent collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	clinicIDKey  = contextKey("clinicID")
)

// GetUserIDFromContext retrieves the authenticated staff ID from the Gin
// context. It returns the ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(userIDKey)
	if val == nil {
		return "", false
	}
	userID, ok := val.(string)
	return userID, ok && userID != ""
}

// GetClinicIDFromContext retrieves the clinic scope of the authenticated
// request from the Gin context.
func GetClinicIDFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(clinicIDKey)
	if val == nil {
		return "", false
	}
	clinicID, ok := val.(string)
	return clinicID, ok && clinicID != ""
}
