package middleware

import "github.com/gin-gonic/gin"

// userIDKey and companyIDKey hold the authenticated identity in the request context.
const (
	userIDKey    = contextKey("userID")
	companyIDKey = contextKey("companyID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}
	return "", false
}

// GetCompanyIDFromContext retrieves the authenticated company scope from the Gin
// context. All repository lookups are scoped by it.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(companyIDKey); v != nil {
		if companyID, ok := v.(string); ok {
			return companyID, true
		}
	}
	return "", false
}
