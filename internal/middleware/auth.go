package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/webplanner/webplanner-api/internal/constants"
	apierrors "github.com/webplanner/webplanner-api/internal/errors"
	"github.com/webplanner/webplanner-api/internal/services"
)

// RequireAuth resolves the bearer token and stores the owner identity in the
// request context. This is the single choke point: every protected handler
// reads the identity it sets and nothing else.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := authService.Resolve(bearerToken(c))
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}

	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// bearerToken extracts the token from the Authorization header, with a query
// parameter fallback for direct download links.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}
