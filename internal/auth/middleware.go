package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is where Identity stores the authenticated user id.
const ContextUserKey = "auth.userID"

// Identity reads an optional Bearer token and stores the user id in the
// request context. Missing or invalid tokens are NOT rejected; handlers
// fall back to the placeholder submitter id.
func (s *Service) Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			if userID, err := s.ParseUserID(strings.TrimPrefix(header, "Bearer ")); err == nil {
				c.Set(ContextUserKey, userID)
			}
		}
		c.Next()
	}
}

// UserIDOr returns the authenticated user id from the context, or the
// given fallback when no session is present.
func UserIDOr(c *gin.Context, fallback string) string {
	if id, ok := c.Get(ContextUserKey); ok {
		if s, ok := id.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}
