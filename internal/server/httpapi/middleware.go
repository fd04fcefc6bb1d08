package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// accountIDKey is the gin context key holding the authenticated account id.
const accountIDKey = "accountID"

// authMiddleware validates the Bearer token and stores the account id in the
// request context. Missing or malformed headers and bad tokens answer 401.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		accountID, err := s.accounts.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(accountIDKey, accountID)
		c.Next()
	}
}

func accountID(c *gin.Context) string {
	return c.GetString(accountIDKey)
}
