package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Sandip75/backend-task/internal/pkg/jwtutil"
	"github.com/Sandip75/backend-task/internal/transport/http/response"
)

// ContextUserIDKey holds the authenticated user's email identity.
const ContextUserIDKey = "user_id"

func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, 401, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, 401, response.CodeUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		subject, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, 401, response.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, subject)
		c.Next()
	}
}

// UserID pulls the identity the middleware stored; ok is false when the
// route was not guarded.
func UserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok && id != ""
}
