package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"communication-service/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// IdentityKey is the gin context key the authenticated user id is stored
// under.
const IdentityKey = "user_id"

// AuthRequiredMiddleware validates the bearer JWT and stores the requester
// identity in the context. Case-relationship authorization happens later
// in the service layer; this only establishes who is calling.
func AuthRequiredMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.SendError(c, http.StatusUnauthorized, "unauthorized", "Authorization header missing")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			utils.SendError(c, http.StatusUnauthorized, "unauthorized", "Invalid authorization header format")
			c.Abort()
			return
		}

		userID, err := parseSubject(parts[1], secret)
		if err != nil {
			utils.SendError(c, http.StatusUnauthorized, "unauthorized", err.Error())
			c.Abort()
			return
		}

		c.Set(IdentityKey, userID)
		c.Next()
	}
}

// RequesterID returns the authenticated user id set by
// AuthRequiredMiddleware, or "" when the route is unauthenticated.
func RequesterID(c *gin.Context) string {
	if id, ok := c.Get(IdentityKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

func parseSubject(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return subject, nil
}
